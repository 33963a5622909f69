package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophchat/internal/logging"
	"github.com/dmitrijs2005/gophchat/internal/server/auth"
	"github.com/dmitrijs2005/gophchat/internal/server/filter"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/messages"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopulate(t *testing.T) {
	ctx := context.Background()
	ur := users.NewMemoryRepository()
	mr := messages.NewMemoryRepository()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, Populate(ctx, ur, mr, logging.NopLogger{}, now))

	all, err := ur.Find(ctx, filter.Expr{})
	require.NoError(t, err)
	require.Len(t, all, len(DemoUsers))
	for _, u := range all {
		assert.True(t, auth.CheckPassword(DemoPassword, u.Password), u.Username)
	}

	history, err := mr.Find(ctx, filter.Or(filter.Eq("from", "alice"), filter.Eq("to", "alice")))
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, "lunch tomorrow?", history[0].Content)
	assert.True(t, history[0].CreatedAt.Before(now))
}

func TestPopulate_SkipsWhenPresent(t *testing.T) {
	ctx := context.Background()
	ur := users.NewMemoryRepository()
	mr := messages.NewMemoryRepository()
	now := time.Now()

	require.NoError(t, Populate(ctx, ur, mr, logging.NopLogger{}, now))
	require.NoError(t, Populate(ctx, ur, mr, logging.NopLogger{}, now))

	all, err := mr.Find(ctx, filter.Expr{})
	require.NoError(t, err)
	assert.Len(t, all, len(demoMessages))
}

func TestRun_BeginFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	err = Run(context.Background(), db, repomanager.NewPostgresRepositoryManager(), logging.NopLogger{}, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin tx")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_RollsBackOnLookupError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err = Run(context.Background(), db, repomanager.NewPostgresRepositoryManager(), logging.NopLogger{}, time.Now())
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
