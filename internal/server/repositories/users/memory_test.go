package users

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/server/filter"
	"github.com/dmitrijs2005/gophchat/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, r *MemoryRepository, names ...string) {
	t.Helper()
	for _, n := range names {
		_, err := r.Create(context.Background(), &models.User{Username: n, Email: n + "@example.com", Password: "hash"})
		require.NoError(t, err)
	}
}

func TestMemoryCreate_AssignsIdentity(t *testing.T) {
	r := NewMemoryRepository()

	in := &models.User{Username: "alice", Email: "alice@example.com", Password: "hash"}
	got, err := r.Create(context.Background(), in)
	require.NoError(t, err)

	assert.NotEmpty(t, got.ID)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Empty(t, in.ID, "input is not mutated")
	assert.Equal(t, 1, r.Len())
}

func TestMemoryCreate_Unique(t *testing.T) {
	r := NewMemoryRepository()
	seed(t, r, "alice")

	_, err := r.Create(context.Background(), &models.User{Username: "alice", Email: "alice@example.com", Password: "x"})

	var uce *common.UniqueConstraintError
	require.True(t, errors.As(err, &uce))
	assert.Equal(t, []common.FieldViolation{
		{Field: "username", Message: "username must be unique"},
		{Field: "email", Message: "email must be unique"},
	}, uce.Violations)
	assert.Equal(t, 1, r.Len())
}

func TestMemoryCreate_Empty(t *testing.T) {
	r := NewMemoryRepository()

	_, err := r.Create(context.Background(), &models.User{Username: "bob"})

	var cve *common.ConstraintValidationError
	require.True(t, errors.As(err, &cve))
	require.Len(t, cve.Violations, 2)
	assert.Equal(t, "email", cve.Violations[0].Field)
	assert.Equal(t, "password", cve.Violations[1].Field)
	assert.Equal(t, 0, r.Len())
}

func TestMemoryFind(t *testing.T) {
	r := NewMemoryRepository()
	seed(t, r, "carol", "alice", "bob")
	ctx := context.Background()

	others, err := r.Find(ctx, filter.Ne("username", "alice"))
	require.NoError(t, err)
	require.Len(t, others, 2)
	assert.Equal(t, "bob", others[0].Username)
	assert.Equal(t, "carol", others[1].Username)

	one, err := r.FindOne(ctx, filter.Eq("username", "carol"))
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", one.Email)

	_, err = r.FindOne(ctx, filter.Eq("username", "dave"))
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryFind_ReturnsCopies(t *testing.T) {
	r := NewMemoryRepository()
	seed(t, r, "alice")
	ctx := context.Background()

	u, err := r.FindOne(ctx, filter.Eq("username", "alice"))
	require.NoError(t, err)
	u.LatestMessage = &models.Message{Content: "x"}

	again, err := r.FindOne(ctx, filter.Eq("username", "alice"))
	require.NoError(t, err)
	assert.Nil(t, again.LatestMessage)
}
