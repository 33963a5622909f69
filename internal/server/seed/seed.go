// Package seed fills an empty database with demo accounts and a short
// conversation history for local development.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/dbx"
	"github.com/dmitrijs2005/gophchat/internal/logging"
	"github.com/dmitrijs2005/gophchat/internal/server/auth"
	"github.com/dmitrijs2005/gophchat/internal/server/filter"
	"github.com/dmitrijs2005/gophchat/internal/server/models"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/messages"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/users"
)

// DemoPassword is shared by every seeded account.
const DemoPassword = "password"

// DemoUsers are created in this order.
var DemoUsers = []string{"alice", "bob", "carol", "dave"}

type demoMessage struct {
	from, to, content string
	offset            time.Duration
}

var demoMessages = []demoMessage{
	{"alice", "bob", "hi bob", 0},
	{"bob", "alice", "hey alice, how are you?", time.Minute},
	{"alice", "bob", "fine, thanks", 2 * time.Minute},
	{"carol", "alice", "lunch tomorrow?", 3 * time.Minute},
	{"bob", "carol", "did you see the release notes?", 4 * time.Minute},
}

// Run seeds the database in a single transaction.
func Run(ctx context.Context, db *sql.DB, rm repomanager.RepositoryManager, l logging.Logger, now time.Time) error {
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return Populate(ctx, rm.Users(tx), rm.Messages(tx), l, now)
	})
}

// Populate creates the demo data through the given repositories. It does
// nothing when the first demo user already exists.
func Populate(ctx context.Context, ur users.Repository, mr messages.Repository, l logging.Logger, now time.Time) error {
	_, err := ur.FindOne(ctx, filter.Eq("username", DemoUsers[0]))
	switch {
	case err == nil:
		l.Info(ctx, "demo data already present, skipping")
		return nil
	case !errors.Is(err, common.ErrorNotFound):
		return err
	}

	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	for _, name := range DemoUsers {
		if _, err := ur.Create(ctx, &models.User{
			Username: name,
			Email:    name + "@example.com",
			Password: hash,
		}); err != nil {
			return fmt.Errorf("create user %s: %w", name, err)
		}
	}

	start := now.Add(-time.Hour).UTC()
	for _, m := range demoMessages {
		if _, err := mr.Create(ctx, &models.Message{
			From:      m.from,
			To:        m.to,
			Content:   m.content,
			CreatedAt: start.Add(m.offset),
		}); err != nil {
			return fmt.Errorf("create message: %w", err)
		}
	}

	l.Info(ctx, "demo data created", "users", len(DemoUsers), "messages", len(demoMessages))
	return nil
}
