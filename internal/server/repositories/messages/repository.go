// Package messages declares the chat message storage contract and its
// PostgreSQL and in-memory implementations.
package messages

import (
	"context"

	"github.com/dmitrijs2005/gophchat/internal/server/filter"
	"github.com/dmitrijs2005/gophchat/internal/server/models"
)

// Repository stores chat messages.
type Repository interface {
	// Create inserts msg and fills its ID, UUID (if empty) and CreatedAt (if zero).
	Create(ctx context.Context, msg *models.Message) (*models.Message, error)

	// Find returns every message matching f, newest first.
	Find(ctx context.Context, f filter.Expr) ([]*models.Message, error)
}
