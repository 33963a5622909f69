// Package users declares the user storage contract and its PostgreSQL and
// in-memory implementations.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophchat/internal/server/filter"
	"github.com/dmitrijs2005/gophchat/internal/server/models"
)

// Repository stores user accounts.
type Repository interface {
	// Create inserts user and fills its ID and timestamps. Duplicate
	// usernames or emails yield *common.UniqueConstraintError.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// FindOne returns the first user matching f, or common.ErrorNotFound.
	FindOne(ctx context.Context, f filter.Expr) (*models.User, error)

	// Find returns every user matching f, ordered by username.
	Find(ctx context.Context, f filter.Expr) ([]*models.User, error)
}
