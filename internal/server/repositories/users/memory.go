package users

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/server/filter"
	"github.com/dmitrijs2005/gophchat/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps users in process memory. It enforces the same
// uniqueness and not-empty rules as the PostgreSQL schema.
type MemoryRepository struct {
	mu    sync.RWMutex
	users []*models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	var missing []common.FieldViolation
	for _, f := range []struct{ name, value string }{
		{"username", user.Username},
		{"email", user.Email},
		{"password", user.Password},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, common.FieldViolation{Field: f.name, Message: f.name + " must not be null"})
		}
	}
	if len(missing) > 0 {
		return nil, &common.ConstraintValidationError{Violations: missing}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var taken []common.FieldViolation
	for _, u := range r.users {
		if u.Username == user.Username {
			taken = append(taken, common.FieldViolation{Field: "username", Message: "username must be unique"})
		}
		if u.Email == user.Email {
			taken = append(taken, common.FieldViolation{Field: "email", Message: "email must be unique"})
		}
	}
	if len(taken) > 0 {
		return nil, &common.UniqueConstraintError{Violations: taken}
	}

	now := time.Now().UTC()
	stored := *user
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	stored.LatestMessage = nil
	r.users = append(r.users, &stored)

	out := stored
	return &out, nil
}

func (r *MemoryRepository) FindOne(ctx context.Context, f filter.Expr) (*models.User, error) {
	found, err := r.Find(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, common.ErrorNotFound
	}
	return found[0], nil
}

// Find returns copies, so callers may annotate results freely.
func (r *MemoryRepository) Find(ctx context.Context, f filter.Expr) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.User
	for _, u := range r.users {
		if f.Match(u) {
			cp := *u
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return result, nil
}

// Len reports how many users are stored.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
