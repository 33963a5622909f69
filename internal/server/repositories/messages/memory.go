package messages

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/server/filter"
	"github.com/dmitrijs2005/gophchat/internal/server/models"
	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu       sync.RWMutex
	messages []*models.Message
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(ctx context.Context, msg *models.Message) (*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *msg
	stored.ID = strconv.Itoa(len(r.messages) + 1)
	if stored.UUID == "" {
		stored.UUID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	r.messages = append(r.messages, &stored)

	out := stored
	return &out, nil
}

func (r *MemoryRepository) Find(ctx context.Context, f filter.Expr) ([]*models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.Message
	for i := len(r.messages) - 1; i >= 0; i-- {
		if m := r.messages[i]; f.Match(m) {
			cp := *m
			result = append(result, &cp)
		}
	}
	// Insertion order (newest first) breaks ties between equal timestamps.
	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}
