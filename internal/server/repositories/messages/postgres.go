package messages

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/dbx"
	"github.com/dmitrijs2005/gophchat/internal/server/filter"
	"github.com/dmitrijs2005/gophchat/internal/server/models"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/pgerr"
	"github.com/google/uuid"
)

// "from" and "to" are reserved words and stay quoted.
var columns = map[string]string{
	"uuid": "uuid",
	"from": `"from"`,
	"to":   `"to"`,
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, msg *models.Message) (*models.Message, error) {
	if msg.UUID == "" {
		msg.UUID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO messages (uuid, content, "from", "to", created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		msg.UUID, msg.Content, msg.From, msg.To, msg.CreatedAt).Scan(&msg.ID)
	if err != nil {
		return nil, pgerr.Translate("messages", err)
	}

	return msg, nil
}

func (r *PostgresRepository) Find(ctx context.Context, f filter.Expr) ([]*models.Message, error) {
	where, args, err := f.SQL(columns, 0)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, uuid, content, "from", "to", created_at FROM messages
		WHERE ` + where + `
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Message
	for rows.Next() {
		m := &models.Message{}
		if err := rows.Scan(&m.ID, &m.UUID, &m.Content, &m.From, &m.To, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
