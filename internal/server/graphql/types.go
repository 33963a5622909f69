package graphql

import (
	"github.com/dmitrijs2005/gophchat/internal/server/models"
	"github.com/graph-gophers/graphql-go"
)

type userResolver struct {
	user  *models.User
	token string
}

func (r *userResolver) Username() string { return r.user.Username }

func (r *userResolver) Email() string { return r.user.Email }

func (r *userResolver) CreatedAt() graphql.Time { return graphql.Time{Time: r.user.CreatedAt} }

// Token is only set on login responses.
func (r *userResolver) Token() *string {
	if r.token == "" {
		return nil
	}
	return &r.token
}

func (r *userResolver) LatestMessage() *messageResolver {
	if r.user.LatestMessage == nil {
		return nil
	}
	return &messageResolver{msg: r.user.LatestMessage}
}

type messageResolver struct {
	msg *models.Message
}

func (r *messageResolver) UUID() string            { return r.msg.UUID }
func (r *messageResolver) Content() string         { return r.msg.Content }
func (r *messageResolver) From() string            { return r.msg.From }
func (r *messageResolver) To() string              { return r.msg.To }
func (r *messageResolver) CreatedAt() graphql.Time { return graphql.Time{Time: r.msg.CreatedAt} }
