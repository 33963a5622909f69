package graphql

import (
	"context"

	"github.com/dmitrijs2005/gophchat/internal/logging"
	"github.com/dmitrijs2005/gophchat/internal/server/auth"
	"github.com/dmitrijs2005/gophchat/internal/server/models"
	"github.com/dmitrijs2005/gophchat/internal/server/services"
)

// UserService is the account logic the resolvers delegate to.
type UserService interface {
	GetUsers(ctx context.Context, caller *auth.Identity) ([]*models.User, error)
	Login(ctx context.Context, username, password string) (*services.Session, error)
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
}

// Resolver is the root resolver for both Query and Mutation.
type Resolver struct {
	users   UserService
	metrics *Metrics
	logger  logging.Logger
}

func NewResolver(us UserService, m *Metrics, l logging.Logger) *Resolver {
	return &Resolver{users: us, metrics: m, logger: l}
}

func (r *Resolver) GetUsers(ctx context.Context) ([]*userResolver, error) {
	users, err := r.users.GetUsers(ctx, auth.IdentityFromContext(ctx))
	if err := r.finish(ctx, "getUsers", err); err != nil {
		return nil, err
	}

	out := make([]*userResolver, 0, len(users))
	for _, u := range users {
		out = append(out, &userResolver{user: u})
	}
	return out, nil
}

func (r *Resolver) Login(ctx context.Context, args struct {
	Username string
	Password string
}) (*userResolver, error) {
	session, err := r.users.Login(ctx, args.Username, args.Password)
	if err := r.finish(ctx, "login", err); err != nil {
		return nil, err
	}
	return &userResolver{user: session.User, token: session.Token}, nil
}

func (r *Resolver) Register(ctx context.Context, args struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}) (*userResolver, error) {
	user, err := r.users.Register(ctx, services.RegisterInput{
		Username:        args.Username,
		Email:           args.Email,
		Password:        args.Password,
		ConfirmPassword: args.ConfirmPassword,
	})
	if err := r.finish(ctx, "register", err); err != nil {
		return nil, err
	}
	return &userResolver{user: user}, nil
}

// finish records the operation and converts err for the client. It returns
// an untyped nil on success so callers can compare against nil safely.
func (r *Resolver) finish(ctx context.Context, op string, err error) error {
	r.metrics.ObserveOperation(op, err)
	if err == nil {
		return nil
	}
	ce := toClientError(err)
	if ce.code == CodeInternal {
		r.logger.Error(ctx, "operation failed", "operation", op, "error", err)
	}
	return ce
}
