// Package services contains server-side business logic. UserService backs
// the account API: the contact list, login and registration.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/logging"
	"github.com/dmitrijs2005/gophchat/internal/server/auth"
	"github.com/dmitrijs2005/gophchat/internal/server/config"
	"github.com/dmitrijs2005/gophchat/internal/server/filter"
	"github.com/dmitrijs2005/gophchat/internal/server/models"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophchat/internal/server/validation"
)

// Session is the result of a successful login.
type Session struct {
	User  *models.User
	Token string
}

// RegisterInput is re-exported for transport code.
type RegisterInput = validation.RegisterInput

// UserService provides account operations:
// - GetUsers: list contacts annotated with their latest message
// - Login: verify credentials and mint a session token
// - Register: create users
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	logger                logging.Logger
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService. db may be nil for managers that
// do not use it.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, l logging.Logger) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		logger:                l.With("module", "user_service"),
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// GetUsers returns every user except caller, each carrying the most recent
// message exchanged with caller in LatestMessage (nil when none).
func (s *UserService) GetUsers(ctx context.Context, caller *auth.Identity) ([]*models.User, error) {
	if caller == nil {
		s.logger.Warn(ctx, "contact list requested anonymously")
		return nil, common.ErrUnauthenticated
	}

	contacts, err := s.repomanager.Users(s.db).Find(ctx, filter.Ne("username", caller.Username))
	if err != nil {
		s.logger.Error(ctx, "error listing users", "username", caller.Username, "error", err)
		return nil, err
	}

	history, err := s.repomanager.Messages(s.db).Find(ctx, filter.Or(
		filter.Eq("from", caller.Username),
		filter.Eq("to", caller.Username),
	))
	if err != nil {
		s.logger.Error(ctx, "error listing messages", "username", caller.Username, "error", err)
		return nil, err
	}

	attachLatestMessages(caller.Username, contacts, history)
	return contacts, nil
}

// Login exchanges credentials for the user's profile and a session token.
func (s *UserService) Login(ctx context.Context, username, password string) (*Session, error) {
	errs := map[string]string{}

	if strings.TrimSpace(username) == "" {
		errs["username"] = "username must not be empty"
	}
	if password == "" {
		errs["password"] = "password must not be empty"
	}
	if len(errs) > 0 {
		return nil, s.inputError(ctx, "login", "bad input", errs)
	}

	user, err := s.repomanager.Users(s.db).FindOne(ctx, filter.Eq("username", username))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			errs["username"] = "user not found"
			return nil, s.inputError(ctx, "login", "user not found", errs)
		}
		s.logger.Error(ctx, "error looking up user", "username", username, "error", err)
		return nil, err
	}

	if !auth.CheckPassword(password, user.Password) {
		errs["password"] = "password is incorrect"
		return nil, s.inputError(ctx, "login", "password is incorrect", errs)
	}

	token, err := s.generateToken(username)
	if err != nil {
		s.logger.Error(ctx, "error signing token", "username", username, "error", err)
		return nil, fmt.Errorf("error signing token: %w", err)
	}

	return &Session{User: user, Token: token}, nil
}

// Register validates in, hashes the password and stores the user. Storage
// conflicts come back as per-field messages in a *common.InputError.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	errs := map[string]string{}

	if in.Password != in.ConfirmPassword {
		errs["confirmPassword"] = "passwords must match"
	}
	if err := validation.ValidateCreate(in); err != nil {
		errs["validate"] = err.Error()
	}
	if len(errs) > 0 {
		return nil, s.inputError(ctx, "register", "bad input", errs)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		s.logger.Error(ctx, "error hashing password", "username", in.Username, "error", err)
		return nil, s.inputError(ctx, "register", "bad input", errs)
	}

	user, err := s.repomanager.Users(s.db).Create(ctx, &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
	})
	if err != nil {
		var taken *common.UniqueConstraintError
		var invalid *common.ConstraintValidationError
		switch {
		case errors.As(err, &taken):
			for _, v := range taken.Violations {
				errs[v.Field] = v.Field + " is already taken"
			}
		case errors.As(err, &invalid):
			for _, v := range invalid.Violations {
				errs[v.Field] = v.Message
			}
		default:
			s.logger.Error(ctx, "error creating user", "username", in.Username, "error", err)
		}
		return nil, s.inputError(ctx, "register", "bad input", errs)
	}

	s.logger.Info(ctx, "registered", "username", user.Username)
	return user, nil
}

// --- helpers below ---

func (s *UserService) generateToken(username string) (string, error) {
	return auth.GenerateToken(username, s.jwtSecret, s.tokenValidityDuration)
}

func (s *UserService) inputError(ctx context.Context, op, msg string, fields map[string]string) error {
	err := common.NewInputError(msg, fields)
	s.logger.Warn(ctx, "rejected "+op, "error", err.Error())
	return err
}

// attachLatestMessages sets LatestMessage on each contact to the newest
// message in history exchanged with username.
func attachLatestMessages(username string, contacts []*models.User, history []*models.Message) {
	ordered := slices.Clone(history)
	slices.SortStableFunc(ordered, func(a, b *models.Message) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	latest := make(map[string]*models.Message, len(contacts))
	for _, m := range ordered {
		peer := m.Counterpart(username)
		if _, seen := latest[peer]; !seen {
			latest[peer] = m
		}
	}

	for _, u := range contacts {
		u.LatestMessage = latest[u.Username]
	}
}
