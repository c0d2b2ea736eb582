// Package users implements account registration, authentication and password
// changes on top of a credential repository. A successful authentication
// yields a signed session token.
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/credtable/internal/auth"
	"github.com/dmitrijs2005/credtable/internal/common"
	"github.com/dmitrijs2005/credtable/internal/config"
	"github.com/dmitrijs2005/credtable/internal/logging"
)

// Session is the result of a successful Authenticate.
type Session struct {
	User        *User
	AccessToken string
}

type Service struct {
	repo          Repository
	logger        logging.Logger
	tokenSecret   []byte
	tokenValidity time.Duration
}

// NewService builds a Service. When cfg has no token secret a random one is
// generated, so tokens are only valid for this Service.
func NewService(repo Repository, logger logging.Logger, cfg *config.Config) (*Service, error) {
	secret := cfg.TokenSecret
	if secret == "" {
		s, err := common.MakeRandHexString(nil, 32)
		if err != nil {
			return nil, fmt.Errorf("error generating token secret: %w", err)
		}
		secret = s
	}

	return &Service{
		repo:          repo,
		logger:        logger,
		tokenSecret:   []byte(secret),
		tokenValidity: cfg.TokenValidity,
	}, nil
}

// Register creates an account. A taken username yields ErrorAlreadyExists.
func (s *Service) Register(ctx context.Context, userName, password string) (*User, error) {
	user, err := s.repo.Create(ctx, userName, password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.logger.Warn(ctx, "username taken", "user", userName)
			return nil, err
		}
		s.logger.Error(ctx, "error creating user", "user", userName, "err", err)
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user", userName)
	return user, nil
}

// Authenticate checks password and returns the account with a fresh session
// token. Unknown users and wrong passwords both yield ErrorUnauthorized.
func (s *Service) Authenticate(ctx context.Context, userName, password string) (*Session, error) {
	if err := s.repo.CheckPassword(ctx, userName, password); err != nil {
		return nil, s.mapCredentialError(ctx, userName, err)
	}

	user, err := s.repo.GetUserByLogin(ctx, userName)
	if err != nil {
		return nil, s.mapCredentialError(ctx, userName, err)
	}

	token, err := auth.GenerateToken(user.UserName, s.tokenSecret, s.tokenValidity)
	if err != nil {
		s.logger.Error(ctx, "error signing token", "user", userName, "err", err)
		return nil, common.ErrorInternal
	}

	return &Session{User: user, AccessToken: token}, nil
}

// ValidateToken returns the account a session token was issued for. Bad
// tokens yield ErrInvalidToken or ErrTokenExpired; a token for an account
// that no longer resolves yields ErrorUnauthorized.
func (s *Service) ValidateToken(ctx context.Context, token string) (*User, error) {
	userName, err := auth.ParseToken(token, s.tokenSecret)
	if err != nil {
		s.logger.Warn(ctx, "token rejected", "err", err)
		return nil, err
	}

	user, err := s.repo.GetUserByLogin(ctx, userName)
	if err != nil {
		return nil, s.mapCredentialError(ctx, userName, err)
	}
	return user, nil
}

// ChangePassword replaces the password of userName after checking the
// current one. It fails with ErrorUnauthorized like Authenticate.
func (s *Service) ChangePassword(ctx context.Context, userName, currentPassword, newPassword string) error {
	if err := s.repo.UpdatePassword(ctx, userName, currentPassword, newPassword); err != nil {
		return s.mapCredentialError(ctx, userName, err)
	}

	s.logger.Info(ctx, "password changed", "user", userName)
	return nil
}

func (s *Service) mapCredentialError(ctx context.Context, userName string, err error) error {
	if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorInvalidCredential) {
		s.logger.Warn(ctx, "credential check failed", "user", userName)
		return common.ErrorUnauthorized
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	s.logger.Error(ctx, "credential check error", "user", userName, "err", err)
	return common.ErrorInternal
}
