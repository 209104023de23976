package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/playtrove/gamestore/internal/domain/entity"
	"github.com/playtrove/gamestore/internal/domain/repository"
	"github.com/playtrove/gamestore/pkg/helpers"
	"github.com/playtrove/gamestore/pkg/token"
)

// ErrInvalidCredentials is returned for unknown handles and wrong secrets
// alike, so login responses never reveal whether a handle exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService authenticates principals and issues bearer tokens.
type AuthService struct {
	Principals repository.PrincipalRepository
	Tokens     *token.Manager
	Logger     *logrus.Logger
}

func NewAuthService(principals repository.PrincipalRepository, tokens *token.Manager, logger *logrus.Logger) *AuthService {
	return &AuthService{Principals: principals, Tokens: tokens, Logger: logger}
}

type LoginResult struct {
	Token     string
	Role      string
	ExpiresAt time.Time
}

// Login validates handle/secret and returns a signed token bound to the
// principal's id and role.
func (s *AuthService) Login(ctx context.Context, handle, secret string) (*LoginResult, error) {
	p, err := s.authenticate(ctx, handle, secret)
	if err != nil {
		return nil, err
	}

	raw, exp, err := s.Tokens.Issue(p.ID, p.Role)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("principal_id", p.ID).Error("issue token failed")
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"principal_id": p.ID, "role": p.Role}).Debug("login succeeded")
	}
	return &LoginResult{Token: raw, Role: p.Role, ExpiresAt: exp}, nil
}

func (s *AuthService) authenticate(ctx context.Context, handle, secret string) (*entity.Principal, error) {
	p, err := s.Principals.GetByHandle(ctx, handle)
	if err != nil || p == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndSecret(p.SecretHash, secret) {
		return nil, ErrInvalidCredentials
	}
	return p, nil
}
