package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playtrove/gamestore/internal/domain/entity"
	"github.com/playtrove/gamestore/internal/domain/repository"
	"github.com/playtrove/gamestore/pkg/helpers"
	"github.com/playtrove/gamestore/pkg/token"
)

type fakePrincipals struct {
	byHandle map[string]*entity.Principal
}

func (f *fakePrincipals) GetByHandle(_ context.Context, handle string) (*entity.Principal, error) {
	p, ok := f.byHandle[handle]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func newAuthFixture(t *testing.T) (*AuthService, *token.Manager) {
	t.Helper()
	hash, err := helpers.HashSecret("s3cret99")
	require.NoError(t, err)

	repo := &fakePrincipals{byHandle: map[string]*entity.Principal{
		"admin": {ID: 1, Handle: "admin", SecretHash: hash, Role: entity.RoleAdmin},
	}}
	tm := token.NewManager("test-secret", 2*time.Hour)
	return NewAuthService(repo, tm, nil), tm
}

func TestLoginIssuesTokenBoundToPrincipal(t *testing.T) {
	svc, tm := newAuthFixture(t)

	res, err := svc.Login(context.Background(), "admin", "s3cret99")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, res.Role)

	claims, err := tm.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.SubjectID)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
}

func TestLoginUnknownHandle(t *testing.T) {
	svc, _ := newAuthFixture(t)

	res, err := svc.Login(context.Background(), "nobody", "s3cret99")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWrongSecret(t *testing.T) {
	svc, _ := newAuthFixture(t)

	res, err := svc.Login(context.Background(), "admin", "wrong")
	assert.Nil(t, res)
	// Identical error for unknown handle and wrong secret.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
