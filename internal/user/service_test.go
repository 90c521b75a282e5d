package user

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarian/internal/apperr"
	"librarian/internal/platform/crypto"
	"librarian/internal/platform/logging"
)

func TestService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	svc := NewService(repo, logging.Discard())
	ctx := context.Background()

	repo.EXPECT().GetByEmail(ctx, "ada@example.com").Return(User{}, ErrNotFound)
	repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *User) error {
		u.ID = 1
		return nil
	})

	u, err := svc.Register(ctx, " Ada ", "Ada@Example.com", "Secret123!")
	require.NoError(t, err)

	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, RoleUser, u.Role)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "Secret123!", u.PasswordHash)
	assert.True(t, crypto.VerifyPassword(u.PasswordHash, "Secret123!"))
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	svc := NewService(repo, logging.Discard())
	ctx := context.Background()

	gomock.InOrder(
		repo.EXPECT().GetByEmail(ctx, "a@example.com").Return(User{}, ErrNotFound),
		repo.EXPECT().Create(ctx, gomock.Any()).Return(nil),
		repo.EXPECT().GetByEmail(ctx, "a@example.com").Return(User{ID: 1, Email: "a@example.com"}, nil),
	)

	_, err := svc.Register(ctx, "first", "a@example.com", "Secret123!")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "second", "a@example.com", "Secret123!")
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestService_Register_RaceMappedByRepo(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	svc := NewService(repo, logging.Discard())
	ctx := context.Background()

	repo.EXPECT().GetByEmail(ctx, "a@example.com").Return(User{}, ErrNotFound)
	repo.EXPECT().Create(ctx, gomock.Any()).Return(ErrAlreadyExists)

	_, err := svc.Register(ctx, "taken", "a@example.com", "Secret123!")
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestService_Register_LookupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	svc := NewService(repo, logging.Discard())
	ctx := context.Background()

	boom := errors.New("connection refused")
	repo.EXPECT().GetByEmail(ctx, "a@example.com").Return(User{}, boom)

	_, err := svc.Register(ctx, "ada", "a@example.com", "Secret123!")
	assert.ErrorIs(t, err, boom)
}

func TestService_CreateAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	svc := NewService(repo, logging.Discard())
	ctx := context.Background()

	repo.EXPECT().GetByEmail(ctx, "root@example.com").Return(User{}, ErrNotFound)
	repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	u, err := svc.CreateAdmin(ctx, "root", "root@example.com", "Secret123!")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())
}

func TestService_SetRole(t *testing.T) {
	ctx := context.Background()

	t.Run("promotes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := NewMockRepository(ctrl)
		svc := NewService(repo, logging.Discard())

		repo.EXPECT().GetByEmail(ctx, "a@example.com").Return(User{ID: 3, Role: RoleUser}, nil)
		repo.EXPECT().SetRole(ctx, int64(3), RoleAdmin).Return(nil)

		u, err := svc.SetRole(ctx, "a@example.com", RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, RoleAdmin, u.Role)
	})

	t.Run("no-op when unchanged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := NewMockRepository(ctrl)
		svc := NewService(repo, logging.Discard())

		repo.EXPECT().GetByEmail(ctx, "a@example.com").Return(User{ID: 3, Role: RoleAdmin}, nil)

		_, err := svc.SetRole(ctx, "a@example.com", RoleAdmin)
		require.NoError(t, err)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		svc := NewService(NewMockRepository(gomock.NewController(t)), logging.Discard())
		_, err := svc.SetRole(ctx, "a@example.com", "superuser")
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("unknown email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := NewMockRepository(ctrl)
		svc := NewService(repo, logging.Discard())

		repo.EXPECT().GetByEmail(ctx, "ghost@example.com").Return(User{}, ErrNotFound)

		_, err := svc.SetRole(ctx, "ghost@example.com", RoleAdmin)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
