package history

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"librarian/internal/ledger"
	"librarian/internal/platform/logging"
	"librarian/internal/user"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Search(ctx context.Context, f Filter) ([]ledger.Entry, error) {
	args := m.Called(ctx, f)
	entries, _ := args.Get(0).([]ledger.Entry)
	return entries, args.Error(1)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) GetByEmail(ctx context.Context, email string) (user.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(user.User), args.Error(1)
}

func TestService_Search_ResolvesEmail(t *testing.T) {
	repo := new(mockRepo)
	users := new(mockUsers)
	svc := NewService(repo, users, logging.Discard())
	ctx := context.Background()

	users.On("GetByEmail", ctx, "ada@example.com").Return(user.User{ID: 5}, nil)
	repo.On("Search", ctx, mock.MatchedBy(func(f Filter) bool {
		return f.UserID != nil && *f.UserID == 5 && f.BookTitle == "Dune"
	})).Return([]ledger.Entry{{Transaction: ledger.Transaction{ID: 1, BorrowedBy: 5}}}, nil)

	entries, err := svc.Search(ctx, Filter{Email: " ada@example.com ", BookTitle: " Dune "})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	repo.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestService_Search_UnknownEmailMatchesNothing(t *testing.T) {
	repo := new(mockRepo)
	users := new(mockUsers)
	svc := NewService(repo, users, logging.Discard())
	ctx := context.Background()

	users.On("GetByEmail", ctx, "ghost@example.com").Return(user.User{}, user.ErrNotFound)

	entries, err := svc.Search(ctx, Filter{Email: "ghost@example.com"})
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
	repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestService_Search_EmptyIsNotAnError(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, new(mockUsers), logging.Discard())
	ctx := context.Background()

	repo.On("Search", ctx, Filter{}).Return(nil, nil)

	entries, err := svc.Search(ctx, Filter{})
	require.NoError(t, err)
	assert.NotNil(t, entries)
}

func TestService_Search_PropagatesErrors(t *testing.T) {
	repo := new(mockRepo)
	users := new(mockUsers)
	svc := NewService(repo, users, logging.Discard())
	ctx := context.Background()

	boom := errors.New("db down")
	users.On("GetByEmail", ctx, "a@example.com").Return(user.User{}, boom)

	_, err := svc.Search(ctx, Filter{Email: "a@example.com"})
	assert.ErrorIs(t, err, boom)
}
