package history

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"librarian/internal/ledger"
	"librarian/internal/user"
)

type Service struct {
	repo   Repository
	users  UserFinder
	logger *slog.Logger
}

func NewService(repo Repository, users UserFinder, logger *slog.Logger) *Service {
	return &Service{repo: repo, users: users, logger: logger}
}

// Search returns every ledger entry matching all filters in f. An email that
// belongs to no account matches nothing.
func (s *Service) Search(ctx context.Context, f Filter) ([]ledger.Entry, error) {
	f.BookTitle = strings.TrimSpace(f.BookTitle)

	if email := strings.TrimSpace(f.Email); email != "" {
		u, err := s.users.GetByEmail(ctx, email)
		if errors.Is(err, user.ErrNotFound) {
			return []ledger.Entry{}, nil
		}
		if err != nil {
			return nil, err
		}
		if f.UserID != nil && *f.UserID != u.ID {
			return []ledger.Entry{}, nil
		}
		f.UserID = &u.ID
	}

	entries, err := s.repo.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []ledger.Entry{}
	}
	s.logger.DebugContext(ctx, "history searched", "results", len(entries))
	return entries, nil
}
