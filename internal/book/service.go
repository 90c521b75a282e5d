package book

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"librarian/internal/apperr"
)

// MaxPageSize bounds page_size on List.
const MaxPageSize = 100

// Service provides the catalog operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func normalize(in Input) (Input, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" {
		return in, apperr.Validation("title is required")
	}
	if in.Author == "" {
		return in, apperr.Validation("author is required")
	}
	if in.Count < 0 {
		return in, apperr.Validation("count must not be negative")
	}
	return in, nil
}

func (s *Service) Create(ctx context.Context, in Input) (Book, error) {
	in, err := normalize(in)
	if err != nil {
		return Book{}, err
	}
	var b Book
	in.apply(&b)
	if err := s.repo.Create(ctx, &b); err != nil {
		return Book{}, err
	}
	s.logger.InfoContext(ctx, "book created", "book_id", b.ID, "count", b.Count)
	return b, nil
}

// List returns one page of books in insertion order plus the catalog size.
func (s *Service) List(ctx context.Context, page, pageSize int) (Page, error) {
	if page < 1 {
		return Page{}, apperr.Validation("page must be at least 1")
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return Page{}, apperr.Validation("page_size must be between 1 and %d", MaxPageSize)
	}
	if page-1 > math.MaxInt32/pageSize {
		return Page{}, apperr.Validation("page is out of range")
	}
	items, total, err := s.repo.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return Page{}, err
	}
	if items == nil {
		items = []Book{}
	}
	return Page{Total: total, Items: items}, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// Update replaces every mutable field of the book.
func (s *Service) Update(ctx context.Context, id int64, in Input) (Book, error) {
	in, err := normalize(in)
	if err != nil {
		return Book{}, err
	}
	b := Book{ID: id}
	in.apply(&b)
	if err := s.repo.Update(ctx, &b); err != nil {
		return Book{}, err
	}
	s.logger.InfoContext(ctx, "book updated", "book_id", id)
	return b, nil
}

// Delete removes the book. Its ledger history is kept.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "book deleted", "book_id", id)
	return nil
}

// ImportResult summarizes a bulk import.
type ImportResult struct {
	Created int
	Skipped int
}

// Import creates each book in order, skipping titles or authors already in the catalog.
func (s *Service) Import(ctx context.Context, inputs []Input) (ImportResult, error) {
	var res ImportResult
	for i, in := range inputs {
		_, err := s.Create(ctx, in)
		switch {
		case err == nil:
			res.Created++
		case errors.Is(err, ErrAlreadyExists):
			s.logger.WarnContext(ctx, "book skipped", "index", i, "title", in.Title)
			res.Skipped++
		default:
			return res, fmt.Errorf("import book %d (%q): %w", i, in.Title, err)
		}
	}
	return res, nil
}
