package book

import (
	"time"

	"librarian/internal/apperr"
)

var (
	ErrNotFound      = apperr.New(apperr.ErrNotFound, "book not found")
	ErrAlreadyExists = apperr.New(apperr.ErrConflict, "a book with this title or author already exists")
)

// Book is a catalog entry. Count is the number of copies in circulation.
type Book struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Author      string    `json:"author"`
	Count       int       `json:"count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Input carries every mutable field of a book. Update replaces all of them.
type Input struct {
	Title       string `json:"title" yaml:"title" validate:"notblank,max=255"`
	Description string `json:"description" yaml:"description" validate:"max=4000"`
	Author      string `json:"author" yaml:"author" validate:"notblank,max=255"`
	Count       int    `json:"count" yaml:"count" validate:"gte=0"`
}

func (in Input) apply(b *Book) {
	b.Title = in.Title
	b.Description = in.Description
	b.Author = in.Author
	b.Count = in.Count
}

type Page struct {
	Total int    `json:"total"`
	Items []Book `json:"items"`
}
