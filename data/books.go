package data

import (
	"regexp"
	"time"

	"github.com/ndukwe/athenaeum/internal/validator"
)

// IsbnRX matches a bare 10 or 13 digit ISBN with no separators.
var IsbnRX = regexp.MustCompile(`^(\d{10}|\d{13})$`)

// Book defines a book model.
type Book struct {
	ID                int64     `json:"id"`
	CreatedAt         time.Time `json:"createdAt"`
	Title             string    `json:"title"`
	Author            string    `json:"author"`
	Isbn              string    `json:"isbn"`
	Category          string    `json:"category,omitempty"`
	PublicationYear   int32     `json:"publicationYear,omitempty"`
	TotalQuantity     int32     `json:"totalQuantity"`
	AvailableQuantity int32     `json:"availableQuantity"`
	CoverURL          string    `json:"coverUrl,omitempty"`
	Version           int32     `json:"-"`
}

func ValidateBook(v *validator.Validator, book *Book) {
	v.Check(book.Title != "", "title", "must be provided")
	v.Check(len(book.Title) <= 500, "title", "must not be more than 500 bytes long")
	v.Check(book.Author != "", "author", "must be provided")
	v.Check(len(book.Author) <= 500, "author", "must not be more than 500 bytes long")
	v.Check(book.Isbn != "", "isbn", "must be provided")
	v.Check(validator.Matches(book.Isbn, IsbnRX), "isbn", "must be 10 or 13 digits")
	v.Check(len(book.Category) <= 100, "category", "must not be more than 100 bytes long")
	if book.PublicationYear != 0 {
		v.Check(book.PublicationYear >= 1000, "publicationYear", "must be greater than 1000")
		v.Check(book.PublicationYear <= int32(time.Now().Year()), "publicationYear", "must not be in the future")
	}
	v.Check(book.TotalQuantity >= 1, "totalQuantity", "must be at least 1")
	v.Check(book.AvailableQuantity >= 0, "availableQuantity", "must not be negative")
	v.Check(book.AvailableQuantity <= book.TotalQuantity, "availableQuantity", "must not be more than total quantity")
}
