package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ndukwe/athenaeum/data"
)

type books interface {
	CreateBook(book *data.Book) error
	GetBook(bookID int64) (*data.Book, error)
	GetAllBooks(search, category string, filters data.Filters) ([]*data.Book, data.Metadata, error)
	GetAllAvailableBooks() ([]*data.Book, error)
	UpdateBook(book *data.Book) error
	DeleteBook(bookID int64) error
}

// CreateBook creates a new book record.
func (r *repository) CreateBook(book *data.Book) error {
	query := `
		INSERT INTO books (title, author, isbn, category, publication_year, total_quantity, available_quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version`
	args := []interface{}{book.Title, book.Author, book.Isbn, book.Category, book.PublicationYear, book.TotalQuantity, book.AvailableQuantity}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&book.ID, &book.CreatedAt, &book.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "books_isbn_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// GetBook retrieves a book record by its ID.
func (r *repository) GetBook(bookID int64) (*data.Book, error) {
	if bookID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, created_at, title, author, isbn, category, publication_year, total_quantity, available_quantity, cover_url, version
		FROM books
		WHERE id = $1`
	var book data.Book
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, bookID).Scan(
		&book.ID,
		&book.CreatedAt,
		&book.Title,
		&book.Author,
		&book.Isbn,
		&book.Category,
		&book.PublicationYear,
		&book.TotalQuantity,
		&book.AvailableQuantity,
		&book.CoverURL,
		&book.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &book, nil
}

// GetAllBooks retrieves a paginated list of all book records.
// Records can be searched, filtered by category and sorted.
func (r *repository) GetAllBooks(search, category string, filters data.Filters) ([]*data.Book, data.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), id, created_at, title, author, isbn, category, publication_year, total_quantity, available_quantity, cover_url, version
		FROM books
		WHERE (
			to_tsvector('simple', title) ||
			to_tsvector('simple', author) ||
			to_tsvector('simple', isbn)
			@@ plainto_tsquery('simple', $1) OR $1 = ''
		)
		AND (LOWER(category) = LOWER($2) OR $2 = '')
		ORDER BY %s %s, id ASC
		LIMIT $3 OFFSET $4`,
		filters.SortColumn(), filters.SortDirection(),
	)
	args := []interface{}{search, category, filters.Limit(), filters.Offset()}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()
	totalRecords := 0
	books := []*data.Book{}
	for rows.Next() {
		var book data.Book
		err := rows.Scan(
			&totalRecords,
			&book.ID,
			&book.CreatedAt,
			&book.Title,
			&book.Author,
			&book.Isbn,
			&book.Category,
			&book.PublicationYear,
			&book.TotalQuantity,
			&book.AvailableQuantity,
			&book.CoverURL,
			&book.Version,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		books = append(books, &book)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return books, metadata, nil
}

// GetAllAvailableBooks retrieves all book records with at least one copy
// available for borrowing.
func (r *repository) GetAllAvailableBooks() ([]*data.Book, error) {
	query := `
		SELECT id, created_at, title, author, isbn, category, publication_year, total_quantity, available_quantity, cover_url, version
		FROM books
		WHERE available_quantity > 0
		ORDER BY title ASC, id ASC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	books := []*data.Book{}
	for rows.Next() {
		var book data.Book
		err := rows.Scan(
			&book.ID,
			&book.CreatedAt,
			&book.Title,
			&book.Author,
			&book.Isbn,
			&book.Category,
			&book.PublicationYear,
			&book.TotalQuantity,
			&book.AvailableQuantity,
			&book.CoverURL,
			&book.Version,
		)
		if err != nil {
			return nil, err
		}
		books = append(books, &book)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// UpdateBook updates a book record.
func (r *repository) UpdateBook(book *data.Book) error {
	query := `
		UPDATE books
		SET title = $1, author = $2, isbn = $3, category = $4, publication_year = $5, total_quantity = $6, available_quantity = $7, cover_url = $8, version = version + 1
		WHERE id = $9 AND version = $10
		RETURNING version`
	args := []interface{}{
		book.Title,
		book.Author,
		book.Isbn,
		book.Category,
		book.PublicationYear,
		book.TotalQuantity,
		book.AvailableQuantity,
		book.CoverURL,
		book.ID,
		book.Version,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&book.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "books_isbn_key"`:
			return ErrDuplicateRecord
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	return nil
}

// DeleteBook deletes a book record.
func (r *repository) DeleteBook(bookID int64) error {
	if bookID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM books
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, bookID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
