package service

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/ndukwe/athenaeum/clients"
	"github.com/ndukwe/athenaeum/data"
	"github.com/ndukwe/athenaeum/data/dto"
	"github.com/ndukwe/athenaeum/internal/validator"
	"github.com/ndukwe/athenaeum/repository"
)

type books interface {
	CreateBook(requestBody dto.CreateBookRequestBody) (*data.Book, error)
	GetBook(bookID int64) (*data.Book, error)
	ListBooks(search string, category string, filters data.Filters) ([]*data.Book, data.Metadata, error)
	ListAvailableBooks() ([]*data.Book, error)
	UpdateBook(bookID int64, requestBody dto.UpdateBookRequestBody) (*data.Book, error)
	UpdateBookCover(bookID int64, r *http.Request) (*data.Book, error)
	DeleteBook(bookID int64) error
	LookupBookByIsbn(isbn string) (*dto.BookMetadata, error)
}

// publishYearRX extracts a trailing four-digit year from an Open Library
// publish date, which may be anything from "1980" to "May 1, 1980".
var publishYearRX = regexp.MustCompile(`(\d{4})\s*$`)

// CreateBook service creates a new book. All copies of a new book start out
// available for borrowing.
func (s *service) CreateBook(requestBody dto.CreateBookRequestBody) (*data.Book, error) {
	book := &data.Book{
		Title:             requestBody.Title,
		Author:            requestBody.Author,
		Isbn:              requestBody.Isbn,
		Category:          requestBody.Category,
		PublicationYear:   requestBody.PublicationYear,
		TotalQuantity:     requestBody.TotalQuantity,
		AvailableQuantity: requestBody.TotalQuantity,
	}
	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err := s.repo.CreateBook(book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			v.AddError("isbn", "a book with this ISBN already exists")
			return nil, s.failedValidation(v.Errors)
		default:
			return nil, err
		}
	}
	return book, nil
}

// GetBook service retrieves the details of a book.
func (s *service) GetBook(bookID int64) (*data.Book, error) {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return book, nil
}

// ListBooks service retrieves a paginated list of books. The list can be
// searched, filtered by category and sorted.
func (s *service) ListBooks(search string, category string, filters data.Filters) ([]*data.Book, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		return nil, data.Metadata{}, s.failedValidation(v.Errors)
	}
	books, metadata, err := s.repo.GetAllBooks(search, category, filters)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	return books, metadata, nil
}

// ListAvailableBooks service retrieves all books with at least one copy
// available for borrowing.
func (s *service) ListAvailableBooks() ([]*data.Book, error) {
	books, err := s.repo.GetAllAvailableBooks()
	if err != nil {
		return nil, err
	}
	return books, nil
}

// UpdateBook service updates the details of a specific book. A change to the
// total quantity re-derives the available quantity so that copies currently
// out on loan stay accounted for.
func (s *service) UpdateBook(bookID int64, requestBody dto.UpdateBookRequestBody) (*data.Book, error) {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if requestBody.Title != nil {
		book.Title = *requestBody.Title
	}
	if requestBody.Author != nil {
		book.Author = *requestBody.Author
	}
	if requestBody.Isbn != nil {
		book.Isbn = *requestBody.Isbn
	}
	if requestBody.Category != nil {
		book.Category = *requestBody.Category
	}
	if requestBody.PublicationYear != nil {
		book.PublicationYear = *requestBody.PublicationYear
	}
	v := validator.New()
	if requestBody.TotalQuantity != nil {
		borrowed, err := s.repo.CountActiveBorrowsForBook(book.ID)
		if err != nil {
			return nil, err
		}
		if int64(*requestBody.TotalQuantity) < borrowed {
			v.AddError("totalQuantity", "must not be less than the number of copies currently borrowed")
			return nil, s.failedValidation(v.Errors)
		}
		book.TotalQuantity = *requestBody.TotalQuantity
		book.AvailableQuantity = *requestBody.TotalQuantity - int32(borrowed)
	}
	if data.ValidateBook(v, book); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.UpdateBook(book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			v.AddError("isbn", "a book with this ISBN already exists")
			return nil, s.failedValidation(v.Errors)
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return book, nil
}

// UpdateBookCover service uploads a cover image for a book.
func (s *service) UpdateBookCover(bookID int64, r *http.Request) (*data.Book, error) {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	err = r.ParseMultipartForm(5000)
	if err != nil {
		var maxBytesError *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesError):
			return nil, ErrContentTooLarge
		default:
			return nil, ErrBadRequest
		}
	}
	file, fileHeader, err := r.FormFile("cover")
	if err != nil {
		return nil, ErrBadRequest
	}
	defer file.Close()
	buffer, mtype, err := s.detectMimeType(file, fileHeader)
	if err != nil {
		return nil, err
	}
	supportedMediaType := []string{
		"image/jpeg",
		"image/png",
	}
	if validMime := validator.Mime(mtype, supportedMediaType...); !validMime {
		return nil, ErrUnsupportedMediaType
	}
	s3Client, err := clients.NewS3Client(s.config)
	if err != nil {
		return nil, err
	}
	coverURL, err := s.uploadFileToS3(s3Client, buffer, mtype, fileHeader)
	if err != nil {
		return nil, err
	}
	book.CoverURL = coverURL
	err = s.repo.UpdateBook(book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return book, nil
}

// DeleteBook service deletes a book. A book with copies still out on loan
// cannot be deleted.
func (s *service) DeleteBook(bookID int64) error {
	borrowed, err := s.repo.CountActiveBorrowsForBook(bookID)
	if err != nil {
		return err
	}
	if borrowed > 0 {
		return ErrOutstandingBorrows
	}
	err = s.repo.DeleteBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}

// LookupBookByIsbn service fetches catalogue details for an ISBN from the
// openlibrary API.
func (s *service) LookupBookByIsbn(isbn string) (*dto.BookMetadata, error) {
	v := validator.New()
	if v.Check(validator.Matches(isbn, data.IsbnRX), "isbn", "must be 10 or 13 digits"); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	openLibAPI := &dto.OpenLibAPIRequestBody{}
	url := "https://openlibrary.org/isbn/" + isbn + ".json"
	client := clients.NewHTTPClient()
	bytes, err := s.fetchRemoteResource(client, url)
	if err != nil {
		return nil, err
	}
	err = json.Unmarshal(bytes, &openLibAPI)
	if err != nil {
		return nil, ErrRecordNotFound
	}
	if openLibAPI.Title == "" {
		return nil, ErrRecordNotFound
	}
	metadata := &dto.BookMetadata{
		Title: openLibAPI.Title,
		Isbn:  isbn,
	}
	if len(openLibAPI.Publisher) > 0 {
		metadata.Publisher = openLibAPI.Publisher[0]
	}
	if matches := publishYearRX.FindStringSubmatch(openLibAPI.Date); len(matches) == 2 {
		year, err := strconv.Atoi(matches[1])
		if err == nil {
			metadata.PublicationYear = int32(year)
		}
	}
	return metadata, nil
}
