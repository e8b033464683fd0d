package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ndukwe/athenaeum/data"
	"github.com/ndukwe/athenaeum/data/dto"
	"github.com/ndukwe/athenaeum/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookHandler(t *testing.T) {
	t.Run("creates a book and sets the Location header", func(t *testing.T) {
		var captured dto.CreateBookRequestBody
		svc := &stubService{
			createBook: func(requestBody dto.CreateBookRequestBody) (*data.Book, error) {
				captured = requestBody
				return &data.Book{
					ID:                7,
					Title:             requestBody.Title,
					Author:            requestBody.Author,
					Isbn:              requestBody.Isbn,
					TotalQuantity:     requestBody.TotalQuantity,
					AvailableQuantity: requestBody.TotalQuantity,
				}, nil
			},
		}
		h := newTestHandler(svc)
		body := `{"title": "The Go Programming Language", "author": "Alan Donovan", "isbn": "9780134190440", "totalQuantity": 3}`
		req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(body))
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "/books/7", rr.Header().Get("Location"))
		assert.Equal(t, "9780134190440", captured.Isbn)
		assert.Equal(t, int32(3), captured.TotalQuantity)

		var got struct {
			Book data.Book `json:"book"`
		}
		require.NoError(t, decodeBody(rr, &got))
		assert.Equal(t, int64(7), got.Book.ID)
		assert.Equal(t, int32(3), got.Book.AvailableQuantity)
	})

	t.Run("responds 422 when the service rejects the book", func(t *testing.T) {
		svc := &stubService{
			createBook: func(requestBody dto.CreateBookRequestBody) (*data.Book, error) {
				return nil, service.ErrFailedValidation
			},
		}
		h := newTestHandler(svc)
		body := `{"title": "x", "author": "y", "isbn": "123", "totalQuantity": 1}`
		req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(body))
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("responds 400 on malformed JSON without calling the service", func(t *testing.T) {
		h := newTestHandler(&stubService{})
		req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(`{"title":`))
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("responds 400 on unknown body fields", func(t *testing.T) {
		h := newTestHandler(&stubService{})
		req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(`{"publisher": "nope"}`))
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		var got struct {
			Error string `json:"error"`
		}
		require.NoError(t, decodeBody(rr, &got))
		assert.Contains(t, got.Error, "unknown key")
	})
}

func TestShowBookHandler(t *testing.T) {
	t.Run("returns a book by ID", func(t *testing.T) {
		svc := &stubService{
			getBook: func(bookID int64) (*data.Book, error) {
				return &data.Book{ID: bookID, Title: "Clean Architecture"}, nil
			},
		}
		h := newTestHandler(svc)
		req := httptest.NewRequest(http.MethodGet, "/books/42", nil)
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var got struct {
			Book data.Book `json:"book"`
		}
		require.NoError(t, decodeBody(rr, &got))
		assert.Equal(t, int64(42), got.Book.ID)
	})

	t.Run("responds 404 for an unknown book", func(t *testing.T) {
		svc := &stubService{
			getBook: func(bookID int64) (*data.Book, error) {
				return nil, service.ErrRecordNotFound
			},
		}
		h := newTestHandler(svc)
		req := httptest.NewRequest(http.MethodGet, "/books/42", nil)
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("responds 404 for a non-numeric ID", func(t *testing.T) {
		h := newTestHandler(&stubService{})
		req := httptest.NewRequest(http.MethodGet, "/books/abc", nil)
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("dispatches /books/available to the available listing", func(t *testing.T) {
		svc := &stubService{
			listAvailableBooks: func() ([]*data.Book, error) {
				return []*data.Book{
					{ID: 1, Title: "In stock", AvailableQuantity: 2},
				}, nil
			},
		}
		h := newTestHandler(svc)
		req := httptest.NewRequest(http.MethodGet, "/books/available", nil)
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var got struct {
			Books []data.Book `json:"books"`
		}
		require.NoError(t, decodeBody(rr, &got))
		require.Len(t, got.Books, 1)
		assert.Equal(t, "In stock", got.Books[0].Title)
	})
}

func TestListBooksHandler(t *testing.T) {
	t.Run("passes query string filters to the service", func(t *testing.T) {
		var gotSearch, gotCategory string
		var gotFilters data.Filters
		svc := &stubService{
			listBooks: func(search string, category string, filters data.Filters) ([]*data.Book, data.Metadata, error) {
				gotSearch, gotCategory, gotFilters = search, category, filters
				return []*data.Book{{ID: 1}}, data.Metadata{CurrentPage: 2, PageSize: 5, TotalRecords: 11}, nil
			},
		}
		h := newTestHandler(svc)
		req := httptest.NewRequest(http.MethodGet, "/books?search=go&category=Programming&page=2&page_size=5&sort=-title", nil)
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "go", gotSearch)
		assert.Equal(t, "Programming", gotCategory)
		assert.Equal(t, 2, gotFilters.Page)
		assert.Equal(t, 5, gotFilters.PageSize)
		assert.Equal(t, "-title", gotFilters.Sort)

		var got struct {
			Books    []data.Book   `json:"books"`
			Metadata data.Metadata `json:"metadata"`
		}
		require.NoError(t, decodeBody(rr, &got))
		assert.Equal(t, 11, got.Metadata.TotalRecords)
	})

	t.Run("responds 422 when the service rejects the filters", func(t *testing.T) {
		svc := &stubService{
			listBooks: func(search string, category string, filters data.Filters) ([]*data.Book, data.Metadata, error) {
				return nil, data.Metadata{}, service.ErrFailedValidation
			},
		}
		h := newTestHandler(svc)
		req := httptest.NewRequest(http.MethodGet, "/books?page=-1", nil)
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}

func TestUpdateBookHandler(t *testing.T) {
	t.Run("updates a book", func(t *testing.T) {
		svc := &stubService{
			updateBook: func(bookID int64, requestBody dto.UpdateBookRequestBody) (*data.Book, error) {
				require.NotNil(t, requestBody.TotalQuantity)
				return &data.Book{ID: bookID, TotalQuantity: *requestBody.TotalQuantity}, nil
			},
		}
		h := newTestHandler(svc)
		req := httptest.NewRequest(http.MethodPut, "/books/3", strings.NewReader(`{"totalQuantity": 10}`))
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var got struct {
			Book data.Book `json:"book"`
		}
		require.NoError(t, decodeBody(rr, &got))
		assert.Equal(t, int32(10), got.Book.TotalQuantity)
	})

	t.Run("responds 409 on an edit conflict", func(t *testing.T) {
		svc := &stubService{
			updateBook: func(bookID int64, requestBody dto.UpdateBookRequestBody) (*data.Book, error) {
				return nil, service.ErrEditConflict
			},
		}
		h := newTestHandler(svc)
		req := httptest.NewRequest(http.MethodPut, "/books/3", strings.NewReader(`{"title": "x"}`))
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("responds 404 for an unknown book", func(t *testing.T) {
		svc := &stubService{
			updateBook: func(bookID int64, requestBody dto.UpdateBookRequestBody) (*data.Book, error) {
				return nil, service.ErrRecordNotFound
			},
		}
		h := newTestHandler(svc)
		req := httptest.NewRequest(http.MethodPut, "/books/999", strings.NewReader(`{"title": "x"}`))
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDeleteBookHandler(t *testing.T) {
	t.Run("deletes a book", func(t *testing.T) {
		svc := &stubService{
			deleteBook: func(bookID int64) error { return nil },
		}
		h := newTestHandler(svc)
		req := httptest.NewRequest(http.MethodDelete, "/books/3", nil)
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var got struct {
			Message string `json:"message"`
		}
		require.NoError(t, decodeBody(rr, &got))
		assert.Equal(t, "book successfully deleted", got.Message)
	})

	t.Run("responds 409 while copies are out on loan", func(t *testing.T) {
		svc := &stubService{
			deleteBook: func(bookID int64) error { return service.ErrOutstandingBorrows },
		}
		h := newTestHandler(svc)
		req := httptest.NewRequest(http.MethodDelete, "/books/3", nil)
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestUpdateBookCoverHandler(t *testing.T) {
	t.Run("stores the cover URL", func(t *testing.T) {
		svc := &stubService{
			updateBookCover: func(bookID int64, r *http.Request) (*data.Book, error) {
				return &data.Book{ID: bookID, CoverURL: "https://covers.example.com/abc.png"}, nil
			},
		}
		h := newTestHandler(svc)
		req := httptest.NewRequest(http.MethodPatch, "/books/3/cover", nil)
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var got struct {
			Book data.Book `json:"book"`
		}
		require.NoError(t, decodeBody(rr, &got))
		assert.Equal(t, "https://covers.example.com/abc.png", got.Book.CoverURL)
	})

	t.Run("responds 415 for an unsupported file type", func(t *testing.T) {
		svc := &stubService{
			updateBookCover: func(bookID int64, r *http.Request) (*data.Book, error) {
				return nil, service.ErrUnsupportedMediaType
			},
		}
		h := newTestHandler(svc)
		req := httptest.NewRequest(http.MethodPatch, "/books/3/cover", nil)
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
	})

	t.Run("responds 413 for an oversized upload", func(t *testing.T) {
		svc := &stubService{
			updateBookCover: func(bookID int64, r *http.Request) (*data.Book, error) {
				return nil, service.ErrContentTooLarge
			},
		}
		h := newTestHandler(svc)
		req := httptest.NewRequest(http.MethodPatch, "/books/3/cover", nil)
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	})
}

func TestLookupBookByIsbnHandler(t *testing.T) {
	t.Run("returns catalogue details for an ISBN", func(t *testing.T) {
		publicationYear := int32(2015)
		svc := &stubService{
			lookupBookByIsbn: func(isbn string) (*dto.BookMetadata, error) {
				return &dto.BookMetadata{
					Title:           "The Go Programming Language",
					Publisher:       "Addison-Wesley",
					PublicationYear: publicationYear,
					Isbn:            isbn,
				}, nil
			},
		}
		h := newTestHandler(svc)
		req := httptest.NewRequest(http.MethodGet, "/isbn/9780134190440", nil)
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var got struct {
			Book dto.BookMetadata `json:"book"`
		}
		require.NoError(t, decodeBody(rr, &got))
		assert.Equal(t, "Addison-Wesley", got.Book.Publisher)
		assert.Equal(t, int32(2015), got.Book.PublicationYear)
	})

	t.Run("responds 404 when the ISBN is not in the catalogue", func(t *testing.T) {
		svc := &stubService{
			lookupBookByIsbn: func(isbn string) (*dto.BookMetadata, error) {
				return nil, service.ErrRecordNotFound
			},
		}
		h := newTestHandler(svc)
		req := httptest.NewRequest(http.MethodGet, "/isbn/9780134190440", nil)
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("responds 422 for a malformed ISBN", func(t *testing.T) {
		svc := &stubService{
			lookupBookByIsbn: func(isbn string) (*dto.BookMetadata, error) {
				return nil, service.ErrFailedValidation
			},
		}
		h := newTestHandler(svc)
		req := httptest.NewRequest(http.MethodGet, "/isbn/123", nil)
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}
