package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ndukwe/athenaeum/data/dto"
	"github.com/ndukwe/athenaeum/internal/validator"
	"github.com/ndukwe/athenaeum/service"
)

// CreateBook godoc
// @Summary Add a new book to the catalogue
// @Description This endpoint adds a new book. All copies of a new book start out available.
// @Tags books
// @Accept  json
// @Produce json
// @Param body body dto.CreateBookRequestBody true "JSON request body"
// @Success 201 {object} data.Book
// @Failure 400
// @Failure 422
// @Failure 500
// @Router /books [post]
func (h *Handler) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateBookRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	book, err := h.service.CreateBook(requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/books/%d", book.ID))
	err = h.encodeJSON(w, http.StatusCreated, envelope{"book": book}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ShowBook godoc
// @Summary Show details of a book
// @Description This endpoint shows the details of a specific book
// @Tags books
// @Accept  json
// @Produce json
// @Param bookId path int true "ID of book to show"
// @Success 200 {object} data.Book
// @Failure 404
// @Failure 500
// @Router /books/{bookId} [get]
func (h *Handler) showBookHandler(w http.ResponseWriter, r *http.Request) {
	// httprouter refuses a static /books/available route alongside the :bookId
	// wildcard, so the listing of available books is dispatched here.
	if h.readStringParam(r, "bookId") == "available" {
		h.listAvailableBooksHandler(w, r)
		return
	}
	bookID, err := h.readIDParam(r, "bookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	book, err := h.service.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ListBooks godoc
// @Summary List all books
// @Description This endpoint lists all books. The list can be searched, filtered by category and sorted.
// @Tags books
// @Accept  json
// @Produce json
// @Param search query string false "Search by title, author or ISBN"
// @Param category query string false "Filter by category"
// @Param page query int false "Query string param for pagination (min 1)"
// @Param page_size query int false "Query string param for pagination (max 100)"
// @Param sort query string false "Sort by ascending or descending order. Asc: id, title, author, publication_year, created_at. Desc: -id, -title, -author, -publication_year, -created_at"
// @Success 200 {array} data.Book
// @Failure 422
// @Failure 500
// @Router /books [get]
func (h *Handler) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsListBooks
	v := validator.New()
	qs := r.URL.Query()
	qsInput.Search = h.readString(qs, "search", "")
	qsInput.Category = h.readString(qs, "category", "")
	qsInput.Filters.Page = h.readInt(qs, "page", 1, v)
	qsInput.Filters.PageSize = h.readInt(qs, "page_size", 20, v)
	qsInput.Filters.Sort = h.readString(qs, "sort", "id")
	qsInput.Filters.SortSafeList = []string{"id", "title", "author", "publication_year", "created_at", "-id", "-title", "-author", "-publication_year", "-created_at"}
	books, metadata, err := h.service.ListBooks(qsInput.Search, qsInput.Category, qsInput.Filters)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"books": books, "metadata": metadata}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ListAvailableBooks godoc
// @Summary List available books
// @Description This endpoint lists all books with at least one copy available for borrowing
// @Tags books
// @Accept  json
// @Produce json
// @Success 200 {array} data.Book
// @Failure 500
// @Router /books/available [get]
func (h *Handler) listAvailableBooksHandler(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.ListAvailableBooks()
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"books": books}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// UpdateBook godoc
// @Summary Update details of a book
// @Description This endpoint updates the details of a specific book
// @Tags books
// @Accept  json
// @Produce json
// @Param bookId path int true "ID of book to update"
// @Param body body dto.UpdateBookRequestBody true "JSON request body"
// @Success 200 {object} data.Book
// @Failure 400
// @Failure 404
// @Failure 409
// @Failure 422
// @Failure 500
// @Router /books/{bookId} [put]
func (h *Handler) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.UpdateBookRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	bookID, err := h.readIDParam(r, "bookId")
	if err != nil || bookID < 1 {
		h.notFoundResponse(w, r)
		return
	}
	book, err := h.service.UpdateBook(bookID, requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// UpdateBookCover godoc
// @Summary Upload a cover image for a book
// @Description This endpoint uploads a jpeg or png cover image for a specific book
// @Tags books
// @Accept  mpfd
// @Produce json
// @Param bookId path int true "ID of book to upload cover for"
// @Param cover formData file true "Cover image (jpeg or png, max 2MB)"
// @Success 200 {object} data.Book
// @Failure 400
// @Failure 404
// @Failure 409
// @Failure 413
// @Failure 415
// @Failure 500
// @Router /books/{bookId}/cover [patch]
func (h *Handler) updateBookCoverHandler(w http.ResponseWriter, r *http.Request) {
	// Set 2MB limit for request body size
	maxBytes := int64(2_097_152)
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	bookID, err := h.readIDParam(r, "bookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	book, err := h.service.UpdateBookCover(bookID, r)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrContentTooLarge):
			h.contentTooLargeResponse(w, r)
		case errors.Is(err, service.ErrBadRequest):
			h.badRequestResponse(w, r, err)
		case errors.Is(err, service.ErrUnsupportedMediaType):
			h.unsupportedMediaTypeResponse(w, r)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// DeleteBook godoc
// @Summary Delete a book
// @Description This endpoint deletes a specific book. A book with copies out on loan cannot be deleted.
// @Tags books
// @Accept  json
// @Produce json
// @Param bookId path int true "ID of book to delete"
// @Success 200
// @Failure 404
// @Failure 409
// @Failure 500
// @Router /books/{bookId} [delete]
func (h *Handler) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r, "bookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	err = h.service.DeleteBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrOutstandingBorrows):
			h.outstandingBorrowsResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"message": "book successfully deleted"}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// LookupBookByIsbn godoc
// @Summary Look up catalogue details for an ISBN
// @Description This endpoint fetches title, publisher and publication year for an ISBN from the Open Library API
// @Tags books
// @Accept  json
// @Produce json
// @Param isbn path string true "ISBN (10 or 13 digits)"
// @Success 200 {object} dto.BookMetadata
// @Failure 404
// @Failure 422
// @Failure 500
// @Router /isbn/{isbn} [get]
func (h *Handler) lookupBookByIsbnHandler(w http.ResponseWriter, r *http.Request) {
	isbn := h.readStringParam(r, "isbn")
	metadata, err := h.service.LookupBookByIsbn(isbn)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"book": metadata}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
