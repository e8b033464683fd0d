package handler

import (
	"errors"
	"net/http"

	"github.com/ndukwe/athenaeum/data/dto"
	"github.com/ndukwe/athenaeum/internal/validator"
	"github.com/ndukwe/athenaeum/service"
)

// BorrowBook godoc
// @Summary Borrow a book
// @Description This endpoint checks out a copy of a book to a member. The member must be ACTIVE and below the loan limit, and the book must have a copy available.
// @Tags borrows
// @Accept  json
// @Produce json
// @Param body body dto.BorrowBookRequestBody true "JSON request body"
// @Success 201 {object} data.BorrowRecord
// @Failure 400
// @Failure 403
// @Failure 409
// @Failure 422
// @Failure 500
// @Router /borrow [post]
func (h *Handler) borrowBookHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.BorrowBookRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	record, err := h.service.BorrowBook(requestBody.BookID, requestBody.MemberID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrMemberSuspended):
			h.memberSuspendedResponse(w, r)
		case errors.Is(err, service.ErrBookNotAvailable):
			h.bookNotAvailableResponse(w, r)
		case errors.Is(err, service.ErrBorrowLimitReached):
			h.borrowLimitReachedResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusCreated, envelope{"borrowRecord": record}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ReturnBook godoc
// @Summary Return a borrowed book
// @Description This endpoint settles a borrow record. A record past its due date settles as OVERDUE with a fine, an on-time record settles as RETURNED.
// @Tags borrows
// @Accept  json
// @Produce json
// @Param borrowId path int true "ID of borrow record to settle"
// @Success 200 {object} data.BorrowRecord
// @Failure 404
// @Failure 409
// @Failure 500
// @Router /borrow/{borrowId}/return [put]
func (h *Handler) returnBookHandler(w http.ResponseWriter, r *http.Request) {
	borrowID, err := h.readIDParam(r, "borrowId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	record, err := h.service.ReturnBook(borrowID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrAlreadyReturned):
			h.alreadyReturnedResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"borrowRecord": record}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ListActiveBorrows godoc
// @Summary List active borrows
// @Description This endpoint lists all borrow records for books that are currently out and not yet due, soonest due first
// @Tags borrows
// @Accept  json
// @Produce json
// @Success 200 {array} data.BorrowRecord
// @Failure 500
// @Router /borrow/active [get]
func (h *Handler) listActiveBorrowsHandler(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListActiveBorrows()
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"borrowRecords": records}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ListOverdueBorrows godoc
// @Summary List overdue borrows
// @Description This endpoint lists all borrow records for books that are currently out past their due date, longest overdue first
// @Tags borrows
// @Accept  json
// @Produce json
// @Success 200 {array} data.BorrowRecord
// @Failure 500
// @Router /borrow/overdue [get]
func (h *Handler) listOverdueBorrowsHandler(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListOverdueBorrows()
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"borrowRecords": records}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ListMemberBorrows godoc
// @Summary List a member's borrow history
// @Description This endpoint lists a member's borrow records, both current and settled, newest first by default
// @Tags borrows
// @Accept  json
// @Produce json
// @Param memberId path int true "ID of member whose borrow records to list"
// @Param page query int false "Query string param for pagination (min 1)"
// @Param page_size query int false "Query string param for pagination (max 100)"
// @Param sort query string false "Sort by ascending or descending order. Asc: borrow_date, due_date. Desc: -borrow_date, -due_date"
// @Success 200 {array} data.BorrowRecord
// @Failure 404
// @Failure 422
// @Failure 500
// @Router /borrow/member/{memberId} [get]
func (h *Handler) listMemberBorrowsHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsListMemberBorrows
	v := validator.New()
	qs := r.URL.Query()
	qsInput.Filters.Page = h.readInt(qs, "page", 1, v)
	qsInput.Filters.PageSize = h.readInt(qs, "page_size", 20, v)
	qsInput.Filters.Sort = h.readString(qs, "sort", "-borrow_date")
	qsInput.Filters.SortSafeList = []string{"borrow_date", "due_date", "-borrow_date", "-due_date"}
	memberID, err := h.readIDParam(r, "memberId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	records, metadata, err := h.service.ListMemberBorrows(memberID, qsInput.Filters)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"borrowRecords": records, "metadata": metadata}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
