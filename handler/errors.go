package handler

import (
	"fmt"
	"net/http"
)

func (h *Handler) logError(r *http.Request, err error) {
	h.logger.PrintError(err, map[string]string{
		"request_method": r.Method,
		"request_url":    r.URL.String(),
	})
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := envelope{"error": message}
	err := h.encodeJSON(w, status, env, nil)
	if err != nil {
		h.logError(r, err)
		w.WriteHeader(500)
	}
}

func (h *Handler) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	h.logError(r, err)
	message := "the server encountered a problem and could not process your request"
	h.errorResponse(w, r, http.StatusInternalServerError, message)
}

func (h *Handler) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	h.errorResponse(w, r, http.StatusNotFound, message)
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("the %s method is not supported for this resource", r.Method)
	h.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

func (h *Handler) contentTooLargeResponse(w http.ResponseWriter, r *http.Request) {
	message := "the request body is too large"
	h.errorResponse(w, r, http.StatusRequestEntityTooLarge, message)
}

func (h *Handler) unsupportedMediaTypeResponse(w http.ResponseWriter, r *http.Request) {
	message := "the file type is not supported for this resource"
	h.errorResponse(w, r, http.StatusUnsupportedMediaType, message)
}

func (h *Handler) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	h.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (h *Handler) editConflictResponse(w http.ResponseWriter, r *http.Request) {
	message := "unable to update the record due to an edit conflict, please try again"
	h.errorResponse(w, r, http.StatusConflict, message)
}

func (h *Handler) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	h.errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
}

func (h *Handler) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	message := "rate limit exceeded"
	h.errorResponse(w, r, http.StatusTooManyRequests, message)
}

func (h *Handler) invalidCredentialsResponse(w http.ResponseWriter, r *http.Request) {
	message := "invalid authentication credentials"
	h.errorResponse(w, r, http.StatusUnauthorized, message)
}

func (h *Handler) bookNotAvailableResponse(w http.ResponseWriter, r *http.Request) {
	message := "no copies of this book are currently available"
	h.errorResponse(w, r, http.StatusConflict, message)
}

func (h *Handler) borrowLimitReachedResponse(w http.ResponseWriter, r *http.Request) {
	message := "the member has reached the maximum number of active borrows"
	h.errorResponse(w, r, http.StatusConflict, message)
}

func (h *Handler) memberSuspendedResponse(w http.ResponseWriter, r *http.Request) {
	message := "the member account is suspended"
	h.errorResponse(w, r, http.StatusForbidden, message)
}

func (h *Handler) alreadyReturnedResponse(w http.ResponseWriter, r *http.Request) {
	message := "the book on this borrow record has already been returned"
	h.errorResponse(w, r, http.StatusConflict, message)
}

func (h *Handler) outstandingBorrowsResponse(w http.ResponseWriter, r *http.Request) {
	message := "the record cannot be deleted while books are still out on loan"
	h.errorResponse(w, r, http.StatusConflict, message)
}
