package handler

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func (h *Handler) Routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(h.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(h.methodNotAllowed)

	router.HandlerFunc(http.MethodGet, "/books", h.listBooksHandler)
	router.HandlerFunc(http.MethodPost, "/books", h.createBookHandler)
	// GET /books/available is served by showBookHandler because httprouter
	// refuses a static route alongside the :bookId wildcard.
	router.HandlerFunc(http.MethodGet, "/books/:bookId", h.showBookHandler)
	router.HandlerFunc(http.MethodPut, "/books/:bookId", h.updateBookHandler)
	router.HandlerFunc(http.MethodDelete, "/books/:bookId", h.deleteBookHandler)
	router.HandlerFunc(http.MethodPatch, "/books/:bookId/cover", h.updateBookCoverHandler)

	router.HandlerFunc(http.MethodGet, "/members", h.listMembersHandler)
	router.HandlerFunc(http.MethodPost, "/members", h.registerMemberHandler)
	router.HandlerFunc(http.MethodGet, "/members/:memberId", h.showMemberHandler)
	router.HandlerFunc(http.MethodPut, "/members/:memberId", h.updateMemberHandler)
	router.HandlerFunc(http.MethodDelete, "/members/:memberId", h.deleteMemberHandler)

	router.HandlerFunc(http.MethodPost, "/borrow", h.borrowBookHandler)
	router.HandlerFunc(http.MethodPut, "/borrow/:borrowId/return", h.returnBookHandler)
	router.HandlerFunc(http.MethodGet, "/borrow/active", h.listActiveBorrowsHandler)
	router.HandlerFunc(http.MethodGet, "/borrow/overdue", h.listOverdueBorrowsHandler)
	router.HandlerFunc(http.MethodGet, "/borrow/member/:memberId", h.listMemberBorrowsHandler)

	router.HandlerFunc(http.MethodGet, "/isbn/:isbn", h.lookupBookByIsbnHandler)
	router.HandlerFunc(http.MethodGet, "/stats", h.showStatsHandler)

	router.HandlerFunc(http.MethodGet, "/debug/vars", h.basicAuth(expvar.Handler().ServeHTTP))
	router.HandlerFunc(http.MethodGet, "/healthcheck", h.healthcheckHandler)

	// Swagger routes
	router.HandlerFunc(http.MethodGet, "/spec", h.handleSwaggerFile())
	router.HandlerFunc(http.MethodGet, "/docs/*any", httpSwagger.Handler(httpSwagger.URL("/spec")))

	return h.recoverPanic(h.metrics(h.enableCORS(h.rateLimit(router))))
}
