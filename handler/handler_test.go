package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/ndukwe/athenaeum/config"
	"github.com/ndukwe/athenaeum/data"
	"github.com/ndukwe/athenaeum/data/dto"
	"github.com/ndukwe/athenaeum/internal/jsonlog"
	"github.com/ndukwe/athenaeum/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService embeds the Service interface and overrides methods with
// function fields, so each test only wires up the calls it expects.
// An unexpected call panics on the nil function field.
type stubService struct {
	service.Service
	createBook         func(requestBody dto.CreateBookRequestBody) (*data.Book, error)
	getBook            func(bookID int64) (*data.Book, error)
	listBooks          func(search string, category string, filters data.Filters) ([]*data.Book, data.Metadata, error)
	listAvailableBooks func() ([]*data.Book, error)
	updateBook         func(bookID int64, requestBody dto.UpdateBookRequestBody) (*data.Book, error)
	updateBookCover    func(bookID int64, r *http.Request) (*data.Book, error)
	deleteBook         func(bookID int64) error
	lookupBookByIsbn   func(isbn string) (*dto.BookMetadata, error)
	registerMember     func(name string, email string, phone string) (*data.Member, error)
	getMember          func(memberID int64) (*data.Member, error)
	listMembers        func(search string, status string, filters data.Filters) ([]*data.Member, data.Metadata, error)
	updateMember       func(memberID int64, requestBody dto.UpdateMemberRequestBody) (*data.Member, error)
	deleteMember       func(memberID int64) error
	borrowBook         func(bookID int64, memberID int64) (*data.BorrowRecord, error)
	returnBook         func(borrowID int64) (*data.BorrowRecord, error)
	listActiveBorrows  func() ([]*data.BorrowRecord, error)
	listOverdueBorrows func() ([]*data.BorrowRecord, error)
	listMemberBorrows  func(memberID int64, filters data.Filters) ([]*data.BorrowRecord, data.Metadata, error)
	getStats           func() (*data.Stats, error)
}

func (s *stubService) CreateBook(requestBody dto.CreateBookRequestBody) (*data.Book, error) {
	return s.createBook(requestBody)
}
func (s *stubService) GetBook(bookID int64) (*data.Book, error) {
	return s.getBook(bookID)
}
func (s *stubService) ListBooks(search string, category string, filters data.Filters) ([]*data.Book, data.Metadata, error) {
	return s.listBooks(search, category, filters)
}
func (s *stubService) ListAvailableBooks() ([]*data.Book, error) {
	return s.listAvailableBooks()
}
func (s *stubService) UpdateBook(bookID int64, requestBody dto.UpdateBookRequestBody) (*data.Book, error) {
	return s.updateBook(bookID, requestBody)
}
func (s *stubService) UpdateBookCover(bookID int64, r *http.Request) (*data.Book, error) {
	return s.updateBookCover(bookID, r)
}
func (s *stubService) DeleteBook(bookID int64) error { return s.deleteBook(bookID) }
func (s *stubService) LookupBookByIsbn(isbn string) (*dto.BookMetadata, error) {
	return s.lookupBookByIsbn(isbn)
}
func (s *stubService) RegisterMember(name string, email string, phone string) (*data.Member, error) {
	return s.registerMember(name, email, phone)
}
func (s *stubService) GetMember(memberID int64) (*data.Member, error) {
	return s.getMember(memberID)
}
func (s *stubService) ListMembers(search string, status string, filters data.Filters) ([]*data.Member, data.Metadata, error) {
	return s.listMembers(search, status, filters)
}
func (s *stubService) UpdateMember(memberID int64, requestBody dto.UpdateMemberRequestBody) (*data.Member, error) {
	return s.updateMember(memberID, requestBody)
}
func (s *stubService) DeleteMember(memberID int64) error { return s.deleteMember(memberID) }
func (s *stubService) BorrowBook(bookID int64, memberID int64) (*data.BorrowRecord, error) {
	return s.borrowBook(bookID, memberID)
}
func (s *stubService) ReturnBook(borrowID int64) (*data.BorrowRecord, error) {
	return s.returnBook(borrowID)
}
func (s *stubService) ListActiveBorrows() ([]*data.BorrowRecord, error) {
	return s.listActiveBorrows()
}
func (s *stubService) ListOverdueBorrows() ([]*data.BorrowRecord, error) {
	return s.listOverdueBorrows()
}
func (s *stubService) ListMemberBorrows(memberID int64, filters data.Filters) ([]*data.BorrowRecord, data.Metadata, error) {
	return s.listMemberBorrows(memberID, filters)
}
func (s *stubService) GetStats() (*data.Stats, error) { return s.getStats() }

// newTestHandler builds a Handler around a stub service. The zero config
// leaves rate limiting and metrics disabled so tests exercise routes in
// isolation.
func newTestHandler(svc service.Service) *Handler {
	var cfg config.Config
	cfg.Server.Env = "testing"
	logger := jsonlog.New(io.Discard, jsonlog.LevelOff)
	cache := ttlcache.New(ttlcache.WithTTL[string, int64](time.Minute))
	return New(cfg, logger, cache, svc)
}

// decodeBody unmarshals a recorded JSON response body into dst.
func decodeBody(rr *httptest.ResponseRecorder, dst interface{}) error {
	return json.Unmarshal(rr.Body.Bytes(), dst)
}

func TestHealthcheckHandler(t *testing.T) {
	h := newTestHandler(&stubService{})
	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var got struct {
		Status     string `json:"status"`
		SystemInfo struct {
			Environment string `json:"environment"`
			Version     string `json:"version"`
		} `json:"system_info"`
	}
	require.NoError(t, decodeBody(rr, &got))
	assert.Equal(t, "available", got.Status)
	assert.Equal(t, "testing", got.SystemInfo.Environment)
	assert.Equal(t, "1.0.0", got.SystemInfo.Version)
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	h := newTestHandler(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	req = httptest.NewRequest(http.MethodDelete, "/borrow/active", nil)
	rr = httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
