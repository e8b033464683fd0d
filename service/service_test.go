package service

import (
	"io"
	"sync"

	"github.com/ndukwe/athenaeum/config"
	"github.com/ndukwe/athenaeum/data"
	"github.com/ndukwe/athenaeum/internal/jsonlog"
	"github.com/ndukwe/athenaeum/repository"
)

// stubRepo embeds the Repository interface and overrides methods with
// function fields, so each test only wires up the calls it expects.
// An unexpected call panics on the nil function field.
type stubRepo struct {
	repository.Repository
	createBook                   func(book *data.Book) error
	getBook                      func(bookID int64) (*data.Book, error)
	updateBook                   func(book *data.Book) error
	deleteBook                   func(bookID int64) error
	registerMember               func(member *data.Member) error
	getMember                    func(memberID int64) (*data.Member, error)
	updateMember                 func(member *data.Member) error
	deleteMember                 func(memberID int64) error
	createBorrowRecord           func(record *data.BorrowRecord, loanPeriodDays, maxActiveLoans int) error
	getBorrowRecord              func(borrowID int64) (*data.BorrowRecord, error)
	returnBorrowRecord           func(record *data.BorrowRecord) error
	markOverdueBorrowRecords     func() ([]*data.OverdueNotice, error)
	countActiveBorrowsForMember  func(memberID int64) (int64, error)
	countActiveBorrowsForBook    func(bookID int64) (int64, error)
	getAllBorrowRecordsForMember func(memberID int64, filters data.Filters) ([]*data.BorrowRecord, data.Metadata, error)
}

func (s *stubRepo) CreateBook(book *data.Book) error   { return s.createBook(book) }
func (s *stubRepo) GetBook(bookID int64) (*data.Book, error) {
	return s.getBook(bookID)
}
func (s *stubRepo) UpdateBook(book *data.Book) error { return s.updateBook(book) }
func (s *stubRepo) DeleteBook(bookID int64) error    { return s.deleteBook(bookID) }
func (s *stubRepo) RegisterMember(member *data.Member) error {
	return s.registerMember(member)
}
func (s *stubRepo) GetMember(memberID int64) (*data.Member, error) {
	return s.getMember(memberID)
}
func (s *stubRepo) UpdateMember(member *data.Member) error { return s.updateMember(member) }
func (s *stubRepo) DeleteMember(memberID int64) error      { return s.deleteMember(memberID) }
func (s *stubRepo) CreateBorrowRecord(record *data.BorrowRecord, loanPeriodDays, maxActiveLoans int) error {
	return s.createBorrowRecord(record, loanPeriodDays, maxActiveLoans)
}
func (s *stubRepo) GetBorrowRecord(borrowID int64) (*data.BorrowRecord, error) {
	return s.getBorrowRecord(borrowID)
}
func (s *stubRepo) ReturnBorrowRecord(record *data.BorrowRecord) error {
	return s.returnBorrowRecord(record)
}
func (s *stubRepo) MarkOverdueBorrowRecords() ([]*data.OverdueNotice, error) {
	return s.markOverdueBorrowRecords()
}
func (s *stubRepo) CountActiveBorrowsForMember(memberID int64) (int64, error) {
	return s.countActiveBorrowsForMember(memberID)
}
func (s *stubRepo) CountActiveBorrowsForBook(bookID int64) (int64, error) {
	return s.countActiveBorrowsForBook(bookID)
}
func (s *stubRepo) GetAllBorrowRecordsForMember(memberID int64, filters data.Filters) ([]*data.BorrowRecord, data.Metadata, error) {
	return s.getAllBorrowRecordsForMember(memberID, filters)
}

func newTestService(repo repository.Repository) *service {
	var cfg config.Config
	cfg.Loans.PeriodDays = 14
	cfg.Loans.FinePerDay = 0.5
	cfg.Loans.MaxActiveLoans = 3
	var wg sync.WaitGroup
	logger := jsonlog.New(io.Discard, jsonlog.LevelOff)
	return New(cfg, &wg, logger, repo)
}
