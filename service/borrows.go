package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ndukwe/athenaeum/data"
	"github.com/ndukwe/athenaeum/internal/mailer"
	"github.com/ndukwe/athenaeum/internal/validator"
	"github.com/ndukwe/athenaeum/repository"
)

type borrows interface {
	BorrowBook(bookID int64, memberID int64) (*data.BorrowRecord, error)
	ReturnBook(borrowID int64) (*data.BorrowRecord, error)
	ListActiveBorrows() ([]*data.BorrowRecord, error)
	ListOverdueBorrows() ([]*data.BorrowRecord, error)
	ListMemberBorrows(memberID int64, filters data.Filters) ([]*data.BorrowRecord, data.Metadata, error)
	SweepOverdueBorrows() (int, error)
	RunOverdueSweeper(interval time.Duration)
}

// BorrowBook service checks out a copy of a book to a member. The member must
// be ACTIVE and below the loan limit, and the book must have a copy available.
func (s *service) BorrowBook(bookID int64, memberID int64) (*data.BorrowRecord, error) {
	v := validator.New()
	v.Check(bookID > 0, "bookId", "must be provided and greater than zero")
	v.Check(memberID > 0, "memberId", "must be provided and greater than zero")
	if !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	member, err := s.repo.GetMember(memberID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			v.AddError("memberId", "no member with this ID exists")
			return nil, s.failedValidation(v.Errors)
		default:
			return nil, err
		}
	}
	if member.Status == data.MemberStatusSuspended {
		return nil, ErrMemberSuspended
	}
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			v.AddError("bookId", "no book with this ID exists")
			return nil, s.failedValidation(v.Errors)
		default:
			return nil, err
		}
	}
	record := &data.BorrowRecord{
		BookID:     book.ID,
		MemberID:   member.ID,
		BookTitle:  book.Title,
		MemberName: member.Name,
		Status:     data.BorrowStatusBorrowed,
	}
	err = s.repo.CreateBorrowRecord(record, s.config.Loans.PeriodDays, s.config.Loans.MaxActiveLoans)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookNotAvailable):
			return nil, ErrBookNotAvailable
		case errors.Is(err, repository.ErrBorrowLimitReached):
			return nil, ErrBorrowLimitReached
		default:
			return nil, err
		}
	}
	return record, nil
}

// ReturnBook service settles a borrow record and releases the copy back to
// the book. A record past its due date settles as OVERDUE with a fine, an
// on-time record settles as RETURNED.
func (s *service) ReturnBook(borrowID int64) (*data.BorrowRecord, error) {
	record, err := s.repo.GetBorrowRecord(borrowID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if record.ReturnDate != nil {
		return nil, ErrAlreadyReturned
	}
	record.MarkReturned(time.Now(), s.config.Loans.FinePerDay)
	err = s.repo.ReturnBorrowRecord(record)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			// The record was returned by a concurrent request after we read it.
			return nil, ErrAlreadyReturned
		default:
			return nil, err
		}
	}
	return record, nil
}

// ListActiveBorrows service retrieves all borrow records for books that are
// currently out and not yet due.
func (s *service) ListActiveBorrows() ([]*data.BorrowRecord, error) {
	records, err := s.repo.GetAllActiveBorrowRecords()
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListOverdueBorrows service retrieves all borrow records for books that are
// currently out past their due date.
func (s *service) ListOverdueBorrows() ([]*data.BorrowRecord, error) {
	records, err := s.repo.GetAllOverdueBorrowRecords()
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListMemberBorrows service retrieves a paginated list of a member's borrow
// records, both current and settled.
func (s *service) ListMemberBorrows(memberID int64, filters data.Filters) ([]*data.BorrowRecord, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		return nil, data.Metadata{}, s.failedValidation(v.Errors)
	}
	_, err := s.repo.GetMember(memberID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, data.Metadata{}, ErrRecordNotFound
		default:
			return nil, data.Metadata{}, err
		}
	}
	records, metadata, err := s.repo.GetAllBorrowRecordsForMember(memberID, filters)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	return records, metadata, nil
}

// SweepOverdueBorrows service persists the OVERDUE status on every unreturned
// borrow record past its due date and emails each affected member. It returns
// the number of newly marked records.
func (s *service) SweepOverdueBorrows() (int, error) {
	notices, err := s.repo.MarkOverdueBorrowRecords()
	if err != nil {
		return 0, err
	}
	for _, notice := range notices {
		notice := notice
		s.background(func() {
			data := map[string]string{
				"memberName": strings.Split(notice.MemberName, " ")[0],
				"bookTitle":  notice.BookTitle,
				"dueDate":    notice.DueDate.Format("2 January 2006"),
				"finePerDay": fmt.Sprintf("%.2f", s.config.Loans.FinePerDay),
			}
			mailer := mailer.New(s.config.Smtp.Host, s.config.Smtp.Port, s.config.Smtp.Username, s.config.Smtp.Password, s.config.Smtp.Sender)
			err := mailer.Send(notice.MemberEmail, "overdue_notice.tmpl", data)
			if err != nil {
				s.logger.PrintError(err, nil)
			}
		})
	}
	return len(notices), nil
}

// RunOverdueSweeper service runs an overdue sweep immediately and then on
// every tick of the given interval. It blocks and is meant to be called in
// its own goroutine.
func (s *service) RunOverdueSweeper(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		count, err := s.SweepOverdueBorrows()
		if err != nil {
			s.logger.PrintError(err, nil)
		} else if count > 0 {
			s.logger.PrintInfo("marked overdue borrow records", map[string]string{
				"count": strconv.Itoa(count),
			})
		}
		<-ticker.C
	}
}
