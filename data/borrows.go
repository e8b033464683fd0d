package data

import (
	"math"
	"time"
)

// Borrow record statuses. A record is BORROWED while the book is out,
// RETURNED once it comes back on time, and OVERDUE either while it is
// out past its due date or permanently after a late return.
const (
	BorrowStatusBorrowed = "BORROWED"
	BorrowStatusReturned = "RETURNED"
	BorrowStatusOverdue  = "OVERDUE"
)

// BorrowRecord defines a borrowing transaction model. BookTitle and
// MemberName are read-only conveniences joined in from the related rows.
type BorrowRecord struct {
	ID         int64      `json:"id"`
	BookID     int64      `json:"bookId"`
	MemberID   int64      `json:"memberId"`
	BookTitle  string     `json:"bookTitle,omitempty"`
	MemberName string     `json:"memberName,omitempty"`
	BorrowDate time.Time  `json:"borrowDate"`
	DueDate    time.Time  `json:"dueDate"`
	ReturnDate *time.Time `json:"returnDate,omitempty"`
	Fine       float64    `json:"fine"`
	Status     string     `json:"status"`
}

// MarkReturned settles a borrow record at the given return time. The fine
// is the number of whole days past the due date multiplied by the daily
// rate, rounded to cents. On-time returns settle as RETURNED with no fine,
// late returns settle as OVERDUE.
func (r *BorrowRecord) MarkReturned(at time.Time, finePerDay float64) {
	daysLate := int(at.Sub(r.DueDate).Hours() / 24)
	if daysLate < 0 {
		daysLate = 0
	}
	r.ReturnDate = &at
	r.Fine = math.Round(float64(daysLate)*finePerDay*100) / 100
	if at.After(r.DueDate) {
		r.Status = BorrowStatusOverdue
	} else {
		r.Status = BorrowStatusReturned
	}
}

// OverdueNotice carries the details needed to email a member about an
// overdue borrow.
type OverdueNotice struct {
	RecordID    int64
	BookTitle   string
	MemberName  string
	MemberEmail string
	DueDate     time.Time
}
