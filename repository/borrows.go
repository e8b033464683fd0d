package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ndukwe/athenaeum/data"
)

type borrows interface {
	CreateBorrowRecord(record *data.BorrowRecord, loanPeriodDays, maxActiveLoans int) error
	GetBorrowRecord(borrowID int64) (*data.BorrowRecord, error)
	ReturnBorrowRecord(record *data.BorrowRecord) error
	GetAllActiveBorrowRecords() ([]*data.BorrowRecord, error)
	GetAllOverdueBorrowRecords() ([]*data.BorrowRecord, error)
	GetAllBorrowRecordsForMember(memberID int64, filters data.Filters) ([]*data.BorrowRecord, data.Metadata, error)
	MarkOverdueBorrowRecords() ([]*data.OverdueNotice, error)
	CountActiveBorrowsForMember(memberID int64) (int64, error)
	CountActiveBorrowsForBook(bookID int64) (int64, error)
}

// CreateBorrowRecord creates a new borrow record inside a transaction which
// also claims a copy of the book. The member's active borrow count and the
// book's availability are both checked within the transaction, so two
// concurrent requests cannot borrow the last copy or exceed the loan limit.
func (r *repository) CreateBorrowRecord(record *data.BorrowRecord, loanPeriodDays, maxActiveLoans int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	query := `
		SELECT count(*)
		FROM borrow_records
		WHERE member_id = $1 AND return_date IS NULL`
	var activeCount int64
	err = tx.QueryRowContext(ctx, query, record.MemberID).Scan(&activeCount)
	if err != nil {
		return err
	}
	if activeCount >= int64(maxActiveLoans) {
		return ErrBorrowLimitReached
	}
	query = `
		UPDATE books
		SET available_quantity = available_quantity - 1, version = version + 1
		WHERE id = $1 AND available_quantity > 0`
	result, err := tx.ExecContext(ctx, query, record.BookID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrBookNotAvailable
	}
	query = `
		INSERT INTO borrow_records (book_id, member_id, due_date, status)
		VALUES ($1, $2, now() + make_interval(days => $3), $4)
		RETURNING id, borrow_date, due_date`
	args := []interface{}{record.BookID, record.MemberID, loanPeriodDays, record.Status}
	err = tx.QueryRowContext(ctx, query, args...).Scan(&record.ID, &record.BorrowDate, &record.DueDate)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// GetBorrowRecord retrieves a borrow record by its ID. The status of an
// unreturned record past its due date reads as OVERDUE even if the overdue
// sweeper has not persisted it yet.
func (r *repository) GetBorrowRecord(borrowID int64) (*data.BorrowRecord, error) {
	if borrowID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT b.id, b.book_id, b.member_id, k.title, m.name, b.borrow_date, b.due_date, b.return_date, b.fine,
			CASE WHEN b.return_date IS NULL AND b.due_date < now() THEN 'OVERDUE' ELSE b.status END
		FROM borrow_records b
		INNER JOIN books k ON b.book_id = k.id
		INNER JOIN members m ON b.member_id = m.id
		WHERE b.id = $1`
	var record data.BorrowRecord
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, borrowID).Scan(
		&record.ID,
		&record.BookID,
		&record.MemberID,
		&record.BookTitle,
		&record.MemberName,
		&record.BorrowDate,
		&record.DueDate,
		&record.ReturnDate,
		&record.Fine,
		&record.Status,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &record, nil
}

// ReturnBorrowRecord settles a borrow record inside a transaction which also
// releases the claimed copy back to the book. The record row is only updated
// if it has not been returned already, so a repeated return request conflicts
// instead of settling twice.
func (r *repository) ReturnBorrowRecord(record *data.BorrowRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	query := `
		UPDATE borrow_records
		SET return_date = $1, fine = $2, status = $3
		WHERE id = $4 AND return_date IS NULL`
	args := []interface{}{record.ReturnDate, record.Fine, record.Status, record.ID}
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrEditConflict
	}
	// The available count never climbs above the total, which may have been
	// lowered while the copy was out.
	query = `
		UPDATE books
		SET available_quantity = available_quantity + 1, version = version + 1
		WHERE id = $1 AND available_quantity < total_quantity`
	_, err = tx.ExecContext(ctx, query, record.BookID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// GetAllActiveBorrowRecords retrieves all borrow records for books that are
// currently out and not yet past their due date.
func (r *repository) GetAllActiveBorrowRecords() ([]*data.BorrowRecord, error) {
	query := `
		SELECT b.id, b.book_id, b.member_id, k.title, m.name, b.borrow_date, b.due_date, b.return_date, b.fine, b.status
		FROM borrow_records b
		INNER JOIN books k ON b.book_id = k.id
		INNER JOIN members m ON b.member_id = m.id
		WHERE b.return_date IS NULL AND b.due_date >= now()
		ORDER BY b.due_date ASC, b.id ASC`
	return r.getAllBorrowRecords(query)
}

// GetAllOverdueBorrowRecords retrieves all borrow records for books that are
// currently out past their due date, whether or not the overdue sweeper has
// persisted the status change yet.
func (r *repository) GetAllOverdueBorrowRecords() ([]*data.BorrowRecord, error) {
	query := `
		SELECT b.id, b.book_id, b.member_id, k.title, m.name, b.borrow_date, b.due_date, b.return_date, b.fine, 'OVERDUE'
		FROM borrow_records b
		INNER JOIN books k ON b.book_id = k.id
		INNER JOIN members m ON b.member_id = m.id
		WHERE b.return_date IS NULL AND b.due_date < now()
		ORDER BY b.due_date ASC, b.id ASC`
	return r.getAllBorrowRecords(query)
}

func (r *repository) getAllBorrowRecords(query string) ([]*data.BorrowRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	records := []*data.BorrowRecord{}
	for rows.Next() {
		var record data.BorrowRecord
		err := rows.Scan(
			&record.ID,
			&record.BookID,
			&record.MemberID,
			&record.BookTitle,
			&record.MemberName,
			&record.BorrowDate,
			&record.DueDate,
			&record.ReturnDate,
			&record.Fine,
			&record.Status,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, &record)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// GetAllBorrowRecordsForMember retrieves a paginated list of a member's
// borrow records, both current and settled.
func (r *repository) GetAllBorrowRecordsForMember(memberID int64, filters data.Filters) ([]*data.BorrowRecord, data.Metadata, error) {
	if memberID < 1 {
		return nil, data.Metadata{}, ErrRecordNotFound
	}
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), b.id, b.book_id, b.member_id, k.title, m.name, b.borrow_date, b.due_date, b.return_date, b.fine,
			CASE WHEN b.return_date IS NULL AND b.due_date < now() THEN 'OVERDUE' ELSE b.status END
		FROM borrow_records b
		INNER JOIN books k ON b.book_id = k.id
		INNER JOIN members m ON b.member_id = m.id
		WHERE b.member_id = $1
		ORDER BY b.%s %s, b.id ASC
		LIMIT $2 OFFSET $3`,
		filters.SortColumn(), filters.SortDirection(),
	)
	args := []interface{}{memberID, filters.Limit(), filters.Offset()}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()
	totalRecords := 0
	records := []*data.BorrowRecord{}
	for rows.Next() {
		var record data.BorrowRecord
		err := rows.Scan(
			&totalRecords,
			&record.ID,
			&record.BookID,
			&record.MemberID,
			&record.BookTitle,
			&record.MemberName,
			&record.BorrowDate,
			&record.DueDate,
			&record.ReturnDate,
			&record.Fine,
			&record.Status,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		records = append(records, &record)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return records, metadata, nil
}

// MarkOverdueBorrowRecords persists the OVERDUE status on every unreturned
// record past its due date and returns a notice for each newly marked record
// so the member can be emailed.
func (r *repository) MarkOverdueBorrowRecords() ([]*data.OverdueNotice, error) {
	query := `
		UPDATE borrow_records b
		SET status = $1
		FROM books k, members m
		WHERE b.book_id = k.id AND b.member_id = m.id
		AND b.return_date IS NULL AND b.due_date < now() AND b.status <> $1
		RETURNING b.id, k.title, m.name, m.email, b.due_date`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, data.BorrowStatusOverdue)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	notices := []*data.OverdueNotice{}
	for rows.Next() {
		var notice data.OverdueNotice
		err := rows.Scan(
			&notice.RecordID,
			&notice.BookTitle,
			&notice.MemberName,
			&notice.MemberEmail,
			&notice.DueDate,
		)
		if err != nil {
			return nil, err
		}
		notices = append(notices, &notice)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return notices, nil
}

// CountActiveBorrowsForMember counts a member's unreturned borrow records.
func (r *repository) CountActiveBorrowsForMember(memberID int64) (int64, error) {
	query := `
		SELECT count(*)
		FROM borrow_records
		WHERE member_id = $1 AND return_date IS NULL`
	var count int64
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, memberID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountActiveBorrowsForBook counts the unreturned borrow records for a book.
func (r *repository) CountActiveBorrowsForBook(bookID int64) (int64, error) {
	query := `
		SELECT count(*)
		FROM borrow_records
		WHERE book_id = $1 AND return_date IS NULL`
	var count int64
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, bookID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
