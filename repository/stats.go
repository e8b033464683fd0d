package repository

import (
	"context"
	"time"

	"github.com/ndukwe/athenaeum/data"
)

type stats interface {
	GetDashboardStats() (*data.Stats, error)
}

// GetDashboardStats retrieves library-wide counts in a single query.
func (r *repository) GetDashboardStats() (*data.Stats, error) {
	query := `
		SELECT
			(SELECT count(*) FROM books),
			(SELECT count(*) FROM books WHERE available_quantity > 0),
			(SELECT count(*) FROM members),
			(SELECT count(*) FROM borrow_records WHERE return_date IS NULL AND due_date >= now()),
			(SELECT count(*) FROM borrow_records WHERE return_date IS NULL AND due_date < now())`
	var stats data.Stats
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalBooks,
		&stats.AvailableBooks,
		&stats.TotalMembers,
		&stats.ActiveBorrows,
		&stats.OverdueBorrows,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
