package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ndukwe/athenaeum/data"
)

type members interface {
	RegisterMember(member *data.Member) error
	GetMember(memberID int64) (*data.Member, error)
	GetAllMembers(search, status string, filters data.Filters) ([]*data.Member, data.Metadata, error)
	UpdateMember(member *data.Member) error
	DeleteMember(memberID int64) error
}

// RegisterMember creates a new member record.
func (r *repository) RegisterMember(member *data.Member) error {
	query := `
		INSERT INTO members (name, email, phone, membership_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, registration_date, version`
	args := []interface{}{member.Name, member.Email, member.Phone, member.MembershipID, member.Status}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&member.ID, &member.RegistrationDate, &member.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "members_email_key"`:
			return ErrDuplicateRecord
		case err.Error() == `pq: duplicate key value violates unique constraint "members_membership_id_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// GetMember retrieves a member record by its ID.
func (r *repository) GetMember(memberID int64) (*data.Member, error) {
	if memberID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, name, email, phone, membership_id, registration_date, status, version
		FROM members
		WHERE id = $1`
	var member data.Member
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, memberID).Scan(
		&member.ID,
		&member.Name,
		&member.Email,
		&member.Phone,
		&member.MembershipID,
		&member.RegistrationDate,
		&member.Status,
		&member.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &member, nil
}

// GetAllMembers retrieves a paginated list of all member records.
// Records can be searched, filtered by status and sorted.
func (r *repository) GetAllMembers(search, status string, filters data.Filters) ([]*data.Member, data.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), id, name, email, phone, membership_id, registration_date, status, version
		FROM members
		WHERE (
			to_tsvector('simple', name) ||
			to_tsvector('simple', email::text) ||
			to_tsvector('simple', membership_id)
			@@ plainto_tsquery('simple', $1) OR $1 = ''
		)
		AND (status = $2 OR $2 = '')
		ORDER BY %s %s, id ASC
		LIMIT $3 OFFSET $4`,
		filters.SortColumn(), filters.SortDirection(),
	)
	args := []interface{}{search, status, filters.Limit(), filters.Offset()}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()
	totalRecords := 0
	members := []*data.Member{}
	for rows.Next() {
		var member data.Member
		err := rows.Scan(
			&totalRecords,
			&member.ID,
			&member.Name,
			&member.Email,
			&member.Phone,
			&member.MembershipID,
			&member.RegistrationDate,
			&member.Status,
			&member.Version,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		members = append(members, &member)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return members, metadata, nil
}

// UpdateMember updates a member record.
func (r *repository) UpdateMember(member *data.Member) error {
	query := `
		UPDATE members
		SET name = $1, email = $2, phone = $3, status = $4, version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version`
	args := []interface{}{
		member.Name,
		member.Email,
		member.Phone,
		member.Status,
		member.ID,
		member.Version,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&member.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "members_email_key"`:
			return ErrDuplicateRecord
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	return nil
}

// DeleteMember deletes a member record.
func (r *repository) DeleteMember(memberID int64) error {
	if memberID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM members
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, memberID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
