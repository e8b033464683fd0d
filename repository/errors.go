package repository

import "errors"

var (
	ErrRecordNotFound     = errors.New("record not found")
	ErrEditConflict       = errors.New("edit conflict")
	ErrDuplicateRecord    = errors.New("duplicate record")
	ErrBookNotAvailable   = errors.New("book not available")
	ErrBorrowLimitReached = errors.New("borrow limit reached")
)
