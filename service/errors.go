package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrFailedValidation     = errors.New("failed validation")
	ErrRecordNotFound       = errors.New("record not found")
	ErrEditConflict         = errors.New("edit conflict")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrContentTooLarge      = errors.New("content too large")
	ErrBadRequest           = errors.New("bad request")
	ErrBookNotAvailable     = errors.New("book not available")
	ErrBorrowLimitReached   = errors.New("borrow limit reached")
	ErrMemberSuspended      = errors.New("member suspended")
	ErrAlreadyReturned      = errors.New("already returned")
	ErrOutstandingBorrows   = errors.New("outstanding borrows")
)

// failedValidation wraps ErrFailedValidation with every entry of a validation
// error map, sorted by key so the message is stable.
func (s *service) failedValidation(errorMap map[string]string) error {
	keys := make([]string, 0, len(errorMap))
	for k := range errorMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	details := make([]string, 0, len(keys))
	for _, k := range keys {
		details = append(details, fmt.Sprintf("%q %s", k, errorMap[k]))
	}
	return fmt.Errorf("%w: %s", ErrFailedValidation, strings.Join(details, "; "))
}
