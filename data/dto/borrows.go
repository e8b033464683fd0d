package dto

import "github.com/ndukwe/athenaeum/data"

// BorrowBookRequestBody defines the request body for BorrowBook service.
type BorrowBookRequestBody struct {
	BookID   int64 `json:"bookId"`
	MemberID int64 `json:"memberId"`
}

// QsListMemberBorrows defines the query strings used for listing a member's borrow history.
type QsListMemberBorrows struct {
	Filters data.Filters
}
