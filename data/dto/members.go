package dto

import "github.com/ndukwe/athenaeum/data"

// RegisterMemberRequestBody defines the request body for RegisterMember service.
type RegisterMemberRequestBody struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// UpdateMemberRequestBody defines the request body for UpdateMember service. The fields are
// set to a pointer type to allow partial updates based on whether the value is set to nil.
type UpdateMemberRequestBody struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Phone  *string `json:"phone"`
	Status *string `json:"status"`
}

// QsListMembers defines the query strings used for listing members.
type QsListMembers struct {
	Search  string
	Status  string
	Filters data.Filters
}
