package dto

import "github.com/ndukwe/athenaeum/data"

// QsListBooks defines the query strings used for listing books.
type QsListBooks struct {
	Search   string
	Category string
	Filters  data.Filters
}

// CreateBookRequestBody defines the request body for CreateBook service.
type CreateBookRequestBody struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	Isbn            string `json:"isbn"`
	Category        string `json:"category"`
	PublicationYear int32  `json:"publicationYear"`
	TotalQuantity   int32  `json:"totalQuantity"`
}

// UpdateBookRequestBody defines the request body for UpdateBook service. The fields are set
// to a pointer type to allow partial updates based on whether the value is set to nil.
type UpdateBookRequestBody struct {
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	Isbn            *string `json:"isbn"`
	Category        *string `json:"category"`
	PublicationYear *int32  `json:"publicationYear"`
	TotalQuantity   *int32  `json:"totalQuantity"`
}

// BookMetadata holds the catalogue details returned by an external ISBN lookup.
type BookMetadata struct {
	Title           string `json:"title"`
	Publisher       string `json:"publisher,omitempty"`
	PublicationYear int32  `json:"publicationYear,omitempty"`
	Isbn            string `json:"isbn"`
}
