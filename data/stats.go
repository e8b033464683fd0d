package data

// Stats aggregates library-wide counts for the dashboard endpoint.
type Stats struct {
	TotalBooks     int64 `json:"totalBooks"`
	AvailableBooks int64 `json:"availableBooks"`
	TotalMembers   int64 `json:"totalMembers"`
	ActiveBorrows  int64 `json:"activeBorrows"`
	OverdueBorrows int64 `json:"overdueBorrows"`
}
