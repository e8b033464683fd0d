package service

import (
	"github.com/ndukwe/athenaeum/data"
)

type stats interface {
	GetStats() (*data.Stats, error)
}

// GetStats service retrieves library-wide counts for the dashboard.
func (s *service) GetStats() (*data.Stats, error) {
	stats, err := s.repo.GetDashboardStats()
	if err != nil {
		return nil, err
	}
	return stats, nil
}
