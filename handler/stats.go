package handler

import (
	"net/http"

	"github.com/jellydator/ttlcache/v3"
	"github.com/ndukwe/athenaeum/data"
)

func (h *Handler) showStatsHandler(w http.ResponseWriter, r *http.Request) {
	// Check whether the dashboard counts are found in cache
	cache := h.cache
	totalBooks := cache.Get("stats:totalBooks")
	availableBooks := cache.Get("stats:availableBooks")
	totalMembers := cache.Get("stats:totalMembers")
	activeBorrows := cache.Get("stats:activeBorrows")
	overdueBorrows := cache.Get("stats:overdueBorrows")
	// If any count is not found, fetch all of them from the database, set them
	// to cache and serve the fresh copy
	if totalBooks == nil || availableBooks == nil || totalMembers == nil || activeBorrows == nil || overdueBorrows == nil {
		stats, err := h.service.GetStats()
		if err != nil {
			h.serverErrorResponse(w, r, err)
			return
		}
		cache.Set("stats:totalBooks", stats.TotalBooks, ttlcache.DefaultTTL)
		cache.Set("stats:availableBooks", stats.AvailableBooks, ttlcache.DefaultTTL)
		cache.Set("stats:totalMembers", stats.TotalMembers, ttlcache.DefaultTTL)
		cache.Set("stats:activeBorrows", stats.ActiveBorrows, ttlcache.DefaultTTL)
		cache.Set("stats:overdueBorrows", stats.OverdueBorrows, ttlcache.DefaultTTL)
		err = h.encodeJSON(w, http.StatusOK, envelope{"stats": stats}, nil)
		if err != nil {
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	stats := &data.Stats{
		TotalBooks:     totalBooks.Value(),
		AvailableBooks: availableBooks.Value(),
		TotalMembers:   totalMembers.Value(),
		ActiveBorrows:  activeBorrows.Value(),
		OverdueBorrows: overdueBorrows.Value(),
	}
	err := h.encodeJSON(w, http.StatusOK, envelope{"stats": stats}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
