package handler

import (
	"net/http"
	"strconv"

	"github.com/taskboard-dev/taskboard/shared/domain"
)

// parseIntParam returns fallback for a missing, non-numeric or negative value.
func parseIntParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		return fallback
	}
	return val
}

func (h *Handler) parsePage(r *http.Request) domain.Page {
	limit := parseIntParam(r, "limit", h.cfg.Public.DefaultPageLimit)
	if limit == 0 {
		limit = h.cfg.Public.DefaultPageLimit
	}
	return domain.Page{
		Limit:  limit,
		Offset: parseIntParam(r, "offset", 0),
	}
}
