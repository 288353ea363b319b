package handler

import (
	"context"
	"net/http"

	"github.com/taskboard-dev/taskboard/backend/internal/service"
	"github.com/taskboard-dev/taskboard/shared/config"
	"github.com/taskboard-dev/taskboard/shared/utils"
)

// HealthChecker reports whether the store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	board  service.BoardService
	card   service.CardService
	item   service.ItemService
	health HealthChecker
	cfg    *config.Config
}

func New(board service.BoardService, card service.CardService, item service.ItemService, health HealthChecker, cfg *config.Config) *Handler {
	return &Handler{board: board, card: card, item: item, health: health, cfg: cfg}
}

func writeJSON(w http.ResponseWriter, v any) {
	utils.WriteJSON(w, http.StatusOK, v)
}
