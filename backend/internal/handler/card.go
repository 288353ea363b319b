package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taskboard-dev/taskboard/shared/api"
	"github.com/taskboard-dev/taskboard/shared/utils"
)

func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	boardId := chi.URLParam(r, "boardId")

	var body api.CreateCardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	card, err := h.card.Create(r.Context(), boardId, body.Title, body.Color)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, card)
}

func (h *Handler) UpdateCardColor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "cardId")

	var body api.UpdateCardColorRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	card, err := h.card.UpdateColor(r.Context(), id, body.Color)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, card)
}

func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "cardId")

	if err := h.card.Delete(r.Context(), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
