package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taskboard-dev/taskboard/shared/api"
	"github.com/taskboard-dev/taskboard/shared/domain"
	"github.com/taskboard-dev/taskboard/shared/utils"
)

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	cardId := chi.URLParam(r, "cardId")

	var body api.CreateItemRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	item, err := h.item.Create(r.Context(), cardId, body.Title, domain.Priority(body.Priority))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	cardId := chi.URLParam(r, "cardId")

	items, err := h.item.List(r.Context(), cardId, h.parsePage(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.ItemListResponse{Success: true, Data: items})
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "itemId")

	var body api.UpdateItemRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, h.item.Reject(r.Context(), id, err))
		return
	}

	item, err := h.item.Update(r.Context(), id, domain.ItemPatch{Completed: body.Completed, Priority: body.Priority})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, item)
}

func (h *Handler) MoveItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "itemId")

	var body api.MoveItemRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, h.item.Reject(r.Context(), id, err))
		return
	}

	item, err := h.item.Move(r.Context(), id, body.TargetCardId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, item)
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "itemId")

	if err := h.item.Delete(r.Context(), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
