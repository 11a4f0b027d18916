// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorites

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yomira-reader/internal/platform/request"
	"github.com/taibuivan/yomira-reader/internal/platform/respond"
	"github.com/taibuivan/yomira-reader/internal/platform/validate"
)

// Handler exposes the favorites list over HTTP.
type Handler struct {
	store *Store
}

// NewHandler creates a favorites handler.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Routes mounts under /library/favorites.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.add)
	router.Post("/toggle", handler.toggle)
	router.Get("/{sourceID}", handler.status)
	router.Delete("/{sourceID}", handler.remove)

	return router
}

type statusResponse struct {
	SourceID   string `json:"source_id"`
	IsFavorite bool   `json:"is_favorite"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.store.List())
}

func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	entry, ok := decodeEntry(writer, request)
	if !ok {
		return
	}

	handler.store.Add(request.Context(), entry)
	respond.Created(writer, handler.store.List())
}

func (handler *Handler) toggle(writer http.ResponseWriter, request *http.Request) {
	entry, ok := decodeEntry(writer, request)
	if !ok {
		return
	}

	isFavorite := handler.store.Toggle(request.Context(), entry)
	respond.OK(writer, statusResponse{SourceID: entry.SourceID, IsFavorite: isFavorite})
}

func (handler *Handler) status(writer http.ResponseWriter, request *http.Request) {
	sourceID := requestutil.Param(request, "sourceID")
	respond.OK(writer, statusResponse{SourceID: sourceID, IsFavorite: handler.store.IsFavorite(sourceID)})
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	handler.store.Remove(request.Context(), requestutil.Param(request, "sourceID"))
	respond.NoContent(writer)
}

// decodeEntry reads and validates an [Entry] body, writing the error response itself.
func decodeEntry(writer http.ResponseWriter, request *http.Request) (Entry, bool) {
	var entry Entry
	if err := requestutil.DecodeJSON(request, &entry); err != nil {
		respond.Error(writer, request, err)
		return entry, false
	}

	validator := &validate.Validator{}
	validator.Required("source_id", entry.SourceID).
		Required("anime_name", entry.AnimeName).
		MaxLen("anime_name", entry.AnimeName, 500)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return entry, false
	}
	return entry, true
}
