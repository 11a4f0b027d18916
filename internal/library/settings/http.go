// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package settings

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yomira-reader/internal/platform/request"
	"github.com/taibuivan/yomira-reader/internal/platform/respond"
)

// Handler exposes the preferences over HTTP.
type Handler struct {
	store *Store
}

// NewHandler creates a settings handler.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Routes mounts under /library/settings.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.get)
	router.Patch("/", handler.update)
	router.Post("/reset", handler.reset)

	return router
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.store.Get())
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.store.Update(request.Context(), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) reset(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.store.Reset(request.Context()))
}
