// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recent

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yomira-reader/internal/platform/request"
	"github.com/taibuivan/yomira-reader/internal/platform/respond"
	"github.com/taibuivan/yomira-reader/internal/platform/validate"
)

// Handler exposes the recent history over HTTP.
type Handler struct {
	store *Store
}

// NewHandler creates a recent-history handler.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Routes mounts under /library/recent.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.add)
	router.Delete("/", handler.clear)

	return router
}

type addRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	CoverImage  string `json:"coverImage"`
	LastChapter string `json:"lastChapter"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.store.List())
}

func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	var input addRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("id", input.ID).Required("title", input.Title)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry := handler.store.Add(request.Context(), Entry{
		ID:          input.ID,
		Title:       input.Title,
		CoverImage:  input.CoverImage,
		LastChapter: input.LastChapter,
	})
	respond.Created(writer, entry)
}

func (handler *Handler) clear(writer http.ResponseWriter, request *http.Request) {
	handler.store.Clear(request.Context())
	respond.NoContent(writer)
}
