// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-reader/internal/platform/apperr"
	requestutil "github.com/taibuivan/yomira-reader/internal/platform/request"
	"github.com/taibuivan/yomira-reader/internal/platform/respond"
	"github.com/taibuivan/yomira-reader/internal/platform/validate"
)

// Handler exposes metadata lookups over HTTP.
type Handler struct {
	client *Client
}

// NewHandler creates a metadata handler.
func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// Routes mounts under /metadata.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/search", handler.search)
	router.Get("/info", handler.info)
	router.Get("/genres", handler.genres)

	return router
}

func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	result := handler.client.Search(request.Context(),
		requestutil.Query(request, "q"),
		requestutil.Query(request, "genre"),
		requestutil.QueryInt(request, "page", 1),
	)
	respond.OK(writer, result)
}

func (handler *Handler) info(writer http.ResponseWriter, request *http.Request) {
	title := requestutil.Query(request, "title")
	if err := (&validate.Validator{}).Required("title", title).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	info, ok := handler.client.Info(request.Context(), title).Get()
	if !ok {
		respond.Error(writer, request, apperr.NotFound("Metadata"))
		return
	}
	respond.OK(writer, info)
}

func (handler *Handler) genres(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.client.Genres(request.Context()))
}
