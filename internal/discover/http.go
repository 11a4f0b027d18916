// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package discover

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yomira-reader/internal/platform/request"
	"github.com/taibuivan/yomira-reader/internal/platform/respond"
)

// Handler exposes discovery over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates a discovery handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts under /discover.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.discover)
	return router
}

func (handler *Handler) discover(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.Discover(request.Context(),
		requestutil.Query(request, "q"),
		requestutil.Query(request, "genre"),
	))
}
