// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yomira-reader/internal/platform/request"
	"github.com/taibuivan/yomira-reader/internal/platform/respond"
)

// Handler exposes the browse state over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates a catalog handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts under /catalog.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/home", handler.home)
	router.Get("/state", handler.state)
	router.Get("/recent", handler.recent)
	router.Get("/hot", handler.hot)
	router.Get("/search", handler.search)
	router.Get("/series/{sourceID}", handler.series)
	router.Get("/series/{sourceID}/chapters", handler.chapters)
	router.Get("/chapters/{chapterID}/pages", handler.pages)

	return router
}

type homeResponse struct {
	Recent []Entry `json:"recent"`
	Hot    []Entry `json:"hot"`
	Error  string  `json:"error,omitempty"`
}

type seriesResponse struct {
	Entry
	Chapters []Chapter `json:"chapters"`
}

func (handler *Handler) home(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.LoadHome(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}

	snapshot := handler.service.Snapshot()
	recent := withChapters(snapshot.Recent, snapshot.ChapterMap)
	hot := withChapters(snapshot.Hot, snapshot.ChapterMap)

	respond.OK(writer, homeResponse{Recent: recent, Hot: hot, Error: snapshot.Error})
}

func (handler *Handler) state(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.Snapshot())
}

func (handler *Handler) recent(writer http.ResponseWriter, request *http.Request) {
	results, err := handler.service.FetchRecent(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, results)
}

func (handler *Handler) hot(writer http.ResponseWriter, request *http.Request) {
	results, err := handler.service.FetchHot(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, results)
}

func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	results, err := handler.service.Search(request.Context(), requestutil.Query(request, "q"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, results)
}

// series resolves a series from the browse state and loads its chapters.
func (handler *Handler) series(writer http.ResponseWriter, request *http.Request) {
	sourceID := requestutil.Param(request, "sourceID")

	entry, err := handler.service.Lookup(sourceID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapters, err := handler.service.FetchChapters(request.Context(), sourceID)
	if err != nil {
		chapters = handler.service.ChaptersFor(sourceID)
	}

	respond.OK(writer, seriesResponse{Entry: entry, Chapters: chapters})
}

func (handler *Handler) chapters(writer http.ResponseWriter, request *http.Request) {
	chapters, err := handler.service.FetchChapters(request.Context(), requestutil.Param(request, "sourceID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapters)
}

func (handler *Handler) pages(writer http.ResponseWriter, request *http.Request) {
	pages, err := handler.service.FetchPages(request.Context(), requestutil.Param(request, "chapterID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, pages)
}

// withChapters attaches cached chapter lists to each entry.
func withChapters(entries []Entry, chapterMap map[string][]Chapter) []Entry {
	out := make([]Entry, len(entries))
	for index, entry := range entries {
		entry.Chapters = chapterMap[entry.SourceID]
		out[index] = entry
	}
	return out
}
