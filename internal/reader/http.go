// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yomira-reader/internal/platform/request"
	"github.com/taibuivan/yomira-reader/internal/platform/respond"
	"github.com/taibuivan/yomira-reader/internal/platform/validate"
)

// Directions accepted by the chapter endpoint.
const (
	DirectionNext     = "next"
	DirectionPrevious = "previous"
)

// Handler exposes reader sessions over HTTP.
type Handler struct {
	manager *Manager
}

// NewHandler creates a reader session handler.
func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

// Routes mounts under /reader/sessions.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.open)

	router.Route("/{sessionID}", func(r chi.Router) {
		r.Get("/", handler.get)
		r.Delete("/", handler.close)
		r.Post("/keys", handler.press)
		r.Post("/touch", handler.touch)
		r.Put("/panels", handler.panels)
		r.Post("/page", handler.seek)
		r.Post("/chapter", handler.navigate)
	})

	return router
}

type keyRequest struct {
	Key string `json:"key"`
}

type panelsRequest struct {
	Settings    bool `json:"settings"`
	ChapterList bool `json:"chapter_list"`
}

type pageRequest struct {
	Page int `json:"page"`
}

type chapterRequest struct {
	Direction string `json:"direction"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.manager.List())
}

func (handler *Handler) open(writer http.ResponseWriter, request *http.Request) {
	var input OpenRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("series_id", input.SeriesID).Required("chapter_id", input.ChapterID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.manager.Open(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	state, err := session.State()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, state)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	handler.withSession(writer, request, func(session *Session) (State, error) {
		return session.State()
	})
}

func (handler *Handler) close(writer http.ResponseWriter, request *http.Request) {
	if err := handler.manager.Close(requestutil.Param(request, "sessionID")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) press(writer http.ResponseWriter, request *http.Request) {
	var input keyRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Space is a valid key, so only the empty string is rejected.
	validator := &validate.Validator{}
	validator.Custom("key", input.Key == "", "This field is required")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.withSession(writer, request, func(session *Session) (State, error) {
		return session.Press(request.Context(), input.Key)
	})
}

func (handler *Handler) touch(writer http.ResponseWriter, request *http.Request) {
	handler.withSession(writer, request, func(session *Session) (State, error) {
		return session.Touch()
	})
}

func (handler *Handler) panels(writer http.ResponseWriter, request *http.Request) {
	var input panelsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.withSession(writer, request, func(session *Session) (State, error) {
		return session.SetPanels(input.Settings, input.ChapterList)
	})
}

func (handler *Handler) seek(writer http.ResponseWriter, request *http.Request) {
	var input pageRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.withSession(writer, request, func(session *Session) (State, error) {
		return session.Seek(input.Page)
	})
}

func (handler *Handler) navigate(writer http.ResponseWriter, request *http.Request) {
	var input chapterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.OneOf("direction", input.Direction, DirectionNext, DirectionPrevious)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	direction := Next
	if input.Direction == DirectionPrevious {
		direction = Previous
	}

	handler.withSession(writer, request, func(session *Session) (State, error) {
		return session.Navigate(request.Context(), direction)
	})
}

// withSession resolves the {sessionID} parameter, runs action, and renders its state.
func (handler *Handler) withSession(writer http.ResponseWriter, request *http.Request, action func(*Session) (State, error)) {
	session, err := handler.manager.Get(requestutil.Param(request, "sessionID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	state, err := action(session)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, state)
}
