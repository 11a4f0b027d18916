// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-reader/internal/metadata"
)

func TestHandler_Info(t *testing.T) {
	fake := &fakeAniList{answer: respondWith(http.StatusOK, `{"data":{"Media":null}}`)}
	var slept []time.Duration
	router := metadata.NewHandler(newClient(t, fake, &slept)).Routes()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/info", nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/info?title=Nope", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_GenresFallback(t *testing.T) {
	fake := &fakeAniList{answer: respondWith(http.StatusInternalServerError, ``)}
	var slept []time.Duration
	router := metadata.NewHandler(newClient(t, fake, &slept)).Routes()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/genres", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Slice of Life")
}
