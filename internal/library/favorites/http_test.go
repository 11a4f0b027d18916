// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorites_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-reader/internal/library/favorites"
	"github.com/taibuivan/yomira-reader/internal/platform/persist"
)

func serve(handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestHandler_AddListRemove(t *testing.T) {
	store := newStore(t, persist.NewMemoryBackend())
	router := favorites.NewHandler(store).Routes()

	recorder := serve(router, http.MethodPost, "/", `{"source_id":"one-piece","anime_name":"One Piece","image_src":"x"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = serve(router, http.MethodGet, "/one-piece", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var status struct {
		Data struct {
			IsFavorite bool `json:"is_favorite"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &status))
	assert.True(t, status.Data.IsFavorite)

	recorder = serve(router, http.MethodDelete, "/one-piece", "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.False(t, store.IsFavorite("one-piece"))
}

func TestHandler_AddValidation(t *testing.T) {
	router := favorites.NewHandler(newStore(t, persist.NewMemoryBackend())).Routes()

	recorder := serve(router, http.MethodPost, "/", `{"anime_name":"No id"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "VALIDATION_ERROR")

	recorder = serve(router, http.MethodPost, "/", `not json`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
