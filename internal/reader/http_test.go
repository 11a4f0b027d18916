// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-reader/internal/reader"
)

func call(handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(method, target, strings.NewReader(body)))
	return recorder
}

func decodeState(t *testing.T, recorder *httptest.ResponseRecorder) reader.State {
	t.Helper()
	var envelope struct {
		Data reader.State `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestHandler_SessionFlow(t *testing.T) {
	f := newFixture(t, slowTiming())
	router := reader.NewHandler(f.manager).Routes()

	recorder := call(router, http.MethodPost, "/", `{"series_id":"series-1","chapter_id":"series-1-c1"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	opened := decodeState(t, recorder)
	base := "/" + opened.ID

	recorder = call(router, http.MethodPost, base+"/keys", `{"key":"+"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 110, decodeState(t, recorder).Zoom)

	recorder = call(router, http.MethodPost, base+"/keys", `{"key":" "}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, decodeState(t, recorder).AutoScroll)

	recorder = call(router, http.MethodPut, base+"/panels", `{"settings":true,"chapter_list":false}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, decodeState(t, recorder).SettingsOpen)

	recorder = call(router, http.MethodPost, base+"/page", `{"page":2}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 100, decodeState(t, recorder).Progress)

	recorder = call(router, http.MethodPost, base+"/chapter", `{"direction":"next"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "series-1-c2", decodeState(t, recorder).ChapterID)

	recorder = call(router, http.MethodPost, base+"/touch", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = call(router, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), opened.ID)

	recorder = call(router, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = call(router, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_Validation(t *testing.T) {
	f := newFixture(t, slowTiming())
	router := reader.NewHandler(f.manager).Routes()

	recorder := call(router, http.MethodPost, "/", `{"series_id":"series-1"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	opened := decodeState(t, call(router, http.MethodPost, "/", `{"series_id":"series-1","chapter_id":"series-1-c1"}`))

	recorder = call(router, http.MethodPost, "/"+opened.ID+"/chapter", `{"direction":"sideways"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = call(router, http.MethodPost, "/"+opened.ID+"/keys", `{"key":""}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
