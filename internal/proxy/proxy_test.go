// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package proxy_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-reader/internal/proxy"
)

// captured is what the fake upstream saw.
type captured struct {
	method string
	uri    string
	header http.Header
	body   string
}

func newUpstream(t *testing.T, seen *captured) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		payload, _ := io.ReadAll(request.Body)
		*seen = captured{
			method: request.Method,
			uri:    request.URL.RequestURI(),
			header: request.Header.Clone(),
			body:   string(payload),
		}
		writer.Header().Set("Content-Type", "text/plain")
		writer.Header().Set("X-Upstream", "yes")
		writer.WriteHeader(http.StatusTeapot)
		_, _ = writer.Write([]byte("upstream body"))
	}))
	t.Cleanup(server.Close)
	return server
}

func newProxy(t *testing.T, api, image string) http.Handler {
	t.Helper()

	p, err := proxy.New(proxy.Config{APIUpstream: api, ImageUpstream: image}, nil, nil)
	require.NoError(t, err)

	return p.Middleware(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	}))
}

func TestProxy_APIForwardsMethodPathQueryAndBody(t *testing.T) {
	var seen captured
	upstream := newUpstream(t, &seen)
	handler := newProxy(t, upstream.URL, upstream.URL)

	request := httptest.NewRequest(http.MethodPost, "http://reader.local/api/search?text=foo&x=a%20b", strings.NewReader(`{"a":1}`))
	request.Header.Set("Authorization", "Bearer abc")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusTeapot, recorder.Code)
	assert.Equal(t, "upstream body", recorder.Body.String())
	assert.Equal(t, "yes", recorder.Header().Get("X-Upstream"))

	assert.Equal(t, http.MethodPost, seen.method)
	assert.Equal(t, "/search?text=foo&x=a%20b", seen.uri)
	assert.Equal(t, `{"a":1}`, seen.body)
	assert.Equal(t, "http://reader.local", seen.header.Get("Origin"))
	assert.Equal(t, "Bearer abc", seen.header.Get("Authorization"))
}

func TestProxy_APIHeaderDefaults(t *testing.T) {
	var seen captured
	upstream := newUpstream(t, &seen)
	handler := newProxy(t, upstream.URL, upstream.URL)

	request := httptest.NewRequest(http.MethodGet, "http://reader.local/api/recent?page=1", nil)
	request.Header.Set("X-Custom", "dropped")
	handler.ServeHTTP(httptest.NewRecorder(), request)

	assert.Equal(t, "*/*", seen.header.Get("Accept"))
	assert.Equal(t, "application/json", seen.header.Get("Content-Type"))
	assert.Empty(t, seen.header.Get("X-Custom"))
	assert.Empty(t, seen.body)
}

func TestProxy_APIKeepsIncomingHeaders(t *testing.T) {
	var seen captured
	upstream := newUpstream(t, &seen)
	handler := newProxy(t, upstream.URL, upstream.URL)

	request := httptest.NewRequest(http.MethodGet, "http://reader.local/api/hot", nil)
	request.Header.Set("Accept", "text/html")
	request.Header.Set("Content-Type", "text/plain")
	request.Header.Set("User-Agent", "reader-test")
	handler.ServeHTTP(httptest.NewRecorder(), request)

	assert.Equal(t, "text/html", seen.header.Get("Accept"))
	assert.Equal(t, "text/plain", seen.header.Get("Content-Type"))
	assert.Equal(t, "reader-test", seen.header.Get("User-Agent"))
}

func TestProxy_ImageRequest(t *testing.T) {
	var seen captured
	upstream := newUpstream(t, &seen)
	handler := newProxy(t, "http://unused.invalid", upstream.URL)

	request := httptest.NewRequest(http.MethodGet, "http://reader.local/image-proxy/?imageurl=https%3A%2F%2Fcdn.example%2Fp1.jpg", nil)
	request.Header.Set("Authorization", "Bearer abc")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusTeapot, recorder.Code)
	assert.Equal(t, "/?imageurl=https%3A%2F%2Fcdn.example%2Fp1.jpg", seen.uri)
	assert.Equal(t, "image/*", seen.header.Get("Accept"))
	assert.Equal(t, "http://reader.local", seen.header.Get("Origin"))
	assert.Empty(t, seen.header.Get("Authorization"))
	assert.Empty(t, seen.header.Get("Content-Type"))
}

func TestProxy_OtherPathsFallThrough(t *testing.T) {
	handler := newProxy(t, "http://unused.invalid", "http://unused.invalid")

	for _, target := range []string{"/", "/health", "/apix/search", "/library/favorites"} {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusNoContent, recorder.Code, target)
	}
}

func TestProxy_TransportFailureIsBadGateway(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	address := upstream.URL
	upstream.Close()

	handler := newProxy(t, address, address)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/hot", nil))

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "BAD_GATEWAY")
}

func TestNew_RejectsRelativeUpstream(t *testing.T) {
	_, err := proxy.New(proxy.Config{APIUpstream: "/relative", ImageUpstream: "http://ok.example"}, nil, nil)
	assert.Error(t, err)
}

func TestProxy_KeepsEscapedPathSegments(t *testing.T) {
	var seen captured
	upstream := newUpstream(t, &seen)
	handler := newProxy(t, upstream.URL, upstream.URL)

	cases := []struct {
		target string
		want   string
	}{
		{"http://reader.local/api/series/one%3Ftwo?page=1", "/series/one%3Ftwo?page=1"},
		{"http://reader.local/api/a%2Fb", "/a%2Fb"},
		{"http://reader.local/image-proxy/p%2F1?imageurl=x", "/p%2F1?imageurl=x"},
	}

	for _, tc := range cases {
		t.Run(tc.target, func(t *testing.T) {
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tc.target, nil))
			assert.Equal(t, tc.want, seen.uri)
		})
	}
}

func TestProxy_BodyDroppedForReadsAndImages(t *testing.T) {
	var seen captured
	upstream := newUpstream(t, &seen)
	handler := newProxy(t, upstream.URL, upstream.URL)

	cases := []struct {
		name   string
		method string
		target string
	}{
		{"api get", http.MethodGet, "http://reader.local/api/search?text=a"},
		{"api head", http.MethodHead, "http://reader.local/api/hot"},
		{"image post", http.MethodPost, "http://reader.local/image-proxy/?imageurl=x"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seen = captured{}
			request := httptest.NewRequest(tc.method, tc.target, strings.NewReader(`{"ignored":true}`))
			handler.ServeHTTP(httptest.NewRecorder(), request)

			assert.Equal(t, tc.method, seen.method)
			assert.Empty(t, seen.body)
		})
	}
}

func TestProxy_ImageAcceptOverridesCaller(t *testing.T) {
	var seen captured
	upstream := newUpstream(t, &seen)
	handler := newProxy(t, "http://unused.invalid", upstream.URL)

	request := httptest.NewRequest(http.MethodGet, "http://reader.local/image-proxy/?imageurl=x", nil)
	request.Header.Set("Accept", "text/html")
	handler.ServeHTTP(httptest.NewRecorder(), request)

	assert.Equal(t, "image/*", seen.header.Get("Accept"))
}

func TestProxy_ForwardedHeadersIgnoredByDefault(t *testing.T) {
	var seen captured
	upstream := newUpstream(t, &seen)
	handler := newProxy(t, upstream.URL, upstream.URL)

	request := httptest.NewRequest(http.MethodGet, "http://reader.local/api/hot", nil)
	request.Header.Set("X-Forwarded-Proto", "https")
	request.Header.Set("X-Forwarded-Host", "attacker.example")
	handler.ServeHTTP(httptest.NewRecorder(), request)

	assert.Equal(t, "http://reader.local", seen.header.Get("Origin"))
}

func TestProxy_ForwardedHeadersWhenTrusted(t *testing.T) {
	var seen captured
	upstream := newUpstream(t, &seen)

	p, err := proxy.New(proxy.Config{APIUpstream: upstream.URL, ImageUpstream: upstream.URL, TrustForwarded: true}, nil, nil)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodGet, "http://reader.local/api/hot", nil)
	request.Header.Set("X-Forwarded-Proto", "https")
	request.Header.Set("X-Forwarded-Host", "reader.example")
	p.Middleware(http.NotFoundHandler()).ServeHTTP(httptest.NewRecorder(), request)

	assert.Equal(t, "https://reader.example", seen.header.Get("Origin"))
}

func TestOrigin(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "http://reader.local/api/x", nil)
	assert.Equal(t, "http://reader.local", proxy.Origin(request, true))

	request.Header.Set("X-Forwarded-Proto", "https, http")
	request.Header.Set("X-Forwarded-Host", "reader.example")
	assert.Equal(t, "http://reader.local", proxy.Origin(request, false))
	assert.Equal(t, "https://reader.example", proxy.Origin(request, true))
}
