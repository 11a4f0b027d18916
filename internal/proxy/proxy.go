// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package proxy forwards browser requests to the remote catalog and image hosts.

Two path prefixes are intercepted ahead of the local router:

  - /api/*         → catalog upstream (method, body, and a fixed header set)
  - /image-proxy/* → image upstream (GET-style, "Accept: image/*")

The prefix is stripped from the escaped path, so encoded segments such as
%2F or %3F reach the upstream unchanged, and the query string is copied
verbatim. The upstream
status, headers, and body are relayed unchanged. Every other path falls
through to the next handler.
*/
package proxy

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/taibuivan/yomira-reader/internal/platform/apperr"
	"github.com/taibuivan/yomira-reader/internal/platform/constants"
	"github.com/taibuivan/yomira-reader/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-reader/internal/platform/respond"
)

// hopHeaders are connection-scoped and never relayed.
var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// Config names the two upstream origins.
type Config struct {
	APIUpstream   string
	ImageUpstream string

	// TrustForwarded honours X-Forwarded-Proto and X-Forwarded-Host when
	// building the outbound Origin. Enable it only behind a proxy that
	// overwrites those headers.
	TrustForwarded bool
}

// route is one intercepted prefix.
type route struct {
	prefix   string
	upstream *url.URL
	image    bool
}

// Proxy relays intercepted requests.
type Proxy struct {
	routes         []route
	trustForwarded bool
	client         *http.Client
	logger         *slog.Logger
}

/*
New validates the upstream origins and builds a proxy.

Parameters:
  - cfg: upstream origins (absolute http or https URLs)
  - client: outbound client; nil uses a client without its own timeout so
    cancellation follows the incoming request
  - logger: fallback logger when no request logger is attached
*/
func New(cfg Config, client *http.Client, logger *slog.Logger) (*Proxy, error) {
	apiUpstream, err := parseUpstream(cfg.APIUpstream)
	if err != nil {
		return nil, err
	}
	imageUpstream, err := parseUpstream(cfg.ImageUpstream)
	if err != nil {
		return nil, err
	}

	if client == nil {
		client = &http.Client{}
	}

	return &Proxy{
		routes: []route{
			{prefix: constants.APIPrefix, upstream: apiUpstream},
			{prefix: constants.ImageProxyPrefix, upstream: imageUpstream, image: true},
		},
		trustForwarded: cfg.TrustForwarded,
		client:         client,
		logger:         logger,
	}, nil
}

func parseUpstream(raw string) (*url.URL, error) {
	upstream, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("proxy: invalid upstream %q: %w", raw, err)
	}
	if upstream.Scheme != "http" && upstream.Scheme != "https" || upstream.Host == "" {
		return nil, fmt.Errorf("proxy: upstream %q must be an absolute http(s) URL", raw)
	}
	return upstream, nil
}

// Middleware intercepts the proxied prefixes and passes everything else to next.
func (proxy *Proxy) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		escaped := request.URL.EscapedPath()
		for _, candidate := range proxy.routes {
			if rest, found := strings.CutPrefix(escaped, candidate.prefix); found {
				proxy.forward(writer, request, candidate, rest)
				return
			}
		}
		next.ServeHTTP(writer, request)
	})
}

// TargetURL builds the upstream URL for a stripped, still escaped path and
// the raw query.
func TargetURL(upstream *url.URL, rest, rawQuery string) string {
	target := upstream.String() + "/" + rest
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	return target
}

// forward performs one upstream round trip and relays the response.
func (proxy *Proxy) forward(writer http.ResponseWriter, request *http.Request, target route, rest string) {
	logger := ctxutil.LoggerOr(request.Context(), proxy.logger)

	var body io.Reader
	if !target.image && request.Method != http.MethodGet && request.Method != http.MethodHead {
		body = request.Body
	}

	outbound, err := http.NewRequestWithContext(request.Context(), request.Method,
		TargetURL(target.upstream, rest, request.URL.RawQuery), body)
	if err != nil {
		respond.Error(writer, request, apperr.BadGateway("Upstream request could not be built", err))
		return
	}
	if body != nil {
		outbound.ContentLength = request.ContentLength
	}

	outbound.Header = forwardHeaders(request, target.image, proxy.trustForwarded)

	response, err := proxy.client.Do(outbound)
	if err != nil {
		if request.Context().Err() != nil {
			logger.DebugContext(request.Context(), "proxy_client_gone", slog.String("target", target.prefix))
			return
		}
		respond.Error(writer, request, apperr.BadGateway("Upstream unreachable", err))
		return
	}
	defer response.Body.Close()

	header := writer.Header()
	for key, values := range response.Header {
		header[key] = append([]string(nil), values...)
	}
	for _, hop := range hopHeaders {
		header.Del(hop)
	}

	writer.WriteHeader(response.StatusCode)

	if _, err := io.Copy(flushWriter{writer}, response.Body); err != nil {
		logger.WarnContext(request.Context(), "proxy_relay_interrupted",
			slog.String("target", target.prefix),
			slog.Any("error", err),
		)
	}
}

// forwardHeaders builds the fixed outbound header set.
func forwardHeaders(request *http.Request, image, trustForwarded bool) http.Header {
	header := http.Header{}
	header.Set(constants.HeaderOrigin, Origin(request, trustForwarded))
	header.Set(constants.HeaderUserAgent, request.Header.Get(constants.HeaderUserAgent))

	if image {
		header.Set(constants.HeaderAccept, "image/*")
		return header
	}

	header.Set(constants.HeaderAccept, headerOr(request, constants.HeaderAccept, "*/*"))
	header.Set(constants.HeaderContentType, headerOr(request, constants.HeaderContentType, "application/json"))
	header.Set(constants.HeaderAuthorization, request.Header.Get(constants.HeaderAuthorization))
	return header
}

// Origin returns the scheme and host the caller used to reach this server.
//
// The X-Forwarded-* headers are client controlled unless a proxy in front
// rewrites them, so they are read only when trustForwarded is set.
func Origin(request *http.Request, trustForwarded bool) string {
	scheme := "http"
	if request.TLS != nil {
		scheme = "https"
	}

	host := request.Host
	if !trustForwarded {
		return scheme + "://" + host
	}

	if forwarded := request.Header.Get(constants.HeaderXForwardedProto); forwarded != "" && request.TLS == nil {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(forwarded, ",")[0]))
	}
	if forwarded := request.Header.Get(constants.HeaderXForwardedHost); forwarded != "" {
		host = strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	return scheme + "://" + host
}

func headerOr(request *http.Request, name, fallback string) string {
	if value := request.Header.Get(name); value != "" {
		return value
	}
	return fallback
}

// flushWriter pushes each chunk to the client as soon as it is written.
type flushWriter struct {
	writer http.ResponseWriter
}

func (fw flushWriter) Write(p []byte) (int, error) {
	written, err := fw.writer.Write(p)
	if flusher, ok := fw.writer.(http.Flusher); ok {
		flusher.Flush()
	}
	return written, err
}
