// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/yomira-reader/internal/platform/constants"
	"github.com/taibuivan/yomira-reader/internal/platform/otel"
)

// RecentPages is how many recently-added pages make up the recent list.
const RecentPages = 5

// componentEscaper turns url.QueryEscape output into encodeURIComponent form.
var componentEscaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EscapeComponent percent-encodes s the way browsers encode a URI component.
func EscapeComponent(s string) string {
	return componentEscaper.Replace(url.QueryEscape(s))
}

// Client calls the catalog API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	imagePrefix string
	tracer      trace.Tracer
}

// NewClient creates a client rooted at baseURL (e.g. "http://127.0.0.1:8080/api").
// Page URLs are rewritten to go through imagePrefix (e.g. "/image-proxy").
func NewClient(baseURL, imagePrefix string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.UpstreamClientTimeout}
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		imagePrefix: strings.TrimRight(imagePrefix, "/"),
		tracer:      otel.Tracer("catalog"),
	}
}

// ProxyImageURL rewrites an external image URL to go through the image proxy.
func (client *Client) ProxyImageURL(raw string) string {
	return client.imagePrefix + "/?imageurl=" + EscapeComponent(raw)
}

/*
RecentlyAdded fetches the first [RecentPages] pages concurrently and
concatenates them in page order.

Returns:
  - []Entry: page 1 results first, then page 2, and so on
  - error: the first page failure; partial results are discarded
*/
func (client *Client) RecentlyAdded(ctx context.Context) ([]Entry, error) {
	group, groupCtx := errgroup.WithContext(ctx)
	pages := make([][]Entry, RecentPages)

	for index := range RecentPages {
		group.Go(func() error {
			var response listResponse
			if err := client.get(groupCtx, "/recently-added?page="+strconv.Itoa(index+1), &response); err != nil {
				return err
			}
			pages[index] = response.Results
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	results := make([]Entry, 0)
	for _, page := range pages {
		results = append(results, page...)
	}
	return results, nil
}

// HotSeries fetches the trending list.
func (client *Client) HotSeries(ctx context.Context) ([]Entry, error) {
	var response listResponse
	if err := client.get(ctx, "/hot-series", &response); err != nil {
		return nil, err
	}
	return nonNil(response.Results), nil
}

// Search runs a text search.
func (client *Client) Search(ctx context.Context, text string) ([]Entry, error) {
	var response listResponse
	if err := client.get(ctx, "/search?text="+EscapeComponent(text), &response); err != nil {
		return nil, err
	}
	return nonNil(response.Results), nil
}

// Chapters lists the chapters of a series.
func (client *Client) Chapters(ctx context.Context, sourceID string) ([]Chapter, error) {
	var chapters []Chapter
	if err := client.get(ctx, "/chapter?id="+EscapeComponent(sourceID), &chapters); err != nil {
		return nil, err
	}
	return nonNil(chapters), nil
}

// Pages lists the images of a chapter with every URL rewritten through the image proxy.
func (client *Client) Pages(ctx context.Context, chapterID string) ([]Page, error) {
	var pages []Page
	if err := client.get(ctx, "/images?id="+EscapeComponent(chapterID), &pages); err != nil {
		return nil, err
	}

	for index := range pages {
		pages[index].URL = client.ProxyImageURL(pages[index].URL)
	}
	return nonNil(pages), nil
}

// get issues a GET for path (query included) and decodes the JSON body into target.
func (client *Client) get(ctx context.Context, path string, target any) (err error) {
	ctx, span := client.tracer.Start(ctx, "catalog.get", trace.WithAttributes(
		attribute.String("catalog.path", path),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, client.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("catalog: build request: %w", err)
	}
	request.Header.Set(constants.HeaderAccept, "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("catalog: %s: %w", path, err)
	}
	defer response.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", response.StatusCode))

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return &UpstreamError{Status: response.StatusCode, Path: path}
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return fmt.Errorf("catalog: decode %s: %w", path, err)
	}
	return nil
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
