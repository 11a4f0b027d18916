// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/taibuivan/yomira-reader/internal/platform/constants"
	"github.com/taibuivan/yomira-reader/internal/platform/otel"
	"github.com/taibuivan/yomira-reader/internal/platform/retry"
	"github.com/taibuivan/yomira-reader/pkg/slug"
)

// Client calls the AniList GraphQL endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	policy     retry.Policy
	cache      Cache
	logger     *slog.Logger
	tracer     trace.Tracer
}

// Option customises a [Client].
type Option func(*Client)

// WithRetryPolicy replaces the default backoff policy.
func WithRetryPolicy(policy retry.Policy) Option {
	return func(client *Client) { client.policy = policy }
}

// WithCache enables caching of info and genre lookups.
func WithCache(cache Cache) Option {
	return func(client *Client) { client.cache = cache }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) { client.httpClient = httpClient }
}

// NewClient creates a client for endpoint (e.g. "https://graphql.anilist.co").
func NewClient(endpoint string, logger *slog.Logger, options ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: constants.UpstreamClientTimeout},
		endpoint:   endpoint,
		policy:     retry.Default(),
		cache:      NoCache{},
		logger:     logger,
		tracer:     otel.Tracer("metadata"),
	}
	for _, option := range options {
		option(client)
	}
	return client
}

/*
Search returns one page of hits for a title and/or genre.

Empty search and genre are omitted from the query. After the retry budget is
spent, an empty page echoing the requested page number is returned.
*/
func (client *Client) Search(ctx context.Context, search, genre string, page int) SearchResult {
	if page < 1 {
		page = 1
	}

	variables := map[string]any{
		"page":    page,
		"perPage": PerPage,
	}
	if search = strings.TrimSpace(search); search != "" {
		variables["search"] = search
	}
	if genre = strings.TrimSpace(genre); genre != "" {
		variables["genres"] = []string{genre}
	}

	data, err := retry.Do(ctx, client.policy, func(ctx context.Context) (searchData, error) {
		var data searchData
		err := client.post(ctx, "metadata.search", searchQuery, variables, &data)
		return data, err
	})
	if err != nil {
		client.logger.WarnContext(ctx, "metadata_search_failed",
			slog.String("search", search),
			slog.String("genre", genre),
			slog.Any("error", err),
		)
		return emptySearch(page)
	}

	return SearchResult{
		Results:  lo.Map(data.Page.Media, func(item media, _ int) Manga { return item.toManga() }),
		PageInfo: data.Page.PageInfo,
	}
}

// Info looks up the detail record for title. It is absent when the title is
// unknown or the lookup failed.
func (client *Client) Info(ctx context.Context, title string) mo.Option[Info] {
	key := "info:" + slug.From(title)
	if cached, ok := cacheGet[Info](ctx, client.cache, key).Get(); ok {
		return mo.Some(cached)
	}

	variables := map[string]any{"search": title}
	data, err := retry.Do(ctx, client.policy, func(ctx context.Context) (infoData, error) {
		var data infoData
		err := client.post(ctx, "metadata.info", infoQuery, variables, &data)
		return data, err
	})
	if err != nil {
		client.logger.WarnContext(ctx, "metadata_info_failed",
			slog.String("title", title),
			slog.Any("error", err),
		)
		return mo.None[Info]()
	}

	if data.Media == nil {
		return mo.None[Info]()
	}

	cacheSet(ctx, client.cache, key, *data.Media)
	return mo.Some(*data.Media)
}

// Genres lists every genre known to AniList, or [DefaultGenres] on failure.
func (client *Client) Genres(ctx context.Context) []string {
	const key = "genres"
	if cached, ok := cacheGet[[]string](ctx, client.cache, key).Get(); ok {
		return cached
	}

	data, err := retry.Do(ctx, client.policy, func(ctx context.Context) (genresData, error) {
		var data genresData
		err := client.post(ctx, "metadata.genres", genresQuery, nil, &data)
		return data, err
	})
	if err != nil || len(data.GenreCollection) == 0 {
		client.logger.WarnContext(ctx, "metadata_genres_failed", slog.Any("error", err))
		return append([]string(nil), DefaultGenres...)
	}

	cacheSet(ctx, client.cache, key, data.GenreCollection)
	return data.GenreCollection
}

// post sends one GraphQL request and decodes its data member into target.
// Transport failures, non-200 statuses and GraphQL errors are all errors.
func (client *Client) post(ctx context.Context, operation, query string, variables map[string]any, target any) (err error) {
	ctx, span := client.tracer.Start(ctx, operation)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("metadata: encode request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("metadata: build request: %w", err)
	}
	request.Header.Set(constants.HeaderContentType, "application/json")
	request.Header.Set(constants.HeaderAccept, "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("metadata: %s: %w", operation, err)
	}
	defer response.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", response.StatusCode))

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("metadata: %s returned status %d", operation, response.StatusCode)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphQLError  `json:"errors"`
	}
	if err := json.NewDecoder(response.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("metadata: decode %s: %w", operation, err)
	}

	if len(envelope.Errors) > 0 {
		return errors.New("metadata: " + strings.Join(lo.Map(envelope.Errors, func(e graphQLError, _ int) string {
			return e.Message
		}), "; "))
	}

	if err := json.Unmarshal(envelope.Data, target); err != nil {
		return fmt.Errorf("metadata: decode %s data: %w", operation, err)
	}
	return nil
}
