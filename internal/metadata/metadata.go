// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metadata enriches series with data from the AniList GraphQL API.

Every call is retried with backoff (3 retries from 1s, x1.5) and then degrades
to a safe fallback instead of failing: an empty search page, an absent info
record, or the built-in genre list. Callers never see an error.
*/
package metadata

import (
	"fmt"
)

// PerPage is the search page size.
const PerPage = 24

// SourcePrefix marks source ids that come from metadata rather than the catalog.
const SourcePrefix = "anilist-"

// DefaultGenres is served when the genre collection cannot be fetched.
var DefaultGenres = []string{
	"Action",
	"Adventure",
	"Comedy",
	"Drama",
	"Fantasy",
	"Horror",
	"Mystery",
	"Romance",
	"Sci-Fi",
	"Slice of Life",
	"Sports",
	"Supernatural",
	"Thriller",
}

// # Domain Models

// Manga is one search hit, shaped like a catalog entry plus metadata extras.
type Manga struct {
	AnimeName   string   `json:"anime_name"`
	ImageSrc    string   `json:"image_src"`
	SourceID    string   `json:"source_id"`
	Description string   `json:"description,omitempty"`
	Genres      []string `json:"genres"`
	Score       *int     `json:"score"`
	Popularity  *int     `json:"popularity"`
	Status      string   `json:"status,omitempty"`
	Year        *int     `json:"year"`
}

// PageInfo describes the pagination of a search.
type PageInfo struct {
	Total       int  `json:"total"`
	CurrentPage int  `json:"currentPage"`
	LastPage    int  `json:"lastPage"`
	HasNextPage bool `json:"hasNextPage"`
}

// SearchResult is one page of search hits.
type SearchResult struct {
	Results  []Manga  `json:"results"`
	PageInfo PageInfo `json:"pageInfo"`
}

// Info is the detail record for a single title.
type Info struct {
	Description  string   `json:"description"`
	AverageScore *int     `json:"averageScore"`
	Genres       []string `json:"genres"`
	Status       string   `json:"status"`
	StartDate    struct {
		Year *int `json:"year"`
	} `json:"startDate"`
	CoverImage struct {
		Large string `json:"large"`
	} `json:"coverImage"`
}

// emptySearch is the fallback page for a failed search.
func emptySearch(page int) SearchResult {
	return SearchResult{
		Results: []Manga{},
		PageInfo: PageInfo{
			HasNextPage: false,
			CurrentPage: page,
			LastPage:    page,
			Total:       0,
		},
	}
}

// # Wire Models

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type mediaTitle struct {
	Romaji  string `json:"romaji"`
	English string `json:"english"`
	Native  string `json:"native"`
}

type media struct {
	ID         int        `json:"id"`
	Title      mediaTitle `json:"title"`
	CoverImage struct {
		Large  string `json:"large"`
		Medium string `json:"medium"`
	} `json:"coverImage"`
	Description  string   `json:"description"`
	Genres       []string `json:"genres"`
	AverageScore *int     `json:"averageScore"`
	Popularity   *int     `json:"popularity"`
	Status       string   `json:"status"`
	StartDate    struct {
		Year *int `json:"year"`
	} `json:"startDate"`
}

type searchData struct {
	Page struct {
		PageInfo PageInfo `json:"pageInfo"`
		Media    []media  `json:"media"`
	} `json:"Page"`
}

type infoData struct {
	Media *Info `json:"Media"`
}

type genresData struct {
	GenreCollection []string `json:"GenreCollection"`
}

// toManga maps a search hit, preferring the English title and the large cover.
func (m media) toManga() Manga {
	name := m.Title.English
	if name == "" {
		name = m.Title.Romaji
	}

	image := m.CoverImage.Large
	if image == "" {
		image = m.CoverImage.Medium
	}

	genres := m.Genres
	if genres == nil {
		genres = []string{}
	}

	return Manga{
		AnimeName:   name,
		ImageSrc:    image,
		SourceID:    fmt.Sprintf("%s%d", SourcePrefix, m.ID),
		Description: m.Description,
		Genres:      genres,
		Score:       m.AverageScore,
		Popularity:  m.Popularity,
		Status:      m.Status,
		Year:        m.StartDate.Year,
	}
}
