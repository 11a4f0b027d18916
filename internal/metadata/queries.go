// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata

const searchQuery = `
query ($search: String, $genres: [String], $page: Int, $perPage: Int) {
  Page(page: $page, perPage: $perPage) {
    pageInfo {
      total
      currentPage
      lastPage
      hasNextPage
    }
    media(
      type: MANGA,
      genre_in: $genres,
      search: $search,
      sort: [POPULARITY_DESC, SCORE_DESC],
      isAdult: false
    ) {
      id
      title {
        romaji
        english
        native
      }
      coverImage {
        large
        medium
      }
      description
      genres
      averageScore
      popularity
      status
      startDate {
        year
      }
    }
  }
}
`

const infoQuery = `
query ($search: String) {
  Media(type: MANGA, search: $search) {
    id
    description
    averageScore
    genres
    status
    startDate {
      year
    }
    coverImage {
      large
    }
  }
}
`

const genresQuery = `
{
  GenreCollection
}
`
