// Package tmdb implements the catalog client against The Movie Database
// API. Loose upstream record shapes are folded into catalog.Item here so
// the engine sees one canonical item type.
package tmdb
