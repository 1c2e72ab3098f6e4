package omdb

import (
	"context"
	"encoding/json"

	"golang.org/x/sync/errgroup"
)

// DefaultIDs is the curated home-page list, in display order.
var DefaultIDs = []string{
	"tt15398776",
	"tt15172688", // Barbie
	"tt9362722",  // Spider-Man: Across the Spider-Verse
	"tt10366206", // John Wick: Chapter 4
	"tt6718170",  // The Super Mario Bros. Movie
	"tt1745960",  // Top Gun: Maverick
	"tt1630029",  // Avatar: The Way of Water
	"tt9114286",  // Black Panther: Wakanda Forever
	"tt1877830",  // The Batman
	"tt10872600", // Spider-Man: No Way Home
	"tt1160419",  // Dune
	"tt9389998",  // Shang-Chi and the Legend of the Ten Rings
	"tt2953250",  // Encanto
	"tt6723592",  // Tenet
	"tt3460252",  // Soul
	"tt1051906",  // The Invisible Man
	"tt4154796",  // Avengers: Endgame
	"tt7286456",  // Joker
	"tt4520988",  // Frozen II
	"tt6710474",  // Parasite
}

const defaultsConcurrency = 5

// Defaults resolves ids concurrently and returns the movies that were found
// and have a poster, preserving the order of ids. Individual lookup failures
// are skipped; the returned count reports how many were dropped.
func (c *Client) Defaults(ctx context.Context, ids []string) ([]json.RawMessage, int, error) {
	results := make([]json.RawMessage, len(ids))

	var g errgroup.Group
	g.SetLimit(defaultsConcurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			raw, err := c.Details(ctx, DetailsQuery{ID: id})
			if err != nil {
				return nil
			}
			var m struct {
				Poster string `json:"Poster"`
			}
			if json.Unmarshal(raw, &m) != nil || m.Poster == "" || m.Poster == "N/A" {
				return nil
			}
			results[i] = raw
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	movies := make([]json.RawMessage, 0, len(ids))
	for _, r := range results {
		if r != nil {
			movies = append(movies, r)
		}
	}
	return movies, len(ids) - len(movies), nil
}
