package pipeline

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/errgroup"

	"boxoffice/internal/provider/omdb"
)

// MetadataClient looks up one title on the metadata provider. *omdb.Client
// satisfies it; tests substitute fakes.
type MetadataClient interface {
	Lookup(ctx context.Context, title string) (*omdb.Movie, error)
}

// EnrichedMovie carries a provider hit together with the surrogate key the
// fact rows already reference.
type EnrichedMovie struct {
	MovieID int64
	Movie   *omdb.Movie
}

// EnrichStats counts lookup outcomes for the run summary.
type EnrichStats struct {
	Enriched int // provider returned a movie
	Missing  int // provider answered not-found
	Failed   int // transport or decode failure
}

// EnrichMovies looks up each title and keeps the hits, preserving input
// order. A title that misses or fails is logged and skipped: it ends up
// without a dimension row while its facts keep their movie_id. Only context
// cancellation aborts the pass.
//
// workers bounds concurrent lookups; zero or one means sequential.
func EnrichMovies(ctx context.Context, client MetadataClient, titles []TitleID, workers int) ([]EnrichedMovie, EnrichStats, error) {
	results := make([]*omdb.Movie, len(titles))
	failures := make([]error, len(titles))

	if workers <= 1 {
		for i, t := range titles {
			m, err := client.Lookup(ctx, t.Title)
			if err != nil {
				if ctx.Err() != nil {
					return nil, EnrichStats{}, ctx.Err()
				}
				failures[i] = err
				continue
			}
			results[i] = m
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i, t := range titles {
			g.Go(func() error {
				m, err := client.Lookup(gctx, t.Title)
				if err != nil {
					if gctx.Err() != nil {
						return gctx.Err()
					}
					failures[i] = err
					return nil
				}
				results[i] = m
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, EnrichStats{}, err
		}
	}

	var stats EnrichStats
	out := make([]EnrichedMovie, 0, len(titles))
	for i, t := range titles {
		switch {
		case results[i] != nil:
			stats.Enriched++
			out = append(out, EnrichedMovie{MovieID: t.MovieID, Movie: results[i]})
		case errors.Is(failures[i], omdb.ErrNotFound):
			stats.Missing++
			log.Printf("enrich: skip %q: %v", t.Title, failures[i])
		default:
			stats.Failed++
			log.Printf("enrich: skip %q: %v", t.Title, failures[i])
		}
	}
	return out, stats, nil
}
