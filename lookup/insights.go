package lookup

import (
	"context"
	"log/slog"

	"github.com/marcus-crane/steamshame/shame"
)

// Value prices a library using store data. Unless full is set only a sample
// of each bucket is priced and the average is extrapolated.
func (s *Service) Value(ctx context.Context, steamID string, full bool) (shame.ValueEstimate, error) {
	games, err := s.nonEmptyLibrary(ctx, steamID)
	if err != nil {
		return shame.ValueEstimate{}, err
	}

	played, unplayed := shame.SplitByPlayed(games)
	sampledPlayed, sampledUnplayed := played, unplayed
	if !full {
		r := shame.NewRand(steamID)
		sampledPlayed = shame.Sample(r, played, shame.ValueSampleSize)
		sampledUnplayed = shame.Sample(r, unplayed, shame.ValueSampleSize)
	}

	store, err := s.StoreDetails(ctx, appIDs(sampledPlayed, sampledUnplayed))
	if err != nil {
		return shame.ValueEstimate{}, err
	}

	estimate := shame.EstimateValue(len(played), len(unplayed), sampledPlayed, sampledUnplayed, store, full)
	slog.Info("Estimated library value",
		slog.String("steam_id", steamID),
		slog.Int("library_value", estimate.LibraryValue),
		slog.Bool("is_estimate", estimate.IsEstimate),
	)
	return estimate, nil
}

// Personality compares the genres a player owns, plays and ignores, and
// hands out badges along the way.
func (s *Service) Personality(ctx context.Context, steamID string) (shame.Personality, error) {
	games, err := s.nonEmptyLibrary(ctx, steamID)
	if err != nil {
		return shame.Personality{}, err
	}

	opts := s.options(steamID)
	played, untouched := shame.PersonalityPools(games, opts.Now)
	playedSample := played[:min(shame.PersonalitySampleSize, len(played))]
	untouchedSample := shame.Sample(opts.Rand, untouched, shame.PersonalitySampleSize)
	overallSample := shame.Sample(opts.Rand, games, shame.OverallSampleSize)

	store, err := s.StoreDetails(ctx, appIDs(playedSample, untouchedSample, overallSample))
	if err != nil {
		return shame.Personality{}, err
	}

	stats := shame.Analyze(games, opts)
	return shame.NewPersonality(
		s.catalog.Breakdown(overallSample, store),
		s.catalog.Breakdown(playedSample, store),
		s.catalog.Breakdown(untouchedSample, store),
		shame.DetectBadges(stats, store, games),
		len(store),
	), nil
}
