package shame

import (
	"math/rand/v2"
	"slices"
	"time"
)

const (
	RecentWindow = 30 * 24 * time.Hour

	// Playtime boundaries in minutes
	BarelyPlayedFloor = 5
	PlayedThreshold   = 60

	SampleSize = 10
)

// Game is a single owned title as far as scoring is concerned.
type Game struct {
	AppID          int
	Name           string
	Playtime       int // minutes
	Playtime2Weeks int // minutes
	LastPlayed     time.Time
}

func (g Game) DisplayName() string {
	if g.Name == "" {
		return "Unknown"
	}
	return g.Name
}

// IsRecent reports whether the game was touched within RecentWindow of now.
// Recently bought games are left out of the shame pile.
func (g Game) IsRecent(now time.Time) bool {
	if !g.LastPlayed.IsZero() && g.LastPlayed.After(now.Add(-RecentWindow)) {
		return true
	}
	return g.Playtime2Weeks > 0
}

type SampleGame struct {
	AppID    int    `json:"appid"`
	Name     string `json:"name"`
	Playtime int    `json:"playtime,omitempty"`
}

type Stats struct {
	TotalGames               int          `json:"total_games"`
	NeverPlayedCount         int          `json:"never_played_count"`
	NeverPlayedShamefulCount int          `json:"never_played_shameful_count"`
	NeverPlayedSample        []SampleGame `json:"never_played_sample"`
	BarelyPlayedCount        int          `json:"barely_played_count"`
	BarelyPlayedSample       []SampleGame `json:"barely_played_sample"`
	PlayedCount              int          `json:"played_count"`
	TotalPlaytime            int          `json:"total_playtime"`
	UnplayedPercent          float64      `json:"unplayed_percent"`
	ShameScore               float64      `json:"shame_score"`
	Verdict                  string       `json:"verdict"`
}

type Options struct {
	Now    time.Time
	Rand   *rand.Rand
	Policy Policy
}

func (o Options) withDefaults() Options {
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(uint64(o.Now.UnixNano()), 0))
	}
	if o.Policy == nil {
		o.Policy = DefaultPolicy()
	}
	return o
}

// Analyze crunches the numbers on a library. An empty library is valid and
// scores 0.
func Analyze(games []Game, opts Options) Stats {
	opts = opts.withDefaults()

	var neverPlayed, shameful, barelyPlayed []Game
	stats := Stats{TotalGames: len(games)}

	for _, g := range games {
		stats.TotalPlaytime += g.Playtime
		recent := g.IsRecent(opts.Now)
		switch {
		case g.Playtime == 0:
			neverPlayed = append(neverPlayed, g)
			if !recent {
				shameful = append(shameful, g)
			}
		case g.Playtime >= PlayedThreshold:
			stats.PlayedCount++
		case g.Playtime > BarelyPlayedFloor && !recent:
			barelyPlayed = append(barelyPlayed, g)
		}
	}

	stats.NeverPlayedCount = len(neverPlayed)
	stats.NeverPlayedShamefulCount = len(shameful)
	stats.BarelyPlayedCount = len(barelyPlayed)

	stats.NeverPlayedSample = []SampleGame{}
	for _, g := range Sample(opts.Rand, shameful, SampleSize) {
		stats.NeverPlayedSample = append(stats.NeverPlayedSample, SampleGame{AppID: g.AppID, Name: g.DisplayName()})
	}

	slices.SortStableFunc(barelyPlayed, func(a, b Game) int {
		return a.Playtime - b.Playtime
	})
	stats.BarelyPlayedSample = []SampleGame{}
	for _, g := range barelyPlayed[:min(SampleSize, len(barelyPlayed))] {
		stats.BarelyPlayedSample = append(stats.BarelyPlayedSample, SampleGame{AppID: g.AppID, Name: g.DisplayName(), Playtime: g.Playtime})
	}

	stats.UnplayedPercent = round1(unplayedPercent(stats.NeverPlayedCount, stats.TotalGames))
	stats.ShameScore = opts.Policy.Score(stats.NeverPlayedCount, stats.TotalGames)
	stats.Verdict = Verdict(stats.ShameScore)
	return stats
}
