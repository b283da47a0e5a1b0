package shame

import (
	"slices"
	"time"
)

const (
	PersonalitySampleSize = 40
	OverallSampleSize     = 60
	UntouchedCeiling      = 5 // minutes
)

type Personality struct {
	Overall              []GenreShare `json:"overall"`
	Played               []GenreShare `json:"played"`
	Unplayed             []GenreShare `json:"unplayed"`
	OverallMajority      *GenreShare  `json:"overall_majority"`
	PlayedMajority       *GenreShare  `json:"played_majority"`
	UnplayedMajority     *GenreShare  `json:"unplayed_majority"`
	ShowUnplayedMismatch bool         `json:"show_unplayed_mismatch"`
	Badges               []Badge      `json:"badges"`
	SampleSize           int          `json:"sample_size"`
}

// PersonalityPools picks which games represent what a player actually plays
// (an hour or more, most played first) and what they only think they like
// (barely touched and not recent).
func PersonalityPools(games []Game, now time.Time) (played, untouched []Game) {
	for _, g := range games {
		if g.Playtime >= PlayedThreshold {
			played = append(played, g)
		} else if g.Playtime < UntouchedCeiling && !g.IsRecent(now) {
			untouched = append(untouched, g)
		}
	}
	slices.SortStableFunc(played, func(a, b Game) int {
		return b.Playtime - a.Playtime
	})
	return played, untouched
}

func NewPersonality(overall, played, unplayed []GenreShare, badges []Badge, sampleSize int) Personality {
	p := Personality{
		Overall:          overall,
		Played:           played,
		Unplayed:         unplayed,
		OverallMajority:  majority(overall),
		PlayedMajority:   majority(played),
		UnplayedMajority: majority(unplayed),
		Badges:           badges,
		SampleSize:       sampleSize,
	}
	if p.PlayedMajority != nil && p.UnplayedMajority != nil {
		p.ShowUnplayedMismatch = p.PlayedMajority.Key != p.UnplayedMajority.Key
	}
	return p
}

func majority(shares []GenreShare) *GenreShare {
	if len(shares) == 0 {
		return nil
	}
	top := shares[0]
	return &top
}
