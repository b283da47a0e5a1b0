package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/marcus-crane/steamshame/shame"
	"github.com/marcus-crane/steamshame/steam"
)

type LeaderboardOptions struct {
	// MaxFriends caps how many friends are scored. Zero means all of them.
	MaxFriends int
	// Limit caps how many entries are returned. Zero means all of them.
	Limit int
	// SkipPerfect drops players scoring 100, who are usually accounts with
	// nothing but untouched freebies.
	SkipPerfect bool
}

type LeaderboardEntry struct {
	Rank        int     `json:"rank"`
	SteamID     string  `json:"steam_id"`
	Name        string  `json:"name"`
	Avatar      string  `json:"avatar"`
	ShameScore  float64 `json:"shame_score"`
	TotalGames  int     `json:"total_games"`
	PlayedCount int     `json:"played_count"`
	NeverPlayed int     `json:"never_played"`
	IsUser      bool    `json:"is_user"`
}

type Leaderboard struct {
	Player       steam.Player       `json:"-"`
	Entries      []LeaderboardEntry `json:"leaderboard"`
	TotalFriends int                `json:"total_friends"`
	// UserRank is 0 when the player couldn't be scored
	UserRank int `json:"user_rank,omitempty"`
}

// Leaderboard ranks a player against their friends, most shameful first.
// Friends with private profiles or libraries are quietly left out.
func (s *Service) Leaderboard(ctx context.Context, steamID string, opts LeaderboardOptions) (Leaderboard, error) {
	if !steam.IsSteamID(steamID) {
		return Leaderboard{}, fmt.Errorf("%w: %q is not a steam id", steam.ErrProfileNotFound, steamID)
	}
	player, err := s.steam.GetPlayer(ctx, steamID)
	if err != nil {
		return Leaderboard{}, err
	}
	if !player.IsPublic() {
		return Leaderboard{}, fmt.Errorf("%w: %s", steam.ErrProfilePrivate, steamID)
	}

	friends, err := s.steam.GetFriendList(ctx, steamID)
	if err != nil {
		return Leaderboard{}, err
	}
	if len(friends) == 0 {
		return Leaderboard{}, fmt.Errorf("%w: %s", ErrNoFriends, steamID)
	}
	if opts.MaxFriends > 0 && len(friends) > opts.MaxFriends {
		friends = friends[:opts.MaxFriends]
	}

	ids := []string{steamID}
	for _, f := range friends {
		ids = append(ids, f.SteamID)
	}
	players, err := s.steam.GetPlayerSummaries(ctx, ids...)
	if err != nil {
		return Leaderboard{}, err
	}

	entries, err := s.scorePlayers(ctx, steamID, players, opts.SkipPerfect)
	if err != nil {
		return Leaderboard{}, err
	}

	board := Leaderboard{Player: player}
	for i := range entries {
		entries[i].Rank = i + 1
		if entries[i].IsUser {
			board.UserRank = entries[i].Rank
		} else {
			board.TotalFriends++
		}
	}
	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[:opts.Limit]
	}
	board.Entries = entries
	slog.Info("Built friends leaderboard",
		slog.String("steam_id", steamID),
		slog.Int("friends_scored", board.TotalFriends),
	)
	return board, nil
}

func (s *Service) scorePlayers(ctx context.Context, steamID string, players []steam.Player, skipPerfect bool) ([]LeaderboardEntry, error) {
	entries := []LeaderboardEntry{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, p := range players {
		if !p.IsPublic() {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			games, err := s.library(gctx, p.SteamID)
			if err != nil {
				slog.Debug("Skipping friend",
					slog.String("steam_id", p.SteamID),
					slog.String("error", err.Error()),
				)
				return nil
			}
			if len(games) == 0 {
				return nil
			}
			stats := shame.Analyze(games, s.options(p.SteamID))
			if skipPerfect && stats.ShameScore == 100 {
				return nil
			}
			mu.Lock()
			entries = append(entries, LeaderboardEntry{
				SteamID:     p.SteamID,
				Name:        p.DisplayName(),
				Avatar:      p.Avatar,
				ShameScore:  stats.ShameScore,
				TotalGames:  stats.TotalGames,
				PlayedCount: stats.PlayedCount,
				NeverPlayed: stats.NeverPlayedCount,
				IsUser:      p.SteamID == steamID,
			})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Goroutines finish in any order so break ties on steam ID to keep
	// rankings stable between requests
	slices.SortFunc(entries, func(a, b LeaderboardEntry) int {
		if a.ShameScore != b.ShameScore {
			if a.ShameScore > b.ShameScore {
				return -1
			}
			return 1
		}
		if a.SteamID < b.SteamID {
			return -1
		}
		if a.SteamID > b.SteamID {
			return 1
		}
		return 0
	})
	return entries, nil
}
