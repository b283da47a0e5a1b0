// Package lookup sequences Steam API calls into the reports the web pages and
// JSON endpoints render. Nothing here is cached or persisted; every call goes
// to Steam.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/marcus-crane/steamshame/shame"
	"github.com/marcus-crane/steamshame/steam"
)

const DefaultConcurrency = 5

var (
	ErrNoGames   = errors.New("no games found")
	ErrNoFriends = errors.New("no friends found")
)

// Steam is the subset of the Steam client that lookups depend on.
type Steam interface {
	Resolve(ctx context.Context, input string) (string, error)
	GetPlayer(ctx context.Context, steamID string) (steam.Player, error)
	GetPlayerSummaries(ctx context.Context, steamIDs ...string) ([]steam.Player, error)
	GetOwnedGames(ctx context.Context, steamID string) ([]steam.OwnedGame, error)
	GetFriendList(ctx context.Context, steamID string) ([]steam.Friend, error)
	LookupStoreItem(ctx context.Context, appID int) (steam.AppDetail, error)
}

type Service struct {
	steam       Steam
	policy      shame.Policy
	catalog     *shame.Catalog
	concurrency int
	now         func() time.Time
}

func NewService(client Steam, policy shame.Policy) *Service {
	if policy == nil {
		policy = shame.DefaultPolicy()
	}
	return &Service{
		steam:       client,
		policy:      policy,
		catalog:     shame.DefaultCatalog(),
		concurrency: DefaultConcurrency,
		now:         time.Now,
	}
}

func (s *Service) Policy() shame.Policy {
	return s.policy
}

// Report is everything the results page shows for one player.
type Report struct {
	SteamID string       `json:"steam_id"`
	Player  steam.Player `json:"player"`
	Stats   shame.Stats  `json:"stats"`
}

// Lookup resolves free-form user input and builds its report.
func (s *Service) Lookup(ctx context.Context, input string) (Report, error) {
	steamID, err := s.steam.Resolve(ctx, input)
	if err != nil {
		return Report{}, err
	}
	return s.Report(ctx, steamID)
}

// Report fetches the profile and then the library for an already resolved
// ID. Private profiles stop before the library is requested.
func (s *Service) Report(ctx context.Context, steamID string) (Report, error) {
	if !steam.IsSteamID(steamID) {
		return Report{}, fmt.Errorf("%w: %q is not a steam id", steam.ErrProfileNotFound, steamID)
	}
	player, err := s.steam.GetPlayer(ctx, steamID)
	if err != nil {
		return Report{}, err
	}
	if !player.IsPublic() {
		return Report{}, fmt.Errorf("%w: %s", steam.ErrProfilePrivate, steamID)
	}
	games, err := s.library(ctx, steamID)
	if err != nil {
		return Report{}, err
	}
	stats := shame.Analyze(games, s.options(steamID))
	slog.Info("Computed shame score",
		slog.String("steam_id", steamID),
		slog.Int("total_games", stats.TotalGames),
		slog.Float64("shame_score", stats.ShameScore),
	)
	return Report{
		SteamID: steamID,
		Player:  player,
		Stats:   stats,
	}, nil
}

func (s *Service) options(steamID string) shame.Options {
	return shame.Options{
		Now:    s.now(),
		Rand:   shame.NewRand(steamID),
		Policy: s.policy,
	}
}

func (s *Service) library(ctx context.Context, steamID string) ([]shame.Game, error) {
	owned, err := s.steam.GetOwnedGames(ctx, steamID)
	if err != nil {
		return nil, err
	}
	return ToGames(owned), nil
}

// nonEmptyLibrary is used by the side endpoints which have nothing to say
// about an empty library.
func (s *Service) nonEmptyLibrary(ctx context.Context, steamID string) ([]shame.Game, error) {
	if !steam.IsSteamID(steamID) {
		return nil, fmt.Errorf("%w: %q is not a steam id", steam.ErrProfileNotFound, steamID)
	}
	games, err := s.library(ctx, steamID)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoGames, steamID)
	}
	return games, nil
}

func ToGames(owned []steam.OwnedGame) []shame.Game {
	games := make([]shame.Game, 0, len(owned))
	for _, g := range owned {
		games = append(games, shame.Game{
			AppID:          g.AppID,
			Name:           g.Name,
			Playtime:       g.PlaytimeForever,
			Playtime2Weeks: g.Playtime2Weeks,
			LastPlayed:     g.LastPlayedAt(),
		})
	}
	return games
}

func ToStoreInfo(d steam.AppDetail) shame.StoreInfo {
	info := shame.StoreInfo{IsFree: d.IsFree}
	for _, g := range d.Genres {
		info.Genres = append(info.Genres, g.Description)
	}
	for _, c := range d.Categories {
		info.Categories = append(info.Categories, c.Description)
	}
	if d.PriceOverview != nil {
		info.Price = &shame.Price{
			Currency: d.PriceOverview.Currency,
			Initial:  d.PriceOverview.Initial,
			Final:    d.PriceOverview.Final,
		}
	}
	return info
}

// StoreDetails fetches store metadata for each app, a few at a time. Apps the
// store can't describe are left out rather than failing the batch.
func (s *Service) StoreDetails(ctx context.Context, appIDs []int) (map[int]shame.StoreInfo, error) {
	results := map[int]shame.StoreInfo{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	seen := map[int]bool{}
	for _, appID := range appIDs {
		if seen[appID] {
			continue
		}
		seen[appID] = true
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			detail, err := s.steam.LookupStoreItem(gctx, appID)
			if err != nil {
				slog.Debug("Skipping store item",
					slog.Int("app_id", appID),
					slog.String("error", err.Error()),
				)
				return nil
			}
			mu.Lock()
			results[appID] = ToStoreInfo(detail)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func appIDs(groups ...[]shame.Game) []int {
	var ids []int
	for _, games := range groups {
		for _, g := range games {
			ids = append(ids, g.AppID)
		}
	}
	return ids
}
