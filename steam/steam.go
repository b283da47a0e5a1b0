package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/marcus-crane/steamshame/utils"
)

const (
	APIBaseURL   = "https://api.steampowered.com"
	StoreBaseURL = "https://store.steampowered.com"

	ResolveVanityEndpoint = "/ISteamUser/ResolveVanityURL/v1/"
	PlayerSummaryEndpoint = "/ISteamUser/GetPlayerSummaries/v2/"
	FriendListEndpoint    = "/ISteamUser/GetFriendList/v1/"
	OwnedGamesEndpoint    = "/IPlayerService/GetOwnedGames/v1/"
	AppDetailsEndpoint    = "/api/appdetails"

	// GetPlayerSummaries accepts at most this many IDs per call
	MaxSummaryBatch = 100
)

var (
	ErrEmptyInput             = errors.New("no steam profile was provided")
	ErrProfileNotFound        = errors.New("steam profile not found")
	ErrProfilePrivate         = errors.New("steam profile is private")
	ErrGamesHidden            = errors.New("steam game details are private")
	ErrFriendsPrivate         = errors.New("steam friends list is private")
	ErrUpstream               = errors.New("steam api request failed")
	ErrMalformedResponse      = errors.New("steam api response was malformed")
	ErrStoreResponseMalformed = errors.New("steam store response was malformed")
)

// StatusError is returned when Steam answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	Endpoint   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s responded with %s", e.Endpoint, e.Status)
}

func (e *StatusError) Unwrap() error {
	return ErrUpstream
}

type Client struct {
	APIKey       string
	APIBaseURL   string
	StoreBaseURL string
	HTTPClient   *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:       apiKey,
		APIBaseURL:   APIBaseURL,
		StoreBaseURL: StoreBaseURL,
		HTTPClient:   utils.NewHTTPClient(10 * time.Second),
	}
}

func (c *Client) buildUrl(endpoint string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("key", c.APIKey)
	params.Set("format", "json")
	return fmt.Sprintf("%s%s?%s", strings.TrimRight(c.APIBaseURL, "/"), endpoint, params.Encode())
}

func (c *Client) buildStoreUrl(endpoint string, params url.Values) string {
	return fmt.Sprintf("%s%s?%s", strings.TrimRight(c.StoreBaseURL, "/"), endpoint, params.Encode())
}

func (c *Client) getJSON(ctx context.Context, endpoint, target string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to prepare request for %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	slog.Debug("Querying Steam", slog.String("endpoint", endpoint))
	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUpstream, endpoint, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &StatusError{
			StatusCode: res.StatusCode,
			Status:     res.Status,
			Endpoint:   endpoint,
		}
	}

	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformedResponse, endpoint, err)
	}
	return nil
}

// Resolve turns whatever the user typed into a 64-bit Steam ID. Numeric IDs
// are returned as-is without contacting Steam.
func (c *Client) Resolve(ctx context.Context, input string) (string, error) {
	id, err := ParseInput(input)
	if err != nil {
		return "", err
	}
	if id.SteamID != "" {
		return id.SteamID, nil
	}
	return c.ResolveVanityURL(ctx, id.Vanity)
}

func (c *Client) ResolveVanityURL(ctx context.Context, vanity string) (string, error) {
	var resp vanityResponse
	params := url.Values{"vanityurl": []string{vanity}}
	if err := c.getJSON(ctx, ResolveVanityEndpoint, c.buildUrl(ResolveVanityEndpoint, params), &resp); err != nil {
		return "", err
	}
	if resp.Response == nil {
		return "", fmt.Errorf("%w: missing response object", ErrMalformedResponse)
	}
	if resp.Response.Success != VanitySuccess {
		return "", fmt.Errorf("%w: %q", ErrProfileNotFound, vanity)
	}
	if !steamIDPattern.MatchString(resp.Response.SteamID) {
		return "", fmt.Errorf("%w: resolved steam id %q is invalid", ErrMalformedResponse, resp.Response.SteamID)
	}
	return resp.Response.SteamID, nil
}

// GetPlayerSummaries fetches profiles for any number of IDs, batching
// requests as Steam requires. Unknown IDs are silently absent from the result.
func (c *Client) GetPlayerSummaries(ctx context.Context, steamIDs ...string) ([]Player, error) {
	players := []Player{}
	for start := 0; start < len(steamIDs); start += MaxSummaryBatch {
		end := min(start+MaxSummaryBatch, len(steamIDs))
		var resp playerSummaryResponse
		params := url.Values{"steamids": []string{strings.Join(steamIDs[start:end], ",")}}
		if err := c.getJSON(ctx, PlayerSummaryEndpoint, c.buildUrl(PlayerSummaryEndpoint, params), &resp); err != nil {
			return nil, err
		}
		if resp.Response == nil {
			return nil, fmt.Errorf("%w: missing response object", ErrMalformedResponse)
		}
		for _, p := range resp.Response.Players {
			if err := p.validate(); err != nil {
				return nil, err
			}
			players = append(players, p)
		}
	}
	return players, nil
}

func (c *Client) GetPlayer(ctx context.Context, steamID string) (Player, error) {
	players, err := c.GetPlayerSummaries(ctx, steamID)
	if err != nil {
		return Player{}, err
	}
	if len(players) == 0 {
		return Player{}, fmt.Errorf("%w: %s", ErrProfileNotFound, steamID)
	}
	return players[0], nil
}

// GetOwnedGames returns the player's library. Steam omits game_count entirely
// when game details are hidden, which is reported as ErrGamesHidden so it can
// be told apart from an account that genuinely owns nothing.
func (c *Client) GetOwnedGames(ctx context.Context, steamID string) ([]OwnedGame, error) {
	var resp ownedGamesResponse
	params := url.Values{
		"steamid":                   []string{steamID},
		"include_appinfo":           []string{"true"},
		"include_played_free_games": []string{"true"},
	}
	if err := c.getJSON(ctx, OwnedGamesEndpoint, c.buildUrl(OwnedGamesEndpoint, params), &resp); err != nil {
		return nil, err
	}
	if resp.Response == nil {
		return nil, fmt.Errorf("%w: missing response object", ErrMalformedResponse)
	}
	if resp.Response.GameCount == nil {
		return nil, fmt.Errorf("%w: %s", ErrGamesHidden, steamID)
	}
	games := make([]OwnedGame, 0, len(resp.Response.Games))
	for _, g := range resp.Response.Games {
		if err := g.validate(); err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, nil
}

func (c *Client) GetFriendList(ctx context.Context, steamID string) ([]Friend, error) {
	var resp friendListResponse
	params := url.Values{
		"steamid":      []string{steamID},
		"relationship": []string{"friend"},
	}
	err := c.getJSON(ctx, FriendListEndpoint, c.buildUrl(FriendListEndpoint, params), &resp)
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: %s", ErrFriendsPrivate, steamID)
	}
	if err != nil {
		return nil, err
	}
	if resp.FriendsList == nil {
		return []Friend{}, nil
	}
	for _, f := range resp.FriendsList.Friends {
		if f.SteamID == "" {
			return nil, fmt.Errorf("%w: friend without steamid", ErrMalformedResponse)
		}
	}
	return resp.FriendsList.Friends, nil
}

// LookupStoreItem fetches store metadata for a single app.
func (c *Client) LookupStoreItem(ctx context.Context, appID int) (AppDetail, error) {
	key := strconv.Itoa(appID)
	var resp map[string]appDetailResponse
	params := url.Values{"appids": []string{key}}
	if err := c.getJSON(ctx, AppDetailsEndpoint, c.buildStoreUrl(AppDetailsEndpoint, params), &resp); err != nil {
		return AppDetail{}, err
	}
	entry, ok := resp[key]
	if !ok || !entry.Success || entry.Data == nil {
		return AppDetail{}, fmt.Errorf("%w: app %d", ErrStoreResponseMalformed, appID)
	}
	return *entry.Data, nil
}
