package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus-crane/steamshame/lookup"
	"github.com/marcus-crane/steamshame/shame"
	"github.com/marcus-crane/steamshame/steam"
	"github.com/marcus-crane/steamshame/templates"
)

const (
	publicID  = "76561197960287930"
	privateID = "76561197999386785"
	hiddenID  = "76561197960265729"
)

var knownPlayers = map[string]steam.Player{
	publicID:            {SteamID: publicID, PersonaName: "Rabscuttle", CommunityVisibilityState: steam.VisibilityPublic},
	privateID:           {SteamID: privateID, PersonaName: "hermit", CommunityVisibilityState: 1},
	hiddenID:            {SteamID: hiddenID, PersonaName: "shy", CommunityVisibilityState: steam.VisibilityPublic},
	"76561197960265731": {SteamID: "76561197960265731", PersonaName: "collector", CommunityVisibilityState: steam.VisibilityPublic},
	"76561197960265738": {SteamID: "76561197960265738", PersonaName: "Lurker", CommunityVisibilityState: steam.VisibilityPublic},
}

// fakeSteam stands in for both the Web API and the store
type fakeSteam struct {
	t         *testing.T
	fail      atomic.Bool
	gameCalls atomic.Int32
}

func (f *fakeSteam) fixture(w http.ResponseWriter, name string) {
	f.t.Helper()
	file, err := os.Open("testdata/" + name)
	if err != nil {
		f.t.Fatal(err)
	}
	defer file.Close()
	w.WriteHeader(http.StatusOK)
	io.Copy(w, file)
}

func (f *fakeSteam) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if f.fail.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	q := r.URL.Query()
	switch r.URL.Path {
	case steam.ResolveVanityEndpoint:
		if q.Get("vanityurl") == "gabelogannewell" {
			f.fixture(w, "vanity_success.json")
			return
		}
		f.fixture(w, "vanity_missing.json")
	case steam.PlayerSummaryEndpoint:
		players := []steam.Player{}
		for _, id := range strings.Split(q.Get("steamids"), ",") {
			if p, ok := knownPlayers[id]; ok {
				players = append(players, p)
			}
		}
		json.NewEncoder(w).Encode(map[string]any{"response": map[string]any{"players": players}})
	case steam.OwnedGamesEndpoint:
		f.gameCalls.Add(1)
		if id := q.Get("steamid"); id == hiddenID || id == privateID {
			f.fixture(w, "owned_games_hidden.json")
			return
		}
		f.fixture(w, "owned_games.json")
	case steam.FriendListEndpoint:
		if q.Get("steamid") == hiddenID {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.fixture(w, "friends.json")
	case steam.AppDetailsEndpoint:
		if q.Get("appids") == "1191900" {
			f.fixture(w, "store_lookup.json")
			return
		}
		w.Write([]byte(`{"` + q.Get("appids") + `":{"success":false}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeSteam) {
	t.Helper()
	fake := &fakeSteam{t: t}
	upstream := httptest.NewTLSServer(fake)
	t.Cleanup(upstream.Close)

	client := steam.NewClient("abc123")
	client.APIBaseURL = upstream.URL
	client.StoreBaseURL = upstream.URL
	client.HTTPClient = upstream.Client()

	pages, err := templates.New()
	require.NoError(t, err)

	mux := http.NewServeMux()
	handler := Register(mux, lookup.NewService(client, shame.DefaultPolicy()), pages, []string{"*"})
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts, fake
}

func postLookup(t *testing.T, ts *httptest.Server, input string) (*http.Response, *goquery.Document) {
	t.Helper()
	res, err := http.PostForm(ts.URL+"/lookup", url.Values{"steam_input": {input}})
	require.NoError(t, err)
	defer res.Body.Close()
	doc, err := goquery.NewDocumentFromReader(res.Body)
	require.NoError(t, err)
	return res, doc
}

func getPage(t *testing.T, ts *httptest.Server, path string) (*http.Response, *goquery.Document) {
	t.Helper()
	res, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer res.Body.Close()
	doc, err := goquery.NewDocumentFromReader(res.Body)
	require.NoError(t, err)
	return res, doc
}

func getJSON(t *testing.T, ts *httptest.Server, path string, v any) *http.Response {
	t.Helper()
	res, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
	require.NoError(t, json.NewDecoder(res.Body).Decode(v))
	return res
}

func TestIndex(t *testing.T) {
	ts, _ := newTestServer(t)
	res, doc := getPage(t, ts, "/")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 1, doc.Find("input[name=steam_input]").Length())
	assert.NotEmpty(t, res.Header.Get(RequestIDHeader))
}

func TestUnknownPath(t *testing.T) {
	ts, _ := newTestServer(t)
	res, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestLookup_PublicSteamID(t *testing.T) {
	ts, _ := newTestServer(t)
	res, doc := postLookup(t, ts, publicID)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Rabscuttle", doc.Find("#player-name").Text())
	assert.Equal(t, "4", doc.Find("#total-games").Text())
	assert.Equal(t, "2", doc.Find("#never-played").Text())
	// 2 of 4 unplayed is 50%, scaled down to the 0.4 floor for a tiny library
	assert.Equal(t, "20.0", doc.Find("#shame-score").Text())
}

func TestLookup_Vanity(t *testing.T) {
	ts, _ := newTestServer(t)
	res, doc := postLookup(t, ts, "https://steamcommunity.com/id/gabelogannewell/")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Rabscuttle", doc.Find("#player-name").Text())
}

func TestLookup_NotFound(t *testing.T) {
	ts, _ := newTestServer(t)
	res, doc := postLookup(t, ts, "thisuserdoesnotexist12345")

	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Profile not found", doc.Find("#error-title").Text())
	assert.Contains(t, doc.Find("#error-message").Text(), "Could not find")
}

func TestLookup_EmptyInput(t *testing.T) {
	ts, _ := newTestServer(t)
	res, doc := postLookup(t, ts, "   ")

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, 1, doc.Find("form").Length())
	assert.NotEmpty(t, doc.Find("#form-error").Text())
}

func TestLookup_PrivateProfile(t *testing.T) {
	ts, fake := newTestServer(t)
	res, doc := postLookup(t, ts, privateID)

	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, "This profile is private", doc.Find("#error-title").Text())
	assert.Equal(t, int32(0), fake.gameCalls.Load())
}

func TestLookup_HiddenGames(t *testing.T) {
	ts, _ := newTestServer(t)
	res, doc := postLookup(t, ts, hiddenID)

	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, "This profile is private", doc.Find("#error-title").Text())
}

func TestLookup_UpstreamFailure(t *testing.T) {
	ts, fake := newTestServer(t)
	fake.fail.Store(true)
	res, doc := postLookup(t, ts, publicID)

	assert.Equal(t, http.StatusBadGateway, res.StatusCode)
	assert.Equal(t, "Steam API Error", doc.Find("#error-title").Text())
}

func TestResults_Permalink(t *testing.T) {
	ts, _ := newTestServer(t)
	res, doc := getPage(t, ts, "/results/"+publicID)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Rabscuttle", doc.Find("#player-name").Text())

	res, doc = getPage(t, ts, "/results/gabelogannewell")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Profile not found", doc.Find("#error-title").Text())
}

func TestFriendsPage(t *testing.T) {
	ts, _ := newTestServer(t)
	res, doc := getPage(t, ts, "/friends/"+publicID)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	// Everyone owns the same library so ties fall back to steam ID order
	assert.Equal(t, "You rank #3 for shame.", doc.Find("#user-rank").Text())
	assert.Equal(t, 1, doc.Find("#leaderboard tr.me").Length())
}

func TestFriendsPage_PrivateFriendList(t *testing.T) {
	ts, _ := newTestServer(t)
	res, doc := getPage(t, ts, "/friends/"+hiddenID)

	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, "Friends list is private", doc.Find("#error-title").Text())
}

func TestAPIValue(t *testing.T) {
	ts, _ := newTestServer(t)
	var got shame.ValueEstimate
	res := getJSON(t, ts, "/api/value/"+publicID+"?full=1", &got)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.False(t, got.IsEstimate)
	assert.Equal(t, 2, got.PlayedCount)
	assert.Equal(t, 2, got.UnplayedCount)
	assert.Equal(t, 15, got.UnplayedValue)
	assert.Equal(t, 15, got.LibraryValue)
}

func TestAPIValue_CORS(t *testing.T) {
	ts, _ := newTestServer(t)
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/value/"+publicID, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.com")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
}

func TestAPIPersonality(t *testing.T) {
	ts, _ := newTestServer(t)
	var got shame.Personality
	res := getJSON(t, ts, "/api/personality/"+publicID, &got)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 1, got.SampleSize)
	require.NotNil(t, got.OverallMajority)
	assert.Equal(t, "action", got.OverallMajority.Key)
}

func TestAPIFriends(t *testing.T) {
	ts, _ := newTestServer(t)
	var got lookup.Leaderboard
	res := getJSON(t, ts, "/api/friends/"+publicID, &got)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	require.Len(t, got.Entries, 3)
	assert.Equal(t, 3, got.UserRank)
	assert.Equal(t, 2, got.TotalFriends)
	assert.True(t, got.Entries[2].IsUser)
}

func TestAPIErrors(t *testing.T) {
	ts, _ := newTestServer(t)
	cases := []struct {
		path   string
		status int
		title  string
	}{
		{"/api/value/" + privateID, http.StatusForbidden, "This profile is private"},
		{"/api/personality/not-an-id", http.StatusNotFound, "Profile not found"},
		{"/api/friends/" + privateID, http.StatusForbidden, "This profile is private"},
	}
	for _, tc := range cases {
		var body map[string]string
		res := getJSON(t, ts, tc.path, &body)
		assert.Equal(t, tc.status, res.StatusCode, tc.path)
		assert.Equal(t, tc.title, body["error"], tc.path)
	}
}
