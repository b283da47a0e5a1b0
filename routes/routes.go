package routes

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rs/cors"

	"github.com/marcus-crane/steamshame/lookup"
	"github.com/marcus-crane/steamshame/templates"
)

// The friends API scores at most 50 friends and returns the top 10.
var apiLeaderboard = lookup.LeaderboardOptions{
	MaxFriends:  50,
	Limit:       10,
	SkipPerfect: true,
}

type Routes struct {
	svc   *lookup.Service
	pages *templates.Renderer
}

func renderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", slog.String("error", err.Error()))
	}
}

func renderJSONError(w http.ResponseWriter, err error) {
	f := classify(err)
	renderJSON(w, f.Status, map[string]string{"error": f.Title, "message": f.Message})
}

func Register(mux *http.ServeMux, svc *lookup.Service, pages *templates.Renderer, allowedOrigins []string) http.Handler {
	rt := &Routes{svc: svc, pages: pages}

	mux.HandleFunc("GET /{$}", rt.index)
	mux.HandleFunc("POST /lookup", rt.lookup)
	mux.HandleFunc("GET /results/{steamid}", rt.results)
	mux.HandleFunc("GET /friends/{steamid}", rt.friends)

	mux.HandleFunc("GET /api/value/{steamid}", rt.apiValue)
	mux.HandleFunc("GET /api/personality/{steamid}", rt.apiPersonality)
	mux.HandleFunc("GET /api/friends/{steamid}", rt.apiFriends)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
	})

	return requestLogger(c.Handler(mux))
}

func (rt *Routes) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	if err := rt.pages.Render(w, status, page, data); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render page",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (rt *Routes) renderError(w http.ResponseWriter, r *http.Request, err error) {
	f := classify(err)
	logFailure(r, f, err)
	rt.render(w, r, f.Status, templates.PageError, templates.ErrorPage{
		Title:   f.Title,
		Message: f.Message,
		Status:  f.Status,
	})
}

func (rt *Routes) index(w http.ResponseWriter, r *http.Request) {
	rt.render(w, r, http.StatusOK, templates.PageIndex, templates.FormPage{})
}

func (rt *Routes) lookup(w http.ResponseWriter, r *http.Request) {
	input := strings.TrimSpace(r.PostFormValue("steam_input"))
	if input == "" {
		rt.render(w, r, http.StatusBadRequest, templates.PageIndex, templates.FormPage{
			Error: "Enter a Steam ID, vanity name or profile URL.",
		})
		return
	}
	report, err := rt.svc.Lookup(r.Context(), input)
	if err != nil {
		rt.renderError(w, r, err)
		return
	}
	rt.renderResults(w, r, report)
}

func (rt *Routes) results(w http.ResponseWriter, r *http.Request) {
	report, err := rt.svc.Report(r.Context(), r.PathValue("steamid"))
	if err != nil {
		rt.renderError(w, r, err)
		return
	}
	rt.renderResults(w, r, report)
}

func (rt *Routes) renderResults(w http.ResponseWriter, r *http.Request, report lookup.Report) {
	rt.render(w, r, http.StatusOK, templates.PageResults, templates.ResultsPage{
		Report: report,
		Policy: rt.svc.Policy().Name(),
	})
}

func (rt *Routes) friends(w http.ResponseWriter, r *http.Request) {
	steamID := r.PathValue("steamid")
	board, err := rt.svc.Leaderboard(r.Context(), steamID, lookup.LeaderboardOptions{})
	if err != nil {
		rt.renderError(w, r, err)
		return
	}
	rt.render(w, r, http.StatusOK, templates.PageFriends, templates.FriendsPage{
		SteamID: steamID,
		Board:   board,
	})
}

func (rt *Routes) apiValue(w http.ResponseWriter, r *http.Request) {
	full := r.URL.Query().Get("full")
	estimate, err := rt.svc.Value(r.Context(), r.PathValue("steamid"), full == "1" || full == "true")
	if err != nil {
		logFailure(r, classify(err), err)
		renderJSONError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, estimate)
}

func (rt *Routes) apiPersonality(w http.ResponseWriter, r *http.Request) {
	personality, err := rt.svc.Personality(r.Context(), r.PathValue("steamid"))
	if err != nil {
		logFailure(r, classify(err), err)
		renderJSONError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, personality)
}

func (rt *Routes) apiFriends(w http.ResponseWriter, r *http.Request) {
	board, err := rt.svc.Leaderboard(r.Context(), r.PathValue("steamid"), apiLeaderboard)
	if err != nil {
		logFailure(r, classify(err), err)
		renderJSONError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, board)
}
