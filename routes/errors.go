package routes

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/marcus-crane/steamshame/lookup"
	"github.com/marcus-crane/steamshame/steam"
)

// failure is what a visitor gets told when a lookup doesn't work out.
type failure struct {
	Title   string
	Message string
	Status  int
}

func classify(err error) failure {
	switch {
	case errors.Is(err, steam.ErrEmptyInput):
		return failure{"Nothing to look up", "Enter a Steam ID, vanity name or profile URL.", http.StatusBadRequest}
	case errors.Is(err, steam.ErrProfileNotFound):
		return failure{"Profile not found", "Could not find that Steam profile. Try pasting your full Steam profile URL.", http.StatusNotFound}
	case errors.Is(err, steam.ErrProfilePrivate), errors.Is(err, steam.ErrGamesHidden):
		return failure{"This profile is private", "Game details need to be public for Steam Shame to work.", http.StatusForbidden}
	case errors.Is(err, steam.ErrFriendsPrivate):
		return failure{"Friends list is private", "Your friends list needs to be public to compare with friends.", http.StatusForbidden}
	case errors.Is(err, lookup.ErrNoFriends):
		return failure{"No friends found", "Either your friends list is empty or none of your friends could be looked up.", http.StatusNotFound}
	case errors.Is(err, lookup.ErrNoGames):
		return failure{"No games found", "This account doesn't own any games yet.", http.StatusNotFound}
	case errors.Is(err, steam.ErrMalformedResponse), errors.Is(err, steam.ErrStoreResponseMalformed):
		return failure{"Steam sent something odd", "Steam returned a response we couldn't make sense of. Try again in a bit.", http.StatusBadGateway}
	case errors.Is(err, steam.ErrUpstream), errors.Is(err, context.DeadlineExceeded):
		return failure{"Steam API Error", "Steam didn't answer properly. It may be down or rate limiting us, so try again shortly.", http.StatusBadGateway}
	}
	return failure{"Something went wrong", "An unexpected error occurred while looking up that profile.", http.StatusInternalServerError}
}

func logFailure(r *http.Request, f failure, err error) {
	level := slog.LevelInfo
	if f.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(r.Context(), level, "Lookup failed",
		slog.String("path", r.URL.Path),
		slog.Int("status", f.Status),
		slog.String("error", err.Error()),
	)
}
