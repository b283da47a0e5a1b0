package steam

import (
	"fmt"
	"time"
)

const (
	VanitySuccess    = 1
	VisibilityPublic = 3
)

type vanityResponse struct {
	Response *struct {
		Success int    `json:"success"`
		SteamID string `json:"steamid"`
		Message string `json:"message"`
	} `json:"response"`
}

type playerSummaryResponse struct {
	Response *PlayerList `json:"response"`
}

type PlayerList struct {
	Players []Player `json:"players"`
}

type Player struct {
	SteamID                  string `json:"steamid"`
	PersonaName              string `json:"personaname"`
	ProfileURL               string `json:"profileurl"`
	Avatar                   string `json:"avatar"`
	AvatarFull               string `json:"avatarfull"`
	CommunityVisibilityState int    `json:"communityvisibilitystate"`
	GameID                   string `json:"gameid,omitempty"`
}

func (p Player) IsPublic() bool {
	return p.CommunityVisibilityState == VisibilityPublic
}

// DisplayName falls back to a placeholder since personaname can be blank
func (p Player) DisplayName() string {
	if p.PersonaName == "" {
		return "Unknown"
	}
	return p.PersonaName
}

func (p Player) validate() error {
	if p.SteamID == "" {
		return fmt.Errorf("%w: player without steamid", ErrMalformedResponse)
	}
	return nil
}

type ownedGamesResponse struct {
	Response *OwnedGames `json:"response"`
}

type OwnedGames struct {
	GameCount *int        `json:"game_count"`
	Games     []OwnedGame `json:"games"`
}

type OwnedGame struct {
	AppID           int    `json:"appid"`
	Name            string `json:"name"`
	PlaytimeForever int    `json:"playtime_forever"` // minutes
	Playtime2Weeks  int    `json:"playtime_2weeks"`  // minutes
	LastPlayed      int64  `json:"rtime_last_played"`
}

func (g OwnedGame) LastPlayedAt() time.Time {
	if g.LastPlayed == 0 {
		return time.Time{}
	}
	return time.Unix(g.LastPlayed, 0)
}

func (g OwnedGame) validate() error {
	if g.AppID == 0 {
		return fmt.Errorf("%w: owned game without appid", ErrMalformedResponse)
	}
	return nil
}

type friendListResponse struct {
	FriendsList *struct {
		Friends []Friend `json:"friends"`
	} `json:"friendslist"`
}

type Friend struct {
	SteamID      string `json:"steamid"`
	Relationship string `json:"relationship"`
	FriendSince  int64  `json:"friend_since"`
}

type appDetailResponse struct {
	Success bool       `json:"success"`
	Data    *AppDetail `json:"data"`
}

type AppDetail struct {
	Type          string         `json:"type"`
	Name          string         `json:"name"`
	HeaderImage   string         `json:"header_image"`
	Developers    []string       `json:"developers"`
	IsFree        bool           `json:"is_free"`
	Genres        []Description  `json:"genres"`
	Categories    []Description  `json:"categories"`
	PriceOverview *PriceOverview `json:"price_overview"`
}

type Description struct {
	Description string `json:"description"`
}

type PriceOverview struct {
	Currency string `json:"currency"`
	Initial  int    `json:"initial"` // cents
	Final    int    `json:"final"`   // cents
}
