package steam

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	steamIDPattern    = regexp.MustCompile(`^\d{17}$`)
	profileURLPattern = regexp.MustCompile(`steamcommunity\.com/(?:profiles|id)/([^/?#]+)`)
)

// Identifier is a parsed lookup request. Exactly one field is set.
type Identifier struct {
	SteamID string
	Vanity  string
}

// ParseInput accepts a 64-bit Steam ID, a vanity name or a full
// steamcommunity.com profile URL.
func ParseInput(input string) (Identifier, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Identifier{}, ErrEmptyInput
	}
	if steamIDPattern.MatchString(input) {
		return Identifier{SteamID: input}, nil
	}
	if strings.Contains(input, "steamcommunity.com") {
		match := profileURLPattern.FindStringSubmatch(input)
		if match == nil {
			return Identifier{}, fmt.Errorf("%w: unrecognised profile url %q", ErrProfileNotFound, input)
		}
		if steamIDPattern.MatchString(match[1]) {
			return Identifier{SteamID: match[1]}, nil
		}
		return Identifier{Vanity: match[1]}, nil
	}
	return Identifier{Vanity: input}, nil
}

func IsSteamID(s string) bool {
	return steamIDPattern.MatchString(s)
}
