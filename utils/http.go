package utils

import (
	"net/http"
	"time"
)

const (
	UserAgent = "SteamShame/1.0 (steamshame@utf9k.net)"
)

type UARoundtripper struct {
	RT http.RoundTripper
}

func (uart *UARoundtripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", UserAgent)
	rt := uart.RT
	if rt == nil {
		rt = http.DefaultTransport
	}
	return rt.RoundTrip(req)
}

// NewHTTPClient returns a client that identifies itself to upstream APIs
// and gives up after timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &UARoundtripper{RT: http.DefaultTransport},
	}
}
