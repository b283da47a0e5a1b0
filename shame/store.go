package shame

import "strings"

const MaxPlausiblePrice = 80.0

// StoreInfo is the slice of store metadata scoring cares about.
type StoreInfo struct {
	Genres     []string
	Categories []string
	IsFree     bool
	Price      *Price
}

type Price struct {
	Currency string
	Initial  int // cents
	Final    int // cents
}

func (s StoreInfo) Labels() []string {
	labels := make([]string, 0, len(s.Genres)+len(s.Categories))
	labels = append(labels, s.Genres...)
	return append(labels, s.Categories...)
}

func (s StoreInfo) IsEarlyAccess() bool {
	for _, g := range s.Genres {
		if strings.EqualFold(g, "early access") {
			return true
		}
	}
	return false
}

// ExtractUSDPrice returns the price in dollars. Non-USD prices are unusable
// and anything above MaxPlausiblePrice is treated as a bundle or a data error.
func ExtractUSDPrice(p *Price) (float64, bool) {
	if p == nil {
		return 0, false
	}
	if p.Currency != "" && p.Currency != "USD" {
		return 0, false
	}
	cents := p.Final
	if cents == 0 {
		cents = p.Initial
	}
	dollars := float64(cents) / 100
	if dollars > MaxPlausiblePrice {
		return 0, false
	}
	return dollars, true
}
