package shame

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed genres.yaml
var genreYAML []byte

const BreakdownLimit = 8

type GenreCategory struct {
	Key   string   `yaml:"key"`
	Label string   `yaml:"label"`
	Emoji string   `yaml:"emoji"`
	Names []string `yaml:"names"`
}

type Catalog struct {
	categories []GenreCategory
	byKey      map[string]GenreCategory
}

func LoadCatalog(data []byte) (*Catalog, error) {
	var categories []GenreCategory
	if err := yaml.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to parse genre catalog: %w", err)
	}
	c := &Catalog{byKey: map[string]GenreCategory{}}
	for _, cat := range categories {
		if cat.Key == "" || len(cat.Names) == 0 {
			return nil, fmt.Errorf("genre category %q needs a key and at least one name", cat.Label)
		}
		if _, dup := c.byKey[cat.Key]; dup {
			return nil, fmt.Errorf("duplicate genre category %q", cat.Key)
		}
		c.byKey[cat.Key] = cat
		c.categories = append(c.categories, cat)
	}
	return c, nil
}

var DefaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := LoadCatalog(genreYAML)
	if err != nil {
		panic(err)
	}
	return c
})

func (c *Catalog) Lookup(key string) (GenreCategory, bool) {
	cat, ok := c.byKey[key]
	return cat, ok
}

// Classify returns the keys of every category matching any label, in
// catalog order.
func (c *Catalog) Classify(labels []string) []string {
	lowered := make([]string, len(labels))
	for i, l := range labels {
		lowered[i] = strings.ToLower(l)
	}
	var keys []string
	for _, cat := range c.categories {
		for _, name := range cat.Names {
			if slices.Contains(lowered, strings.ToLower(name)) {
				keys = append(keys, cat.Key)
				break
			}
		}
	}
	return keys
}

type GenreShare struct {
	Key   string   `json:"key"`
	Label string   `json:"label"`
	Emoji string   `json:"emoji"`
	Count int      `json:"count"`
	Pct   float64  `json:"pct"`
	Games []string `json:"games"`
}

// Breakdown counts categories across games that have store data and returns
// the most common BreakdownLimit of them. Ties keep first-seen order.
func (c *Catalog) Breakdown(games []Game, store map[int]StoreInfo) []GenreShare {
	counts := map[string]int{}
	names := map[string][]string{}
	var order []string
	total := 0
	for _, g := range games {
		info, ok := store[g.AppID]
		if !ok {
			continue
		}
		for _, key := range c.Classify(info.Labels()) {
			if _, seen := counts[key]; !seen {
				order = append(order, key)
			}
			counts[key]++
			names[key] = append(names[key], g.DisplayName())
			total++
		}
	}
	if total == 0 {
		return []GenreShare{}
	}

	slices.SortStableFunc(order, func(a, b string) int {
		return counts[b] - counts[a]
	})

	shares := []GenreShare{}
	for _, key := range order[:min(BreakdownLimit, len(order))] {
		cat, ok := c.Lookup(key)
		if !ok {
			cat = GenreCategory{Key: key, Label: key, Emoji: "🎮"}
		}
		shares = append(shares, GenreShare{
			Key:   key,
			Label: cat.Label,
			Emoji: cat.Emoji,
			Count: counts[key],
			Pct:   round1(float64(counts[key]) / float64(total) * 100),
			Games: names[key],
		})
	}
	return shares
}
