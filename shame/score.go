// Package shame turns a Steam library into numbers worth being embarrassed by.
package shame

import (
	"fmt"
	"math"
	"strings"
)

const (
	DefaultVolumeFloor      = 0.4
	DefaultVolumeSaturation = 500
)

// Policy decides how a library's unplayed ratio becomes a score between 0
// and 100. Every policy must score an empty library as 0.
type Policy interface {
	Name() string
	Score(unplayed, total int) float64
}

// Percentage scores a library by the plain share of games never played.
type Percentage struct{}

func (Percentage) Name() string {
	return "percentage"
}

func (Percentage) Score(unplayed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round1(unplayedPercent(unplayed, total))
}

// VolumeWeighted scales the unplayed percentage by library size so that a
// handful of untouched games in a tiny library is forgiven more readily than
// hundreds in a huge one. The multiplier follows log2(total)/log2(Saturation),
// clamped to [Floor, 1].
type VolumeWeighted struct {
	Floor      float64
	Saturation int
}

func (VolumeWeighted) Name() string {
	return "weighted"
}

func (v VolumeWeighted) Score(unplayed, total int) float64 {
	if total <= 0 {
		return 0
	}
	saturation := v.Saturation
	if saturation < 2 {
		saturation = DefaultVolumeSaturation
	}
	multiplier := math.Log2(float64(max(total, 2))) / math.Log2(float64(saturation))
	multiplier = math.Max(v.Floor, math.Min(1.0, multiplier))
	return round1(unplayedPercent(unplayed, total) * multiplier)
}

func DefaultPolicy() Policy {
	return VolumeWeighted{Floor: DefaultVolumeFloor, Saturation: DefaultVolumeSaturation}
}

func PolicyByName(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "weighted":
		return DefaultPolicy(), nil
	case "percentage":
		return Percentage{}, nil
	}
	return nil, fmt.Errorf("unknown shame policy %q", name)
}

type verdictThreshold struct {
	above   float64
	verdict string
}

var verdicts = []verdictThreshold{
	{60, "You have a problem. Stop buying games."},
	{40, "Steam sales have claimed another victim."},
	{25, "Not bad, but you know you'll never play those."},
}

func Verdict(score float64) string {
	for _, v := range verdicts {
		if score > v.above {
			return v.verdict
		}
	}
	return "Impressive restraint. Or new account."
}

func unplayedPercent(unplayed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(unplayed) / float64(total) * 100
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
