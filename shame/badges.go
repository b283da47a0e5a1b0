package shame

import "fmt"

const MaxBadges = 6

type Badge struct {
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
}

// DetectBadges hands out achievements nobody asked for. store only needs to
// cover a sample of the library.
func DetectBadges(stats Stats, store map[int]StoreInfo, games []Game) []Badge {
	badges := []Badge{}

	if stats.TotalGames > 200 && stats.ShameScore > 40 {
		badges = append(badges, Badge{"Humble Bundle Victim", "📦",
			"200+ games, most untouched. Those bundles got you good."})
	}

	earlyAccess := 0
	freeToPlay := 0
	for _, info := range store {
		if info.IsEarlyAccess() {
			earlyAccess++
		}
		if info.IsFree {
			freeToPlay++
		}
	}
	if earlyAccess >= 5 {
		badges = append(badges, Badge{"Early Access Addict", "🚧",
			fmt.Sprintf("%d Early Access games. You love paying to beta test.", earlyAccess)})
	}

	if stats.PlayedCount > 0 && len(games) > 0 {
		totalMinutes := 0
		top := games[0]
		for _, g := range games {
			totalMinutes += g.Playtime
			if g.Playtime > top.Playtime {
				top = g
			}
		}
		if totalMinutes > 0 {
			topPct := float64(top.Playtime) / float64(totalMinutes) * 100
			if topPct > 50 {
				name := top.Name
				if name == "" {
					name = "one game"
				}
				badges = append(badges, Badge{"One-Trick Pony", "🐴",
					fmt.Sprintf("%.0f%% of your time in %s.", topPct, name)})
			}
		}
	}

	if stats.TotalGames >= 500 {
		badges = append(badges, Badge{"Game Collector", "🏛️",
			fmt.Sprintf("%d games. You don't play games, you collect them.", stats.TotalGames)})
	}

	quickAbandon := 0
	for _, g := range games {
		if g.Playtime > 0 && g.Playtime < 30 {
			quickAbandon++
		}
	}
	if quickAbandon >= 20 {
		badges = append(badges, Badge{"Speedrun Abandoner", "⏱️",
			fmt.Sprintf("Opened %d games for under 30 minutes.", quickAbandon)})
	}

	if stats.TotalGames < 50 && stats.ShameScore < 20 {
		badges = append(badges, Badge{"Disciplined Buyer", "🎯",
			"Small library, actually played. Impressive self-control."})
	}

	if freeToPlay >= 10 {
		badges = append(badges, Badge{"F2P Warrior", "🆓",
			fmt.Sprintf("%d free-to-play games. At least those didn't cost anything.", freeToPlay)})
	}

	return badges[:min(MaxBadges, len(badges))]
}
