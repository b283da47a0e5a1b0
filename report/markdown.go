// Package report prints a shame report as Markdown for the command line.
package report

import (
	"fmt"
	"io"

	"github.com/nao1215/markdown"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/marcus-crane/steamshame/lookup"
	"github.com/marcus-crane/steamshame/shame"
)

var printer = message.NewPrinter(language.English)

type MarkdownWriter struct {
	output io.Writer
}

func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// Write renders the report. policy is named in the summary so scores from
// different policies aren't compared by mistake.
func (w *MarkdownWriter) Write(r lookup.Report, policy string) error {
	md := markdown.NewMarkdown(w.output)

	md.H1(fmt.Sprintf("Steam Shame: %s", r.Player.DisplayName()))
	md.PlainText("")
	w.writeSummary(md, r, policy)
	w.writeSample(md, "Still in the shrink wrap", r.Stats.NeverPlayedSample, false)
	w.writeSample(md, "Gave up almost immediately", r.Stats.BarelyPlayedSample, true)

	return md.Build()
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, r lookup.Report, policy string) {
	s := r.Stats
	md.Table(markdown.TableSet{
		Header: []string{"Stat", "Value"},
		Rows: [][]string{
			{"Steam ID", "`" + r.SteamID + "`"},
			{"Total games", printer.Sprintf("%d", s.TotalGames)},
			{"Never played", printer.Sprintf("%d", s.NeverPlayedCount)},
			{"Barely played", printer.Sprintf("%d", s.BarelyPlayedCount)},
			{"Actually played", printer.Sprintf("%d", s.PlayedCount)},
			{"Unplayed", printer.Sprintf("%.1f%%", s.UnplayedPercent)},
			{"Total playtime", shame.FormatPlaytime(s.TotalPlaytime)},
			{"Shame score", printer.Sprintf("**%.1f** (%s)", s.ShameScore, policy)},
		},
	})
	md.PlainText("")
	md.PlainText("> " + s.Verdict)
	md.PlainText("")
}

func (w *MarkdownWriter) writeSample(md *markdown.Markdown, title string, games []shame.SampleGame, withPlaytime bool) {
	if len(games) == 0 {
		return
	}
	md.H2(title)
	md.PlainText("")
	items := make([]string, 0, len(games))
	for _, g := range games {
		if withPlaytime {
			items = append(items, fmt.Sprintf("%s (%s)", g.Name, shame.FormatPlaytime(g.Playtime)))
			continue
		}
		items = append(items, g.Name)
	}
	md.BulletList(items...)
	md.PlainText("")
}
