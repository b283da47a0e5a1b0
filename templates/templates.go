// Package templates renders the HTML pages. Every page is parsed together
// with layout.html, which defines the shared chrome and expects the page to
// define "title" and "content".
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"slices"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/marcus-crane/steamshame/lookup"
	"github.com/marcus-crane/steamshame/shame"
)

const (
	PageIndex   = "index.html"
	PageResults = "results.html"
	PageError   = "error.html"
	PageFriends = "friends.html"

	layoutFile = "layout.html"
)

//go:embed html/*.html
var files embed.FS

var printer = message.NewPrinter(language.English)

var funcMap = template.FuncMap{
	"formatPlaytime": shame.FormatPlaytime,
	"number": func(n int) string {
		return printer.Sprintf("%d", n)
	},
	"score": func(f float64) string {
		return printer.Sprintf("%.1f", f)
	},
	"hours": func(minutes int) string {
		return printer.Sprintf("%d", minutes/60)
	},
}

type FormPage struct {
	Error string
	Input string
}

type ResultsPage struct {
	Report lookup.Report
	Policy string
}

type ErrorPage struct {
	Title   string
	Message string
	Status  int
}

type FriendsPage struct {
	SteamID string
	Board   lookup.Leaderboard
}

type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	pages, err := fs.Glob(files, "html/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: map[string]*template.Template{}}
	for _, p := range pages {
		name := path.Base(p)
		if name == layoutFile {
			continue
		}
		tmpl, err := template.New(name).Funcs(funcMap).ParseFS(files, "html/"+layoutFile, p)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render writes a page with the given status. The page is executed into a
// buffer first so a template failure never leaves a half written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("no template named %q", page)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Pages lists the parsed page names, sorted.
func (r *Renderer) Pages() []string {
	names := make([]string, 0, len(r.pages))
	for name := range r.pages {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
