package web

import (
	"embed"
	"fmt"
	"html/template"
	"strconv"

	"github.com/rshade/holocron/internal/tui"
)

//go:embed templates/*.html
var templateFS embed.FS

// ParseTemplates parses the embedded page templates.
func ParseTemplates() (*template.Template, error) {
	tmpl, err := template.New("pages").Funcs(template.FuncMap{
		"credits": tui.FormatCredits,
		"episode": tui.EpisodeLabel,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return tmpl, nil
}

// neighbour returns the identifier delta away from id, or "" below 1.
func neighbour(id string, delta int) string {
	n, err := strconv.Atoi(id)
	if err != nil || n+delta < 1 {
		return ""
	}
	return strconv.Itoa(n + delta)
}
