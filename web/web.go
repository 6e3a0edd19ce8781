// Package web holds the embedded HTML templates rendered by the controllers.
package web

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

const displayLayout = "2006-01-02 15:04"

var funcs = template.FuncMap{
	"formatTime":   formatTime,
	"formatExpiry": formatExpiry,
}

// Templates parses the embedded template set. Hand the result to gin's
// SetHTMLTemplate once at router construction.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

func formatTime(ts time.Time) string {
	return ts.Format(displayLayout)
}

// formatExpiry renders a nullable expiry; a nil expiry means the link
// never expires.
func formatExpiry(ts *time.Time) string {
	if ts == nil {
		return "Never"
	}
	return ts.Format(displayLayout)
}
