// Package views renders the server-side HTML pages from embedded templates.
// The templates are a black-box collaborator: handlers hand them a data
// struct and never inspect the markup.
package views

import (
	"embed"
	"html/template"
	"io"
	"time"
)

//go:embed templates/*.html
var files embed.FS

var pages = template.Must(
	template.New("").Funcs(template.FuncMap{
		"datetime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04")
		},
	}).ParseFS(files, "templates/*.html"),
)

// Render writes the named page with the given data.
func Render(w io.Writer, name string, data any) error {
	return pages.ExecuteTemplate(w, name, data)
}
