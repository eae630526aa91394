// Package templates holds the server-rendered pages. Page files render a whole
// document; partials.html only defines the shared blocks.
package templates

import (
	"embed"
	"errors"
	"html/template"
	"strings"
	"time"

	"kalshield/querystate"
)

//go:embed html/*.html
var files embed.FS

// Funcs are the helpers available to every template.
var Funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("Jan 2, 2006")
	},
	"categories":    func() []querystate.Category { return querystate.Categories },
	"categoryLabel": querystate.CategoryLabel,
	"add":           func(a, b int) int { return a + b },
	"dict":          dict,
	"initial": func(s string) string {
		if s == "" {
			return "?"
		}
		return strings.ToUpper(string([]rune(s)[:1]))
	},
}

// dict builds a map from key/value pairs so a block can take several values.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			return nil, errors.New("dict: keys must be strings")
		}
		m[key] = kv[i+1]
	}
	return m, nil
}

// Load parses every page and partial.
func Load() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(files, "html/*.html")
}

// MustLoad is Load for process start-up.
func MustLoad() *template.Template {
	return template.Must(Load())
}
