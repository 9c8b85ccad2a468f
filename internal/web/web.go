// Package web serves the embedded gallery and upload UI
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"
)

//go:embed static
var assets embed.FS

// Handler returns the UI handler. The index page is rendered once at startup
// with the public base URL injected so the client can build direct links to
// uploaded files.
func Handler(baseURL string) (http.Handler, error) {
	tmpl, err := template.ParseFS(assets, "static/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse index template: %w", err)
	}

	var index bytes.Buffer
	if err := tmpl.Execute(&index, struct{ BaseURL string }{BaseURL: baseURL}); err != nil {
		return nil, fmt.Errorf("failed to render index template: %w", err)
	}

	static, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to open static assets: %w", err)
	}

	files := http.FileServer(http.FS(static))
	rendered := index.Bytes()
	startedAt := time.Now()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" || r.URL.Path == "/index.html" {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			http.ServeContent(w, r, "index.html", startedAt, bytes.NewReader(rendered))
			return
		}
		files.ServeHTTP(w, r)
	}), nil
}
