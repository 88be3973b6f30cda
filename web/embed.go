// Package web holds the embedded board viewer served by the HTTP adapter.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
)

//go:embed templates/*.tmpl static/*
var Assets embed.FS

var parsed = sync.OnceValue(func() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"tiers": func() []string { return []string{"easy", "moderate", "hard"} },
	}).ParseFS(Assets, "templates/*.tmpl"))
})

// StaticFS serves the files under static/ at the root of the returned FS.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(Assets, "static")
	if err != nil {
		return http.FS(embed.FS{})
	}
	return http.FS(sub)
}

// Templates returns the embedded templates, parsed once.
func Templates() *template.Template { return parsed() }
