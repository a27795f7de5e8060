package web

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
)

// TemplateRegistry parses each page template against the shared base layout
// once at startup and renders into memory, so pages can be stored in the
// page cache as-is.
type TemplateRegistry struct {
	templates map[string]*template.Template
}

var pageTemplates = []string{
	"home.html",
	"category.html",
	"post.html",
	"search.html",
	"notfound.html",
}

// NewTemplateRegistry loads all page templates from dir.
func NewTemplateRegistry(dir string) (*TemplateRegistry, error) {
	base := filepath.Join(dir, "base.html")
	templates := make(map[string]*template.Template, len(pageTemplates))
	for _, page := range pageTemplates {
		tmpl, err := template.ParseFiles(filepath.Join(dir, page), base)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		templates[page] = tmpl
	}
	return &TemplateRegistry{templates: templates}, nil
}

// Render executes the named page template inside the base layout.
func (t *TemplateRegistry) Render(name string, data interface{}) ([]byte, error) {
	tmpl, ok := t.templates[name]
	if !ok {
		return nil, fmt.Errorf("template not found: %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
