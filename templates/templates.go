package templates

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// Get parses the named embedded template with the shared function map
func Get(name string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(GetTemplateFunc()).ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}
