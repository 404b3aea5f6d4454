package reporting

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/idaholab/civet-docs/templates"
)

// PageView is the shell around one rendered documentation page
type PageView struct {
	Title   string
	CSSHref string
	Content template.HTML
}

// PageFormatter wraps rendered page bodies in the site HTML shell
type PageFormatter struct {
	tmpl *template.Template
}

// NewPageFormatter creates a page formatter from the embedded template
func NewPageFormatter() (*PageFormatter, error) {
	tmpl, err := templates.Get("page.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to create page formatter: %w", err)
	}
	return &PageFormatter{tmpl: tmpl}, nil
}

// Format renders one complete HTML page
func (f *PageFormatter) Format(view PageView) (string, error) {
	var buf bytes.Buffer
	if err := f.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	return buf.String(), nil
}
