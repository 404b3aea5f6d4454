package templates

import (
	"html/template"

	"github.com/idaholab/civet-docs/types"
)

// GetTemplateFunc returns the template functions shared by every report
// template
func GetTemplateFunc() template.FuncMap {
	return template.FuncMap{
		"statusClass": func(status types.Status) string {
			return status.Class()
		},
		"statusText": func(status types.Status) string {
			return string(status)
		},
	}
}
