package config

import (
	"bytes"
	"text/template"

	"github.com/matzehuels/footlights/pkg/errors"
)

// TemplateData is what a document template can reference: .Image for the
// piped-in image (a data URL) and .Vars.<name> for --set values.
type TemplateData struct {
	Image string
	Vars  map[string]string
}

// Template expands a document template. Referencing an unset variable is an
// error.
func Template(src []byte, data TemplateData) ([]byte, error) {
	if data.Vars == nil {
		data.Vars = map[string]string{}
	}
	tmpl, err := template.New("document").Option("missingkey=error").Parse(string(src))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse template")
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "expand template")
	}
	return buf.Bytes(), nil
}
