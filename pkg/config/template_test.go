package config

import (
	"testing"

	"github.com/matzehuels/footlights/pkg/errors"
)

func TestTemplate(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		data    TemplateData
		want    string
		wantErr bool
	}{
		{"no actions", `image = "a.png"`, TemplateData{}, `image = "a.png"`, false},
		{"image", `image = "{{ .Image }}"`, TemplateData{Image: "data:image/png;base64,AA"}, `image = "data:image/png;base64,AA"`, false},
		{"empty image", `image = "{{ .Image }}"`, TemplateData{}, `image = ""`, false},
		{"vars", `pure = "{{ .Vars.color }}"`, TemplateData{Vars: map[string]string{"color": "#fff"}}, `pure = "#fff"`, false},
		{"missing var", `pure = "{{ .Vars.color }}"`, TemplateData{}, "", true},
		{"bad syntax", `pure = "{{ .Vars.color"`, TemplateData{}, "", true},
		{"unknown field", `{{ .Nope }}`, TemplateData{}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Template([]byte(tt.src), tt.data)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidConfig) {
					t.Fatalf("Template() error = %v, want INVALID_CONFIG", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Template: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Template() = %q, want %q", got, tt.want)
			}
		})
	}
}
