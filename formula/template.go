package formula

import (
	"strings"
	"text/template"
)

// DefaultURLFormat points at the source archive github generates for a tag.
const DefaultURLFormat = "https://github.com/{{.Org}}/{{.Project}}/archive/refs/tags/{{.Version}}.zip"

// Release contains the fields available to url format strings.
type Release struct {
	// Org is the github organization owning the repository
	Org string
	// Project is the repository name
	Project string
	// Version is the tag being released, used verbatim
	Version string
}

// Resolve executes the provided format string as a template with the Release's fields.
// It returns the resolved string and any error that occurred during template parsing or execution.
func (r Release) Resolve(format string) (string, error) {
	tmpl, err := template.New("url").Option("missingkey=error").Parse(format)
	if err != nil {
		return "", err
	}

	var bld strings.Builder
	if err := tmpl.Execute(&bld, r); err != nil {
		return "", err
	}

	return bld.String(), nil
}

// MustResolve executes the provided format string as a template with the Release's fields.
// Panics if the template can't be resolved correctly.
func (r Release) MustResolve(format string) string {
	resolved, err := r.Resolve(format)
	if err != nil {
		panic(err)
	}
	return resolved
}
