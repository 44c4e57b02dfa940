// Package gen renders build-system glue files from the resolved crate graph.
package gen

import (
	"bytes"
	"encoding/xml"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"go.trai.ch/crater/internal/core/domain"
	"go.trai.ch/crater/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	fileKey = "file"
	selfVar = "self"
)

// Template is a generator backed by a text/template.
type Template struct {
	name      string
	file      string
	prefixKey string
	prefix    string
	tmpl      *template.Template
}

var _ ports.Generator = (*Template)(nil)

// NewMSBuild returns the generator of MSBuild property sheets.
func NewMSBuild() *Template {
	return newTemplate("msbuild", "deps.props", "prop_prefix", "dep_", msbuildTemplate)
}

// NewMakefile returns the generator of Makefile fragments.
func NewMakefile() *Template {
	return newTemplate("makefile", "deps.mk", "var_prefix", "DEP_", makefileTemplate)
}

// NewCMake returns the generator of CMake fragments.
func NewCMake() *Template {
	return newTemplate("cmake", "deps.cmake", "var_prefix", "DEP_", cmakeTemplate)
}

// NewQMake returns the generator of qmake project includes.
func NewQMake() *Template {
	return newTemplate("qmake", "deps.pri", "var_prefix", "DEP_", qmakeTemplate)
}

func newTemplate(name, file, prefixKey, prefix, text string) *Template {
	funcs := template.FuncMap{
		"header": func() string { return header },
		"xml":    escapeXML,
	}
	return &Template{
		name:      name,
		file:      file,
		prefixKey: prefixKey,
		prefix:    prefix,
		tmpl:      template.Must(template.New(name).Funcs(funcs).Parse(text)),
	}
}

// Name returns the gen block key of the generator.
func (t *Template) Name() string {
	return t.name
}

type variable struct {
	Name string
	Dir  string
}

type data struct {
	Prefix string
	// Vars holds the crate itself followed by its direct dependencies.
	Vars []variable
	// All holds every transitively reachable crate, dependencies first.
	All []string
}

// Generate renders the file for crate. Paths in the output are relative to the directory of the file.
func (t *Template) Generate(graph *domain.Graph, crate domain.GraphNode, settings domain.Document) (string, []byte, error) {
	file, err := settings.OptionalString(fileKey, t.file)
	if err != nil {
		return "", nil, zerr.With(err, "generator", t.name)
	}
	if !filepath.IsLocal(filepath.FromSlash(file)) {
		return "", nil, zerr.With(zerr.With(domain.ErrInvalidField, "field", fileKey), "generator", t.name)
	}
	prefix, err := settings.OptionalString(t.prefixKey, t.prefix)
	if err != nil {
		return "", nil, zerr.With(err, "generator", t.name)
	}

	base := filepath.Dir(filepath.Join(crate.Dir, filepath.FromSlash(file)))
	self, err := relDir(base, crate.Dir)
	if err != nil {
		return "", nil, err
	}
	d := data{
		Prefix: prefix,
		Vars:   []variable{{Name: selfVar, Dir: self}},
	}
	for _, name := range slices.Sorted(maps.Keys(crate.Deps)) {
		target, ok := graph.Node(crate.Deps[name])
		if !ok {
			return "", nil, zerr.With(domain.ErrMissingDependency, "crate", crate.Deps[name])
		}
		dir, err := relDir(base, target.Dir)
		if err != nil {
			return "", nil, err
		}
		d.Vars = append(d.Vars, variable{Name: name, Dir: dir})
	}
	for _, n := range graph.Reachable(crate.Name) {
		dir, err := relDir(base, n.Dir)
		if err != nil {
			return "", nil, err
		}
		d.All = append(d.All, dir)
	}

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, d); err != nil {
		return "", nil, zerr.With(zerr.Wrap(err, "failed to render template"), "generator", t.name)
	}
	return file, buf.Bytes(), nil
}

func relDir(from, to string) (string, error) {
	rel, err := filepath.Rel(from, to)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to compute relative path"), "path", to)
	}
	return filepath.ToSlash(rel), nil
}

func escapeXML(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
