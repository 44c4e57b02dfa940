package gen

const header = "Generated by crater. Do not edit."

const msbuildTemplate = `<?xml version="1.0" encoding="utf-8"?>
<!-- {{header}} -->
<Project xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
  <PropertyGroup>
{{- range .Vars}}
    <{{$.Prefix}}{{.Name}}>{{xml .Dir}}</{{$.Prefix}}{{.Name}}>
{{- end}}
  </PropertyGroup>
</Project>
`

const makefileTemplate = `# {{header}}
{{- range .Vars}}
{{$.Prefix}}{{.Name}} := {{.Dir}}
{{- end}}
DEPS_ALL :={{range .All}} {{.}}{{end}}
`

const cmakeTemplate = `# {{header}}
{{- range .Vars}}
set({{$.Prefix}}{{.Name}} "{{.Dir}}")
{{- end}}
set(DEPS_ALL)
{{- range .All}}
list(APPEND DEPS_ALL "{{.}}")
{{- end}}
`

const qmakeTemplate = `# {{header}}
{{- range .Vars}}
{{$.Prefix}}{{.Name}} = {{.Dir}}
{{- end}}
DEPS_ALL =
{{- range .All}}
DEPS_ALL += {{.}}
{{- end}}
`
