package config

// Depsfile is the on-disk shape of a DEPS or DEPS.toml declaration file.
//
//	dependencies:
//	  fmt:
//	    url: https://github.com/fmtlib/fmt.git
//	    branch: master
//	gen:
//	  msbuild:
//	    prop_prefix: dep_
type Depsfile struct {
	Dependencies map[string]map[string]any `yaml:"dependencies" toml:"dependencies"`
	Gen          map[string]map[string]any `yaml:"gen" toml:"gen"`
}
