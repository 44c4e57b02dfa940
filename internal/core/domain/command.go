package domain

import (
	"slices"
	"strings"
)

// Command describes a subprocess invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Env controls which variables the subprocess inherits.
	Env EnvPolicy
	// Progress marks long-running commands whose diagnostics are forwarded to the user.
	Progress bool
}

// String renders the command line for logs and errors.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// CommandResult is the outcome of a finished subprocess.
type CommandResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Success reports whether the process exited with status zero.
func (r *CommandResult) Success() bool {
	return r != nil && r.ExitCode == 0
}

// EnvPolicy is a scoped environment for one subprocess.
// It never touches the environment of the current process.
type EnvPolicy struct {
	// ScrubPrefixes removes inherited variables whose name starts with any prefix.
	ScrubPrefixes []string
	// Keep lists variables exempt from scrubbing.
	Keep []string
	// Set overrides or adds variables after scrubbing.
	Set map[string]string
}

// Apply derives the subprocess environment from base ("KEY=VALUE" entries).
func (p EnvPolicy) Apply(base []string) []string {
	out := make([]string, 0, len(base)+len(p.Set))
	for _, entry := range base {
		k, _, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, overridden := p.Set[k]; overridden {
			continue
		}
		if p.scrubbed(k) {
			continue
		}
		out = append(out, entry)
	}
	keys := make([]string, 0, len(p.Set))
	for k := range p.Set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		out = append(out, k+"="+p.Set[k])
	}
	return out
}

func (p EnvPolicy) scrubbed(key string) bool {
	if slices.Contains(p.Keep, key) {
		return false
	}
	for _, prefix := range p.ScrubPrefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}
