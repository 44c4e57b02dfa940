package domain

const (
	// LockFileName is the name of the lockfile at the project root.
	LockFileName = ".deps.lock"

	// DepsFileName is the name of the YAML declaration file inside a crate.
	DepsFileName = "DEPS"

	// DepsTOMLFileName is the name of the TOML declaration file inside a crate.
	DepsTOMLFileName = "DEPS.toml"

	// DefaultDepsDir is the directory new crates are placed in when nothing else can be inferred.
	DefaultDepsDir = "_deps"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DeclarationFileNames lists the declaration files in lookup order.
func DeclarationFileNames() []string {
	return []string{DepsFileName, DepsTOMLFileName}
}
