package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidCrateName is returned when a crate name is not a valid relative path.
	ErrInvalidCrateName = zerr.New("invalid crate name")

	// ErrInvalidDependencyName is returned when a dependency name is empty or contains a colon.
	ErrInvalidDependencyName = zerr.New("invalid dependency name")

	// ErrInvalidEdgeRef is returned when a crate:dependency reference cannot be parsed.
	ErrInvalidEdgeRef = zerr.New("invalid dependency reference, expected format: crate:dependency")

	// ErrUnknownBackend is returned when a lock entry or descriptor names an unregistered backend type.
	ErrUnknownBackend = zerr.New("unknown backend type")

	// ErrMissingField is returned when a required field is missing from a document.
	ErrMissingField = zerr.New("missing required field")

	// ErrInvalidField is returned when a document field has the wrong shape.
	ErrInvalidField = zerr.New("invalid field")

	// ErrCrateExists is returned when adding a crate whose name is already taken.
	ErrCrateExists = zerr.New("crate already exists")

	// ErrCrateNotFound is returned when a crate lookup by name fails.
	ErrCrateNotFound = zerr.New("crate not found")

	// ErrRemoveSelf is returned when attempting to remove the self crate.
	ErrRemoveSelf = zerr.New("the project crate cannot be removed")

	// ErrPathOutsideRoot is returned when a path does not lie within the project root.
	ErrPathOutsideRoot = zerr.New("path is outside project root")

	// ErrDependencyNotFound is returned when a crate does not declare the requested dependency.
	ErrDependencyNotFound = zerr.New("dependency not found")

	// ErrDependencyExists is returned when adding an edge whose dependency name is already bound.
	ErrDependencyExists = zerr.New("dependency already exists")

	// ErrAmbiguousRemote is returned when several crates are bound to the remote of a new edge.
	ErrAmbiguousRemote = zerr.New("remote is bound to several crates")

	// ErrNoCompatibleVersion is returned when backtracking exhausts every candidate version.
	ErrNoCompatibleVersion = zerr.New("no compatible version found")

	// ErrDepsDirGuessFailed is returned when new crates need a home but no dependency directory can be inferred.
	ErrDepsDirGuessFailed = zerr.New("cannot infer dependency directory, pass --deps-dir")

	// ErrCycleDetected is returned when a cycle is detected in the crate graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrMissingDependency is returned when a graph edge references a crate that doesn't exist in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrConfigReadFailed is returned when a declaration file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read dependency declarations")

	// ErrConfigParseFailed is returned when a declaration file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse dependency declarations")

	// ErrLockfileReadFailed is returned when the lockfile cannot be read.
	ErrLockfileReadFailed = zerr.New("failed to read lockfile")

	// ErrLockfileParseFailed is returned when the lockfile cannot be parsed.
	ErrLockfileParseFailed = zerr.New("failed to parse lockfile")

	// ErrLockfileWriteFailed is returned when the lockfile cannot be written.
	ErrLockfileWriteFailed = zerr.New("failed to write lockfile")

	// ErrCommandFailed is returned when a subprocess exits with a non-zero status.
	ErrCommandFailed = zerr.New("command failed")

	// ErrCommandStartFailed is returned when a subprocess cannot be started.
	ErrCommandStartFailed = zerr.New("failed to start command")

	// ErrCheckoutFailed is returned when a backend cannot materialize a version on disk.
	ErrCheckoutFailed = zerr.New("checkout failed")

	// ErrFetchFailed is returned when a backend cannot refresh its remote state.
	ErrFetchFailed = zerr.New("fetch failed")

	// ErrCrateMissing is returned when a crate has no checkout on disk.
	ErrCrateMissing = zerr.New("crate is not checked out")

	// ErrUnlockedCrate is returned when a crate has no locked version yet.
	ErrUnlockedCrate = zerr.New("crate has no locked version, run upgrade")

	// ErrDirtyCrate is returned when a crate's working tree has uncommitted changes.
	ErrDirtyCrate = zerr.New("crate has uncommitted changes")

	// ErrUnknownGenerator is returned when a gen block names an unregistered generator.
	ErrUnknownGenerator = zerr.New("unknown generator")

	// ErrGenerateFailed is returned when a generated file cannot be written.
	ErrGenerateFailed = zerr.New("failed to write generated file")

	// ErrFailedToGetRoot is returned when the project root path cannot be determined.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of project root")
)
