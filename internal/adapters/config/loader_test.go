package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crater/internal/adapters/config"
	"go.trai.ch/crater/internal/core/domain"
	"go.trai.ch/crater/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, domain.DirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), domain.FilePerm))
}

func newLoader(t *testing.T) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	return config.NewLoader(mockLogger), mockLogger
}

func TestLoader_LoadDir_YAML(t *testing.T) {
	loader, _ := newLoader(t)
	dir := t.TempDir()
	createFile(t, dir, domain.DepsFileName, `
dependencies:
  fmt:
    url: https://github.com/fmtlib/fmt.git
    branch: master
  zlib:
    type: git
    url: https://example.com/zlib.git
    branches: [v1.2, v1.3]
gen:
  msbuild:
    prop_prefix: dep_
`)

	decls, err := loader.LoadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"fmt", "zlib"}, decls.DependencyNames())
	assert.Equal(t, domain.Document{
		"type":   "git",
		"url":    "https://github.com/fmtlib/fmt.git",
		"branch": "master",
	}, decls.Dependencies["fmt"])

	branches, err := decls.Dependencies["zlib"].Strings("branches")
	require.NoError(t, err)
	assert.Equal(t, []string{"v1.2", "v1.3"}, branches)

	assert.Equal(t, []string{"msbuild"}, decls.GeneratorNames())
	assert.Equal(t, "dep_", decls.Gen["msbuild"]["prop_prefix"])
}

func TestLoader_LoadDir_TOML(t *testing.T) {
	loader, _ := newLoader(t)
	dir := t.TempDir()
	createFile(t, dir, domain.DepsTOMLFileName, `
[dependencies.fmt]
url = "https://github.com/fmtlib/fmt.git"
branches = ["master", "11.x"]

[gen.cmake]
file = "cmake/deps.cmake"
`)

	decls, err := loader.LoadDir(dir)
	require.NoError(t, err)

	fmtDoc := decls.Dependencies["fmt"]
	assert.Equal(t, "git", fmtDoc["type"])
	branches, err := fmtDoc.Strings("branches")
	require.NoError(t, err)
	assert.Equal(t, []string{"master", "11.x"}, branches)
	assert.Equal(t, "cmake/deps.cmake", decls.Gen["cmake"]["file"])
}

func TestLoader_LoadDir_PrefersDEPS(t *testing.T) {
	loader, mockLogger := newLoader(t)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	dir := t.TempDir()
	createFile(t, dir, domain.DepsFileName, "dependencies:\n  a:\n    url: yaml\n")
	createFile(t, dir, domain.DepsTOMLFileName, "[dependencies.b]\nurl = \"toml\"\n")

	decls, err := loader.LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, decls.DependencyNames())
}

func TestLoader_LoadDir_Missing(t *testing.T) {
	loader, _ := newLoader(t)

	decls, err := loader.LoadDir(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, decls.Dependencies)
	assert.Empty(t, decls.Gen)
}

func TestLoader_Parse_Errors(t *testing.T) {
	loader, _ := newLoader(t)

	_, err := loader.Parse(domain.RawDeclarations{FileName: domain.DepsFileName, Data: []byte("dependencies: [")})
	assert.ErrorContains(t, err, domain.ErrConfigParseFailed.Error())

	_, err = loader.Parse(domain.RawDeclarations{FileName: domain.DepsFileName, Data: []byte("dependencies:\n  \"a:b\":\n    url: x\n")})
	assert.ErrorContains(t, err, domain.ErrInvalidDependencyName.Error())
}

func TestLoader_Parse_Empty(t *testing.T) {
	loader, _ := newLoader(t)

	decls, err := loader.Parse(domain.RawDeclarations{})
	require.NoError(t, err)
	assert.Empty(t, decls.Dependencies)
}

func TestLoader_FindRoot(t *testing.T) {
	loader, _ := newLoader(t)

	root := t.TempDir()
	createFile(t, root, domain.LockFileName, "{}\n")
	createFile(t, root, domain.DepsFileName, "")
	crateDir := filepath.Join(root, "_deps", "fmt")
	createFile(t, crateDir, domain.DepsFileName, "")
	nested := filepath.Join(crateDir, "src")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	got, err := loader.FindRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestLoader_FindRoot_DeclarationFallback(t *testing.T) {
	loader, _ := newLoader(t)

	root := t.TempDir()
	createFile(t, root, domain.DepsFileName, "")
	nested := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	got, err := loader.FindRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestLoader_FindRoot_NothingFound(t *testing.T) {
	loader, _ := newLoader(t)
	dir := t.TempDir()

	got, err := loader.FindRoot(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}
