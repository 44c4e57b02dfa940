package lockfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crater/internal/adapters/lockfile"
	"go.trai.ch/crater/internal/core/domain"
)

func sampleLock() *domain.Lockfile {
	lock := domain.NewLockfile()
	lock.Entries[""] = domain.LockEntry{
		Dependencies: map[string]string{"fmt": "_deps/fmt", "zlib": "_deps/zlib"},
	}
	lock.Entries["_deps/fmt"] = domain.LockEntry{
		Type: "git",
		Fields: domain.Document{
			"url":    "https://github.com/fmtlib/fmt.git",
			"commit": "0c9fce2ffefecfdce794e1859584e25877b7b592",
		},
	}
	lock.Entries["_deps/zlib"] = domain.LockEntry{
		Type: "git",
		Fields: domain.Document{
			"url":    "https://example.com/zlib.git?ref=a&b",
			"commit": "51b7f2abdade71cd9bb0e7a373ef2610ec6f9daf",
		},
		Dependencies: map[string]string{"fmt": "_deps/fmt"},
	}
	return lock
}

func TestEncode_Golden(t *testing.T) {
	data, err := lockfile.Encode(sampleLock())
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "roundtrip", data)
}

func TestEncode_ByteStableRoundTrip(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "roundtrip.golden"))
	require.NoError(t, err)

	lock, err := lockfile.Decode(data)
	require.NoError(t, err)

	again, err := lockfile.Encode(lock)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestDecode(t *testing.T) {
	lock, err := lockfile.Decode([]byte(`{"_deps/a": {"type": "git", "url": "u", "commit": "c", "dependencies": {"b": "_deps/b"}}, "_deps/b": {"type": "git", "url": "v"}}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"", "_deps/a", "_deps/b"}, lock.Names())
	a := lock.Entries["_deps/a"]
	assert.Equal(t, "git", a.Type)
	assert.Equal(t, domain.Document{"url": "u", "commit": "c"}, a.Fields)
	assert.Equal(t, map[string]string{"b": "_deps/b"}, a.Dependencies)
	assert.Nil(t, lock.Entries["_deps/b"].Dependencies)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := lockfile.Decode([]byte(`not json`))
	assert.ErrorContains(t, err, domain.ErrLockfileParseFailed.Error())

	_, err = lockfile.Decode([]byte(`{"a": {"dependencies": {"b": 3}}}`))
	assert.ErrorContains(t, err, domain.ErrLockfileParseFailed.Error())
}

func TestStore_LoadSaveExists(t *testing.T) {
	root := t.TempDir()
	store := lockfile.NewStore()

	lock, err := store.Load(root)
	require.NoError(t, err)
	assert.Nil(t, lock)

	exists, err := store.Exists(root)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Save(root, sampleLock()))

	exists, err = store.Exists(root)
	require.NoError(t, err)
	assert.True(t, exists)

	loaded, err := store.Load(root)
	require.NoError(t, err)
	assert.Equal(t, sampleLock().Entries["_deps/zlib"], loaded.Entries["_deps/zlib"])
}

func TestEncode_EmptySelf(t *testing.T) {
	data, err := lockfile.Encode(domain.NewLockfile())
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"\": {}\n}\n", string(data))
}
