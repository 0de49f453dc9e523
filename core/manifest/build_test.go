package manifest

import (
	"errors"
	"testing"

	"modpack-updater/core/diff"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helloSHA1 = "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d"

func TestBuild(t *testing.T) {
	fsys := memfs.New()
	for name, content := range map[string]string{
		"server.properties":     "hello",
		"mods/jei.jar":          "hello",
		"mods/extra/nested.jar": "hi",
		"logs/latest.log":       "noise",
		"config/jei.cfg":        "",
	} {
		require.NoError(t, util.WriteFile(fsys, name, []byte(content), 0o644))
	}

	t.Run("AllFiles", func(t *testing.T) {
		records, err := Build(fsys, BuildOptions{})
		require.NoError(t, err)

		ids := make([]string, 0, len(records))
		for _, r := range records {
			ids = append(ids, r.Identifier())
			assert.NoError(t, r.Validate())
		}
		assert.Equal(t, []string{
			"/server.properties",
			"/config/jei.cfg",
			"/logs/latest.log",
			"/mods/jei.jar",
			"/mods/extra/nested.jar",
		}, ids)

		assert.Equal(t, diff.FileRecord{Path: "/", Name: "server.properties", ContentHash: helloSHA1, Size: 5}, records[0])
		assert.Equal(t, diff.FileRecord{Path: "/mods/", Name: "jei.jar", ContentHash: helloSHA1, Size: 5}, records[3])
	})

	t.Run("Exclude", func(t *testing.T) {
		records, err := Build(fsys, BuildOptions{Exclude: []string{"logs", "**/*.cfg"}})
		require.NoError(t, err)
		for _, r := range records {
			assert.NotEqual(t, "/logs/", r.Path)
			assert.NotEqual(t, "jei.cfg", r.Name)
		}
		assert.Len(t, records, 3)
	})

	t.Run("InvalidPattern", func(t *testing.T) {
		_, err := Build(fsys, BuildOptions{Exclude: []string{"[a-"}})
		assert.Error(t, err)
	})
}

func TestBuild_FeedsComparator(t *testing.T) {
	live := memfs.New()
	target := memfs.New()
	require.NoError(t, util.WriteFile(live, "mods/a.jar", []byte("v1"), 0o644))
	require.NoError(t, util.WriteFile(live, "mods/b.jar", []byte("same"), 0o644))
	require.NoError(t, util.WriteFile(target, "mods/a.jar", []byte("v2"), 0o644))
	require.NoError(t, util.WriteFile(target, "mods/b.jar", []byte("same"), 0o644))

	left, err := Build(live, BuildOptions{})
	require.NoError(t, err)
	right, err := Build(target, BuildOptions{})
	require.NoError(t, err)

	cmp, err := diff.NewManifestComparator(diff.DefaultOptions())
	require.NoError(t, err)
	changes, err := cmp.FindChanges(left, right)
	require.NoError(t, err)
	assert.Equal(t, []string{"/mods/a.jar"}, changes.Deletions)
	assert.Equal(t, []string{"/mods/a.jar"}, changes.Additions)
}

func TestBuild_MissingRoot(t *testing.T) {
	fsys := memfs.New()
	chrooted, err := fsys.Chroot("/does-not-exist")
	require.NoError(t, err)

	_, err = Build(chrooted, BuildOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, diff.ErrFileSystem))
}
