package diff

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func rec(path, name, hash string, size int64) FileRecord {
	return FileRecord{Path: path, Name: name, ContentHash: hash, Size: size}
}

func newManifestComparator(t *testing.T) *ManifestComparator {
	t.Helper()
	c, err := NewManifestComparator(DefaultOptions())
	require.NoError(t, err)
	return c
}

// TestCompareManifest_Scenarios covers the reference scenarios of the updater.
func TestCompareManifest_Scenarios(t *testing.T) {
	c := newManifestComparator(t)
	a := rec("/mods/", "a.jar", "X", 10)

	t.Run("RecordOnlyOnLeft", func(t *testing.T) {
		d, err := c.Compare([]FileRecord{a}, nil)
		require.NoError(t, err)
		assert.Equal(t, []FileRecord{a}, d.LeftOnly)
		assert.Empty(t, d.RightOnly)
		assert.Empty(t, d.Different)
		assert.Empty(t, d.Matching)

		changes, err := c.FindChanges([]FileRecord{a}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"/mods/a.jar"}, changes.Deletions)
		assert.Empty(t, changes.Additions)
	})

	t.Run("HashMismatch", func(t *testing.T) {
		b := rec("/mods/", "a.jar", "Y", 10)
		d, err := c.Compare([]FileRecord{a}, []FileRecord{b})
		require.NoError(t, err)
		assert.Equal(t, []RecordPair{{Left: a, Right: b}}, d.Different)
		assert.Empty(t, d.Matching)

		changes, err := c.FindChanges([]FileRecord{a}, []FileRecord{b})
		require.NoError(t, err)
		assert.Equal(t, []string{"/mods/a.jar"}, changes.Deletions)
		assert.Equal(t, []string{"/mods/a.jar"}, changes.Additions)
	})

	t.Run("CustomFile", func(t *testing.T) {
		extra := rec("/config/", "extra.cfg", "C", 3)
		report, err := c.FindCustomChanges([]FileRecord{extra}, []FileRecord{})
		require.NoError(t, err)
		assert.Equal(t, []string{"/config/extra.cfg"}, report.CustomFiles)
		assert.Empty(t, report.MissingFiles)
		assert.Empty(t, report.EditedFiles)
	})

	t.Run("EditedUsesCustomIdentifier", func(t *testing.T) {
		custom := rec("/config/", "server.cfg", "CUSTOM", 12)
		original := rec("/config/", "server.cfg", "ORIGINAL", 12)
		d, err := c.Compare([]FileRecord{custom}, []FileRecord{original})
		require.NoError(t, err)
		report := CustomManifestChanges(d)
		assert.Equal(t, []string{custom.Identifier()}, report.EditedFiles)
		assert.Equal(t, custom, d.Different[0].Left)
		assert.Empty(t, report.CustomFiles)
		assert.Empty(t, report.MissingFiles)
	})
}

func TestCompareManifest_SelfCompare(t *testing.T) {
	c := newManifestComparator(t)
	l := []FileRecord{
		rec("/mods/", "a.jar", "A", 1),
		rec("/mods/", "b.jar", "B", 2),
		rec("/config/", "c.cfg", "C", 3),
	}

	d, err := c.Compare(l, l)
	require.NoError(t, err)
	assert.Equal(t, l, d.Matching)
	assert.Empty(t, d.LeftOnly)
	assert.Empty(t, d.RightOnly)
	assert.Empty(t, d.Different)
}

func TestCompareManifest_RemovedRecord(t *testing.T) {
	c := newManifestComparator(t)
	l := []FileRecord{
		rec("/mods/", "a.jar", "A", 1),
		rec("/mods/", "b.jar", "B", 2),
		rec("/mods/", "c.jar", "C", 3),
	}
	r := []FileRecord{l[0], l[2]}

	d, err := c.Compare(l, r)
	require.NoError(t, err)
	assert.Equal(t, []FileRecord{l[1]}, d.LeftOnly)
	assert.Equal(t, []FileRecord{l[0], l[2]}, d.Matching)
	assert.Empty(t, d.RightOnly)
	assert.Empty(t, d.Different)
}

// TestCompareManifest_JointEquality checks that hash and size must both match.
func TestCompareManifest_JointEquality(t *testing.T) {
	c := newManifestComparator(t)
	base := rec("/mods/", "a.jar", "X", 10)

	tests := []struct {
		name  string
		right FileRecord
	}{
		{"SameSizeDifferentHash", rec("/mods/", "a.jar", "Y", 10)},
		{"SameHashDifferentSize", rec("/mods/", "a.jar", "X", 11)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := c.Compare([]FileRecord{base}, []FileRecord{tt.right})
			require.NoError(t, err)
			assert.Empty(t, d.Matching)
			assert.Len(t, d.Different, 1)
		})
	}
}

// TestCompareManifest_Partition checks that every record lands in exactly one bucket.
func TestCompareManifest_Partition(t *testing.T) {
	c := newManifestComparator(t)

	var l, r []FileRecord
	for i := 0; i < 50; i++ {
		l = append(l, rec("/mods/", fmt.Sprintf("m%02d.jar", i), fmt.Sprintf("h%d", i), int64(i)))
	}
	for i := 25; i < 80; i++ {
		hash := fmt.Sprintf("h%d", i)
		if i%5 == 0 {
			hash = "changed"
		}
		r = append(r, rec("/mods/", fmt.Sprintf("m%02d.jar", i), hash, int64(i)))
	}

	d, err := c.Compare(l, r)
	require.NoError(t, err)

	assert.Len(t, d.LeftOnly, 25)
	assert.Len(t, d.RightOnly, 30)
	assert.Len(t, d.Different, 5)
	assert.Len(t, d.Matching, 20)
	assert.Equal(t, len(l), len(d.Matching)+len(d.LeftOnly)+len(d.Different))
	assert.Equal(t, len(r), len(d.Matching)+len(d.RightOnly)+len(d.Different))

	seen := make(map[string]int)
	for _, x := range d.Matching {
		seen[x.Identifier()]++
	}
	for _, x := range d.LeftOnly {
		seen[x.Identifier()]++
	}
	for _, p := range d.Different {
		seen[p.Left.Identifier()]++
	}
	for _, x := range l {
		assert.Equal(t, 1, seen[x.Identifier()], x.Identifier())
	}

	// Order follows the left manifest, right-only follows the right manifest.
	assert.Equal(t, "/mods/m00.jar", d.LeftOnly[0].Identifier())
	assert.Equal(t, "/mods/m50.jar", d.RightOnly[0].Identifier())
	assert.Equal(t, "/mods/m79.jar", d.RightOnly[len(d.RightOnly)-1].Identifier())

	changes := ManifestChanges(d)
	assert.Len(t, changes.Deletions, len(d.LeftOnly)+len(d.Different))
	assert.Len(t, changes.Additions, len(d.RightOnly)+len(d.Different))
	assert.Equal(t, d.Different[0].Left.Identifier(), changes.Deletions[len(d.LeftOnly)])
	assert.Equal(t, d.Different[0].Right.Identifier(), changes.Additions[len(d.RightOnly)])
}

func TestCompareManifest_DuplicateKeysOverwrite(t *testing.T) {
	c := newManifestComparator(t)
	l := []FileRecord{
		rec("/mods/", "a.jar", "OLD", 1),
		rec("/mods/", "b.jar", "B", 2),
		rec("/mods/", "a.jar", "NEW", 1),
	}
	r := []FileRecord{rec("/mods/", "a.jar", "NEW", 1)}

	d, err := c.Compare(l, r)
	require.NoError(t, err)
	assert.Equal(t, []FileRecord{rec("/mods/", "a.jar", "NEW", 1)}, d.Matching)
	assert.Equal(t, []FileRecord{rec("/mods/", "b.jar", "B", 2)}, d.LeftOnly)
}

func TestCompareManifest_InvalidRecords(t *testing.T) {
	good := rec("/mods/", "a.jar", "A", 1)
	bad := rec("/mods", "b.jar", "B", 2)

	t.Run("Reject", func(t *testing.T) {
		c := newManifestComparator(t)
		_, err := c.Compare([]FileRecord{good}, []FileRecord{good, bad})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidRecord)

		var derr *DataError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "right", derr.Manifest)
		assert.Equal(t, 1, derr.Index)
		assert.Equal(t, "path", derr.Field)
	})

	t.Run("Skip", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		opts := DefaultOptions()
		opts.InvalidRecords = SkipInvalid
		opts.Logger = zap.New(core)
		c, err := NewManifestComparator(opts)
		require.NoError(t, err)

		d, err := c.Compare([]FileRecord{bad, good}, []FileRecord{good})
		require.NoError(t, err)
		assert.Equal(t, []FileRecord{good}, d.Matching)
		assert.Empty(t, d.LeftOnly)
		assert.Equal(t, 1, logs.FilterMessage("Skipping invalid manifest record").Len())
	})
}

func TestManifestComparator_LogsDifferences(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	opts := DefaultOptions()
	opts.Logger = zap.New(core)
	c, err := NewManifestComparator(opts)
	require.NoError(t, err)

	_, err = c.FindChanges(
		[]FileRecord{rec("/mods/", "a.jar", "A", 1), rec("/mods/", "b.jar", "B", 1)},
		[]FileRecord{rec("/mods/", "b.jar", "B2", 1), rec("/mods/", "c.jar", "C", 1)},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("Difference - delete").Len())
	assert.Equal(t, 1, logs.FilterMessage("Difference - add").Len())
	assert.Equal(t, 1, logs.FilterMessage("Difference - replace").Len())
}

func TestNewManifestComparator_InvalidOptions(t *testing.T) {
	_, err := NewManifestComparator(Options{CompareSize: true, InvalidRecords: "ignore"})
	assert.Error(t, err)
}
