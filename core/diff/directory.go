package diff

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// State is the outcome of comparing one entry of two trees.
type State string

const (
	// StateLeft marks an entry present only in the first tree.
	StateLeft State = "left"
	// StateRight marks an entry present only in the second tree.
	StateRight State = "right"
	// StateEqual marks an entry confirmed equal by every enabled strategy.
	StateEqual State = "equal"
	// StateDistinct marks an entry present in both trees that did not compare equal.
	StateDistinct State = "distinct"
)

// EntryType is the kind of filesystem entry on one side of a DiffEntry.
type EntryType string

const (
	// TypeMissing marks the side on which the entry does not exist.
	TypeMissing   EntryType = "missing"
	TypeFile      EntryType = "file"
	TypeDirectory EntryType = "directory"
)

// chunkSize is the read buffer used per side when comparing file content.
const chunkSize = 64 * 1024

// DiffEntry is one record of the raw directory diff set.
type DiffEntry struct {
	// RelativePath is the parent directory relative to the roots: "" at the root, "/sub/dir" below it.
	RelativePath string    `json:"relative_path"`
	Name1        string    `json:"name1,omitempty"`
	Name2        string    `json:"name2,omitempty"`
	Type1        EntryType `json:"type1"`
	Type2        EntryType `json:"type2"`
	State        State     `json:"state"`
}

// LeftIdentifier returns the identifier of the entry in the first tree.
func (e DiffEntry) LeftIdentifier() string {
	return e.RelativePath + "/" + e.Name1
}

// RightIdentifier returns the identifier of the entry in the second tree.
func (e DiffEntry) RightIdentifier() string {
	return e.RelativePath + "/" + e.Name2
}

// Statistics summarises a directory diff set.
type Statistics struct {
	Same        bool `json:"same"`
	Equal       int  `json:"equal"`
	Distinct    int  `json:"distinct"`
	Left        int  `json:"left"`
	Right       int  `json:"right"`
	Differences int  `json:"differences"`
}

// DirectoryResult is the raw outcome of a directory comparison.
type DirectoryResult struct {
	Entries    []DiffEntry `json:"entries"`
	Statistics Statistics  `json:"statistics"`
}

// DirectoryComparator compares two file trees by size and content.
// A comparison blocks until both trees are fully walked; there are no partial results.
// Independent comparisons may run concurrently.
type DirectoryComparator struct {
	opts Options
}

// NewDirectoryComparator creates a directory comparator.
func NewDirectoryComparator(opts Options) (*DirectoryComparator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &DirectoryComparator{opts: opts}, nil
}

// Compare returns the change list turning dirA into dirB.
func (c *DirectoryComparator) Compare(dirA, dirB string) (*ChangeList, error) {
	a, b, err := openRoots(dirA, dirB)
	if err != nil {
		return nil, err
	}
	return c.CompareFS(a, b)
}

// CompareFS is Compare over two billy filesystems.
func (c *DirectoryComparator) CompareFS(a, b billy.Filesystem) (*ChangeList, error) {
	res, err := c.DiffFS(a, b)
	if err != nil {
		return nil, err
	}
	log := c.opts.logger()
	for _, e := range res.Entries {
		switch e.State {
		case StateEqual:
		case StateLeft:
			log.Debug("Difference - delete", entryFields(e)...)
		case StateRight:
			log.Debug("Difference - add", entryFields(e)...)
		default:
			log.Debug("Difference - replace", entryFields(e)...)
		}
	}
	changes := DirectoryChanges(res.Entries)
	return &changes, nil
}

// FindCustomChanges reports how customDir diverges from originalDir.
func (c *DirectoryComparator) FindCustomChanges(customDir, originalDir string) (*CustomizationReport, error) {
	a, b, err := openRoots(customDir, originalDir)
	if err != nil {
		return nil, err
	}
	return c.FindCustomChangesFS(a, b)
}

// FindCustomChangesFS is FindCustomChanges over two billy filesystems.
func (c *DirectoryComparator) FindCustomChangesFS(custom, original billy.Filesystem) (*CustomizationReport, error) {
	res, err := c.DiffFS(custom, original)
	if err != nil {
		return nil, err
	}
	log := c.opts.logger()
	for _, e := range res.Entries {
		switch e.State {
		case StateEqual:
		case StateLeft:
			log.Debug("Custom file", entryFields(e)...)
		case StateRight:
			log.Debug("Missing file", entryFields(e)...)
		default:
			log.Debug("Custom file - edited", entryFields(e)...)
		}
	}
	report := DirectoryCustomChanges(res.Entries)
	return &report, nil
}

// Diff returns the raw diff set between dirA and dirB.
func (c *DirectoryComparator) Diff(dirA, dirB string) (*DirectoryResult, error) {
	a, b, err := openRoots(dirA, dirB)
	if err != nil {
		return nil, err
	}
	return c.DiffFS(a, b)
}

// DiffFS returns the raw diff set between two billy filesystems.
// Both trees are listed concurrently, then merged in name order, depth first.
func (c *DirectoryComparator) DiffFS(a, b billy.Filesystem) (*DirectoryResult, error) {
	var left, right *tree
	var g errgroup.Group
	g.Go(func() (err error) {
		left, err = c.snapshot(a)
		return err
	})
	g.Go(func() (err error) {
		right, err = c.snapshot(b)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &DirectoryResult{Entries: make([]DiffEntry, 0)}
	if err := c.compareDir("", left, right, res); err != nil {
		return nil, err
	}
	res.Statistics.Differences = res.Statistics.Distinct + res.Statistics.Left + res.Statistics.Right
	res.Statistics.Same = res.Statistics.Differences == 0

	s := res.Statistics
	verdict := "different"
	if s.Same {
		verdict = "identical"
	}
	c.opts.logger().Debug("Directories are " + verdict)
	c.opts.logger().Debug("Statistics",
		zap.Int("equal", s.Equal),
		zap.Int("distinct", s.Distinct),
		zap.Int("left", s.Left),
		zap.Int("right", s.Right),
		zap.Int("differences", s.Differences))

	return res, nil
}

func (c *DirectoryComparator) compareDir(rel string, left, right *tree, res *DirectoryResult) error {
	l, r := left.dirs[rel], right.dirs[rel]
	names := make(map[string]struct{}, len(l)+len(r))
	for name := range l {
		names[name] = struct{}{}
	}
	for name := range r {
		names[name] = struct{}{}
	}

	for _, name := range slices.Sorted(maps.Keys(names)) {
		li, lok := l[name]
		ri, rok := r[name]
		child := rel + "/" + name
		entry := DiffEntry{RelativePath: rel, Type1: TypeMissing, Type2: TypeMissing}
		if lok {
			entry.Name1, entry.Type1 = name, typeOf(li)
		}
		if rok {
			entry.Name2, entry.Type2 = name, typeOf(ri)
		}

		switch {
		case !rok:
			c.oneSided(entry, child, StateLeft, left, res)
		case !lok:
			c.oneSided(entry, child, StateRight, right, res)
		case entry.Type1 == TypeDirectory && entry.Type2 == TypeDirectory:
			c.add(res, entry, StateEqual)
			if err := c.compareDir(child, left, right, res); err != nil {
				return err
			}
		case entry.Type1 == TypeFile && entry.Type2 == TypeFile:
			same, err := c.sameFile(child, li, ri, left, right)
			if err != nil {
				return err
			}
			if same {
				c.add(res, entry, StateEqual)
			} else {
				c.add(res, entry, StateDistinct)
			}
		default:
			// File on one side, directory on the other: a plain replace. The
			// directory's content only exists on its own side.
			c.add(res, entry, StateDistinct)
			if entry.Type1 == TypeDirectory {
				c.walkOneSide(child, StateLeft, left, res)
			} else {
				c.walkOneSide(child, StateRight, right, res)
			}
		}
	}
	return nil
}

func (c *DirectoryComparator) oneSided(entry DiffEntry, child string, state State, side *tree, res *DirectoryResult) {
	c.add(res, entry, state)
	if entry.Type1 == TypeDirectory || entry.Type2 == TypeDirectory {
		c.walkOneSide(child, state, side, res)
	}
}

// walkOneSide reports every entry below rel as present only on one side.
func (c *DirectoryComparator) walkOneSide(rel string, state State, side *tree, res *DirectoryResult) {
	entries := side.dirs[rel]
	for _, name := range slices.Sorted(maps.Keys(entries)) {
		entry := DiffEntry{RelativePath: rel, Type1: TypeMissing, Type2: TypeMissing}
		if state == StateLeft {
			entry.Name1, entry.Type1 = name, typeOf(entries[name])
		} else {
			entry.Name2, entry.Type2 = name, typeOf(entries[name])
		}
		c.oneSided(entry, rel+"/"+name, state, side, res)
	}
}

func (c *DirectoryComparator) add(res *DirectoryResult, entry DiffEntry, state State) {
	entry.State = state
	res.Entries = append(res.Entries, entry)
	switch state {
	case StateEqual:
		res.Statistics.Equal++
	case StateLeft:
		res.Statistics.Left++
	case StateRight:
		res.Statistics.Right++
	default:
		res.Statistics.Distinct++
	}
}

// sameFile applies every enabled strategy; all of them must confirm equality.
func (c *DirectoryComparator) sameFile(p string, li, ri os.FileInfo, left, right *tree) (bool, error) {
	if c.opts.CompareSize && li.Size() != ri.Size() {
		return false, nil
	}
	if !c.opts.CompareContent {
		return true, nil
	}

	fa, err := left.fs.Open(p)
	if err != nil {
		return false, &FileSystemError{Op: "open", Path: left.location(p), Err: err}
	}
	defer fa.Close()
	fb, err := right.fs.Open(p)
	if err != nil {
		return false, &FileSystemError{Op: "open", Path: right.location(p), Err: err}
	}
	defer fb.Close()

	return equalContent(
		locatedReader{r: fa, path: left.location(p)},
		locatedReader{r: fb, path: right.location(p)},
	)
}

// locatedReader reports read failures against the tree they came from.
type locatedReader struct {
	r    io.Reader
	path string
}

func (l locatedReader) Read(b []byte) (int, error) {
	n, err := l.r.Read(b)
	if err != nil && !errors.Is(err, io.EOF) {
		err = &FileSystemError{Op: "read", Path: l.path, Err: err}
	}
	return n, err
}

func equalContent(a, b io.Reader) (bool, error) {
	bufA := make([]byte, chunkSize)
	bufB := make([]byte, chunkSize)
	for {
		na, errA := io.ReadFull(a, bufA)
		if errA != nil && !errors.Is(errA, io.EOF) && !errors.Is(errA, io.ErrUnexpectedEOF) {
			return false, errA
		}
		nb, errB := io.ReadFull(b, bufB)
		if errB != nil && !errors.Is(errB, io.EOF) && !errors.Is(errB, io.ErrUnexpectedEOF) {
			return false, errB
		}
		if !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}
		// Equal chunks shorter than the buffer mean both readers are exhausted.
		if errA != nil || errB != nil {
			return true, nil
		}
	}
}

// tree is a listing snapshot of one side, keyed by relative directory.
type tree struct {
	fs   billy.Filesystem
	dirs map[string]map[string]os.FileInfo
}

func (t *tree) location(rel string) string {
	return t.fs.Join(t.fs.Root(), rel)
}

func (c *DirectoryComparator) snapshot(fsys billy.Filesystem) (*tree, error) {
	t := &tree{fs: fsys, dirs: make(map[string]map[string]os.FileInfo)}
	if err := c.list(t, ""); err != nil {
		return nil, err
	}
	return t, nil
}

func (c *DirectoryComparator) list(t *tree, rel string) error {
	dir := rel
	if dir == "" {
		dir = "/"
	}
	infos, err := t.fs.ReadDir(dir)
	if err != nil {
		return &FileSystemError{Op: "readdir", Path: t.location(dir), Err: err}
	}
	entries := make(map[string]os.FileInfo, len(infos))
	for _, info := range infos {
		child := rel + "/" + info.Name()
		if c.opts.excluded(child) {
			continue
		}
		entries[info.Name()] = info
		if info.IsDir() {
			if err := c.list(t, child); err != nil {
				return err
			}
		}
	}
	t.dirs[rel] = entries
	return nil
}

func typeOf(info os.FileInfo) EntryType {
	if info.IsDir() {
		return TypeDirectory
	}
	return TypeFile
}

func openRoots(dirA, dirB string) (billy.Filesystem, billy.Filesystem, error) {
	a, err := openRoot(dirA)
	if err != nil {
		return nil, nil, err
	}
	b, err := openRoot(dirB)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func openRoot(dir string) (billy.Filesystem, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &FileSystemError{Op: "stat", Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &FileSystemError{Op: "stat", Path: dir, Err: fmt.Errorf("not a directory")}
	}
	return osfs.New(dir), nil
}

func entryFields(e DiffEntry) []zap.Field {
	return []zap.Field{
		zap.String("relative_path", e.RelativePath),
		zap.String("name1", e.Name1),
		zap.String("type1", string(e.Type1)),
		zap.String("name2", e.Name2),
		zap.String("type2", string(e.Type2)),
		zap.String("state", string(e.State)),
	}
}
