package diff

import (
	"github.com/elliotchance/orderedmap/v3"
	"go.uber.org/zap"
)

// RecordPair holds the two versions of a record whose content differs.
type RecordPair struct {
	Left  FileRecord `json:"left"`
	Right FileRecord `json:"right"`
}

// ManifestDiff is the raw reconciliation of two manifests.
type ManifestDiff struct {
	// Matching holds left records whose right counterpart has the same hash and size.
	Matching []FileRecord `json:"matching"`
	// LeftOnly holds left records without a right counterpart.
	LeftOnly []FileRecord `json:"left_only"`
	// RightOnly holds right records without a left counterpart.
	RightOnly []FileRecord `json:"right_only"`
	// Different holds records present on both sides with a different hash or size.
	Different []RecordPair `json:"different"`
}

// ManifestComparator reconciles two manifests. It holds no state between calls
// and is safe for concurrent use.
type ManifestComparator struct {
	opts Options
}

// NewManifestComparator creates a manifest comparator.
func NewManifestComparator(opts Options) (*ManifestComparator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &ManifestComparator{opts: opts}, nil
}

// Compare reconciles left against right in O(n+m).
// Output keeps left-manifest order, right-only records follow right-manifest order.
func (c *ManifestComparator) Compare(left, right []FileRecord) (*ManifestDiff, error) {
	left, err := c.sanitize("left", left)
	if err != nil {
		return nil, err
	}
	right, err = c.sanitize("right", right)
	if err != nil {
		return nil, err
	}

	leftIndex := index(left)
	rightIndex := index(right)

	result := &ManifestDiff{
		Matching:  make([]FileRecord, 0),
		LeftOnly:  make([]FileRecord, 0),
		RightOnly: make([]FileRecord, 0),
		Different: make([]RecordPair, 0),
	}

	for key, l := range leftIndex.AllFromFront() {
		r, ok := rightIndex.Get(key)
		if !ok {
			result.LeftOnly = append(result.LeftOnly, l)
			continue
		}
		if l.sameContent(r) {
			result.Matching = append(result.Matching, l)
		} else {
			result.Different = append(result.Different, RecordPair{Left: l, Right: r})
		}
		rightIndex.Delete(key)
	}

	for _, r := range rightIndex.AllFromFront() {
		result.RightOnly = append(result.RightOnly, r)
	}

	return result, nil
}

// FindChanges reconciles two manifests into a sync change list.
func (c *ManifestComparator) FindChanges(left, right []FileRecord) (*ChangeList, error) {
	d, err := c.Compare(left, right)
	if err != nil {
		return nil, err
	}
	log := c.opts.logger()
	for _, r := range d.LeftOnly {
		log.Debug("Difference - delete", zap.String("path", r.Path), zap.String("name", r.Name))
	}
	for _, r := range d.RightOnly {
		log.Debug("Difference - add", zap.String("path", r.Path), zap.String("name", r.Name))
	}
	for _, p := range d.Different {
		log.Debug("Difference - replace",
			zap.String("path", p.Left.Path),
			zap.String("name1", p.Left.Name),
			zap.String("name2", p.Right.Name))
	}
	changes := ManifestChanges(d)
	return &changes, nil
}

// FindCustomChanges reconciles a customised manifest against the original one.
func (c *ManifestComparator) FindCustomChanges(custom, original []FileRecord) (*CustomizationReport, error) {
	d, err := c.Compare(custom, original)
	if err != nil {
		return nil, err
	}
	report := CustomManifestChanges(d)
	c.opts.logger().Debug("Custom changes found",
		zap.Strings("custom_files", report.CustomFiles),
		zap.Strings("missing_files", report.MissingFiles),
		zap.Strings("edited_files", report.EditedFiles))
	return &report, nil
}

// sanitize applies the invalid record policy to one manifest.
func (c *ManifestComparator) sanitize(manifest string, records []FileRecord) ([]FileRecord, error) {
	var kept []FileRecord
	for i, r := range records {
		derr := r.check()
		if derr == nil {
			if kept != nil {
				kept = append(kept, r)
			}
			continue
		}
		derr.Manifest = manifest
		derr.Index = i
		if c.opts.InvalidRecords != SkipInvalid {
			return nil, derr
		}
		c.opts.logger().Warn("Skipping invalid manifest record", zap.Error(derr))
		if kept == nil {
			kept = make([]FileRecord, 0, len(records)-1)
			kept = append(kept, records[:i]...)
		}
	}
	if kept == nil {
		return records, nil
	}
	return kept, nil
}

func index(records []FileRecord) *orderedmap.OrderedMap[string, FileRecord] {
	m := orderedmap.NewOrderedMapWithCapacity[string, FileRecord](len(records))
	for _, r := range records {
		m.Set(r.Identifier(), r)
	}
	return m
}
