package diff

// ChangeList is the whole-file sync plan between two trees: every deletion is
// removed from the live copy and every addition copied from the distribution.
type ChangeList struct {
	Deletions []string `json:"deletions"`
	Additions []string `json:"additions"`
}

// Empty reports whether no change is required.
func (c ChangeList) Empty() bool {
	return len(c.Deletions) == 0 && len(c.Additions) == 0
}

// CustomizationReport labels the differences between a user's customised copy
// (left) and the original distribution (right).
type CustomizationReport struct {
	// CustomFiles were added by the user and must be preserved.
	CustomFiles []string `json:"custom_files"`
	// MissingFiles belong to the original but were removed by the user. Informational only.
	MissingFiles []string `json:"missing_files"`
	// EditedFiles exist in both with different content, identified by the custom copy.
	EditedFiles []string `json:"edited_files"`
}

// ManifestChanges converts a manifest diff into a change list. A content
// mismatch becomes a delete of the left record plus an add of the right record.
func ManifestChanges(d *ManifestDiff) ChangeList {
	changes := ChangeList{
		Deletions: make([]string, 0, len(d.LeftOnly)+len(d.Different)),
		Additions: make([]string, 0, len(d.RightOnly)+len(d.Different)),
	}
	for _, r := range d.LeftOnly {
		changes.Deletions = append(changes.Deletions, r.Identifier())
	}
	for _, r := range d.RightOnly {
		changes.Additions = append(changes.Additions, r.Identifier())
	}
	for _, p := range d.Different {
		changes.Deletions = append(changes.Deletions, p.Left.Identifier())
		changes.Additions = append(changes.Additions, p.Right.Identifier())
	}
	return changes
}

// CustomManifestChanges converts a manifest diff, computed as (custom, original),
// into a customization report.
func CustomManifestChanges(d *ManifestDiff) CustomizationReport {
	report := CustomizationReport{
		CustomFiles:  make([]string, 0, len(d.LeftOnly)),
		MissingFiles: make([]string, 0, len(d.RightOnly)),
		EditedFiles:  make([]string, 0, len(d.Different)),
	}
	for _, r := range d.LeftOnly {
		report.CustomFiles = append(report.CustomFiles, r.Identifier())
	}
	for _, r := range d.RightOnly {
		report.MissingFiles = append(report.MissingFiles, r.Identifier())
	}
	for _, p := range d.Different {
		report.EditedFiles = append(report.EditedFiles, p.Left.Identifier())
	}
	return report
}

// DirectoryChanges converts a raw directory diff set into a change list.
// Entry types are ignored: a file replaced by a directory is an ordinary replace.
func DirectoryChanges(entries []DiffEntry) ChangeList {
	changes := ChangeList{Deletions: make([]string, 0), Additions: make([]string, 0)}
	for _, e := range entries {
		switch e.State {
		case StateEqual:
		case StateLeft:
			changes.Deletions = append(changes.Deletions, e.LeftIdentifier())
		case StateRight:
			changes.Additions = append(changes.Additions, e.RightIdentifier())
		default:
			changes.Deletions = append(changes.Deletions, e.LeftIdentifier())
			changes.Additions = append(changes.Additions, e.RightIdentifier())
		}
	}
	return changes
}

// DirectoryCustomChanges converts a raw directory diff set, computed as
// (custom, original), into a customization report.
func DirectoryCustomChanges(entries []DiffEntry) CustomizationReport {
	report := CustomizationReport{
		CustomFiles:  make([]string, 0),
		MissingFiles: make([]string, 0),
		EditedFiles:  make([]string, 0),
	}
	for _, e := range entries {
		switch e.State {
		case StateEqual:
		case StateLeft:
			report.CustomFiles = append(report.CustomFiles, e.LeftIdentifier())
		case StateRight:
			report.MissingFiles = append(report.MissingFiles, e.RightIdentifier())
		default:
			report.EditedFiles = append(report.EditedFiles, e.LeftIdentifier())
		}
	}
	return report
}
