// Package diff is the change-detection engine of the modpack updater.
//
// It reconciles two file collections and classifies every difference so an
// update can be applied without destroying user changes. Two strategies share
// one classification contract:
//
//   - ManifestComparator reconciles two precomputed manifests (path, name,
//     content hash, size) with order-preserving hash indices in O(n+m).
//   - DirectoryComparator walks two live trees and compares same-named files by
//     size and by content. Both strategies must confirm equality.
//
// # Outputs
//
// A ChangeList (deletions, additions) drives the sync of a live copy towards a
// distribution; a content mismatch is always a delete followed by an add.
// A CustomizationReport (custom, missing, edited) computed as (custom, original)
// tells the update pipeline which user files to keep.
//
// Every input entry lands in exactly one bucket and equal entries never appear
// in an output list. Manifest-derived lists hold the one-sided records first and
// the mismatches after them, each group in manifest order. Directory-derived
// lists follow the walk: name order, depth first.
//
// # Identifiers
//
// Manifest identifiers are Path + Name with no separator added, so Path must
// end with "/" (enforced by FileRecord.Validate). Directory identifiers are
// RelativePath + "/" + Name, e.g. "/config/extra.cfg".
//
// # Errors
//
// Tree access failures are returned as *FileSystemError, malformed manifest
// records as *DataError. Nothing is retried.
//
// # Usage
//
//	cmp, _ := diff.NewManifestComparator(diff.DefaultOptions())
//	changes, err := cmp.FindChanges(installed, latest)
//
//	dirs, _ := diff.NewDirectoryComparator(diff.DefaultOptions())
//	report, err := dirs.FindCustomChanges("/srv/live", "/srv/pack")
package diff
