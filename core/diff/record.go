package diff

import "strings"

// FileRecord describes one file of a manifest without touching its bytes.
type FileRecord struct {
	// Path is the directory of the file. It must end with "/" (e.g. "/mods/").
	Path string `json:"path"`
	// Name is the base name of the file (e.g. "jei.jar").
	Name string `json:"name"`
	// ContentHash is the hex digest of the file content.
	ContentHash string `json:"sha1"`
	// Size is the file size in bytes.
	Size int64 `json:"size"`
}

// Identifier returns the fully-qualified path of the record (Path + Name).
// It is also the reconciliation key used to match records across manifests.
func (r FileRecord) Identifier() string {
	return r.Path + r.Name
}

// Validate checks that the record carries every required field and that its
// identifier cannot collide with a different (path, name) split.
func (r FileRecord) Validate() error {
	if derr := r.check(); derr != nil {
		return derr
	}
	return nil
}

func (r FileRecord) check() *DataError {
	switch {
	case r.Path == "":
		return &DataError{Field: "path", Reason: "is empty"}
	case !strings.HasSuffix(r.Path, "/"):
		return &DataError{Field: "path", Reason: "must end with \"/\""}
	case r.Name == "":
		return &DataError{Field: "name", Reason: "is empty"}
	case strings.Contains(r.Name, "/"):
		return &DataError{Field: "name", Reason: "must not contain \"/\""}
	case r.ContentHash == "":
		return &DataError{Field: "sha1", Reason: "is empty"}
	case r.Size < 0:
		return &DataError{Field: "size", Reason: "is negative"}
	}
	return nil
}

// sameContent reports whether both content hash and size match.
func (r FileRecord) sameContent(other FileRecord) bool {
	return r.ContentHash == other.ContentHash && r.Size == other.Size
}
