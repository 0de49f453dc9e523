package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"modpack-updater/core/diff"

	"go.uber.org/zap"
)

// record mirrors diff.FileRecord with pointers so absent fields can be told
// apart from zero values.
type record struct {
	Path *string `json:"path"`
	Name *string `json:"name"`
	SHA1 *string `json:"sha1"`
	Size *int64  `json:"size"`
}

func (r record) toFileRecord() (diff.FileRecord, string) {
	switch {
	case r.Path == nil:
		return diff.FileRecord{}, "path"
	case r.Name == nil:
		return diff.FileRecord{}, "name"
	case r.SHA1 == nil:
		return diff.FileRecord{}, "sha1"
	case r.Size == nil:
		return diff.FileRecord{}, "size"
	}
	return diff.FileRecord{Path: *r.Path, Name: *r.Name, ContentHash: *r.SHA1, Size: *r.Size}, ""
}

// Decoder reads manifests and validates every record at ingestion.
type Decoder struct {
	// Policy decides whether a malformed record rejects the manifest or is skipped.
	Policy diff.RecordPolicy
	// Logger receives skipped records. Nil disables logging.
	Logger *zap.Logger
}

// Decode reads a JSON array of records with the reject policy.
func Decode(r io.Reader, name string) ([]diff.FileRecord, error) {
	return Decoder{Policy: diff.RejectInvalid}.Decode(r, name)
}

// Decode reads a JSON array of records. name identifies the manifest in errors.
func (d Decoder) Decode(r io.Reader, name string) ([]diff.FileRecord, error) {
	var raw []record
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", name, err)
	}

	records := make([]diff.FileRecord, 0, len(raw))
	for i, rr := range raw {
		rec, missing := rr.toFileRecord()
		var err error
		if missing != "" {
			err = &diff.DataError{Manifest: name, Index: i, Field: missing, Reason: "is missing"}
		} else if err = rec.Validate(); err != nil {
			var derr *diff.DataError
			if errors.As(err, &derr) {
				derr.Manifest, derr.Index = name, i
			}
		}

		if err == nil {
			records = append(records, rec)
			continue
		}
		if d.Policy != diff.SkipInvalid {
			return nil, err
		}
		if d.Logger != nil {
			d.Logger.Warn("Skipping invalid manifest record", zap.Error(err))
		}
	}
	return records, nil
}

// Encode writes records as an indented JSON array.
func Encode(w io.Writer, records []diff.FileRecord) error {
	if records == nil {
		records = []diff.FileRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	return nil
}
