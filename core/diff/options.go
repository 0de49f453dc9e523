package diff

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// Logger is the logging capability the comparators write diagnostics to.
// *zap.Logger satisfies it.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
}

// RecordPolicy decides what happens to malformed manifest records.
type RecordPolicy string

const (
	// RejectInvalid fails the whole comparison on the first malformed record.
	RejectInvalid RecordPolicy = "reject"
	// SkipInvalid drops malformed records and logs them at warn level.
	SkipInvalid RecordPolicy = "skip"
)

// Options configures a comparator. It is passed explicitly at construction time;
// comparators never read global configuration.
type Options struct {
	// CompareSize requires equal sizes for two files to be considered equal.
	CompareSize bool
	// CompareContent requires byte-identical content for two files to be considered equal.
	CompareContent bool
	// Exclude lists doublestar globs matched against entry identifiers without
	// their leading slash (e.g. "logs/**", "**/*.tmp"). Directory comparison only.
	Exclude []string
	// InvalidRecords is the policy applied to malformed manifest records.
	InvalidRecords RecordPolicy
	// Logger receives per-entry diagnostics. Nil disables logging.
	Logger Logger
}

// DefaultOptions returns the options used by the updater: both equality
// strategies enabled, nothing excluded, malformed records rejected.
func DefaultOptions() Options {
	return Options{
		CompareSize:    true,
		CompareContent: true,
		InvalidRecords: RejectInvalid,
	}
}

// Validate checks the option values.
func (o Options) Validate() error {
	if !o.CompareSize && !o.CompareContent {
		return fmt.Errorf("at least one of size or content comparison must be enabled")
	}
	switch o.InvalidRecords {
	case "", RejectInvalid, SkipInvalid:
	default:
		return fmt.Errorf("unknown invalid record policy %q", o.InvalidRecords)
	}
	for _, pattern := range o.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	return nil
}

func (o Options) logger() Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// excluded reports whether an identifier ("/config/a.cfg") matches an exclude glob.
func (o Options) excluded(identifier string) bool {
	name := strings.TrimPrefix(identifier, "/")
	for _, pattern := range o.Exclude {
		if doublestar.MatchUnvalidated(pattern, name) {
			return true
		}
	}
	return false
}
