// Package datasource provides document storage for lacework. It discovers,
// validates, and selects outline sources: plain tab-indented text files and
// a SQLite document library. Only the serialized text form crosses the
// boundary to the editor core; this package never sees tree values.
package datasource

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// SourceType identifies the type of document source
type SourceType string

const (
	// SourceTypeFile is a plain tab-indented text file
	SourceTypeFile SourceType = "file"
	// SourceTypeSQLite is a document library database (outlines.db)
	SourceTypeSQLite SourceType = "sqlite"
)

// Priority values for source types (higher = more authoritative)
const (
	PrioritySQLite = 100
	PriorityFile   = 50
)

// DataSource represents a potential source of outline text
type DataSource struct {
	// Type identifies the source type
	Type SourceType `json:"type"`
	// Path is the absolute path to the source file
	Path string `json:"path"`
	// Document names the entry inside a library source; empty for files
	Document string `json:"document,omitempty"`
	// Priority determines preference when timestamps are equal (higher = preferred)
	Priority int `json:"priority"`
	// ModTime is the last modification time of the source
	ModTime time.Time `json:"mod_time"`
	// Valid indicates whether the source passed validation
	Valid bool `json:"valid"`
	// ValidationError describes why validation failed (if Valid is false)
	ValidationError string `json:"validation_error,omitempty"`
	// LineCount is the number of non-blank lines (set during validation)
	LineCount int `json:"line_count"`
	// Size is the file size in bytes
	Size int64 `json:"size"`
}

// String returns a human-readable description of the source
func (s DataSource) String() string {
	status := "valid"
	if !s.Valid {
		status = fmt.Sprintf("invalid: %s", s.ValidationError)
	}
	return fmt.Sprintf("%s (%s, priority=%d, mod=%s, lines=%d, %s)",
		s.Path, s.Type, s.Priority, s.ModTime.Format(time.RFC3339), s.LineCount, status)
}

// DiscoveryOptions configures source discovery behavior
type DiscoveryOptions struct {
	// Dir is the directory to scan; uses cwd if empty
	Dir string
	// Validate runs validation on each discovered source
	Validate bool
	// IncludeInvalid includes sources that failed validation in results
	IncludeInvalid bool
	// Logger receives log messages; nil discards them
	Logger func(msg string)
}

// outlineExtensions are file extensions recognized as outline documents.
var outlineExtensions = map[string]bool{
	".outline": true,
	".txt":     true,
}

// libraryFileName is the filename of the SQLite document library.
const libraryFileName = "outlines.db"

// DiscoverSources finds all potential outline sources in a directory:
// every recognized text file plus the document library, if present.
func DiscoverSources(opts DiscoveryOptions) ([]DataSource, error) {
	if opts.Logger == nil {
		opts.Logger = func(string) {}
	}

	dir := opts.Dir
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var sources []DataSource
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			continue
		}

		switch {
		case entry.Name() == libraryFileName:
			sources = append(sources, DataSource{
				Type:     SourceTypeSQLite,
				Path:     path,
				Priority: PrioritySQLite,
				ModTime:  info.ModTime(),
				Size:     info.Size(),
			})
		case outlineExtensions[strings.ToLower(filepath.Ext(entry.Name()))]:
			sources = append(sources, DataSource{
				Type:     SourceTypeFile,
				Path:     path,
				Priority: PriorityFile,
				ModTime:  info.ModTime(),
				Size:     info.Size(),
			})
		}
	}

	opts.Logger(fmt.Sprintf("discovered %d sources in %s", len(sources), dir))

	if opts.Validate {
		sources = validateSources(sources, opts)
	}

	sortSources(sources)
	return sources, nil
}

// validateSources checks every discovered source concurrently. Validation
// is I/O bound (open, read, count), so the sources are fanned out on an
// errgroup and the per-source result lands back in the slice by index.
func validateSources(sources []DataSource, opts DiscoveryOptions) []DataSource {
	var g errgroup.Group
	g.SetLimit(4)

	for i := range sources {
		g.Go(func() error {
			sources[i] = validateSource(sources[i])
			if !sources[i].Valid {
				opts.Logger(fmt.Sprintf("invalid source %s: %s", sources[i].Path, sources[i].ValidationError))
			}
			return nil
		})
	}
	// Validators record failures on the source instead of returning errors.
	_ = g.Wait()

	if opts.IncludeInvalid {
		return sources
	}
	valid := sources[:0]
	for _, s := range sources {
		if s.Valid {
			valid = append(valid, s)
		}
	}
	return valid
}

// validateSource checks that a single source is readable and counts its
// content lines.
func validateSource(s DataSource) DataSource {
	switch s.Type {
	case SourceTypeFile:
		text, err := os.ReadFile(s.Path)
		if err != nil {
			s.Valid = false
			s.ValidationError = err.Error()
			return s
		}
		s.Valid = true
		s.LineCount = countContentLines(string(text))
		return s

	case SourceTypeSQLite:
		store, err := OpenSQLiteStore(s.Path)
		if err != nil {
			s.Valid = false
			s.ValidationError = err.Error()
			return s
		}
		defer store.Close()
		names, err := store.List()
		if err != nil {
			s.Valid = false
			s.ValidationError = err.Error()
			return s
		}
		s.Valid = true
		s.LineCount = len(names)
		return s

	default:
		s.Valid = false
		s.ValidationError = fmt.Sprintf("unknown source type %q", s.Type)
		return s
	}
}

// sortSources orders by modification time (newest first), breaking ties
// by priority so the library wins over a file saved in the same instant.
func sortSources(sources []DataSource) {
	sort.SliceStable(sources, func(i, j int) bool {
		if !sources[i].ModTime.Equal(sources[j].ModTime) {
			return sources[i].ModTime.After(sources[j].ModTime)
		}
		return sources[i].Priority > sources[j].Priority
	})
}

// countContentLines counts lines that are non-blank after trimming,
// matching what the parser will retain.
func countContentLines(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}
