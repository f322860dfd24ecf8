// Package loader reads the static exam timetable files: one JSON file per
// session, plus an index listing the available sessions.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/balkashynov/examtt/internal/models"
)

// SessionFile is the shape of exams_<session>.json
type SessionFile struct {
	Session   string              `json:"session"`
	ExamTimes []models.ExamTiming `json:"examTimes"`
}

// IndexFile lists the sessions that can be imported
type IndexFile struct {
	ExamTerms []IndexEntry `json:"examTerms"`
}

// IndexEntry points at one session file
type IndexEntry struct {
	Session string `json:"session"`
	Path    string `json:"path"`
	Name    string `json:"name"`
}

// Loader decodes timetable files through a Fetcher
type Loader struct {
	Fetcher Fetcher
}

// New creates a Loader
func New(fetcher Fetcher) *Loader {
	return &Loader{Fetcher: fetcher}
}

// LoadSession reads one session file
func (l *Loader) LoadSession(ctx context.Context, location string) (*SessionFile, error) {
	var file SessionFile
	if err := l.decode(ctx, location, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// LoadIndex reads a session index. Entry paths are resolved against the
// index location, so relative paths work for both files and URLs.
func (l *Loader) LoadIndex(ctx context.Context, location string) (*IndexFile, error) {
	var index IndexFile
	if err := l.decode(ctx, location, &index); err != nil {
		return nil, err
	}

	for i, entry := range index.ExamTerms {
		resolved, err := ResolvePath(location, entry.Path)
		if err != nil {
			return nil, fmt.Errorf("session %s: %w", entry.Session, err)
		}
		index.ExamTerms[i].Path = resolved
	}
	return &index, nil
}

func (l *Loader) decode(ctx context.Context, location string, v any) error {
	rc, err := l.Fetcher.Open(ctx, location)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	if err := json.NewDecoder(rc).Decode(v); err != nil {
		if err == io.EOF {
			return fmt.Errorf("%s is empty", location)
		}
		return fmt.Errorf("failed to decode %s: %w", location, err)
	}
	return nil
}

// ResolvePath resolves ref relative to base, which may be a file path or URL
func ResolvePath(base, ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("empty path")
	}
	if IsRemote(ref) {
		return ref, nil
	}

	if IsRemote(base) {
		baseURL, err := url.Parse(base)
		if err != nil {
			return "", err
		}
		refURL, err := url.Parse(ref)
		if err != nil {
			return "", err
		}
		return baseURL.ResolveReference(refURL).String(), nil
	}

	// Local indexes use the same web-style paths as hosted ones
	// ("/exams_20231.json"), so they always resolve inside the index directory
	ref = strings.TrimPrefix(path.Clean("/"+ref), "/")
	return filepath.Join(filepath.Dir(base), filepath.FromSlash(ref)), nil
}
