// pkg/wheel/wheel.go - locating and describing wheel archives.

package wheel

import (
	"archive/zip"
	"bufio"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/macrodata/wheelhouse/pkg/logging"
)

// ErrNoArchive is the fatal condition for a run: nothing matched the
// archive pattern, so there is nothing to install.
var ErrNoArchive = errors.New("no wheel archive found")

// Wheel describes a located archive. Fields beyond Path come from the
// filename convention name-version(-build)-pytag-abitag-platform.whl and
// may be empty when the filename does not follow it.
type Wheel struct {
	Path     string
	Name     string
	Version  string
	Build    string
	PyTag    string
	ABITag   string
	Platform string
}

// Find locates the archive to install. The configured pattern is tried
// first, then a bare *.whl fallback so any wheel dropped next to the
// installer is still found. Zero matches returns ErrNoArchive. With
// several matches the highest filename version wins and the others are
// named in a warning.
func Find(dir, pattern string) (*Wheel, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("bad archive pattern %q: %w", pattern, err)
	}

	if len(matches) == 0 && pattern != "*.whl" {
		matches, _ = filepath.Glob(filepath.Join(dir, "*.whl"))
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w in %s (pattern %q)", ErrNoArchive, dir, pattern)
	}

	selected := matches[0]
	if len(matches) > 1 {
		selected = selectNewest(matches)
		others := make([]string, 0, len(matches)-1)
		for _, m := range matches {
			if m != selected {
				others = append(others, filepath.Base(m))
			}
		}
		logging.Warn("Multiple wheel archives found; using the newest",
			"selected", filepath.Base(selected),
			"ignored", strings.Join(others, ", "))
	}

	w, err := ParseFilename(selected)
	if err != nil {
		logging.Warn("Unrecognized wheel filename; installing by path only",
			"file", filepath.Base(selected), "error", err)
		return &Wheel{Path: selected}, nil
	}
	return w, nil
}

// selectNewest picks the candidate with the highest filename version.
// Unparseable names sort last; ties fall back to lexicographic order so
// the choice is deterministic.
func selectNewest(matches []string) string {
	best := matches[0]
	bestVer := filenameVersion(best)

	for _, m := range matches[1:] {
		mVer := filenameVersion(m)
		switch {
		case mVer == nil:
			continue
		case bestVer == nil:
			best, bestVer = m, mVer
		case bestVer.LessThan(mVer):
			best, bestVer = m, mVer
		case bestVer.Equal(mVer) && m > best:
			best = m
		}
	}
	return best
}

func filenameVersion(path string) *goversion.Version {
	w, err := ParseFilename(path)
	if err != nil {
		return nil
	}
	v, err := goversion.NewVersion(w.Version)
	if err != nil {
		return nil
	}
	return v
}

// ParseFilename splits a wheel filename into its tagged components.
// Parsing is anchored on the right since the three trailing tags are
// mandatory, which tolerates distribution names containing dashes.
func ParseFilename(path string) (*Wheel, error) {
	base := filepath.Base(path)
	if !strings.EqualFold(filepath.Ext(base), ".whl") {
		return nil, fmt.Errorf("not a wheel archive: %s", base)
	}

	stem := base[:len(base)-len(".whl")]
	parts := strings.Split(stem, "-")
	if len(parts) < 5 {
		return nil, fmt.Errorf("wheel filename has %d segments, need at least 5: %s", len(parts), base)
	}

	w := &Wheel{
		Path:     path,
		Platform: parts[len(parts)-1],
		ABITag:   parts[len(parts)-2],
		PyTag:    parts[len(parts)-3],
	}

	head := parts[:len(parts)-3]
	// Optional build tag sits between version and pytag and starts
	// with a digit.
	if len(head) >= 3 && startsWithDigit(head[len(head)-1]) && startsWithDigit(head[len(head)-2]) {
		w.Build = head[len(head)-1]
		head = head[:len(head)-1]
	}

	w.Version = head[len(head)-1]
	w.Name = strings.Join(head[:len(head)-1], "-")
	if w.Name == "" || !startsWithDigit(w.Version) {
		return nil, fmt.Errorf("wheel filename missing name or version: %s", base)
	}
	return w, nil
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// Metadata is the subset of the archive's dist-info METADATA headers the
// installer reports.
type Metadata struct {
	Name    string
	Version string
	Summary string
}

// ReadMetadata opens the archive and reads the headers out of
// *.dist-info/METADATA. Wheels are plain zip containers.
func ReadMetadata(path string) (*Metadata, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if !isDistInfoMetadata(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open METADATA: %w", err)
		}
		defer rc.Close()

		meta := &Metadata{}
		scanner := bufio.NewScanner(rc)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				// Headers end at the first blank line; the long
				// description body follows.
				break
			}
			key, value, found := strings.Cut(line, ":")
			if !found {
				continue
			}
			value = strings.TrimSpace(value)
			switch key {
			case "Name":
				meta.Name = value
			case "Version":
				meta.Version = value
			case "Summary":
				meta.Summary = value
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read METADATA: %w", err)
		}
		return meta, nil
	}
	return nil, fmt.Errorf("METADATA not found in %s", filepath.Base(path))
}

func isDistInfoMetadata(name string) bool {
	parts := strings.Split(name, "/")
	return len(parts) == 2 && strings.HasSuffix(parts[0], ".dist-info") && parts[1] == "METADATA"
}
