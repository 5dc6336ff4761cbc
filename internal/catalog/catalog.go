// Package catalog loads the kaomoji list the picker filters over. A catalog is
// read once at startup and never changes afterwards.
package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultFileName is the catalog file looked up next to the executable.
const DefaultFileName = "emotes.txt"

const maxLineBytes = 1 << 20

// ErrNotFound reports that no catalog file exists at any probed path.
var ErrNotFound = errors.New("catalog not found")

// LoadError carries the paths that were probed before giving up.
type LoadError struct {
	Paths []string
	Err   error
}

func (e *LoadError) Error() string {
	if len(e.Paths) == 0 {
		return fmt.Sprintf("failed to find %s: %v", DefaultFileName, e.Err)
	}
	return fmt.Sprintf("failed to find %s (looked in %s): %v", DefaultFileName, strings.Join(e.Paths, ", "), e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Entry is one catalog line. The optional label is the text before the first
// colon; the payload is everything after it, or the whole line.
type Entry struct {
	line string
}

// NewEntry wraps a raw catalog line.
func NewEntry(line string) Entry {
	return Entry{line: line}
}

// Line returns the raw text the filter matches against.
func (e Entry) Line() string {
	return e.line
}

// Label returns the text before the first colon, if any.
func (e Entry) Label() (string, bool) {
	label, _, found := strings.Cut(e.line, ":")
	if !found {
		return "", false
	}
	return label, true
}

// Payload returns the text copied to the clipboard when the entry is committed.
func (e Entry) Payload() string {
	if _, payload, found := strings.Cut(e.line, ":"); found {
		return payload
	}
	return e.line
}

func (e Entry) String() string {
	return e.line
}

// Catalog is an ordered, read-only list of entries in file line order.
type Catalog struct {
	path    string
	entries []Entry
}

// New builds a catalog from raw lines, dropping empty ones.
func New(lines ...string) *Catalog {
	c := &Catalog{entries: make([]Entry, 0, len(lines))}
	for _, line := range lines {
		if line == "" {
			continue
		}
		c.entries = append(c.entries, NewEntry(line))
	}
	return c
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// At returns the entry at index i.
func (c *Catalog) At(i int) (Entry, bool) {
	if c == nil || i < 0 || i >= len(c.entries) {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Entries returns a copy of every entry in order.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	dup := make([]Entry, len(c.entries))
	copy(dup, c.entries)
	return dup
}

// Path reports the file the catalog was loaded from, if any.
func (c *Catalog) Path() string {
	if c == nil {
		return ""
	}
	return c.path
}

// Read decodes UTF-8 text from r and keeps every non-empty line. A leading
// byte order mark is dropped and invalid sequences decode to U+FFFD.
func Read(r io.Reader) (*Catalog, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	scanner := bufio.NewScanner(transform.NewReader(r, decoder))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	c := &Catalog{}
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		c.entries = append(c.entries, NewEntry(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return c, nil
}

// Load reads the catalog file at path.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Paths: []string{path}, Err: ErrNotFound}
		}
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()
	c, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.path = path
	return c, nil
}

// LoadFirst loads the first candidate path that exists. Blank candidates are
// skipped. When none exist the error lists every probed path.
func LoadFirst(candidates ...string) (*Catalog, error) {
	probed := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if strings.TrimSpace(candidate) == "" {
			continue
		}
		probed = append(probed, candidate)
		c, err := Load(candidate)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return c, err
	}
	return nil, &LoadError{Paths: probed, Err: ErrNotFound}
}

// DefaultPaths returns the lookup order used when no explicit path is
// configured: next to the executable, then the working directory.
func DefaultPaths() []string {
	paths := make([]string, 0, 2)
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		paths = append(paths, filepath.Join(filepath.Dir(exe), DefaultFileName))
	}
	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, DefaultFileName)
		if len(paths) == 0 || paths[0] != candidate {
			paths = append(paths, candidate)
		}
	}
	return paths
}
