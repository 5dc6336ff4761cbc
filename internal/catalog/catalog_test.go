package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func lines(c *Catalog) []string {
	out := make([]string, 0, c.Len())
	for _, e := range c.Entries() {
		out = append(out, e.Line())
	}
	return out
}

func TestPayloadSplitsOnFirstColon(t *testing.T) {
	e := NewEntry(`lol:¯\_(ツ)_/¯`)
	assert.Equal(t, `¯\_(ツ)_/¯`, e.Payload())
	label, ok := e.Label()
	assert.True(t, ok)
	assert.Equal(t, "lol", label)

	multi := NewEntry("time:12:30")
	assert.Equal(t, "12:30", multi.Payload())
}

func TestPayloadWithoutColonIsWholeLine(t *testing.T) {
	e := NewEntry("(╯°□°)╯︵ ┻━┻")
	assert.Equal(t, "(╯°□°)╯︵ ┻━┻", e.Payload())
	_, ok := e.Label()
	assert.False(t, ok)
}

func TestPayloadEmptyAfterColon(t *testing.T) {
	e := NewEntry("blank:")
	assert.Equal(t, "", e.Payload())
}

func TestReadSkipsOnlyEmptyLines(t *testing.T) {
	c, err := Read(strings.NewReader("a:1\n\n  \nb:2\r\n\nab:3"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a:1", "  ", "b:2", "ab:3"}, lines(c))
}

func TestReadStripsByteOrderMark(t *testing.T) {
	c, err := Read(strings.NewReader("\ufeffshrug:¯\\_(ツ)_/¯\n"))
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	e, ok := c.At(0)
	require.True(t, ok)
	assert.Equal(t, "shrug:¯\\_(ツ)_/¯", e.Line())
}

func TestReadReplacesInvalidUTF8(t *testing.T) {
	c, err := Read(strings.NewReader("bad\xffbyte\n"))
	require.NoError(t, err)
	e, _ := c.At(0)
	assert.Equal(t, "bad\ufffdbyte", e.Line())
}

func TestLoadPreservesFileOrder(t *testing.T) {
	path := writeCatalog(t, t.TempDir(), "z:1\na:2\nm:3\n")
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"z:1", "a:2", "m:3"}, lines(c))
	assert.Equal(t, path, c.Path())
}

func TestLoadMissingFileIsNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), DefaultFileName)
	_, err := Load(missing)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, []string{missing}, loadErr.Paths)
}

func TestLoadFirstPicksFirstExisting(t *testing.T) {
	missing := filepath.Join(t.TempDir(), DefaultFileName)
	present := writeCatalog(t, t.TempDir(), "x:10\n")
	c, err := LoadFirst("", missing, present)
	require.NoError(t, err)
	assert.Equal(t, present, c.Path())
}

func TestLoadFirstReportsAllProbedPaths(t *testing.T) {
	a := filepath.Join(t.TempDir(), DefaultFileName)
	b := filepath.Join(t.TempDir(), DefaultFileName)
	_, err := LoadFirst(a, b)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), a)
	assert.Contains(t, err.Error(), b)
}

func TestAtOutOfRange(t *testing.T) {
	c := New("a")
	_, ok := c.At(1)
	assert.False(t, ok)
	_, ok = c.At(-1)
	assert.False(t, ok)
	var nilCatalog *Catalog
	assert.Equal(t, 0, nilCatalog.Len())
}

func TestEntriesReturnsCopy(t *testing.T) {
	c := New("a", "", "b")
	entries := c.Entries()
	require.Len(t, entries, 2)
	entries[0] = NewEntry("mutated")
	first, _ := c.At(0)
	assert.Equal(t, "a", first.Line())
}
