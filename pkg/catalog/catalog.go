// Package catalog parses the map index (mapinfo.csv) and tracks which entry
// is selected and which entries match the current filter.
package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/pmapview/pkg/geometry"
)

// MaxNameLength matches the name buffer of the extraction tool
const MaxNameLength = 255

// MaxLineLength is the longest index line read; longer lines are skipped
const MaxLineLength = 4096

const fieldCount = 5

// Entry is one line of the map index
type Entry struct {
	ID       uint32
	Name     string
	FileID   uint32
	Spawn    geometry.Vector2
	Selected bool
	Visible  bool
}

// SkippedLine records a line that could not be parsed
type SkippedLine struct {
	Line   int
	Reason string
}

// Catalog is the ordered list of map index entries
type Catalog struct {
	Entries []Entry
	Skipped []SkippedLine
}

// Load reads a map index file
func Load(filename string) (*Catalog, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open map index: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads a map index. Malformed lines are skipped and reported in
// Catalog.Skipped; only read errors are returned.
func Parse(r io.Reader) (*Catalog, error) {
	c := &Catalog{Entries: make([]Entry, 0)}
	reader := bufio.NewReaderSize(r, MaxLineLength)

	lineNo := 0
	for {
		raw, isPrefix, err := reader.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading map index: %w", err)
		}
		lineNo++

		if isPrefix {
			if err := skipRestOfLine(reader); err != nil {
				return nil, fmt.Errorf("error reading map index: %w", err)
			}
			c.Skipped = append(c.Skipped, SkippedLine{
				Line:   lineNo,
				Reason: fmt.Sprintf("line longer than %d bytes", MaxLineLength),
			})
			continue
		}

		line := strings.TrimSpace(string(raw))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := parseLine(line)
		if err != nil {
			c.Skipped = append(c.Skipped, SkippedLine{Line: lineNo, Reason: err.Error()})
			continue
		}
		c.Entries = append(c.Entries, entry)
	}

	return c, nil
}

// skipRestOfLine consumes the remainder of a line that did not fit the buffer
func skipRestOfLine(reader *bufio.Reader) error {
	for {
		_, isPrefix, err := reader.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if !isPrefix {
			return nil
		}
	}
}

func parseLine(line string) (Entry, error) {
	fields := strings.Split(line, ",")
	if len(fields) < fieldCount {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", fieldCount, len(fields))
	}
	// names may contain commas, the numeric tail is fixed
	tail := fields[len(fields)-3:]
	name := strings.Join(fields[1:len(fields)-3], ",")

	id, err := parseUint(fields[0])
	if err != nil {
		return Entry{}, fmt.Errorf("invalid map id: %w", err)
	}
	fileID, err := parseUint(tail[0])
	if err != nil {
		return Entry{}, fmt.Errorf("invalid map file id: %w", err)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(tail[1]), 64)
	if err != nil {
		return Entry{}, fmt.Errorf("invalid spawn x: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(tail[2]), 64)
	if err != nil {
		return Entry{}, fmt.Errorf("invalid spawn y: %w", err)
	}

	name = strings.TrimSpace(name)
	if len(name) > MaxNameLength {
		name = truncate(name, MaxNameLength)
	}

	return Entry{
		ID:      id,
		Name:    name,
		FileID:  fileID,
		Spawn:   geometry.NewVector2(x, y),
		Visible: true,
	}, nil
}

// parseUint accepts decimal, 0x hex and 0 octal like strtoul(s, nil, 0)
func parseUint(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence
func truncate(s string, n int) string {
	for n > 0 && n < len(s) && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}

// Len returns the number of entries
func (c *Catalog) Len() int {
	return len(c.Entries)
}

// Entry returns entry i without changing the selection
func (c *Catalog) Entry(i int) (*Entry, error) {
	if i < 0 || i >= len(c.Entries) {
		return nil, fmt.Errorf("catalog index %d out of range [0, %d)", i, len(c.Entries))
	}
	return &c.Entries[i], nil
}

// Select marks entry i as the only selected entry and returns it
func (c *Catalog) Select(i int) (*Entry, error) {
	if _, err := c.Entry(i); err != nil {
		return nil, err
	}
	for j := range c.Entries {
		c.Entries[j].Selected = j == i
	}
	return &c.Entries[i], nil
}

// Selected returns the selected entry, or nil
func (c *Catalog) Selected() *Entry {
	for i := range c.Entries {
		if c.Entries[i].Selected {
			return &c.Entries[i]
		}
	}
	return nil
}

// FindByFileID returns the index of the first entry using the given file id
func (c *Catalog) FindByFileID(fileID uint32) int {
	for i, e := range c.Entries {
		if e.FileID == fileID {
			return i
		}
	}
	return -1
}

// Filter sets Visible on entries whose name or ids contain query
// (case-insensitive). An empty query shows everything.
func (c *Catalog) Filter(query string) int {
	query = strings.ToLower(strings.TrimSpace(query))
	visible := 0
	for i := range c.Entries {
		e := &c.Entries[i]
		e.Visible = query == "" ||
			strings.Contains(strings.ToLower(e.Name), query) ||
			strings.Contains(strconv.FormatUint(uint64(e.ID), 10), query) ||
			strings.Contains(strconv.FormatUint(uint64(e.FileID), 10), query)
		if e.Visible {
			visible++
		}
	}
	return visible
}

// VisibleIndices returns the indices of all visible entries in order
func (c *Catalog) VisibleIndices() []int {
	indices := make([]int, 0, len(c.Entries))
	for i, e := range c.Entries {
		if e.Visible {
			indices = append(indices, i)
		}
	}
	return indices
}

// Restore carries the selection over from a previous catalog, matched by
// file id. Used after the index is reloaded from disk.
func (c *Catalog) Restore(previous *Catalog) {
	if previous == nil {
		return
	}
	if sel := previous.Selected(); sel != nil {
		if i := c.FindByFileID(sel.FileID); i >= 0 {
			c.Entries[i].Selected = true
		}
	}
}
