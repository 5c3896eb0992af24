// Package sheet reads the initiative table from a CSV file.
package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/adamavenir/initbot/internal/types"
)

// ErrMalformed is returned when the table cannot be turned into records.
var ErrMalformed = errors.New("malformed table")

// Columns lists the header names every table must carry.
var Columns = []string{"init", "turn", "name", "player", "hp_cur", "hp_max", "ac", "extra"}

var utf8BOM = []byte("\ufeff")

// Source reads snapshots from a file path.
type Source struct {
	Path string
}

// NewSource creates a source for path.
func NewSource(path string) *Source {
	return &Source{Path: path}
}

// Read returns every record of the current snapshot in file order.
func (s *Source) Read() ([]types.CombatantRecord, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return Parse(data)
}

// Parse decodes table bytes. It never returns a partial record list.
// A leading UTF-8 byte order mark is ignored.
func Parse(data []byte) ([]types.CombatantRecord, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if err := checkHeader(data); err != nil {
		return nil, err
	}

	var records []types.CombatantRecord
	if err := gocsv.UnmarshalBytes(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	seen := make(map[string]bool, len(records))
	for i, rec := range records {
		if strings.TrimSpace(rec.Name) == "" {
			return nil, fmt.Errorf("%w: row %d has no name", ErrMalformed, i+2)
		}
		if seen[rec.Name] {
			return nil, fmt.Errorf("%w: duplicate name %q on row %d", ErrMalformed, rec.Name, i+2)
		}
		seen[rec.Name] = true
	}
	return records, nil
}

func checkHeader(data []byte) error {
	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		return fmt.Errorf("%w: header: %v", ErrMalformed, err)
	}
	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[strings.TrimSpace(col)] = true
	}
	var missing []string
	for _, col := range Columns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing columns %s", ErrMalformed, strings.Join(missing, ", "))
	}
	return nil
}
