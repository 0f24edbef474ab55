// Package export writes the starred set to CSV.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/thomaskoefod/hackerfeed/pkg/models"
)

var ErrNothingToExport = errors.New("no starred stories to export")

var header = []string{"Title", "URL", "Author", "Domain", "Starred Date"}

// WriteCSV writes items with a header row. Dates are UTC calendar days.
func WriteCSV(w io.Writer, items []models.StarredItem) error {
	if len(items) == 0 {
		return ErrNothingToExport
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, s := range items {
		row := []string{s.Title, s.URL, s.By, s.Domain, s.StarredTime().UTC().Format(time.DateOnly)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row %d: %w", s.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// FileName returns the export file name for the given day.
func FileName(now time.Time) string {
	return fmt.Sprintf("hn_starred_%s.csv", now.UTC().Format(time.DateOnly))
}

// ToDir writes items to dir/FileName(now) and returns the path.
func ToDir(dir string, items []models.StarredItem, now time.Time) (string, error) {
	if len(items) == 0 {
		return "", ErrNothingToExport
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(dir, FileName(now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, items); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing export file: %w", err)
	}
	return path, nil
}
