// Package ledger persists the set of snippets consumed by prior runs. The
// backing store is a CSV file with a `tweet` column and a `timestamp` column,
// append-only: entries are never deleted or rewritten.
package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"blogsmith/internal/logger"
)

const timestampLayout = "2006-01-02 15:04:05"

// Ledger reads and appends usage entries at a fixed CSV path.
type Ledger struct {
	path string
}

// New returns a Ledger bound to the given CSV file path. The file is not
// touched until LoadKnown or Record is called.
func New(path string) *Ledger {
	return &Ledger{path: path}
}

// LoadKnown reads all previously recorded snippet texts and returns them as a
// set. An absent file is the first-run case and yields an empty set silently.
// A file that exists but lacks the expected `tweet` column yields an empty
// set with a warning. LoadKnown never fails the run.
func (l *Ledger) LoadKnown() map[string]struct{} {
	known := make(map[string]struct{})

	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("No previous snippet ledger found", "path", l.path)
			return known
		}
		logger.Warn("Could not open snippet ledger", "path", l.path, "error", err.Error())
		return known
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		logger.Warn("Could not parse snippet ledger", "path", l.path, "error", err.Error())
		return known
	}
	if len(records) == 0 {
		return known
	}

	textCol := -1
	for i, name := range records[0] {
		if name == "tweet" {
			textCol = i
			break
		}
	}
	if textCol < 0 {
		logger.Warn("Snippet ledger is missing the tweet column", "path", l.path)
		return known
	}

	for _, row := range records[1:] {
		if textCol < len(row) {
			known[row[textCol]] = struct{}{}
		}
	}
	return known
}

// Record appends one entry with the current timestamp. The header row is
// written only when the file does not exist yet. Prior rows are never
// overwritten or reordered.
func (l *Ledger) Record(text string) error {
	_, statErr := os.Stat(l.path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open ledger %s: %w", l.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write([]string{"tweet", "timestamp"}); err != nil {
			return fmt.Errorf("failed to write ledger header: %w", err)
		}
	}
	if err := w.Write([]string{text, time.Now().Format(timestampLayout)}); err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush ledger entry: %w", err)
	}
	return nil
}
