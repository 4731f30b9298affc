// Package csvstore persists every entity as one CSV file with a fixed header
// row. The files are the sole source of truth: each read goes back to disk,
// and updates rewrite the whole table through a temp-file rename so a crash
// mid-write leaves either the old or the new content, never a torn file.
package csvstore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// table wraps one CSV file and its fixed header.
type table struct {
	path   string
	header string
}

// init creates the file with its header if it does not exist yet, along with
// the data directory.
func (t table) init() error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		return fmt.Errorf("create data directory for %s: %w", t.path, err)
	}
	if _, err := os.Stat(t.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", t.path, err)
	}
	return t.rewrite(nil)
}

// readRows returns every data line in file order, header excluded. Blank
// lines are skipped.
func (t table) readRows() ([]string, error) {
	f, err := os.Open(t.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", t.path, err)
	}
	defer f.Close()

	var rows []string
	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", t.path, err)
	}
	return rows, nil
}

// appendRow adds one record to the end of the file.
func (t table) appendRow(row string) error {
	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("append to %s: %w", t.path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(row + "\n"); err != nil {
		return fmt.Errorf("append to %s: %w", t.path, err)
	}
	return nil
}

// rewrite replaces the whole file (header plus rows) atomically: the content
// is written to a temp file in the same directory and renamed over the
// original.
func (t table) rewrite(rows []string) error {
	dir := filepath.Dir(t.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(t.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("rewrite %s: %w", t.path, err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	_, err = w.WriteString(t.header + "\n")
	for _, row := range rows {
		if err != nil {
			break
		}
		_, err = w.WriteString(row + "\n")
	}
	if err == nil {
		err = w.Flush()
	}
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rewrite %s: %w", t.path, err)
	}
	if err := os.Rename(tmpName, t.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rewrite %s: %w", t.path, err)
	}
	return nil
}
