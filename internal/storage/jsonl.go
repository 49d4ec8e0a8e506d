package storage

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/xolan/hrs/internal/osutil"
	"github.com/xolan/hrs/internal/sheet"
)

const (
	// AppName is the application name used for config directory
	AppName = "hrs"
	// SheetsFile is the name of the JSON Lines storage file
	SheetsFile = "sheets.jsonl"
)

// ErrLineNotFound is returned when a line ID is not in the store.
var ErrLineNotFound = errors.New("line not found")

// ParseWarning represents a warning about a corrupted or malformed line
type ParseWarning struct {
	LineNumber int    // Line number in the file (1-indexed)
	Content    string // Raw content of the corrupted line
	Error      string // Description of the parsing error
}

// ReadResult contains the successfully parsed lines and warnings about
// corrupted ones.
type ReadResult struct {
	Lines    []sheet.Line
	Warnings []ParseWarning
}

// GetStoragePath returns the path to the sheets storage file, creating the
// config directory if needed.
func GetStoragePath() (string, error) {
	return osutil.AppFile(AppName, SheetsFile)
}

// AppendLine appends a single line to the JSON Lines storage file.
// Creates the file if it doesn't exist.
func AppendLine(path string, l sheet.Line) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	data, err := json.Marshal(l)
	if err != nil {
		return err
	}

	_, err = file.Write(append(data, '\n'))
	return err
}

// ReadLinesWithWarnings reads every line from the storage file. Lines that
// fail to decode are reported as warnings and skipped. A missing file reads
// as empty.
func ReadLinesWithWarnings(path string) (ReadResult, error) {
	result := ReadResult{
		Lines:    []sheet.Line{},
		Warnings: []ParseWarning{},
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return result, err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		content := scanner.Text()
		if content == "" {
			continue
		}

		var l sheet.Line
		if err := json.Unmarshal([]byte(content), &l); err != nil {
			result.Warnings = append(result.Warnings, ParseWarning{
				LineNumber: lineNumber,
				Content:    content,
				Error:      err.Error(),
			})
			continue
		}
		result.Lines = append(result.Lines, l)
	}

	return result, scanner.Err()
}

// ReadLines reads all lines from the storage file, skipping corrupted ones.
func ReadLines(path string) ([]sheet.Line, error) {
	result, err := ReadLinesWithWarnings(path)
	return result.Lines, err
}

// WriteLines replaces the storage file contents with lines. It writes to a
// temporary file first and renames it into place.
func WriteLines(path string, lines []sheet.Line) error {
	tmpFile := path + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	if err := writeLinesToTempFile(file, tmpFile, lines); err != nil {
		return err
	}

	return os.Rename(tmpFile, path)
}

// DeleteLine removes the line with the given ID and returns it.
func DeleteLine(path string, id uuid.UUID) (sheet.Line, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return sheet.Line{}, err
	}

	for i, l := range lines {
		if l.ID != id {
			continue
		}
		kept := append(lines[:i:i], lines[i+1:]...)
		if err := WriteLines(path, kept); err != nil {
			return sheet.Line{}, err
		}
		return l, nil
	}

	return sheet.Line{}, fmt.Errorf("%w: %s", ErrLineNotFound, id)
}

// ClearDay removes every line saved for day and returns how many were removed.
// The file is left untouched when nothing matches.
func ClearDay(path string, day string) (int, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return 0, err
	}

	kept := make([]sheet.Line, 0, len(lines))
	for _, l := range lines {
		if l.Day != day {
			kept = append(kept, l)
		}
	}

	removed := len(lines) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := WriteLines(path, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// StorageHealth describes the state of the storage file.
type StorageHealth struct {
	TotalLines     int            // Non-empty lines in the file
	ValidLines     int            // Lines that decoded
	CorruptedLines int            // Lines that did not
	Warnings       []ParseWarning // One per corrupted line
}

// ValidateStorage reports on the health of the storage file. A missing file
// is healthy and empty.
func ValidateStorage(path string) (StorageHealth, error) {
	health := StorageHealth{Warnings: []ParseWarning{}}

	result, err := ReadLinesWithWarnings(path)
	if err != nil {
		return health, err
	}

	health.ValidLines = len(result.Lines)
	health.CorruptedLines = len(result.Warnings)
	health.TotalLines = health.ValidLines + health.CorruptedLines
	health.Warnings = result.Warnings
	return health, nil
}
