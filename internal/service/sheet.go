package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xolan/hrs/internal/calc"
	"github.com/xolan/hrs/internal/sheet"
	"github.com/xolan/hrs/internal/storage"
)

// Common errors for the sheet service
var (
	ErrEmptyLine       = errors.New("line cannot be empty")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrNoLines         = errors.New("no lines found")
)

// SheetService manages the saved lines of each day's sheet.
type SheetService struct {
	storagePath string
	calc        *CalcService
}

// NewSheetService creates a new SheetService
func NewSheetService(storagePath string, calcService *CalcService) *SheetService {
	return &SheetService{
		storagePath: storagePath,
		calc:        calcService,
	}
}

// StoragePath returns the path of the sheet store.
func (s *SheetService) StoragePath() string {
	return s.storagePath
}

// Add validates text as a single entry line and appends it to day's sheet.
func (s *SheetService) Add(day time.Time, text string) (*sheet.Line, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyLine
	}
	if strings.ContainsAny(text, "\r\n") {
		return nil, fmt.Errorf("add one line at a time: %q", text)
	}
	if err := calc.ValidateLine(text); err != nil {
		return nil, err
	}

	l := sheet.NewLine(day, text)
	if err := storage.AppendLine(s.storagePath, l); err != nil {
		return nil, fmt.Errorf("failed to save line: %w", err)
	}
	return &l, nil
}

// List returns day's lines, numbered from 1, and any storage warnings.
func (s *SheetService) List(day time.Time) ([]IndexedLine, []storage.ParseWarning, error) {
	result, err := storage.ReadLinesWithWarnings(s.storagePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheets: %w", err)
	}

	lines := sheet.ForDay(result.Lines, sheet.DayOf(day))
	indexed := make([]IndexedLine, len(lines))
	for i, l := range lines {
		indexed[i] = IndexedLine{Line: l, Index: i + 1}
	}
	return indexed, result.Warnings, nil
}

// Text returns day's sheet as calculator input.
func (s *SheetService) Text(day time.Time) (string, error) {
	lines, _, err := s.List(day)
	if err != nil {
		return "", err
	}

	raw := make([]sheet.Line, len(lines))
	for i, l := range lines {
		raw[i] = l.Line
	}
	return sheet.Text(raw), nil
}

// Delete removes the line at the 1-based index within day's sheet. The store
// is backed up first.
func (s *SheetService) Delete(day time.Time, index int) (*sheet.Line, error) {
	lines, _, err := s.List(day)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	if index < 1 || index > len(lines) {
		return nil, fmt.Errorf("%w: %d (valid range: 1-%d)", ErrIndexOutOfRange, index, len(lines))
	}

	if err := storage.CreateBackup(s.storagePath); err != nil {
		return nil, fmt.Errorf("failed to back up sheets: %w", err)
	}

	deleted, err := storage.DeleteLine(s.storagePath, lines[index-1].Line.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete line: %w", err)
	}
	return &deleted, nil
}

// Clear removes all of day's lines and returns how many were removed. The
// store is backed up first.
func (s *SheetService) Clear(day time.Time) (int, error) {
	lines, _, err := s.List(day)
	if err != nil {
		return 0, err
	}
	if len(lines) == 0 {
		return 0, nil
	}

	if err := storage.CreateBackup(s.storagePath); err != nil {
		return 0, fmt.Errorf("failed to back up sheets: %w", err)
	}

	n, err := storage.ClearDay(s.storagePath, sheet.DayOf(day))
	if err != nil {
		return 0, fmt.Errorf("failed to clear sheet: %w", err)
	}
	return n, nil
}

// Calculate runs both modes over day's sheet.
func (s *SheetService) Calculate(ctx context.Context, day time.Time) (*DayResult, error) {
	lines, warnings, err := s.List(day)
	if err != nil {
		return nil, err
	}

	raw := make([]sheet.Line, len(lines))
	for i, l := range lines {
		raw[i] = l.Line
	}

	cmp, err := s.calc.Compare(ctx, sheet.Text(raw))
	if err != nil {
		return nil, err
	}

	return &DayResult{
		Day:        day,
		Lines:      lines,
		Warnings:   warnings,
		Comparison: cmp,
	}, nil
}

// Validate reports on the health of the sheet store.
func (s *SheetService) Validate() (storage.StorageHealth, error) {
	return storage.ValidateStorage(s.storagePath)
}

// Backups lists the available backups of the sheet store.
func (s *SheetService) Backups() ([]storage.BackupInfo, error) {
	return storage.ListBackups(s.storagePath)
}

// Restore replaces the sheet store with backup n.
func (s *SheetService) Restore(n int) error {
	return storage.RestoreFromBackup(s.storagePath, n)
}
