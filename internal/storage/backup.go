package storage

import (
	"fmt"
	"os"
)

const (
	// BackupSuffix is the file extension for backup files
	BackupSuffix = ".bak"
	// MaxBackupCount is the maximum number of backup files to keep
	MaxBackupCount = 3
)

// GetBackupPath returns the path of backup n for the storage file. Lower
// numbers are more recent: sheets.jsonl.bak.1 is the latest.
func GetBackupPath(storagePath string, n int) string {
	return fmt.Sprintf("%s%s.%d", storagePath, BackupSuffix, n)
}

// rotateBackups drops the oldest backup and shifts the others up by one.
// Missing files are skipped.
func rotateBackups(storagePath string) error {
	if err := os.Remove(GetBackupPath(storagePath, MaxBackupCount)); err != nil && !os.IsNotExist(err) {
		return err
	}

	for i := MaxBackupCount - 1; i >= 1; i-- {
		err := os.Rename(GetBackupPath(storagePath, i), GetBackupPath(storagePath, i+1))
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// CreateBackup copies the storage file to .bak.1 after rotating older
// backups. It does nothing when the storage file doesn't exist.
func CreateBackup(storagePath string) error {
	if _, err := os.Stat(storagePath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := rotateBackups(storagePath); err != nil {
		return err
	}

	return copyFile(storagePath, GetBackupPath(storagePath, 1))
}

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Number int    // The backup number (1 is the most recent)
	Path   string // The full path to the backup file
}

// ListBackups returns the existing backups of the storage file, most recent
// first.
func ListBackups(storagePath string) ([]BackupInfo, error) {
	backups := []BackupInfo{}

	for i := 1; i <= MaxBackupCount; i++ {
		path := GetBackupPath(storagePath, i)
		_, err := os.Stat(path)
		switch {
		case err == nil:
			backups = append(backups, BackupInfo{Number: i, Path: path})
		case !os.IsNotExist(err):
			return nil, err
		}
	}

	return backups, nil
}

// RestoreFromBackup replaces the storage file with backup n. The current
// state is backed up first, so a restore can itself be undone.
func RestoreFromBackup(storagePath string, n int) error {
	if n < 1 || n > MaxBackupCount {
		return fmt.Errorf("invalid backup number %d, must be between 1 and %d", n, MaxBackupCount)
	}

	backupPath := GetBackupPath(storagePath, n)
	if _, err := os.Stat(backupPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("backup %d does not exist", n)
		}
		return err
	}

	// The rotation below moves backupPath, so read it out first.
	tmp := storagePath + ".restore"
	if err := copyFile(backupPath, tmp); err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp) }()

	if err := CreateBackup(storagePath); err != nil {
		return err
	}

	return os.Rename(tmp, storagePath)
}
