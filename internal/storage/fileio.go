package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/xolan/hrs/internal/sheet"
)

// writeLinesToTempFile writes lines to file and closes it. On failure the
// temporary file is removed.
func writeLinesToTempFile(file *os.File, tmpFile string, lines []sheet.Line) error {
	for _, l := range lines {
		data, err := json.Marshal(l)
		if err == nil {
			_, err = file.Write(append(data, '\n'))
		}
		if err != nil {
			_ = file.Close()
			_ = os.Remove(tmpFile)
			return err
		}
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
