package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"go.uber.org/zap"
)

// Read returns the full text of path, resolved against root.
func (s *Sandbox) Read(root, path string) (string, error) {
	_, resolved, err := s.resolve(root, path)
	if err != nil {
		return "", err
	}
	return readText(resolved, path)
}

// Write replaces the content of path, creating missing parent directories.
func (s *Sandbox) Write(root, path, content string) error {
	_, resolved, err := s.resolve(root, path)
	if err != nil {
		return err
	}
	if err := writeText(resolved, path, content); err != nil {
		return err
	}
	s.logger.Info("file written", zapPath(path), zap.Int("size", len(content)))
	return nil
}

// readText reads a resolved path and requires valid UTF-8.
// display is the caller-facing path used in error messages.
func readText(resolved, display string) (string, error) {
	data, err := os.ReadFile(resolved)
	if err != nil {
		return "", newError(KindIO, "read", display, "failed to read file", err)
	}
	if !utf8.Valid(data) {
		return "", newError(KindInvalidUTF8, "read", display, invalidUTF8Message(data), nil)
	}
	return string(data), nil
}

func writeText(resolved, display, content string) error {
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return newError(KindIO, "write", display, "failed to create directories", err)
	}
	if err := os.WriteFile(resolved, []byte(content), 0o644); err != nil {
		return newError(KindIO, "write", display, "failed to write file", err)
	}
	return nil
}

// invalidUTF8Message names the most likely charset so the caller can tell a
// legacy-encoded text file from binary data.
func invalidUTF8Message(data []byte) string {
	best, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || best == nil || best.Charset == "" {
		return ErrInvalidUTF8.Msg
	}
	return fmt.Sprintf("%s (detected %s)", ErrInvalidUTF8.Msg, best.Charset)
}
