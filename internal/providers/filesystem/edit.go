package filesystem

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Edit replaces the single occurrence of oldText in path with newText.
// The file is written only when oldText occurs exactly once.
func (s *Sandbox) Edit(root, path, oldText, newText string) error {
	_, resolved, err := s.resolve(root, path)
	if err != nil {
		return err
	}

	content, err := readText(resolved, path)
	if err != nil {
		return err
	}

	count := strings.Count(content, oldText)
	switch {
	case count == 0:
		return newError(KindEditNotFound, "edit", path, ErrEditNotFound.Msg, nil)
	case count > 1:
		msg := fmt.Sprintf("old_text found %d times, must be unique. Provide more surrounding context.", count)
		return newError(KindAmbiguousEdit, "edit", path, msg, nil)
	}

	updated := strings.Replace(content, oldText, newText, 1)
	if err := writeText(resolved, path, updated); err != nil {
		return err
	}

	s.logger.Info("file edited", zapPath(path),
		zap.Int("old_len", len(oldText)),
		zap.Int("new_len", len(newText)),
	)
	return nil
}
