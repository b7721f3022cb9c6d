package report

import (
	"errors"
	"fmt"
	"os"
)

// WriteFile creates or truncates path, writes text in full and closes the
// handle on every path. A close error is reported when the write succeeded.
func WriteFile(path, text string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing report %s: %w", path, cerr))
		}
	}()

	if _, err := f.WriteString(text); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
