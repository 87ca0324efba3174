package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"unicode/utf8"

	"github.com/bonfie-erp/schemactl/pkg/schemactl"
)

// ReadText reads an SQL input file that must be UTF-8 encoded.
//
// A missing file wraps schemactl.ErrInputNotFound and a file holding an
// invalid byte sequence wraps schemactl.ErrInvalidEncoding.
func ReadText(p Provider, path string) ([]byte, error) {
	content, err := p.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, schemactl.ErrInputNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if offset := invalidUTF8Offset(content); offset >= 0 {
		return nil, fmt.Errorf("%s: invalid UTF-8 at byte %d: %w", path, offset, schemactl.ErrInvalidEncoding)
	}
	return content, nil
}

// invalidUTF8Offset returns the offset of the first invalid byte, or -1.
func invalidUTF8Offset(content []byte) int {
	if utf8.Valid(content) {
		return -1
	}
	for i := 0; i < len(content); {
		r, size := utf8.DecodeRune(content[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
