package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// Fingerprint identifies a piece of SQL text.
type Fingerprint struct {
	Raw        string
	Normalized string
}

// Of computes both digests of content.
func Of(content []byte) Fingerprint {
	return Fingerprint{
		Raw:        digest(content),
		Normalized: digest([]byte(Normalize(string(content)))),
	}
}

// SameSQL reports whether f and other differ only in formatting or comments.
func (f Fingerprint) SameSQL(other Fingerprint) bool {
	return f.Normalized == other.Normalized
}

// Short returns the first 12 hex characters of the raw digest.
func (f Fingerprint) Short() string {
	if len(f.Raw) < 12 {
		return f.Raw
	}
	return f.Raw[:12]
}

// Normalize lowercases SQL, removes comments and collapses every whitespace
// run into one space.
func Normalize(sql string) string {
	stripped := StripComments(sql)

	var b strings.Builder
	b.Grow(len(stripped))

	pendingSpace := false
	for _, r := range stripped {
		if IsSpace(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// IsSpace reports whether r is whitespace. Besides unicode.IsSpace it accepts
// the ASCII separator controls 0x1C-0x1F.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func digest(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
