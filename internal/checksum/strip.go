package checksum

import "strings"

// stripper walks SQL text once, copying everything except comments.
type stripper struct {
	src string
	pos int
	out strings.Builder
}

// StripComments removes "--" line comments and nested "/* */" block
// comments. Each comment is replaced by a single space; the newline ending a
// line comment is kept.
func StripComments(sql string) string {
	s := &stripper{src: sql}
	s.out.Grow(len(sql))
	for s.pos < len(s.src) {
		switch {
		case s.hasPrefix("--"):
			s.skipLineComment()
		case s.hasPrefix("/*"):
			s.skipBlockComment()
		case s.src[s.pos] == '\'':
			s.copyQuoted()
		case s.src[s.pos] == '$':
			s.copyDollar()
		default:
			s.out.WriteByte(s.src[s.pos])
			s.pos++
		}
	}
	return s.out.String()
}

func (s *stripper) hasPrefix(p string) bool {
	return strings.HasPrefix(s.src[s.pos:], p)
}

func (s *stripper) skipLineComment() {
	s.out.WriteByte(' ')
	end := strings.IndexByte(s.src[s.pos:], '\n')
	if end < 0 {
		s.pos = len(s.src)
		return
	}
	s.pos += end
}

func (s *stripper) skipBlockComment() {
	s.out.WriteByte(' ')
	s.pos += 2
	depth := 1
	for s.pos < len(s.src) && depth > 0 {
		switch {
		case s.hasPrefix("/*"):
			depth++
			s.pos += 2
		case s.hasPrefix("*/"):
			depth--
			s.pos += 2
		default:
			s.pos++
		}
	}
}

// copyQuoted copies a single-quoted literal; a doubled quote does not end it.
func (s *stripper) copyQuoted() {
	start := s.pos
	s.pos++
	for s.pos < len(s.src) {
		if s.src[s.pos] != '\'' {
			s.pos++
			continue
		}
		if s.pos+1 < len(s.src) && s.src[s.pos+1] == '\'' {
			s.pos += 2
			continue
		}
		s.pos++
		break
	}
	s.out.WriteString(s.src[start:s.pos])
}

// copyDollar copies a $tag$...$tag$ body. A lone '$' (for example a
// positional parameter) is copied as-is.
func (s *stripper) copyDollar() {
	tag := dollarTag(s.src[s.pos:])
	if tag == "" {
		s.out.WriteByte('$')
		s.pos++
		return
	}
	start := s.pos
	bodyStart := s.pos + len(tag)
	closing := strings.Index(s.src[bodyStart:], tag)
	if closing < 0 {
		s.pos = len(s.src)
	} else {
		s.pos = bodyStart + closing + len(tag)
	}
	s.out.WriteString(s.src[start:s.pos])
}

// dollarTag returns the opening "$$" or "$name$" at the start of s.
func dollarTag(s string) string {
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '$':
			return s[:i+1]
		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		case c >= '0' && c <= '9' && i > 1:
		default:
			return ""
		}
	}
	return ""
}
