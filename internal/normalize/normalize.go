package normalize

import (
	"fmt"
	"strings"

	"github.com/bonfie-erp/schemactl/internal/checksum"
	"github.com/bonfie-erp/schemactl/internal/files/filesystem"
	"github.com/bonfie-erp/schemactl/pkg/schemactl"
)

// Result reports the line counts before and after normalization.
type Result struct {
	OriginalLines int
	CleanedLines  int
}

// Removed returns how many lines were dropped.
func (r Result) Removed() int {
	return r.OriginalLines - r.CleanedLines
}

// SplitLines splits text into lines, keeping the terminator on each line.
// Lines end at "\n", "\r\n" or a lone "\r"; a lone "\r" terminator is
// rewritten as "\n". A trailing fragment without a terminator is kept as the
// last line. Empty text yields no lines.
func SplitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i+1])
			start = i + 1
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				continue
			}
			lines = append(lines, text[start:i]+"\n")
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// IsBlank reports whether line holds nothing but whitespace, including the
// ASCII separators 0x1C-0x1F.
func IsBlank(line string) bool {
	return strings.TrimFunc(line, checksum.IsSpace) == ""
}

// Lines returns lines with every run of blank lines replaced by one "\n".
func Lines(lines []string) []string {
	cleaned := make([]string, 0, len(lines))
	prevBlank := false
	for _, line := range lines {
		if !IsBlank(line) {
			cleaned = append(cleaned, line)
			prevBlank = false
			continue
		}
		if !prevBlank {
			cleaned = append(cleaned, "\n")
		}
		prevBlank = true
	}
	return cleaned
}

// Text normalizes a whole document.
func Text(text string) (string, Result) {
	lines := SplitLines(text)
	cleaned := Lines(lines)
	return strings.Join(cleaned, ""), Result{
		OriginalLines: len(lines),
		CleanedLines:  len(cleaned),
	}
}

// File normalizes inputPath into outputPath. Nothing is written unless the
// input was read as valid UTF-8 and the normalized SQL fingerprint is
// unchanged.
func File(fsys filesystem.Provider, logger schemactl.Logger, inputPath, outputPath string) (Result, error) {
	if info, err := fsys.Stat(inputPath); err == nil {
		logger.Verbose("Reading %s (%d bytes)", inputPath, info.Size())
	}
	content, err := filesystem.ReadText(fsys, inputPath)
	if err != nil {
		return Result{}, err
	}

	cleaned, result := Text(string(content))
	logger.Verbose("Normalized %s: %d -> %d lines", inputPath, result.OriginalLines, result.CleanedLines)

	before, after := checksum.Of(content), checksum.Of([]byte(cleaned))
	if !before.SameSQL(after) {
		return Result{}, fmt.Errorf("normalizing %s altered SQL (%s -> %s): %w",
			inputPath, before.Short(), after.Short(), schemactl.ErrContentChanged)
	}
	logger.Verbose("SQL fingerprint unchanged: %s", before.Normalized[:12])

	if err := fsys.WriteFile(outputPath, []byte(cleaned)); err != nil {
		return Result{}, fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	return result, nil
}
