package exporter

import (
	"regexp"
	"strings"

	"github.com/sleroq/md-export/internal/domain/note"
)

const frontmatterDelimiter = "---"

var (
	bulletLinePattern  = regexp.MustCompile(`^\s*[-*+]\s`)
	orderedLinePattern = regexp.MustCompile(`^\s*\d+[.)]\s`)
)

// SplitFrontmatter separates a leading --- block from the body. fm includes
// both delimiter lines.
func SplitFrontmatter(text string) (fm string, body string, ok bool) {
	lines := strings.Split(text, "\n")
	if len(lines) < 2 || lines[0] != frontmatterDelimiter {
		return "", text, false
	}
	for i := 1; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], frontmatterDelimiter) {
			return strings.Join(lines[:i+1], "\n"), strings.Join(lines[i+1:], "\n"), true
		}
	}
	return "", text, false
}

// NormalizeLineBreak makes line end in exactly two spaces.
func NormalizeLineBreak(line string) string {
	return strings.TrimRight(line, " \t") + "  "
}

// FormatCompat prepares a note for renderers that need explicit line breaks.
// Frontmatter lines always get hard breaks; the style directive and body
// breaks are optional.
func FormatCompat(text string, insertStyle bool, insertLineBreaks bool) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	fm, body, hasFrontmatter := SplitFrontmatter(text)
	if hasFrontmatter {
		lines := strings.Split(fm, "\n")
		for i := 1; i < len(lines)-1; i++ {
			lines[i] = NormalizeLineBreak(lines[i])
		}
		fm = strings.Join(lines, "\n")
	}

	bodyLines := strings.Split(body, "\n")
	if insertLineBreaks {
		for i, line := range bodyLines {
			if keepsLineEnding(line) {
				continue
			}
			bodyLines[i] = NormalizeLineBreak(line)
		}
	}
	for len(bodyLines) > 1 && strings.TrimSpace(bodyLines[0]) == "" {
		bodyLines = bodyLines[1:]
	}
	body = strings.Join(bodyLines, "\n")
	if strings.TrimSpace(body) == "" {
		body = ""
	}

	var b strings.Builder
	if hasFrontmatter {
		b.WriteString(fm)
		b.WriteString("\n")
	}
	if insertStyle {
		b.WriteString(NormalizeLineBreak(note.StyleDirective))
		b.WriteString("\n")
	}
	b.WriteString(body)
	return b.String()
}

func keepsLineEnding(line string) bool {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return true
	case strings.HasPrefix(trimmed, "```"), strings.HasPrefix(trimmed, "~~~"):
		return true
	case strings.HasPrefix(trimmed, "|"):
		return true
	case bulletLinePattern.MatchString(line), orderedLinePattern.MatchString(line):
		return true
	}
	return false
}
