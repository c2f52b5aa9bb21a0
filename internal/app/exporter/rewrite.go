package exporter

import (
	"path"
	"regexp"
	"strings"

	"github.com/sleroq/md-export/internal/domain/note"
)

// AssignImageNames maps every image reference to its exported file name.
// Numbering is local to one note and follows first appearance.
func AssignImageNames(links note.LinkSet, rename bool) map[string]string {
	names := make(map[string]string, len(links.Images))
	for i, ref := range links.Images {
		target := links.ImageTarget(ref)
		if rename {
			names[ref] = note.RenamedImageName(i+1, target)
			continue
		}
		names[ref] = keptImageName(target)
	}
	return names
}

func keptImageName(name string) string {
	cleaned := path.Clean(strings.ReplaceAll(name, "\\", "/"))
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") || strings.HasPrefix(cleaned, "/") {
		return path.Base(cleaned)
	}
	return name
}

var linkTargetEscaper = strings.NewReplacer(" ", "%20", "#", "%23", "(", "%28", ")", "%29")

// RewriteImageLinks replaces every wiki and standard embed of each reference
// in names with one standard embed pointing into imageDir.
func RewriteImageLinks(text string, links note.LinkSet, names map[string]string, imageDir string, style note.LinkStyle) string {
	for _, ref := range links.Images {
		name, ok := names[ref]
		if !ok {
			continue
		}
		replacement := "![](" + linkTargetEscaper.Replace(style.ImageLink(imageDir, name)) + ")"

		text = strings.ReplaceAll(text, "![["+ref+"]]", replacement)

		targets := append([]string{ref}, links.RawImages[ref]...)
		for _, target := range targets {
			pattern := regexp.MustCompile(`!\[[^\]]*\]\(` + regexp.QuoteMeta(target) + `\)`)
			text = pattern.ReplaceAllLiteralString(text, replacement)
		}
	}
	return text
}
