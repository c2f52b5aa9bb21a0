package exporter

import (
	"net/url"
	"regexp"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sleroq/md-export/internal/domain/note"
)

var (
	wikiEmbedPattern     = regexp.MustCompile(`!\[\[(.+?)\]\]`)
	markdownEmbedPattern = regexp.MustCompile(`!\[[^\]]*\]\(([^\)]+)\)`)
	wikiLinkPattern      = regexp.MustCompile(`\[\[(.+?)\]\]`)
)

type imageMatch struct {
	pos     int
	ref     string
	raw     string
	decoded bool
}

// ExtractLinks scans note text for image embeds and note links. It never
// touches the content store.
func ExtractLinks(text string) note.LinkSet {
	var matches []imageMatch
	for _, m := range wikiEmbedPattern.FindAllStringSubmatchIndex(text, -1) {
		ref := text[m[2]:m[3]]
		matches = append(matches, imageMatch{pos: m[0], ref: ref, raw: ref})
	}
	for _, m := range markdownEmbedPattern.FindAllStringSubmatchIndex(text, -1) {
		raw := text[m[2]:m[3]]
		matches = append(matches, imageMatch{pos: m[0], ref: safeDecode(raw), raw: raw, decoded: true})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].pos < matches[j].pos })

	links := note.LinkSet{RawImages: map[string][]string{}, WikiImages: map[string]struct{}{}}
	seenImages := map[string]struct{}{}
	for _, m := range matches {
		if _, ok := seenImages[m.ref]; !ok {
			seenImages[m.ref] = struct{}{}
			links.Images = append(links.Images, m.ref)
		}
		if !m.decoded {
			links.WikiImages[m.ref] = struct{}{}
		}
		if m.decoded && m.raw != m.ref && !slices.Contains(links.RawImages[m.ref], m.raw) {
			links.RawImages[m.ref] = append(links.RawImages[m.ref], m.raw)
		}
	}

	seenNotes := map[string]struct{}{}
	for _, m := range wikiLinkPattern.FindAllStringSubmatch(text, -1) {
		ref := m[1]
		if note.IsImageNoteLink(ref) || strings.HasPrefix(note.LinkTarget(ref), "#") {
			continue
		}
		if _, ok := seenNotes[ref]; ok {
			continue
		}
		seenNotes[ref] = struct{}{}
		links.MdFiles = append(links.MdFiles, ref)
	}
	return links
}

// safeDecode resolves percent-escapes and keeps s unchanged when they are
// malformed or do not decode to UTF-8.
func safeDecode(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil || !utf8.ValidString(decoded) {
		return s
	}
	return decoded
}
