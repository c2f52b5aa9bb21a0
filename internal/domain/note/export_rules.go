package note

import (
	"fmt"
	"path"
	"strings"
)

const DefaultExportDir = "export"
const DefaultImageDir = "images"

// StyleDirective constrains embedded images in renderers that do not size
// them on their own.
const StyleDirective = "<style>img { max-width: 100%; max-height: 480px; }</style>"

var ConventionalAssetDirs = []string{"", "attachments", "Assets", "asset", "images", "image"}

var noteLinkImageExts = []string{".png", ".jpg"}

type LinkStyle string

const (
	// LinkStyleRelative renders ./images/<name>.
	LinkStyleRelative LinkStyle = "relative"
	// LinkStyleRoot renders /images/<name>.
	LinkStyleRoot LinkStyle = "root"
)

func ParseLinkStyle(raw string) (LinkStyle, error) {
	switch LinkStyle(strings.ToLower(strings.TrimSpace(raw))) {
	case "", LinkStyleRelative:
		return LinkStyleRelative, nil
	case LinkStyleRoot:
		return LinkStyleRoot, nil
	default:
		return "", fmt.Errorf("invalid link style %q: use %q or %q", raw, LinkStyleRelative, LinkStyleRoot)
	}
}

func (s LinkStyle) ImageLink(imageDir string, name string) string {
	if s == LinkStyleRoot {
		return "/" + imageDir + "/" + name
	}
	return "./" + imageDir + "/" + name
}

// IsImageNoteLink reports whether a bracket reference points at an image and
// must not be treated as a note link.
func IsImageNoteLink(ref string) bool {
	for _, ext := range noteLinkImageExts {
		if strings.HasSuffix(ref, ext) {
			return true
		}
	}
	return false
}

// LinkTarget strips a wiki alias (|...) and heading/block anchor (#...).
func LinkTarget(ref string) string {
	if idx := strings.Index(ref, "|"); idx >= 0 {
		ref = ref[:idx]
	}
	if idx := strings.Index(ref, "#"); idx > 0 {
		ref = ref[:idx]
	}
	return strings.TrimSpace(ref)
}

func RenamedImageName(seq int, target string) string {
	ext := path.Ext(target)
	if ext == "" {
		ext = ".png"
	}
	return fmt.Sprintf("image%02d%s", seq, ext)
}
