package exporter

import (
	"strings"
	"testing"

	"github.com/sleroq/md-export/internal/domain/note"
)

func TestSplitFrontmatter(t *testing.T) {
	fm, body, ok := SplitFrontmatter("---\ntitle: x\n---\n# Body\n")
	if !ok {
		t.Fatalf("expected frontmatter to be detected")
	}
	if fm != "---\ntitle: x\n---" {
		t.Fatalf("unexpected frontmatter %q", fm)
	}
	if body != "# Body\n" {
		t.Fatalf("unexpected body %q", body)
	}

	for _, text := range []string{"# No frontmatter\n---\n", " ---\na: b\n---\n", "---\nunterminated: true\n"} {
		if _, body, ok := SplitFrontmatter(text); ok || body != text {
			t.Fatalf("expected %q to have no frontmatter", text)
		}
	}
}

func TestFormatCompatNormalizesFrontmatterLineEndings(t *testing.T) {
	in := "---\ntitle: x\ntags: y   \nauthor: z \n---\n\n\nBody line\n"

	got := FormatCompat(in, false, false)
	want := "---\ntitle: x  \ntags: y  \nauthor: z  \n---\nBody line\n"
	if got != want {
		t.Fatalf("expected:\n%q\ngot:\n%q", want, got)
	}
}

func TestFormatCompatFrontmatterNormalizationIsIdempotent(t *testing.T) {
	in := "---\ntitle: x\ntags: [a, b]\n---\nBody\n"

	once := FormatCompat(in, false, false)
	twice := FormatCompat(once, false, false)
	if once != twice {
		t.Fatalf("expected idempotent output:\n%q\n%q", once, twice)
	}
	if strings.Contains(once, "x    ") {
		t.Fatalf("expected exactly two trailing spaces, got %q", once)
	}
}

func TestFormatCompatInsertsStyleAfterFrontmatter(t *testing.T) {
	got := FormatCompat("---\na: b\n---\nBody\n", true, false)
	want := "---\na: b  \n---\n" + note.StyleDirective + "  \nBody\n"
	if got != want {
		t.Fatalf("expected:\n%q\ngot:\n%q", want, got)
	}
}

func TestFormatCompatInsertsStyleAtTopWithoutFrontmatter(t *testing.T) {
	got := FormatCompat("\n# Title\ntext\n", true, false)
	want := note.StyleDirective + "  \n# Title\ntext\n"
	if got != want {
		t.Fatalf("expected:\n%q\ngot:\n%q", want, got)
	}
}

func TestFormatCompatLineBreaksSkipStructuralLines(t *testing.T) {
	in := "first line\nsecond line   \n\n```go\n```\n| a | b |\n- bullet\n* star\n1. ordered\n2) other\n~~~\nlast"

	got := FormatCompat(in, false, true)
	want := "first line  \nsecond line  \n\n```go\n```\n| a | b |\n- bullet\n* star\n1. ordered\n2) other\n~~~\nlast  "
	if got != want {
		t.Fatalf("expected:\n%q\ngot:\n%q", want, got)
	}
}

func TestFormatCompatNormalizesCRLF(t *testing.T) {
	got := FormatCompat("---\r\na: b\r\n---\r\nBody\r\n", false, true)
	want := "---\na: b  \n---\nBody  \n"
	if got != want {
		t.Fatalf("expected:\n%q\ngot:\n%q", want, got)
	}
}
