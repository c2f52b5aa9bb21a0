package note

import (
	"context"
	"testing"
)

func TestIsImageNoteLink(t *testing.T) {
	for ref, want := range map[string]bool{
		"pic.png":     true,
		"dir/pic.jpg": true,
		"pic.gif":     false,
		"Note":        false,
		"pic.PNG":     false,
	} {
		if got := IsImageNoteLink(ref); got != want {
			t.Fatalf("IsImageNoteLink(%q): expected %v, got %v", ref, want, got)
		}
	}
}

func TestLinkTarget(t *testing.T) {
	for ref, want := range map[string]string{
		"Note":               "Note",
		"Note|alias":         "Note",
		"Note#Heading":       "Note",
		"Note#Heading|alias": "Note",
		"pic.png|300":        "pic.png",
		"#Heading":           "#Heading",
	} {
		if got := LinkTarget(ref); got != want {
			t.Fatalf("LinkTarget(%q): expected %q, got %q", ref, want, got)
		}
	}
}

func TestRenamedImageName(t *testing.T) {
	cases := []struct {
		seq  int
		ref  string
		want string
	}{
		{1, "a.png", "image01.png"},
		{2, "b.jpeg", "image02.jpeg"},
		{3, "noext", "image03.png"},
		{12, "dir.v2/pic", "image12.png"},
		{100, "c.gif", "image100.gif"},
		{4, "shot#1.jpg", "image04.jpg"},
	}
	for _, tc := range cases {
		if got := RenamedImageName(tc.seq, tc.ref); got != tc.want {
			t.Fatalf("RenamedImageName(%d, %q): expected %q, got %q", tc.seq, tc.ref, tc.want, got)
		}
	}
}

func TestParseLinkStyle(t *testing.T) {
	if s, err := ParseLinkStyle(""); err != nil || s != LinkStyleRelative {
		t.Fatalf("expected empty style to default to relative, got %q (%v)", s, err)
	}
	if s, err := ParseLinkStyle(" Root "); err != nil || s != LinkStyleRoot {
		t.Fatalf("expected root style, got %q (%v)", s, err)
	}
	if _, err := ParseLinkStyle("absolute"); err == nil {
		t.Fatalf("expected unknown style to fail")
	}
	if got := LinkStyleRoot.ImageLink("linked-images", "image01.png"); got != "/linked-images/image01.png" {
		t.Fatalf("unexpected root link %q", got)
	}
	if got := LinkStyleRelative.ImageLink("images", "image01.png"); got != "./images/image01.png" {
		t.Fatalf("unexpected relative link %q", got)
	}
}

func TestExportContextVisit(t *testing.T) {
	ec := NewExportContext("/out", Choices{Rename: true})
	if !ec.Visit("A.md") {
		t.Fatalf("expected first visit to be new")
	}
	if ec.Visit("A.md") {
		t.Fatalf("expected second visit to be a no-op")
	}
	if len(ec.Visited) != 1 {
		t.Fatalf("expected one visited note, got %v", ec.Visited)
	}
}

func TestStaticPrompterDropsCompatChoicesForSimpleVariant(t *testing.T) {
	p := StaticPrompter{Rename: true, InsertStyle: true, InsertLineBreaks: true}

	got, err := p.Prompt(context.Background(), PromptRequest{Compat: false})
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if got != (Choices{Rename: true}) {
		t.Fatalf("expected rename only, got %+v", got)
	}
	got, _ = p.Prompt(context.Background(), PromptRequest{Compat: true})
	if got != (Choices{Rename: true, InsertStyle: true, InsertLineBreaks: true}) {
		t.Fatalf("expected all choices, got %+v", got)
	}
}

func TestFileDir(t *testing.T) {
	if d := (File{Path: "a/b/c.md"}).Dir(); d != "a/b" {
		t.Fatalf("unexpected dir %q", d)
	}
	if d := (File{Path: "c.md"}).Dir(); d != "" {
		t.Fatalf("expected root dir, got %q", d)
	}
}

func TestLinkSetImageTarget(t *testing.T) {
	links := LinkSet{WikiImages: map[string]struct{}{"pic.png|300": {}, "a#b.png": {}}}

	if got := links.ImageTarget("pic.png|300"); got != "pic.png" {
		t.Fatalf("expected wiki alias to be stripped, got %q", got)
	}
	if got := links.ImageTarget("a#b.png"); got != "a" {
		t.Fatalf("expected wiki heading to be stripped, got %q", got)
	}
	if got := links.ImageTarget("shot#1.png"); got != "shot#1.png" {
		t.Fatalf("expected standard embed target to stay whole, got %q", got)
	}
}
