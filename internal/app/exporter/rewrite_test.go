package exporter

import (
	"reflect"
	"testing"

	"github.com/sleroq/md-export/internal/domain/note"
)

func TestAssignImageNamesRenamesSequentially(t *testing.T) {
	links := ExtractLinks("![[a.png]] ![](photos/b.jpg) ![[c]] ![[d.gif|300]] ![](a%23b.jpg)")
	names := AssignImageNames(links, true)
	want := map[string]string{
		"a.png":        "image01.png",
		"photos/b.jpg": "image02.jpg",
		"c":            "image03.png",
		"d.gif|300":    "image04.gif",
		"a#b.jpg":      "image05.jpg",
	}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
}

func TestAssignImageNamesKeepsOriginalNames(t *testing.T) {
	refs := []string{"a.png", "photos/b.jpg", "my pic.png", "shot#1.png"}
	names := AssignImageNames(note.LinkSet{Images: refs}, false)
	for _, ref := range refs {
		if names[ref] != ref {
			t.Fatalf("expected %q to keep its name, got %q", ref, names[ref])
		}
	}
	if got := AssignImageNames(note.LinkSet{Images: []string{"../escape.png"}}, false)["../escape.png"]; got != "escape.png" {
		t.Fatalf("expected escaping name to be flattened, got %q", got)
	}
	if got := AssignImageNames(ExtractLinks("![[pic.png|300]]"), false)["pic.png|300"]; got != "pic.png" {
		t.Fatalf("expected wiki alias to be dropped from the kept name, got %q", got)
	}
}

func TestRewriteImageLinksNormalizesBothSyntaxes(t *testing.T) {
	text := "A ![[pic.png]] and ![alt text](pic.png) and ![](other.png)\n"
	links := ExtractLinks(text)
	names := map[string]string{"pic.png": "image01.png"}

	got := RewriteImageLinks(text, links, names, "images", note.LinkStyleRelative)
	want := "A ![](./images/image01.png) and ![](./images/image01.png) and ![](other.png)\n"
	if got != want {
		t.Fatalf("expected:\n%q\ngot:\n%q", want, got)
	}
}

func TestRewriteImageLinksHandlesEncodedTargets(t *testing.T) {
	text := "![](my%20pic.png)\n"
	links := ExtractLinks(text)

	got := RewriteImageLinks(text, links, map[string]string{"my pic.png": "my pic.png"}, "images", note.LinkStyleRelative)
	if got != "![](./images/my%20pic.png)\n" {
		t.Fatalf("unexpected rewrite %q", got)
	}
	again := ExtractLinks(got)
	if !reflect.DeepEqual(again.Images, []string{"./images/my pic.png"}) {
		t.Fatalf("expected rewritten link to decode to the new path, got %v", again.Images)
	}
}

func TestRewriteImageLinksRootStyle(t *testing.T) {
	text := "![[pic.png]]"
	got := RewriteImageLinks(text, ExtractLinks(text), map[string]string{"pic.png": "image01.png"}, "linked-images", note.LinkStyleRoot)
	if got != "![](/linked-images/image01.png)" {
		t.Fatalf("unexpected rewrite %q", got)
	}
}

func TestRewrittenWikiEmbedRoundTrips(t *testing.T) {
	text := "intro ![[pic.png]] outro"
	links := ExtractLinks(text)
	names := AssignImageNames(links, true)

	out := RewriteImageLinks(text, links, names, "images", note.LinkStyleRelative)
	again := ExtractLinks(out)
	if !reflect.DeepEqual(again.Images, []string{"./images/image01.png"}) {
		t.Fatalf("expected re-scan to find the new path, got %v", again.Images)
	}
	if len(again.MdFiles) != 0 {
		t.Fatalf("expected no wiki links after rewrite, got %v", again.MdFiles)
	}
}
