package exporter

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressBarTotalGrowsWithDiscoveredNotes(t *testing.T) {
	var buf bytes.Buffer
	p := newExportProgressBar(&buf, 80)

	p.Grow(2)
	p.Advance("Home")
	if !strings.Contains(buf.String(), "1/3 Home") {
		t.Fatalf("expected first step of three, got %q", buf.String())
	}

	p.Finish("done")
	if !strings.HasSuffix(buf.String(), "3/3 done\n") {
		t.Fatalf("expected finished line, got %q", buf.String())
	}

	before := buf.Len()
	p.Close()
	if buf.Len() != before {
		t.Fatalf("expected Close after Finish to write nothing")
	}
}

func TestProgressBarAdvanceNeverPassesTotal(t *testing.T) {
	var buf bytes.Buffer
	p := newExportProgressBar(&buf, 0)

	p.Advance("a")
	p.Advance("b")
	if !strings.Contains(buf.String(), "1/1 b") {
		t.Fatalf("expected count to stay at total, got %q", buf.String())
	}
}

func TestNilProgressBarIsSilent(t *testing.T) {
	var p *exportProgressBar
	p.Grow(3)
	p.Advance("a")
	p.Finish("done")
	p.Close()
}

func TestProgressWidth(t *testing.T) {
	cases := map[int]int{0: 36, 40: 16, 90: 50, 200: 64}
	for cols, want := range cases {
		if got := progressWidth(cols); got != want {
			t.Fatalf("progressWidth(%d): expected %d, got %d", cols, want, got)
		}
	}
}
