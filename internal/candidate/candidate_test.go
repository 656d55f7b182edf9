package candidate

import (
	"errors"
	"strings"
	"testing"
)

func TestDisplay(t *testing.T) {
	cases := []struct {
		name string
		rec  Record
		want string
	}{
		{"label and locator", Record{"Example Site", "example.com"}, "Example Site - example.com"},
		{"empty label", Record{"", "example.com"}, "example.com"},
		{"blank label", Record{"   \t ", "example.com"}, "example.com"},
		{"label trimmed", Record{"  Docs  ", "docs.example.com"}, "Docs - docs.example.com"},
		{"newline in label", Record{"Line one\nline two", "a.org"}, "Line one line two - a.org"},
		{"crlf in locator", Record{"A", "a.org/x\r\ny"}, "A - a.org/x y"},
		{"newline only label", Record{"\n", "a.org"}, "a.org"},
		{"tab in label", Record{"A\tB", "a.org"}, "A B - a.org"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Display(tc.rec); got != tc.want {
				t.Fatalf("Display(%+v) = %q, want %q", tc.rec, got, tc.want)
			}
		})
	}
}

func TestNew_IndexAligned(t *testing.T) {
	recs := []Record{
		{"Example Site", "example.com"},
		{"", "docs.example.com"},
		{"Other", "other.org"},
	}
	s := New(recs)

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	want := []string{"Example Site - example.com", "docs.example.com", "Other - other.org"}
	for i, w := range want {
		if s.Display(i) != w {
			t.Errorf("Display(%d) = %q, want %q", i, s.Display(i), w)
		}
		if s.Record(i) != recs[i] {
			t.Errorf("Record(%d) = %+v, want %+v", i, s.Record(i), recs[i])
		}
	}
}

func TestNew_CopiesInput(t *testing.T) {
	recs := []Record{{"A", "a.org"}}
	s := New(recs)
	recs[0].Locator = "changed.org"

	if s.Record(0).Locator != "a.org" {
		t.Fatalf("store should not alias the input slice, got %q", s.Record(0).Locator)
	}
}

func TestNew_NoDuplicatesMerged(t *testing.T) {
	s := New([]Record{{"A", "a.org"}, {"A", "a.org"}})
	if s.Len() != 2 {
		t.Fatalf("duplicates must be kept, got %d", s.Len())
	}
}

func TestDisplay_AlwaysSingleLine(t *testing.T) {
	s := New([]Record{{"a\nb\rc", "d\ne"}, {"x\u0085y", "z"}})
	for i := 0; i < s.Len(); i++ {
		if strings.ContainsAny(s.Display(i), "\n\r") {
			t.Fatalf("display %d contains a line break: %q", i, s.Display(i))
		}
	}
}

func TestCheck(t *testing.T) {
	if err := New(nil).Check(); !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("empty store should return ErrNoCandidates, got %v", err)
	}
	var nilStore *Store
	if err := nilStore.Check(); !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("nil store should return ErrNoCandidates, got %v", err)
	}
	if err := New([]Record{{"", "a.org"}}).Check(); err != nil {
		t.Fatalf("non-empty store should pass, got %v", err)
	}
}
