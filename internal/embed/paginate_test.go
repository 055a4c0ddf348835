package embed

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"
)

func fields(n, valueLen int) []Field {
	out := make([]Field, n)
	for i := range out {
		out[i] = Field{Name: fmt.Sprintf("f%03d", i), Value: strings.Repeat("v", valueLen)}
	}
	return out
}

func assertCompliant(t *testing.T, pages []Page) {
	t.Helper()
	if len(pages) == 0 {
		t.Fatal("Paginate() returned no pages")
	}
	if len(pages) > MaxPages {
		t.Errorf("got %d pages, cap is %d", len(pages), MaxPages)
	}
	for i, p := range pages {
		if l := p.Length(); l > TotalLimit {
			t.Errorf("page %d length = %d, exceeds %d", i, l, TotalLimit)
		}
		if c := len(p.Fields); c > FieldCountLimit {
			t.Errorf("page %d has %d fields, exceeds %d", i, c, FieldCountLimit)
		}
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name           string
		doc            Document
		expectedPages  int
		expectedCounts []int
	}{
		{
			name:           "empty document still yields a page",
			doc:            Document{},
			expectedPages:  1,
			expectedCounts: []int{0},
		},
		{
			name:           "frame only",
			doc:            Document{Author: "Didn't find anything 😶", Colour: ColourRed},
			expectedPages:  1,
			expectedCounts: []int{0},
		},
		{
			name:           "small document fits one page",
			doc:            Document{Title: "t", Fields: fields(3, 10)},
			expectedPages:  1,
			expectedCounts: []int{3},
		},
		{
			name:           "field count overflow",
			doc:            Document{Fields: fields(30, 10)},
			expectedPages:  2,
			expectedCounts: []int{25, 5},
		},
		{
			name:           "lone overflow field takes a neighbour along",
			doc:            Document{Fields: fields(26, 10)},
			expectedPages:  2,
			expectedCounts: []int{24, 2},
		},
		{
			name:           "total length overflow",
			doc:            Document{Fields: fields(12, 1000)},
			expectedPages:  3,
			expectedCounts: []int{5, 5, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages := Paginate(tt.doc)
			assertCompliant(t, pages)

			if len(pages) != tt.expectedPages {
				t.Fatalf("got %d pages, want %d", len(pages), tt.expectedPages)
			}
			for i, p := range pages {
				if len(p.Fields) != tt.expectedCounts[i] {
					t.Errorf("page %d has %d fields, want %d", i, len(p.Fields), tt.expectedCounts[i])
				}
			}
		})
	}
}

func TestPaginateContinuationPages(t *testing.T) {
	doc := Document{Title: "Found 40 players!", Footer: "Slap slap slap", Colour: ColourBlue, Fields: fields(40, 300)}

	pages := Paginate(doc)
	assertCompliant(t, pages)

	if pages[0].Title != doc.Title || pages[0].Footer != doc.Footer {
		t.Errorf("first page lost its frame: %+v", pages[0].Document)
	}
	for i, p := range pages[1:] {
		want := fmt.Sprintf("Page %d", i+2)
		if p.Title != want {
			t.Errorf("continuation title = %q, want %q", p.Title, want)
		}
		if p.Colour != doc.Colour {
			t.Errorf("continuation colour = %x, want %x", p.Colour, doc.Colour)
		}
		if p.Description != "" || p.Footer != "" {
			t.Errorf("continuation page should have an empty description and footer")
		}
	}
}

func TestPaginateConservesFields(t *testing.T) {
	doc := Document{Title: "x", Fields: fields(60, 200)}

	pages := Paginate(doc)
	assertCompliant(t, pages)

	var names []string
	chars := 0
	for _, p := range pages {
		for _, f := range p.Fields {
			names = append(names, f.Name)
			chars += utf8.RuneCountInString(f.Name) + utf8.RuneCountInString(f.Value)
		}
	}
	if len(names) != len(doc.Fields) {
		t.Fatalf("placed %d fields, want %d", len(names), len(doc.Fields))
	}
	for i, n := range names {
		if n != doc.Fields[i].Name {
			t.Errorf("field order broken at %d: %q, want %q", i, n, doc.Fields[i].Name)
		}
	}
	want := doc.Length() - utf8.RuneCountInString(doc.Title)
	if chars != want {
		t.Errorf("field characters = %d, want %d", chars, want)
	}
}

func TestPaginateDropsAfterPageCap(t *testing.T) {
	// Five 1000-character fields fill a page, so ten pages hold fifty.
	doc := Document{Fields: fields(300, 1000)}

	pages, dropped := paginate(doc)
	assertCompliant(t, pages)

	if len(pages) != MaxPages {
		t.Fatalf("got %d pages, want %d", len(pages), MaxPages)
	}
	placed := 0
	for _, p := range pages {
		placed += len(p.Fields)
	}
	if placed != 50 || dropped != 250 {
		t.Errorf("placed=%d dropped=%d, want 50 and 250", placed, dropped)
	}
}

func TestPaginateOversizedSingleField(t *testing.T) {
	doc := Document{Fields: []Field{{Name: "huge", Value: strings.Repeat("x", 7000)}}}

	pages := Paginate(doc)
	assertCompliant(t, pages)

	if len(pages) != 1 || len(pages[0].Fields) != 1 {
		t.Fatalf("expected the field to land on one page, got %d pages", len(pages))
	}
	if got := utf8.RuneCountInString(pages[0].Fields[0].Value); got > FieldValueLimit {
		t.Errorf("value length = %d, exceeds %d", got, FieldValueLimit)
	}
}

func TestPaginateOversizedFrame(t *testing.T) {
	doc := Document{
		Title:       strings.Repeat("t", TitleLimit),
		Description: strings.Repeat("d", DescriptionLimit),
		Footer:      strings.Repeat("f", FooterTextLimit),
		Fields:      fields(2, 50),
	}

	pages := Paginate(doc)
	assertCompliant(t, pages)

	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if len(pages[1].Fields) != 2 {
		t.Errorf("fields should move to the continuation page, got %d", len(pages[1].Fields))
	}
}
