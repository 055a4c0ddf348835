package embed

import (
	"fmt"
	"slices"
)

// Page is a closed document that satisfies every limit.
type Page struct {
	Number int `json:"number"`
	Document
}

// Paginate splits doc into at most MaxPages pages. Overflow fields move, in
// order, onto "Page N" continuation pages; a continuation never starts with a
// single orphan field when the previous page can spare another one. Fields
// that still do not fit after MaxPages pages are dropped. The result always
// holds at least one page.
func Paginate(doc Document) []Page {
	pages, _ := paginate(doc)
	return pages
}

// Split is Paginate that also reports how many fields the page cap dropped.
func Split(doc Document) (pages []Page, dropped int) {
	return paginate(doc)
}

func paginate(doc Document) ([]Page, int) {
	current := normalise(doc)
	pages := make([]Page, 0, 1)
	dropped := 0

	for n := 1; ; n++ {
		var carried []Field
		for len(current.Fields) > 0 && (current.Length() > TotalLimit ||
			len(current.Fields) > FieldCountLimit ||
			len(carried) == 1) {
			last := len(current.Fields) - 1
			carried = append(carried, current.Fields[last])
			current.Fields = current.Fields[:last]
		}
		if len(current.Fields) == 0 {
			trimFrame(&current)
		}

		if current.Length() > 0 {
			pages = append(pages, Page{Number: n, Document: current})
		}

		if len(carried) == 0 {
			break
		}
		if n == MaxPages {
			dropped = len(carried)
			break
		}

		slices.Reverse(carried)
		current = Document{
			Title:  fmt.Sprintf("Page %d", n+1),
			Colour: doc.Colour,
			Fields: carried,
		}
	}

	if len(pages) == 0 {
		pages = append(pages, Page{Number: 1, Document: current})
	}
	return pages, dropped
}

// normalise copies doc with every part clamped to its own limit.
func normalise(doc Document) Document {
	out := Document{
		Title:       Truncate(doc.Title, TitleLimit, Ellipsis),
		Author:      Truncate(doc.Author, AuthorNameLimit, Ellipsis),
		Description: Truncate(doc.Description, DescriptionLimit, Ellipsis),
		Footer:      Truncate(doc.Footer, FooterTextLimit, Ellipsis),
		Colour:      doc.Colour,
		Fields:      make([]Field, 0, len(doc.Fields)),
	}
	for _, f := range doc.Fields {
		out.Fields = append(out.Fields, clampField(f))
	}
	return out
}

// trimFrame shortens the description, then the footer, until a page without
// fields fits TotalLimit.
func trimFrame(d *Document) {
	if excess := d.Length() - TotalLimit; excess > 0 {
		d.Description = Truncate(d.Description, max(runes(d.Description)-excess, 0), Ellipsis)
	}
	if excess := d.Length() - TotalLimit; excess > 0 {
		d.Footer = Truncate(d.Footer, max(runes(d.Footer)-excess, 0), Ellipsis)
	}
}
