package embed

import (
	"fmt"
	"strings"
)

const (
	DefaultFieldName  = "Unnamed"
	DefaultFieldValue = "(Nothing more to say)"
)

// Field is a named section of a document.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Document is an open rich message. Individual parts respect their limits,
// aggregate limits only hold once it is split into pages.
type Document struct {
	Title       string  `json:"title,omitempty"`
	Author      string  `json:"author,omitempty"`
	Description string  `json:"description,omitempty"`
	Footer      string  `json:"footer,omitempty"`
	Colour      Colour  `json:"colour"`
	Fields      []Field `json:"fields,omitempty"`
}

// Length is the serialised size counted against TotalLimit.
func (d Document) Length() int {
	n := runes(d.Title) + runes(d.Author) + runes(d.Description) + runes(d.Footer)
	for _, f := range d.Fields {
		n += runes(f.Name) + runes(f.Value)
	}
	return n
}

// Builder accumulates a Document, clamping every part as it is added.
type Builder struct {
	doc Document
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) WithTitle(title string) *Builder {
	b.doc.Title = Truncate(title, TitleLimit, Ellipsis)
	return b
}

func (b *Builder) WithAuthor(name string) *Builder {
	b.doc.Author = Truncate(name, AuthorNameLimit, Ellipsis)
	return b
}

func (b *Builder) WithDescription(text string) *Builder {
	b.doc.Description = Truncate(text, DescriptionLimit, Ellipsis)
	return b
}

func (b *Builder) WithFooter(text string) *Builder {
	b.doc.Footer = Truncate(text, FooterTextLimit, Ellipsis)
	return b
}

func (b *Builder) WithColour(c Colour) *Builder {
	b.doc.Colour = c
	return b
}

// ─────────────────────────────────────────────────────────────────
// Fields
// ─────────────────────────────────────────────────────────────────

type fieldOptions struct {
	inline       bool
	defaultName  string
	defaultValue string
}

// FieldOption tweaks a single AddField call.
type FieldOption func(*fieldOptions)

func Inline() FieldOption { return func(o *fieldOptions) { o.inline = true } }

func DefaultName(name string) FieldOption {
	return func(o *fieldOptions) { o.defaultName = name }
}

func DefaultValue(value string) FieldOption {
	return func(o *fieldOptions) { o.defaultValue = value }
}

// AddField appends a field. Blank parts fall back to their defaults, then
// the name and value are truncated to the field limits.
func (b *Builder) AddField(name, value string, opts ...FieldOption) *Builder {
	o := fieldOptions{defaultName: DefaultFieldName, defaultValue: DefaultFieldValue}
	for _, opt := range opts {
		opt(&o)
	}
	b.doc.Fields = append(b.doc.Fields, clampField(Field{
		Name:   Or(name, o.defaultName),
		Value:  Or(value, o.defaultValue),
		Inline: o.inline,
	}))
	return b
}

func clampField(f Field) Field {
	f.Name = Truncate(Or(f.Name, DefaultFieldName), FieldNameLimit, Ellipsis)
	f.Value = CloseFences(Truncate(Or(f.Value, DefaultFieldValue), fieldValueBudget, Ellipsis))
	return f
}

type listOptions struct {
	separator string
	maxGroups int
}

// ListOption tweaks a single AddUnrolledList call.
type ListOption func(*listOptions)

func Separator(sep string) ListOption {
	return func(o *listOptions) { o.separator = sep }
}

// MaxGroups bounds the number of fields the list may occupy.
func MaxGroups(n int) ListOption {
	return func(o *listOptions) { o.maxGroups = n }
}

// AddUnrolledList packs values greedily into as few fields as fit, headed
// "<header>:" for a single field or "<header> (n):" otherwise. A value too
// long for a field on its own is truncated. Values left over once the group
// cap is reached are dropped. An empty list adds nothing.
func (b *Builder) AddUnrolledList(header string, values []string, opts ...ListOption) *Builder {
	o := listOptions{separator: "\n", maxGroups: FieldCountLimit}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxGroups <= 0 || o.maxGroups > FieldCountLimit {
		o.maxGroups = FieldCountLimit
	}

	batches := packValues(values, o.separator, o.maxGroups)
	for i, batch := range batches {
		name := header + ":"
		if len(batches) > 1 {
			name = fmt.Sprintf("%s (%d):", header, i+1)
		}
		b.AddField(name, batch)
	}
	return b
}

func packValues(values []string, sep string, maxGroups int) []string {
	var batches []string
	rest := values
	for len(rest) > 0 && len(batches) < maxGroups {
		var sb strings.Builder
		used, taken := 0, 0
		for _, v := range rest {
			n := runes(v) + runes(sep)
			if used+n >= fieldValueBudget {
				if taken == 0 {
					sb.WriteString(Truncate(v, fieldValueBudget, Ellipsis))
					taken = 1
				}
				break
			}
			sb.WriteString(v)
			sb.WriteString(sep)
			used += n
			taken++
		}
		batches = append(batches, strings.TrimSuffix(sb.String(), sep))
		rest = rest[taken:]
	}
	return batches
}

// FieldCount reports how many fields have been added so far.
func (b *Builder) FieldCount() int { return len(b.doc.Fields) }

// Document returns a copy of the accumulated document.
func (b *Builder) Document() Document {
	doc := b.doc
	doc.Fields = append([]Field(nil), b.doc.Fields...)
	return doc
}

// Pages splits the accumulated document into limit-compliant pages.
func (b *Builder) Pages() []Page {
	return Paginate(b.Document())
}
