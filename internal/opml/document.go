package opml

// Document is a decoded OPML file: a title and its top-level outlines.
type Document struct {
	Title    string
	Outlines []*Outline
}

// NewDocument returns an empty document with the given title.
func NewDocument(title string) *Document {
	return &Document{Title: title}
}

// AddOutline appends a top-level outline unless one with the same Text exists.
func (d *Document) AddOutline(o *Outline) error {
	if hasText(d.Outlines, o.Text) {
		return &DuplicateOutlineError{Name: o.Text}
	}
	d.Outlines = append(d.Outlines, o)
	return nil
}
