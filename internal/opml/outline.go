// Package opml models OPML outline trees and converts them to and from XML.
// It knows nothing about folders or subscriptions; mapping outlines onto the
// subscription model happens in the subscription use case.
package opml

// Kind classifies an outline node.
type Kind int

const (
	// KindUnset is a node with no feed marker and no children.
	KindUnset Kind = iota
	// KindFeed is a node explicitly marked with type="rss".
	KindFeed
	// KindFolder is a node that groups child outlines.
	KindFolder
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindFeed:
		return "feed"
	case KindFolder:
		return "folder"
	default:
		return "unset"
	}
}

// feedType is the outline type attribute value marking a feed.
const feedType = "rss"

// Outline is one <outline> element of an OPML document.
type Outline struct {
	Title    string
	Text     string
	Kind     Kind
	XMLURL   string
	HTMLURL  string
	Children []*Outline
}

// NewFeedOutline returns a feed node whose name and both locators are set.
func NewFeedOutline(name, url string) *Outline {
	return &Outline{
		Title:   name,
		Text:    name,
		Kind:    KindFeed,
		XMLURL:  url,
		HTMLURL: url,
	}
}

// NewFolderOutline returns an empty folder node. It stays KindUnset until a
// child is attached through AddChild.
func NewFolderOutline(name string) *Outline {
	return &Outline{Title: name, Text: name}
}

// AddChild appends child unless a sibling with the same Text exists.
func (o *Outline) AddChild(child *Outline) error {
	if hasText(o.Children, child.Text) {
		return &DuplicateOutlineError{Name: child.Text}
	}
	o.Children = append(o.Children, child)
	o.classify()
	return nil
}

// DisplayName returns the node's name. Title wins over Text when both are set.
func (o *Outline) DisplayName() (string, error) {
	if o.Title != "" {
		return o.Title, nil
	}
	if o.Text != "" {
		return o.Text, nil
	}
	return "", &MissingNameError{}
}

// Locator returns the node's URL. HTMLURL wins over XMLURL when both are set.
func (o *Outline) Locator() (string, error) {
	if o.HTMLURL != "" {
		return o.HTMLURL, nil
	}
	if o.XMLURL != "" {
		return o.XMLURL, nil
	}
	name, _ := o.DisplayName()
	return "", &MissingLocatorError{Name: name}
}

// IsFeed reports whether the node is explicitly marked as a feed.
func (o *Outline) IsFeed() bool { return o.Kind == KindFeed }

// classify promotes a node with children to a folder unless it is a feed.
// Children must already be classified.
func (o *Outline) classify() {
	if len(o.Children) > 0 && o.Kind != KindFeed {
		o.Kind = KindFolder
	}
}

func hasText(nodes []*Outline, text string) bool {
	for _, n := range nodes {
		if n.Text == text {
			return true
		}
	}
	return false
}
