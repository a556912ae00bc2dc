package opml

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Version is the OPML version written by Encode.
const Version = "1.0"

const (
	tagOPML    = "opml"
	tagHead    = "head"
	tagBody    = "body"
	tagTitle   = "title"
	tagOutline = "outline"

	attrTitle   = "title"
	attrText    = "text"
	attrType    = "type"
	attrXMLURL  = "xmlUrl"
	attrHTMLURL = "htmlUrl"
	attrVersion = "version"
)

// Decode parses an OPML document. It either returns a complete document or
// an error; partially decoded documents are never returned.
func Decode(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &FormatError{Reason: "parse xml", Err: err}
	}

	root := doc.Root()
	if root == nil || root.Tag != tagOPML {
		return nil, &FormatError{Reason: "missing opml root"}
	}

	head := root.SelectElement(tagHead)
	if head == nil {
		return nil, &FormatError{Reason: "missing head"}
	}
	body := root.SelectElement(tagBody)
	if body == nil {
		return nil, &FormatError{Reason: "missing body"}
	}

	title := head.SelectElement(tagTitle)
	if title == nil {
		return nil, &FormatError{Reason: "missing title"}
	}

	elements := body.SelectElements(tagOutline)
	if len(elements) == 0 {
		return nil, &FormatError{Reason: "missing outline"}
	}
	if len(elements) == 1 && isContainer(elements[0]) {
		elements = elements[0].SelectElements(tagOutline)
	}

	out := &Document{
		Title:    title.Text(),
		Outlines: make([]*Outline, 0, len(elements)),
	}
	for _, el := range elements {
		out.Outlines = append(out.Outlines, decodeOutline(el))
	}
	return out, nil
}

// isContainer reports whether el is the attribute-less wrapper that Encode
// places between <body> and the top-level outlines.
func isContainer(el *etree.Element) bool {
	return len(el.Attr) == 0
}

// decodeOutline converts el and its subtree. Children are converted and
// classified before the parent.
func decodeOutline(el *etree.Element) *Outline {
	o := &Outline{
		Title:   el.SelectAttrValue(attrTitle, ""),
		Text:    el.SelectAttrValue(attrText, ""),
		XMLURL:  el.SelectAttrValue(attrXMLURL, ""),
		HTMLURL: el.SelectAttrValue(attrHTMLURL, ""),
	}
	if strings.EqualFold(el.SelectAttrValue(attrType, ""), feedType) {
		o.Kind = KindFeed
	}

	children := el.SelectElements(tagOutline)
	if len(children) > 0 {
		o.Children = make([]*Outline, 0, len(children))
		for _, child := range children {
			o.Children = append(o.Children, decodeOutline(child))
		}
	}
	o.classify()
	return o
}

// Encode serializes d as an indented OPML document.
func Encode(d *Document) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("encode opml: nil document")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement(tagOPML)
	root.CreateAttr(attrVersion, Version)

	head := root.CreateElement(tagHead)
	head.CreateElement(tagTitle).SetText(d.Title)

	container := root.CreateElement(tagBody).CreateElement(tagOutline)
	for _, o := range d.Outlines {
		encodeOutline(container, o)
	}

	doc.Indent(2)
	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("encode opml: %w", err)
	}
	return data, nil
}

// encodeOutline writes o beneath parent. Empty fields are omitted.
func encodeOutline(parent *etree.Element, o *Outline) {
	el := parent.CreateElement(tagOutline)
	setAttr(el, attrTitle, o.Title)
	setAttr(el, attrText, o.Text)
	if o.Kind == KindFeed {
		el.CreateAttr(attrType, feedType)
	}
	setAttr(el, attrXMLURL, o.XMLURL)
	setAttr(el, attrHTMLURL, o.HTMLURL)

	for _, child := range o.Children {
		encodeOutline(el, child)
	}
}

func setAttr(el *etree.Element, key, value string) {
	if value != "" {
		el.CreateAttr(key, value)
	}
}
