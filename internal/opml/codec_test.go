package opml

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wrappedDocument = `<opml version="1.0"><head><title>Feeds</title></head>
<body><outline><outline title="A" text="A" type="rss" xmlUrl="http://a/feed"/>
<outline title="Tech" text="Tech"><outline title="B" text="B" type="rss" xmlUrl="http://b/feed"/></outline>
</outline></body></opml>`

func TestDecode_WrappedDocument(t *testing.T) {
	doc, err := Decode([]byte(wrappedDocument))
	require.NoError(t, err)

	want := &Document{
		Title: "Feeds",
		Outlines: []*Outline{
			{Title: "A", Text: "A", Kind: KindFeed, XMLURL: "http://a/feed"},
			{
				Title: "Tech",
				Text:  "Tech",
				Kind:  KindFolder,
				Children: []*Outline{
					{Title: "B", Text: "B", Kind: KindFeed, XMLURL: "http://b/feed"},
				},
			},
		},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Fatalf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_PlainDocument(t *testing.T) {
	const src = `<?xml version="1.0"?>
<opml version="2.0">
  <head><title>Export</title><title>Ignored</title></head>
  <body>
    <outline text="Go Blog" type="RSS" xmlUrl="https://go.dev/blog/feed.atom" htmlUrl="https://go.dev/blog"/>
    <outline text="News">
      <outline text="LWN" type="rss" xmlUrl="https://lwn.net/headlines/rss"/>
    </outline>
    <outline text="Empty"/>
  </body>
</opml>`

	doc, err := Decode([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, "Export", doc.Title)
	require.Len(t, doc.Outlines, 3)
	assert.Equal(t, KindFeed, doc.Outlines[0].Kind)
	assert.Equal(t, "https://go.dev/blog", doc.Outlines[0].HTMLURL)
	assert.Equal(t, KindFolder, doc.Outlines[1].Kind)
	assert.Equal(t, KindUnset, doc.Outlines[2].Kind, "childless node must not be promoted")
}

func TestTitle_RoundTripsVerbatim(t *testing.T) {
	in := NewDocument("  My Feeds  ")
	require.NoError(t, in.AddOutline(NewFeedOutline("A", "http://a/feed")))

	data, err := Encode(in)
	require.NoError(t, err)
	out, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "  My Feeds  ", out.Title)

	again, err := Encode(out)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestDecode_FeedWithChildrenStaysFeed(t *testing.T) {
	const src = `<opml><head><title>t</title></head><body>
<outline text="A" type="rss" xmlUrl="http://a/feed"><outline text="x"/></outline>
<outline text="B" xmlUrl="http://b/feed"/>
</body></opml>`

	doc, err := Decode([]byte(src))
	require.NoError(t, err)
	require.Len(t, doc.Outlines, 2)
	assert.Equal(t, KindFeed, doc.Outlines[0].Kind)
	assert.Equal(t, KindUnset, doc.Outlines[0].Children[0].Kind)
	assert.Equal(t, KindUnset, doc.Outlines[1].Kind)
}

func TestDecode_FormatErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason string
	}{
		{name: "wrong root", input: `<rss><channel/></rss>`, reason: "missing opml root"},
		{name: "missing head", input: `<opml><body><outline text="a"/></body></opml>`, reason: "missing head"},
		{name: "missing body", input: `<opml><head><title>t</title></head></opml>`, reason: "missing body"},
		{name: "missing title", input: `<opml><head/><body><outline text="a"/></body></opml>`, reason: "missing title"},
		{name: "missing outline", input: `<opml><head><title>t</title></head><body/></opml>`, reason: "missing outline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode([]byte(tt.input))
			assert.Nil(t, doc)
			require.ErrorIs(t, err, ErrFormat)

			var formatErr *FormatError
			require.True(t, errors.As(err, &formatErr))
			assert.Equal(t, tt.reason, formatErr.Reason)
		})
	}
}

func TestDecode_EmptyInput(t *testing.T) {
	doc, err := Decode(nil)
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestDecode_MalformedXML(t *testing.T) {
	doc, err := Decode([]byte(`<opml><head><title>t</title></head><body><outline`))
	assert.Nil(t, doc)
	require.ErrorIs(t, err, ErrFormat)

	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "parse xml", formatErr.Reason)
	assert.NotNil(t, formatErr.Unwrap())
}

func TestEncode_OmitsEmptyAttributes(t *testing.T) {
	doc := &Document{
		Title: "Feeds",
		Outlines: []*Outline{
			{Text: "A", Kind: KindFeed, XMLURL: "http://a/feed"},
			{Title: "Loose", Text: "Loose"},
		},
	}

	data, err := Encode(doc)
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<opml version="1.0">`)
	assert.Contains(t, out, `<title>Feeds</title>`)
	assert.Contains(t, out, `<outline text="A" type="rss" xmlUrl="http://a/feed"/>`)
	assert.Contains(t, out, `<outline title="Loose" text="Loose"/>`)
	assert.NotContains(t, out, `title=""`)
	assert.NotContains(t, out, `htmlUrl=""`)
}

func TestEncode_NilDocument(t *testing.T) {
	_, err := Encode(nil)
	assert.Error(t, err)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tech := NewFolderOutline("Tech")
	require.NoError(t, tech.AddChild(NewFeedOutline("B", "http://b/feed")))
	require.NoError(t, tech.AddChild(NewFeedOutline("C & D", "http://c/feed?x=1&y=2")))

	want := NewDocument("My <Feeds>")
	require.NoError(t, want.AddOutline(NewFeedOutline("A", "http://a/feed")))
	require.NoError(t, want.AddOutline(tech))

	data, err := Encode(want)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDecode_EmptyDocument(t *testing.T) {
	data, err := Encode(NewDocument(""))
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "", got.Title)
	assert.Empty(t, got.Outlines)
}
