package goquery_test

import (
	"testing"

	"github.com/fwojciec/docqa/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextConverter_Text(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "paragraphs become lines",
			html: `<html><body><p>First paragraph.</p><p>Second <b>bold</b> paragraph.</p></body></html>`,
			want: "First paragraph.\nSecond bold paragraph.",
		},
		{
			name: "drops scripts styles and head",
			html: `<html><head><title>T</title><style>p{}</style></head><body><script>var x = 1;</script><noscript>enable js</noscript><p>Visible</p></body></html>`,
			want: "Visible",
		},
		{
			name: "list items and headings",
			html: `<h1>Title</h1><ul><li>One</li><li>Two</li></ul>`,
			want: "Title\nOne\nTwo",
		},
		{
			name: "line breaks split lines",
			html: `<p>line one<br>line two</p>`,
			want: "line one\nline two",
		},
		{
			name: "collapses whitespace",
			html: "<p>  lots   of\n\t space </p>",
			want: "lots of space",
		},
		{
			name: "inline text between blocks",
			html: `<div>intro <a href="/x">link</a> text<p>para</p>tail</div>`,
			want: "intro link text\npara\ntail",
		},
		{
			name: "empty document",
			html: ``,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := goquery.NewTextConverter().Text(tt.html)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
