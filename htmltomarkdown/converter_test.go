package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/contactx"
	"github.com/fwojciec/contactx/html"
	"github.com/fwojciec/contactx/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements contactx.Converter at compile time.
var _ contactx.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts bold name", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p><strong>Jane Doe</strong> jane@x.com</p>`)

		require.NoError(t, err)
		assert.Equal(t, "**Jane Doe** jane@x.com", md)
	})

	t.Run("converts unordered list", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<ul><li><strong>A</strong> a@x.com</li><li><strong>B</strong> b@x.com</li></ul>`)

		require.NoError(t, err)
		assert.Contains(t, md, "- **A** a@x.com")
		assert.Contains(t, md, "- **B** b@x.com")
	})

	t.Run("converts ordered list", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<ol><li><strong>A</strong></li><li><strong>B</strong></li></ol>`)

		require.NoError(t, err)
		assert.Contains(t, md, "1. **A**")
		assert.Contains(t, md, "2. **B**")
	})

	t.Run("returns empty string for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert("   ")

		require.NoError(t, err)
		assert.Empty(t, md)
	})

	t.Run("converts rendered detail list", func(t *testing.T) {
		t.Parallel()

		d := contactx.BuildDetail([]contactx.Contact{{Name: "Jane Doe", Email: "jane@x.com"}}, contactx.DetailSimple)
		markup, err := html.NewRenderer().Render(d)
		require.NoError(t, err)

		md, err := htmltomarkdown.NewConverter().Convert(markup)

		require.NoError(t, err)
		assert.Equal(t, "**Jane Doe** jane@x.com", md)
	})
}
