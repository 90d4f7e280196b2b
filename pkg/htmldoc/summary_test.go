package htmldoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	html := `<html><head><title> Bob's Roofing </title><script></script></head>
<body>
  <section><img src="a.png"></section>
  <section><iframe src="https://www.google.com/maps/embed?pb=1"></iframe></section>
  <iframe src="https://youtube.com/embed/x"></iframe>
</body></html>`

	s, err := Summarize(html)
	require.NoError(t, err)
	assert.Equal(t, "Bob's Roofing", s.Title)
	assert.Equal(t, 2, s.Sections)
	assert.Equal(t, 2, s.Iframes)
	assert.Equal(t, 1, s.MapEmbeds)
	assert.Equal(t, 1, s.Images)
	assert.Equal(t, 1, s.Scripts)
}

func TestSummarizeFragment(t *testing.T) {
	s, err := Summarize("<div>no title here</div>")
	require.NoError(t, err)
	assert.Empty(t, s.Title)
	assert.Zero(t, s.MapEmbeds)
}
