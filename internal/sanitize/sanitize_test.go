package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText_StripsMarkup(t *testing.T) {
	got := Text(`<script>alert("x")</script>Breaking <b>news</b> about the election`)

	assert.Equal(t, "Breaking news about the election", got)
}

func TestText_UnescapesEntities(t *testing.T) {
	got := Text("Fact-check: claim &amp; counter-claim")

	assert.Equal(t, "Fact-check: claim & counter-claim", got)
}

func TestText_PlainTextUnchanged(t *testing.T) {
	got := Text("Viral post about climate change gaining traction")

	assert.Equal(t, "Viral post about climate change gaining traction", got)
}

func TestText_TrimsWhitespace(t *testing.T) {
	assert.Equal(t, "hello", Text("  <p>hello</p>  "))
}
