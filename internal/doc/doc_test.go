package doc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niekdomi/vhdl-fmt-sub000/internal/doc"
)

func TestConcat_EmptyIdentity(t *testing.T) {
	t.Parallel()

	text := doc.Text("foo")
	assert.Same(t, text, doc.Concat(doc.Empty, text))
	assert.Same(t, text, doc.Concat(text, doc.Empty))
}

func TestText_PanicsOnNewline(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { doc.Text("a\nb") })
}

func TestHardLine_NegativeClampsToZero(t *testing.T) {
	t.Parallel()

	h := doc.HardLine(-3)
	assert.Equal(t, 0, h.N())
	assert.True(t, h.HasHardLine())
}

func TestFlatWidth_PropagatesThroughConcat(t *testing.T) {
	t.Parallel()

	d := doc.Concat(doc.Text("ab"), doc.Concat(doc.SoftLine, doc.Text("cde")))
	require.False(t, d.HasHardLine())
	assert.Equal(t, 2+1+3, d.FlatWidth())
}

func TestHasHardLine_PropagatesUpThroughWrappers(t *testing.T) {
	t.Parallel()

	inner := doc.Concat(doc.Text("x"), doc.HardLine(1))
	wrapped := doc.Hang(doc.Nest(doc.Group(inner), 2))
	assert.True(t, wrapped.HasHardLine())
}

func TestTextLevel_DefaultsToUntagged(t *testing.T) {
	t.Parallel()

	assert.Equal(t, -1, doc.Text("a").Level())
	assert.Equal(t, 3, doc.TextLevel("a", 3).Level())
}
