package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRenderer struct {
	content string
	width   int
}

func (r *recordingRenderer) Render(content string, width int) (string, error) {
	r.content = content
	r.width = width
	return content, nil
}

func TestRenderMarkdown_ClampsWidthAndKeepsBreaks(t *testing.T) {
	r := &recordingRenderer{}

	_, err := RenderMarkdown("SUCCESS:\nline", 5, r)

	require.NoError(t, err)
	assert.Equal(t, 20, r.width)
	assert.Equal(t, "SUCCESS:  \nline", r.content)
}

func TestGlamourRenderer(t *testing.T) {
	g := NewGlamourRendererWithStyle("notty")

	out, err := g.Render("**bold** text", 40)

	require.NoError(t, err)
	assert.Contains(t, out, "bold")
	assert.Contains(t, out, "text")

	_, err = g.Render("again", 40)
	require.NoError(t, err)
	assert.Len(t, g.renderers, 1)
}
