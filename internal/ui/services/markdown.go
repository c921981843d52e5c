package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders markdown for a terminal of the given width.
type MarkdownRenderer interface {
	Render(content string, width int) (string, error)
}

// GlamourRenderer renders through glamour, caching one renderer per width.
type GlamourRenderer struct {
	style string

	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
}

// NewGlamourRenderer creates a renderer using the dark standard style.
func NewGlamourRenderer() *GlamourRenderer {
	return NewGlamourRendererWithStyle("dark")
}

// NewGlamourRendererWithStyle creates a renderer for a glamour standard style.
func NewGlamourRendererWithStyle(style string) *GlamourRenderer {
	return &GlamourRenderer{style: style, renderers: make(map[int]*glamour.TermRenderer)}
}

func (g *GlamourRenderer) Render(content string, width int) (string, error) {
	r, err := g.renderer(width)
	if err != nil {
		return "", err
	}
	out, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func (g *GlamourRenderer) renderer(width int) (*glamour.TermRenderer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if r, ok := g.renderers[width]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(g.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	g.renderers[width] = r
	return r, nil
}

// RenderMarkdown renders content, preserving line breaks the agent uses for
// command output. Widths below 20 are clamped.
func RenderMarkdown(content string, width int, renderer MarkdownRenderer) (string, error) {
	if width < 20 {
		width = 20
	}
	// Command output arrives as plain text with single newlines.
	content = strings.ReplaceAll(content, "\n", "  \n")
	return renderer.Render(content, width)
}
