package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

func TestExtensions(t *testing.T) {
	normaliser := New()
	assert.Equal(t, []string{".md", ".markdown"}, normaliser.Extensions())
}

func TestFileType(t *testing.T) {
	normaliser := New()
	assert.Equal(t, domain.FileTypeMarkdown, normaliser.FileType())
}

func TestNormalise_NilFile(t *testing.T) {
	normaliser := New()

	content, err := normaliser.Normalise(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, content)
}

func TestNormalise_StripsFormatting(t *testing.T) {
	normaliser := New()

	input := `# Project Overview

This is **bold** and this is __also bold__.

- First item
- Second item

1. Numbered item

> A quoted line

Check the [docs](https://example.com) for details.

![diagram](images/diagram.png)
`

	content, err := normaliser.Normalise(context.Background(), &domain.RawFile{
		Filename: "readme.md",
		Data:     []byte(input),
	})
	require.NoError(t, err)

	assert.Contains(t, content, "Project Overview")
	assert.Contains(t, content, "This is bold")
	assert.Contains(t, content, "First item")
	assert.Contains(t, content, "Numbered item")
	assert.Contains(t, content, "A quoted line")
	assert.Contains(t, content, "Check the docs for details.")
	assert.NotContains(t, content, "#")
	assert.NotContains(t, content, "**")
	assert.NotContains(t, content, "https://example.com")
	assert.NotContains(t, content, "diagram.png")
}

func TestNormalise_KeepsCodeContent(t *testing.T) {
	normaliser := New()

	input := "Intro text\n\n```\nfunc main() {}\n```\n"

	content, err := normaliser.Normalise(context.Background(), &domain.RawFile{
		Filename: "code.md",
		Data:     []byte(input),
	})
	require.NoError(t, err)

	assert.Contains(t, content, "func main() {}")
	assert.NotContains(t, content, "```")
}

func TestNormalise_InvalidUTF8(t *testing.T) {
	normaliser := New()

	content, err := normaliser.Normalise(context.Background(), &domain.RawFile{
		Filename: "bad.md",
		Data:     []byte{0xff, 0xfe},
	})

	assert.ErrorIs(t, err, domain.ErrParseFailure)
	assert.Empty(t, content)
}
