package pdf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

func TestExtensions(t *testing.T) {
	normaliser := New()
	assert.Equal(t, []string{".pdf"}, normaliser.Extensions())
}

func TestFileType(t *testing.T) {
	normaliser := New()
	assert.Equal(t, domain.FileTypePDF, normaliser.FileType())
}

func TestNormalise_NilFile(t *testing.T) {
	normaliser := New()

	content, err := normaliser.Normalise(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, content)
}

func TestNormalise_NotAPDF(t *testing.T) {
	normaliser := New()

	content, err := normaliser.Normalise(context.Background(), &domain.RawFile{
		Filename: "fake.pdf",
		Data:     []byte("this is plain text, not a pdf"),
	})

	assert.ErrorIs(t, err, domain.ErrParseFailure)
	assert.Empty(t, content)
}

func TestNormalise_ErrorCarriesCause(t *testing.T) {
	normaliser := New()

	_, err := normaliser.Normalise(context.Background(), &domain.RawFile{
		Filename: "fake.pdf",
		Data:     []byte("this is plain text, not a pdf"),
	})

	// The sentinel alone is not enough to diagnose a bad upload; the
	// parser's own message must survive wrapping.
	assert.ErrorIs(t, err, domain.ErrParseFailure)
	assert.NotEqual(t, "reading pdf: "+domain.ErrParseFailure.Error(), err.Error())
}

func TestNormalise_EmptyData(t *testing.T) {
	normaliser := New()

	content, err := normaliser.Normalise(context.Background(), &domain.RawFile{
		Filename: "empty.pdf",
		Data:     nil,
	})

	assert.ErrorIs(t, err, domain.ErrParseFailure)
	assert.Empty(t, content)
}
