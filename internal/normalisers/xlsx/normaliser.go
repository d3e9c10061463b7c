// Package xlsx extracts text from Excel spreadsheets.
package xlsx

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Excel spreadsheets (.xlsx).
type Normaliser struct{}

// New creates a new xlsx normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".xlsx"}
}

// FileType returns the type tag recorded on produced documents.
func (n *Normaliser) FileType() domain.FileType {
	return domain.FileTypeXLSX
}

// Normalise renders every sheet as text. Each sheet opens with a
// "Sheet: <name>" line, rows join their non-empty cells with " | ",
// and sheets without data are skipped, so cell values stay searchable
// next to their row context.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawFile) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	workbook, err := excelize.OpenReader(bytes.NewReader(raw.Data))
	if err != nil {
		return "", fmt.Errorf("reading xlsx: %v: %w", err, domain.ErrParseFailure)
	}
	defer workbook.Close()

	var sheets []string
	for _, sheetName := range workbook.GetSheetList() {
		rows, err := workbook.GetRows(sheetName)
		if err != nil {
			return "", fmt.Errorf("reading sheet %q: %v: %w", sheetName, err, domain.ErrParseFailure)
		}

		sheetData := []string{"Sheet: " + sheetName}
		for _, row := range rows {
			var cells []string
			for _, cell := range row {
				if cell != "" {
					cells = append(cells, cell)
				}
			}
			if len(cells) > 0 {
				sheetData = append(sheetData, strings.Join(cells, " | "))
			}
		}

		if len(sheetData) > 1 {
			sheets = append(sheets, strings.Join(sheetData, "\n"))
		}
	}

	return strings.Join(sheets, "\n\n"), nil
}
