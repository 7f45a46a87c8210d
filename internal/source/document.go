// Package source is the boundary to the text-extraction collaborator.
// Statements arrive as plain text already extracted from PDFs, one string
// per page, with form feeds separating pages.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/saring-audit/saring/internal/common"
)

// Document holds the extracted text of one statement, page by page.
type Document struct {
	Name  string
	Pages []string
}

// Load reads an extracted-text file and splits it into pages.
// A missing or empty file means the extraction collaborator failed for this
// document; that is fatal for the document and surfaced as a distinct error,
// never silently skipped.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %s: %v", common.ErrSourceUnavailable, path, err)
	}

	doc := FromText(filepath.Base(path), string(data))
	if len(doc.Pages) == 0 {
		return Document{}, fmt.Errorf("%w: %s has no text", common.ErrSourceUnavailable, path)
	}

	return doc, nil
}

// FromText builds a document from already-loaded text. Pages are separated
// by form feeds; blank pages are dropped.
func FromText(name, text string) Document {
	var pages []string
	for _, page := range strings.Split(text, "\f") {
		if strings.TrimSpace(page) == "" {
			continue
		}
		pages = append(pages, page)
	}

	return Document{Name: name, Pages: pages}
}

// Lines splits one page into trimmed-right lines, preserving order.
func Lines(page string) []string {
	raw := strings.Split(page, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		lines = append(lines, strings.TrimRight(l, " \t\r"))
	}
	return lines
}
