// Package statement implements the line-oriented statement parsing engine:
// format descriptions, the block segmenter, and the per-format field
// extractors that turn raw extracted text into transaction records.
package statement

import (
	"fmt"
	"strings"

	"github.com/saring-audit/saring/internal/common"
	"github.com/saring-audit/saring/internal/model"
)

// Block is a contiguous run of source lines believed to describe one
// transaction. The first line is always the date-anchored start line.
type Block struct {
	Lines []string
}

// First returns the start line of the block.
func (b Block) First() string {
	if len(b.Lines) == 0 {
		return ""
	}
	return b.Lines[0]
}

// Rest returns the lines following the start line. May be empty:
// single-line transactions are valid blocks.
func (b Block) Rest() []string {
	if len(b.Lines) <= 1 {
		return nil
	}
	return b.Lines[1:]
}

// Format describes one statement layout: the boilerplate to discard, how a
// transaction-start line is recognized and validated, how account headers
// are read, and how a block's primary fields are extracted. All three
// supported layouts share the same segmentation and decomposition engine;
// only these values differ.
type Format struct {
	extract     func(f *Format, b Block, acct model.AccountInfo) (*model.TransactionRecord, []string, error)
	header      func(page string) model.AccountInfo
	validStart  func(line string) bool
	Name        string
	Bank        string
	Boilerplate []string
	idPatterns  []string
}

// IsBoilerplate reports whether the line is statement furniture (headers,
// totals, disclaimers, pagination) to be discarded before segmentation.
func (f *Format) IsBoilerplate(line string) bool {
	for _, marker := range f.Boilerplate {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// IsStart reports whether the line opens a new transaction block. The date
// token must parse under the format's grammar; a line that merely looks
// date-like stays block content.
func (f *Format) IsStart(line string) bool {
	return f.validStart(line)
}

// Extract parses one block into a primary-field record plus the residual
// lines for the description decomposer. A block whose first line fails
// date or amount extraction is rejected whole.
func (f *Format) Extract(b Block, acct model.AccountInfo) (*model.TransactionRecord, []string, error) {
	if len(b.Lines) == 0 {
		return nil, nil, fmt.Errorf("%w: empty block", common.ErrMalformedBlock)
	}
	rec, residual, err := f.extract(f, b, acct)
	if err != nil {
		return nil, nil, err
	}
	if err := rec.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", common.ErrMalformedBlock, err)
	}
	return rec, residual, nil
}

// Header extracts the account metadata from the statement's first page.
func (f *Format) Header(page string) model.AccountInfo {
	info := f.header(page)
	info.Bank = f.Bank
	return info
}

var formats = map[string]*Format{
	FormatCASA.Name: FormatCASA,
	FormatBNI.Name:  FormatBNI,
	FormatSPAN.Name: FormatSPAN,
}

// Get returns the format registered under the given name.
func Get(name string) (*Format, error) {
	f, ok := formats[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", common.ErrUnknownFormat, name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names returns the registered format names in a stable order.
func Names() []string {
	return []string{FormatCASA.Name, FormatBNI.Name, FormatSPAN.Name}
}
