// Package engine orchestrates the full pipeline for one statement
// document: header extraction, segmentation, per-block field extraction,
// description decomposition and both classifiers.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/saring-audit/saring/internal/classify"
	"github.com/saring-audit/saring/internal/common"
	"github.com/saring-audit/saring/internal/decompose"
	"github.com/saring-audit/saring/internal/model"
	"github.com/saring-audit/saring/internal/source"
	"github.com/saring-audit/saring/internal/statement"
)

// Result holds the outcome of processing one document.
type Result struct {
	Account model.AccountInfo
	Records []model.TransactionRecord
	Skipped int
}

// Processor runs the parsing and classification pipeline. It holds no
// per-document state and is safe to share across goroutines.
type Processor struct {
	log *slog.Logger
	dec *decompose.Decomposer
	cat *classify.Categorizer
	aud *classify.Auditor
}

// New builds a processor with the given classifier weights.
func New(log *slog.Logger, cfg classify.Config) *Processor {
	return &Processor{
		log: log,
		dec: decompose.New(),
		cat: classify.NewCategorizer(cfg),
		aud: classify.NewAuditor(),
	}
}

// Process parses and classifies every transaction in the document.
// Malformed blocks are logged and skipped; the rest of the document still
// parses. The pipeline is pure per block, so processing the same document
// twice yields identical results.
func (p *Processor) Process(ctx context.Context, doc source.Document, f *statement.Format) (*Result, error) {
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("%w: %s has no pages", common.ErrSourceUnavailable, doc.Name)
	}

	acct := f.Header(doc.Pages[0])
	acct.SourceFile = doc.Name

	res := &Result{Account: acct}

	for pageNo, page := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		blocks := statement.Segment(source.Lines(page), f)
		for _, b := range blocks {
			rec, residual, err := f.Extract(b, acct)
			if err != nil {
				res.Skipped++
				p.log.Debug("skipping malformed block",
					"file", doc.Name,
					"page", pageNo+1,
					"line", b.First(),
					"error", err)
				continue
			}

			p.dec.Decompose(rec, residual)
			rec.Category = p.cat.Categorize(rec)
			rec.FlowClass = classify.FlowClassOf(rec.RawType)
			rec.AuditFlag, rec.AuditNotes = p.aud.Audit(rec)

			res.Records = append(res.Records, *rec)
		}
	}

	p.log.Info("processed statement",
		"file", doc.Name,
		"format", f.Name,
		"transactions", len(res.Records),
		"skipped", res.Skipped)

	return res, nil
}

// ProcessFile loads an extracted-text file, detects its format when none
// is forced, and processes it.
func (p *Processor) ProcessFile(ctx context.Context, path, formatName string) (*Result, error) {
	doc, err := source.Load(path)
	if err != nil {
		return nil, err
	}

	var f *statement.Format
	if formatName != "" && formatName != "auto" {
		f, err = statement.Get(formatName)
	} else {
		var conf float64
		f, conf, err = statement.DetectFile(doc.Name, doc.Pages[0])
		if err == nil {
			p.log.Debug("detected format", "file", doc.Name, "format", f.Name, "confidence", conf)
		}
	}
	if err != nil {
		return nil, err
	}

	return p.Process(ctx, doc, f)
}
