package statement

import (
	"fmt"
	"strings"

	"github.com/saring-audit/saring/internal/common"
)

// Detect identifies the statement format from first-page text, returning
// the format and a confidence in [0,1]. Each format carries a set of
// identification markers; the share of markers present is the score, so
// the treasury format's specific markers outscore the plain bank-name
// markers they overlap with.
func Detect(page string) (*Format, float64, error) {
	upper := strings.ToUpper(page)

	var (
		best      *Format
		bestScore float64
	)
	for _, name := range Names() {
		f := formats[name]
		matches := 0
		for _, p := range f.idPatterns {
			if strings.Contains(upper, p) {
				matches++
			}
		}
		if matches == 0 {
			continue
		}
		score := float64(matches) / float64(len(f.idPatterns))
		if score > bestScore {
			best, bestScore = f, score
		}
	}

	if best == nil {
		return nil, 0, fmt.Errorf("%w: no identification markers found", common.ErrUnknownFormat)
	}
	return best, bestScore, nil
}

// DetectFile identifies the format from first-page text, falling back to
// the filename when the page carries no markers (scanned or image-only
// sources whose extraction produced stub text).
func DetectFile(filename, page string) (*Format, float64, error) {
	if f, conf, err := Detect(page); err == nil {
		return f, conf, nil
	}

	upper := strings.ToUpper(filename)
	switch {
	case strings.Contains(upper, "SPAN"):
		return FormatSPAN, 0.8, nil
	case strings.Contains(upper, "BNI"):
		return FormatBNI, 0.8, nil
	case strings.Contains(upper, "CIMB"), strings.Contains(upper, "OCTO"), strings.Contains(upper, "CASA"):
		return FormatCASA, 0.8, nil
	}

	return nil, 0, fmt.Errorf("%w: %s", common.ErrUnknownFormat, filename)
}
