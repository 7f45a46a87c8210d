package classify

import (
	"strings"

	"github.com/saring-audit/saring/internal/model"
)

// Config holds the scoring constants of the ownership classifier. The
// values are heuristic and exposed so they can be tuned from configuration
// without a rebuild.
type Config struct {
	NarrativeWeight float64 `mapstructure:"narrative_weight"`
	RecipientWeight float64 `mapstructure:"recipient_weight"`
	ShapeNudge      float64 `mapstructure:"shape_nudge"`
	MinScore        float64 `mapstructure:"min_score"`
}

// DefaultConfig returns the calibrated weights.
func DefaultConfig() Config {
	return Config{
		NarrativeWeight: 2,
		RecipientWeight: 1,
		ShapeNudge:      0.5,
		MinScore:        1,
	}
}

// Categorizer scores a record against the institutional and personal
// vocabularies and picks the dominant side.
type Categorizer struct {
	cfg Config
}

func NewCategorizer(cfg Config) *Categorizer {
	return &Categorizer{cfg: cfg}
}

// Categorize returns Company when the institutional score strictly beats
// the personal score and clears the minimum threshold, Private under the
// symmetric condition, and Review otherwise. Ties and sub-threshold scores
// always land in Review.
func (c *Categorizer) Categorize(rec *model.TransactionRecord) model.CategoryLabel {
	narrative := strings.ToLower(rec.Note)
	recipient := strings.ToLower(rec.Counterparty)
	rawType := strings.ToLower(rec.RawType)

	var company, private float64

	for _, k := range companyKeywords {
		if strings.Contains(narrative, k) {
			company += c.cfg.NarrativeWeight
		}
	}
	for _, k := range privateKeywords {
		if strings.Contains(narrative, k) {
			private += c.cfg.NarrativeWeight
		}
	}
	for _, k := range companyRecipients {
		if strings.Contains(recipient, k) {
			company += c.cfg.RecipientWeight
		}
	}
	for _, k := range privateRecipients {
		if strings.Contains(recipient, k) {
			private += c.cfg.RecipientWeight
		}
	}

	if strings.Contains(rawType, "fee charge") || strings.Contains(rawType, "debit card charges") {
		company += c.cfg.ShapeNudge
	}
	if strings.Contains(rawType, "bifast") && !containsAny(narrative, companyKeywords) {
		private += c.cfg.ShapeNudge
	}
	if strings.Contains(rawType, "overbooking") && strings.Contains(recipient, "traveloka") {
		private += c.cfg.NarrativeWeight
	}

	switch {
	case company > private && company >= c.cfg.MinScore:
		return model.CategoryInstitutional
	case private > company && private >= c.cfg.MinScore:
		return model.CategoryPersonal
	default:
		return model.CategoryNeedsReview
	}
}

// FlowClassOf maps a raw type label onto the coarse movement class used by
// the lineage aggregator.
func FlowClassOf(rawType string) model.FlowClass {
	upper := strings.ToUpper(rawType)
	switch {
	case strings.Contains(upper, "TRANSFER DARI"):
		return model.FlowIncome
	case strings.Contains(upper, "TARIK"):
		return model.FlowWithdrawal
	case strings.Contains(upper, "SETOR"):
		return model.FlowDeposit
	case strings.Contains(upper, "TRANSFER"), strings.Contains(upper, "TRF"),
		strings.Contains(upper, "PEMINDAHAN"):
		return model.FlowTransfer
	default:
		return model.FlowOther
	}
}
