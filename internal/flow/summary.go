package flow

import (
	"fmt"
	"strings"

	"github.com/saring-audit/saring/internal/model"
)

// Narrative renders the movement summary as deterministic plain text, for
// reports and downstream consumers that cannot use styled output.
func Narrative(s model.FlowSummary, findings []Finding) string {
	var b strings.Builder

	b.WriteString("Fund movement summary\n")
	for _, hop := range s.Hops() {
		fmt.Fprintf(&b, "  %s: %d transactions totaling Rp %s\n",
			hop.Label, hop.Count, groupDigits(hop.Total))
	}

	if len(findings) == 0 {
		b.WriteString("No suspicious patterns found\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%d suspicious patterns\n", len(findings))
	for _, f := range findings {
		fmt.Fprintf(&b, "  [%s] %s %s Rp %s: %s\n",
			f.Risk, f.Date.Format("2006-01-02"), f.Type, groupDigits(f.Amount), f.Note)
	}

	return b.String()
}

func groupDigits(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
