package export

import (
	"sort"

	"github.com/saring-audit/saring/internal/model"
)

// ByAuditFlag partitions records into flag buckets, keeping input order
// within each bucket.
func ByAuditFlag(records []model.TransactionRecord) map[model.AuditFlag][]model.TransactionRecord {
	out := make(map[model.AuditFlag][]model.TransactionRecord)
	for _, r := range records {
		out[r.AuditFlag] = append(out[r.AuditFlag], r)
	}
	return out
}

// ByCategory partitions records by ownership category.
func ByCategory(records []model.TransactionRecord) map[model.CategoryLabel][]model.TransactionRecord {
	out := make(map[model.CategoryLabel][]model.TransactionRecord)
	for _, r := range records {
		out[r.Category] = append(out[r.Category], r)
	}
	return out
}

// MonthGroup is one calendar month of records.
type MonthGroup struct {
	Key     string
	Records []model.TransactionRecord
}

// ByMonth partitions records by calendar month, returned in
// chronological order.
func ByMonth(records []model.TransactionRecord) []MonthGroup {
	buckets := make(map[string][]model.TransactionRecord)
	for _, r := range records {
		k := r.MonthKey()
		buckets[k] = append(buckets[k], r)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return buckets[keys[i]][0].Date.Before(buckets[keys[j]][0].Date)
	})

	out := make([]MonthGroup, 0, len(keys))
	for _, k := range keys {
		out = append(out, MonthGroup{Key: k, Records: buckets[k]})
	}
	return out
}

// Totals sums the debit and credit sides of a record set.
func Totals(records []model.TransactionRecord) (debit, credit float64) {
	for _, r := range records {
		debit += r.Debit
		credit += r.Credit
	}
	return debit, credit
}
