package model

// AccountInfo holds the per-statement header metadata. It is extracted once
// per source document and shared read-only by every record derived from it.
type AccountInfo struct {
	AccountNumber string
	HolderName    string
	ProductType   string
	Currency      string
	Period        string
	Bank          string
	SourceFile    string
}

// Ref converts the account header into the provenance reference attached to
// each record.
func (a AccountInfo) Ref() SourceRef {
	return SourceRef{
		File:    a.SourceFile,
		Bank:    a.Bank,
		Account: a.AccountNumber,
		Period:  a.Period,
	}
}
