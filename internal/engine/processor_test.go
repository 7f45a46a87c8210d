package engine

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saring-audit/saring/internal/classify"
	"github.com/saring-audit/saring/internal/common"
	"github.com/saring-audit/saring/internal/model"
	"github.com/saring-audit/saring/internal/source"
	"github.com/saring-audit/saring/internal/statement"
)

func testProcessor() *Processor {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(log, classify.DefaultConfig())
}

const spanPage = `Mutasi Transaksi (01-04-2025 s.d 30-04-2025)
Rekening Satker : BADAN PENGEMBANGAN BAHASA (9876543210)
2025-04-08 08:45:45 234164 TARIK TUNAI 100,000,000
295,739,402 100,000,000 195,739,402
2025-04-10 10:30:00 234199 TRANSFER DARI KPPN JAKARTA
195,739,402 250,000,000 445,739,402`

func TestProcessSPANDocument(t *testing.T) {
	p := testProcessor()
	doc := source.FromText("SPAN_April.txt", spanPage)

	f, err := statement.Get("span")
	require.NoError(t, err)

	res, err := p.Process(context.Background(), doc, f)
	require.NoError(t, err)

	assert.Equal(t, "BADAN PENGEMBANGAN BAHASA", res.Account.HolderName)
	assert.Equal(t, "9876543210", res.Account.AccountNumber)
	assert.Equal(t, "SPAN_April.txt", res.Account.SourceFile)
	require.Len(t, res.Records, 2)

	withdrawal := res.Records[0]
	assert.Equal(t, "TARIK TUNAI", withdrawal.RawType)
	assert.Equal(t, float64(100000000), withdrawal.Debit)
	require.NotNil(t, withdrawal.Balance)
	assert.Equal(t, float64(195739402), *withdrawal.Balance)
	assert.Equal(t, model.FlowWithdrawal, withdrawal.FlowClass)
	assert.Equal(t, model.AuditNeedsJustification, withdrawal.AuditFlag)

	deposit := res.Records[1]
	assert.Equal(t, "TRANSFER DARI", deposit.RawType)
	assert.Equal(t, float64(250000000), deposit.Credit)
	assert.Equal(t, model.FlowIncome, deposit.FlowClass)
}

func TestProcessIsIdempotent(t *testing.T) {
	p := testProcessor()
	doc := source.FromText("SPAN_April.txt", spanPage)

	f, err := statement.Get("span")
	require.NoError(t, err)

	first, err := p.Process(context.Background(), doc, f)
	require.NoError(t, err)
	second, err := p.Process(context.Background(), doc, f)
	require.NoError(t, err)

	assert.Equal(t, first.Account, second.Account)
	assert.Equal(t, first.Records, second.Records)
}

func TestProcessSkipsMalformedBlocks(t *testing.T) {
	p := testProcessor()

	// The trailing split-date line opens a block but has no continuation,
	// so its extraction fails; the rest of the page still parses.
	page := `Mutasi Transaksi (01-04-2025 s.d 30-04-2025)
2025-04-08 08:45:45 234164 TARIK TUNAI 100,000,000
295,739,402 100,000,000 195,739,402
2025- 08:45:45 234165 TARIK TUNAI`

	doc := source.FromText("span.txt", page)
	f, err := statement.Get("span")
	require.NoError(t, err)

	res, err := p.Process(context.Background(), doc, f)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "TARIK TUNAI", res.Records[0].RawType)
	assert.Equal(t, 1, res.Skipped)
}

func TestProcessEmptyDocument(t *testing.T) {
	p := testProcessor()

	f, err := statement.Get("span")
	require.NoError(t, err)

	_, err = p.Process(context.Background(), source.Document{Name: "empty.txt"}, f)
	assert.ErrorIs(t, err, common.ErrSourceUnavailable)
}

func TestProcessHonorsContext(t *testing.T) {
	p := testProcessor()
	doc := source.FromText("SPAN_April.txt", spanPage)

	f, err := statement.Get("span")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = p.Process(ctx, doc, f)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessFileDetectsFormat(t *testing.T) {
	p := testProcessor()

	dir := t.TempDir()
	path := filepath.Join(dir, "SPAN_April.txt")
	require.NoError(t, os.WriteFile(path, []byte(spanPage), 0o644))

	res, err := p.ProcessFile(context.Background(), path, "auto")
	require.NoError(t, err)
	assert.Len(t, res.Records, 2)
	assert.Equal(t, "BNI SPAN", res.Account.Bank)
}
