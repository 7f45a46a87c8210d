package statement

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saring-audit/saring/internal/common"
	"github.com/saring-audit/saring/internal/model"
)

func TestExtractSPANWithdrawal(t *testing.T) {
	acct := model.AccountInfo{Bank: "BNI SPAN", AccountNumber: "9876543210"}

	rec, residual, err := FormatSPAN.Extract(Block{Lines: []string{
		"2025-04-08 08:45:45 234164 TARIK TUNAI 100,000,000",
		"295,739,402 100,000,000 195,739,402",
	}}, acct)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.April, 8, 0, 0, 0, 0, time.UTC), rec.Date)
	assert.Equal(t, "08:45:45", rec.Time)
	assert.Equal(t, "234164", rec.Reference)
	assert.Equal(t, "TARIK TUNAI", rec.RawType)
	assert.Equal(t, float64(100000000), rec.Debit)
	assert.Zero(t, rec.Credit)
	require.NotNil(t, rec.Balance)
	assert.Equal(t, float64(195739402), *rec.Balance)
	assert.Equal(t, []string{"TARIK TUNAI 100,000,000"}, residual)
}

func TestExtractSPANDeposit(t *testing.T) {
	rec, _, err := FormatSPAN.Extract(Block{Lines: []string{
		"2025-04-10 10:30:00 234199 TRANSFER DARI KPPN JAKARTA",
		"195,739,402 250,000,000 445,739,402",
	}}, model.AccountInfo{Bank: "BNI SPAN"})
	require.NoError(t, err)

	assert.Equal(t, "TRANSFER DARI", rec.RawType)
	assert.Equal(t, float64(250000000), rec.Credit)
	assert.Zero(t, rec.Debit)
	require.NotNil(t, rec.Balance)
	assert.Equal(t, float64(445739402), *rec.Balance)
}

func TestExtractSPANSplitDate(t *testing.T) {
	rec, _, err := FormatSPAN.Extract(Block{Lines: []string{
		"2025- 08:45:45 234164 TARIK TUNAI",
		"04-08 TARIK TUNAI",
		"295,739,402 100,000,000 195,739,402",
	}}, model.AccountInfo{Bank: "BNI SPAN"})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.April, 8, 0, 0, 0, 0, time.UTC), rec.Date)
	assert.Equal(t, float64(100000000), rec.Debit)
}

func TestExtractSPANSplitDateWithoutContinuation(t *testing.T) {
	_, _, err := FormatSPAN.Extract(Block{Lines: []string{
		"2025- 08:45:45 234164 TARIK TUNAI",
	}}, model.AccountInfo{Bank: "BNI SPAN"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrMalformedBlock))
}

func TestSPANValidStart(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"2025-04-08 08:45:45 234164 TARIK TUNAI 100,000,000", true},
		{"2025- 08:45:45 234164 TARIK TUNAI", true},
		{"2025-13-40 08:45:45 234164 TARIK TUNAI", false},
		{"295,739,402 100,000,000 195,739,402", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSPAN.IsStart(tt.line), tt.line)
	}
}

func TestSPANHeader(t *testing.T) {
	page := `Mutasi Transaksi (01-04-2025 s.d 30-04-2025)
Rekening Satker : BADAN PENGEMBANGAN BAHASA (9876543210)
Rekening Induk : KEMENTERIAN PENDIDIKAN (1111111111)`

	info := FormatSPAN.Header(page)
	assert.Equal(t, "BADAN PENGEMBANGAN BAHASA", info.HolderName)
	assert.Equal(t, "9876543210", info.AccountNumber)
	assert.Equal(t, "01-04-2025 s.d 30-04-2025", info.Period)
	assert.Equal(t, "SATKER", info.ProductType)
	assert.Equal(t, "BNI SPAN", info.Bank)
}
