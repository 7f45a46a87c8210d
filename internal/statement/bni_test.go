package statement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saring-audit/saring/internal/model"
)

func TestExtractBNI(t *testing.T) {
	acct := model.AccountInfo{Bank: "BNI", AccountNumber: "1234567890"}

	tests := []struct {
		name         string
		lines        []string
		wantDate     time.Time
		wantType     string
		wantDebit    float64
		wantCredit   float64
		wantBalance  float64
		wantTime     string
		wantResidual []string
	}{
		{
			name: "credit with indonesian month",
			lines: []string{
				"03 April 2025 Transfer Dari Rekening Lain",
				"+10,000,000 25,000,000",
				"14:22:10 WIB dari BNINIDJA",
			},
			wantDate:     time.Date(2025, time.April, 3, 0, 0, 0, 0, time.UTC),
			wantType:     "Transfer Dari Rekening Lain",
			wantCredit:   10000000,
			wantBalance:  25000000,
			wantTime:     "14:22:10",
			wantResidual: []string{"dari BNINIDJA"},
		},
		{
			name: "debit with english month abbreviation",
			lines: []string{
				"05 Apr 2025 Setor Tunai",
				"-2,500,000 22,500,000",
				"09:15:00 WIB",
			},
			wantDate:    time.Date(2025, time.April, 5, 0, 0, 0, 0, time.UTC),
			wantType:    "Setor Tunai",
			wantDebit:   2500000,
			wantBalance: 22500000,
			wantTime:    "09:15:00",
		},
		{
			name: "description line kept as residual",
			lines: []string{
				"10 Mei 2025 Transfer Ke CIMB NIAGA",
				"-50,000,000 100,000,000",
				"INDAH ROSALIA",
			},
			wantDate:     time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC),
			wantType:     "Transfer Ke CIMB NIAGA",
			wantDebit:    50000000,
			wantBalance:  100000000,
			wantResidual: []string{"INDAH ROSALIA"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, residual, err := FormatBNI.Extract(Block{Lines: tt.lines}, acct)
			require.NoError(t, err)

			assert.Equal(t, tt.wantDate, rec.Date)
			assert.Equal(t, tt.wantType, rec.RawType)
			assert.Equal(t, tt.wantDebit, rec.Debit)
			assert.Equal(t, tt.wantCredit, rec.Credit)
			require.NotNil(t, rec.Balance)
			assert.Equal(t, tt.wantBalance, *rec.Balance)
			assert.Equal(t, tt.wantTime, rec.Time)
			assert.Equal(t, tt.wantResidual, residual)
		})
	}
}

func TestBNIValidStart(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"03 April 2025 Transfer Dari Rekening Lain", true},
		{"05 Apr 2025 Setor Tunai", true},
		{"32 April 2025 Transfer", false},
		{"03 Aprilx 2025 Transfer", false},
		{"+10,000,000 25,000,000", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBNI.IsStart(tt.line), tt.line)
	}
}

func TestBNIHeader(t *testing.T) {
	page := `Laporan Mutasi Rekening
INDAH ROSALIA TAPLUS - 1234567890
Periode: 01 April 2025 - 30 April 2025`

	info := FormatBNI.Header(page)
	assert.Equal(t, "INDAH ROSALIA", info.HolderName)
	assert.Equal(t, "TAPLUS", info.ProductType)
	assert.Equal(t, "1234567890", info.AccountNumber)
	assert.Equal(t, "01 April 2025 - 30 April 2025", info.Period)
	assert.Equal(t, "BNI", info.Bank)
}
