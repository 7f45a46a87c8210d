package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRecordValidate(t *testing.T) {
	date := time.Date(2025, time.April, 8, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		rec     TransactionRecord
		wantErr bool
	}{
		{
			name: "valid debit",
			rec:  TransactionRecord{Date: date, RawType: "TARIK TUNAI", Debit: 100},
		},
		{
			name: "valid without movement",
			rec:  TransactionRecord{Date: date, RawType: "OPENING BALANCE"},
		},
		{
			name:    "missing date",
			rec:     TransactionRecord{RawType: "TRANSFER", Credit: 100},
			wantErr: true,
		},
		{
			name:    "missing type",
			rec:     TransactionRecord{Date: date, Credit: 100},
			wantErr: true,
		},
		{
			name:    "both sides set",
			rec:     TransactionRecord{Date: date, RawType: "X", Debit: 1, Credit: 1},
			wantErr: true,
		},
		{
			name:    "negative amount",
			rec:     TransactionRecord{Date: date, RawType: "X", Debit: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rec.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestTransactionRecordAmount(t *testing.T) {
	assert.Equal(t, float64(5), (&TransactionRecord{Debit: 5}).Amount())
	assert.Equal(t, float64(7), (&TransactionRecord{Credit: 7}).Amount())
	assert.Zero(t, (&TransactionRecord{}).Amount())
}

func TestMonthKey(t *testing.T) {
	rec := TransactionRecord{Date: time.Date(2025, time.April, 8, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "Apr 2025", rec.MonthKey())
	assert.Equal(t, "", (&TransactionRecord{}).MonthKey())
}

func TestAuditNote(t *testing.T) {
	rec := TransactionRecord{AuditNotes: []string{"first", "second"}}
	assert.Equal(t, "first; second", rec.AuditNote())
}
