package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saring-audit/saring/internal/model"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testAccount() model.AccountInfo {
	return model.AccountInfo{
		SourceFile:    "BNI_April.txt",
		Bank:          "BNI",
		AccountNumber: "1234567890",
		HolderName:    "INDAH ROSALIA",
		ProductType:   "TAPLUS",
		Currency:      "IDR",
		Period:        "01 April 2025 - 30 April 2025",
	}
}

func testRecords() []model.TransactionRecord {
	balance := 25000000.0
	return []model.TransactionRecord{
		{
			Date:       time.Date(2025, time.April, 3, 0, 0, 0, 0, time.UTC),
			Time:       "14:22:10",
			RawType:    "Transfer Dari Rekening Lain",
			Credit:     10000000,
			Balance:    &balance,
			Category:   model.CategoryNeedsReview,
			FlowClass:  model.FlowIncome,
			AuditFlag:  model.AuditOK,
			AuditNotes: []string{"Standard transaction"},
		},
		{
			Date:         time.Date(2025, time.April, 5, 0, 0, 0, 0, time.UTC),
			RawType:      "Transfer Ke CIMB NIAGA",
			Counterparty: "INDAH ROSALIA",
			Debit:        5000000,
			EWallet:      model.EWalletNone,
			Category:     model.CategoryNeedsReview,
			FlowClass:    model.FlowTransfer,
			AuditFlag:    model.AuditNeedsJustification,
			AuditNotes:   []string{"Large transfer (Rp 5,000,000) without description"},
		},
	}
}

func TestSaveAndListRecords(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveStatement(ctx, testAccount(), testRecords()))

	records, err := store.ListRecords(ctx, "")
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "Transfer Dari Rekening Lain", first.RawType)
	assert.Equal(t, float64(10000000), first.Credit)
	require.NotNil(t, first.Balance)
	assert.Equal(t, float64(25000000), *first.Balance)
	assert.Equal(t, model.AuditOK, first.AuditFlag)
	assert.Equal(t, []string{"Standard transaction"}, first.AuditNotes)
	assert.Equal(t, "BNI", first.Source.Bank)
	assert.Equal(t, "BNI_April.txt", first.Source.File)

	second := records[1]
	assert.Equal(t, "INDAH ROSALIA", second.Counterparty)
	assert.Nil(t, second.Balance)
	assert.Equal(t, model.AuditNeedsJustification, second.AuditFlag)
}

func TestListRecordsFilterByBank(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveStatement(ctx, testAccount(), testRecords()))

	records, err := store.ListRecords(ctx, "BNI")
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = store.ListRecords(ctx, "CIMB")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReimportReplacesPreviousImport(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveStatement(ctx, testAccount(), testRecords()))
	require.NoError(t, store.SaveStatement(ctx, testAccount(), testRecords()[:1]))

	records, err := store.ListRecords(ctx, "")
	require.NoError(t, err)
	assert.Len(t, records, 1)

	statements, err := store.ListStatements(ctx)
	require.NoError(t, err)
	assert.Len(t, statements, 1)
}

func TestListStatements(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveStatement(ctx, testAccount(), nil))

	statements, err := store.ListStatements(ctx)
	require.NoError(t, err)
	require.Len(t, statements, 1)
	assert.Equal(t, "INDAH ROSALIA", statements[0].HolderName)
	assert.Equal(t, "TAPLUS", statements[0].ProductType)
}

func TestNewSQLiteStoreEmptyPath(t *testing.T) {
	_, err := NewSQLiteStore("")
	require.Error(t, err)
}
