// Package storage persists parsed statements so the audit and export
// commands can work across runs without re-parsing source text.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/saring-audit/saring/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements statement and transaction persistence on SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

const schema = `
CREATE TABLE IF NOT EXISTS statements (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	source_file TEXT NOT NULL,
	bank TEXT NOT NULL,
	account_number TEXT,
	holder_name TEXT,
	product_type TEXT,
	currency TEXT,
	period TEXT,
	imported_at TIMESTAMP NOT NULL,
	UNIQUE(source_file, account_number)
);

CREATE TABLE IF NOT EXISTS transactions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	statement_id INTEGER NOT NULL REFERENCES statements(id) ON DELETE CASCADE,
	date TIMESTAMP NOT NULL,
	time TEXT,
	raw_type TEXT NOT NULL,
	debit REAL NOT NULL DEFAULT 0,
	credit REAL NOT NULL DEFAULT 0,
	balance REAL,
	counterparty TEXT,
	counterparty_bank TEXT,
	counterparty_account TEXT,
	reference TEXT,
	card_number TEXT,
	channel TEXT,
	method TEXT,
	note TEXT,
	full_text TEXT,
	ewallet TEXT,
	category TEXT NOT NULL,
	flow_class TEXT NOT NULL,
	audit_flag TEXT NOT NULL,
	audit_notes TEXT
);

CREATE INDEX IF NOT EXISTS idx_transactions_statement ON transactions(statement_id);
CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
CREATE INDEX IF NOT EXISTS idx_transactions_audit ON transactions(audit_flag);
`

// NewSQLiteStore opens (creating if needed) the database at dbPath and
// runs the schema migration.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath cannot be empty")
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=1")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveStatement stores the account header and its transactions in one
// database transaction. Re-importing the same source file replaces the
// previous import.
func (s *SQLiteStore) SaveStatement(ctx context.Context, acct model.AccountInfo, records []model.TransactionRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM statements WHERE source_file = ? AND account_number = ?`,
		acct.SourceFile, acct.AccountNumber); err != nil {
		return fmt.Errorf("failed to clear previous import: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO statements (source_file, bank, account_number, holder_name, product_type, currency, period, imported_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		acct.SourceFile, acct.Bank, acct.AccountNumber, acct.HolderName,
		acct.ProductType, acct.Currency, acct.Period, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert statement: %w", err)
	}
	stmtID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read statement id: %w", err)
	}

	ins, err := tx.PrepareContext(ctx,
		`INSERT INTO transactions (statement_id, date, time, raw_type, debit, credit, balance,
			counterparty, counterparty_bank, counterparty_account, reference, card_number,
			channel, method, note, full_text, ewallet, category, flow_class, audit_flag, audit_notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = ins.Close() }()

	for i := range records {
		r := &records[i]
		var balance any
		if r.Balance != nil {
			balance = *r.Balance
		}
		if _, err := ins.ExecContext(ctx, stmtID, r.Date, r.Time, r.RawType,
			r.Debit, r.Credit, balance,
			r.Counterparty, r.CounterpartyBank, r.CounterpartyAccount,
			r.Reference, r.CardNumber, r.Channel, r.Method, r.Note,
			r.FullText, string(r.EWallet), string(r.Category),
			string(r.FlowClass), string(r.AuditFlag), r.AuditNote()); err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// ListRecords returns all stored transactions, optionally filtered by
// bank, ordered by date.
func (s *SQLiteStore) ListRecords(ctx context.Context, bank string) ([]model.TransactionRecord, error) {
	query := `
		SELECT t.date, t.time, t.raw_type, t.debit, t.credit, t.balance,
			t.counterparty, t.counterparty_bank, t.counterparty_account,
			t.reference, t.card_number, t.channel, t.method, t.note,
			t.full_text, t.ewallet, t.category, t.flow_class, t.audit_flag, t.audit_notes,
			s.source_file, s.bank, s.account_number, s.period
		FROM transactions t
		JOIN statements s ON s.id = t.statement_id`
	args := []any{}
	if bank != "" {
		query += ` WHERE s.bank = ?`
		args = append(args, bank)
	}
	query += ` ORDER BY t.date, t.id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.TransactionRecord
	for rows.Next() {
		var (
			r       model.TransactionRecord
			balance sql.NullFloat64
			ewallet string
			notes   string
		)
		if err := rows.Scan(&r.Date, &r.Time, &r.RawType, &r.Debit, &r.Credit, &balance,
			&r.Counterparty, &r.CounterpartyBank, &r.CounterpartyAccount,
			&r.Reference, &r.CardNumber, &r.Channel, &r.Method, &r.Note,
			&r.FullText, &ewallet, (*string)(&r.Category), (*string)(&r.FlowClass),
			(*string)(&r.AuditFlag), &notes,
			&r.Source.File, &r.Source.Bank, &r.Source.Account, &r.Source.Period); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if balance.Valid {
			b := balance.Float64
			r.Balance = &b
		}
		r.EWallet = model.EWalletProvider(ewallet)
		if notes != "" {
			r.AuditNotes = strings.Split(notes, "; ")
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return out, nil
}

// ListStatements returns the stored statement headers in import order.
func (s *SQLiteStore) ListStatements(ctx context.Context) ([]model.AccountInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source_file, bank, account_number, holder_name, product_type, currency, period
		FROM statements ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query statements: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.AccountInfo
	for rows.Next() {
		var a model.AccountInfo
		if err := rows.Scan(&a.SourceFile, &a.Bank, &a.AccountNumber,
			&a.HolderName, &a.ProductType, &a.Currency, &a.Period); err != nil {
			return nil, fmt.Errorf("failed to scan statement: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate statements: %w", err)
	}
	return out, nil
}
