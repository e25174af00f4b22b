package relationaldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	_ "github.com/lib/pq"  // PostgreSQL driver
	_ "modernc.org/sqlite" // SQLite driver
)

// DefaultLimit is the page size used when a query sets none.
const DefaultLimit = 200

// History is the SQL-backed Repository.
type History struct {
	mu      sync.RWMutex
	db      *sql.DB
	config  *Config
	dialect dialect
}

var _ Repository = (*History)(nil)

// Open connects to the configured database and creates the schema.
func Open(ctx context.Context, config *Config) (*History, error) {
	if config == nil {
		config = NewConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, NewConfigurationError("open", "invalid configuration", err)
	}
	connStr, err := config.BuildConnectionString()
	if err != nil {
		return nil, NewConfigurationError("open", "failed to build connection string", err)
	}

	db, err := sql.Open(config.Driver, connStr)
	if err != nil {
		return nil, NewConnectionError("open", "failed to open database connection", err)
	}
	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)

	h := &History{db: db, config: config, dialect: dialects[config.Driver]}

	ctx, cancel := context.WithTimeout(ctx, config.DefaultTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, NewConnectionError("open", "failed to ping database", err)
	}
	for _, stmt := range h.dialect.schema() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, NewSchemaError("open", "failed to initialize schema", err)
		}
	}
	return h, nil
}

// Close closes the database connection
func (h *History) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.db == nil {
		return nil
	}
	err := h.db.Close()
	h.db = nil
	if err != nil {
		return NewConnectionError("close", "failed to close database connection", err)
	}
	return nil
}

// SaveTransaction inserts rec, assigning it an ID when it has none.
func (h *History) SaveTransaction(ctx context.Context, rec *TransactionRecord) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.db == nil {
		return ErrDatabaseClosed
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	var delivered sql.NullInt64
	if rec.Delivered != nil {
		if uint64(*rec.Delivered) > math.MaxInt64 {
			return NewQueryError("save_transaction", "delivered amount out of range", nil)
		}
		delivered = sql.NullInt64{Int64: int64(*rec.Delivered), Valid: true}
	}

	ctx, cancel := context.WithTimeout(ctx, h.config.DefaultTimeout)
	defer cancel()

	_, err := h.db.ExecContext(ctx, h.dialect.rebind(`
		INSERT INTO transactions
			(id, hash, account, sequence, tx_type, result, subject, delivered, close_time, memo, raw)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		rec.ID.String(),
		rec.Hash.Hex(),
		rec.Account.Hex(),
		int64(rec.Sequence),
		rec.Type,
		rec.Result,
		rec.Subject.Hex(),
		delivered,
		rec.CloseTime.UnixMilli(),
		rec.Memo,
		string(rec.Raw),
	)
	if err != nil {
		return NewQueryError("save_transaction", "failed to insert transaction", err)
	}
	return nil
}

const selectColumns = `SELECT id, hash, account, sequence, tx_type, result, subject, delivered, close_time, memo, raw FROM transactions`

// GetTransaction returns the record with the given hash
func (h *History) GetTransaction(ctx context.Context, hash common.Hash) (*TransactionRecord, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.db == nil {
		return nil, ErrDatabaseClosed
	}

	ctx, cancel := context.WithTimeout(ctx, h.config.DefaultTimeout)
	defer cancel()

	row := h.db.QueryRowContext(ctx, h.dialect.rebind(selectColumns+` WHERE hash = ?`), hash.Hex())
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, NewQueryError("get_transaction", "failed to read transaction", err)
	}
	return rec, nil
}

// History returns the records involving q.Address, oldest first.
func (h *History) History(ctx context.Context, q HistoryQuery) ([]TransactionRecord, error) {
	if q.Limit < 0 || q.Offset < 0 {
		return nil, ErrInvalidLimit
	}
	if q.Limit == 0 {
		q.Limit = DefaultLimit
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.db == nil {
		return nil, ErrDatabaseClosed
	}

	ctx, cancel := context.WithTimeout(ctx, h.config.DefaultTimeout)
	defer cancel()

	addr := q.Address.Hex()
	rows, err := h.db.QueryContext(ctx, h.dialect.rebind(selectColumns+`
		WHERE account = ? OR subject = ?
		ORDER BY seq
		LIMIT ? OFFSET ?`), addr, addr, q.Limit, q.Offset)
	if err != nil {
		return nil, NewQueryError("history", "failed to query transactions", err)
	}
	defer rows.Close()

	var out []TransactionRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, NewQueryError("history", "failed to read transaction", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, NewQueryError("history", "failed to iterate transactions", err)
	}
	return out, nil
}

// Count returns the number of stored transactions
func (h *History) Count(ctx context.Context) (int64, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.db == nil {
		return 0, ErrDatabaseClosed
	}

	var n int64
	if err := h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n); err != nil {
		return 0, NewQueryError("count", "failed to count transactions", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*TransactionRecord, error) {
	var (
		id, hash, account, subject, raw string
		sequence, closeTime             int64
		delivered                       sql.NullInt64
		rec                             TransactionRecord
	)
	err := s.Scan(&id, &hash, &account, &sequence, &rec.Type, &rec.Result,
		&subject, &delivered, &closeTime, &rec.Memo, &raw)
	if err != nil {
		return nil, err
	}

	rec.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("row id %q: %w", id, err)
	}
	rec.Hash = common.HexToHash(hash)
	rec.Account = common.HexToAddress(account)
	rec.Subject = common.HexToAddress(subject)
	rec.Sequence = uint64(sequence)
	if delivered.Valid {
		a := amount.Amount(delivered.Int64)
		rec.Delivered = &a
	}
	rec.CloseTime = time.UnixMilli(closeTime).UTC()
	rec.Raw = []byte(raw)
	return &rec, nil
}
