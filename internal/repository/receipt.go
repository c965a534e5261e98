package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/adepratama/receipt-extractor/constants"
	"github.com/adepratama/receipt-extractor/internal/common"
	"github.com/adepratama/receipt-extractor/internal/extract"
)

// Schema kept to the SQL subset both backends share; $N placeholders work in
// SQLite and Postgres alike. Statements run one at a time because the pgx
// driver rejects multi-statement batches.
var schemaStatements = []string{`
CREATE TABLE IF NOT EXISTS receipts (
	id             TEXT PRIMARY KEY,
	merchant_name  TEXT NOT NULL,
	receipt_type   TEXT NOT NULL,
	tx_date        TEXT NOT NULL,
	tx_date_iso    TEXT,
	tx_time        TEXT NOT NULL,
	subtotal       REAL,
	tax            REAL,
	service_charge REAL,
	total          REAL NOT NULL,
	payment_method TEXT NOT NULL,
	raw_text       TEXT NOT NULL,
	created_at     TEXT NOT NULL
)`, `
CREATE TABLE IF NOT EXISTS receipt_items (
	id         TEXT PRIMARY KEY,
	receipt_id TEXT NOT NULL REFERENCES receipts(id),
	position   INTEGER NOT NULL,
	name       TEXT NOT NULL,
	quantity   INTEGER NOT NULL,
	price      REAL NOT NULL,
	category   TEXT NOT NULL
)`, `
CREATE INDEX IF NOT EXISTS idx_receipt_items_receipt ON receipt_items(receipt_id)`,
}

// ReceiptRecord is one stored extraction result.
type ReceiptRecord struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Result    extract.Result
}

// ReceiptRepository persists extraction results.
type ReceiptRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewReceiptRepository(h *Handle, logger *slog.Logger) *ReceiptRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReceiptRepository{db: h.DB, logger: logger}
}

// Migrate creates the schema when missing.
func (r *ReceiptRepository) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return common.DatabaseError(err, "migrate schema")
		}
	}
	return nil
}

// SaveResult stores a successful extraction result and its items in one
// transaction, returning the new receipt ID.
func (r *ReceiptRepository) SaveResult(ctx context.Context, res *extract.Result) (uuid.UUID, error) {
	if res == nil || !res.Success {
		return uuid.Nil, common.NewAppError("SAVE_FAILED_RESULT", "only successful results are persisted", common.ErrInvalidInput)
	}

	id := uuid.New()
	now := time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, common.DatabaseError(err, "begin tx")
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO receipts (id, merchant_name, receipt_type, tx_date, tx_date_iso, tx_time,
			subtotal, tax, service_charge, total, payment_method, raw_text, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		id.String(), res.MerchantName, string(res.ReceiptType), res.Date, isoDate(res.Date), res.Time,
		res.Subtotal, res.Tax, res.ServiceCharge, res.Total, string(res.PaymentMethod), res.RawText,
		now.Format(time.RFC3339),
	)
	if err != nil {
		return uuid.Nil, common.DatabaseError(err, "insert receipt")
	}

	for i, it := range res.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO receipt_items (id, receipt_id, position, name, quantity, price, category)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			uuid.New().String(), id.String(), i, it.Name, it.Quantity, it.Price, string(it.Category),
		)
		if err != nil {
			return uuid.Nil, common.DatabaseError(err, "insert receipt item")
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, common.DatabaseError(err, "commit")
	}
	r.logger.Info("receipt.saved", "receipt_id", id, "items", len(res.Items))
	return id, nil
}

// GetByID loads one stored receipt with its items.
func (r *ReceiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*ReceiptRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, merchant_name, receipt_type, tx_date, tx_time,
			subtotal, tax, service_charge, total, payment_method, raw_text, created_at
		FROM receipts WHERE id = $1`, id.String())

	rec, err := scanReceipt(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewAppError("RECEIPT_NOT_FOUND", fmt.Sprintf("receipt %s", id), common.ErrNotFound)
		}
		return nil, common.DatabaseError(err, "query receipt")
	}

	if err := r.loadItems(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns stored receipts ordered by creation time, optionally bounded
// by transaction date (inclusive).
func (r *ReceiptRepository) List(ctx context.Context, from, to *time.Time) ([]*ReceiptRecord, error) {
	q := `
		SELECT id, merchant_name, receipt_type, tx_date, tx_time,
			subtotal, tax, service_charge, total, payment_method, raw_text, created_at
		FROM receipts`
	var args []any
	switch {
	case from != nil && to != nil:
		q += ` WHERE tx_date_iso >= $1 AND tx_date_iso <= $2`
		args = append(args, from.Format("2006-01-02"), to.Format("2006-01-02"))
	case from != nil:
		q += ` WHERE tx_date_iso >= $1`
		args = append(args, from.Format("2006-01-02"))
	case to != nil:
		q += ` WHERE tx_date_iso <= $1`
		args = append(args, to.Format("2006-01-02"))
	}
	q += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, common.DatabaseError(err, "query receipts")
	}
	defer rows.Close()

	var recs []*ReceiptRecord
	for rows.Next() {
		rec, err := scanReceipt(rows)
		if err != nil {
			return nil, common.DatabaseError(err, "scan receipt")
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, common.DatabaseError(err, "iterate receipts")
	}

	for _, rec := range recs {
		if err := r.loadItems(ctx, rec); err != nil {
			return nil, err
		}
	}
	return recs, nil
}

func (r *ReceiptRepository) loadItems(ctx context.Context, rec *ReceiptRecord) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, quantity, price, category
		FROM receipt_items WHERE receipt_id = $1 ORDER BY position`, rec.ID.String())
	if err != nil {
		return common.DatabaseError(err, "query items")
	}
	defer rows.Close()

	items := []extract.LineItem{}
	for rows.Next() {
		var it extract.LineItem
		var cat string
		if err := rows.Scan(&it.Name, &it.Quantity, &it.Price, &cat); err != nil {
			return common.DatabaseError(err, "scan item")
		}
		it.Category = constants.Category(cat)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return common.DatabaseError(err, "iterate items")
	}
	rec.Result.Items = items
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReceipt(row rowScanner) (*ReceiptRecord, error) {
	var (
		rec       ReceiptRecord
		idStr     string
		rtype     string
		payment   string
		createdAt string
	)
	err := row.Scan(&idStr, &rec.Result.MerchantName, &rtype, &rec.Result.Date, &rec.Result.Time,
		&rec.Result.Subtotal, &rec.Result.Tax, &rec.Result.ServiceCharge, &rec.Result.Total,
		&payment, &rec.Result.RawText, &createdAt)
	if err != nil {
		return nil, err
	}
	rec.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse receipt id %q: %w", idStr, err)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		rec.CreatedAt = t
	}
	rec.Result.Success = true
	rec.Result.ReceiptType = constants.ReceiptType(rtype)
	rec.Result.PaymentMethod = constants.PaymentMethod(payment)
	return &rec, nil
}

// isoDate converts the canonical DD/MM/YYYY date to a sortable YYYY-MM-DD
// string. Unparsable dates store NULL so they never filter incorrectly.
func isoDate(ddmmyyyy string) *string {
	t, err := time.Parse("02/01/2006", ddmmyyyy)
	if err != nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
