package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	"github.com/wadjakorntonsri/go-smartlink/pkg/core/domain"
	_ "modernc.org/sqlite" // Local SQLite driver
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbURL string) (*SQLiteRepository, error) {
	driverName := "sqlite"
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &SQLiteRepository{db: db}, nil
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS links (
		id TEXT PRIMARY KEY,
		content_type TEXT NOT NULL,
		target_content TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		expires_at DATETIME,
		password TEXT,
		scan_count INTEGER DEFAULT 0,
		scan_limit INTEGER DEFAULT 0,
		branding JSON,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		deleted_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS scans (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		link_id TEXT NOT NULL,
		user_agent TEXT,
		referer TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(link_id) REFERENCES links(id)
	);
	CREATE INDEX IF NOT EXISTS idx_scans_link_id ON scans(link_id);
	`
	_, err := db.Exec(query)
	return err
}

const linkColumns = `id, content_type, target_content, status, expires_at, password,
		scan_count, scan_limit, branding, created_at, updated_at`

func (r *SQLiteRepository) Create(ctx context.Context, record *domain.LinkRecord) error {
	query := `INSERT INTO links (` + linkColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	brandingJSON, err := marshalBranding(record.Branding)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		record.ID, record.ContentType, record.TargetContent, record.Status,
		nullableTime(record.ExpiresAt), nullableString(record.Password),
		record.ScanCount, record.ScanLimit, brandingJSON,
		record.CreatedAt, record.UpdatedAt,
	)
	return err
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*domain.LinkRecord, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE id = ? AND deleted_at IS NULL`
	return scanLink(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteRepository) Update(ctx context.Context, record *domain.LinkRecord) error {
	query := `UPDATE links SET content_type = ?, target_content = ?, status = ?, expires_at = ?,
			  password = ?, scan_limit = ?, branding = ?, updated_at = ? WHERE id = ?`

	brandingJSON, err := marshalBranding(record.Branding)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		record.ContentType, record.TargetContent, record.Status,
		nullableTime(record.ExpiresAt), nullableString(record.Password),
		record.ScanLimit, brandingJSON, record.UpdatedAt, record.ID,
	)
	return err
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE links SET deleted_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, time.Now(), id)
	return err
}

func (r *SQLiteRepository) List(ctx context.Context, limit, offset int) ([]domain.LinkRecord, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE deleted_at IS NULL
			  ORDER BY created_at DESC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLinks(rows)
}

func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM links WHERE deleted_at IS NULL`).Scan(&count)
	return count, err
}

func (r *SQLiteRepository) Dump(ctx context.Context) ([]domain.LinkRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+linkColumns+` FROM links`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLinks(rows)
}

// RecordScan is the authoritative quota and lifecycle check: it re-reads the
// record inside a transaction, rejects when the record has lapsed or the
// quota is consumed, and otherwise increments the counter and stores the
// scan row atomically.
func (r *SQLiteRepository) RecordScan(ctx context.Context, id string, scan *domain.Scan) (domain.ScanOutcome, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.ScanFailed, err
	}
	defer tx.Rollback()

	var (
		status    string
		expiresAt sql.NullTime
		scanCount int64
		scanLimit int64
	)
	err = tx.QueryRowContext(ctx,
		`SELECT status, expires_at, scan_count, scan_limit FROM links WHERE id = ? AND deleted_at IS NULL`,
		id,
	).Scan(&status, &expiresAt, &scanCount, &scanLimit)
	if err == sql.ErrNoRows {
		return domain.ScanFailed, domain.ErrLinkNotFound
	}
	if err != nil {
		return domain.ScanFailed, err
	}

	switch {
	case expiresAt.Valid && expiresAt.Time.Before(time.Now()):
		return domain.ScanRejectedExpired, nil
	case status == string(domain.StatusInactive):
		return domain.ScanRejectedInactive, nil
	case scanLimit > 0 && scanCount >= scanLimit:
		return domain.ScanRejectedLimitReached, nil
	}

	if _, err := tx.ExecContext(ctx, `UPDATE links SET scan_count = scan_count + 1 WHERE id = ?`, id); err != nil {
		return domain.ScanFailed, err
	}

	userAgent, referer := "", ""
	if scan != nil {
		userAgent, referer = scan.UserAgent, scan.Referer
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO scans (link_id, user_agent, referer, created_at) VALUES (?, ?, ?, ?)`,
		id, userAgent, referer, time.Now(),
	); err != nil {
		return domain.ScanFailed, err
	}

	if err := tx.Commit(); err != nil {
		return domain.ScanFailed, err
	}
	return domain.ScanRecorded, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLink(row rowScanner) (*domain.LinkRecord, error) {
	var (
		record       domain.LinkRecord
		expiresAt    sql.NullTime
		password     sql.NullString
		brandingJSON []byte
	)
	err := row.Scan(
		&record.ID, &record.ContentType, &record.TargetContent, &record.Status,
		&expiresAt, &password, &record.ScanCount, &record.ScanLimit,
		&brandingJSON, &record.CreatedAt, &record.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if expiresAt.Valid {
		record.ExpiresAt = &expiresAt.Time
	}
	record.Password = password.String
	if len(brandingJSON) > 0 {
		var b domain.Branding
		if json.Unmarshal(brandingJSON, &b) == nil {
			record.Branding = &b
		}
	}
	return &record, nil
}

func collectLinks(rows *sql.Rows) ([]domain.LinkRecord, error) {
	var records []domain.LinkRecord
	for rows.Next() {
		record, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func marshalBranding(b *domain.Branding) ([]byte, error) {
	if b == nil {
		return nil, nil
	}
	return json.Marshal(b)
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
