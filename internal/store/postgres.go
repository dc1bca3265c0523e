package store

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to the database and applies the scan history
// schema. The schema is idempotent, so repeated startups are safe.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const scanColumns = `id, barcode, product_name, brands, score, band,
	good_points, concerns, explanation, created_at`

func (s *PostgresStore) RecordScan(ctx context.Context, scan *Scan) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO nutriscan_scans (barcode, product_name, brands, score, band,
			good_points, concerns, explanation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		scan.Barcode, scan.ProductName, scan.Brands, scan.Score, scan.Band,
		scan.GoodPoints, scan.Concerns, scan.Explanation,
	).Scan(&scan.ID, &scan.CreatedAt)
}

func (s *PostgresStore) GetScan(ctx context.Context, id uuid.UUID) (*Scan, error) {
	sc := &Scan{}
	err := s.pool.QueryRow(ctx, `
		SELECT `+scanColumns+`
		FROM nutriscan_scans WHERE id = $1`, id,
	).Scan(
		&sc.ID, &sc.Barcode, &sc.ProductName, &sc.Brands, &sc.Score, &sc.Band,
		&sc.GoodPoints, &sc.Concerns, &sc.Explanation, &sc.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *PostgresStore) ListScans(ctx context.Context, filter ScanFilter) ([]*Scan, error) {
	query := `SELECT ` + scanColumns + ` FROM nutriscan_scans WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Barcode != "" {
		n++
		query += fmt.Sprintf(" AND barcode = $%d", n)
		args = append(args, filter.Barcode)
	}
	if filter.Band != "" {
		n++
		query += fmt.Sprintf(" AND band = $%d", n)
		args = append(args, filter.Band)
	}

	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scans []*Scan
	for rows.Next() {
		sc := &Scan{}
		if err := rows.Scan(
			&sc.ID, &sc.Barcode, &sc.ProductName, &sc.Brands, &sc.Score, &sc.Band,
			&sc.GoodPoints, &sc.Concerns, &sc.Explanation, &sc.CreatedAt,
		); err != nil {
			return nil, err
		}
		scans = append(scans, sc)
	}
	return scans, rows.Err()
}

func (s *PostgresStore) GetStats(ctx context.Context) (*ScanStats, error) {
	stats := &ScanStats{BandCounts: make(map[string]int)}

	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(AVG(score), 0)
		FROM nutriscan_scans`,
	).Scan(&stats.TotalScans, &stats.AvgScore)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT band, COUNT(*)
		FROM nutriscan_scans GROUP BY band`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var band string
		var count int
		if err := rows.Scan(&band, &count); err != nil {
			return nil, err
		}
		stats.BandCounts[band] = count
	}
	return stats, rows.Err()
}
