package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Scan is one completed product analysis: who was scanned, what it scored,
// and the display breakdown at the time of scoring. History rows are
// immutable once recorded.
type Scan struct {
	ID          uuid.UUID `json:"id"`
	Barcode     string    `json:"barcode"`
	ProductName string    `json:"product_name"`
	Brands      string    `json:"brands,omitempty"`
	Score       int       `json:"score"`
	Band        string    `json:"band"`
	GoodPoints  []string  `json:"good_points"`
	Concerns    []string  `json:"concerns"`
	Explanation string    `json:"explanation,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ScanFilter struct {
	Barcode string
	Band    string
	Limit   int
	Offset  int
}

// ScanStats aggregates the recorded history for the admin stats endpoint.
type ScanStats struct {
	TotalScans int            `json:"total_scans"`
	AvgScore   float64        `json:"avg_score"`
	BandCounts map[string]int `json:"band_counts"`
}

type Store interface {
	RecordScan(ctx context.Context, scan *Scan) error
	GetScan(ctx context.Context, id uuid.UUID) (*Scan, error)
	ListScans(ctx context.Context, filter ScanFilter) ([]*Scan, error)
	GetStats(ctx context.Context) (*ScanStats, error)

	Close() error
}
