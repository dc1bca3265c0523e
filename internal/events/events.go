package events

import "time"

const (
	StreamName   = "NUTRISCAN_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectScanScored(barcode string) string  { return "scan." + barcode + ".scored" }
func SubjectScanUnknown(barcode string) string { return "scan." + barcode + ".unknown" }

// ScanScoredEvent is emitted after every successful product analysis.
type ScanScoredEvent struct {
	Barcode     string    `json:"barcode"`
	ProductName string    `json:"product_name"`
	Score       int       `json:"score"`
	Band        string    `json:"band"`
	Concerns    int       `json:"concerns"`
	GoodPoints  int       `json:"good_points"`
	ScoredAt    time.Time `json:"scored_at"`
}

// ScanUnknownEvent is emitted when a barcode is not in the product database.
type ScanUnknownEvent struct {
	Barcode   string    `json:"barcode"`
	ScannedAt time.Time `json:"scanned_at"`
}
