package models

// Bin fill statuses for public collection points.
const (
	BinEmpty       = "Vazio"
	BinHalf        = "Meio Cheio"
	BinFull        = "Cheio"
	BinOverflowing = "Transbordando"
)

// CollectionPoint is a public drop-off bin in a region.
type CollectionPoint struct {
	ID               string   `json:"id" db:"id"`
	Address          string   `json:"address" db:"address"`
	Status           string   `json:"status" db:"status"`
	Type             string   `json:"type" db:"type"` // Reciclável, Orgânico or Vidro
	Region           string   `json:"region" db:"region"`
	Lat              *float64 `json:"lat,omitempty" db:"lat"`
	Lng              *float64 `json:"lng,omitempty" db:"lng"`
	PredictedLevel   string   `json:"predicted_level,omitempty" db:"predicted_level"`
	LastCollectionAt *int64   `json:"last_collection_at,omitempty" db:"last_collection_at"`
	CreatedAt        int64    `json:"created_at" db:"created_at"`
}

// CreatePointRequest is the request body for POST /api/collection-points.
// Region is stamped from the acting admin.
type CreatePointRequest struct {
	Address string   `json:"address"`
	Status  string   `json:"status"`
	Type    string   `json:"type"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// UpdatePointStatusRequest sets a point's fill status.
type UpdatePointStatusRequest struct {
	Status string `json:"status"`
}

// ValidBinStatus reports whether s is a known bin fill status.
func ValidBinStatus(s string) bool {
	switch s {
	case BinEmpty, BinHalf, BinFull, BinOverflowing:
		return true
	}
	return false
}
