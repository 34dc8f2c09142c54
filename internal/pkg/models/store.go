package models

// Coordinate represents a geographic point in decimal degrees
type Coordinate struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"long"`
}

// StoreRecord represents a single store location loaded from the catalog cache.
// Records are immutable once loaded into a catalog snapshot.
type StoreRecord struct {
	StoreNum  string            `json:"store_num"`
	Latitude  float64           `json:"lat"`
	Longitude float64           `json:"long"`
	Zip       string            `json:"zip"`
	Address   map[string]string `json:"address,omitempty"`
}

// Coordinate returns the store's location as a Coordinate
func (s StoreRecord) Coordinate() Coordinate {
	return Coordinate{Latitude: s.Latitude, Longitude: s.Longitude}
}

// Candidate pairs a store with its coarse-distance score during ranking
type Candidate struct {
	Store    StoreRecord
	Distance float64
}
