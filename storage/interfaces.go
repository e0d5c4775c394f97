package storage

import "flight-agent/models"

// RawStorage stores the raw listing text scanned during a run
type RawStorage interface {
	SaveRaw(query string, listings []models.RawListing) error
}

// SearchStorage persists completed searches and their observed offers
type SearchStorage interface {
	RecordSearch(query string, result models.PipelineResult) error
	Close() error
}
