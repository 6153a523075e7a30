package rawdata

import "time"

// Payload is one captured upstream response, kept for replay and
// debugging of ingestion runs.
type Payload struct {
	Source      string
	EntityType  string
	EntityKey   string
	PayloadJSON string
	PayloadHash string
	FetchedAt   time.Time
}
