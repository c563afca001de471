package activity

import "time"

// ActivityType represents the kind of store mutation that was logged
type ActivityType string

const (
	TypeCollectionsInitialized ActivityType = "collections_initialized"
	TypeRecordSaved            ActivityType = "record_saved"
	TypeRecordDeleted          ActivityType = "record_deleted"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	Collection   string       `json:"collection,omitempty"`
	RecordID     string       `json:"record_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	CreatedAt    time.Time    `json:"created_at"`
}
