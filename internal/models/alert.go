package models

const (
	AlertTypeFuel    = "Fuel"
	AlertTypeService = "Service"
)

const (
	AlertStatusUnread = "unread"
	AlertStatusRead   = "read"
)

// Alert is derived from the logs and settings, never authored directly. Fuel alerts
// get a fresh timestamp id per computation; Service alerts reuse the originating
// service log's id, which makes recomputation naturally de-duplicate.
type Alert struct {
	ID         int64           `bson:"_id" json:"id"`
	Type       string          `bson:"type" json:"type"`
	Message    string          `bson:"message" json:"message"`
	Status     string          `bson:"status" json:"status"`
	Completion CompletionState `bson:"completion,omitempty" json:"completion,omitempty"`
	Date       string          `bson:"date" json:"date"`
}
