package models

// CompletionState is the confirmation state of a service log entry. Entries start
// Unconfirmed and move exactly once to Pending or Done.
type CompletionState string

const (
	CompletionUnconfirmed CompletionState = "unconfirmed"
	CompletionPending     CompletionState = "pending"
	CompletionDone        CompletionState = "done"
)

// ServiceLogEntry records a scheduled service item. Odometer is the due distance:
// the service is due once the vehicle's current odometer reaches or passes it.
type ServiceLogEntry struct {
	ID         int64           `bson:"_id" json:"id"`
	Component  string          `bson:"component" json:"component" validate:"required,min=1,max=100"`
	Odometer   float64         `bson:"odometer" json:"odometer" validate:"required,gt=0"`
	Cost       float64         `bson:"cost" json:"cost" validate:"gte=0"`
	Date       string          `bson:"date" json:"date" validate:"required,datetime=2006-01-02"`
	Note       string          `bson:"note,omitempty" json:"note,omitempty"`
	Completion CompletionState `bson:"completion" json:"completion"`
}
