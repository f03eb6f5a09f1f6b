package models

// HealthScore is an auto-calculated snapshot of overall vehicle condition,
// appended whenever a fuel or service log is written.
type HealthScore struct {
	ID        int64   `bson:"_id" json:"id"`
	Score     float64 `bson:"score" json:"score"`
	Comment   string  `bson:"comment" json:"comment"`
	UpdatedAt string  `bson:"updated_at" json:"updatedAt"`
}
