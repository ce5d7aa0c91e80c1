package model

// Upvote records a user's agreement or disagreement with a feedback item.
// There is intentionally no unique index on (feedback_id, user_id): whether a
// user may vote more than once on the same item is undecided business intent,
// so repeated votes create duplicate rows.
type Upvote struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	FeedbackID uint `json:"feedback_id" gorm:"not null;index"`
	UserID     uint `json:"user_id" gorm:"not null;index"`
	Agreement  bool `json:"agreement" gorm:"not null"`

	Feedback Feedback `json:"-" gorm:"foreignKey:FeedbackID"`
	User     User     `json:"-" gorm:"foreignKey:UserID"`
}
