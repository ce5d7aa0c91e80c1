package model

import "time"

// Feedback represents a single feature-request style feedback item.
// Items are immutable after creation; there are no edit or delete endpoints.
type Feedback struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Category    string    `json:"category" gorm:"size:100;not null;index"`
	Status      string    `json:"status" gorm:"size:100;not null;index"`
	AuthorID    uint      `json:"author_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`

	Author User `json:"-" gorm:"foreignKey:AuthorID"`
}
