package db

import "time"

// Vote is one voter's mark on a photo for a category within a contest.
// Rows are only ever inserted or deleted.
type Vote struct {
	ID        uint      `gorm:"primaryKey"`
	VoterID   string    `gorm:"type:text;not null;uniqueIndex:idx_votes_voter_photo_category_contest"`
	PhotoID   string    `gorm:"type:uuid;index;not null;uniqueIndex:idx_votes_voter_photo_category_contest"`
	Category  string    `gorm:"size:16;not null;uniqueIndex:idx_votes_voter_photo_category_contest"`
	ContestID string    `gorm:"type:uuid;index;not null;uniqueIndex:idx_votes_voter_photo_category_contest"`
	CreatedAt time.Time `gorm:"not null"`
}
