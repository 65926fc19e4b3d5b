package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Contest struct {
	ID                  string     `gorm:"type:uuid;primaryKey"`
	Name                string     `gorm:"size:120;uniqueIndex;not null"`
	Description         *string    `gorm:"size:2000"`
	CreatedAt           time.Time  `gorm:"index;not null"`
	SubmissionsClosedAt *time.Time `gorm:"index"`
	EndsAt              *time.Time `gorm:"index"`
	Photos              []Photo
}

func (c *Contest) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// IsClosed reports whether voting has ended at the given instant.
func (c Contest) IsClosed(now time.Time) bool {
	return c.EndsAt != nil && !now.Before(*c.EndsAt)
}

// SubmissionsOpen reports whether new photos are accepted at the given instant.
func (c Contest) SubmissionsOpen(now time.Time) bool {
	return c.SubmissionsClosedAt == nil || now.Before(*c.SubmissionsClosedAt)
}

type Photo struct {
	ID             string         `gorm:"type:uuid;primaryKey"`
	PublicID       string         `gorm:"size:255;not null"`
	SecureURL      string         `gorm:"size:1024;not null"`
	Title          *string        `gorm:"size:120"`
	SubmitterEmail *string        `gorm:"size:320"`
	SubmitterID    *string        `gorm:"type:text;index"`
	ContestID      *string        `gorm:"type:uuid;index"`
	SubmittedAt    time.Time      `gorm:"index;not null"`
	UploadInfo     datatypes.JSON `gorm:"type:jsonb"`
	Votes          []Vote
}

func (p *Photo) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
