// Package store persists contests, photos and votes.
//
// Two implementations exist: GormStore backed by Postgres and MemoryStore for
// local runs and tests. Both enforce the uniqueness of a vote over
// (voter, photo, category, contest) and report a duplicate insert as ErrConflict.
package store

import (
	"context"
	"errors"
	"time"

	"prized-pic/internal/db"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrConflict    = errors.New("record already exists")
	ErrUnavailable = errors.New("store unavailable")
)

// VoteKey identifies a single vote.
type VoteKey struct {
	VoterID   string
	PhotoID   string
	Category  string
	ContestID string
}

type ContestFilter struct {
	// OpenAt, when set, keeps only contests whose end is unset or after this instant.
	OpenAt *time.Time
}

type PhotoQuery struct {
	ContestID string
	Offset    int
	// Limit of zero returns every matching photo.
	Limit int
}

// CategoryCounts maps photo id to category to number of votes.
type CategoryCounts map[string]map[string]int64

// CategoryFlags maps photo id to the categories a voter has marked.
type CategoryFlags map[string]map[string]bool

type Store interface {
	CreateContest(ctx context.Context, contest *db.Contest) error
	GetContest(ctx context.Context, id string) (*db.Contest, error)
	// ListContests orders by creation time, newest first.
	ListContests(ctx context.Context, filter ContestFilter) ([]db.Contest, error)

	CreatePhoto(ctx context.Context, photo *db.Photo) error
	GetPhoto(ctx context.Context, id string) (*db.Photo, error)
	// ListPhotos orders by submission time, newest first, ties by id descending.
	ListPhotos(ctx context.Context, query PhotoQuery) ([]db.Photo, error)
	CountPhotos(ctx context.Context, contestID string) (int64, error)

	FindVote(ctx context.Context, key VoteKey) (*db.Vote, error)
	CreateVote(ctx context.Context, vote *db.Vote) error
	// DeleteVote is a no-op when the vote is already gone.
	DeleteVote(ctx context.Context, id uint) error
	CountVotes(ctx context.Context, photoIDs []string) (CategoryCounts, error)
	VoterCategories(ctx context.Context, voterID string, photoIDs []string) (CategoryFlags, error)

	Close() error
}
