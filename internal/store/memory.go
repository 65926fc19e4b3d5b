package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"prized-pic/internal/db"

	"github.com/google/uuid"
)

type MemoryStore struct {
	mu         sync.Mutex
	nextVoteID uint
	now        func() time.Time
	contests   map[string]db.Contest
	photos     map[string]db.Photo
	votes      map[uint]db.Vote
	voteIndex  map[VoteKey]uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextVoteID: 1,
		now:        func() time.Time { return time.Now().UTC() },
		contests:   make(map[string]db.Contest),
		photos:     make(map[string]db.Photo),
		votes:      make(map[uint]db.Vote),
		voteIndex:  make(map[VoteKey]uint),
	}
}

func (s *MemoryStore) CreateContest(_ context.Context, contest *db.Contest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if contest.ID == "" {
		contest.ID = uuid.NewString()
	}
	if _, ok := s.contests[contest.ID]; ok {
		return fmt.Errorf("contest %s: %w", contest.ID, ErrConflict)
	}
	for _, existing := range s.contests {
		if existing.Name == contest.Name {
			return fmt.Errorf("contest %q: %w", contest.Name, ErrConflict)
		}
	}
	if contest.CreatedAt.IsZero() {
		contest.CreatedAt = s.now()
	}
	s.contests[contest.ID] = *contest
	return nil
}

func (s *MemoryStore) GetContest(_ context.Context, id string) (*db.Contest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contest, ok := s.contests[id]
	if !ok {
		return nil, fmt.Errorf("contest %s: %w", id, ErrNotFound)
	}
	return &contest, nil
}

func (s *MemoryStore) ListContests(_ context.Context, filter ContestFilter) ([]db.Contest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contests := make([]db.Contest, 0, len(s.contests))
	for _, contest := range s.contests {
		if filter.OpenAt != nil && contest.EndsAt != nil && !contest.EndsAt.After(*filter.OpenAt) {
			continue
		}
		contests = append(contests, contest)
	}
	sort.Slice(contests, func(i, j int) bool {
		if contests[i].CreatedAt.Equal(contests[j].CreatedAt) {
			return contests[i].ID > contests[j].ID
		}
		return contests[i].CreatedAt.After(contests[j].CreatedAt)
	})
	return contests, nil
}

func (s *MemoryStore) CreatePhoto(_ context.Context, photo *db.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if photo.ID == "" {
		photo.ID = uuid.NewString()
	}
	if _, ok := s.photos[photo.ID]; ok {
		return fmt.Errorf("photo %s: %w", photo.ID, ErrConflict)
	}
	if photo.SubmittedAt.IsZero() {
		photo.SubmittedAt = s.now()
	}
	s.photos[photo.ID] = *photo
	return nil
}

func (s *MemoryStore) GetPhoto(_ context.Context, id string) (*db.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	photo, ok := s.photos[id]
	if !ok {
		return nil, fmt.Errorf("photo %s: %w", id, ErrNotFound)
	}
	return &photo, nil
}

func (s *MemoryStore) ListPhotos(_ context.Context, query PhotoQuery) ([]db.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	photos := s.contestPhotosLocked(query.ContestID)
	sort.Slice(photos, func(i, j int) bool {
		if photos[i].SubmittedAt.Equal(photos[j].SubmittedAt) {
			return photos[i].ID > photos[j].ID
		}
		return photos[i].SubmittedAt.After(photos[j].SubmittedAt)
	})
	if query.Offset > 0 {
		if query.Offset >= len(photos) {
			return []db.Photo{}, nil
		}
		photos = photos[query.Offset:]
	}
	if query.Limit > 0 && len(photos) > query.Limit {
		photos = photos[:query.Limit]
	}
	return photos, nil
}

func (s *MemoryStore) CountPhotos(_ context.Context, contestID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.contestPhotosLocked(contestID))), nil
}

func (s *MemoryStore) contestPhotosLocked(contestID string) []db.Photo {
	photos := make([]db.Photo, 0)
	for _, photo := range s.photos {
		if photo.ContestID == nil || *photo.ContestID != contestID {
			continue
		}
		photos = append(photos, photo)
	}
	return photos
}

func (s *MemoryStore) FindVote(_ context.Context, key VoteKey) (*db.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.voteIndex[key]
	if !ok {
		return nil, ErrNotFound
	}
	vote := s.votes[id]
	return &vote, nil
}

func (s *MemoryStore) CreateVote(_ context.Context, vote *db.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := VoteKey{
		VoterID:   vote.VoterID,
		PhotoID:   vote.PhotoID,
		Category:  vote.Category,
		ContestID: vote.ContestID,
	}
	if _, ok := s.voteIndex[key]; ok {
		return ErrConflict
	}
	vote.ID = s.nextVoteID
	s.nextVoteID++
	if vote.CreatedAt.IsZero() {
		vote.CreatedAt = s.now()
	}
	s.votes[vote.ID] = *vote
	s.voteIndex[key] = vote.ID
	return nil
}

func (s *MemoryStore) DeleteVote(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	vote, ok := s.votes[id]
	if !ok {
		return nil
	}
	delete(s.votes, id)
	delete(s.voteIndex, VoteKey{
		VoterID:   vote.VoterID,
		PhotoID:   vote.PhotoID,
		Category:  vote.Category,
		ContestID: vote.ContestID,
	})
	return nil
}

func (s *MemoryStore) CountVotes(_ context.Context, photoIDs []string) (CategoryCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := idSet(photoIDs)
	counts := make(CategoryCounts, len(photoIDs))
	for _, vote := range s.votes {
		if _, ok := wanted[vote.PhotoID]; !ok {
			continue
		}
		if counts[vote.PhotoID] == nil {
			counts[vote.PhotoID] = make(map[string]int64)
		}
		counts[vote.PhotoID][vote.Category]++
	}
	return counts, nil
}

func (s *MemoryStore) VoterCategories(_ context.Context, voterID string, photoIDs []string) (CategoryFlags, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	flags := make(CategoryFlags)
	if voterID == "" {
		return flags, nil
	}
	wanted := idSet(photoIDs)
	for _, vote := range s.votes {
		if vote.VoterID != voterID {
			continue
		}
		if _, ok := wanted[vote.PhotoID]; !ok {
			continue
		}
		if flags[vote.PhotoID] == nil {
			flags[vote.PhotoID] = make(map[string]bool)
		}
		flags[vote.PhotoID][vote.Category] = true
	}
	return flags, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
