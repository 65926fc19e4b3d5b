package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"prized-pic/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store {
		return NewMemoryStore()
	})
}

// runStoreContract exercises the behavior every Store implementation must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("contests ordered newest first and filtered by end", func(t *testing.T) {
		s := newStore(t)
		ended := base.Add(time.Hour)
		later := base.Add(72 * time.Hour)
		require.NoError(t, s.CreateContest(ctx, &db.Contest{Name: "Old", CreatedAt: base}))
		require.NoError(t, s.CreateContest(ctx, &db.Contest{Name: "Ended", CreatedAt: base.Add(time.Minute), EndsAt: &ended}))
		require.NoError(t, s.CreateContest(ctx, &db.Contest{Name: "Running", CreatedAt: base.Add(2 * time.Minute), EndsAt: &later}))

		all, err := s.ListContests(ctx, ContestFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{"Running", "Ended", "Old"}, contestNames(all))

		openAt := base.Add(2 * time.Hour)
		open, err := s.ListContests(ctx, ContestFilter{OpenAt: &openAt})
		require.NoError(t, err)
		assert.Equal(t, []string{"Running", "Old"}, contestNames(open))

		atEnd := ended
		open, err = s.ListContests(ctx, ContestFilter{OpenAt: &atEnd})
		require.NoError(t, err)
		assert.Equal(t, []string{"Running", "Old"}, contestNames(open))
	})

	t.Run("missing records report not found", func(t *testing.T) {
		s := newStore(t)
		_, err := s.GetContest(ctx, "0b8e5a52-2c1f-4a43-9f6e-7b39a1c0a001")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.GetPhoto(ctx, "0b8e5a52-2c1f-4a43-9f6e-7b39a1c0a002")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.FindVote(ctx, VoteKey{VoterID: "v", PhotoID: "0b8e5a52-2c1f-4a43-9f6e-7b39a1c0a002", Category: "OVERALL", ContestID: "0b8e5a52-2c1f-4a43-9f6e-7b39a1c0a001"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("photos ordered by submission and paged", func(t *testing.T) {
		s := newStore(t)
		contest := &db.Contest{Name: "Paged", CreatedAt: base}
		require.NoError(t, s.CreateContest(ctx, contest))
		for i := 0; i < 5; i++ {
			photo := &db.Photo{
				PublicID:    "photo-contest/p" + string(rune('a'+i)),
				SecureURL:   "https://img.example/p.jpg",
				ContestID:   &contest.ID,
				SubmittedAt: base.Add(time.Duration(i) * time.Minute),
			}
			require.NoError(t, s.CreatePhoto(ctx, photo))
		}

		total, err := s.CountPhotos(ctx, contest.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 5, total)

		all, err := s.ListPhotos(ctx, PhotoQuery{ContestID: contest.ID})
		require.NoError(t, err)
		require.Len(t, all, 5)
		for i := 1; i < len(all); i++ {
			assert.False(t, all[i].SubmittedAt.After(all[i-1].SubmittedAt))
		}

		page, err := s.ListPhotos(ctx, PhotoQuery{ContestID: contest.ID, Offset: 2, Limit: 2})
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, all[2].ID, page[0].ID)
		assert.Equal(t, all[3].ID, page[1].ID)

		empty, err := s.ListPhotos(ctx, PhotoQuery{ContestID: contest.ID, Offset: 10})
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("vote uniqueness and counts", func(t *testing.T) {
		s := newStore(t)
		contest := &db.Contest{Name: "Votes", CreatedAt: base}
		require.NoError(t, s.CreateContest(ctx, contest))
		photo := &db.Photo{PublicID: "photo-contest/v", SecureURL: "https://img.example/v.jpg", ContestID: &contest.ID, SubmittedAt: base}
		require.NoError(t, s.CreatePhoto(ctx, photo))

		first := &db.Vote{VoterID: "alice", PhotoID: photo.ID, Category: "OVERALL", ContestID: contest.ID}
		require.NoError(t, s.CreateVote(ctx, first))
		err := s.CreateVote(ctx, &db.Vote{VoterID: "alice", PhotoID: photo.ID, Category: "OVERALL", ContestID: contest.ID})
		assert.ErrorIs(t, err, ErrConflict)
		require.NoError(t, s.CreateVote(ctx, &db.Vote{VoterID: "alice", PhotoID: photo.ID, Category: "FUNNY", ContestID: contest.ID}))
		require.NoError(t, s.CreateVote(ctx, &db.Vote{VoterID: "bob", PhotoID: photo.ID, Category: "OVERALL", ContestID: contest.ID}))

		counts, err := s.CountVotes(ctx, []string{photo.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 2, counts[photo.ID]["OVERALL"])
		assert.EqualValues(t, 1, counts[photo.ID]["FUNNY"])
		assert.EqualValues(t, 0, counts[photo.ID]["TECHNICAL"])

		flags, err := s.VoterCategories(ctx, "alice", []string{photo.ID})
		require.NoError(t, err)
		assert.True(t, flags[photo.ID]["OVERALL"])
		assert.True(t, flags[photo.ID]["FUNNY"])
		assert.False(t, flags[photo.ID]["TECHNICAL"])

		found, err := s.FindVote(ctx, VoteKey{VoterID: "alice", PhotoID: photo.ID, Category: "OVERALL", ContestID: contest.ID})
		require.NoError(t, err)
		assert.Equal(t, first.ID, found.ID)

		require.NoError(t, s.DeleteVote(ctx, found.ID))
		require.NoError(t, s.DeleteVote(ctx, found.ID))
		_, err = s.FindVote(ctx, VoteKey{VoterID: "alice", PhotoID: photo.ID, Category: "OVERALL", ContestID: contest.ID})
		assert.ErrorIs(t, err, ErrNotFound)

		counts, err = s.CountVotes(ctx, []string{photo.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 1, counts[photo.ID]["OVERALL"])
	})

	t.Run("long voter ids are stored and matched", func(t *testing.T) {
		s := newStore(t)
		contest := &db.Contest{Name: "Long voters", CreatedAt: base}
		require.NoError(t, s.CreateContest(ctx, contest))
		photo := &db.Photo{PublicID: "photo-contest/l", SecureURL: "https://img.example/l.jpg", ContestID: &contest.ID, SubmittedAt: base}
		require.NoError(t, s.CreatePhoto(ctx, photo))

		voter := strings.Repeat("v", 1024)
		require.NoError(t, s.CreateVote(ctx, &db.Vote{VoterID: voter, PhotoID: photo.ID, Category: "TECHNICAL", ContestID: contest.ID}))
		_, err := s.FindVote(ctx, VoteKey{VoterID: voter, PhotoID: photo.ID, Category: "TECHNICAL", ContestID: contest.ID})
		require.NoError(t, err)
		flags, err := s.VoterCategories(ctx, voter, []string{photo.ID})
		require.NoError(t, err)
		assert.True(t, flags[photo.ID]["TECHNICAL"])
	})

	t.Run("concurrent duplicate inserts leave one row", func(t *testing.T) {
		s := newStore(t)
		contest := &db.Contest{Name: "Race", CreatedAt: base}
		require.NoError(t, s.CreateContest(ctx, contest))
		photo := &db.Photo{PublicID: "photo-contest/r", SecureURL: "https://img.example/r.jpg", ContestID: &contest.ID, SubmittedAt: base}
		require.NoError(t, s.CreatePhoto(ctx, photo))

		var wg sync.WaitGroup
		var created, conflicts atomic.Int32
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := s.CreateVote(ctx, &db.Vote{VoterID: "carol", PhotoID: photo.ID, Category: "TECHNICAL", ContestID: contest.ID})
				switch {
				case err == nil:
					created.Add(1)
				case errors.Is(err, ErrConflict):
					conflicts.Add(1)
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()

		assert.EqualValues(t, 1, created.Load())
		assert.EqualValues(t, 7, conflicts.Load())
		counts, err := s.CountVotes(ctx, []string{photo.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 1, counts[photo.ID]["TECHNICAL"])
	})
}

func contestNames(contests []db.Contest) []string {
	names := make([]string, 0, len(contests))
	for _, contest := range contests {
		names = append(names, contest.Name)
	}
	return names
}
