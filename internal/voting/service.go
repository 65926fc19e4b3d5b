// Package voting implements vote toggling, per-photo aggregation and the
// contest queries that drive the browse and submit pages.
package voting

import (
	"context"
	"errors"
	"strings"
	"time"

	"prized-pic/internal/db"
	"prized-pic/internal/logging"
	"prized-pic/internal/store"

	"github.com/sirupsen/logrus"
)

type Service struct {
	store store.Store
	now   func() time.Time
}

// NewService wires the service to an explicitly constructed store. A nil clock uses the wall clock.
func NewService(st store.Store, now func() time.Time) *Service {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Service{store: st, now: now}
}

type ToggleInput struct {
	PhotoID   string
	VoterID   string
	Category  string
	ContestID string
}

// ToggleVote casts the vote when absent and retracts it when present, then
// returns the photo's aggregate as seen by the voter.
func (s *Service) ToggleVote(ctx context.Context, in ToggleInput) (*PhotoAggregate, error) {
	in.PhotoID = strings.TrimSpace(in.PhotoID)
	in.VoterID = strings.TrimSpace(in.VoterID)
	in.Category = strings.TrimSpace(in.Category)
	in.ContestID = strings.TrimSpace(in.ContestID)
	if in.PhotoID == "" || in.VoterID == "" || in.Category == "" || in.ContestID == "" {
		return nil, invalid("photoId, voterId, voteCategory and contestId are required")
	}
	category, ok := ParseCategory(in.Category)
	if !ok {
		return nil, invalid("voteCategory must be OVERALL, TECHNICAL, or FUNNY")
	}

	photo, err := s.store.GetPhoto(ctx, in.PhotoID)
	if err != nil {
		return nil, err
	}
	if photo.ContestID == nil || *photo.ContestID != in.ContestID {
		return nil, invalid("photo does not belong to contest")
	}
	contest, err := s.store.GetContest(ctx, in.ContestID)
	if err != nil {
		return nil, err
	}
	if contest.IsClosed(s.now()) {
		return nil, ErrContestClosed
	}

	key := store.VoteKey{
		VoterID:   in.VoterID,
		PhotoID:   in.PhotoID,
		Category:  string(category),
		ContestID: in.ContestID,
	}
	action, err := s.toggle(ctx, key)
	if err != nil {
		return nil, err
	}
	logging.Log.WithFields(logrus.Fields{
		"photo_id":   key.PhotoID,
		"contest_id": key.ContestID,
		"category":   key.Category,
		"action":     action,
	}).Debug("vote toggled")

	aggregates, err := s.aggregate(ctx, []db.Photo{*photo}, in.VoterID)
	if err != nil {
		return nil, err
	}
	return &aggregates[0], nil
}

func (s *Service) toggle(ctx context.Context, key store.VoteKey) (string, error) {
	existing, err := s.store.FindVote(ctx, key)
	switch {
	case err == nil:
		if err := s.store.DeleteVote(ctx, existing.ID); err != nil {
			return "", err
		}
		return "retracted", nil
	case errors.Is(err, store.ErrNotFound):
	default:
		return "", err
	}

	err = s.store.CreateVote(ctx, &db.Vote{
		VoterID:   key.VoterID,
		PhotoID:   key.PhotoID,
		Category:  key.Category,
		ContestID: key.ContestID,
		CreatedAt: s.now(),
	})
	if errors.Is(err, store.ErrConflict) {
		// A concurrent toggle inserted the same vote first.
		return "raced", nil
	}
	if err != nil {
		return "", err
	}
	return "cast", nil
}

// GetAggregatedPhoto returns one photo's totals. An empty viewer sees every flag false.
func (s *Service) GetAggregatedPhoto(ctx context.Context, photoID, viewerID string) (*PhotoAggregate, error) {
	photoID = strings.TrimSpace(photoID)
	if photoID == "" {
		return nil, invalid("photoId is required")
	}
	photo, err := s.store.GetPhoto(ctx, photoID)
	if err != nil {
		return nil, err
	}
	aggregates, err := s.aggregate(ctx, []db.Photo{*photo}, strings.TrimSpace(viewerID))
	if err != nil {
		return nil, err
	}
	return &aggregates[0], nil
}

// ListAggregatedPhotosForContest returns every photo of the contest, newest first.
func (s *Service) ListAggregatedPhotosForContest(ctx context.Context, contestID, viewerID string) ([]PhotoAggregate, error) {
	page, err := s.ListAggregatedPhotosPage(ctx, contestID, viewerID, 0, 0)
	if err != nil {
		return nil, err
	}
	return page.Photos, nil
}

type PhotoPage struct {
	Photos []PhotoAggregate
	Total  int64
}

// ListAggregatedPhotosPage is ListAggregatedPhotosForContest restricted to a window.
// A limit of zero returns everything from offset on.
func (s *Service) ListAggregatedPhotosPage(ctx context.Context, contestID, viewerID string, offset, limit int) (*PhotoPage, error) {
	contestID = strings.TrimSpace(contestID)
	if contestID == "" {
		return nil, invalid("contestId is required")
	}
	photos, err := s.store.ListPhotos(ctx, store.PhotoQuery{
		ContestID: contestID,
		Offset:    offset,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}
	total := int64(len(photos))
	if offset > 0 || limit > 0 {
		if total, err = s.store.CountPhotos(ctx, contestID); err != nil {
			return nil, err
		}
	}
	aggregates, err := s.aggregate(ctx, photos, strings.TrimSpace(viewerID))
	if err != nil {
		return nil, err
	}
	return &PhotoPage{Photos: aggregates, Total: total}, nil
}
