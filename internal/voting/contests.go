package voting

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"prized-pic/internal/db"
	"prized-pic/internal/store"
)

type ContestView struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Description         *string    `json:"description"`
	CreatedAt           time.Time  `json:"createdAt"`
	SubmissionsClosedAt *time.Time `json:"submissionsClosedAt"`
	EndsAt              *time.Time `json:"endsAt"`
	IsClosed            bool       `json:"isClosed"`
	SubmissionsOpen     bool       `json:"submissionsOpen"`
}

type ContestStatus struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	EndsAt          *time.Time `json:"endsAt"`
	IsClosed        bool       `json:"isClosed"`
	SubmissionsOpen bool       `json:"submissionsOpen"`
}

func contestView(contest db.Contest, now time.Time) ContestView {
	return ContestView{
		ID:                  contest.ID,
		Name:                contest.Name,
		Description:         contest.Description,
		CreatedAt:           contest.CreatedAt,
		SubmissionsClosedAt: contest.SubmissionsClosedAt,
		EndsAt:              contest.EndsAt,
		IsClosed:            contest.IsClosed(now),
		SubmissionsOpen:     contest.SubmissionsOpen(now),
	}
}

// ListContests returns contests newest first. Unless includeClosed is set,
// contests whose end has passed are omitted.
func (s *Service) ListContests(ctx context.Context, includeClosed bool) ([]ContestView, error) {
	now := s.now()
	filter := store.ContestFilter{}
	if !includeClosed {
		filter.OpenAt = &now
	}
	contests, err := s.store.ListContests(ctx, filter)
	if err != nil {
		return nil, err
	}
	views := make([]ContestView, 0, len(contests))
	for _, contest := range contests {
		views = append(views, contestView(contest, now))
	}
	return views, nil
}

func (s *Service) GetContest(ctx context.Context, contestID string) (*ContestView, error) {
	contestID = strings.TrimSpace(contestID)
	if contestID == "" {
		return nil, invalid("contestId is required")
	}
	contest, err := s.store.GetContest(ctx, contestID)
	if err != nil {
		return nil, err
	}
	view := contestView(*contest, s.now())
	return &view, nil
}

func (s *Service) GetContestStatus(ctx context.Context, contestID string) (*ContestStatus, error) {
	view, err := s.GetContest(ctx, contestID)
	if err != nil {
		return nil, err
	}
	return &ContestStatus{
		ID:              view.ID,
		Name:            view.Name,
		EndsAt:          view.EndsAt,
		IsClosed:        view.IsClosed,
		SubmissionsOpen: view.SubmissionsOpen,
	}, nil
}

type CreateContestInput struct {
	Name                string
	Description         string
	SubmissionsClosedAt *time.Time
	EndsAt              *time.Time
}

// CreateContest registers a contest.
func (s *Service) CreateContest(ctx context.Context, in CreateContestInput) (*ContestView, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("contest name is required")
	}
	contest := &db.Contest{
		Name:                name,
		SubmissionsClosedAt: in.SubmissionsClosedAt,
		EndsAt:              in.EndsAt,
		CreatedAt:           s.now(),
	}
	if description := strings.TrimSpace(in.Description); description != "" {
		contest.Description = &description
	}
	if err := s.store.CreateContest(ctx, contest); err != nil {
		return nil, err
	}
	view := contestView(*contest, s.now())
	return &view, nil
}

// ImportContests creates a contest for every CSV row whose name is not yet known
// and returns how many were added.
func (s *Service) ImportContests(ctx context.Context, r io.Reader) (int, error) {
	records, err := db.ReadContests(r)
	if err != nil {
		return 0, err
	}
	added := 0
	for _, record := range records {
		in := CreateContestInput{
			Name:                record.Name,
			SubmissionsClosedAt: record.SubmissionsClosedAt,
			EndsAt:              record.EndsAt,
		}
		if record.Description != nil {
			in.Description = *record.Description
		}
		_, err := s.CreateContest(ctx, in)
		if errors.Is(err, store.ErrConflict) {
			continue
		}
		if err != nil {
			return added, fmt.Errorf("import contest %q: %w", record.Name, err)
		}
		added++
	}
	return added, nil
}
