package voting

import (
	"context"
	"encoding/json"
	"time"

	"prized-pic/internal/db"
	"prized-pic/internal/store"
)

// Totals holds per-category vote counts.
type Totals struct {
	Overall   int64 `json:"OVERALL"`
	Technical int64 `json:"TECHNICAL"`
	Funny     int64 `json:"FUNNY"`
}

func (t Totals) Get(category Category) int64 {
	switch category {
	case CategoryOverall:
		return t.Overall
	case CategoryTechnical:
		return t.Technical
	case CategoryFunny:
		return t.Funny
	}
	return 0
}

// Flags records which categories the viewer currently has a vote in.
type Flags struct {
	Overall   bool `json:"OVERALL"`
	Technical bool `json:"TECHNICAL"`
	Funny     bool `json:"FUNNY"`
}

func (f Flags) Get(category Category) bool {
	switch category {
	case CategoryOverall:
		return f.Overall
	case CategoryTechnical:
		return f.Technical
	case CategoryFunny:
		return f.Funny
	}
	return false
}

type PhotoAggregate struct {
	ID                string          `json:"id"`
	ImageHostPublicID string          `json:"imageHostPublicId"`
	ImageHostURL      string          `json:"imageHostUrl"`
	Title             *string         `json:"title"`
	SubmitterEmail    *string         `json:"submitterEmail"`
	SubmitterID       *string         `json:"submitterId"`
	ContestID         *string         `json:"contestId"`
	SubmittedAt       time.Time       `json:"submittedAt"`
	UploadInfo        json.RawMessage `json:"uploadInfo,omitempty"`
	TotalVotes        Totals          `json:"totalVotes"`
	ViewerVoted       Flags           `json:"viewerVoted"`
}

func buildAggregate(photo db.Photo, counts map[string]int64, voted map[string]bool) PhotoAggregate {
	agg := PhotoAggregate{
		ID:                photo.ID,
		ImageHostPublicID: photo.PublicID,
		ImageHostURL:      photo.SecureURL,
		Title:             photo.Title,
		SubmitterEmail:    photo.SubmitterEmail,
		SubmitterID:       photo.SubmitterID,
		ContestID:         photo.ContestID,
		SubmittedAt:       photo.SubmittedAt,
		TotalVotes: Totals{
			Overall:   counts[string(CategoryOverall)],
			Technical: counts[string(CategoryTechnical)],
			Funny:     counts[string(CategoryFunny)],
		},
		ViewerVoted: Flags{
			Overall:   voted[string(CategoryOverall)],
			Technical: voted[string(CategoryTechnical)],
			Funny:     voted[string(CategoryFunny)],
		},
	}
	if len(photo.UploadInfo) > 0 {
		agg.UploadInfo = json.RawMessage(photo.UploadInfo)
	}
	return agg
}

// aggregate shapes photos with one count query and one viewer query.
func (s *Service) aggregate(ctx context.Context, photos []db.Photo, viewerID string) ([]PhotoAggregate, error) {
	result := make([]PhotoAggregate, 0, len(photos))
	if len(photos) == 0 {
		return result, nil
	}
	ids := make([]string, 0, len(photos))
	for _, photo := range photos {
		ids = append(ids, photo.ID)
	}
	counts, err := s.store.CountVotes(ctx, ids)
	if err != nil {
		return nil, err
	}
	flags := store.CategoryFlags{}
	if viewerID != "" {
		flags, err = s.store.VoterCategories(ctx, viewerID, ids)
		if err != nil {
			return nil, err
		}
	}
	for _, photo := range photos {
		result = append(result, buildAggregate(photo, counts[photo.ID], flags[photo.ID]))
	}
	return result, nil
}
