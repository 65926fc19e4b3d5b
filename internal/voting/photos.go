package voting

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"prized-pic/internal/db"
	"prized-pic/internal/logging"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const maxTitleLength = 80

type SubmitPhotoInput struct {
	PublicID       string
	SecureURL      string
	Title          string
	ContestID      string
	SubmitterEmail string
	SubmitterID    string
	// UploadInfo is the image host's upload result as reported by the client.
	UploadInfo map[string]any
}

// SubmitPhoto records a photo that has already been uploaded to the image host.
// The identifiers are trusted as reported.
func (s *Service) SubmitPhoto(ctx context.Context, in SubmitPhotoInput) (*db.Photo, error) {
	publicID := strings.TrimSpace(in.PublicID)
	secureURL := strings.TrimSpace(in.SecureURL)
	if publicID == "" || secureURL == "" {
		return nil, invalid("publicId and secureUrl are required")
	}
	photo := &db.Photo{
		PublicID:       publicID,
		SecureURL:      secureURL,
		Title:          optional(in.Title),
		SubmitterEmail: optional(in.SubmitterEmail),
		SubmitterID:    optional(in.SubmitterID),
		SubmittedAt:    s.now(),
	}
	if photo.Title != nil && utf8.RuneCountInString(*photo.Title) > maxTitleLength {
		return nil, invalid(fmt.Sprintf("title must be %d characters or fewer", maxTitleLength))
	}

	if contestID := strings.TrimSpace(in.ContestID); contestID != "" {
		contest, err := s.store.GetContest(ctx, contestID)
		if err != nil {
			return nil, err
		}
		if !contest.SubmissionsOpen(s.now()) {
			return nil, ErrSubmissionsClosed
		}
		photo.ContestID = &contest.ID
	}

	if len(in.UploadInfo) > 0 {
		raw, err := json.Marshal(in.UploadInfo)
		if err != nil {
			return nil, invalid("uploadInfo must be a JSON object")
		}
		photo.UploadInfo = datatypes.JSON(raw)
	}

	if err := s.store.CreatePhoto(ctx, photo); err != nil {
		return nil, err
	}
	logging.Log.WithFields(logrus.Fields{
		"photo_id":   photo.ID,
		"public_id":  photo.PublicID,
		"contest_id": in.ContestID,
	}).Info("photo submitted")
	return photo, nil
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
