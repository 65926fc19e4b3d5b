package store

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"prized-pic/internal/db"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation = "23505"
	pgInvalidTextRepr = "22P02"
)

// GormStore persists records in Postgres. Every call runs under its own timeout.
type GormStore struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewGormStore(conn *gorm.DB, timeout time.Duration) *GormStore {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &GormStore{db: conn, timeout: timeout}
}

func (s *GormStore) session(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	return s.db.WithContext(ctx), cancel
}

func (s *GormStore) CreateContest(ctx context.Context, contest *db.Contest) error {
	tx, cancel := s.session(ctx)
	defer cancel()
	if err := tx.Create(contest).Error; err != nil {
		return classify("create contest", err)
	}
	return nil
}

func (s *GormStore) GetContest(ctx context.Context, id string) (*db.Contest, error) {
	tx, cancel := s.session(ctx)
	defer cancel()
	var contest db.Contest
	if err := tx.Where("id = ?", id).Take(&contest).Error; err != nil {
		return nil, classify("get contest", err)
	}
	return &contest, nil
}

func (s *GormStore) ListContests(ctx context.Context, filter ContestFilter) ([]db.Contest, error) {
	tx, cancel := s.session(ctx)
	defer cancel()
	query := tx.Model(&db.Contest{})
	if filter.OpenAt != nil {
		query = query.Where("ends_at IS NULL OR ends_at > ?", *filter.OpenAt)
	}
	var contests []db.Contest
	if err := query.Order("created_at desc").Order("id desc").Find(&contests).Error; err != nil {
		return nil, classify("list contests", err)
	}
	return contests, nil
}

func (s *GormStore) CreatePhoto(ctx context.Context, photo *db.Photo) error {
	tx, cancel := s.session(ctx)
	defer cancel()
	if err := tx.Create(photo).Error; err != nil {
		return classify("create photo", err)
	}
	return nil
}

func (s *GormStore) GetPhoto(ctx context.Context, id string) (*db.Photo, error) {
	tx, cancel := s.session(ctx)
	defer cancel()
	var photo db.Photo
	if err := tx.Where("id = ?", id).Take(&photo).Error; err != nil {
		return nil, classify("get photo", err)
	}
	return &photo, nil
}

func (s *GormStore) ListPhotos(ctx context.Context, query PhotoQuery) ([]db.Photo, error) {
	tx, cancel := s.session(ctx)
	defer cancel()
	q := tx.Model(&db.Photo{}).
		Where("contest_id = ?", query.ContestID).
		Order("submitted_at desc").
		Order("id desc")
	if query.Offset > 0 {
		q = q.Offset(query.Offset)
	}
	if query.Limit > 0 {
		q = q.Limit(query.Limit)
	}
	photos := make([]db.Photo, 0)
	if err := q.Find(&photos).Error; err != nil {
		return nil, classify("list photos", err)
	}
	return photos, nil
}

func (s *GormStore) CountPhotos(ctx context.Context, contestID string) (int64, error) {
	tx, cancel := s.session(ctx)
	defer cancel()
	var total int64
	if err := tx.Model(&db.Photo{}).Where("contest_id = ?", contestID).Count(&total).Error; err != nil {
		return 0, classify("count photos", err)
	}
	return total, nil
}

func (s *GormStore) FindVote(ctx context.Context, key VoteKey) (*db.Vote, error) {
	tx, cancel := s.session(ctx)
	defer cancel()
	var vote db.Vote
	err := tx.Where(&db.Vote{
		VoterID:   key.VoterID,
		PhotoID:   key.PhotoID,
		Category:  key.Category,
		ContestID: key.ContestID,
	}).Take(&vote).Error
	if err != nil {
		return nil, classify("find vote", err)
	}
	return &vote, nil
}

func (s *GormStore) CreateVote(ctx context.Context, vote *db.Vote) error {
	tx, cancel := s.session(ctx)
	defer cancel()
	if err := tx.Create(vote).Error; err != nil {
		return classify("create vote", err)
	}
	return nil
}

func (s *GormStore) DeleteVote(ctx context.Context, id uint) error {
	tx, cancel := s.session(ctx)
	defer cancel()
	if err := tx.Delete(&db.Vote{}, id).Error; err != nil {
		return classify("delete vote", err)
	}
	return nil
}

type categoryCountRow struct {
	PhotoID  string
	Category string
	Total    int64
}

func (s *GormStore) CountVotes(ctx context.Context, photoIDs []string) (CategoryCounts, error) {
	counts := make(CategoryCounts, len(photoIDs))
	if len(photoIDs) == 0 {
		return counts, nil
	}
	tx, cancel := s.session(ctx)
	defer cancel()
	var rows []categoryCountRow
	err := tx.Model(&db.Vote{}).
		Select("photo_id, category, count(*) as total").
		Where("photo_id IN ?", photoIDs).
		Group("photo_id, category").
		Scan(&rows).Error
	if err != nil {
		return nil, classify("count votes", err)
	}
	for _, row := range rows {
		if counts[row.PhotoID] == nil {
			counts[row.PhotoID] = make(map[string]int64)
		}
		counts[row.PhotoID][row.Category] = row.Total
	}
	return counts, nil
}

func (s *GormStore) VoterCategories(ctx context.Context, voterID string, photoIDs []string) (CategoryFlags, error) {
	flags := make(CategoryFlags)
	if voterID == "" || len(photoIDs) == 0 {
		return flags, nil
	}
	tx, cancel := s.session(ctx)
	defer cancel()
	var votes []db.Vote
	err := tx.Select("photo_id", "category").
		Where("voter_id = ? AND photo_id IN ?", voterID, photoIDs).
		Find(&votes).Error
	if err != nil {
		return nil, classify("voter categories", err)
	}
	for _, vote := range votes {
		if flags[vote.PhotoID] == nil {
			flags[vote.PhotoID] = make(map[string]bool)
		}
		flags[vote.PhotoID][vote.Category] = true
	}
	return flags, nil
}

func (s *GormStore) Close() error {
	return db.Close(s.db)
}

func classify(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), isMalformedID(err):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, ErrConflict)
	case isUnavailable(err):
		return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}

// isMalformedID reports a lookup by an id that is not a valid uuid.
func isMalformedID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepr
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
