package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Buddhisha1997/linkshoter/models"
)

var (
	ErrLinkNotFound  = errors.New("link not found")
	ErrDuplicateCode = errors.New("short code already taken")
)

// LinkWithClicks is a links row joined with its click count.
type LinkWithClicks struct {
	ID          uint
	OriginalURL string
	ShortCode   string
	ExpiryDate  *time.Time
	CreatedAt   time.Time
	ClickCount  int64
}

// PopularLink is a short code ranked by how often it was visited.
type PopularLink struct {
	ShortCode  string
	ClickCount int64
}

// SystemStats are the aggregate counters shown on every page.
type SystemStats struct {
	TotalLinks   int64
	ActiveLinks  int64
	TotalClicks  int64
	PopularLinks []PopularLink
}

type Repository interface {
	// CreateLink inserts a new link and fills in its ID and CreatedAt.
	// Returns ErrDuplicateCode when the short code is already taken.
	CreateLink(ctx context.Context, link *models.Link) error
	// GetLinkByCode returns the link identified by code, expired or not.
	// Returns ErrLinkNotFound when no such code exists.
	GetLinkByCode(ctx context.Context, code string) (*models.Link, error)
	// ListLinks returns every link with its click count, newest first.
	ListLinks(ctx context.Context) ([]LinkWithClicks, error)
	// DeleteExpired removes links whose expiry lies strictly before now and
	// reports how many rows went away. Links without an expiry are kept.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	// RecordClick appends a click row. The short code does not have to
	// belong to any stored link.
	RecordClick(ctx context.Context, click *models.Click) error
	// ClicksByCode returns the click history for a code, newest first.
	ClicksByCode(ctx context.Context, code string) ([]models.Click, error)
	// Stats returns the aggregate counters across all links and clicks.
	Stats(ctx context.Context) (*SystemStats, error)
}

// UnimplementedRepository panics on every call. Embed it in test doubles
// that only care about part of the Repository surface.
type UnimplementedRepository struct{}

func (UnimplementedRepository) CreateLink(context.Context, *models.Link) error {
	panic("unimplemented: CreateLink")
}

func (UnimplementedRepository) GetLinkByCode(context.Context, string) (*models.Link, error) {
	panic("unimplemented: GetLinkByCode")
}

func (UnimplementedRepository) ListLinks(context.Context) ([]LinkWithClicks, error) {
	panic("unimplemented: ListLinks")
}

func (UnimplementedRepository) DeleteExpired(context.Context, time.Time) (int64, error) {
	panic("unimplemented: DeleteExpired")
}

func (UnimplementedRepository) RecordClick(context.Context, *models.Click) error {
	panic("unimplemented: RecordClick")
}

func (UnimplementedRepository) ClicksByCode(context.Context, string) ([]models.Click, error) {
	panic("unimplemented: ClicksByCode")
}

func (UnimplementedRepository) Stats(context.Context) (*SystemStats, error) {
	panic("unimplemented: Stats")
}
