package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Buddhisha1997/linkshoter/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewSQLiteRepo opens (or creates) the SQLite database at path and migrates
// the links and clicks tables.
func NewSQLiteRepo(path string) (Repository, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		// Timestamps are stored and compared in UTC so that expiry checks
		// in SQL and in Go agree.
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.Link{}, &models.Click{}); err != nil {
		return nil, err
	}
	return &sqliteRepository{db: db}, nil
}

type sqliteRepository struct {
	db *gorm.DB
}

func (s *sqliteRepository) CreateLink(ctx context.Context, link *models.Link) error {
	if err := s.db.WithContext(ctx).Create(link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateCode
		}
		return err
	}
	return nil
}

func (s *sqliteRepository) GetLinkByCode(ctx context.Context, code string) (*models.Link, error) {
	var link models.Link
	if err := s.db.WithContext(ctx).
		Where("short_code = ?", code).
		Take(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	return &link, nil
}

func (s *sqliteRepository) ListLinks(ctx context.Context) ([]LinkWithClicks, error) {
	var links []LinkWithClicks
	err := s.db.WithContext(ctx).
		Model(&models.Link{}).
		Select("links.id, links.original_url, links.short_code, links.expiry_date, links.created_at, COUNT(clicks.id) AS click_count").
		Joins("LEFT JOIN clicks ON clicks.short_code = links.short_code").
		Group("links.id").
		Order("links.created_at DESC, links.id DESC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (s *sqliteRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("expiry_date IS NOT NULL AND expiry_date < ?", now).
		Delete(&models.Link{})
	return res.RowsAffected, res.Error
}

func (s *sqliteRepository) RecordClick(ctx context.Context, click *models.Click) error {
	return s.db.WithContext(ctx).Create(click).Error
}

func (s *sqliteRepository) ClicksByCode(ctx context.Context, code string) ([]models.Click, error) {
	var clicks []models.Click
	err := s.db.WithContext(ctx).
		Where("short_code = ?", code).
		Order("clicked_at DESC, id DESC").
		Find(&clicks).Error
	if err != nil {
		return nil, err
	}
	return clicks, nil
}

func (s *sqliteRepository) Stats(ctx context.Context) (*SystemStats, error) {
	db := s.db.WithContext(ctx)

	var stats SystemStats
	if err := db.Model(&models.Link{}).Count(&stats.TotalLinks).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Link{}).
		Where("expiry_date IS NULL OR expiry_date > ?", time.Now().UTC()).
		Count(&stats.ActiveLinks).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Click{}).Count(&stats.TotalClicks).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Link{}).
		Select("links.short_code, COUNT(clicks.id) AS click_count").
		Joins("LEFT JOIN clicks ON clicks.short_code = links.short_code").
		Group("links.short_code").
		Order("click_count DESC").
		Limit(5).
		Find(&stats.PopularLinks).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
