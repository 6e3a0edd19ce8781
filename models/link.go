package models

import "time"

type Link struct {
	ID          uint       `gorm:"primaryKey"`
	OriginalURL string     `gorm:"not null"`
	ShortCode   string     `gorm:"uniqueIndex;size:6;not null"`
	ExpiryDate  *time.Time `gorm:"index"`
	CreatedAt   time.Time
}

func (Link) TableName() string {
	return "links"
}

// Expired reports whether the link's expiry has passed at the given instant.
// A nil ExpiryDate means the link never expires.
func (l *Link) Expired(now time.Time) bool {
	if l.ExpiryDate == nil {
		return false
	}
	return now.After(*l.ExpiryDate)
}
