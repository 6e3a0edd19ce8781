package models

import "time"

// Click is one recorded visit to a short link. ShortCode is a plain column,
// not a foreign key: visits to codes that never existed are kept too.
type Click struct {
	ID        uint      `gorm:"primaryKey"`
	ShortCode string    `gorm:"index;not null"`
	ClickedAt time.Time `gorm:"autoCreateTime"`
	IPAddress string
	UserAgent string
}

func (Click) TableName() string {
	return "clicks"
}
