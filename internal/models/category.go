package models

import "time"

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;uniqueIndex" json:"name"`
	DataItem  string    `gorm:"size:255" json:"dataItem"`
	Icon      string    `gorm:"size:512" json:"icon,omitempty"`
	Sale      int       `json:"sale"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
