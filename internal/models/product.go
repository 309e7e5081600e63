package models

import "time"

type Product struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:255" json:"name"`
	Slug        string     `gorm:"size:255;index" json:"slug"`
	Price       float64    `json:"price"`
	OriginPrice float64    `json:"originPrice"`
	OnSale      bool       `json:"onSale"`
	IsNew       bool       `json:"isNew"`
	Quantity    int        `json:"quantity"`
	Sold        int        `json:"sold"`
	Rate        float64    `json:"rate"`
	Sizes       StringList `gorm:"type:json" json:"sizes"`
	CategoryID  uint       `gorm:"index" json:"categoryId"`
	Image       string     `gorm:"size:512" json:"image,omitempty"`
	IsActive    bool       `json:"isActive"`
	IsDeleted   bool       `json:"isDeleted,omitempty"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
