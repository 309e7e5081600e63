package models

import "time"

type Attribute struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CategoryID     uint      `gorm:"index;not null" json:"categoryId"`
	AttributeName  string    `gorm:"size:255" json:"attributeName"`
	AttributeValue string    `gorm:"size:255" json:"attributeValue"`
	CreatedAt      time.Time `json:"createdAt"`
}
