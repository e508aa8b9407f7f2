package models

type Customer struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"not null" json:"name"`
	Email  string `gorm:"uniqueIndex;not null" json:"email"`
	Phone  string `gorm:"not null" json:"phone"`
	OIDCID string `gorm:"uniqueIndex" json:"-"` // OpenID Connect identifier
}
