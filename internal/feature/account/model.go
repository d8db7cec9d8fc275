package account

import "time"

// AccountModel is a credential of the local identity driver.
type AccountModel struct {
	ID            string `gorm:"primaryKey;type:varchar(36)"`
	Email         string `gorm:"uniqueIndex;size:255;not null"`
	DisplayName   string `gorm:"size:128;not null"`
	PasswordHash  string `gorm:"size:100;not null"`
	EmailVerified bool   `gorm:"not null;default:false"`
	Disabled      bool   `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (AccountModel) TableName() string { return "accounts" }
