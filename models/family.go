package models

import (
	"time"

	"gorm.io/gorm"
)

type Family struct {
	gorm.Model
	Name    string         `gorm:"not null" json:"name"`
	AdminID uint           `gorm:"not null" json:"adminId"`
	Members []FamilyMember `gorm:"constraint:OnDelete:CASCADE" json:"members,omitempty"`
}

// FamilyMember rows are hard-deleted on leave; a soft delete would
// leave the unique index blocking a later rejoin.
type FamilyMember struct {
	ID       uint      `gorm:"primarykey" json:"id"`
	FamilyID uint      `gorm:"index:idx_family_user,unique;not null" json:"familyId"`
	UserID   uint      `gorm:"index:idx_family_user,unique;not null" json:"userId"`
	JoinedAt time.Time `gorm:"not null" json:"joinedAt"`
}

type FamilyInvitation struct {
	gorm.Model
	FamilyID  uint      `gorm:"index;not null" json:"familyId"`
	Email     string    `gorm:"index;not null" json:"email"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
}

func (i FamilyInvitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
