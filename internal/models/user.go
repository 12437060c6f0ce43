package models

import (
	"time"

	"gorm.io/gorm"
)

// Workflow roles. Spellings match the values external consumers already
// depend on; do not normalize them.
const (
	RoleRelationshipManager = "RELATIONSHIP_MANAGER"
	RoleCreditAnalyst       = "CREDIT_ANALYST"
	RoleSupervisor          = "SUPERVISOR"
	RoleCommitteMember      = "COMMITTE_MEMBER"
	RoleApprovalCommitte    = "APPROVAL_COMMITTE"
	RoleAdmin               = "ADMIN"
)

type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	Password     string `gorm:"not null" json:"-"`
	Name         string `gorm:"not null"`
	Phone        string
	Role         string `gorm:"not null;default:'RELATIONSHIP_MANAGER'"`
	Branch       string
	Status       string `gorm:"default:'active'"`
	LastLoginAt  time.Time
	TokenVersion int `gorm:"default:1"`
}

// ValidRole reports whether role is one of the workflow roles.
func ValidRole(role string) bool {
	switch role {
	case RoleRelationshipManager, RoleCreditAnalyst, RoleSupervisor,
		RoleCommitteMember, RoleApprovalCommitte, RoleAdmin:
		return true
	}
	return false
}
