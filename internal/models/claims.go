package models

import "github.com/golang-jwt/jwt/v5"

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	TokenVersion int    `json:"token_version"`
}

// IsReviewer reports whether the claims belong to one of the review-stage
// roles (everyone except relationship managers and admins).
func (c *UserClaims) IsReviewer() bool {
	switch c.Role {
	case RoleCreditAnalyst, RoleSupervisor, RoleCommitteMember, RoleApprovalCommitte:
		return true
	}
	return false
}
