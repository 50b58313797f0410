package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	Base
	Username          string     `db:"username"`
	Email             string     `db:"email"`
	PasswordHash      string     `db:"password"`
	Role              UserRole   `db:"role"`
	IsBlocked         bool       `db:"is_blocked"`
	ResetToken        *string    `db:"reset_token"`
	ResetTokenExpires *time.Time `db:"reset_token_expires"`
}

// IsOwnerOrAdmin is the capability check shared by every protected operation:
// the resource owner and any admin pass, everyone else is refused.
func IsOwnerOrAdmin(resourceOwner, subject uuid.UUID, role UserRole) bool {
	return resourceOwner == subject || role == RoleAdmin
}
