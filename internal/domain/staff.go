package domain

import "time"

type StaffRole string

const (
	StaffRoleService StaffRole = "service"
	StaffRoleKitchen StaffRole = "kitchen"
	StaffRoleManager StaffRole = "manager"
)

type StaffMember struct {
	ID         int64     `json:"id"`
	BusinessID int64     `json:"businessID"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	Role       StaffRole `json:"role"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	Version    int32     `json:"-"`
}
