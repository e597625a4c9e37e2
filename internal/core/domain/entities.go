package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleManager Role = "manager"
	RoleTenant  Role = "tenant"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleManager || r == RoleTenant
}

// TenantStatus represents tenant lifecycle status
type TenantStatus string

const (
	TenantActive   TenantStatus = "active"
	TenantInactive TenantStatus = "inactive"
	TenantEvicted  TenantStatus = "evicted"
	TenantMovedOut TenantStatus = "moved_out"
)

// Valid reports whether s is a known tenant status.
func (s TenantStatus) Valid() bool {
	switch s {
	case TenantActive, TenantInactive, TenantEvicted, TenantMovedOut:
		return true
	}
	return false
}

// MaintenanceStatus represents maintenance request status.
// Any status may transition to any other status.
type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "pending"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
	MaintenanceCancelled  MaintenanceStatus = "cancelled"
)

// Valid reports whether s is a known maintenance status.
func (s MaintenanceStatus) Valid() bool {
	switch s {
	case MaintenancePending, MaintenanceInProgress, MaintenanceCompleted, MaintenanceCancelled:
		return true
	}
	return false
}

// User represents a user in the domain layer
type User struct {
	ID        uint
	Username  string
	Email     string
	Password  string // Hashed
	Role      Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RefreshToken represents a refresh token in the domain
type RefreshToken struct {
	ID        uint
	UserID    uint
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
