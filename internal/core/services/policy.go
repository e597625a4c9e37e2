package services

import "crossroads-renthub/internal/core/domain"

// Policy answers authorization questions for the two roles. Managers
// administer the portfolio; tenants only read their own records.
type Policy struct{}

// NewPolicy creates a new policy
func NewPolicy() *Policy {
	return &Policy{}
}

// IsManager reports whether the role is the manager role
func (p *Policy) IsManager(role string) bool {
	return domain.Role(role) == domain.RoleManager
}

// CanManageTenants reports whether the role may create, update or delete tenants
func (p *Policy) CanManageTenants(role string) bool {
	return p.IsManager(role)
}

// CanManageHouses reports whether the role may administer the house inventory
func (p *Policy) CanManageHouses(role string) bool {
	return p.IsManager(role)
}

// CanRecordPayments reports whether the role may record rent payments
func (p *Policy) CanRecordPayments(role string) bool {
	return p.IsManager(role)
}

// CanManageCharges reports whether the role may create and settle charges
func (p *Policy) CanManageCharges(role string) bool {
	return p.IsManager(role)
}

// CanUpdateMaintenance reports whether the role may change request status
func (p *Policy) CanUpdateMaintenance(role string) bool {
	return p.IsManager(role)
}

// CanViewTenant reports whether a user may read the given tenant record.
// Managers see everyone; a tenant only their own linked record.
func (p *Policy) CanViewTenant(role string, userID uint, tenantUserID *uint) bool {
	if p.IsManager(role) {
		return true
	}
	return tenantUserID != nil && *tenantUserID == userID
}
