package rbac

import (
	"strings"
)

// Role represents a staff access tier.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSales      Role = "sales"
	RoleWarehouse  Role = "warehouse"
	RoleTechnician Role = "technician"
)

// Capability represents a discrete feature toggle which can be checked in handlers and templates.
type Capability string

const (
	CapOrdersCreate        Capability = "orders.create"
	CapOrdersPrepare       Capability = "orders.prepare"
	CapPCBuildsManage      Capability = "pcbuilds.manage"
	CapProductUnitsManage  Capability = "productunits.manage"
	CapSubcategoriesManage Capability = "subcategories.manage"
	CapWarrantyManage      Capability = "warranty.manage"
)

// capabilityRoles maps each capability to the roles permitted to access it.
var capabilityRoles = map[Capability]Roles{
	CapOrdersCreate:        {RoleAdmin, RoleSales},
	CapOrdersPrepare:       {RoleAdmin, RoleWarehouse},
	CapPCBuildsManage:      {RoleAdmin, RoleSales, RoleTechnician},
	CapProductUnitsManage:  {RoleAdmin, RoleWarehouse},
	CapSubcategoriesManage: {RoleAdmin, RoleSales},
	CapWarrantyManage:      {RoleAdmin, RoleTechnician},
}

// Roles captures a list of roles and exposes intersection checks used for RBAC evaluation.
type Roles []Role

// Has returns true if the provided role exists in the set.
func (rs Roles) Has(role Role) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}

// Intersects returns true if any role in the candidate slice is also present in the set.
func (rs Roles) Intersects(candidate Roles) bool {
	for _, role := range candidate {
		if rs.Has(role) {
			return true
		}
	}
	return false
}

// NormaliseRoles converts raw role strings into canonical Role values.
func NormaliseRoles(raw []string) Roles {
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[Role]struct{}, len(raw))
	roles := make(Roles, 0, len(raw))
	for _, val := range raw {
		role := Role(strings.ToLower(strings.TrimSpace(val)))
		if role == "" {
			continue
		}
		if _, ok := seen[role]; ok {
			continue
		}
		seen[role] = struct{}{}
		roles = append(roles, role)
	}
	return roles
}

// RolesForCapability returns the configured roles able to access the capability.
func RolesForCapability(cap Capability) Roles {
	if roles, ok := capabilityRoles[cap]; ok {
		return roles
	}
	return nil
}

// HasAnyRole reports whether the intersection between user roles and required roles is non-empty.
func HasAnyRole(userRoles []string, required Roles) bool {
	roles := NormaliseRoles(userRoles)
	if roles.Has(RoleAdmin) {
		return true
	}
	return required.Intersects(roles)
}

// HasCapability reports whether the provided roles grant access to the capability.
// Admin users implicitly possess every defined capability.
func HasCapability(userRoles []string, capability Capability) bool {
	if capability == "" {
		return true
	}
	allowed := RolesForCapability(capability)
	if len(allowed) == 0 {
		return false
	}
	roles := NormaliseRoles(userRoles)
	if roles.Has(RoleAdmin) {
		return true
	}
	return allowed.Intersects(roles)
}

// CapabilitiesForRoles enumerates the capabilities accessible to the provided user roles.
func CapabilitiesForRoles(userRoles []string) map[Capability]bool {
	roles := NormaliseRoles(userRoles)
	caps := make(map[Capability]bool, len(capabilityRoles))
	if roles.Has(RoleAdmin) {
		for cap := range capabilityRoles {
			caps[cap] = true
		}
		return caps
	}
	for capability, allowed := range capabilityRoles {
		if allowed.Intersects(roles) {
			caps[capability] = true
		}
	}
	return caps
}

// RoleLabel returns the Vietnamese display name for a role.
func RoleLabel(role Role) string {
	switch role {
	case RoleAdmin:
		return "Quản trị viên"
	case RoleSales:
		return "Nhân viên bán hàng"
	case RoleWarehouse:
		return "Nhân viên kho"
	case RoleTechnician:
		return "Kỹ thuật viên"
	default:
		return string(role)
	}
}
