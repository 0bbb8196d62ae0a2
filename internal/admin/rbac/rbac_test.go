package rbac

import "testing"

func TestHasCapabilityMatrix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		roles      []string
		capability Capability
		want       bool
	}{
		{
			name:       "admin has defined capability",
			roles:      []string{"admin"},
			capability: CapWarrantyManage,
			want:       true,
		},
		{
			name:       "admin denied for undefined capability",
			roles:      []string{"admin"},
			capability: Capability("made.up"),
			want:       false,
		},
		{
			name:       "sales can create orders",
			roles:      []string{"sales"},
			capability: CapOrdersCreate,
			want:       true,
		},
		{
			name:       "sales cannot prepare orders",
			roles:      []string{"sales"},
			capability: CapOrdersPrepare,
			want:       false,
		},
		{
			name:       "warehouse manages product units",
			roles:      []string{"warehouse"},
			capability: CapProductUnitsManage,
			want:       true,
		},
		{
			name:       "warehouse cannot touch warranty",
			roles:      []string{"warehouse"},
			capability: CapWarrantyManage,
			want:       false,
		},
		{
			name:       "technician manages pc builds",
			roles:      []string{"technician"},
			capability: CapPCBuildsManage,
			want:       true,
		},
		{
			name:       "roles are case insensitive",
			roles:      []string{" Technician "},
			capability: CapWarrantyManage,
			want:       true,
		},
		{
			name:       "combined roles inherit union of capabilities",
			roles:      []string{"warehouse", "technician"},
			capability: CapWarrantyManage,
			want:       true,
		},
		{
			name:       "unknown role grants nothing",
			roles:      []string{"unknown"},
			capability: CapOrdersCreate,
			want:       false,
		},
		{
			name:       "empty capability defaults to visible",
			roles:      []string{"sales"},
			capability: Capability(""),
			want:       true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := HasCapability(tc.roles, tc.capability); got != tc.want {
				t.Fatalf("HasCapability(%v, %q) = %v, want %v", tc.roles, tc.capability, got, tc.want)
			}
		})
	}
}

func TestCapabilitiesForRoles(t *testing.T) {
	t.Parallel()

	caps := CapabilitiesForRoles([]string{"sales"})
	if !caps[CapSubcategoriesManage] {
		t.Fatalf("sales should have CapSubcategoriesManage")
	}
	if caps[CapProductUnitsManage] {
		t.Fatalf("sales must not have CapProductUnitsManage")
	}

	all := CapabilitiesForRoles([]string{"admin"})
	if len(all) != 6 {
		t.Fatalf("admin should hold every capability, got %d", len(all))
	}
}

func TestHasAnyRole(t *testing.T) {
	t.Parallel()

	if !HasAnyRole([]string{"sales"}, Roles{RoleSales}) {
		t.Fatal("sales should satisfy role requirement")
	}
	if HasAnyRole([]string{"warehouse"}, Roles{RoleSales}) {
		t.Fatal("warehouse should not satisfy sales-only requirement")
	}
	if !HasAnyRole([]string{"technician"}, Roles{RoleSales, RoleTechnician}) {
		t.Fatal("technician should satisfy sales-or-technician requirement")
	}
	if !HasAnyRole([]string{"unknown", "admin"}, Roles{RoleWarehouse}) {
		t.Fatal("admin should satisfy requirement even when other roles unknown")
	}
}

func TestRoleLabel(t *testing.T) {
	t.Parallel()

	if got := RoleLabel(RoleWarehouse); got != "Nhân viên kho" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := RoleLabel(Role("guest")); got != "guest" {
		t.Fatalf("unknown roles should fall back to raw value, got %q", got)
	}
}
