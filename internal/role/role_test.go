package role

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"1", Admin, false},
		{"2", CSR, false},
		{"3", Vendor, false},
		{"0", 0, true},
		{"4", 0, true},
		{"admin", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownRole)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoleJSON(t *testing.T) {
	var payload struct {
		Role Role `json:"role"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"role":"3"}`), &payload))
	assert.Equal(t, Vendor, payload.Role)

	require.NoError(t, json.Unmarshal([]byte(`{"role":1}`), &payload))
	assert.Equal(t, Admin, payload.Role)

	assert.Error(t, json.Unmarshal([]byte(`{"role":"9"}`), &payload))

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"1"}`, string(out))
}

func TestCan(t *testing.T) {
	assert.True(t, Can(Admin, ResolveCancellation))
	assert.False(t, Can(CSR, ResolveCancellation))
	assert.False(t, Can(Vendor, ResolveCancellation))

	assert.True(t, Can(Admin, DeliverAnyItem))
	assert.False(t, Can(CSR, DeliverAnyItem))
	assert.False(t, Can(Vendor, DeliverAnyItem))

	assert.True(t, Can(CSR, ViewAllOrders))
	assert.False(t, Can(Vendor, ViewAllOrders))

	// dashboard card visibility
	assert.False(t, Can(Vendor, ViewCustomerStats))
	assert.False(t, Can(Vendor, ViewStaffStats))
	assert.False(t, Can(CSR, ViewCatalogStats))
	assert.True(t, Can(Vendor, ViewCatalogStats))

	assert.True(t, Can(Vendor, CreateProducts))
	assert.False(t, Can(Admin, CreateProducts))

	assert.False(t, Can(Role(42), ViewAllOrders))
}

func TestRequire(t *testing.T) {
	assert.NoError(t, Require(Admin, ViewAudit))

	err := Require(Vendor, ManageUsers)
	assert.ErrorIs(t, err, ErrNotPermitted)
	assert.Contains(t, err.Error(), "users:manage")
}

func TestCapabilities(t *testing.T) {
	assert.Equal(t, []Capability{CreateProducts, ViewReviews, ViewCatalogStats}, Capabilities(Vendor))
	assert.Len(t, Capabilities(Admin), 10)
	assert.Empty(t, Capabilities(Role(0)))
}

func TestNavigation(t *testing.T) {
	titles := func(items []NavItem) []string {
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, it.Title)
		}
		return out
	}

	assert.Equal(t, []string{"Dashboard", "Customers", "Products", "Users", "Orders"}, titles(Navigation(Admin)))
	assert.Equal(t, []string{"Dashboard", "Customers", "Users", "Orders"}, titles(Navigation(CSR)))
	assert.Equal(t, []string{"Dashboard", "Products", "Orders", "Reviews"}, titles(Navigation(Vendor)))
	assert.Nil(t, Navigation(Role(0)))
}
