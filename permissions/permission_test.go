package permissions_test

import (
	"clinic/permissions"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name      string
		path      string
		method    string
		wantSkip  bool
		wantRoles []string
	}{
		{name: "login is public", path: "/v1/auth/login", method: http.MethodPost, wantSkip: true},
		{name: "register needs a superadmin", path: "/v1/auth/register", method: http.MethodPost, wantRoles: []string{"superadmin"}},
		{name: "booking is open to operators", path: "/v1/reservations", method: http.MethodPost, wantRoles: []string{"admin", "superadmin"}},
		{name: "trailing slash", path: "/v1/reservations/", method: http.MethodPost, wantRoles: []string{"admin", "superadmin"}},
		{name: "route pattern", path: "/v1/reservations/{id}/cancel", method: http.MethodPost, wantRoles: []string{"admin", "superadmin"}},
		{name: "admin management", path: "/v1/admins/{id}", method: http.MethodPut, wantRoles: []string{"superadmin"}},
		{name: "refund intake", path: "/v1/refunds", method: http.MethodPost, wantRoles: []string{"admin", "superadmin"}},
		{name: "disease removal", path: "/v1/diseases/{id}", method: http.MethodDelete, wantRoles: []string{"superadmin"}},
		{name: "unknown route", path: "/v1/unknown", method: http.MethodGet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.wantSkip, permission.Skip)
			assert.Equal(t, tt.wantRoles, permission.Permissions)
		})
	}
}

func TestParse(t *testing.T) {
	_, err := permissions.Parse([]byte(`{"endpoints":`))
	assert.Error(t, err)

	data, err := permissions.Parse([]byte(`{"skip":true,"endpoints":[]}`))
	require.NoError(t, err)
	assert.True(t, data.Skip)
	assert.Empty(t, data.FindPermissions("/", http.MethodGet).Permissions)
}
