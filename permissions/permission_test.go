package permissions_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"tourizto/permissions"
)

func TestGet(t *testing.T) {
	data := permissions.Get()

	assert.NotNil(t, data)
	assert.False(t, data.Skip)
	assert.NotEmpty(t, data.Endpoints)
}

func TestFindPermissions_PublicBookingSurface(t *testing.T) {
	data := permissions.Get()

	public := []struct {
		path   string
		method string
	}{
		{"/v1/bookings/", http.MethodPost},
		{"/v1/bookings/", http.MethodGet},
		{"/v1/bookings/{id}", http.MethodGet},
		{"/v1/bookings/{id}/status", http.MethodPatch},
	}

	for _, endpoint := range public {
		permission := data.FindPermissions(endpoint.path, endpoint.method)

		assert.True(t, permission.Skip, "%s %s should not require a token", endpoint.method, endpoint.path)
	}
}

func TestFindPermissions_AdminSurface(t *testing.T) {
	data := permissions.Get()

	admin := []struct {
		path   string
		method string
	}{
		{"/v1/users/", http.MethodGet},
		{"/v1/users/{id}", http.MethodGet},
		{"/v1/users/{id}/status", http.MethodPatch},
		{"/v1/users/{id}/role", http.MethodPatch},
		{"/v1/places/", http.MethodPost},
		{"/v1/places/{id}", http.MethodPatch},
		{"/v1/places/{id}", http.MethodDelete},
	}

	for _, endpoint := range admin {
		permission := data.FindPermissions(endpoint.path, endpoint.method)

		assert.False(t, permission.Skip)
		assert.Contains(t, permission.Permissions, "admin", "%s %s should be admin only", endpoint.method, endpoint.path)
	}
}

func TestFindPermissions_NoBookingDelete(t *testing.T) {
	data := permissions.Get()

	permission := data.FindPermissions("/v1/bookings/{id}", http.MethodDelete)

	assert.Equal(t, permissions.Permission{}, permission)
}

func TestFindPermissions_UnknownEndpoint(t *testing.T) {
	data := permissions.Get()

	permission := data.FindPermissions("/v1/unknown", http.MethodGet)

	assert.Empty(t, permission.Path)
	assert.False(t, permission.Skip)
}
