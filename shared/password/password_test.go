package password_test

import (
	"testing"
	"tourizto/shared/password"

	"github.com/stretchr/testify/assert"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("sarafa-bazaar")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "sarafa-bazaar", hash)

	assert.NoError(t, password.Verify("sarafa-bazaar", hash))
	assert.ErrorIs(t, password.Verify("wrong-password", hash), password.ErrInvalidPassword)
}

func TestHashEmptyPassword(t *testing.T) {
	_, err := password.Hash("")
	assert.Error(t, err)
}

func TestVerifyEmptyInputs(t *testing.T) {
	tests := []struct {
		name     string
		password string
		hash     string
	}{
		{name: "empty password", password: "", hash: "some-hash"},
		{name: "empty hash", password: "some-password", hash: ""},
		{name: "both empty", password: "", hash: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, password.Verify(tt.password, tt.hash), password.ErrInvalidPassword)
		})
	}
}
