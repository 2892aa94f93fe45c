package password_test

import (
	"clinic/shared/password"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "plain password", password: "secret123"},
		{name: "persian password", password: "رمزعبور۱۲۳"},
		{name: "empty password", password: "", wantErr: password.ErrEmptyPassword},
		{name: "longer than bcrypt allows", password: strings.Repeat("a", 100), wantErr: password.ErrHashingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hash)

				return
			}

			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(hash, "$2a$"))
			assert.NoError(t, password.Verify(tt.password, hash))
		})
	}
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("secret123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  error
	}{
		{name: "match", password: "secret123", hash: hash},
		{name: "mismatch", password: "secret124", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", password: "secret123", hash: "", wantErr: password.ErrInvalidPassword},
		{name: "malformed hash", password: "secret123", hash: "not-a-hash", wantErr: password.ErrVerifyingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestVerifyWithLegacy(t *testing.T) {
	current, err := password.Hash("new-secret")
	require.NoError(t, err)

	legacy, err := password.Hash("old-secret")
	require.NoError(t, err)

	empty := ""

	tests := []struct {
		name      string
		password  string
		current   string
		legacy    *string
		wantMatch password.Match
		wantErr   error
	}{
		{
			name:      "current hash wins",
			password:  "new-secret",
			current:   current,
			legacy:    &legacy,
			wantMatch: password.MatchCurrent,
		},
		{
			name:      "falls back to legacy hash",
			password:  "old-secret",
			current:   current,
			legacy:    &legacy,
			wantMatch: password.MatchLegacy,
		},
		{
			name:      "legacy only account",
			password:  "old-secret",
			current:   "",
			legacy:    &legacy,
			wantMatch: password.MatchLegacy,
		},
		{
			name:      "no legacy hash",
			password:  "old-secret",
			current:   current,
			legacy:    nil,
			wantMatch: password.MatchNone,
			wantErr:   password.ErrInvalidPassword,
		},
		{
			name:      "empty legacy hash",
			password:  "old-secret",
			current:   current,
			legacy:    &empty,
			wantMatch: password.MatchNone,
			wantErr:   password.ErrInvalidPassword,
		},
		{
			name:      "neither matches",
			password:  "guess",
			current:   current,
			legacy:    &legacy,
			wantMatch: password.MatchNone,
			wantErr:   password.ErrInvalidPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := password.VerifyWithLegacy(tt.password, tt.current, tt.legacy)

			assert.Equal(t, tt.wantMatch, match)

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
