package models

import (
	"encoding/json"
	"testing"

	"github.com/dmitrijs2005/foodflow/internal/cryptox"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	u := NewUser("alice", "Passw0rd!", "Alice", "Favourite food?", "pizza")
	require.NotEmpty(t, u.ID)
	require.NotNil(t, u.Purchases)
	require.True(t, cryptox.VerifyPassword(u.Password, "Passw0rd!"))
	require.False(t, cryptox.VerifyPassword(u.Password, "wrong"))
}

func TestNewBusiness(t *testing.T) {
	b := NewBusiness("bakery", "Passw0rd!", "The Bakery", "", "")
	require.NotEmpty(t, b.ID)
	require.Zero(t, b.Cash)
	require.NotNil(t, b.Notifications)
	require.True(t, cryptox.VerifyPassword(b.Password, "Passw0rd!"))
}

func TestResolvePassword_HashedObjectKeptAsIs(t *testing.T) {
	orig := cryptox.HashPassword("Passw0rd!", nil, 0)
	raw, err := json.Marshal(orig)
	require.NoError(t, err)

	cred, migrated := ResolvePassword(raw)
	require.False(t, migrated)
	require.Equal(t, orig, cred, "an already-hashed credential must not be re-hashed")
}

func TestResolvePassword_LegacyPlaintextIsHashed(t *testing.T) {
	cred, migrated := ResolvePassword(json.RawMessage(`"Passw0rd!"`))
	require.True(t, migrated)
	require.True(t, cryptox.VerifyPassword(cred, "Passw0rd!"))
	require.False(t, cryptox.VerifyPassword(cred, "passw0rd!"))
}

func TestResolvePassword_MissingOrMalformedDeniesVerification(t *testing.T) {
	tests := []struct {
		name string
		raw  json.RawMessage
	}{
		{"absent", nil},
		{"null", json.RawMessage(`null`)},
		{"empty string", json.RawMessage(`""`)},
		{"number", json.RawMessage(`42`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred, migrated := ResolvePassword(tt.raw)
			require.False(t, migrated)
			require.False(t, cryptox.VerifyPassword(cred, "anything"))
		})
	}
}

func TestResolveUser(t *testing.T) {
	raw := RawAccount{
		Username: "alice",
		Password: json.RawMessage(`"Passw0rd!"`),
		ID:       "u1",
		Purchases: []RawFoodItem{
			{ID: "i1", Name: "Bread", Expiry: json.RawMessage(`"2025-07-01T08:30:00Z"`)},
			{ID: "i2", Name: "Milk", Expiry: json.RawMessage(`"bogus"`)},
		},
		SecQuestion: "Favourite food?",
		SecAnswer:   "pizza",
	}
	u, res := raw.ResolveUser(testNow)

	require.Equal(t, "alice", u.Name, "display name falls back to username")
	require.True(t, res.PasswordMigrated)
	require.Equal(t, 1, res.ExpiryFallbacks)
	require.Len(t, u.Purchases, 2)
	require.Equal(t, testNow, u.Purchases[1].Expiry)
}

func TestResolveBusiness(t *testing.T) {
	cred, _ := json.Marshal(cryptox.HashPassword("Secret99", nil, 1000))
	raw := RawAccount{
		Username: "bakery",
		Password: cred,
		Name:     "The Bakery",
		ID:       "b1",
		Cash:     12.5,
		Listings: []RawFoodItem{
			{ID: "i1", Name: "Bread", BusinessID: "b1", Expiry: json.RawMessage(`"2025-07-01T08:30:00Z"`)},
		},
	}
	b, res := raw.ResolveBusiness(testNow)

	require.False(t, res.PasswordMigrated)
	require.Equal(t, "The Bakery", b.Name)
	require.Equal(t, 12.5, b.Cash)
	require.NotNil(t, b.Notifications)
	require.Len(t, b.Listings, 1)
	require.True(t, cryptox.VerifyPassword(b.Password, "Secret99"))
}

func TestResolveAccount_MissingIDGetsFreshOne(t *testing.T) {
	u, _ := RawAccount{Username: "x"}.ResolveUser(testNow)
	require.NotEmpty(t, u.ID)

	b, _ := RawAccount{Username: "y"}.ResolveBusiness(testNow)
	require.NotEmpty(t, b.ID)
}

func TestCheckSecurityAnswer(t *testing.T) {
	require.True(t, CheckSecurityAnswer("Pizza", "pizza"))
	require.True(t, CheckSecurityAnswer("pizza", "  PIZZA  "))
	require.False(t, CheckSecurityAnswer("pizza", "pasta"))
	require.False(t, CheckSecurityAnswer("", ""))
	require.False(t, CheckSecurityAnswer("", "anything"))
}
