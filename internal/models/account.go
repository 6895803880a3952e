package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/dmitrijs2005/foodflow/internal/cryptox"
	"github.com/google/uuid"
)

// User is an individual buyer account. Purchases holds snapshot copies
// of bought items, not references into any live listing.
type User struct {
	Username    string             `json:"username"`
	Password    cryptox.Credential `json:"password"`
	Name        string             `json:"name"`
	ID          string             `json:"id"`
	Purchases   []FoodItem         `json:"purchases"`
	SecQuestion string             `json:"sec_q"`
	SecAnswer   string             `json:"sec_a"`
}

// Business is a seller account. Listings is populated only when the
// account is serialized; at run time the store derives a business's
// listings from the single active-item pool, so this field must not be
// read as state.
type Business struct {
	Username      string             `json:"username"`
	Password      cryptox.Credential `json:"password"`
	Name          string             `json:"name"`
	ID            string             `json:"id"`
	Listings      []FoodItem         `json:"listings"`
	Cash          float64            `json:"cash"`
	Notifications []string           `json:"notifications"`
	SecQuestion   string             `json:"sec_q"`
	SecAnswer     string             `json:"sec_a"`
}

// NewUser creates a user with a fresh id and a hashed password.
func NewUser(username, password, name string, secQ, secA string) *User {
	return &User{
		Username:    username,
		Password:    cryptox.HashPassword(password, nil, 0),
		Name:        name,
		ID:          uuid.NewString(),
		Purchases:   []FoodItem{},
		SecQuestion: secQ,
		SecAnswer:   secA,
	}
}

// NewBusiness creates a business with a fresh id and a hashed password.
func NewBusiness(username, password, name string, secQ, secA string) *Business {
	return &Business{
		Username:      username,
		Password:      cryptox.HashPassword(password, nil, 0),
		Name:          name,
		ID:            uuid.NewString(),
		Listings:      []FoodItem{},
		Cash:          0,
		Notifications: []string{},
		SecQuestion:   secQ,
		SecAnswer:     secA,
	}
}

// CheckSecurityAnswer compares a recovery answer case-insensitively.
// The candidate is trimmed; an empty stored answer never matches.
func CheckSecurityAnswer(stored, candidate string) bool {
	if stored == "" {
		return false
	}
	return strings.EqualFold(stored, strings.TrimSpace(candidate))
}

// RawAccount is the loosely-typed wire form shared by users and
// businesses. Password is kept raw because legacy documents store it as
// a bare plaintext string instead of a credential object.
type RawAccount struct {
	Username      string          `json:"username"`
	Password      json.RawMessage `json:"password"`
	Name          string          `json:"name"`
	ID            string          `json:"id"`
	Purchases     []RawFoodItem   `json:"purchases"`
	Listings      []RawFoodItem   `json:"listings"`
	Cash          float64         `json:"cash"`
	Notifications []string        `json:"notifications"`
	SecQuestion   string          `json:"sec_q"`
	SecAnswer     string          `json:"sec_a"`
}

// ResolvePassword resolves the password union of a raw record.
//
// An object decodes as an existing credential and is returned as-is,
// never re-hashed (resolution is idempotent). A bare string is a legacy
// plaintext password and is hashed; migrated reports that case so the
// caller can log it. A missing or unrecognizable value yields a zero
// credential, which can never be verified against.
func ResolvePassword(raw json.RawMessage) (cred cryptox.Credential, migrated bool) {
	if len(raw) == 0 {
		return cryptox.Credential{}, false
	}
	var c cryptox.Credential
	if err := json.Unmarshal(raw, &c); err == nil && !c.IsZero() {
		return c, false
	}
	var plaintext string
	if err := json.Unmarshal(raw, &plaintext); err == nil && plaintext != "" {
		return cryptox.HashPassword(plaintext, nil, 0), true
	}
	return cryptox.Credential{}, false
}

// ResolveUser converts a raw record into a User. Missing display names
// fall back to the username, missing ids get fresh ones, and bad nested
// purchase expiries fall back leniently (see RawFoodItem.Resolve).
func (r RawAccount) ResolveUser(now time.Time) (*User, AccountResolution) {
	cred, migrated := ResolvePassword(r.Password)
	purchases, fallbacks := resolveItems(r.Purchases, now)

	u := &User{
		Username:    r.Username,
		Password:    cred,
		Name:        r.Name,
		ID:          r.ID,
		Purchases:   purchases,
		SecQuestion: r.SecQuestion,
		SecAnswer:   r.SecAnswer,
	}
	if u.Name == "" {
		u.Name = u.Username
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return u, AccountResolution{PasswordMigrated: migrated, ExpiryFallbacks: fallbacks}
}

// ResolveBusiness converts a raw record into a Business. The raw
// listings array is resolved and returned on the value so the store can
// merge it into the active pool; it is not authoritative on its own.
func (r RawAccount) ResolveBusiness(now time.Time) (*Business, AccountResolution) {
	cred, migrated := ResolvePassword(r.Password)
	listings, fallbacks := resolveItems(r.Listings, now)

	b := &Business{
		Username:      r.Username,
		Password:      cred,
		Name:          r.Name,
		ID:            r.ID,
		Listings:      listings,
		Cash:          r.Cash,
		Notifications: r.Notifications,
		SecQuestion:   r.SecQuestion,
		SecAnswer:     r.SecAnswer,
	}
	if b.Name == "" {
		b.Name = b.Username
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Notifications == nil {
		b.Notifications = []string{}
	}
	return b, AccountResolution{PasswordMigrated: migrated, ExpiryFallbacks: fallbacks}
}

// AccountResolution reports the lenient repairs taken while resolving a
// raw account record.
type AccountResolution struct {
	PasswordMigrated bool
	ExpiryFallbacks  int
}
