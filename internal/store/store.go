package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/foodflow/internal/config"
	"github.com/dmitrijs2005/foodflow/internal/logging"
	"github.com/dmitrijs2005/foodflow/internal/models"
)

// Store is the single owner of all application state. No other
// component mutates the collections directly; every user action goes
// through a Store method, and every mutating method persists the full
// document synchronously before returning.
type Store struct {
	path      string
	timeout   time.Duration
	retention time.Duration
	log       logging.Logger
	now       func() time.Time

	users      []*models.User
	businesses []*models.Business
	pool       []*models.FoodItem

	activeUser     *models.User
	activeBusiness *models.Business
}

// New constructs a Store from configuration. The store is empty until
// Open is called.
func New(cfg *config.Config, log logging.Logger) *Store {
	return &Store{
		path:      cfg.DataFile,
		timeout:   cfg.LoadTimeout,
		retention: cfg.RetentionWindow,
		log:       log,
		now:       time.Now,
	}
}

// Open loads the persisted document (with the startup timeout) and
// resolves it into typed state, then immediately saves. The save-back
// migrates any legacy plaintext passwords it found and re-establishes
// the canonical file shape.
func (s *Store) Open(ctx context.Context) error {
	doc := ReadDocumentWithTimeout(ctx, s.path, s.timeout, s.log)
	s.apply(ctx, doc)
	return s.Save(ctx)
}

// apply resolves a raw document into the store's typed collections.
// Records that fail to decode are skipped with a warning; everything
// else is repaired leniently (see the models package).
func (s *Store) apply(ctx context.Context, doc *Document) {
	now := s.now()

	for _, raw := range doc.Users {
		var ra models.RawAccount
		if err := json.Unmarshal(raw, &ra); err != nil {
			s.log.Warn(ctx, "skipping undecodable user record", "error", err)
			continue
		}
		u, res := ra.ResolveUser(now)
		s.logResolution(ctx, "user", u.Username, res)
		s.users = append(s.users, u)
	}

	for _, raw := range doc.Businesses {
		var ra models.RawAccount
		if err := json.Unmarshal(raw, &ra); err != nil {
			s.log.Warn(ctx, "skipping undecodable business record", "error", err)
			continue
		}
		b, res := ra.ResolveBusiness(now)
		s.logResolution(ctx, "business", b.Username, res)
		// The top-level food_items array is authoritative for what is
		// on sale; a stale per-business listings array must not
		// resurrect sold items into the pool.
		b.Listings = nil
		s.businesses = append(s.businesses, b)
	}

	for _, raw := range doc.FoodItems {
		var rf models.RawFoodItem
		if err := json.Unmarshal(raw, &rf); err != nil {
			s.log.Warn(ctx, "skipping undecodable food item record", "error", err)
			continue
		}
		item, ok := rf.Resolve(now)
		if !ok {
			s.log.Warn(ctx, "food item expiry unparsable, falling back to now", "item", item.Name)
		}
		if s.findItem(item.ID) == nil {
			s.pool = append(s.pool, &item)
		}
	}
}

func (s *Store) logResolution(ctx context.Context, kind, username string, res models.AccountResolution) {
	if res.PasswordMigrated {
		s.log.Warn(ctx, "migrated legacy plaintext password", "kind", kind, "username", username)
	}
	if res.ExpiryFallbacks > 0 {
		s.log.Warn(ctx, "item expiries unparsable, fell back to now", "kind", kind, "username", username, "count", res.ExpiryFallbacks)
	}
}

// canonicalDocument is the typed serialization shape. Listings are
// filled from the pool per business at save time.
type canonicalDocument struct {
	Users      []*models.User     `json:"users"`
	Businesses []*models.Business `json:"businesses"`
	FoodItems  []models.FoodItem  `json:"food_items"`
}

// Save sweeps expired records, serializes every entity in canonical
// form and overwrites the data file in full. There is no atomic rename:
// a crash mid-write can corrupt the file.
// Unlike load, write failures are returned to the caller.
func (s *Store) Save(ctx context.Context) error {
	s.sweep()

	doc := canonicalDocument{
		Users:      make([]*models.User, 0, len(s.users)),
		Businesses: make([]*models.Business, 0, len(s.businesses)),
		FoodItems:  make([]models.FoodItem, 0, len(s.pool)),
	}

	for _, u := range s.users {
		cp := *u
		if cp.Purchases == nil {
			cp.Purchases = []models.FoodItem{}
		}
		doc.Users = append(doc.Users, &cp)
	}
	for _, b := range s.businesses {
		cp := *b
		cp.Listings = s.Listings(b.ID)
		if cp.Notifications == nil {
			cp.Notifications = []string{}
		}
		doc.Businesses = append(doc.Businesses, &cp)
	}
	for _, item := range s.pool {
		doc.FoodItems = append(doc.FoodItems, *item)
	}

	b, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("encode data: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	return nil
}

// sweep drops every item whose expiry is more than the retention window
// in the past, from the pool and from every purchase history. Listings
// are a view over the pool, so the three locations cannot disagree.
func (s *Store) sweep() {
	cutoff := s.now().Add(-s.retention)

	kept := s.pool[:0]
	for _, item := range s.pool {
		if item.Expiry.After(cutoff) {
			kept = append(kept, item)
		}
	}
	s.pool = kept

	for _, u := range s.users {
		purchases := u.Purchases[:0]
		for _, p := range u.Purchases {
			if p.Expiry.After(cutoff) {
				purchases = append(purchases, p)
			}
		}
		u.Purchases = purchases
	}
}

func (s *Store) findItem(id string) *models.FoodItem {
	for _, item := range s.pool {
		if item.ID == id {
			return item
		}
	}
	return nil
}

func (s *Store) findUser(username string) *models.User {
	for _, u := range s.users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

func (s *Store) findBusiness(username string) *models.Business {
	for _, b := range s.businesses {
		if b.Username == username {
			return b
		}
	}
	return nil
}

func (s *Store) findBusinessByID(id string) *models.Business {
	for _, b := range s.businesses {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (s *Store) usernameTaken(username string) bool {
	return s.findUser(username) != nil || s.findBusiness(username) != nil
}
