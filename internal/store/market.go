package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/foodflow/internal/common"
	"github.com/dmitrijs2005/foodflow/internal/models"
)

// UnknownSeller is shown when an item's business_id does not resolve;
// dangling references are tolerated rather than enforced.
const UnknownSeller = "Unknown"

// AddListing creates a new food item for the active business, expiring
// the given number of hours from now, and puts it up for sale.
func (s *Store) AddListing(ctx context.Context, name, category string, price, weight float64, distance string, hours float64) (models.FoodItem, error) {
	b := s.activeBusiness
	if b == nil {
		return models.FoodItem{}, common.ErrNoActiveBusiness
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.FoodItem{}, fmt.Errorf("%w: item name is required", common.ErrValidation)
	}
	if price < 0 || weight < 0 {
		return models.FoodItem{}, fmt.Errorf("%w: price and weight must not be negative", common.ErrValidation)
	}

	item := models.NewFoodItem(name, category, price, weight, distance, b.ID, models.ExpiryIn(hours), s.now())
	s.pool = append(s.pool, &item)

	if err := s.Save(ctx); err != nil {
		return models.FoodItem{}, err
	}
	return item, nil
}

// Purchase completes a simulated sale of the given item to the active
// user: a snapshot of the item goes into the buyer's history, the item
// leaves the pool (and with it the seller's listings view), and the
// seller is credited and notified. A dangling seller reference skips
// the credit but the purchase still succeeds.
func (s *Store) Purchase(ctx context.Context, itemID string) (models.FoodItem, error) {
	u := s.activeUser
	if u == nil {
		return models.FoodItem{}, common.ErrNoActiveUser
	}

	idx := -1
	for i, item := range s.pool {
		if item.ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.FoodItem{}, common.ErrorNotFound
	}

	snapshot := *s.pool[idx]
	s.pool = append(s.pool[:idx], s.pool[idx+1:]...)
	u.Purchases = append(u.Purchases, snapshot)

	if seller := s.findBusinessByID(snapshot.BusinessID); seller != nil {
		seller.Cash += snapshot.Price
		seller.Notifications = append(seller.Notifications,
			fmt.Sprintf("%s bought %s for $%.2f on %s",
				u.Name, snapshot.Name, snapshot.Price, s.now().Format("2006-01-02 15:04")))
	}

	if err := s.Save(ctx); err != nil {
		return models.FoodItem{}, err
	}
	return snapshot, nil
}

// Withdraw pays out the active business's full balance and resets it to
// zero. Partial withdrawals do not exist.
func (s *Store) Withdraw(ctx context.Context) (float64, error) {
	b := s.activeBusiness
	if b == nil {
		return 0, common.ErrNoActiveBusiness
	}
	amount := b.Cash
	b.Cash = 0
	if err := s.Save(ctx); err != nil {
		// the payout did not persist, the balance is still owed
		b.Cash = amount
		return 0, err
	}
	return amount, nil
}

// Items returns the unexpired items currently for sale, in listing
// order.
func (s *Store) Items() []models.FoodItem {
	now := s.now()
	items := make([]models.FoodItem, 0, len(s.pool))
	for _, item := range s.pool {
		if item.Expiry.After(now) {
			items = append(items, *item)
		}
	}
	return items
}

// Listings returns the active pool entries belonging to one business.
func (s *Store) Listings(businessID string) []models.FoodItem {
	items := make([]models.FoodItem, 0)
	for _, item := range s.pool {
		if item.BusinessID == businessID {
			items = append(items, *item)
		}
	}
	return items
}

// Search returns unexpired items whose name or category contains the
// query, case-insensitively.
func (s *Store) Search(query string) []models.FoodItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.Items()
	}
	matched := make([]models.FoodItem, 0)
	for _, item := range s.Items() {
		if strings.Contains(strings.ToLower(item.Name), q) ||
			strings.Contains(strings.ToLower(item.Category), q) {
			matched = append(matched, item)
		}
	}
	return matched
}

// ItemsByCategory returns unexpired items in the given category.
func (s *Store) ItemsByCategory(category string) []models.FoodItem {
	matched := make([]models.FoodItem, 0)
	for _, item := range s.Items() {
		if strings.EqualFold(item.Category, category) {
			matched = append(matched, item)
		}
	}
	return matched
}

// Recommended returns up to n unexpired items, soonest expiry first,
// cheapest first among equal expiries.
func (s *Store) Recommended(n int) []models.FoodItem {
	items := s.Items()
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Expiry.Equal(items[j].Expiry) {
			return items[i].Expiry.Before(items[j].Expiry)
		}
		return items[i].Price < items[j].Price
	})
	if len(items) > n {
		items = items[:n]
	}
	return items
}

// SellerName resolves an item's business id to a display name, or
// UnknownSeller for a dangling reference.
func (s *Store) SellerName(businessID string) string {
	if b := s.findBusinessByID(businessID); b != nil {
		return b.Name
	}
	return UnknownSeller
}

// MoneySaved sums the active user's purchase prices. Without an active
// user it is zero.
func (s *Store) MoneySaved() float64 {
	if s.activeUser == nil {
		return 0
	}
	var sum float64
	for _, p := range s.activeUser.Purchases {
		sum += p.Price
	}
	return sum
}

// Activity is one entry of the recent-purchases feed.
type Activity struct {
	Buyer string
	Item  models.FoodItem
}

// RecentActivity returns up to n purchases across all users, most
// recently expiring first.
func (s *Store) RecentActivity(n int) []Activity {
	feed := make([]Activity, 0)
	for _, u := range s.users {
		for _, p := range u.Purchases {
			feed = append(feed, Activity{Buyer: u.Name, Item: p})
		}
	}
	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Item.Expiry.After(feed[j].Item.Expiry)
	})
	if len(feed) > n {
		feed = feed[:n]
	}
	return feed
}
