package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/foodflow/internal/models"
	"github.com/dmitrijs2005/foodflow/internal/payment"
)

func (a *App) printItems(items []models.FoodItem) {
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Nothing here right now.")
		return
	}
	for _, item := range items {
		short := item.ID
		if len(short) > 8 {
			short = short[:8]
		}
		fmt.Fprintf(a.out, "  %s  $%.2f • %s • %s • %.1fkg • %s • exp %s\n",
			short, item.Price, item.Name, item.Category, item.Weight,
			a.store.SellerName(item.BusinessID), item.Expiry.Format("2006-01-02 15:04"))
	}
}

// findByPrefix lets the user type the short id shown by printItems.
func findByPrefix(items []models.FoodItem, prefix string) (models.FoodItem, bool) {
	for _, item := range items {
		if len(prefix) > 0 && len(item.ID) >= len(prefix) && item.ID[:len(prefix)] == prefix {
			return item, true
		}
	}
	return models.FoodItem{}, false
}

func (a *App) List(ctx context.Context) error {
	fmt.Fprintln(a.out, "Recommended:")
	a.printItems(a.store.Recommended(2))
	fmt.Fprintln(a.out, "All items:")
	a.printItems(a.store.Items())

	if feed := a.store.RecentActivity(3); len(feed) > 0 {
		fmt.Fprintln(a.out, "Recently rescued:")
		for _, entry := range feed {
			fmt.Fprintf(a.out, "  %s rescued %s ($%.2f)\n",
				entry.Buyer, entry.Item.Name, entry.Item.Price)
		}
	}
	return nil
}

func (a *App) Search(ctx context.Context, query string) error {
	a.printItems(a.store.Search(query))
	return nil
}

func (a *App) Buy(ctx context.Context) error {
	if !a.isUser() {
		fmt.Fprintln(a.out, "Log in as a user to buy.")
		return nil
	}

	id, err := GetSimpleText(a.reader, "Item id (as shown in the list)", a.out)
	if err != nil {
		return err
	}
	item, ok := findByPrefix(a.store.Items(), id)
	if !ok {
		fmt.Fprintln(a.out, "No such item for sale.")
		return nil
	}
	fmt.Fprintf(a.out, "Buying %s for $%.2f from %s\n",
		item.Name, item.Price, a.store.SellerName(item.BusinessID))

	card, err := a.readCard()
	if err != nil {
		return err
	}
	if err := card.Validate(time.Now()); err != nil {
		fmt.Fprintln(a.out, "Payment rejected:", err)
		return err
	}

	bought, err := a.store.Purchase(ctx, item.ID)
	if err != nil {
		fmt.Fprintln(a.out, "Purchase failed:", err)
		return err
	}
	fmt.Fprintf(a.out, "Payment accepted • charged %s • enjoy your %s!\n",
		payment.MaskNumber(card.Number), bought.Name)
	return nil
}

func (a *App) readCard() (payment.Card, error) {
	holder, err := GetSimpleText(a.reader, "Cardholder name", a.out)
	if err != nil {
		return payment.Card{}, err
	}
	number, err := GetSimpleText(a.reader, "Card number", a.out)
	if err != nil {
		return payment.Card{}, err
	}
	expiry, err := GetSimpleText(a.reader, "Expiry (MM/YY)", a.out)
	if err != nil {
		return payment.Card{}, err
	}
	cvv, err := GetPassword("CVV", a.out)
	if err != nil {
		return payment.Card{}, err
	}
	email, err := GetSimpleText(a.reader, "Receipt email (optional)", a.out)
	if err != nil {
		return payment.Card{}, err
	}
	return payment.Card{Holder: holder, Number: number, Expiry: expiry, CVV: cvv, Email: email}, nil
}

func (a *App) Sell(ctx context.Context) error {
	if !a.isBusiness() {
		fmt.Fprintln(a.out, "Log in as a business to sell.")
		return nil
	}

	name, err := GetSimpleText(a.reader, "Item name", a.out)
	if err != nil {
		return err
	}
	category, err := GetSimpleText(a.reader, "Category", a.out)
	if err != nil {
		return err
	}
	price, err := GetFloat(a.reader, "Price ($)", 0, a.out)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	weight, err := GetFloat(a.reader, "Weight (kg)", 0, a.out)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	distance, err := GetSimpleText(a.reader, "Distance (free text)", a.out)
	if err != nil {
		return err
	}
	hours, err := GetFloat(a.reader, "Hours until expiry", 24, a.out)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	item, err := a.store.AddListing(ctx, name, category, price, weight, distance, hours)
	if err != nil {
		fmt.Fprintln(a.out, "Listing failed:", err)
		return err
	}
	fmt.Fprintf(a.out, "Listed %s for $%.2f, expiring %s\n",
		item.Name, item.Price, item.Expiry.Format("2006-01-02 15:04"))
	return nil
}

func (a *App) MyListings(ctx context.Context) error {
	b := a.store.ActiveBusiness()
	if b == nil {
		fmt.Fprintln(a.out, "Log in as a business first.")
		return nil
	}
	a.printItems(a.store.Listings(b.ID))
	return nil
}

func (a *App) Withdraw(ctx context.Context) error {
	amount, err := a.store.Withdraw(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Withdraw failed:", err)
		return err
	}
	fmt.Fprintf(a.out, "Withdrew $%.2f. Balance is now $0.00.\n", amount)
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	switch {
	case a.isUser():
		u := a.store.ActiveUser()
		fmt.Fprintf(a.out, "%s (@%s)\n", u.Name, u.Username)
		fmt.Fprintf(a.out, "Money saved: $%.2f\n", a.store.MoneySaved())
		fmt.Fprintln(a.out, "Purchases:")
		a.printItems(u.Purchases)
	case a.isBusiness():
		b := a.store.ActiveBusiness()
		fmt.Fprintf(a.out, "%s (@%s)\n", b.Name, b.Username)
		fmt.Fprintf(a.out, "Balance: $%.2f\n", b.Cash)
		fmt.Fprintln(a.out, "Listings:")
		a.printItems(a.store.Listings(b.ID))
	default:
		fmt.Fprintln(a.out, "Not logged in.")
	}
	return nil
}
