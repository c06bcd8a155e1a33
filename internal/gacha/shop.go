package gacha

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotInShop is returned when the item is not on today's shelf.
var ErrNotInShop = errors.New("item not in shop")

// PurchaseError reports an offer whose required aura is not owned.
type PurchaseError struct {
	Item         string
	RequiredAura string
}

func (e *PurchaseError) Error() string {
	return fmt.Sprintf("need %s aura to buy %s", e.RequiredAura, e.Item)
}

// TierOffers is one shop tier with today's offers.
type TierOffers struct {
	Tier   string
	Offers []ShopOffer
}

// Shop returns today's offers in catalog tier order.
func (e *Engine) Shop() []TierOffers {
	out := make([]TierOffers, 0, len(e.catalog.Shop))
	for _, tier := range e.catalog.Shop {
		offers, ok := e.state.DailyShop[tier.Name]
		if !ok {
			continue
		}
		out = append(out, TierOffers{Tier: tier.Name, Offers: offers})
	}
	return out
}

// OpenShop runs the daily refresh and the weather interval so the shelf
// shown is current.
func (e *Engine) OpenShop() []TierOffers {
	_ = e.perform(func() error {
		e.UpdateWeather()
		return nil
	})
	return e.Shop()
}

// Buy adds an item from today's shop to the inventory. The name match
// ignores case. A required aura must be owned in its normal form; a shiny
// copy does not count. Buying consumes nothing.
func (e *Engine) Buy(name string) (string, error) {
	var bought string
	err := e.perform(func() error {
		want := strings.TrimSpace(name)
		for _, tier := range e.Shop() {
			for _, o := range tier.Offers {
				if !strings.EqualFold(o.Item, want) {
					continue
				}
				if o.RequiredAura != "" && e.state.AuraCounts[o.RequiredAura] == 0 {
					return &PurchaseError{Item: o.Item, RequiredAura: o.RequiredAura}
				}
				e.state.ItemInventory = append(e.state.ItemInventory, o.Item)
				bought = o.Item
				e.emit(EventPurchased, o.Item, tier.Tier)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrNotInShop, want)
	})
	return bought, err
}
