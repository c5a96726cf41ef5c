// Package cartclient is the storefront-side cart controller. It owns the
// in-memory cart, mirrors it to local persistent storage, and keeps the
// server-side cart in sync while a user is signed in.
package cartclient

import (
	"context"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/batibatii/textilecom-sub000/models"
)

// Syncer pushes cart state to the server. Implemented by HTTPSyncer.
type Syncer interface {
	// Save replaces the server cart with the full current item list.
	Save(ctx context.Context, items []models.CartItem) error
	// Merge reconciles the local anonymous cart with the saved server cart
	// and returns the merged result.
	Merge(ctx context.Context, items []models.CartItem) ([]models.CartItem, error)
}

// Storage is the local persistent mirror of the cart.
type Storage interface {
	Load() ([]models.CartItem, error)
	Store(items []models.CartItem) error
	Clear() error
}

// Controller is the client cart state machine. All mutations apply to memory
// synchronously, mirror to local storage, and (while signed in) push the full
// item list to the server fire-and-forget: a failed push never blocks or
// rolls back the local mutation, because the next successful push carries the
// complete current state anyway.
type Controller struct {
	mu      sync.Mutex
	items   []models.CartItem
	userID  string // "" while anonymous
	loading bool   // true while a login merge is in flight; suppresses pushes

	storage Storage
	syncer  Syncer
	syncs   sync.WaitGroup
}

// New loads the locally mirrored cart best-effort: a missing or unreadable
// mirror is logged and treated as an empty cart, never a failure.
func New(storage Storage, syncer Syncer) *Controller {
	c := &Controller{storage: storage, syncer: syncer}

	items, err := storage.Load()
	if err != nil {
		log.Printf("cart storage load error: %v", err)
		items = nil
	}
	c.items = items
	return c
}

// SetAuthState feeds the auth-state signal into the controller.
//
// anonymous → signed-in runs the login merge: the local cart is the incoming
// side, the saved server cart the existing side, and the merged result
// replaces local state. The loading guard holds back mutation pushes until
// the merge has fully completed, so a quick add-to-cart cannot race ahead of
// the merge and be clobbered by it.
//
// signed-in → anonymous clears memory and the local mirror; the server cart
// is left intact for the next login.
func (c *Controller) SetAuthState(ctx context.Context, userID string) {
	c.mu.Lock()
	if userID == c.userID {
		c.mu.Unlock()
		return
	}

	if userID == "" {
		c.userID = ""
		c.items = nil
		c.mu.Unlock()

		if err := c.storage.Clear(); err != nil {
			log.Printf("cart storage clear error: %v", err)
		}
		return
	}

	c.userID = userID
	c.loading = true
	local := snapshot(c.items)
	c.mu.Unlock()

	merged, err := c.syncer.Merge(ctx, local)

	c.mu.Lock()
	c.loading = false
	if err != nil {
		// Keep the local cart; the next successful sync reconciles.
		c.mu.Unlock()
		log.Printf("cart merge failed: %v", err)
		return
	}
	c.items = merged
	items := snapshot(c.items)
	c.mu.Unlock()

	c.mirror(items)
}

// AddItem adds the item's quantity to an existing (productId, size) line or
// appends a new line.
func (c *Controller) AddItem(item models.CartItem) {
	if item.Quantity <= 0 {
		return
	}

	c.mu.Lock()
	key := item.Key()
	found := false
	for i := range c.items {
		if c.items[i].Key() == key {
			c.items[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		c.items = append(c.items, item)
	}
	items, push := c.afterMutationLocked()
	c.mu.Unlock()

	c.persist(items, push)
}

// RemoveItem drops the (productId, size) line entirely.
func (c *Controller) RemoveItem(productID, size string) {
	c.mu.Lock()
	c.removeLocked(models.CartKey{ProductID: productID, Size: size})
	items, push := c.afterMutationLocked()
	c.mu.Unlock()

	c.persist(items, push)
}

// UpdateQuantity replaces a line's quantity in place. A quantity of zero or
// less removes the line; a cart never stores a non-positive quantity.
func (c *Controller) UpdateQuantity(productID, size string, quantity int) {
	c.mu.Lock()
	key := models.CartKey{ProductID: productID, Size: size}
	if quantity <= 0 {
		c.removeLocked(key)
	} else {
		for i := range c.items {
			if c.items[i].Key() == key {
				c.items[i].Quantity = quantity
				break
			}
		}
	}
	items, push := c.afterMutationLocked()
	c.mu.Unlock()

	c.persist(items, push)
}

// Clear empties the cart. While signed in the empty list is pushed too, so
// the server cart reflects the intentional emptying.
func (c *Controller) Clear() {
	c.mu.Lock()
	c.items = nil
	items, push := c.afterMutationLocked()
	c.mu.Unlock()

	c.persist(items, push)
}

// Items returns a copy of the current cart lines.
func (c *Controller) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return snapshot(c.items)
}

// Subtotal is the sum of discounted unit price times quantity.
func (c *Controller) Subtotal() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.Subtotal(c.items)
}

// Flush blocks until every queued server push has finished. Useful on
// shutdown so a just-applied mutation isn't lost with the process.
func (c *Controller) Flush() {
	c.syncs.Wait()
}

func (c *Controller) removeLocked(key models.CartKey) {
	for i := range c.items {
		if c.items[i].Key() == key {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *Controller) afterMutationLocked() ([]models.CartItem, bool) {
	return snapshot(c.items), c.userID != "" && !c.loading
}

func (c *Controller) persist(items []models.CartItem, push bool) {
	c.mirror(items)

	if !push {
		return
	}
	c.syncs.Add(1)
	go func() {
		defer c.syncs.Done()
		// Best-effort, no timeout: eventual consistency is acceptable for
		// cart state, and the next push carries the full current list.
		if err := c.syncer.Save(context.Background(), items); err != nil {
			log.Printf("cart sync failed: %v", err)
		}
	}()
}

func (c *Controller) mirror(items []models.CartItem) {
	if err := c.storage.Store(items); err != nil {
		log.Printf("cart storage store error: %v", err)
	}
}

func snapshot(items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out
}
