package store

import (
	"encoding/json"
	"log/slog"
	"sync"

	"gamehub/internal/models"
	"gamehub/internal/repositories"
	"gamehub/internal/storage"

	"github.com/google/uuid"
)

// Cart owns the line-item collection for one client. Local state is the
// source of truth for rendering: every mutation lands in memory and in the
// local-scope snapshot synchronously, while remote mirroring runs as a
// detached best-effort task when an identity is present.
//
// Two rapid mutations of the same product can therefore complete remotely
// out of order; callers get eventual, not strict, consistency between local
// and remote cart state.
type Cart struct {
	mu    sync.Mutex
	items []models.CartItem
	open  bool // transient display flag, never persisted
	user  *models.User

	clientID string
	remote   repositories.CartRepository
	storage  storage.Store
	notifier Notifier
	log      *slog.Logger

	syncs sync.WaitGroup
}

// NewCart creates the cart store for a client, restoring line items from the
// local-scope snapshot. A corrupt snapshot is discarded and the cart starts
// empty.
func NewCart(clientID string, remote repositories.CartRepository, st storage.Store, notifier Notifier, log *slog.Logger) *Cart {
	c := &Cart{
		clientID: clientID,
		remote:   remote,
		storage:  st,
		notifier: notifier,
		log:      log,
	}
	c.restore()
	return c
}

func (c *Cart) restore() {
	raw, err := c.storage.Get(c.clientID, storage.ScopeLocal, storage.KeyCart)
	if err != nil {
		return
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		c.log.Warn("discarding corrupt cart snapshot", "client", c.clientID, "error", err)
		c.storage.Delete(c.clientID, storage.ScopeLocal, storage.KeyCart)
		return
	}
	c.items = items
}

// Items returns a copy of the current line items in display order.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]models.CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// Total is the sum of price times quantity over all items.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}

// ItemCount is the sum of quantities over all items.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var count int
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// IsOpen reports the transient display flag.
func (c *Cart) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// SetOpen mutates only the transient display flag.
func (c *Cart) SetOpen(open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = open
}

// ToggleOpen flips the transient display flag.
func (c *Cart) ToggleOpen() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = !c.open
}

// AddItem merges the product into the cart: an existing line item for the
// product has its quantity incremented, otherwise a new item is appended
// with a local placeholder id. The cart drawer is opened.
func (c *Cart) AddItem(product models.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	existing := c.findLocked(product.ID)
	if existing != nil {
		existing.Quantity += quantity
		item := *existing
		c.persistLocked()
		c.open = true
		user := c.user
		c.mu.Unlock()

		c.mirrorQuantity(user, item)
		c.notifier.Push(Notice{
			Level: NoticeSuccess,
			Title: "Cart Updated",
			Text:  product.Name + " quantity updated",
		})
		return
	}

	item := models.CartItem{
		ID:        models.LocalIDPrefix + uuid.New().String(),
		ProductID: product.ID,
		Name:      product.Name,
		Image:     product.Image,
		Category:  product.Category,
		Platform:  product.Platform,
		Price:     product.Price,
		Quantity:  quantity,
	}
	c.items = append(c.items, item)
	c.persistLocked()
	c.open = true
	user := c.user
	c.mu.Unlock()

	if user != nil {
		record := item
		record.UserID = user.ID
		localID := item.ID
		c.spawn(func() {
			if err := c.remote.Create(&record); err != nil {
				c.log.Warn("cart mirror create failed", "client", c.clientID, "product", record.ProductID, "error", err)
				return
			}
			// Splice the server-assigned id into the local item. The item
			// may be gone already if the shopper removed it before the
			// create resolved; that is fine, the remote record just goes
			// unreferenced.
			c.mu.Lock()
			for i := range c.items {
				if c.items[i].ID == localID {
					c.items[i].ID = record.ID
					c.persistLocked()
					break
				}
			}
			c.mu.Unlock()
		})
	}

	c.notifier.Push(Notice{
		Level: NoticeSuccess,
		Title: "Added to Cart",
		Text:  product.Name + " has been added to your cart",
	})
}

// RemoveItem deletes the line item for the product. A remote record, when
// one exists, is deleted best-effort; its failure never restores the local
// item.
func (c *Cart) RemoveItem(productID string) {
	c.mu.Lock()
	var removed *models.CartItem
	for i := range c.items {
		if c.items[i].ProductID == productID {
			item := c.items[i]
			removed = &item
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	if removed == nil {
		c.mu.Unlock()
		return
	}
	c.persistLocked()
	user := c.user
	c.mu.Unlock()

	if user != nil && removed.Synced() {
		recordID := removed.ID
		c.spawn(func() {
			if err := c.remote.Delete(recordID); err != nil {
				c.log.Warn("cart mirror delete failed", "client", c.clientID, "record", recordID, "error", err)
			}
		})
	}

	c.notifier.Push(Notice{
		Level: NoticeInfo,
		Title: "Removed",
		Text:  "Item removed from cart",
	})
}

// UpdateQuantity sets the quantity of the product's line item. A quantity
// below one removes the item entirely.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity < 1 {
		c.RemoveItem(productID)
		return
	}

	c.mu.Lock()
	existing := c.findLocked(productID)
	if existing == nil {
		c.mu.Unlock()
		return
	}
	existing.Quantity = quantity
	item := *existing
	c.persistLocked()
	user := c.user
	c.mu.Unlock()

	c.mirrorQuantity(user, item)
}

// Clear empties the collection and wipes the snapshot entry.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	if err := c.storage.Delete(c.clientID, storage.ScopeLocal, storage.KeyCart); err != nil {
		c.log.Error("failed to clear cart snapshot", "client", c.clientID, "error", err)
	}
	c.mu.Unlock()

	c.notifier.Push(Notice{
		Level: NoticeInfo,
		Title: "Cart Cleared",
		Text:  "Your cart has been emptied",
	})
}

// HandleIdentityChange is the identity store's listener. On login the remote
// cart is fetched: a non-empty remote cart replaces the local one wholesale
// (items added while anonymous are discarded), an empty remote cart or a
// failed fetch leaves the local cart untouched. On logout only the identity
// reference is dropped; the cart itself survives.
func (c *Cart) HandleIdentityChange(user *models.User) {
	c.mu.Lock()
	c.user = user
	c.mu.Unlock()

	if user == nil {
		return
	}

	remote, err := c.remote.GetByUser(user.ID)
	if err != nil {
		c.log.Warn("remote cart load failed", "client", c.clientID, "user", user.ID, "error", err)
		return
	}
	if len(remote) == 0 {
		return
	}

	c.mu.Lock()
	c.items = remote
	c.persistLocked()
	c.mu.Unlock()
}

// Wait blocks until all in-flight remote mirroring has finished. Used at
// shutdown and by tests.
func (c *Cart) Wait() {
	c.syncs.Wait()
}

func (c *Cart) findLocked(productID string) *models.CartItem {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			return &c.items[i]
		}
	}
	return nil
}

// persistLocked snapshots the full collection to local-scope storage. The
// open flag deliberately stays out of the snapshot.
func (c *Cart) persistLocked() {
	raw, err := json.Marshal(c.items)
	if err != nil {
		c.log.Error("failed to marshal cart snapshot", "client", c.clientID, "error", err)
		return
	}
	if err := c.storage.Set(c.clientID, storage.ScopeLocal, storage.KeyCart, string(raw)); err != nil {
		c.log.Error("failed to persist cart snapshot", "client", c.clientID, "error", err)
	}
}

// mirrorQuantity pushes a quantity change for an already-synced item. Items
// whose create is still in flight are skipped; the pending create carries
// the quantity it captured and later changes catch up on the next synced
// mutation.
func (c *Cart) mirrorQuantity(user *models.User, item models.CartItem) {
	if user == nil || !item.Synced() {
		return
	}
	c.spawn(func() {
		if err := c.remote.UpdateQuantity(item.ID, item.Quantity); err != nil {
			c.log.Warn("cart mirror update failed", "client", c.clientID, "record", item.ID, "error", err)
		}
	})
}

// spawn runs fn as a tracked fire-and-forget task. Each mirror call is
// attempted exactly once; there is no retry, timeout or cancellation.
func (c *Cart) spawn(fn func()) {
	c.syncs.Add(1)
	go func() {
		defer c.syncs.Done()
		fn()
	}()
}
