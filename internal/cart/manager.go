// Package cart maintains the client's view of the buyer's cart and keeps it
// consistent with the server after every mutating action. Every mutation is
// request-then-confirm: local state changes only after the server does.
package cart

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ChimaRyder/huggle-buyer-app/internal/domain"
	"github.com/ChimaRyder/huggle-buyer-app/pkg/errors"
)

// StoreClient is the slice of the backend API the cart manager needs.
type StoreClient interface {
	Cart(ctx context.Context) (domain.Cart, error)
	Product(ctx context.Context, productID string) (domain.Product, error)
	AddCartItem(ctx context.Context, itemID string, amount int) error
	UpdateCartItem(ctx context.Context, itemID string, amount int) error
	RemoveCartItem(ctx context.Context, itemID string) error
}

// Confirmer is the yes/no gate shown before destructive actions.
type Confirmer interface {
	Confirm(ctx context.Context, title, message string) (bool, error)
}

// Line is one cart line as the UI renders it. Product may be nil when the
// enrichment fetch failed; such lines display a fallback label and contribute
// nothing to the selected total.
type Line struct {
	ItemID   string
	Amount   int
	Product  *domain.Product
	Selected bool
}

// DisplayName returns the product name or a fallback label.
func (l Line) DisplayName() string {
	if l.Product == nil {
		return "Unknown Product"
	}
	return l.Product.Name
}

// UnitPrice returns the discounted price, or 0 when the product is unresolved.
func (l Line) UnitPrice() float64 {
	if l.Product == nil {
		return 0
	}
	return l.Product.DiscountedPrice
}

// Subtotal returns the line's contribution to the cart total.
func (l Line) Subtotal() float64 {
	return l.UnitPrice() * float64(l.Amount)
}

type Manager struct {
	client  StoreClient
	confirm Confirmer
	logger  *zap.Logger
	items   *keyLocks

	mu        sync.Mutex
	loading   bool
	cartID    string
	buyerID   string
	lines     []Line
	selectAll bool
}

// NewManager creates a new cart manager
func NewManager(client StoreClient, confirm Confirmer, logger *zap.Logger) *Manager {
	return &Manager{
		client:  client,
		confirm: confirm,
		logger:  logger,
		items:   newKeyLocks(),
	}
}

// Load fetches the authoritative cart and the product details for every line
// in parallel. A failed product fetch keeps the line with a nil product; it
// never fails the whole load. All lines start selected.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	if m.loading {
		m.mu.Unlock()
		return errors.ErrInFlight
	}
	m.loading = true
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	cart, err := m.client.Cart(ctx)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	products := make([]*domain.Product, len(cart.CartItems))
	var wg sync.WaitGroup
	for i, entry := range cart.CartItems {
		wg.Add(1)
		go func(i int, itemID string) {
			defer wg.Done()
			product, err := m.client.Product(ctx, itemID)
			if err != nil {
				m.logger.Warn("failed to fetch product for cart line",
					zap.String("itemId", itemID),
					zap.Error(err),
				)
				return
			}
			products[i] = &product
		}(i, entry.ItemID)
	}
	wg.Wait()

	lines := make([]Line, len(cart.CartItems))
	for i, entry := range cart.CartItems {
		lines[i] = Line{
			ItemID:   entry.ItemID,
			Amount:   entry.Amount,
			Product:  products[i],
			Selected: true,
		}
	}

	m.mu.Lock()
	m.cartID = cart.CartID
	m.buyerID = cart.BuyerID
	m.lines = lines
	m.selectAll = true
	m.mu.Unlock()

	return nil
}

// AddItem adds a product to the cart. Local state is only updated once the
// server confirms the add.
func (m *Manager) AddItem(ctx context.Context, itemID string, amount int) error {
	if itemID == "" {
		return &errors.ValidationError{Message: "item id is required"}
	}
	if amount < 1 {
		return &errors.ValidationError{Message: "amount must be at least 1"}
	}

	unlock := m.items.acquire(itemID)
	defer unlock()

	if err := m.client.AddCartItem(ctx, itemID, amount); err != nil {
		return fmt.Errorf("failed to add item to cart: %w", err)
	}

	m.mu.Lock()
	for i := range m.lines {
		if m.lines[i].ItemID == itemID {
			m.lines[i].Amount += amount
			m.mu.Unlock()
			return nil
		}
	}
	m.mu.Unlock()

	// New line: enrich it like Load does, tolerating a failed fetch.
	var productRef *domain.Product
	product, err := m.client.Product(ctx, itemID)
	if err != nil {
		m.logger.Warn("failed to fetch product for new cart line",
			zap.String("itemId", itemID),
			zap.Error(err),
		)
	} else {
		productRef = &product
	}

	m.mu.Lock()
	m.lines = append(m.lines, Line{
		ItemID:   itemID,
		Amount:   amount,
		Product:  productRef,
		Selected: true,
	})
	m.mu.Unlock()

	return nil
}

// ChangeQuantity adjusts a line's quantity by delta. A result of zero or less
// routes into the confirm-gated removal; a line never holds amount <= 0.
func (m *Manager) ChangeQuantity(ctx context.Context, itemID string, delta int) error {
	unlock := m.items.acquire(itemID)
	defer unlock()

	m.mu.Lock()
	current, ok := m.amountLocked(itemID)
	m.mu.Unlock()
	if !ok {
		return &errors.NotFoundError{Resource: "cart item", ID: itemID}
	}

	newAmount := current + delta
	if newAmount <= 0 {
		return m.removeConfirmed(ctx, itemID)
	}

	if err := m.client.UpdateCartItem(ctx, itemID, newAmount); err != nil {
		return fmt.Errorf("failed to update quantity: %w", err)
	}

	m.mu.Lock()
	for i := range m.lines {
		if m.lines[i].ItemID == itemID {
			m.lines[i].Amount = newAmount
			break
		}
	}
	m.mu.Unlock()

	return nil
}

// RemoveItem removes a line after the user confirms. A declined confirmation
// is not an error; nothing is sent to the server.
func (m *Manager) RemoveItem(ctx context.Context, itemID string) error {
	unlock := m.items.acquire(itemID)
	defer unlock()

	return m.removeConfirmed(ctx, itemID)
}

// removeConfirmed runs the confirm gate and the server delete. Callers must
// hold the item's key lock.
func (m *Manager) removeConfirmed(ctx context.Context, itemID string) error {
	ok, err := m.confirm.Confirm(ctx, "Remove Item",
		"Are you sure you want to remove this item from your cart?")
	if err != nil {
		return fmt.Errorf("confirmation failed: %w", err)
	}
	if !ok {
		return nil
	}

	if err := m.client.RemoveCartItem(ctx, itemID); err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}

	m.mu.Lock()
	for i := range m.lines {
		if m.lines[i].ItemID == itemID {
			m.lines = append(m.lines[:i], m.lines[i+1:]...)
			break
		}
	}
	m.mu.Unlock()

	return nil
}

// ToggleSelected flips one line's selection. Pure local mutation.
func (m *Manager) ToggleSelected(itemID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.lines {
		if m.lines[i].ItemID == itemID {
			m.lines[i].Selected = !m.lines[i].Selected
			return
		}
	}
}

// ToggleSelectAll flips the aggregate selection and applies it to every line.
func (m *Manager) ToggleSelectAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selectAll = !m.selectAll
	for i := range m.lines {
		m.lines[i].Selected = m.selectAll
	}
}

// Lines returns a copy of all cart lines in order.
func (m *Manager) Lines() []Line {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Line, len(m.lines))
	copy(out, m.lines)
	return out
}

// SelectedItems returns the lines currently included in checkout.
func (m *Manager) SelectedItems() []Line {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Line
	for _, line := range m.lines {
		if line.Selected {
			out = append(out, line)
		}
	}
	return out
}

// TotalPrice sums discountedPrice x amount over selected lines. Lines with an
// unresolved product contribute 0, matching what the buyer sees.
func (m *Manager) TotalPrice() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total float64
	for _, line := range m.lines {
		if line.Selected {
			total += line.Subtotal()
		}
	}
	return total
}

// CartID returns the server-assigned cart id from the last load.
func (m *Manager) CartID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cartID
}

func (m *Manager) amountLocked(itemID string) (int, bool) {
	for _, line := range m.lines {
		if line.ItemID == itemID {
			return line.Amount, true
		}
	}
	return 0, false
}
