// Package mockstore is an in-memory stand-in for the Huggle backend. It
// implements the same REST contract the real service exposes and exists for
// local development and integration tests; nothing here persists.
package mockstore

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ChimaRyder/huggle-buyer-app/internal/domain"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrCancelNotAllowed = errors.New("order can no longer be cancelled")
)

// Store holds all backend state behind a single lock. Request volume in tests
// and local dev never justifies anything finer grained.
type Store struct {
	mu       sync.Mutex
	products map[string]domain.Product
	stores   map[string]domain.Store
	buyers   map[string]domain.Buyer
	carts    map[string]*domain.Cart
	orders   []domain.Order
}

func NewStore() *Store {
	return &Store{
		products: make(map[string]domain.Product),
		stores:   make(map[string]domain.Store),
		buyers:   make(map[string]domain.Buyer),
		carts:    make(map[string]*domain.Cart),
	}
}

func (s *Store) SeedProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

func (s *Store) SeedStore(st domain.Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stores[st.ID] = st
}

func (s *Store) SeedBuyer(b domain.Buyer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buyers[b.ID] = b
}

// RemoveProduct deletes a product so later lookups 404. Tests use this to
// simulate a product that no longer resolves.
func (s *Store) RemoveProduct(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
}

func (s *Store) Product(id string) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	return p, ok
}

func (s *Store) ProductsByStore(storeID string) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Product{}
	for _, p := range s.products {
		if p.StoreID == storeID {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) AllProducts() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Product{}
	for _, p := range s.products {
		out = append(out, p)
	}
	return out
}

func (s *Store) SearchProducts(term string) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Product{}
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(term)) {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) StoreByID(id string) (domain.Store, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stores[id]
	return st, ok
}

func (s *Store) Buyer(id string) (domain.Buyer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buyers[id]
	return b, ok
}

func (s *Store) UpdateFavoriteStore(buyerID, storeID string, isAdd bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buyer, ok := s.buyers[buyerID]
	if !ok {
		return fmt.Errorf("buyer %s not found", buyerID)
	}
	favorites := []string{}
	for _, id := range buyer.FavoriteStores {
		if id != storeID {
			favorites = append(favorites, id)
		}
	}
	if isAdd {
		favorites = append(favorites, storeID)
	}
	buyer.FavoriteStores = favorites
	s.buyers[buyerID] = buyer
	return nil
}

func (s *Store) UpdateLocation(buyerID string, longitude, latitude float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buyer, ok := s.buyers[buyerID]
	if !ok {
		return fmt.Errorf("buyer %s not found", buyerID)
	}
	buyer.Longitude = &longitude
	buyer.Latitude = &latitude
	s.buyers[buyerID] = buyer
	return nil
}

// cartFor returns the buyer's cart, creating it on first touch the way the
// backend does.
func (s *Store) cartFor(buyerID string) *domain.Cart {
	cart, ok := s.carts[buyerID]
	if !ok {
		now := time.Now().UTC()
		cart = &domain.Cart{
			CartID:    uuid.NewString(),
			BuyerID:   buyerID,
			CartItems: []domain.CartEntry{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.carts[buyerID] = cart
	}
	return cart
}

func (s *Store) Cart(buyerID string) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.cartFor(buyerID)
}

func (s *Store) AddCartItem(buyerID, itemID string, amount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.cartFor(buyerID)
	for i := range cart.CartItems {
		if cart.CartItems[i].ItemID == itemID {
			cart.CartItems[i].Amount += amount
			cart.UpdatedAt = time.Now().UTC()
			return
		}
	}
	cart.CartItems = append(cart.CartItems, domain.CartEntry{ItemID: itemID, Amount: amount})
	cart.UpdatedAt = time.Now().UTC()
}

func (s *Store) UpdateCartItem(buyerID, itemID string, amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.cartFor(buyerID)
	for i := range cart.CartItems {
		if cart.CartItems[i].ItemID == itemID {
			cart.CartItems[i].Amount = amount
			cart.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return fmt.Errorf("cart item %s not found", itemID)
}

func (s *Store) RemoveCartItem(buyerID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.cartFor(buyerID)
	for i := range cart.CartItems {
		if cart.CartItems[i].ItemID == itemID {
			cart.CartItems = append(cart.CartItems[:i], cart.CartItems[i+1:]...)
			cart.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return fmt.Errorf("cart item %s not found", itemID)
}

func (s *Store) ClearCart(buyerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.cartFor(buyerID)
	cart.CartItems = []domain.CartEntry{}
	cart.UpdatedAt = time.Now().UTC()
}

func (s *Store) CreateOrder(draft domain.OrderDraft) domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	order := domain.Order{
		ID:         uuid.NewString(),
		BuyerID:    draft.BuyerID,
		StoreID:    draft.StoreID,
		ProductID:  draft.ProductID,
		Quantity:   draft.Quantity,
		TotalPrice: draft.TotalPrice,
		Status:     draft.Status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.orders = append(s.orders, order)
	return order
}

func (s *Store) Orders(buyerID string) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Order{}
	for _, o := range s.orders {
		if o.BuyerID == buyerID {
			out = append(out, o)
		}
	}
	return out
}

func (s *Store) Order(id string) (domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, true
		}
	}
	return domain.Order{}, false
}

// CancelOrder enforces the eligibility invariant: only Pending and Confirmed
// orders can be cancelled.
func (s *Store) CancelOrder(id string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			if !s.orders[i].Status.CanCancel() {
				return domain.Order{}, ErrCancelNotAllowed
			}
			s.orders[i].Status = domain.OrderStatusCancelled
			s.orders[i].UpdatedAt = time.Now().UTC()
			return s.orders[i], nil
		}
	}
	return domain.Order{}, ErrOrderNotFound
}

// SetOrderStatus is a test knob for forcing an order into a given status.
func (s *Store) SetOrderStatus(id string, status domain.OrderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			return
		}
	}
}
