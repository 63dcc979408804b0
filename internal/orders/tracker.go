// Package orders lists a buyer's orders, enriches them with product and store
// display data, and mediates cancellation. Reloads happen whenever the order
// list regains focus or the buyer pulls to refresh; there is no delta fetch.
package orders

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ChimaRyder/huggle-buyer-app/internal/domain"
	"github.com/ChimaRyder/huggle-buyer-app/pkg/errors"
)

const (
	unknownProduct = "Unknown Product"
	unknownStore   = "Unknown Store"
)

// StoreClient is the slice of the backend API the tracker needs.
type StoreClient interface {
	Orders(ctx context.Context) ([]domain.Order, error)
	Product(ctx context.Context, productID string) (domain.Product, error)
	Store(ctx context.Context, storeID string) (domain.Store, error)
	CancelOrder(ctx context.Context, orderID string) (domain.Order, error)
}

// Confirmer is the yes/no gate shown before cancelling an order.
type Confirmer interface {
	Confirm(ctx context.Context, title, message string) (bool, error)
}

// View is an order enriched with denormalized display fields. A failed
// enrichment leaves the placeholder labels; the order itself always renders.
type View struct {
	domain.Order
	ProductName  string
	ProductImage string
	StoreName    string
	StoreAddress string
}

// Bucket returns the order's display classification.
func (v View) Bucket() domain.StatusBucket {
	return v.Status.Classify()
}

type Tracker struct {
	client  StoreClient
	confirm Confirmer
	logger  *zap.Logger

	mu         sync.Mutex
	refreshing bool
	orders     []View
}

// NewTracker creates a new order lifecycle tracker
func NewTracker(client StoreClient, confirm Confirmer, logger *zap.Logger) *Tracker {
	return &Tracker{client: client, confirm: confirm, logger: logger}
}

// Load fetches the buyer's orders and enriches each with its product and
// store, two calls per order, all orders concurrently. A failed enrichment is
// isolated to its order and degrades to placeholder labels.
func (t *Tracker) Load(ctx context.Context) error {
	t.mu.Lock()
	if t.refreshing {
		t.mu.Unlock()
		return errors.ErrInFlight
	}
	t.refreshing = true
	t.mu.Unlock()
	defer func() {
		t.mu.Lock()
		t.refreshing = false
		t.mu.Unlock()
	}()

	raw, err := t.client.Orders(ctx)
	if err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}

	views := make([]View, len(raw))
	var wg sync.WaitGroup
	for i, order := range raw {
		views[i] = View{
			Order:       order,
			ProductName: unknownProduct,
			StoreName:   unknownStore,
		}
		wg.Add(1)
		go func(i int, order domain.Order) {
			defer wg.Done()

			var inner sync.WaitGroup
			inner.Add(2)
			go func() {
				defer inner.Done()
				product, err := t.client.Product(ctx, order.ProductID)
				if err != nil {
					t.logger.Warn("failed to fetch product for order",
						zap.String("orderId", order.ID),
						zap.String("productId", order.ProductID),
						zap.Error(err),
					)
					return
				}
				views[i].ProductName = product.Name
				views[i].ProductImage = product.CoverImage
			}()
			go func() {
				defer inner.Done()
				store, err := t.client.Store(ctx, order.StoreID)
				if err != nil {
					t.logger.Warn("failed to fetch store for order",
						zap.String("orderId", order.ID),
						zap.String("storeId", order.StoreID),
						zap.Error(err),
					)
					return
				}
				views[i].StoreName = store.Name
				views[i].StoreAddress = store.Address
			}()
			inner.Wait()
		}(i, order)
	}
	wg.Wait()

	t.mu.Lock()
	t.orders = views
	t.mu.Unlock()

	return nil
}

// Orders returns a copy of the loaded orders in server order.
func (t *Tracker) Orders() []View {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]View, len(t.orders))
	copy(out, t.orders)
	return out
}

// ByBucket returns the loaded orders in the given display bucket.
func (t *Tracker) ByBucket(bucket domain.StatusBucket) []View {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []View
	for _, v := range t.orders {
		if v.Bucket() == bucket {
			out = append(out, v)
		}
	}
	return out
}

// Active returns orders still in progress: Pending or Confirmed.
func (t *Tracker) Active() []View {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []View
	for _, v := range t.orders {
		if v.Status.CanCancel() {
			out = append(out, v)
		}
	}
	return out
}

// CanCancel reports whether the order may still be cancelled.
func (t *Tracker) CanCancel(orderID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, v := range t.orders {
		if v.ID == orderID {
			return v.Status.CanCancel()
		}
	}
	return false
}

// Cancel cancels an order after the user confirms. On success the local
// status is set to Cancelled without a refetch; the server's cancellation
// side effects are trusted. On failure the server's message travels up
// verbatim inside the error.
func (t *Tracker) Cancel(ctx context.Context, orderID string) error {
	t.mu.Lock()
	var found *View
	for i := range t.orders {
		if t.orders[i].ID == orderID {
			found = &t.orders[i]
			break
		}
	}
	if found == nil {
		t.mu.Unlock()
		return &errors.NotFoundError{Resource: "order", ID: orderID}
	}
	if !found.Status.CanCancel() {
		status := found.Status
		t.mu.Unlock()
		return &errors.ValidationError{
			Message: fmt.Sprintf("order cannot be cancelled in status %s", status),
		}
	}
	t.mu.Unlock()

	ok, err := t.confirm.Confirm(ctx, "Cancel Order",
		"Are you sure you want to cancel this order? This action cannot be undone.")
	if err != nil {
		return fmt.Errorf("confirmation failed: %w", err)
	}
	if !ok {
		return nil
	}

	if _, err := t.client.CancelOrder(ctx, orderID); err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}

	t.mu.Lock()
	for i := range t.orders {
		if t.orders[i].ID == orderID {
			t.orders[i].Status = domain.OrderStatusCancelled
			break
		}
	}
	t.mu.Unlock()

	t.logger.Info("order cancelled", zap.String("orderId", orderID))
	return nil
}
