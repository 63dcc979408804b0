// Package checkout converts selected cart lines, or a single direct purchase,
// into persisted orders and clears the originating cart on full success.
package checkout

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ChimaRyder/huggle-buyer-app/internal/domain"
	"github.com/ChimaRyder/huggle-buyer-app/pkg/errors"
)

// ErrPlaceOrder is the undifferentiated failure reported when any per-line
// order call fails. Orders created before the failure are left in place; the
// cart is not cleared. There is no compensating rollback.
var ErrPlaceOrder = stderrors.New("failed to place order")

// StoreClient is the slice of the backend API the coordinator needs.
type StoreClient interface {
	CreateOrder(ctx context.Context, draft domain.OrderDraft) (domain.Order, error)
	ClearCart(ctx context.Context) error
}

// DraftLine is one checkout line sourced from a selected cart line.
type DraftLine struct {
	ProductID string
	Quantity  int
	Price     float64
}

// Totals summarizes a draft for display and submission.
type Totals struct {
	Items int
	Price float64
}

// ComputeTotals sums quantities and price x quantity over the draft lines.
func ComputeTotals(lines []DraftLine) Totals {
	var t Totals
	for _, line := range lines {
		t.Items += line.Quantity
		t.Price += line.Price * float64(line.Quantity)
	}
	return t
}

type Coordinator struct {
	client StoreClient
	logger *zap.Logger

	mu      sync.Mutex
	placing bool
}

// NewCoordinator creates a new order submission coordinator
func NewCoordinator(client StoreClient, logger *zap.Logger) *Coordinator {
	return &Coordinator{client: client, logger: logger}
}

// Placing reports whether a submission is currently in flight. The UI uses
// this to disable the confirm button.
func (c *Coordinator) Placing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.placing
}

func (c *Coordinator) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.placing {
		return errors.ErrInFlight
	}
	c.placing = true
	return nil
}

func (c *Coordinator) end() {
	c.mu.Lock()
	c.placing = false
	c.mu.Unlock()
}

// SubmitCartCheckout creates one order per selected line, all concurrently,
// and clears the cart once every call has succeeded. On any failure the caller
// gets ErrPlaceOrder without a per-line breakdown, already-created orders stay,
// and the cart is left intact.
func (c *Coordinator) SubmitCartCheckout(ctx context.Context, buyerID, storeID string, lines []DraftLine) error {
	if len(lines) == 0 {
		return &errors.ValidationError{Message: "no items selected"}
	}
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	errs := make([]error, len(lines))
	var wg sync.WaitGroup
	for i, line := range lines {
		wg.Add(1)
		go func(i int, line DraftLine) {
			defer wg.Done()
			_, err := c.client.CreateOrder(ctx, domain.OrderDraft{
				BuyerID:    buyerID,
				StoreID:    storeID,
				ProductID:  line.ProductID,
				Quantity:   line.Quantity,
				TotalPrice: line.Price * float64(line.Quantity),
				Status:     domain.OrderStatusPending,
			})
			errs[i] = err
		}(i, line)
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	if failed > 0 {
		c.logger.Error("cart checkout partially failed",
			zap.Int("lines", len(lines)),
			zap.Int("failed", failed),
		)
		return ErrPlaceOrder
	}

	if err := c.client.ClearCart(ctx); err != nil {
		return fmt.Errorf("orders placed but failed to clear cart: %w", err)
	}

	c.logger.Info("cart checkout complete",
		zap.String("buyerId", buyerID),
		zap.Int("orders", len(lines)),
	)
	return nil
}

// SubmitDirectCheckout places a single order for an ad-hoc purchase that
// bypasses the cart.
func (c *Coordinator) SubmitDirectCheckout(ctx context.Context, buyerID, storeID, productID string, quantity int, price float64) (domain.Order, error) {
	if quantity < 1 {
		return domain.Order{}, &errors.ValidationError{Message: "quantity must be at least 1"}
	}
	if err := c.begin(); err != nil {
		return domain.Order{}, err
	}
	defer c.end()

	order, err := c.client.CreateOrder(ctx, domain.OrderDraft{
		BuyerID:    buyerID,
		StoreID:    storeID,
		ProductID:  productID,
		Quantity:   quantity,
		TotalPrice: price * float64(quantity),
		Status:     domain.OrderStatusPending,
	})
	if err != nil {
		c.logger.Error("direct checkout failed",
			zap.String("productId", productID),
			zap.Error(err),
		)
		return domain.Order{}, ErrPlaceOrder
	}
	return order, nil
}
