// Package session owns the per-login state of the buyer app. A Session is
// created on login and closed on logout; all cart and order state lives here
// rather than in implicit screen state.
package session

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ChimaRyder/huggle-buyer-app/internal/auth"
	"github.com/ChimaRyder/huggle-buyer-app/internal/cart"
	"github.com/ChimaRyder/huggle-buyer-app/internal/checkout"
	"github.com/ChimaRyder/huggle-buyer-app/internal/config"
	"github.com/ChimaRyder/huggle-buyer-app/internal/domain"
	"github.com/ChimaRyder/huggle-buyer-app/internal/huggle"
	"github.com/ChimaRyder/huggle-buyer-app/internal/orders"
)

// Confirmer is the yes/no gate the UI presents before destructive actions.
// It satisfies both cart.Confirmer and orders.Confirmer.
type Confirmer interface {
	Confirm(ctx context.Context, title, message string) (bool, error)
}

// AutoConfirm answers yes to every prompt. For headless use and tests.
type AutoConfirm struct{}

func (AutoConfirm) Confirm(ctx context.Context, title, message string) (bool, error) {
	return true, nil
}

type Session struct {
	Client   *huggle.Client
	Cart     *cart.Manager
	Checkout *checkout.Coordinator
	Orders   *orders.Tracker

	logger *zap.Logger

	mu      sync.Mutex
	started bool
	buyer   domain.Buyer
}

// New wires the client and managers. Nothing talks to the backend until Start.
func New(cfg config.APIConfig, tokens auth.TokenSource, confirm Confirmer, logger *zap.Logger) *Session {
	client := huggle.NewClient(cfg, tokens, logger)
	return &Session{
		Client:   client,
		Cart:     cart.NewManager(client, confirm, logger),
		Checkout: checkout.NewCoordinator(client, logger),
		Orders:   orders.NewTracker(client, confirm, logger),
		logger:   logger,
	}
}

// Start begins the session for a buyer: the profile is fetched to verify the
// token resolves, and the buyer id anchors later checkout calls.
func (s *Session) Start(ctx context.Context, buyerID string) error {
	buyer, err := s.Client.Buyer(ctx, buyerID)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	s.mu.Lock()
	s.started = true
	s.buyer = buyer
	s.mu.Unlock()

	s.logger.Info("session started", zap.String("buyerId", buyerID))
	return nil
}

// Buyer returns the profile fetched at Start.
func (s *Session) Buyer() domain.Buyer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buyer
}

// Started reports whether Start has succeeded.
func (s *Session) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// CheckoutSelected submits the currently selected cart lines as orders and,
// on full success, reloads the cart to reflect the server-side clear.
func (s *Session) CheckoutSelected(ctx context.Context, storeID string) error {
	selected := s.Cart.SelectedItems()
	lines := make([]checkout.DraftLine, 0, len(selected))
	for _, item := range selected {
		lines = append(lines, checkout.DraftLine{
			ProductID: item.ItemID,
			Quantity:  item.Amount,
			Price:     item.UnitPrice(),
		})
	}

	if err := s.Checkout.SubmitCartCheckout(ctx, s.Buyer().ID, storeID, lines); err != nil {
		return err
	}
	return s.Cart.Load(ctx)
}

// Close tears the session down on logout. Local state is dropped; nothing is
// sent to the server.
func (s *Session) Close() {
	s.mu.Lock()
	s.started = false
	s.buyer = domain.Buyer{}
	s.mu.Unlock()
	s.logger.Info("session closed")
}
