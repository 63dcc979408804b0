package cart

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ChimaRyder/huggle-buyer-app/internal/domain"
	"github.com/ChimaRyder/huggle-buyer-app/pkg/errors"
)

type fakeStore struct {
	mu           sync.Mutex
	cart         domain.Cart
	cartErr      error
	products     map[string]domain.Product
	failProducts map[string]bool
	addErr       error
	updateErr    error
	removeErr    error
	addCalls     int
	updateCalls  int
	removeCalls  int
	lastUpdate   int
}

func (f *fakeStore) Cart(ctx context.Context) (domain.Cart, error) {
	if f.cartErr != nil {
		return domain.Cart{}, f.cartErr
	}
	return f.cart, nil
}

func (f *fakeStore) Product(ctx context.Context, productID string) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failProducts[productID] {
		return domain.Product{}, &errors.NotFoundError{Resource: "product", ID: productID}
	}
	product, ok := f.products[productID]
	if !ok {
		return domain.Product{}, &errors.NotFoundError{Resource: "product", ID: productID}
	}
	return product, nil
}

func (f *fakeStore) AddCartItem(ctx context.Context, itemID string, amount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls++
	return f.addErr
}

func (f *fakeStore) UpdateCartItem(ctx context.Context, itemID string, amount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	f.lastUpdate = amount
	return f.updateErr
}

func (f *fakeStore) RemoveCartItem(ctx context.Context, itemID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeCalls++
	return f.removeErr
}

type stubConfirm struct {
	answer bool
	calls  int
}

func (s *stubConfirm) Confirm(ctx context.Context, title, message string) (bool, error) {
	s.calls++
	return s.answer, nil
}

func product(id string, price float64) domain.Product {
	return domain.Product{ID: id, Name: "Product " + id, DiscountedPrice: price, StoreID: "S1"}
}

func newLoadedManager(t *testing.T, store *fakeStore, confirm *stubConfirm) *Manager {
	t.Helper()
	m := NewManager(store, confirm, zap.NewNop())
	require.NoError(t, m.Load(context.Background()))
	return m
}

func twoLineStore() *fakeStore {
	return &fakeStore{
		cart: domain.Cart{
			CartID:  "C1",
			BuyerID: "B1",
			CartItems: []domain.CartEntry{
				{ItemID: "P1", Amount: 2},
				{ItemID: "P2", Amount: 1},
			},
		},
		products: map[string]domain.Product{
			"P1": product("P1", 50),
			"P2": product("P2", 30),
		},
	}
}

func TestManager_Load(t *testing.T) {
	store := twoLineStore()
	m := newLoadedManager(t, store, &stubConfirm{answer: true})

	lines := m.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "C1", m.CartID())
	assert.Equal(t, "P1", lines[0].ItemID)
	assert.Equal(t, 2, lines[0].Amount)
	require.NotNil(t, lines[0].Product)
	assert.True(t, lines[0].Selected)
	assert.True(t, lines[1].Selected)
}

func TestManager_Load_EnrichmentIsolation(t *testing.T) {
	store := twoLineStore()
	store.failProducts = map[string]bool{"P2": true}
	m := newLoadedManager(t, store, &stubConfirm{answer: true})

	lines := m.Lines()
	require.Len(t, lines, 2)
	require.NotNil(t, lines[0].Product)
	assert.Nil(t, lines[1].Product)
	assert.Equal(t, "Unknown Product", lines[1].DisplayName())
	assert.Equal(t, 0.0, lines[1].UnitPrice())
}

func TestManager_Load_CartErrorPropagates(t *testing.T) {
	store := twoLineStore()
	store.cartErr = &errors.ServerError{StatusCode: 500}
	m := NewManager(store, &stubConfirm{}, zap.NewNop())

	err := m.Load(context.Background())
	assert.True(t, errors.IsStatus(err, 500))
	assert.Empty(t, m.Lines())
}

func TestManager_AddItem_Validation(t *testing.T) {
	m := NewManager(twoLineStore(), &stubConfirm{}, zap.NewNop())

	assert.True(t, errors.IsValidation(m.AddItem(context.Background(), "P1", 0)))
	assert.True(t, errors.IsValidation(m.AddItem(context.Background(), "", 1)))
}

func TestManager_AddItem_NewLine(t *testing.T) {
	store := twoLineStore()
	store.products["P3"] = product("P3", 10)
	m := newLoadedManager(t, store, &stubConfirm{answer: true})

	require.NoError(t, m.AddItem(context.Background(), "P3", 3))

	lines := m.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "P3", lines[2].ItemID)
	assert.Equal(t, 3, lines[2].Amount)
	assert.True(t, lines[2].Selected)
	require.NotNil(t, lines[2].Product)
}

func TestManager_AddItem_MergesExistingLine(t *testing.T) {
	m := newLoadedManager(t, twoLineStore(), &stubConfirm{answer: true})

	require.NoError(t, m.AddItem(context.Background(), "P1", 1))

	lines := m.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 3, lines[0].Amount)
}

func TestManager_AddItem_FailureLeavesStateUnchanged(t *testing.T) {
	store := twoLineStore()
	store.addErr = &errors.ServerError{StatusCode: 500}
	m := newLoadedManager(t, store, &stubConfirm{answer: true})

	err := m.AddItem(context.Background(), "P1", 1)
	require.Error(t, err)
	assert.Equal(t, 2, m.Lines()[0].Amount)
}

func TestManager_ChangeQuantity_Success(t *testing.T) {
	store := twoLineStore()
	m := newLoadedManager(t, store, &stubConfirm{answer: true})

	require.NoError(t, m.ChangeQuantity(context.Background(), "P1", 1))

	assert.Equal(t, 3, m.Lines()[0].Amount)
	assert.Equal(t, 3, store.lastUpdate)
}

func TestManager_ChangeQuantity_FailureLeavesStateUnchanged(t *testing.T) {
	store := twoLineStore()
	store.updateErr = &errors.ServerError{StatusCode: 500}
	m := newLoadedManager(t, store, &stubConfirm{answer: true})

	err := m.ChangeQuantity(context.Background(), "P1", 1)
	require.Error(t, err)
	assert.Equal(t, 2, m.Lines()[0].Amount)
}

func TestManager_ChangeQuantity_FloorRemovesLine(t *testing.T) {
	store := twoLineStore()
	confirm := &stubConfirm{answer: true}
	m := newLoadedManager(t, store, confirm)

	// Current amount is 2; the delta drives it below zero.
	require.NoError(t, m.ChangeQuantity(context.Background(), "P1", -5))

	lines := m.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "P2", lines[0].ItemID)
	assert.Equal(t, 1, confirm.calls)
	assert.Equal(t, 1, store.removeCalls)
	assert.Equal(t, 0, store.updateCalls)
}

func TestManager_ChangeQuantity_FloorDeclined(t *testing.T) {
	store := twoLineStore()
	confirm := &stubConfirm{answer: false}
	m := newLoadedManager(t, store, confirm)

	require.NoError(t, m.ChangeQuantity(context.Background(), "P1", -2))

	assert.Len(t, m.Lines(), 2)
	assert.Equal(t, 0, store.removeCalls)
}

func TestManager_ChangeQuantity_UnknownItem(t *testing.T) {
	m := newLoadedManager(t, twoLineStore(), &stubConfirm{answer: true})

	err := m.ChangeQuantity(context.Background(), "nope", 1)
	assert.True(t, errors.IsNotFound(err))
}

func TestManager_RemoveItem(t *testing.T) {
	store := twoLineStore()
	confirm := &stubConfirm{answer: true}
	m := newLoadedManager(t, store, confirm)

	require.NoError(t, m.RemoveItem(context.Background(), "P2"))

	lines := m.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "P1", lines[0].ItemID)
	assert.Equal(t, 1, store.removeCalls)
}

func TestManager_RemoveItem_Declined(t *testing.T) {
	store := twoLineStore()
	m := newLoadedManager(t, store, &stubConfirm{answer: false})

	require.NoError(t, m.RemoveItem(context.Background(), "P2"))

	assert.Len(t, m.Lines(), 2)
	assert.Equal(t, 0, store.removeCalls)
}

func TestManager_RemoveItem_ServerFailureKeepsLine(t *testing.T) {
	store := twoLineStore()
	store.removeErr = fmt.Errorf("boom")
	m := newLoadedManager(t, store, &stubConfirm{answer: true})

	err := m.RemoveItem(context.Background(), "P2")
	require.Error(t, err)
	assert.Len(t, m.Lines(), 2)
}

func TestManager_ToggleSelected_Idempotence(t *testing.T) {
	m := newLoadedManager(t, twoLineStore(), &stubConfirm{answer: true})

	before := m.TotalPrice()
	m.ToggleSelected("P1")
	m.ToggleSelected("P1")

	assert.Equal(t, before, m.TotalPrice())
	assert.True(t, m.Lines()[0].Selected)
}

func TestManager_SelectedTotal_Scenario(t *testing.T) {
	// Cart: P1 amount 2 at 50 selected, P2 amount 1 at 30 deselected.
	m := newLoadedManager(t, twoLineStore(), &stubConfirm{answer: true})
	m.ToggleSelected("P2")

	selected := m.SelectedItems()
	require.Len(t, selected, 1)
	assert.Equal(t, "P1", selected[0].ItemID)
	assert.Equal(t, 100.0, m.TotalPrice())
}

func TestManager_ToggleSelectAll(t *testing.T) {
	m := newLoadedManager(t, twoLineStore(), &stubConfirm{answer: true})

	m.ToggleSelectAll()
	assert.Empty(t, m.SelectedItems())
	assert.Equal(t, 0.0, m.TotalPrice())

	m.ToggleSelectAll()
	assert.Len(t, m.SelectedItems(), 2)
}

func TestManager_TotalSkipsUnresolvedProducts(t *testing.T) {
	store := twoLineStore()
	store.failProducts = map[string]bool{"P2": true}
	m := newLoadedManager(t, store, &stubConfirm{answer: true})

	// P2 is selected but unresolved, so only P1 counts.
	assert.Equal(t, 100.0, m.TotalPrice())
}
