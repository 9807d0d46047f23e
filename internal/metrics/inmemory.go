package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	ProductsCreated  uint64
	ProductsUpdated  uint64
	ProductsDeleted  uint64
	CartItemsAdded   uint64
	CartItemsRemoved uint64
	LoginSuccesses   uint64
	LoginFailures    uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	productsCreated  uint64
	productsUpdated  uint64
	productsDeleted  uint64
	cartItemsAdded   uint64
	cartItemsRemoved uint64
	loginSuccesses   uint64
	loginFailures    uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		ProductsCreated:  atomic.LoadUint64(&m.productsCreated),
		ProductsUpdated:  atomic.LoadUint64(&m.productsUpdated),
		ProductsDeleted:  atomic.LoadUint64(&m.productsDeleted),
		CartItemsAdded:   atomic.LoadUint64(&m.cartItemsAdded),
		CartItemsRemoved: atomic.LoadUint64(&m.cartItemsRemoved),
		LoginSuccesses:   atomic.LoadUint64(&m.loginSuccesses),
		LoginFailures:    atomic.LoadUint64(&m.loginFailures),
	}
}

// IncProductCreated increments the product created counter.
func (m *InMemoryRecorder) IncProductCreated() {
	atomic.AddUint64(&m.productsCreated, 1)
}

// IncProductUpdated increments the product updated counter.
func (m *InMemoryRecorder) IncProductUpdated() {
	atomic.AddUint64(&m.productsUpdated, 1)
}

// IncProductDeleted increments the product deleted counter.
func (m *InMemoryRecorder) IncProductDeleted() {
	atomic.AddUint64(&m.productsDeleted, 1)
}

// IncCartItemAdded increments the cart item added counter.
func (m *InMemoryRecorder) IncCartItemAdded() {
	atomic.AddUint64(&m.cartItemsAdded, 1)
}

// IncCartItemRemoved increments the cart item removed counter.
func (m *InMemoryRecorder) IncCartItemRemoved() {
	atomic.AddUint64(&m.cartItemsRemoved, 1)
}

// IncLoginSuccess increments the successful login counter.
func (m *InMemoryRecorder) IncLoginSuccess() {
	atomic.AddUint64(&m.loginSuccesses, 1)
}

// IncLoginFailure increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailure() {
	atomic.AddUint64(&m.loginFailures, 1)
}
