package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cassiomorais/storefront/internal/domain/catalog"
	domainErrors "github.com/cassiomorais/storefront/internal/domain/errors"
	"github.com/cassiomorais/storefront/internal/domain/order"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Catalog Repository Mock ---

// MockCatalogRepository is an in-memory implementation of
// catalog.Repository.
type MockCatalogRepository struct {
	mu       sync.Mutex
	products map[string]*catalog.Product

	GetByIDFunc func(ctx context.Context, id string) (*catalog.Product, error)
	ListFunc    func(ctx context.Context, filter catalog.ListFilter) ([]*catalog.Product, error)
	CreateFunc  func(ctx context.Context, p *catalog.Product) (string, error)
	UpdateFunc  func(ctx context.Context, id string, patch catalog.ProductPatch) error
}

func NewMockCatalogRepository() *MockCatalogRepository {
	return &MockCatalogRepository{products: make(map[string]*catalog.Product)}
}

// AddProduct installs a product directly, assigning an id if needed.
func (m *MockCatalogRepository) AddProduct(p *catalog.Product) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
	}
	m.products[p.ID] = p
	return p.ID
}

func (m *MockCatalogRepository) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, domainErrors.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *MockCatalogRepository) List(ctx context.Context, filter catalog.ListFilter) ([]*catalog.Product, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*catalog.Product
	for _, p := range m.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if filter.SortOrder == catalog.SortAscending {
			return out[i].UploadTime.Before(out[j].UploadTime)
		}
		return out[i].UploadTime.After(out[j].UploadTime)
	})
	return out, nil
}

func (m *MockCatalogRepository) Create(ctx context.Context, p *catalog.Product) (string, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	clone := *p
	return m.AddProduct(&clone), nil
}

func (m *MockCatalogRepository) Update(ctx context.Context, id string, patch catalog.ProductPatch) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return domainErrors.ErrProductNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Colors != nil {
		p.Colors = patch.Colors
	}
	if patch.Sizes != nil {
		p.Sizes = patch.Sizes
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	return nil
}

// --- Order Repository Mock ---

// MockOrderRepository is an in-memory implementation of order.Repository.
type MockOrderRepository struct {
	mu        sync.Mutex
	orders    map[uuid.UUID]*order.Order
	bySession map[string]uuid.UUID

	CreateFunc         func(ctx context.Context, o *order.Order) error
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*order.Order, error)
	GetBySessionIDFunc func(ctx context.Context, sessionID string) (*order.Order, error)
	UpdateFunc         func(ctx context.Context, o *order.Order) error
	ListFunc           func(ctx context.Context, filter order.ListFilter) ([]*order.Order, error)
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders:    make(map[uuid.UUID]*order.Order),
		bySession: make(map[string]uuid.UUID),
	}
}

func (m *MockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *o
	m.orders[o.ID] = &clone
	if o.SessionID != nil {
		m.bySession[*o.SessionID] = o.ID
	}
	return nil
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, domainErrors.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (m *MockOrderRepository) GetBySessionID(ctx context.Context, sessionID string) (*order.Order, error) {
	if m.GetBySessionIDFunc != nil {
		return m.GetBySessionIDFunc(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.bySession[sessionID]
	if !ok {
		return nil, domainErrors.ErrOrderNotFound
	}
	clone := *m.orders[id]
	return &clone, nil
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, o)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[o.ID]; !ok {
		return domainErrors.ErrOrderNotFound
	}
	clone := *o
	m.orders[o.ID] = &clone
	if o.SessionID != nil {
		m.bySession[*o.SessionID] = o.ID
	}
	return nil
}

func (m *MockOrderRepository) List(ctx context.Context, filter order.ListFilter) ([]*order.Order, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*order.Order
	for _, o := range m.orders {
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		clone := *o
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// GetOrderByID is a test convenience that panics on a missing order.
func (m *MockOrderRepository) GetOrderByID(id uuid.UUID) *order.Order {
	o, err := m.GetByID(context.Background(), id)
	if err != nil {
		panic(fmt.Sprintf("order %s not in mock repository", id))
	}
	return o
}
