package app

import (
	"context"
	"time"

	"github.com/nverma/medstock/internal/domain"
)

type entryKey struct {
	ownerType domain.UserType
	ownerID   string
	productID string
}

// fakeStore backs the order, request, and inventory services in tests. WithTx
// snapshots state and restores it on error, mirroring a rollback.
type fakeStore struct {
	entries  map[entryKey]domain.InventoryEntry
	orders   map[string]domain.Order
	requests map[string]domain.StockRequest
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		entries:  make(map[entryKey]domain.InventoryEntry),
		orders:   make(map[string]domain.Order),
		requests: make(map[string]domain.StockRequest),
	}
}

func (f *fakeStore) setEntry(ownerType domain.UserType, ownerID, productID string, quantity int) {
	key := entryKey{ownerType: ownerType, ownerID: ownerID, productID: productID}
	f.entries[key] = domain.InventoryEntry{
		OwnerID:   ownerID,
		OwnerType: ownerType,
		ProductID: productID,
		Quantity:  quantity,
	}
}

func (f *fakeStore) quantity(ownerType domain.UserType, ownerID, productID string) int {
	return f.entries[entryKey{ownerType: ownerType, ownerID: ownerID, productID: productID}].Quantity
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	entries := make(map[entryKey]domain.InventoryEntry, len(f.entries))
	for k, v := range f.entries {
		entries[k] = v
	}
	orders := make(map[string]domain.Order, len(f.orders))
	for k, v := range f.orders {
		orders[k] = v
	}
	requests := make(map[string]domain.StockRequest, len(f.requests))
	for k, v := range f.requests {
		requests[k] = v
	}

	if err := fn(ctx); err != nil {
		f.entries = entries
		f.orders = orders
		f.requests = requests
		return err
	}
	return nil
}

func (f *fakeStore) GetEntryForUpdate(_ context.Context, ownerType domain.UserType, ownerID, productID string) (*domain.InventoryEntry, error) {
	entry, ok := f.entries[entryKey{ownerType: ownerType, ownerID: ownerID, productID: productID}]
	if !ok {
		return nil, nil
	}
	copy := entry
	return &copy, nil
}

func (f *fakeStore) PutEntry(_ context.Context, entry domain.InventoryEntry) error {
	key := entryKey{ownerType: entry.OwnerType, ownerID: entry.OwnerID, productID: entry.ProductID}
	f.entries[key] = entry
	return nil
}

func (f *fakeStore) ListEntriesByOwner(_ context.Context, ownerType domain.UserType, ownerID string) ([]domain.InventoryEntry, error) {
	var out []domain.InventoryEntry
	for key, entry := range f.entries {
		if key.ownerType == ownerType && key.ownerID == ownerID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateOrder(_ context.Context, order domain.Order) error {
	f.orders[order.ID] = order
	return nil
}

func (f *fakeStore) GetOrderForUpdate(_ context.Context, orderID string) (domain.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeStore) SetOrderStatus(_ context.Context, orderID string, status domain.OrderStatus, at time.Time) error {
	order, ok := f.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.Status = status
	switch status {
	case domain.OrderStatusAccepted:
		order.AcceptedAt = &at
	case domain.OrderStatusDispatched:
		order.DispatchedAt = &at
	case domain.OrderStatusDelivered:
		order.DeliveredAt = &at
	}
	f.orders[orderID] = order
	return nil
}

func (f *fakeStore) ListOrders(_ context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	var out []domain.Order
	for _, order := range f.orders {
		if filter.DistributorID != "" && order.DistributorID != filter.DistributorID {
			continue
		}
		if filter.OrdererID != "" && order.OrdererID != filter.OrdererID {
			continue
		}
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		out = append(out, order)
	}
	return out, nil
}

func (f *fakeStore) CreateRequest(_ context.Context, req domain.StockRequest) error {
	f.requests[req.ID] = req
	return nil
}

func (f *fakeStore) GetRequestForUpdate(_ context.Context, requestID string) (domain.StockRequest, error) {
	req, ok := f.requests[requestID]
	if !ok {
		return domain.StockRequest{}, domain.ErrRequestNotFound
	}
	return req, nil
}

func (f *fakeStore) MarkResponded(_ context.Context, requestID string, at time.Time) error {
	req, ok := f.requests[requestID]
	if !ok {
		return domain.ErrRequestNotFound
	}
	req.Status = domain.RequestStatusResponded
	req.RespondedAt = &at
	f.requests[requestID] = req
	return nil
}

func (f *fakeStore) ListRequestsByDistributor(_ context.Context, distributorID string) ([]domain.StockRequest, error) {
	var out []domain.StockRequest
	for _, req := range f.requests {
		if req.DistributorID == distributorID {
			out = append(out, req)
		}
	}
	return out, nil
}

type fakeDirectory struct {
	users    map[string]domain.User
	products map[string]domain.Product
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		users:    make(map[string]domain.User),
		products: make(map[string]domain.Product),
	}
}

func (f *fakeDirectory) addUser(id string, userType domain.UserType) {
	f.users[id] = domain.User{ID: id, Username: id, Type: userType}
}

func (f *fakeDirectory) addProduct(id string) {
	f.products[id] = domain.Product{ID: id, Name: id, UnitPrice: 1}
}

func (f *fakeDirectory) ResolveUser(_ context.Context, userID string) (domain.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeDirectory) ResolveProduct(_ context.Context, productID string) (domain.Product, error) {
	product, ok := f.products[productID]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

type fakeEventSink struct {
	delivered []domain.Order
	updated   []domain.InventoryEntry
}

func (f *fakeEventSink) OrderDelivered(order domain.Order) {
	f.delivered = append(f.delivered, order)
}

func (f *fakeEventSink) InventoryUpdated(entry domain.InventoryEntry) {
	f.updated = append(f.updated, entry)
}

type fakeUserRepo struct {
	users map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user domain.User) error {
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) ListUsers(_ context.Context, userType domain.UserType) ([]domain.User, error) {
	var out []domain.User
	for _, user := range f.users {
		if userType != "" && user.Type != userType {
			continue
		}
		out = append(out, user)
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[string]domain.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]domain.Product)}
}

func (f *fakeProductRepo) CreateProduct(_ context.Context, product domain.Product) error {
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) GetProduct(_ context.Context, productID string) (domain.Product, error) {
	product, ok := f.products[productID]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

func (f *fakeProductRepo) ListProducts(_ context.Context) ([]domain.Product, error) {
	var out []domain.Product
	for _, product := range f.products {
		out = append(out, product)
	}
	return out, nil
}
