package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"overcooked-pos/pos-svc/internal/domain"
	"overcooked-pos/pos-svc/internal/service"
)

type orderKey struct {
	billID, itemID, ownerID int
}

type memoryState struct {
	users      map[int]domain.User
	categories map[int]domain.Category
	items      map[int]domain.Item
	bills      map[int]domain.Bill
	orders     map[orderKey]domain.Order

	nextUserID     int
	nextCategoryID int
	nextItemID     int
	nextBillID     int
}

func (s *memoryState) clone() *memoryState {
	c := *s
	c.users = make(map[int]domain.User, len(s.users))
	for k, v := range s.users {
		c.users[k] = v
	}
	c.categories = make(map[int]domain.Category, len(s.categories))
	for k, v := range s.categories {
		c.categories[k] = v
	}
	c.items = make(map[int]domain.Item, len(s.items))
	for k, v := range s.items {
		c.items[k] = v
	}
	c.bills = make(map[int]domain.Bill, len(s.bills))
	for k, v := range s.bills {
		c.bills[k] = v
	}
	c.orders = make(map[orderKey]domain.Order, len(s.orders))
	for k, v := range s.orders {
		c.orders[k] = v
	}
	return &c
}

// MemoryRepository keeps every table in process memory. It enforces the same
// keys and cascades as the Postgres schema and is used by tests and local runs
// without a database.
type MemoryRepository struct {
	mu    sync.Mutex
	state *memoryState
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		state: &memoryState{
			users:          make(map[int]domain.User),
			categories:     make(map[int]domain.Category),
			items:          make(map[int]domain.Item),
			bills:          make(map[int]domain.Bill),
			orders:         make(map[orderKey]domain.Order),
			nextUserID:     1,
			nextCategoryID: 1,
			nextItemID:     1,
			nextBillID:     1,
		},
	}
}

var (
	_ service.BillRepository     = (*MemoryRepository)(nil)
	_ service.ItemRepository     = (*MemoryRepository)(nil)
	_ service.CategoryRepository = (*MemoryRepository)(nil)
	_ service.UserRepository     = (*MemoryRepository)(nil)
	_ service.LedgerTx           = (*memoryTx)(nil)
)

// WithinTx serializes units of work. fn sees a private copy of the state,
// which replaces the shared state only when fn returns nil.
func (r *MemoryRepository) WithinTx(ctx context.Context, fn func(tx service.LedgerTx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := r.state.clone()
	if err := fn(&memoryTx{state: work}); err != nil {
		return err
	}
	r.state = work
	return nil
}

func (r *MemoryRepository) CreateBill(_ context.Context, bill *domain.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	bill.ID = r.state.nextBillID
	bill.CreatedAt, bill.UpdatedAt = now, now
	r.state.nextBillID++

	stored := *bill
	stored.Orders = nil
	r.state.bills[bill.ID] = stored
	return nil
}

func (r *MemoryRepository) GetBill(_ context.Context, billID int) (*domain.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bill, ok := r.state.bills[billID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &bill, nil
}

func (r *MemoryRepository) ListUnsettledBills(_ context.Context, ownerID int) ([]domain.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bills := []domain.Bill{}
	for _, bill := range r.state.bills {
		if bill.OwnerID == ownerID && !bill.IsSettled {
			bills = append(bills, bill)
		}
	}
	sort.Slice(bills, func(i, j int) bool {
		if bills[i].TableNo != bills[j].TableNo {
			return bills[i].TableNo < bills[j].TableNo
		}
		return bills[i].ID < bills[j].ID
	})
	return bills, nil
}

func (r *MemoryRepository) ListOrders(_ context.Context, billID int) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders := []domain.Order{}
	for key, order := range r.state.orders {
		if key.billID != billID {
			continue
		}
		item := r.state.items[key.itemID]
		order.ItemName = item.Name
		order.ItemRate = item.Rate
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ItemID < orders[j].ItemID })
	return orders, nil
}

func (r *MemoryRepository) CreateCategory(_ context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.state.categories {
		if existing.Name == category.Name {
			return fmt.Errorf("%w: category name", domain.ErrDuplicate)
		}
	}
	category.ID = r.state.nextCategoryID
	r.state.nextCategoryID++
	r.state.categories[category.ID] = *category
	return nil
}

func (r *MemoryRepository) GetCategory(_ context.Context, categoryID int) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	category, ok := r.state.categories[categoryID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &category, nil
}

func (r *MemoryRepository) ListCategories(_ context.Context) ([]domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories := make([]domain.Category, 0, len(r.state.categories))
	for _, category := range r.state.categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (r *MemoryRepository) CreateItem(_ context.Context, item *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.categories[item.CategoryID]; !ok {
		return fmt.Errorf("item category %d: %w", item.CategoryID, domain.ErrNotFound)
	}
	now := time.Now()
	item.ID = r.state.nextItemID
	item.CreatedAt, item.UpdatedAt = now, now
	r.state.nextItemID++
	r.state.items[item.ID] = *item
	return nil
}

func (r *MemoryRepository) GetItem(_ context.Context, itemID int) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state.item(itemID)
}

func (r *MemoryRepository) ListItems(_ context.Context, ownerID int, search string) ([]domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	search = strings.ToLower(search)
	items := []domain.Item{}
	for _, item := range r.state.items {
		if item.OwnerID != ownerID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(item.Name), search) {
			continue
		}
		item.CategoryName = r.state.categories[item.CategoryID].Name
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *MemoryRepository) UpdateItem(_ context.Context, item *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.state.items[item.ID]
	if !ok || existing.OwnerID != item.OwnerID {
		return domain.ErrNotFound
	}
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = time.Now()
	r.state.items[item.ID] = *item
	return nil
}

// DeleteItem removes the item and the order lines that reference it. Bill
// totals are left as they are.
func (r *MemoryRepository) DeleteItem(_ context.Context, itemID, ownerID int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.state.items[itemID]
	if !ok || item.OwnerID != ownerID {
		return 0, nil
	}
	delete(r.state.items, itemID)
	for key := range r.state.orders {
		if key.itemID == itemID {
			delete(r.state.orders, key)
		}
	}
	return 1, nil
}

func (r *MemoryRepository) CreateUser(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.state.users {
		if existing.Email == user.Email {
			return fmt.Errorf("%w: user email", domain.ErrDuplicate)
		}
	}
	now := time.Now()
	user.ID = r.state.nextUserID
	user.CreatedAt, user.UpdatedAt = now, now
	r.state.nextUserID++
	r.state.users[user.ID] = *user
	return nil
}

func (r *MemoryRepository) GetUser(_ context.Context, userID int) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.state.users[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}

func (r *MemoryRepository) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.state.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MemoryRepository) ConfirmUser(_ context.Context, userID int) error {
	return r.updateUser(userID, func(user *domain.User) { user.Confirmed = true })
}

func (r *MemoryRepository) UpdatePassword(_ context.Context, userID int, hash string) error {
	return r.updateUser(userID, func(user *domain.User) { user.Password = hash })
}

func (r *MemoryRepository) updateUser(userID int, apply func(user *domain.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.state.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	apply(&user)
	user.UpdatedAt = time.Now()
	r.state.users[userID] = user
	return nil
}

func (s *memoryState) item(itemID int) (*domain.Item, error) {
	item, ok := s.items[itemID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	item.CategoryName = s.categories[item.CategoryID].Name
	return &item, nil
}

// memoryTx operates on the private copy owned by one WithinTx call. The
// repository lock is already held.
type memoryTx struct {
	state *memoryState
}

func (t *memoryTx) GetBillForUpdate(_ context.Context, billID int) (*domain.Bill, error) {
	bill, ok := t.state.bills[billID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &bill, nil
}

func (t *memoryTx) UpdateBill(_ context.Context, bill *domain.Bill) error {
	if _, ok := t.state.bills[bill.ID]; !ok {
		return domain.ErrNotFound
	}
	bill.UpdatedAt = time.Now()
	stored := *bill
	stored.Orders = nil
	t.state.bills[bill.ID] = stored
	return nil
}

func (t *memoryTx) DeleteBill(_ context.Context, billID int) error {
	delete(t.state.bills, billID)
	for key := range t.state.orders {
		if key.billID == billID {
			delete(t.state.orders, key)
		}
	}
	return nil
}

func (t *memoryTx) GetItem(_ context.Context, itemID int) (*domain.Item, error) {
	return t.state.item(itemID)
}

func (t *memoryTx) GetOrder(_ context.Context, billID, itemID, ownerID int) (*domain.Order, error) {
	order, ok := t.state.orders[orderKey{billID, itemID, ownerID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &order, nil
}

func (t *memoryTx) InsertOrder(_ context.Context, order *domain.Order) error {
	key := orderKey{order.BillID, order.ItemID, order.OwnerID}
	if _, ok := t.state.orders[key]; ok {
		return fmt.Errorf("%w: orders_pkey", domain.ErrDuplicate)
	}
	t.state.orders[key] = *order
	return nil
}

func (t *memoryTx) UpdateOrder(_ context.Context, order *domain.Order) error {
	key := orderKey{order.BillID, order.ItemID, order.OwnerID}
	if _, ok := t.state.orders[key]; !ok {
		return domain.ErrNotFound
	}
	t.state.orders[key] = *order
	return nil
}

func (t *memoryTx) DeleteOrder(_ context.Context, billID, itemID, ownerID int) error {
	delete(t.state.orders, orderKey{billID, itemID, ownerID})
	return nil
}
