package service

import (
	"context"
	"time"

	"overcooked-pos/pos-svc/internal/domain"

	"github.com/shopspring/decimal"
)

// LedgerTx is the set of row operations available inside one atomic unit of
// work. Lookups return domain.ErrNotFound for missing rows and InsertOrder
// returns domain.ErrDuplicate when the (bill, item, owner) key is taken.
type LedgerTx interface {
	GetBillForUpdate(ctx context.Context, billID int) (*domain.Bill, error)
	UpdateBill(ctx context.Context, bill *domain.Bill) error
	DeleteBill(ctx context.Context, billID int) error
	GetItem(ctx context.Context, itemID int) (*domain.Item, error)
	GetOrder(ctx context.Context, billID, itemID, ownerID int) (*domain.Order, error)
	InsertOrder(ctx context.Context, order *domain.Order) error
	UpdateOrder(ctx context.Context, order *domain.Order) error
	DeleteOrder(ctx context.Context, billID, itemID, ownerID int) error
}

type BillRepository interface {
	CreateBill(ctx context.Context, bill *domain.Bill) error
	GetBill(ctx context.Context, billID int) (*domain.Bill, error)
	ListUnsettledBills(ctx context.Context, ownerID int) ([]domain.Bill, error)
	ListOrders(ctx context.Context, billID int) ([]domain.Order, error)
	// WithinTx runs fn in a single transaction. The transaction commits only
	// when fn returns nil.
	WithinTx(ctx context.Context, fn func(tx LedgerTx) error) error
}

type ItemRepository interface {
	CreateItem(ctx context.Context, item *domain.Item) error
	GetItem(ctx context.Context, itemID int) (*domain.Item, error)
	ListItems(ctx context.Context, ownerID int, search string) ([]domain.Item, error)
	UpdateItem(ctx context.Context, item *domain.Item) error
	DeleteItem(ctx context.Context, itemID, ownerID int) (int64, error)
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *domain.Category) error
	GetCategory(ctx context.Context, categoryID int) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, userID int) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ConfirmUser(ctx context.Context, userID int) error
	UpdatePassword(ctx context.Context, userID int, hash string) error
}

// CodeStore keeps short-lived one-time values such as verification codes
// and password reset tokens. Get returns domain.ErrNotFound for unknown keys.
type CodeStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
}

type Mailer interface {
	SendMail(ctx context.Context, to, body string) error
}

type BillLedgerInterface interface {
	CreateBill(ctx context.Context, tableNo, ownerID int) (*domain.Bill, error)
	GetBill(ctx context.Context, billID, ownerID int) (*domain.Bill, error)
	ListUnsettledBills(ctx context.Context, ownerID int) ([]domain.Bill, error)
	ApplyDiscount(ctx context.Context, billID, ownerID int, percent decimal.Decimal) (bool, error)
	SettleBill(ctx context.Context, billID, ownerID int) (bool, error)
	DeleteBill(ctx context.Context, billID, ownerID int) (bool, error)
	ReceiptQR(ctx context.Context, billID, ownerID int) ([]byte, error)
}

type OrderBookInterface interface {
	AddOrder(ctx context.Context, billID, itemID, quantity, ownerID int) (bool, error)
	UpdateOrder(ctx context.Context, billID, itemID, quantity, ownerID int) (bool, error)
	DeleteOrder(ctx context.Context, billID, itemID, ownerID int) (bool, error)
}

type MenuServiceInterface interface {
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateItem(ctx context.Context, input ItemInput, ownerID int) (*domain.Item, error)
	ListItems(ctx context.Context, ownerID int, search string) ([]domain.Item, error)
	UpdateItem(ctx context.Context, itemID int, input ItemInput, ownerID int) (*domain.Item, error)
	DeleteItem(ctx context.Context, itemID, ownerID int) (bool, error)
}

type UserServiceInterface interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Me(ctx context.Context, userID int) (*domain.User, error)
	ConfirmUser(ctx context.Context, code string) (bool, error)
	ResendVerificationCode(ctx context.Context, userID int) (bool, error)
	ForgotPassword(ctx context.Context, email string) (bool, error)
	ChangePassword(ctx context.Context, token, password string) (*domain.User, error)
}

var (
	_ BillLedgerInterface  = (*BillLedger)(nil)
	_ OrderBookInterface   = (*OrderBook)(nil)
	_ MenuServiceInterface = (*MenuService)(nil)
	_ UserServiceInterface = (*UserService)(nil)
)
