package entities

import "time"

// Firm is a customer ordering production work.
type Firm struct {
	ID          uint64
	Name        string
	ContactName string
	Phone       string
	Email       string
	Address     string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Model is a garment model produced for a firm.
type Model struct {
	ID        uint64
	FirmID    uint64
	Name      string
	Code      string
	ImagePath string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleManager  UserRole = "manager"
	RoleOperator UserRole = "operator"
)

// User is an operator or manager selectable when completing a transfer.
type User struct {
	ID           uint64
	FullName     string
	Email        string
	PasswordHash string
	Role         UserRole
	WorkshopID   *uint64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// Technic is a production technique attachable to an order.
type Technic struct {
	ID          uint64
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// CostItem is a billable material or process in the catalog.
type CostItem struct {
	ID        uint64
	Name      string
	Unit      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// WorkshopCostItem binds a cost item to a workshop with an effective price
// and calculation rule.
type WorkshopCostItem struct {
	ID              uint64
	WorkshopID      uint64
	CostItemID      uint64
	CostItemName    string
	CostItemUnit    string
	Price           float64
	Currency        string
	CalculationType CalculationType
	Priority        *int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// ModelCost is a persisted cost record created when a transfer completes.
type ModelCost struct {
	ID           uint64
	OrderID      uint64
	WorkshopID   uint64
	CostItemID   uint64
	QuantityUsed float64
	Quantity2    *float64
	Unit         string
	Unit2        string
	ActualPrice  float64
	Currency     string
	TotalCost    float64
	Note         string
	CreatedAt    time.Time
}

// OrderImage is an uploaded photo attached to an order.
type OrderImage struct {
	ID           uint64
	OrderID      uint64
	FilePath     string
	OriginalName string
	CreatedAt    time.Time
}

// ExchangeRate is the banknote selling rate for one currency against the
// base currency.
type ExchangeRate struct {
	ID              uint64
	CurrencyCode    string
	BanknoteSelling float64
	FetchedAt       time.Time
}
