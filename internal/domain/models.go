package domain

import (
	"fmt"
	"math"
	"time"
)

// Enumerations
const (
	RoleAdmin       UserRole = "admin"
	RoleStaff       UserRole = "Staff"
	RoleDealer      UserRole = "Dealer"
	RoleDistributor UserRole = "Distributor"
	RoleMechanic    UserRole = "Mechanic"
	RoleKekeDriver  UserRole = "Keke Driver"
	RoleCarDriver   UserRole = "Car Driver"
	RoleOther       UserRole = "other"

	UserActive  UserStatus = "active"
	UserBlocked UserStatus = "blocked"

	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderCanceled  OrderStatus = "canceled"

	ProductActive   ProductStatus = "active"
	ProductInactive ProductStatus = "inactive"

	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
)

type UserRole string
type UserStatus string
type OrderStatus string
type ProductStatus string
type TaskStatus string

// Roles returns every role a visitor may pick at sign-up.
func Roles() []UserRole {
	return []UserRole{
		RoleAdmin, RoleStaff, RoleDealer, RoleDistributor,
		RoleMechanic, RoleKekeDriver, RoleCarDriver, RoleOther,
	}
}

// ValidRole reports whether r is in the closed role enumeration.
func ValidRole(r UserRole) bool {
	for _, known := range Roles() {
		if known == r {
			return true
		}
	}
	return false
}

func ValidOrderStatus(s OrderStatus) bool {
	return s == OrderPending || s == OrderConfirmed || s == OrderCanceled
}

func ValidTaskStatus(s TaskStatus) bool {
	return s == TaskPending || s == TaskInProgress || s == TaskCompleted
}

func ValidProductStatus(s ProductStatus) bool {
	return s == ProductActive || s == ProductInactive
}

// Money is an amount in the smallest currency unit (kobo).
type Money struct {
	Amount   int64
	Currency string
}

type User struct {
	ID                 int64
	Email              string
	Role               UserRole
	Status             UserStatus
	OnboardingComplete bool
	FirstName          string
	LastName           string
	CallNumber         string
	WhatsappNumber     string
	ProfileImage       string
	PasswordHash       *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time
}

// FullName is the buyer name denormalized onto orders.
func (u User) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Email
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

type Product struct {
	ID          int64
	Type        string
	Litre       string
	Price       Money
	Discount    int
	Description string
	Image       string
	Status      ProductStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// DisplayName is how the catalog labels a product, e.g. "Engine Oil - 4L".
func (p Product) DisplayName() string {
	return fmt.Sprintf("%s - %s", p.Type, p.Litre)
}

// ListPrice derives the pre-discount price shown struck through in the
// catalog. Display-only; never stored.
func (p Product) ListPrice() int64 {
	if p.Discount <= 0 || p.Discount >= 100 {
		return p.Price.Amount
	}
	return int64(math.Round(float64(p.Price.Amount) / (1 - float64(p.Discount)/100)))
}

// BuyerSnapshot is the denormalized buyer contact carried on each order so
// sales views do not join back to users.
type BuyerSnapshot struct {
	Name           string
	Email          string
	CallNumber     string
	WhatsappNumber string
	ProfileImage   string
}

type Order struct {
	ID            int64
	ProductID     int64
	ProductName   string
	Quantity      int
	TotalAmount   Money
	TransactionID string
	UserID        int64
	Buyer         BuyerSnapshot
	Status        OrderStatus
	Balance       Money
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Task struct {
	ID           int64
	UserID       int64
	AssigneeName string
	Title        string
	Description  string
	Status       TaskStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

type Message struct {
	ID         int64
	SenderID   int64
	ReceiverID int64
	Body       string
	ReadAt     *time.Time
	CreatedAt  time.Time
}

type Post struct {
	ID        int64
	Title     string
	Body      string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// DashboardStats mirrors the admin landing counters.
type DashboardStats struct {
	DealerCount      int64
	DistributorCount int64
	StaffCount       int64
	OthersCount      int64
	OrderCount       int64
	ProductCount     int64
}
