package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User carries the account record. UserID is the public 8-digit
// identifier that keys carts and vouchers; the uuid primary key never
// leaves the database.
type User struct {
	ID            uuid.UUID `gorm:"primaryKey"           json:"-"`
	UserID        string    `gorm:"uniqueIndex;not null" json:"userId"`
	FirstName     string    `gorm:"not null"             json:"firstName"`
	LastName      string    `gorm:"not null"             json:"lastName"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash  string    `gorm:"not null"             json:"-"`
	ContactNumber string    `gorm:"not null"             json:"contactNumber"`
	Address       string    `gorm:"not null"             json:"address"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Cart is the single cart document of a user. Contact fields are a
// snapshot of the owner at the time of first write.
type Cart struct {
	ID            uuid.UUID  `gorm:"primaryKey"           json:"-"`
	UserID        string     `gorm:"uniqueIndex;not null" json:"userId"`
	FirstName     string     `gorm:"not null"             json:"firstName"`
	LastName      string     `gorm:"not null"             json:"lastName"`
	Email         string     `gorm:"not null"             json:"email"`
	ContactNumber string     `gorm:"not null"             json:"contactNumber"`
	Address       string     `gorm:"not null"             json:"address"`
	Items         []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"-"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CartItem is one line of a cart. The vendor volume id is the identity
// key; the title and unit price are snapshots taken when the line was
// first added.
type CartItem struct {
	ID       uuid.UUID `gorm:"primaryKey"                         json:"-"`
	CartID   uuid.UUID `gorm:"uniqueIndex:idx_cart_book;not null" json:"-"`
	BookID   string    `gorm:"uniqueIndex:idx_cart_book;not null" json:"bookId"`
	BookName string    `gorm:"not null"                           json:"bookName"`
	Quantity uint      `gorm:"default:1;check:quantity>0"         json:"quantity"`
	Price    float64   `gorm:"not null"                           json:"price"`

	CreatedAt time.Time `json:"-"`
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (CartItem) TableName() string {
	return "cart_items"
}

// Voucher is a purchased gift voucher. IsExpired is promoted lazily by
// the read paths; ExpiredAt is the pure check.
type Voucher struct {
	ID            uuid.UUID `gorm:"primaryKey"           json:"-"`
	UserID        string    `gorm:"index;not null"       json:"userId"`
	FirstName     string    `gorm:"not null"             json:"firstName"`
	LastName      string    `gorm:"not null"             json:"lastName"`
	Email         string    `gorm:"not null"             json:"email"`
	ContactNumber string    `gorm:"not null"             json:"contactNumber"`
	Address       string    `gorm:"not null"             json:"address"`
	VoucherCode   string    `gorm:"uniqueIndex;not null" json:"voucherCode"`
	VoucherPrice  float64   `gorm:"not null"             json:"voucherPrice"`
	PurchaseDate  time.Time `json:"purchaseDate"`
	ExpiryDate    time.Time `gorm:"index"                json:"expiryDate"`
	IsExpired     bool      `gorm:"default:false"        json:"isExpired"`
}

func (v *Voucher) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// ExpiredAt reports whether the voucher is unusable at the given
// instant, whether or not the flag has been persisted yet.
func (v *Voucher) ExpiredAt(now time.Time) bool {
	return v.IsExpired || !v.ExpiryDate.After(now)
}
