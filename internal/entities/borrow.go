package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Borrow records a user taking a book out. It is open while ReturnDate is nil
// and closed for good once ReturnDate is set.
type Borrow struct {
	ID         string     `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	UserID     string     `gorm:"index:idx_borrows_open,priority:1;size:36;not null" bson:"user" json:"user"`
	BookID     string     `gorm:"index:idx_borrows_open,priority:2;size:36;not null" bson:"book" json:"book"`
	BorrowDate time.Time  `gorm:"index;not null" bson:"borrowDate" json:"borrowDate"`
	ReturnDate *time.Time `gorm:"index:idx_borrows_open,priority:3" bson:"returnDate" json:"returnDate"`
	CreatedAt  time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time  `bson:"updatedAt" json:"updatedAt"`
}

func (Borrow) TableName() string {
	return "borrows"
}

func (b *Borrow) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

func (b *Borrow) IsOpen() bool {
	return b.ReturnDate == nil
}

// BorrowDetails is a borrow joined with the borrower and the book. User or
// Book is nil when the referenced record has since been deleted.
type BorrowDetails struct {
	ID         string       `json:"id"`
	User       *UserSummary `json:"user"`
	Book       *BookSummary `json:"book"`
	BorrowDate time.Time    `json:"borrowDate"`
	ReturnDate *time.Time   `json:"returnDate"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

func NewBorrowDetails(b Borrow, user *UserSummary, book *BookSummary) BorrowDetails {
	return BorrowDetails{
		ID:         b.ID,
		User:       user,
		Book:       book,
		BorrowDate: b.BorrowDate,
		ReturnDate: b.ReturnDate,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}
