package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Book struct {
	ID          string    `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	Title       string    `gorm:"size:512;not null" bson:"title" json:"title"`
	Author      string    `gorm:"index;size:256;not null" bson:"author" json:"author"`
	ISBN        string    `gorm:"column:isbn;uniqueIndex;size:20;not null" bson:"ISBN" json:"ISBN"`
	PublishYear int       `gorm:"index;not null" bson:"publishYear" json:"publishYear"`
	Genre       string    `gorm:"index;size:100;not null" bson:"genre" json:"genre"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (Book) TableName() string {
	return "books"
}

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// BookSummary is the subset of book fields shown in borrow listings.
type BookSummary struct {
	ID     string `bson:"_id" json:"id"`
	Title  string `bson:"title" json:"title"`
	Author string `bson:"author" json:"author"`
}

func (b *Book) Summary() BookSummary {
	return BookSummary{ID: b.ID, Title: b.Title, Author: b.Author}
}

// BookChanges lists the mutable book fields. ISBN is deliberately absent.
type BookChanges struct {
	Title       *string
	Author      *string
	PublishYear *int
	Genre       *string
}

func (c BookChanges) IsEmpty() bool {
	return c.Title == nil && c.Author == nil && c.PublishYear == nil && c.Genre == nil
}
