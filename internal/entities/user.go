package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered library member. Password holds the bcrypt hash and is
// never serialized.
type User struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	Name      string    `gorm:"size:50;not null" bson:"name" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" bson:"email" json:"email"`
	Password  string    `gorm:"size:72;not null" bson:"password" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a fresh identifier when none was set.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserSummary is the public part of a user returned alongside auth tokens
// and embedded in borrow listings.
type UserSummary struct {
	ID    string `bson:"_id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// UserChanges lists the mutable user fields. Nil fields are left untouched.
type UserChanges struct {
	Name     *string
	Password *string // already hashed
}

func (c UserChanges) IsEmpty() bool {
	return c.Name == nil && c.Password == nil
}
