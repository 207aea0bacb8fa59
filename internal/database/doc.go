// Package database provides the relational (gorm + sqlite) data access layer.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── errors.go        # Store-level sentinel errors and driver error mapping
//	├── users/           # User records
//	├── books/           # Book catalog
//	├── borrows/         # Borrow/return records
//	└── mongodb/         # Document-store backend with the same repository surface
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./library.db")
//
//	usersRepo := users.NewRepository(db.DB)
//	booksRepo := books.NewRepository(db.DB)
//	borrowsRepo := borrows.NewRepository(db.DB)
//
// Every repository returns ErrNotFound for missing records and ErrDuplicate
// for unique index violations so callers never inspect driver errors.
//
// # Interface Implementations
//
//   - users.Repository, mongodb.UserRepository: services.UserStore
//   - books.Repository, mongodb.BookRepository: services.BookStore
//   - borrows.Repository, mongodb.BorrowRepository: services.BorrowStore
package database
