// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Store Interfaces (internal/services/interfaces.go)
//
//   - UserStore: user records, looked up by id or email
//   - BookStore: the catalog, with filtered and paginated listing
//   - BorrowStore: borrow records and the atomic open-to-closed transition
//
// Both persistence backends implement all three: the gorm/sqlite
// repositories under internal/database/{users,books,borrows} and the MongoDB
// repositories in internal/database/mongodb. Stores report missing records as
// database.ErrNotFound and unique index violations as database.ErrDuplicate.
//
// ## Controller Interfaces (internal/http/stores.go)
//
//   - UserManager, BookManager, BorrowManager: what the controllers need
//     from the services
//   - Pinger: store reachability for /health
//
// # Adding a New Backend
//
//  1. Implement the three store interfaces in a sub-package of internal/database/
//
//     type UserRepository struct { ... }
//
//     func (r *UserRepository) CreateUser(ctx context.Context, user *entities.User) error
//
//  2. Map the driver's errors onto database.ErrNotFound and database.ErrDuplicate.
//
//  3. Add a case to entrypoint.OpenBackend and a DATABASE_DRIVER value in config.
//
//  4. Add compile-time checks:
//
//     var _ services.UserStore = (*UserRepository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
