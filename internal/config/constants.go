package config

const (
	// DefaultDatabasePath is the default path for the sqlite database file.
	DefaultDatabasePath = "./library.db"

	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)
