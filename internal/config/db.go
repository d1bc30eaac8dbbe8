package config

// DB holds the database configuration settings.
type DB struct {
	// Engine selects the gorm driver: sqlite, mysql or postgres.
	Engine   string
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	// Storage is the database file path for the sqlite engine.
	Storage string
}
