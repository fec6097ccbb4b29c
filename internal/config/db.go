package config

// Supported gorm engines.
const (
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	GormEngine string // mysql, postgres or sqlite
	Extras     string // appended to the DSN, e.g. "charset=utf8mb4&parseTime=True" or "sslmode=disable"
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	Path       string // database file, sqlite only
}
