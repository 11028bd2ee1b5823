package database

import (
	"fmt"
	"jafa-app/config"
	"log"
	"os"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured database. DB_DSN, when set, replaces the
// DSN assembled from the individual DB_* variables.
func Open() (*gorm.DB, error) {
	dsn, dialector, err := getDSNAndDialector(config.DBName)
	if err != nil {
		return nil, err
	}
	if config.DBDriver == "sqlite" {
		return OpenSQLite(dsn)
	}
	log.Printf("Connecting to %s database %s", config.DBDriver, config.DBName)
	return gorm.Open(dialector, gormConfig())
}

// OpenSQLite opens a pure-Go SQLite database with foreign keys enforced.
// In-memory databases are pinned to a single connection so every query
// sees the same data.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	if !strings.Contains(dsn, "_pragma=foreign_keys") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, err
	}

	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(log.New(os.Stdout, "\r\n", log.LstdFlags)),
		NowFunc: func() time.Time {
			return config.Now()
		},
	}
}

// newGormLogger reports slow queries and errors. A missing row is an
// expected outcome (first reference code of a year, 404 lookups) and is not
// logged.
func newGormLogger(w logger.Writer) logger.Interface {
	return logger.New(w, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

func getDSNAndDialector(dbName string) (string, gorm.Dialector, error) {
	if config.DBDSN != "" {
		return dialectorFor(config.DBDriver, config.DBDSN)
	}

	switch config.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
			config.DBHost, config.DBUser, config.DBPassword, dbName, config.DBPort, locationName())
		return dialectorFor("postgres", dsn)
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort, dbName)
		return dialectorFor("mysql", dsn)
	case "mssql", "sqlserver":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort, dbName)
		return dialectorFor("sqlserver", dsn)
	case "sqlite":
		return dialectorFor("sqlite", dbName+".db")
	default:
		return "", nil, fmt.Errorf("unsupported DB_DRIVER: %s", config.DBDriver)
	}
}

func dialectorFor(driver, dsn string) (string, gorm.Dialector, error) {
	switch driver {
	case "postgres":
		return dsn, postgres.Open(dsn), nil
	case "mysql":
		return dsn, mysql.Open(dsn), nil
	case "mssql", "sqlserver":
		return dsn, sqlserver.Open(dsn), nil
	case "sqlite":
		return dsn, sqlite.Open(dsn), nil
	default:
		return "", nil, fmt.Errorf("unsupported DB_DRIVER: %s", driver)
	}
}

func locationName() string {
	if config.Location == nil {
		return "UTC"
	}
	return config.Location.String()
}

// EnsureDatabaseExists creates the application database on a fresh server.
// SQLite creates its file on first open and needs nothing here.
func EnsureDatabaseExists(dbName string) error {
	if config.DBDSN != "" || config.DBDriver == "sqlite" {
		return nil
	}

	var dialector gorm.Dialector
	switch config.DBDriver {
	case "postgres":
		dialector = postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=postgres port=%s sslmode=disable",
			config.DBHost, config.DBUser, config.DBPassword, config.DBPort))
	case "mysql":
		dialector = mysql.Open(fmt.Sprintf("%s:%s@tcp(%s:%s)/?charset=utf8mb4&parseTime=True&loc=Local",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort))
	case "mssql", "sqlserver":
		dialector = sqlserver.Open(fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=master",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort))
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", config.DBDriver)
	}

	db, err := gorm.Open(dialector, gormConfig())
	if err != nil {
		return fmt.Errorf("connect to DB server: %w", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	exists, err := checkDatabaseExists(db, dbName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	log.Printf("Creating database %s", dbName)
	switch config.DBDriver {
	case "mssql", "sqlserver":
		return db.Exec("IF DB_ID('" + dbName + "') IS NULL CREATE DATABASE " + dbName).Error
	default:
		return db.Exec("CREATE DATABASE " + dbName).Error
	}
}

func checkDatabaseExists(db *gorm.DB, dbName string) (bool, error) {
	var count int64
	var err error
	switch config.DBDriver {
	case "postgres":
		err = db.Raw("SELECT COUNT(*) FROM pg_database WHERE datname = ?", dbName).Scan(&count).Error
	case "mysql":
		err = db.Raw("SELECT COUNT(*) FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?", dbName).Scan(&count).Error
	case "mssql", "sqlserver":
		err = db.Raw("SELECT COUNT(*) FROM master.sys.databases WHERE name = ?", dbName).Scan(&count).Error
	default:
		return false, fmt.Errorf("unsupported DB driver")
	}
	return count > 0, err
}
