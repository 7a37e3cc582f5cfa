package storage

import (
	"fmt"
	"os"
)

// Open selects a KV implementation using environment variables.
//
//	STORAGE_DRIVER: memory|file|sqlite|redis|postgres (default file)
//	STORAGE_DATA_DIR: directory when driver=file (default ./data)
//	STORAGE_SQLITE_PATH: database file when driver=sqlite
//	REDIS_ADDR, REDIS_PREFIX: when driver=redis
//	DATABASE_URL: when driver=postgres
func Open() (KV, error) {
	driver := os.Getenv("STORAGE_DRIVER")
	if driver == "" {
		driver = string(DriverFile)
	}
	switch Driver(driver) {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile:
		return NewFile(os.Getenv("STORAGE_DATA_DIR"))
	case DriverSQLite:
		return NewSQLite(os.Getenv("STORAGE_SQLITE_PATH"))
	case DriverRedis:
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is not set")
		}
		return NewRedis(addr, os.Getenv("REDIS_PREFIX"))
	case DriverPostgres:
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return nil, fmt.Errorf("DATABASE_URL is not set")
		}
		return NewPostgres(dsn)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
