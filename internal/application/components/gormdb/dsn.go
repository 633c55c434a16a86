package gormdb

import (
	"errors"
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dialector(ds *DataSourceConfig) (gorm.Dialector, error) {
	dsn, err := buildDSN(ds)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(ds.Driver) {
	case DriverMySQL:
		return gormmysql.New(gormmysql.Config{DSN: dsn}), nil
	case DriverPostgres:
		return gormpg.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported driver %q", ds.Driver)
}

func buildDSN(ds *DataSourceConfig) (string, error) {
	if strings.TrimSpace(ds.DSN) != "" {
		return ds.DSN, nil
	}
	if ds.Host == "" || ds.User == "" || ds.Database == "" {
		return "", errors.New("host, user, database required when dsn not provided")
	}
	switch strings.ToLower(ds.Driver) {
	case DriverMySQL:
		return mysqlDSN(ds), nil
	case DriverPostgres:
		return postgresDSN(ds), nil
	}
	return "", fmt.Errorf("unsupported driver %q", ds.Driver)
}

// mysqlDSN 固定 parseTime 与 UTC，保证 DATETIME 与 time.Time 往返不漂移。
func mysqlDSN(ds *DataSourceConfig) string {
	port := ds.Port
	if port == 0 {
		port = 3306
	}
	cfg := mysqldrv.NewConfig()
	cfg.User = ds.User
	cfg.Passwd = ds.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(ds.Host, strconv.Itoa(port))
	cfg.DBName = ds.Database
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	if len(ds.Params) > 0 {
		cfg.Params = make(map[string]string, len(ds.Params))
		for k, v := range ds.Params {
			cfg.Params[k] = v
		}
	}
	if _, ok := cfg.Params["charset"]; !ok {
		if cfg.Params == nil {
			cfg.Params = map[string]string{}
		}
		cfg.Params["charset"] = "utf8mb4"
	}
	return cfg.FormatDSN()
}

func postgresDSN(ds *DataSourceConfig) string {
	port := ds.Port
	if port == 0 {
		port = 5432
	}
	parts := []string{
		"host=" + ds.Host,
		"user=" + ds.User,
		"password=" + ds.Password,
		"dbname=" + ds.Database,
		"port=" + strconv.Itoa(port),
	}
	keys := make([]string, 0, len(ds.Params))
	for k := range ds.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	hasTZ := false
	for _, k := range keys {
		if strings.EqualFold(k, "TimeZone") {
			hasTZ = true
		}
		parts = append(parts, k+"="+ds.Params[k])
	}
	if !hasTZ {
		parts = append(parts, "TimeZone=UTC")
	}
	return strings.Join(parts, " ")
}
