package config

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

type DBConfig struct {
	Host             string
	Port             string
	User             string
	Password         string
	Name             string
	SSLMode          string
	TimeZone         string
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetime  time.Duration
	ConnectTimeout   time.Duration
	StatementTimeout time.Duration
	// SchemaTimeout bounds the background migrate and seed run at startup.
	SchemaTimeout time.Duration
}

var (
	dbConfig *DBConfig
	dbOnce   sync.Once
)

func LoadDBConfig() *DBConfig {
	dbOnce.Do(func() {
		dbConfig = &DBConfig{
			Host:             getEnvString("DB_HOST", "localhost"),
			Port:             getEnvString("DB_PORT", "5432"),
			User:             getEnvString("DB_USER", "postgres"),
			Password:         getEnvString("DB_PASSWORD", ""),
			Name:             getEnvString("DB_NAME", "job_portal"),
			SSLMode:          getEnvString("DB_SSLMODE", "disable"),
			TimeZone:         getEnvString("DB_TIMEZONE", "UTC"),
			MaxOpenConns:     getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:     getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime:  getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnectTimeout:   getEnvDuration("DB_CONNECT_TIMEOUT", 60*time.Second),
			StatementTimeout: getEnvDuration("DB_STATEMENT_TIMEOUT", 60*time.Second),
			SchemaTimeout:    getEnvDuration("DB_SCHEMA_TIMEOUT", 2*time.Minute),
		}
	})
	return dbConfig
}

// DSN renders the libpq keyword/value connection string understood by pgx.
// Values are single-quoted so passwords may contain spaces or quotes;
// TimeZone is the exception.
func (c *DBConfig) DSN() string {
	pairs := []struct {
		key   string
		value string
	}{
		{"host", c.Host},
		{"user", c.User},
		{"password", c.Password},
		{"dbname", c.Name},
		{"port", c.Port},
		{"sslmode", c.SSLMode},
		{"connect_timeout", strconv.Itoa(int(c.ConnectTimeout.Seconds()))},
		{"statement_timeout", strconv.FormatInt(c.StatementTimeout.Milliseconds(), 10)},
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.key+"="+quoteDSNValue(p.value))
	}
	// The postgres driver lifts TimeZone out of the DSN with a regexp and
	// loads it as a location, so it must stay bare.
	if tz := c.TimeZone; tz != "" && !strings.ContainsAny(tz, ` '\`) {
		parts = append(parts, "TimeZone="+tz)
	}
	return strings.Join(parts, " ")
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func quoteDSNValue(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}
