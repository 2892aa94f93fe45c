package postgres

//nolint:revive
import (
	"clinic/config"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute
)

// Connection splits reads from writes. Transactions and everything inside
// them always go through Write.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Target is one side of the read/write pair.
type Target struct {
	Name     string
	Username string
	Password string
	Host     string
	Port     string
	DBName   string
	SSLMode  string
}

func New(config *config.Config) *Connection {
	pg := config.DB.Postgres

	return &Connection{
		Read:  connect(ReadTarget(config), pg.MaxRetry, pg.RetryWaitTime),
		Write: connect(WriteTarget(config), pg.MaxRetry, pg.RetryWaitTime),
	}
}

func WriteTarget(config *config.Config) Target {
	write := config.DB.Postgres.Write

	return Target{
		Name:     "write",
		Username: write.Username,
		Password: write.Password,
		Host:     write.Host,
		Port:     write.Port,
		DBName:   config.DB.Postgres.Prefix + write.Name,
		SSLMode:  write.SSLMode,
	}
}

func ReadTarget(config *config.Config) Target {
	read := config.DB.Postgres.Read

	return Target{
		Name:     "read",
		Username: read.Username,
		Password: read.Password,
		Host:     read.Host,
		Port:     read.Port,
		DBName:   config.DB.Postgres.Prefix + read.Name,
		SSLMode:  read.SSLMode,
	}
}

// DSN renders the target as a postgres URL. Extra query parameters are
// appended as given, which is how migrations pass their table name.
func (t Target) DSN(extra map[string]string) string {
	query := url.Values{}
	if t.SSLMode != "" {
		query.Set("sslmode", t.SSLMode)
	}

	for key, value := range extra {
		if value != "" {
			query.Set(key, value)
		}
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(t.Username, t.Password),
		Host:     net.JoinHostPort(t.Host, t.Port),
		Path:     "/" + t.DBName,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func connect(target Target, maxRetry, waitTime int) *sqlx.DB {
	logger := log.With().
		Str("name", target.Name).
		Str("host", target.Host).
		Str("port", target.Port).
		Str("dbName", target.DBName).
		Logger()

	for retry := range max(maxRetry, 1) {
		sqlDB, err := sqlx.Connect("postgres", target.DSN(nil))
		if err == nil {
			logger.Info().Msg("Connected to database")

			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)
			sqlDB.SetConnMaxLifetime(postgresConnMaxLifetime)

			return sqlDB
		}

		logger.Error().Err(err).Int("attempt", retry+1).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	logger.Fatal().Msgf("Could not connect to database after %d attempts", max(maxRetry, 1))

	return nil
}
