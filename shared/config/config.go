package config

import (
	"os"
	"path"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

const (
	defaultHttpPort         = 5000
	defaultShutdownTimeout  = 10 * time.Second
	defaultMaxOpenConns     = 10
	defaultMaxIdleConns     = 5
	defaultConnMaxLifetime  = 5 * time.Minute
	defaultConnMaxIdleTime  = 1 * time.Minute
	defaultBoardTitle       = "MyBoard"
	defaultPageLimit        = 10
	defaultMaxPageLimit     = 100
	defaultIdempotencyTTL   = 24 * time.Hour
	defaultPostgresPort     = 5432
	defaultPostgresHost     = "localhost"
	defaultPostgresUser     = "postgres"
	defaultPostgresDatabase = "todo_db"
	defaultLogLevel         = "info"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Http              Http   `yaml:"http"`
	Pg                PgPool `yaml:"pg"`
	Log               Log    `yaml:"log"`
	Redis             Redis  `yaml:"redis"`
	Cors              Cors   `yaml:"cors"`
	DefaultBoardTitle string `yaml:"default_board_title" validate:"required"`
	DefaultPageLimit  int    `yaml:"default_page_limit" validate:"gt=0"`
	MaxPageLimit      int    `yaml:"max_page_limit" validate:"gtefield=DefaultPageLimit"`
}

type Http struct {
	Port            int           `yaml:"port" validate:"gt=0,lte=65535"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// connection pool; requests beyond MaxOpenConns wait for a free connection
type PgPool struct {
	MaxOpenConns    int           `yaml:"max_open_conns" validate:"gt=0"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
}

type Log struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Json  bool   `yaml:"json"`
}

// empty Addr disables the idempotency guard
type Redis struct {
	Addr           string        `yaml:"addr"`
	IdempotencyTTL time.Duration `yaml:"idempotency_ttl"`
}

type Cors struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Private struct {
	Pg    Pg           `yaml:"pg"`
	Redis PrivateRedis `yaml:"redis"`
}

type Pg struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"gt=0,lte=65535"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname" validate:"required"`
}

type PrivateRedis struct {
	Password string `yaml:"password"`
}

func mustLoadPath(configPath string, output interface{}) {
	// missing files are allowed, everything can come from env
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err = yaml.UnmarshalStrict(configFile, output); err != nil {
		panic("can't unmarshal config file " + configPath + ": " + err.Error())
	}
}

func MustLoad(configFolder string) *Config {
	cfg := Default()
	mustLoadPath(path.Join(configFolder, "public.yaml"), &cfg.Public)
	mustLoadPath(path.Join(configFolder, "private.yaml"), &cfg.Private)
	applyEnv(cfg)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		panic("invalid config: " + err.Error())
	}
	return cfg
}

// Default returns the configuration used when no file or env overrides anything.
func Default() *Config {
	return &Config{
		Public: Public{
			Http: Http{Port: defaultHttpPort, ShutdownTimeout: defaultShutdownTimeout},
			Pg: PgPool{
				MaxOpenConns:    defaultMaxOpenConns,
				MaxIdleConns:    defaultMaxIdleConns,
				ConnMaxLifetime: defaultConnMaxLifetime,
				ConnMaxIdleTime: defaultConnMaxIdleTime,
			},
			Log:               Log{Level: defaultLogLevel},
			Redis:             Redis{IdempotencyTTL: defaultIdempotencyTTL},
			Cors:              Cors{AllowedOrigins: []string{"*"}},
			DefaultBoardTitle: defaultBoardTitle,
			DefaultPageLimit:  defaultPageLimit,
			MaxPageLimit:      defaultMaxPageLimit,
		},
		Private: Private{
			Pg: Pg{
				Host:   defaultPostgresHost,
				Port:   defaultPostgresPort,
				User:   defaultPostgresUser,
				Dbname: defaultPostgresDatabase,
			},
		},
	}
}

func applyEnv(cfg *Config) {
	setString(&cfg.Private.Pg.Host, "DB_HOST")
	setInt(&cfg.Private.Pg.Port, "DB_PORT")
	setString(&cfg.Private.Pg.User, "DB_USER")
	setString(&cfg.Private.Pg.Password, "DB_PASSWORD")
	setString(&cfg.Private.Pg.Dbname, "DB_NAME")
	setInt(&cfg.Public.Http.Port, "PORT")
	setString(&cfg.Public.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Private.Redis.Password, "REDIS_PASSWORD")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		panic("invalid integer in env " + key + ": " + v)
	}
	*dst = n
}
