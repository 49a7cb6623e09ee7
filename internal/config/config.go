package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Driver define el backend de almacenamiento de gatos.
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// Config agrupa la configuración del servicio (todo por env, prefijo CATS_).
type Config struct {
	Addr string `env:"ADDR" envDefault:":8080"`

	AppName   string `env:"APP_NAME"   envDefault:"cat-registry"`
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	Driver Driver `env:"DB_DRIVER" envDefault:"memory"`
	DSN    string `env:"DB_DSN"`

	// CSRFSecret firma los tokens anti-forgery. Si viene vacío se genera uno
	// aleatorio al arrancar (los tokens no sobreviven reinicios).
	CSRFSecret string `env:"CSRF_SECRET"`

	FlashTTL time.Duration `env:"FLASH_TTL" envDefault:"10m"`

	ReadTimeout  time.Duration `env:"READ_TIMEOUT"  envDefault:"5s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
}

// Load lee la configuración desde variables de entorno CATS_*.
func Load() (Config, error) {
	return LoadFrom(nil)
}

// LoadFrom permite inyectar el entorno (útil en tests). Si environ es nil usa os.Environ.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{Prefix: "CATS_"}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate revisa combinaciones inválidas.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverMemory:
	case DriverPostgres, DriverSQLite:
		if strings.TrimSpace(c.DSN) == "" {
			return fmt.Errorf("CATS_DB_DSN is required for driver %q", c.Driver)
		}
	default:
		return fmt.Errorf("unknown db driver %q", c.Driver)
	}
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("CATS_ADDR must not be empty")
	}
	if c.FlashTTL <= 0 {
		return errors.New("CATS_FLASH_TTL must be positive")
	}
	return nil
}
