package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	envPrefix      = "chat"
	defaultEnvFile = ".env"
)

var (
	ErrLoad    = errors.New("unable to load configuration")
	ErrInvalid = errors.New("invalid configuration")
)

var validate = validator.New()

// Config is read from CHAT_* environment variables. Command line flags
// may override it before Validate is called.
type Config struct {
	ServerAddr       string        `envconfig:"SERVER_ADDR" default:"ws://localhost:9000" validate:"required,url"`
	PublicKey        string        `envconfig:"PUBLIC_KEY"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=trace debug info warn error"`
	DebugListenAddr  string        `envconfig:"DEBUG_LISTEN_ADDR"`
	MaxFileSize      int64         `envconfig:"MAX_FILE_SIZE" default:"33554432" validate:"gte=0"`
	HandshakeTimeout time.Duration `envconfig:"HANDSHAKE_TIMEOUT" default:"5s" validate:"gt=0"`
	WriteTimeout     time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s" validate:"gt=0"`
	PingInterval     time.Duration `envconfig:"PING_INTERVAL" default:"20s" validate:"gte=0"`
	PongWait         time.Duration `envconfig:"PONG_WAIT" default:"30s" validate:"gtfield=PingInterval"`
	MaxMessageSize   int64         `envconfig:"MAX_MESSAGE_SIZE" default:"1048576" validate:"gt=0"`
	EventBuffer      int           `envconfig:"EVENT_BUFFER" default:"64" validate:"gt=0"`
}

// Load reads env files (".env" when none given, silently skipped if
// absent) and then the process environment.
func Load(envFiles ...string) (Config, error) {
	var cfg Config
	if len(envFiles) == 0 {
		if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, errors.Join(ErrLoad, err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return cfg, errors.Join(ErrLoad, err)
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return cfg, errors.Join(ErrLoad, err)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return errors.Join(ErrInvalid, err)
	}
	return nil
}
