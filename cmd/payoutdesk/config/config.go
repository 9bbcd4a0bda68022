package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-payout/internal/payoutdesk"
	"go-payout/internal/payoutdesk/data"
	"go-payout/internal/payoutdesk/data/database"
	"go-payout/internal/payoutdesk/dispatcher"
	"go-payout/internal/payoutdesk/notifier"
	"go.uber.org/zap/zapcore"
)

const (
	serverAddressFlag         = "a"
	serverAddressEnv          = "RUN_ADDRESS"
	serverAddressDefault      = "localhost:8080"
	dbConnectionStringFlag    = "d"
	dbConnectionStringEnv     = "DATABASE_URL"
	dbConnectionStringDefault = ""
	botTokenFlag              = "t"
	botTokenEnv               = "TELEGRAM_BOT_TOKEN"
	adminChatIDFlag           = "c"
	adminChatIDEnv            = "TELEGRAM_ADMIN_CHAT_ID"
	logLevelFlag              = "l"
	logLevelEnv               = "LOG_LEVEL"
	logLevelDefault           = "info"
	telegramAPIURLEnv         = "TELEGRAM_API_URL"
	adminJWTSecretEnv         = "ADMIN_JWT_SECRET"
	allowedStatusesEnv        = "ALLOWED_STATUSES"
	logFormatEnv              = "LOG_FORMAT"
	consoleLogFormat          = "console"
)

var ErrNoDatabase = errors.New("database connection string is required")

type Config struct {
	Server          payoutdesk.Config
	DB              database.Config
	Telegram        notifier.Config
	Dispatcher      dispatcher.Config
	AdminJWT        JWTConfig
	AllowedStatuses data.StatusSet
	LogLevel        zapcore.Level
	LogConsole      bool
}

type JWTConfig struct {
	Algorithm      string
	Secret         string
	ExpirationTime time.Duration
}

// Enabled reports whether admin routes are protected.
func (c JWTConfig) Enabled() bool {
	return c.Secret != ""
}

// Load reads an optional .env file, then command line flags, then the
// environment. Environment values win over flags.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return load(flag.CommandLine, os.Args[1:])
}

// LoadJWT reads only the admin token settings.
func LoadJWT() JWTConfig {
	_ = godotenv.Load()
	return adminJWT()
}

func load(flags *flag.FlagSet, args []string) (*Config, error) {
	serverAddress := flags.String(serverAddressFlag, serverAddressDefault, "Server address host:port")
	dbConnectionString := flags.String(dbConnectionStringFlag, dbConnectionStringDefault, "PostgreSQL connection string")
	botToken := flags.String(botTokenFlag, "", "Telegram bot token")
	adminChatID := flags.String(adminChatIDFlag, "", "Telegram chat id for admin notifications")
	logLevel := flags.String(logLevelFlag, logLevelDefault, "Log level")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if valStr, ok := os.LookupEnv(serverAddressEnv); ok {
		*serverAddress = valStr
	}

	if valStr, ok := os.LookupEnv(dbConnectionStringEnv); ok {
		*dbConnectionString = valStr
	}

	if valStr, ok := os.LookupEnv(botTokenEnv); ok {
		*botToken = valStr
	}

	if valStr, ok := os.LookupEnv(adminChatIDEnv); ok {
		*adminChatID = valStr
	}

	if valStr, ok := os.LookupEnv(logLevelEnv); ok {
		*logLevel = valStr
	}

	if *dbConnectionString == "" {
		return nil, ErrNoDatabase
	}

	level, err := zapcore.ParseLevel(*logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	allowedStatuses := data.DefaultStatusSet()
	if valStr, ok := os.LookupEnv(allowedStatusesEnv); ok {
		allowedStatuses = parseStatuses(valStr)
	}

	telegramAPIURL := notifier.DefaultAPIURL
	if valStr, ok := os.LookupEnv(telegramAPIURLEnv); ok && valStr != "" {
		telegramAPIURL = valStr
	}

	return &Config{
		Server: payoutdesk.Config{
			ServerAddress:   *serverAddress,
			ShutdownTimeout: time.Second * 5,
		},
		DB: database.Config{
			ConnectionString:   *dbConnectionString,
			RetryAttemptDelays: []time.Duration{time.Second, 3 * time.Second, 5 * time.Second},
		},
		Telegram: notifier.Config{
			APIURL:   telegramAPIURL,
			BotToken: *botToken,
			ChatID:   *adminChatID,
		},
		Dispatcher: dispatcher.Config{
			WorkersCount: 2,
			QueueLength:  64,
			SendTimeout:  10 * time.Second,
		},
		AdminJWT:        adminJWT(),
		AllowedStatuses: allowedStatuses,
		LogLevel:        level,
		LogConsole:      os.Getenv(logFormatEnv) == consoleLogFormat,
	}, nil
}

func adminJWT() JWTConfig {
	return JWTConfig{
		Algorithm:      "HS256",
		Secret:         os.Getenv(adminJWTSecretEnv),
		ExpirationTime: 12 * time.Hour,
	}
}

// parseStatuses splits a comma separated list. Blank entries are skipped, so
// an empty list yields an empty set which accepts any status.
func parseStatuses(list string) data.StatusSet {
	var statuses []data.Status
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			statuses = append(statuses, data.Status(item))
		}
	}
	return data.NewStatusSet(statuses...)
}
