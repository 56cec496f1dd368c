package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type EchoServer struct {
	Debug                         bool
	ListenAddress                 string
	EnableCORSMiddleware          bool
	EnableLoggerMiddleware        bool
	EnableRecoverMiddleware       bool
	EnableRequestIDMiddleware     bool
	EnableTrailingSlashMiddleware bool
}

type LoggerServer struct {
	Level              zerolog.Level
	RequestLevel       zerolog.Level
	PrettyPrintConsole bool

	// File enables a rotating log file next to the console output.
	File           string
	FileMaxSizeMB  int
	FileMaxBackups int
}

type Store struct {
	// DataDir holds the badger directory and the flat fallback file.
	DataDir    string
	InMemory   bool
	SyncWrites bool
}

type Wallet struct {
	DefaultNetwork string
	AutoCreate     bool
	AutoUnlock     bool
	MnemonicWords  int

	// RPCURLs overrides the static network table, keyed by network id.
	RPCURLs map[string]string
}

type Metrics struct {
	Enabled bool
}

type Server struct {
	Echo    EchoServer
	Logger  LoggerServer
	Store   Store
	Wallet  Wallet
	Metrics Metrics
}

// knownNetworkIDs lists the ids for which WALLET_RPC_URL_<ID> is read.
var knownNetworkIDs = []string{"local", "fuji", "mainnet"}

// DefaultServiceConfigFromEnv returns the server config as parsed from environment variables
// and their respective defaults defined below.
// Tests setting env vars must use t.Setenv and must not run in parallel.
func DefaultServiceConfigFromEnv() Server {
	// An `.env` file next to the binary is optional.
	if err := gotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Failed to load .env file")
	}

	v := newViper()

	rpcURLs := make(map[string]string)
	for _, id := range knownNetworkIDs {
		if url := v.GetString("WALLET_RPC_URL_" + strings.ToUpper(id)); url != "" {
			rpcURLs[id] = url
		}
	}

	return Server{
		Echo: EchoServer{
			Debug:                         v.GetBool("SERVER_ECHO_DEBUG"),
			ListenAddress:                 v.GetString("SERVER_ECHO_LISTEN_ADDRESS"),
			EnableCORSMiddleware:          v.GetBool("SERVER_ECHO_ENABLE_CORS_MIDDLEWARE"),
			EnableLoggerMiddleware:        v.GetBool("SERVER_ECHO_ENABLE_LOGGER_MIDDLEWARE"),
			EnableRecoverMiddleware:       v.GetBool("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE"),
			EnableRequestIDMiddleware:     v.GetBool("SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE"),
			EnableTrailingSlashMiddleware: v.GetBool("SERVER_ECHO_ENABLE_TRAILING_SLASH_MIDDLEWARE"),
		},
		Logger: LoggerServer{
			Level:              parseLevel(v.GetString("SERVER_LOGGER_LEVEL"), zerolog.InfoLevel),
			RequestLevel:       parseLevel(v.GetString("SERVER_LOGGER_REQUEST_LEVEL"), zerolog.DebugLevel),
			PrettyPrintConsole: v.GetBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE"),
			File:               v.GetString("SERVER_LOGGER_FILE"),
			FileMaxSizeMB:      v.GetInt("SERVER_LOGGER_FILE_MAX_SIZE_MB"),
			FileMaxBackups:     v.GetInt("SERVER_LOGGER_FILE_MAX_BACKUPS"),
		},
		Store: Store{
			DataDir:    v.GetString("WALLET_DATA_DIR"),
			InMemory:   v.GetBool("WALLET_STORE_IN_MEMORY"),
			SyncWrites: v.GetBool("WALLET_STORE_SYNC_WRITES"),
		},
		Wallet: Wallet{
			DefaultNetwork: v.GetString("WALLET_DEFAULT_NETWORK"),
			AutoCreate:     v.GetBool("WALLET_AUTO_CREATE"),
			AutoUnlock:     v.GetBool("WALLET_AUTO_UNLOCK"),
			MnemonicWords:  v.GetInt("WALLET_MNEMONIC_WORDS"),
			RPCURLs:        rpcURLs,
		},
		Metrics: Metrics{
			Enabled: v.GetBool("SERVER_METRICS_ENABLED"),
		},
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_ECHO_DEBUG", false)
	v.SetDefault("SERVER_ECHO_LISTEN_ADDRESS", "127.0.0.1:8080")
	v.SetDefault("SERVER_ECHO_ENABLE_CORS_MIDDLEWARE", true)
	v.SetDefault("SERVER_ECHO_ENABLE_LOGGER_MIDDLEWARE", true)
	v.SetDefault("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE", true)
	v.SetDefault("SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE", true)
	v.SetDefault("SERVER_ECHO_ENABLE_TRAILING_SLASH_MIDDLEWARE", true)

	v.SetDefault("SERVER_LOGGER_LEVEL", "info")
	v.SetDefault("SERVER_LOGGER_REQUEST_LEVEL", "debug")
	v.SetDefault("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false)
	v.SetDefault("SERVER_LOGGER_FILE", "")
	v.SetDefault("SERVER_LOGGER_FILE_MAX_SIZE_MB", 10)
	v.SetDefault("SERVER_LOGGER_FILE_MAX_BACKUPS", 3)

	v.SetDefault("WALLET_DATA_DIR", defaultDataDir())
	v.SetDefault("WALLET_STORE_IN_MEMORY", false)
	v.SetDefault("WALLET_STORE_SYNC_WRITES", true)
	v.SetDefault("WALLET_DEFAULT_NETWORK", "local")
	v.SetDefault("WALLET_AUTO_CREATE", true)
	v.SetDefault("WALLET_AUTO_UNLOCK", true)
	v.SetDefault("WALLET_MNEMONIC_WORDS", 12)

	v.SetDefault("SERVER_METRICS_ENABLED", true)

	return v
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".quickpay")
	}

	return filepath.Join(homeDir, ".quickpay")
}

func parseLevel(s string, fallback zerolog.Level) zerolog.Level {
	level, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return fallback
	}

	return level
}
