package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvFileVar names a dotenv file that takes precedence over every other source file.
const EnvFileVar = "ONRAMP_ENV_FILE"

// Load reads dotenv files into the process environment and builds the App config.
// For each name, "<name>.<APP_ENV>" is read before "<name>" itself; godotenv never
// overrides a variable that is already set, so real environment variables win,
// then the override file, then the environment specific file, then the base file.
func Load(envFiles ...string) (*App, error) {
	logger := slog.Default()
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	for _, path := range envFileCandidates(envFiles) {
		found, err := FindEnvFile(path)
		if err != nil {
			logger.Debug("Environment file not found", "path", path)
			continue
		}
		if err := godotenv.Load(found); err != nil {
			logger.Warn("Failed to load environment file", "path", found, "error", err)
			continue
		}
		logger.Info("Loaded environment file", "path", found)
	}
	return loadFromEnv()
}

func envFileCandidates(envFiles []string) []string {
	var out []string
	if override := os.Getenv(EnvFileVar); override != "" {
		out = append(out, override)
	}
	appEnv := os.Getenv("APP_ENV")
	for _, name := range envFiles {
		if appEnv != "" {
			out = append(out, name+"."+appEnv)
		}
		out = append(out, name)
	}
	return out
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.Default().Info("App config loaded",
		"env", cfg.Env,
		"bridge_api_url", cfg.Bridge.ApiUrl,
		"bridge_api_key", maskValue(cfg.Bridge.ApiKey),
		"manteca_api_url", cfg.Manteca.ApiUrl,
		"manteca_api_key", maskValue(cfg.Manteca.ApiKey),
		"persona_api_url", cfg.Persona.ApiUrl,
		"persona_api_key", maskValue(cfg.Persona.ApiKey),
		"db", maskValue(cfg.DB.Url),
		"redis_lock", cfg.Redis.URL != "",
		"kafka", cfg.Kafka.Brokers != "",
	)
	return &cfg, nil
}
