package config

import (
	"reflect"
	"strings"

	"kb-admin/core/agent"
	"kb-admin/core/auth"
	"kb-admin/core/database"
	"kb-admin/core/logger"
	"kb-admin/core/query"
	"kb-admin/core/reconcile"
	"kb-admin/core/server"
	"kb-admin/core/storage"
	"kb-admin/core/upload"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (S3, MinIO).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Query holds the read cache settings.
	Query query.Config `mapstructure:"query"`
	// Reconcile holds the save behaviour.
	Reconcile reconcile.Config `mapstructure:"reconcile"`
	// Upload selects and configures the document target.
	Upload upload.Config `mapstructure:"upload"`
	// NAS holds the DiskStation connection used by the nas upload target.
	NAS upload.NASConfig `mapstructure:"nas"`
	// Agent holds the remote agent deployment.
	Agent agent.Config `mapstructure:"agent"`
	// Auth holds the password gate.
	Auth auth.Config `mapstructure:"auth"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Missing .env is fine, the environment alone may carry everything.
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// SECTION_KEY -> section.key
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues registers every mapstructure key with its default tag so that
// AutomaticEnv can resolve it.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Set even when empty, otherwise the key is unknown to AutomaticEnv.
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
