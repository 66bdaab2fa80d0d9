package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
	defaultBasePath           = "/api/v1/auth"
	defaultBcryptCost         = 10

	defaultAccessTokenLifetime       = 5 * time.Minute
	defaultRefreshTokenLifetime      = 7 * 24 * time.Hour
	defaultVerificationTokenLifetime = 24 * time.Hour

	defaultVerificationURL = "http://localhost:8000/api/v1/auth/verify-email/"
	defaultFromEmail       = "webmaster@localhost"
)

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMemory   = "memory"
)

// Email backends.
const (
	EmailBackendSMTP    = "smtp"
	EmailBackendConsole = "console"
	EmailBackendMemory  = "memory"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		// BasePath prefixes every account route.
		BasePath string `json:"basePath" yaml:"basePath"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Database *DatabaseConfig `json:"database" yaml:"database"`

	// SecretKey signs session tokens and email verification tokens.
	SecretKey string `json:"secretKey" yaml:"secretKey"`

	Token *TokenConfig `json:"token" yaml:"token"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	Email *EmailConfig `json:"email" yaml:"email"`

	// QRCode configuration for profile share codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// PubSub configuration for account events
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	Metrics *MetricsConfig `json:"metrics" yaml:"metrics"`
}

// DatabaseConfig selects the storage driver and its connection settings.
type DatabaseConfig struct {
	Driver      string           `json:"driver" yaml:"driver"`
	AutoMigrate bool             `json:"autoMigrate" yaml:"autoMigrate"`
	Postgres    *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`
	MySQL       *MySQLConfig     `json:"mysql" yaml:"mysql" mapstructure:"mysql"`
}

// MySQLConfig holds the DSN parts for the MySQL driver.
type MySQLConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     string `json:"port" yaml:"port"`
	Name     string `json:"name" yaml:"name"`
	User     string `json:"user" yaml:"user"`
	Password string `json:"password" yaml:"password"`

	MaxOpenConns    int           `json:"maxOpenConns" yaml:"maxOpenConns"`
	MaxIdleConns    int           `json:"maxIdleConns" yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `json:"connMaxLifetime" yaml:"connMaxLifetime"`
}

// TokenConfig defines the lifetimes of issued tokens
type TokenConfig struct {
	AccessLifetime       time.Duration `json:"accessLifetime" yaml:"accessLifetime"`
	RefreshLifetime      time.Duration `json:"refreshLifetime" yaml:"refreshLifetime"`
	VerificationLifetime time.Duration `json:"verificationLifetime" yaml:"verificationLifetime"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost int `json:"bcryptCost" yaml:"bcryptCost"`

	// SendVerificationEmail mails a verification link after signup.
	SendVerificationEmail *bool `json:"sendVerificationEmail" yaml:"sendVerificationEmail"`

	// RequireActiveLogin rejects logins and bearer tokens of unverified accounts.
	RequireActiveLogin bool `json:"requireActiveLogin" yaml:"requireActiveLogin"`
}

// ShouldSendVerificationEmail reports whether signup mails a verification link. Defaults to true.
func (c *AuthConfig) ShouldSendVerificationEmail() bool {
	if c == nil || c.SendVerificationEmail == nil {
		return true
	}

	return *c.SendVerificationEmail
}

// EmailConfig defines the outgoing mail transport
type EmailConfig struct {
	Backend     string `json:"backend" yaml:"backend"`
	Host        string `json:"host" yaml:"host"`
	Port        int    `json:"port" yaml:"port"`
	UseTLS      bool   `json:"useTLS" yaml:"useTLS"`
	Username    string `json:"username" yaml:"username"`
	Password    string `json:"password" yaml:"password"`
	DefaultFrom string `json:"defaultFrom" yaml:"defaultFrom"`

	// VerificationURL is the link target; the token is appended as ?token=.
	VerificationURL string `json:"verificationURL" yaml:"verificationURL"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
	BaseURL              string `json:"baseUrl" yaml:"baseUrl"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// MetricsConfig toggles the Prometheus middleware and endpoint
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Example: DATABASE_POSTGRES_SSLMODE -> database.postgres.sslMode
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyDefaults fills every section left empty by the file and the environment.
func (c *Config) ApplyDefaults() {
	if strings.TrimSpace(c.HTTP.MaxRequestBodySize) == "" {
		c.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if c.HTTP.BasePath == "" {
		c.HTTP.BasePath = defaultBasePath
	}
	c.HTTP.BasePath = "/" + strings.Trim(c.HTTP.BasePath, "/")

	if c.Database == nil {
		c.Database = &DatabaseConfig{}
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverPostgres
	}
	c.Database.Driver = strings.ToLower(c.Database.Driver)

	if c.Token == nil {
		c.Token = &TokenConfig{}
	}
	if c.Token.AccessLifetime <= 0 {
		c.Token.AccessLifetime = defaultAccessTokenLifetime
	}
	if c.Token.RefreshLifetime <= 0 {
		c.Token.RefreshLifetime = defaultRefreshTokenLifetime
	}
	if c.Token.VerificationLifetime <= 0 {
		c.Token.VerificationLifetime = defaultVerificationTokenLifetime
	}

	if c.Auth == nil {
		c.Auth = &AuthConfig{}
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = defaultBcryptCost
	}

	if c.Email == nil {
		c.Email = &EmailConfig{}
	}
	if c.Email.Backend == "" {
		c.Email.Backend = EmailBackendConsole
	}
	c.Email.Backend = strings.ToLower(c.Email.Backend)
	if c.Email.DefaultFrom == "" {
		c.Email.DefaultFrom = defaultFromEmail
	}
	if c.Email.VerificationURL == "" {
		c.Email.VerificationURL = defaultVerificationURL
	}

	if c.Metrics == nil {
		c.Metrics = &MetricsConfig{}
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SecretKey) == "" {
		return errors.New("secretKey must be set")
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Postgres == nil {
			return errors.New("database.postgres must be set for the postgres driver")
		}
	case DriverMySQL:
		if c.Database.MySQL == nil {
			return errors.New("database.mysql must be set for the mysql driver")
		}
	case DriverMemory:
	default:
		return errors.Errorf("unknown database driver %q", c.Database.Driver)
	}

	switch c.Email.Backend {
	case EmailBackendSMTP:
		if c.Email.Host == "" || c.Email.Port == 0 {
			return errors.New("email.host and email.port must be set for the smtp backend")
		}
	case EmailBackendConsole, EmailBackendMemory:
	default:
		return errors.Errorf("unknown email backend %q", c.Email.Backend)
	}

	if c.Token.AccessLifetime >= c.Token.RefreshLifetime {
		return errors.New("token.accessLifetime must be shorter than token.refreshLifetime")
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
