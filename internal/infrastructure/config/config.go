package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Storage   StorageConfig
	Checkout  CheckoutConfig
	PDF       PDFConfig
	Swagger   SwaggerConfig
	Telemetry TelemetryConfig
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json or console
	Output string // stdout, stderr, or a file path
}

// AppConfig identifies the running instance.
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds PostgreSQL connection and pool settings.
// Lifetime and idle time are expressed in minutes.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

// RedisConfig holds connection settings for the token blacklist and
// idempotency store.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig holds token signing settings. RefreshSecret falls back to
// Secret when empty.
type JWTConfig struct {
	Secret                 string
	RefreshSecret          string
	AccessTokenExpiration  time.Duration
	RefreshTokenExpiration time.Duration
	Issuer                 string
}

// HTTPConfig holds server timeouts, rate limiting, and CORS settings.
// The auth limiter is a separate, stricter bucket applied to the
// /auth/ endpoints only.
type HTTPConfig struct {
	ReadTimeout           time.Duration
	WriteTimeout          time.Duration
	IdleTimeout           time.Duration
	MaxHeaderBytes        int
	MaxBodySize           int64
	RateLimitEnabled      bool
	RateLimitRequests     int
	RateLimitWindow       time.Duration
	AuthRateLimitEnabled  bool
	AuthRateLimitRequests int
	AuthRateLimitWindow   time.Duration
	CORSAllowOrigins      []string
	CORSAllowMethods      []string
	CORSAllowHeaders      []string
	TrustedProxies        []string
}

// StorageConfig holds S3-compatible object storage settings for product images
type StorageConfig struct {
	Endpoint         string // Custom endpoint for MinIO or other S3-compatible stores (empty = AWS)
	Region           string
	Bucket           string
	AccessKeyID      string
	SecretAccessKey  string
	UsePathStyle     bool          // Required for MinIO
	PresignExpiry    time.Duration // Lifetime of presigned upload URLs
	PublicURLBase    string        // Base URL for serving uploaded images (empty = bucket URL)
	AllowedMIMETypes []string
}

// CheckoutConfig holds order pricing rules applied at checkout
type CheckoutConfig struct {
	TaxRate        float64 // Fraction of subtotal, e.g. 0.10 for 10%
	ShippingFlat   float64 // Flat shipping charge per order
	Currency       string
	IdempotencyTTL time.Duration // How long an Idempotency-Key blocks replays
}

// PDFConfig holds invoice rendering configuration
type PDFConfig struct {
	Enabled       bool
	ChromeURL     string // Remote Chrome DevTools endpoint (empty = launch local headless)
	RenderTimeout time.Duration
}

// SwaggerConfig guards the /swagger endpoint. In production it must be
// disabled, behind auth, or IP-restricted.
type SwaggerConfig struct {
	Enabled     bool
	RequireAuth bool
	AllowedIPs  []string // empty means no IP restriction
}

// TelemetryConfig holds OpenTelemetry settings for traces and metrics.
type TelemetryConfig struct {
	Enabled           bool
	CollectorEndpoint string  // OTLP gRPC, e.g. "localhost:4317"
	SamplingRatio     float64 // 0.0 to 1.0
	ServiceName       string
	Insecure          bool // plaintext connection to the collector

	DBTraceEnabled    bool // spans for GORM queries via otelgorm
	DBLogFullSQL      bool // record full SQL in spans, keep off in production
	DBSlowQueryThresh time.Duration
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with SHOP_ prefix (e.g., SHOP_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	// A missing config file is fine, defaults and env vars still apply
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("SHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database:  loadDatabase(v),
		Redis:     loadRedis(v),
		JWT:       loadJWT(v),
		Log:       loadLog(v),
		HTTP:      loadHTTP(v),
		Storage:   loadStorage(v),
		Checkout:  loadCheckout(v),
		PDF:       loadPDF(v),
		Swagger:   loadSwagger(v),
		Telemetry: loadTelemetry(v),
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadDatabase(v *viper.Viper) DatabaseConfig {
	return DatabaseConfig{
		Host:            v.GetString("database.host"),
		Port:            v.GetInt("database.port"),
		User:            v.GetString("database.user"),
		Password:        v.GetString("database.password"),
		DBName:          v.GetString("database.dbname"),
		SSLMode:         v.GetString("database.sslmode"),
		MaxOpenConns:    v.GetInt("database.max_open_conns"),
		MaxIdleConns:    v.GetInt("database.max_idle_conns"),
		ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
		ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
	}
}

func loadRedis(v *viper.Viper) RedisConfig {
	return RedisConfig{
		Host:     v.GetString("redis.host"),
		Port:     v.GetInt("redis.port"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
	}
}

func loadJWT(v *viper.Viper) JWTConfig {
	return JWTConfig{
		Secret:                 v.GetString("jwt.secret"),
		RefreshSecret:          v.GetString("jwt.refresh_secret"),
		AccessTokenExpiration:  v.GetDuration("jwt.access_token_expiration"),
		RefreshTokenExpiration: v.GetDuration("jwt.refresh_token_expiration"),
		Issuer:                 v.GetString("jwt.issuer"),
	}
}

func loadLog(v *viper.Viper) LogConfig {
	return LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
		Output: v.GetString("log.output"),
	}
}

func loadHTTP(v *viper.Viper) HTTPConfig {
	return HTTPConfig{
		ReadTimeout:           v.GetDuration("http.read_timeout"),
		WriteTimeout:          v.GetDuration("http.write_timeout"),
		IdleTimeout:           v.GetDuration("http.idle_timeout"),
		MaxHeaderBytes:        v.GetInt("http.max_header_bytes"),
		MaxBodySize:           v.GetInt64("http.max_body_size"),
		RateLimitEnabled:      v.GetBool("http.rate_limit_enabled"),
		RateLimitRequests:     v.GetInt("http.rate_limit_requests"),
		RateLimitWindow:       v.GetDuration("http.rate_limit_window"),
		AuthRateLimitEnabled:  v.GetBool("http.auth_rate_limit_enabled"),
		AuthRateLimitRequests: v.GetInt("http.auth_rate_limit_requests"),
		AuthRateLimitWindow:   v.GetDuration("http.auth_rate_limit_window"),
		CORSAllowOrigins:      v.GetStringSlice("http.cors_allow_origins"),
		CORSAllowMethods:      v.GetStringSlice("http.cors_allow_methods"),
		CORSAllowHeaders:      v.GetStringSlice("http.cors_allow_headers"),
		TrustedProxies:        v.GetStringSlice("http.trusted_proxies"),
	}
}

func loadStorage(v *viper.Viper) StorageConfig {
	return StorageConfig{
		Endpoint:         v.GetString("storage.endpoint"),
		Region:           v.GetString("storage.region"),
		Bucket:           v.GetString("storage.bucket"),
		AccessKeyID:      v.GetString("storage.access_key_id"),
		SecretAccessKey:  v.GetString("storage.secret_access_key"),
		UsePathStyle:     v.GetBool("storage.use_path_style"),
		PresignExpiry:    v.GetDuration("storage.presign_expiry"),
		PublicURLBase:    v.GetString("storage.public_url_base"),
		AllowedMIMETypes: v.GetStringSlice("storage.allowed_mime_types"),
	}
}

func loadCheckout(v *viper.Viper) CheckoutConfig {
	return CheckoutConfig{
		TaxRate:        v.GetFloat64("checkout.tax_rate"),
		ShippingFlat:   v.GetFloat64("checkout.shipping_flat"),
		Currency:       v.GetString("checkout.currency"),
		IdempotencyTTL: v.GetDuration("checkout.idempotency_ttl"),
	}
}

func loadPDF(v *viper.Viper) PDFConfig {
	return PDFConfig{
		Enabled:       v.GetBool("pdf.enabled"),
		ChromeURL:     v.GetString("pdf.chrome_url"),
		RenderTimeout: v.GetDuration("pdf.render_timeout"),
	}
}

func loadSwagger(v *viper.Viper) SwaggerConfig {
	return SwaggerConfig{
		Enabled:     v.GetBool("swagger.enabled"),
		RequireAuth: v.GetBool("swagger.require_auth"),
		AllowedIPs:  v.GetStringSlice("swagger.allowed_ips"),
	}
}

func loadTelemetry(v *viper.Viper) TelemetryConfig {
	return TelemetryConfig{
		Enabled:           v.GetBool("telemetry.enabled"),
		CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
		SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
		ServiceName:       v.GetString("telemetry.service_name"),
		Insecure:          v.GetBool("telemetry.insecure"),
		DBTraceEnabled:    v.GetBool("telemetry.db_trace_enabled"),
		DBLogFullSQL:      v.GetBool("telemetry.db_log_full_sql"),
		DBSlowQueryThresh: v.GetDuration("telemetry.db_slow_query_threshold"),
	}
}

// fallback replaces a zero value with its default. Zero is treated as
// "not set" so a missing key and an explicit zero behave the same.
func fallback[T comparable](field *T, def T) {
	var zero T
	if *field == zero {
		*field = def
	}
}

// fallbackSlice replaces an empty slice with its default.
func fallbackSlice[T any](field *[]T, def []T) {
	if len(*field) == 0 {
		*field = def
	}
}

// applyDefaults fills every unset field with its built-in default.
func (c *Config) applyDefaults() {
	fallback(&c.App.Name, "storefront-backend")
	fallback(&c.App.Env, "development")
	fallback(&c.App.Port, "8080")

	fallback(&c.Database.Host, "localhost")
	fallback(&c.Database.Port, 5432)
	fallback(&c.Database.User, "postgres")
	fallback(&c.Database.DBName, "storefront")
	fallback(&c.Database.SSLMode, "disable")
	fallback(&c.Database.MaxOpenConns, 25)
	fallback(&c.Database.MaxIdleConns, 5)
	fallback(&c.Database.ConnMaxLifetime, 60)
	fallback(&c.Database.ConnMaxIdleTime, 30)

	fallback(&c.Redis.Host, "localhost")
	fallback(&c.Redis.Port, 6379)

	fallback(&c.JWT.AccessTokenExpiration, 15*time.Minute)
	fallback(&c.JWT.RefreshTokenExpiration, 168*time.Hour)
	fallback(&c.JWT.Issuer, "storefront-backend")

	fallback(&c.Log.Level, "info")
	fallback(&c.Log.Format, "console")
	fallback(&c.Log.Output, "stdout")

	fallback(&c.HTTP.ReadTimeout, 15*time.Second)
	fallback(&c.HTTP.WriteTimeout, 15*time.Second)
	fallback(&c.HTTP.IdleTimeout, 60*time.Second)
	fallback(&c.HTTP.MaxHeaderBytes, 1<<20)      // 1MB
	fallback(&c.HTTP.MaxBodySize, int64(10<<20)) // 10MB
	fallback(&c.HTTP.RateLimitRequests, 100)
	fallback(&c.HTTP.RateLimitWindow, time.Minute)
	// Auth endpoints get a much tighter budget to slow brute force
	fallback(&c.HTTP.AuthRateLimitRequests, 5)
	fallback(&c.HTTP.AuthRateLimitWindow, time.Minute)
	// CORS origins deliberately have no "*" fallback: an empty list means
	// no cross-origin requests until explicitly configured.
	fallbackSlice(&c.HTTP.CORSAllowMethods, []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"})
	fallbackSlice(&c.HTTP.CORSAllowHeaders, []string{"Content-Type", "Authorization", "X-Request-ID", "Idempotency-Key"})

	fallback(&c.Storage.Region, "us-east-1")
	fallback(&c.Storage.Bucket, "storefront-images")
	fallback(&c.Storage.PresignExpiry, 15*time.Minute)
	fallbackSlice(&c.Storage.AllowedMIMETypes, []string{"image/jpeg", "image/png", "image/webp"})

	// 10% tax on subtotal and a flat shipping charge
	fallback(&c.Checkout.TaxRate, 0.10)
	fallback(&c.Checkout.ShippingFlat, 10.00)
	fallback(&c.Checkout.Currency, "USD")
	fallback(&c.Checkout.IdempotencyTTL, 24*time.Hour)

	fallback(&c.PDF.RenderTimeout, 30*time.Second)

	fallback(&c.Telemetry.CollectorEndpoint, "localhost:4317")
	fallback(&c.Telemetry.SamplingRatio, 1.0)
	fallback(&c.Telemetry.ServiceName, "storefront-backend")
	fallback(&c.Telemetry.DBSlowQueryThresh, 200*time.Millisecond)
	// DBLogFullSQL stays false unless explicitly enabled
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	if c.Checkout.TaxRate < 0 || c.Checkout.TaxRate >= 1 {
		return fmt.Errorf("checkout.tax_rate must be in [0, 1), got %f", c.Checkout.TaxRate)
	}
	if c.Checkout.ShippingFlat < 0 {
		return fmt.Errorf("checkout.shipping_flat cannot be negative")
	}

	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	if c.App.Env == "production" {
		return c.validateProduction()
	}
	return nil
}

// validateProduction enforces the hardening a production deployment
// must not skip.
func (c *Config) validateProduction() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required in production")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("jwt.secret must be at least 32 characters in production")
	}
	if c.Database.Password == "" {
		return fmt.Errorf("database.password is required in production")
	}
	if c.Database.SSLMode == "disable" {
		return fmt.Errorf("database.sslmode cannot be 'disable' in production")
	}
	// CORS must not use wildcard with credentials
	for _, origin := range c.HTTP.CORSAllowOrigins {
		if origin == "*" {
			return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
		}
	}
	if c.Swagger.Enabled && !c.Swagger.RequireAuth && len(c.Swagger.AllowedIPs) == 0 {
		return fmt.Errorf("swagger endpoint must be disabled, require authentication, or have IP restriction in production")
	}
	// Full SQL in traces leaks customer data
	if c.Telemetry.DBLogFullSQL {
		return fmt.Errorf("telemetry.db_log_full_sql must be false in production to prevent sensitive data exposure in traces")
	}
	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
