package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	// DSN points at the control-plane database (users, tenants, billing).
	DSN string `envconfig:"DSN" required:"true"`

	// DefaultTenantID and DefaultTenantDSN seed the data source registry at
	// boot so a single-tenant deployment works without a provisioning call.
	DefaultTenantID  string `envconfig:"default_tenant_id"`
	DefaultTenantDSN string `envconfig:"default_tenant_dsn"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	JWTSecret       string        `envconfig:"jwt_secret" required:"true"`
	AccessTokenTTL  time.Duration `envconfig:"access_token_ttl" default:"30m"`
	RefreshTokenTTL time.Duration `envconfig:"refresh_token_ttl" default:"336h"`

	CookieDomain string `envconfig:"cookie_domain"`
	CookieSecure bool   `envconfig:"cookie_secure" default:"true"`
	// CookieSameSite accepts lax, strict or none. Cross-origin SPA
	// deployments need none together with cookie_secure=true.
	CookieSameSite string `envconfig:"cookie_same_site" default:"lax"`

	CORSAllowedOrigins []string `envconfig:"cors_allowed_origins" default:"*"`

	// QRBaseURL prefixes generated item label links.
	QRBaseURL string `envconfig:"qr_base_url" default:"http://localhost:8080"`
}
