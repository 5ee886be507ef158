package router

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akeren/referrly/pkg/utils"
)

const defaultMaxBodyBytes = 64 << 10

// HTTPSettings are the environment-driven knobs of the HTTP edge, read once at startup.
type HTTPSettings struct {
	Port           string
	TrustedProxies []string
	AllowedOrigins []string
	MaxBodyBytes   int64
	HSTSEnabled    bool
	HSTSValue      string
}

func LoadHTTPSettings() HTTPSettings {
	appEnv := strings.ToLower(utils.GetEnvTrimmed("APP_ENV"))

	return HTTPSettings{
		Port:           utils.GetEnvTrimmedOrDefault("APP_PORT", "8080"),
		TrustedProxies: parseTrustedProxies(utils.GetEnvTrimmed("TRUSTED_PROXIES")),
		AllowedOrigins: splitList(utils.GetEnvTrimmed("CORS_ALLOWED_ORIGIN")),
		MaxBodyBytes:   positiveInt64(utils.GetEnvTrimmed("MAX_REQUEST_BODY_BYTES"), defaultMaxBodyBytes),
		HSTSEnabled:    utils.GetEnvBoolOrDefault("HSTS_ENABLED", appEnv == "production" || appEnv == "prod"),
		HSTSValue: hstsValue(
			positiveInt64(utils.GetEnvTrimmed("HSTS_MAX_AGE"), 31536000),
			utils.GetEnvBoolOrDefault("HSTS_INCLUDE_SUBDOMAINS", true),
		),
	}
}

// OriginAllowed reports whether a browser at origin may call the API.
func (s HTTPSettings) OriginAllowed(origin string) bool {
	for _, allowed := range s.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// parseTrustedProxies returns nil (trust nobody, ClientIP uses RemoteAddr) for an
// empty value and every address for "*".
func parseTrustedProxies(v string) []string {
	if v == "*" {
		return []string{"0.0.0.0/0", "::/0"}
	}
	return splitList(v)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func positiveInt64(raw string, def int64) int64 {
	if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
		return parsed
	}
	return def
}

func hstsValue(maxAge int64, includeSubdomains bool) string {
	value := fmt.Sprintf("max-age=%d", maxAge)
	if includeSubdomains {
		value += "; includeSubDomains"
	}
	return value
}
