package httpapi

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"domiva/config"
	"domiva/ratelimit"
)

const (
	msgTooManyRequests = "Muitas tentativas. Tente novamente mais tarde."
	msgInvalidRequest  = "Pedido inválido"
)

// securityHeaders is the fixed header set applied to every response.
var securityHeaders = map[string]string{
	"Content-Security-Policy": strings.Join([]string{
		"default-src 'self'",
		"img-src 'self' data: https:",
		"frame-src 'none'",
		"object-src 'none'",
		"base-uri 'self'",
		"form-action 'self'",
	}, "; "),
	"X-Content-Type-Options":    "nosniff",
	"X-Frame-Options":           "DENY",
	"X-XSS-Protection":          "1; mode=block",
	"Strict-Transport-Security": "max-age=31536000; includeSubDomains; preload",
	"Referrer-Policy":           "strict-origin-when-cross-origin",
	"Permissions-Policy":        "camera=(), microphone=(), geolocation=(self)",
}

// SecurityHeaders applies the standard security header set to all responses.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for key, value := range securityHeaders {
			w.Header().Set(key, value)
		}
		next.ServeHTTP(w, r)
	})
}

// Throttle applies a per-IP, per-path sliding-window limit. The name keeps
// stacked throttles with different budgets on separate windows. Denied
// requests get 429 with a Retry-After hint.
func Throttle(limiter *ratelimit.Limiter, name string, rule config.RateLimitRule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			action := name + ":" + clientIP(r) + ":" + r.URL.Path
			if !limiter.Allow(r.Context(), action, rule.Limit, rule.Window()) {
				w.Header().Set("Retry-After", strconv.Itoa(rule.WindowSeconds))
				respondErrorCode(w, http.StatusTooManyRequests, msgTooManyRequests, "RATE_LIMIT_EXCEEDED")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// allowedContentTypes are the media types accepted on mutating endpoints.
var allowedContentTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
	"text/plain",
}

// ScreenContentType rejects mutating requests with suspicious content types
// before they reach a handler.
func ScreenContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		contentType := r.Header.Get("Content-Type")
		if contentType != "" && !contentTypeAllowed(contentType) {
			respondErrorCode(w, http.StatusBadRequest, msgInvalidRequest, "INVALID_REQUEST")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func contentTypeAllowed(contentType string) bool {
	for _, allowed := range allowedContentTypes {
		if strings.Contains(contentType, allowed) {
			return true
		}
	}
	return false
}

// clientIP extracts the caller's address, trusting an upstream RealIP
// middleware to have rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
