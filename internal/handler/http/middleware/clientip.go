package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/epayroll/payroll-backend-go/internal/domain/adminlog"
)

// ClientIP stores the caller's address in the request context so audit
// logs written further down the stack can record it.
func ClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientAddr(r)
		if ip != "" {
			r = r.WithContext(adminlog.WithClientIP(r.Context(), ip))
		}
		next.ServeHTTP(w, r)
	})
}

func clientAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return real
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
