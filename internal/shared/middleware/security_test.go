package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSecurityHeaders(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()

	SecurityHeaders(okHandler()).ServeHTTP(rec, req)

	want := map[string]string{
		"X-Frame-Options":        "DENY",
		"X-Content-Type-Options": "nosniff",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for header, value := range want {
		if got := rec.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
}

func TestIPRateLimiter(t *testing.T) {
	t.Run("limits per ip after burst", func(t *testing.T) {
		limiter := NewIPRateLimiter(1, 2)
		handler := limiter.Middleware(okHandler())

		statuses := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest("POST", "/reservations", nil)
			req.RemoteAddr = "10.0.0.1:50000"
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			statuses = append(statuses, rec.Code)
		}

		if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
			t.Errorf("burst requests got %v, want first two 200", statuses)
		}
		if statuses[2] != http.StatusTooManyRequests {
			t.Errorf("third request = %d, want %d", statuses[2], http.StatusTooManyRequests)
		}
	})

	t.Run("separate ips do not share a bucket", func(t *testing.T) {
		limiter := NewIPRateLimiter(1, 1)
		handler := limiter.Middleware(okHandler())

		for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1", "10.0.0.3:1"} {
			req := httptest.NewRequest("POST", "/reservations", nil)
			req.RemoteAddr = addr
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("first request from %s = %d, want 200", addr, rec.Code)
			}
		}
	})
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr fallback",
			remoteAddr: "192.168.1.5:4321",
			want:       "192.168.1.5",
		},
		{
			name:       "x-forwarded-for wins",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip when no xff",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			want:       "203.0.113.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
