package middleware

import "net/http"

// SecurityHeaders forbids content sniffing and framing.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

func statusOf(ww interface{ Status() int }) int {
	if code := ww.Status(); code != 0 {
		return code
	}
	return http.StatusOK
}
