// internal/app/system/limits/limits.go
package limits

// Size limits for request and response bodies.
// These limits help prevent memory exhaustion from oversized payloads.
const (
	// MaxLoginFormSize bounds the sign-in form (login ID, password, return URL).
	MaxLoginFormSize = 16 << 10 // 16 KB

	// MaxHeartbeatFormSize bounds the activity heartbeat form.
	MaxHeartbeatFormSize = 4 << 10 // 4 KB

	// MaxAPIResponseSize bounds a single remote API response body.
	MaxAPIResponseSize = 4 << 20 // 4 MB
)
