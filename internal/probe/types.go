package probe

import "context"

// CheckResult holds the outcome of a single probe. The transition policy
// only consumes Success; the rest is telemetry for logs.
type CheckResult struct {
	Success    bool    `json:"success"`
	StatusCode int     `json:"status_code,omitempty"`
	Message    string  `json:"message"`
	LatencyMS  float64 `json:"latency_ms,omitempty"`
}

// Checker performs a single reachability check for a target URL.
// Timeouts, DNS failures and HTTP errors all collapse to Success=false.
type Checker interface {
	Check(ctx context.Context, target string) CheckResult
}
