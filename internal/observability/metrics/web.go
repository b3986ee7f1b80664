package metrics

import (
	"time"

	obserrors "github.com/ghugn/chem-class-git/internal/observability/errors"
	"github.com/ghugn/chem-class-git/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// APICall captures one round trip to the school API.
type APICall struct {
	Op       string
	Result   string
	Duration time.Duration
	Err      error
}

// EmitAPICall emits the call counter and its latency.
func EmitAPICall(sink statsd.Sink, in APICall) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"op":     in.Op,
		"result": in.Result,
	}
	if in.Err != nil && in.Result == ResultError {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("api.call", 1, tags)
	if in.Duration > 0 {
		sink.Timing("api.duration", in.Duration, CloneTags(tags))
	}
}

// EmitGuardDecision counts a route guard outcome for a subtree ("admin", "student", ...).
func EmitGuardDecision(sink statsd.Sink, subtree, outcome string) {
	if sink == nil {
		return
	}
	sink.Count("guard."+outcome, 1, map[string]string{"subtree": subtree})
}

// EmitRequest records an HTTP request's status class and latency.
func EmitRequest(sink statsd.Sink, method string, status int, d time.Duration) {
	if sink == nil {
		return
	}
	tags := map[string]string{
		"method": method,
		"status": statusClass(status),
	}
	sink.Count("http.request", 1, tags)
	sink.Timing("http.duration", d, CloneTags(tags))
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
