package metrics

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordedMetric struct {
	kind string
	name string
	tags map[string]string
}

type recordingSink struct {
	metrics []recordedMetric
}

func (r *recordingSink) Count(name string, _ int64, tags map[string]string) {
	r.metrics = append(r.metrics, recordedMetric{"count", name, tags})
}

func (r *recordingSink) Gauge(name string, _ float64, tags map[string]string) {
	r.metrics = append(r.metrics, recordedMetric{"gauge", name, tags})
}

func (r *recordingSink) Timing(name string, _ time.Duration, tags map[string]string) {
	r.metrics = append(r.metrics, recordedMetric{"timing", name, tags})
}

func TestEmitAPICall(t *testing.T) {
	sink := &recordingSink{}
	EmitAPICall(sink, APICall{
		Op:       "classes.list",
		Result:   ResultError,
		Duration: 20 * time.Millisecond,
		Err:      fmt.Errorf("wrap: %w", context.DeadlineExceeded),
	})

	if assert.Len(t, sink.metrics, 2) {
		assert.Equal(t, "api.call", sink.metrics[0].name)
		assert.Equal(t, "timeout", sink.metrics[0].tags["error_class"])
		assert.Equal(t, "classes.list", sink.metrics[0].tags["op"])
		assert.Equal(t, "api.duration", sink.metrics[1].name)
	}

	EmitAPICall(nil, APICall{Op: "noop"})
}

func TestEmitGuardDecision(t *testing.T) {
	sink := &recordingSink{}
	EmitGuardDecision(sink, "student", "redirect_home")
	assert.Equal(t, []recordedMetric{{"count", "guard.redirect_home", map[string]string{"subtree": "student"}}}, sink.metrics)
}

func TestEmitRequest(t *testing.T) {
	sink := &recordingSink{}
	EmitRequest(sink, http.MethodGet, http.StatusSeeOther, time.Millisecond)
	if assert.Len(t, sink.metrics, 2) {
		assert.Equal(t, "3xx", sink.metrics[0].tags["status"])
	}
}
