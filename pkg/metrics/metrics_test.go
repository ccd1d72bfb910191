package metrics_test

import (
	"testing"

	"github.com/park-seok-hoon/minishop/pkg/metrics"
)

// Services accept a nil metrics collector, so every counter method must be
// callable on a nil receiver.
func TestNilCollectorIsSafe(t *testing.T) {
	t.Parallel()

	var m *metrics.OrderMetrics
	m.IncCreated()
	m.IncCancelled()
	m.IncModified()
	m.IncStockConflict()
}
