package tracing

import (
	"testing"

	"github.com/AatishKamble/swapify/config"
	"github.com/stretchr/testify/assert"
)

func TestNewSampler(t *testing.T) {
	testCases := []struct {
		Ratio    float64
		Expected string
	}{
		{1, "root:AlwaysOnSampler"},
		{2, "root:AlwaysOnSampler"},
		{0, "root:AlwaysOffSampler"},
		{0.25, "root:TraceIDRatioBased{0.25}"},
	}

	for _, tc := range testCases {
		assert.Contains(t, newSampler(tc.Ratio).Description(), tc.Expected)
	}
}

func TestExporterOptions(t *testing.T) {
	assert.Len(t, exporterOptions(config.TracingConfig{CollectorHost: "otel", CollectorPort: "4318", Insecure: true}), 2)
	assert.Len(t, exporterOptions(config.TracingConfig{CollectorHost: "otel", CollectorPort: "4318"}), 1)
}
