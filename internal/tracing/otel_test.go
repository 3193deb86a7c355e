package tracing

import (
	"bytes"
	"context"
	"testing"

	"go.opentelemetry.io/otel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := Setup(Options{
		Enabled:        true,
		ServiceName:    "provenance-test",
		ServiceVersion: "1.2.3",
		Writer:         &buf,
	})
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "workflow.Dispatch")
	span.End()

	require.NoError(t, shutdown(context.Background()))
	out := buf.String()
	assert.Contains(t, out, "workflow.Dispatch")
	assert.Contains(t, out, "provenance-test")
	assert.Contains(t, out, "1.2.3")
}

func TestSetupDisabled(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := Setup(Options{Enabled: false, ServiceName: "unused", Writer: &buf})
	require.NoError(t, err)

	require.NoError(t, shutdown(context.Background()))
	assert.Zero(t, buf.Len(), "a disabled setup exports nothing")
}
