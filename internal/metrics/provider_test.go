package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider("credvault")
	require.NoError(t, err)
	require.NotNil(t, provider)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	assert.NotNil(t, provider.MeterProvider())
	assert.NotNil(t, provider.Handler())
}

func TestProvider_HandlerServesMetrics(t *testing.T) {
	provider, err := NewProvider("credvault")
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	business, err := NewBusinessMetrics(provider.MeterProvider(), "credvault")
	require.NoError(t, err)

	ctx := context.Background()
	business.RecordOperation(ctx, "credentials", "credential_create", "success")
	business.RecordDuration(ctx, "credentials", "credential_create", 25*time.Millisecond, "success")

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "credvault_operations_total")
}

func TestNoopBusinessMetrics(t *testing.T) {
	var m BusinessMetrics = NoopBusinessMetrics{}

	// Must not panic
	m.RecordOperation(context.Background(), "identity", "login", "error")
	m.RecordDuration(context.Background(), "identity", "login", time.Second, "error")
}
