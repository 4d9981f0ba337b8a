package httpclient

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/abgdnv/scentshop/pkg/config"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockEndpoint answers with a queue of status codes, then 200.
type mockEndpoint struct {
	mu        sync.Mutex
	callCount int32
	responses []int
}

func (m *mockEndpoint) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount++
	status := http.StatusOK
	if len(m.responses) > 0 {
		status = m.responses[0]
		m.responses = m.responses[1:]
	}
	w.WriteHeader(status)
}

func (m *mockEndpoint) setResponses(responses ...int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = responses
	m.callCount = 0
}

func (m *mockEndpoint) getCallCount() int32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// setupTestEnvironment creates a test endpoint and a client whose transport goes through a breaker.
func setupTestEnvironment(t *testing.T, cfg config.CircuitBreakerConfig) (client *http.Client, endpoint *mockEndpoint, url string) {
	t.Helper()
	endpoint = &mockEndpoint{}
	srv := httptest.NewServer(endpoint)
	t.Cleanup(srv.Close)

	cb := NewCircuitBreaker("test", cfg)
	client = &http.Client{Transport: NewBreakerTransport(nil, cb)}
	return client, endpoint, srv.URL
}

func defaultBreakerConfig() config.CircuitBreakerConfig {
	return config.CircuitBreakerConfig{
		ConsecutiveFailures: 3,
		OpenTimeout:         5 * time.Second,
		HalfOpenRequests:    1,
	}
}

func get(t *testing.T, client *http.Client, url string) (int, error) {
	t.Helper()
	resp, err := client.Get(url)
	if err != nil {
		return 0, err
	}
	_ = resp.Body.Close()
	return resp.StatusCode, nil
}

func TestBreakerTransport_HappyPath(t *testing.T) {
	client, endpoint, url := setupTestEnvironment(t, defaultBreakerConfig())

	// given
	endpoint.setResponses(http.StatusCreated)

	// when
	status, err := get(t, client, url)

	// then
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, int32(1), endpoint.getCallCount())
}

func TestBreakerTransport_ServerErrorStillReturnsResponse(t *testing.T) {
	client, endpoint, url := setupTestEnvironment(t, defaultBreakerConfig())

	endpoint.setResponses(http.StatusServiceUnavailable)

	status, err := get(t, client, url)

	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestBreakerTransport_CircuitBreakerOpens(t *testing.T) {
	client, endpoint, url := setupTestEnvironment(t, defaultBreakerConfig())

	// given
	endpoint.setResponses(http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable)

	// when
	for range 3 {
		_, err := get(t, client, url)
		require.NoError(t, err)
	}
	require.Equal(t, int32(3), endpoint.getCallCount())

	// then
	_, err := get(t, client, url)
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(3), endpoint.getCallCount(), "open breaker must not reach the endpoint")
}

func TestBreakerTransport_CircuitBreakerIgnoresClientErrors(t *testing.T) {
	client, endpoint, url := setupTestEnvironment(t, defaultBreakerConfig())

	// given
	responses := make([]int, 10)
	for i := range responses {
		responses[i] = http.StatusBadRequest
	}
	endpoint.setResponses(responses...)

	// when
	for range 10 {
		status, err := get(t, client, url)
		// then
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, status)
	}

	assert.Equal(t, int32(10), endpoint.getCallCount())
}

func TestBreakerTransport_RecoversAfterOpenTimeout(t *testing.T) {
	cfg := defaultBreakerConfig()
	cfg.ConsecutiveFailures = 1
	cfg.OpenTimeout = 50 * time.Millisecond
	client, endpoint, url := setupTestEnvironment(t, cfg)

	endpoint.setResponses(http.StatusInternalServerError)
	_, err := get(t, client, url)
	require.NoError(t, err)
	_, err = get(t, client, url)
	require.ErrorIs(t, err, gobreaker.ErrOpenState)

	time.Sleep(2 * cfg.OpenTimeout)

	status, err := get(t, client, url)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
}

func TestNewCircuitBreaker_TripsOnErrorRate(t *testing.T) {
	cfg := config.CircuitBreakerConfig{
		ConsecutiveFailures: 4,
		ErrorRatePercent:    50,
		OpenTimeout:         5 * time.Second,
		HalfOpenRequests:    1,
	}
	client, endpoint, url := setupTestEnvironment(t, cfg)

	// alternating failures never reach 4 in a row but exceed 50% once more than 4 calls were made
	endpoint.setResponses(
		http.StatusInternalServerError, http.StatusInternalServerError, http.StatusOK,
		http.StatusInternalServerError, http.StatusInternalServerError, http.StatusOK,
	)
	var openErr error
	for range 6 {
		if _, err := get(t, client, url); err != nil {
			openErr = err
			break
		}
	}

	assert.ErrorIs(t, openErr, gobreaker.ErrOpenState)
	assert.Less(t, endpoint.getCallCount(), int32(6))
}
