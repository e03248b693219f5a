package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConflictService/pkg/metrics"
)

func TestAuth(t *testing.T) {
	var gotID int64
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = GetUserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "valid", header: "42", status: http.StatusNoContent},
		{name: "missing", header: "", status: http.StatusUnauthorized},
		{name: "not a number", header: "abc", status: http.StatusUnauthorized},
		{name: "negative", header: "-1", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID, gotOK = 0, false
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("X-User-ID", tt.header)
			}
			rec := httptest.NewRecorder()

			Auth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusNoContent {
				assert.True(t, gotOK)
				assert.Equal(t, int64(42), gotID)
			} else {
				assert.False(t, gotOK)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	})

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequestID(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		_, err := uuid.Parse(seen)
		require.NoError(t, err)
		assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
	})

	t.Run("propagated", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", id)
		rec := httptest.NewRecorder()

		RequestID(next).ServeHTTP(rec, req)

		assert.Equal(t, id, seen)
		assert.Equal(t, id, rec.Header().Get("X-Request-ID"))
	})

	t.Run("garbage replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "<script>")
		RequestID(next).ServeHTTP(httptest.NewRecorder(), req)

		assert.NotEqual(t, "<script>", seen)
	})
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.NewWithRegisterer("conflicts", prometheus.NewRegistry())

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m, "conflicts"))
	r.HandleFunc("/bookings/{bookingId}/conflicts", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bookings/"+id+"/conflicts", nil))
	}

	var out dto.Metric
	counter := m.HTTPRequestsTotal.WithLabelValues("conflicts", "GET", "/bookings/{bookingId}/conflicts", "400")
	require.NoError(t, counter.Write(&out))
	assert.Equal(t, 3.0, out.GetCounter().GetValue())
}
