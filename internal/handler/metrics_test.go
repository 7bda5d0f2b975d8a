package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/blogapi/blogapi/internal/metrics"
)

func TestMetricsHandler_Metrics(t *testing.T) {
	recorder := metrics.NewInMemory()
	recorder.IncUserCreated()
	recorder.IncPostDeleted()
	recorder.IncStoreFailure("remove_user")
	recorder.IncStoreFailure("insert_post")
	recorder.ObserveStoreDuration(1500 * time.Millisecond)

	h := NewMetricsHandler(recorder)
	rec := httptest.NewRecorder()
	h.Metrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; version=0.0.4", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "blogapi_users_created_total 1\n")
	assert.Contains(t, body, "blogapi_posts_deleted_total 1\n")
	assert.Contains(t, body, "blogapi_store_failures_total{op=\"insert_post\"} 1\n")
	assert.Contains(t, body, "blogapi_store_failures_total{op=\"remove_user\"} 1\n")
	assert.Contains(t, body, "blogapi_store_duration_seconds_count 1\n")
	assert.Contains(t, body, "blogapi_store_duration_seconds_sum 1.500000\n")
	assert.Less(t,
		strings.Index(body, `op="insert_post"`),
		strings.Index(body, `op="remove_user"`),
	)
}

func TestMetricsHandler_NoSnapshotter(t *testing.T) {
	h := NewMetricsHandler(nil)
	rec := httptest.NewRecorder()

	h.Metrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
