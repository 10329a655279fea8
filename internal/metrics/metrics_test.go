package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathcoach/internal/questiongen"
)

func TestRecorder_Generations(t *testing.T) {
	r := NewRecorder()

	r.ObserveGeneration("", false, 200*time.Millisecond)
	r.ObserveGeneration(questiongen.CauseMalformedResponse, false, time.Second)
	r.ObserveGeneration("", true, time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.generations.WithLabelValues("initial", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.generations.WithLabelValues("initial", string(questiongen.CauseMalformedResponse))))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.generations.WithLabelValues("follow-up", "ok")))
}

func TestRecorder_Verdicts(t *testing.T) {
	r := NewRecorder()

	r.ObserveVerdict(true)
	r.ObserveVerdict(true)
	r.ObserveVerdict(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.verdicts.WithLabelValues("correct")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.verdicts.WithLabelValues("incorrect")))
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder()
	r.ObserveVerdict(true)
	r.SetActiveSessions(3)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `mathcoach_answers_graded_total{verdict="correct"} 1`)
	assert.Contains(t, body, "mathcoach_http_sessions_active 3")
	assert.Contains(t, body, "go_goroutines")
}
