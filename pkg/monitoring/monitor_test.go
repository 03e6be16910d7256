package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveScore_CountsOutcome(t *testing.T) {
	submitted := testutil.ToFloat64(AttemptsScored.WithLabelValues("submitted"))
	timedOut := testutil.ToFloat64(AttemptsScored.WithLabelValues("timed_out"))

	ObserveScore(12, 20, false)
	ObserveScore(0, 20, true)
	// zero total marks is counted but not observed as a ratio
	ObserveScore(0, 0, false)

	assert.Equal(t, submitted+2, testutil.ToFloat64(AttemptsScored.WithLabelValues("submitted")))
	assert.Equal(t, timedOut+1, testutil.ToFloat64(AttemptsScored.WithLabelValues("timed_out")))
}

func TestMetricsMiddleware_LabelsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(MetricsMiddleware())
	r.GET("/api/tests/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	counter := RequestCounter.WithLabelValues(http.MethodGet, "/api/tests/:id", "204")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tests/"+id, nil))
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}
