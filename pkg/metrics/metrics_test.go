package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailMetricsExistAndIncrement(t *testing.T) {
	host := "test-mail-host"

	MailSendSuccess.WithLabelValues(host, "notification").Inc()
	if v := testutil.ToFloat64(MailSendSuccess.WithLabelValues(host, "notification")); v < 1 {
		t.Fatalf("expected MailSendSuccess >= 1, got %v", v)
	}

	MailSendFailure.WithLabelValues(host, "acknowledgment").Add(2)
	if v := testutil.ToFloat64(MailSendFailure.WithLabelValues(host, "acknowledgment")); v < 2 {
		t.Fatalf("expected MailSendFailure >= 2, got %v", v)
	}
}

func TestInstrumentedHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ok", InstrumentedHandler("test_ok", func(c *gin.Context) { c.Status(http.StatusOK) }))
	router.GET("/bad", InstrumentedHandler("test_bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) }))

	for _, path := range []string{"/ok", "/bad", "/bad"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, float64(1), testutil.ToFloat64(APIEndpointRequests.WithLabelValues("test_ok")))
	assert.Equal(t, float64(2), testutil.ToFloat64(APIEndpointRequests.WithLabelValues("test_bad")))
	assert.Equal(t, float64(0), testutil.ToFloat64(APIEndpointErrors.WithLabelValues("test_ok", "200")))
	assert.Equal(t, float64(2), testutil.ToFloat64(APIEndpointErrors.WithLabelValues("test_bad", "400")))
}

func TestMetricsHandlerExposesCollectors(t *testing.T) {
	ContactSubmissions.WithLabelValues("accepted").Inc()

	w := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "contact_mailer_submissions_total"))
}
