package middleware_test

import (
	"clinic/config"
	"clinic/infras/otel/mocks"
	cacheMocks "clinic/shared/cache/mocks"
	"clinic/shared/constant"
	"clinic/transport/http/middleware"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func limitedHandler(t *testing.T, enable bool) (*cacheMocks.MockRedisCache, http.Handler) {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	cache := cacheMocks.NewMockRedisCache(gomock.NewController(t))
	app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cache)

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return cache, app.Tracing(app.RateLimit()(next))
}

func request(handler http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/reservations/slots", nil)
	req.Header.Set(constant.RequestHeaderForwardedFor, "10.0.0.7, 172.16.0.1")
	req.Header.Set(constant.RequestHeaderUserAgent, "curl")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	return recorder
}

func TestRateLimit(t *testing.T) {
	t.Run("counts per client and rejects over the limit", func(t *testing.T) {
		cache, handler := limitedHandler(t, true)

		gomock.InOrder(
			cache.EXPECT().Increment(gomock.Any(), "limiter:10.0.0.7:curl", 60).Return(int64(1), nil),
			cache.EXPECT().Increment(gomock.Any(), "limiter:10.0.0.7:curl", 60).Return(int64(2), nil),
			cache.EXPECT().Increment(gomock.Any(), "limiter:10.0.0.7:curl", 60).Return(int64(3), nil),
		)

		first := request(handler)
		assert.Equal(t, http.StatusNoContent, first.Code)
		assert.Equal(t, "1", first.Header().Get(constant.RequestHeaderRateLimitRemaining))

		assert.Equal(t, http.StatusNoContent, request(handler).Code)

		third := request(handler)
		assert.Equal(t, http.StatusTooManyRequests, third.Code)
		assert.Equal(t, "0", third.Header().Get(constant.RequestHeaderRateLimitRemaining))
	})

	t.Run("cache outage lets requests through", func(t *testing.T) {
		cache, handler := limitedHandler(t, true)
		cache.EXPECT().Increment(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("redis down"))

		assert.Equal(t, http.StatusNoContent, request(handler).Code)
	})

	t.Run("disabled", func(t *testing.T) {
		_, handler := limitedHandler(t, false)

		assert.Equal(t, http.StatusNoContent, request(handler).Code)
	})
}
