package media

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/yeisme/folio/pkg/configs"
)

// statusError 非 2xx 响应.
type statusError struct {
	Code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("media store returned status %d", e.Code)
}

// newBreaker 按配置构造熔断器；4xx 属于调用方问题，不计入失败.
func newBreaker(cfg configs.CircuitBreakerConfig) *gobreaker.CircuitBreaker {
	if !cfg.Enabled {
		return nil
	}

	settings := gobreaker.Settings{
		Name:        "media-store",
		MaxRequests: cfg.HalfOpenMax,
		Interval:    cfg.Window,
		Timeout:     cfg.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			total := counts.Requests
			if total < cfg.MinRequests {
				return false
			}
			// 失败比例
			failureRate := float64(counts.TotalFailures) / float64(total)

			return failureRate >= cfg.FailureRate
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}

			var se *statusError

			return errors.As(err, &se) && se.Code < http.StatusInternalServerError
		},
	}

	return gobreaker.NewCircuitBreaker(settings)
}

func isOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
