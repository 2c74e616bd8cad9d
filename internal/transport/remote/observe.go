package remote

import (
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/aspectmind/internal/metrics"
)

// observer records metrics and logs for analysis service calls.
type observer struct {
	logger *zap.Logger
}

func (o *observer) observe(op string, start time.Time, err error) {
	dur := time.Since(start)

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.RemoteRequestsTotal.WithLabelValues(op, status).Inc()
	metrics.RemoteRequestDuration.WithLabelValues(op).Observe(dur.Seconds())

	if err != nil {
		o.logger.Warn("remote call failed",
			zap.String("op", op),
			zap.Duration("duration", dur),
			zap.Error(err),
		)
		return
	}
	o.logger.Debug("remote call completed",
		zap.String("op", op),
		zap.Duration("duration", dur),
	)
}
