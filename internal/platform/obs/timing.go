package obs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// RequestID returns the request id stored by the HTTP middleware, if any.
func RequestID(ctx context.Context) string {
	reqID, _ := ctx.Value(RequestIDKey).(string)
	return reqID
}

// Logger returns an entry carrying the request id of ctx.
func Logger(ctx context.Context) *logrus.Entry {
	return logrus.WithField("req_id", RequestID(ctx))
}

// Time logs the duration of an operation; call the returned func with a
// pointer to the named error result:
//
//	defer obs.Time(ctx, "shops.List")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		entry := Logger(ctx).WithFields(logrus.Fields{
			"op":  name,
			"dur": time.Since(start).Milliseconds(),
		})

		if errp != nil && *errp != nil {
			entry.WithError(*errp).Warn("operation failed")
			return
		}
		entry.Debug("operation done")
	}
}
