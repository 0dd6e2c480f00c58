package metrics

import (
	"context"
	"time"
)

type PollFunc = func(ctx context.Context) error

// InstrumentPoller wraps one poll with a duration histogram labelled by
// outcome.
func InstrumentPoller(name string, poll PollFunc) PollFunc {
	return func(ctx context.Context) error {
		start := time.Now()
		err := poll(ctx)

		outcome := Success
		if err != nil {
			outcome = Error
		}
		pollerDurationHistogram.WithLabelValues(name, outcome.String()).Observe(time.Since(start).Seconds())

		return err
	}
}
