package utils

import (
	"time"

	"github.com/rs/zerolog/log"
)

// RetryHandler retries a function with a fixed delay until it succeeds, the
// attempts are exhausted or the overall deadline passes.
type RetryHandler struct {
	deadline time.Duration
	delay    time.Duration
	attempts int
}

func NewRetryHandler(deadline, delay time.Duration, attempts int) RetryHandler {
	if attempts < 1 {
		attempts = 1
	}
	return RetryHandler{deadline: deadline, delay: delay, attempts: attempts}
}

// Do returns the last error produced by fn, or nil once fn succeeds.
func (r RetryHandler) Do(fn func() error) error {
	start := time.Now()
	var err error
	for i := 0; i < r.attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}

		if i == r.attempts-1 || time.Since(start)+r.delay > r.deadline {
			break
		}

		log.Debug().Err(err).Msgf("retry %d/%d in %s", i+1, r.attempts, r.delay)
		time.Sleep(r.delay)
	}
	return err
}
