package beacon

import (
	"github.com/spacemeshos/randomness-beacon/metrics"
)

const namespace = "beacon"

var (
	sessionCounter = metrics.NewCounter(
		"session",
		namespace,
		"number of randomness rounds at different stages",
		[]string{"stage"},
	)
	sessionStarted   = sessionCounter.WithLabelValues("started")
	sessionCompleted = sessionCounter.WithLabelValues("completed")
	sessionRetired   = sessionCounter.WithLabelValues("retired")
	sessionDropped   = sessionCounter.WithLabelValues("dropped")

	validationError = metrics.NewCounter(
		"validation_errors",
		namespace,
		"number of share validation errors. not expected to be at zero",
		[]string{"error"},
	)
	malformedError      = validationError.WithLabelValues("malformed")
	notActiveError      = validationError.WithLabelValues("not_active")
	invalidShareError   = validationError.WithLabelValues("invalid")
	duplicateShareError = validationError.WithLabelValues("duplicate")

	sharesAccepted = metrics.NewCounter(
		"shares_accepted",
		namespace,
		"number of verified shares accepted into sessions",
		[]string{},
	).WithLabelValues()

	outputsDropped = metrics.NewCounter(
		"outputs_dropped",
		namespace,
		"number of combined outputs dropped because the consumer is not keeping up",
		[]string{},
	).WithLabelValues()

	sessionsHeld = metrics.NewGauge(
		"sessions",
		namespace,
		"number of rounds currently held, completed rounds included until retirement",
		[]string{},
	).WithLabelValues()

	sharesPerRound = metrics.NewHistogramWithBuckets(
		"shares_per_round",
		namespace,
		"number of shares collected by the time a round combined",
		[]string{},
		[]float64{1, 2, 3, 5, 8, 13, 21},
	).WithLabelValues()
)
