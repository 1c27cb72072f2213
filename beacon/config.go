package beacon

import (
	"time"
)

// Config is the configuration of the beacon coordinator.
type Config struct {
	// Threshold is the minimum number of distinct verified shares required to
	// combine a round's randomness. Fixed for the coordinator's lifetime.
	Threshold uint16 `mapstructure:"beacon-threshold"`
	// SendInterval is the period of the own-share rebroadcast.
	SendInterval time.Duration `mapstructure:"beacon-send-interval"`
	// ResultBuffer is the capacity of the outgoing randomness channel.
	ResultBuffer int `mapstructure:"beacon-result-buffer"`
	// RetiredRounds bounds how many retired round nonces are remembered so
	// that late notifications do not reopen them.
	RetiredRounds int `mapstructure:"beacon-retired-rounds"`
}

// DefaultConfig returns the default configuration for the beacon.
func DefaultConfig() Config {
	return Config{
		Threshold:     2,
		SendInterval:  time.Second,
		ResultBuffer:  32,
		RetiredRounds: 128,
	}
}

// UnitTestConfig returns the configuration for unit tests.
func UnitTestConfig() Config {
	return Config{
		Threshold:     2,
		SendInterval:  10 * time.Millisecond,
		ResultBuffer:  4,
		RetiredRounds: 4,
	}
}
