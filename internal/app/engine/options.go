package engine

import (
	"time"

	"github.com/joaquinbejar/OrderBookEngine/pkg/config"
)

// Options represents configuration options for the Engine.
type Options struct {
	// ExpirySweepInterval is how often each worker purges expired resting
	// orders outside of submissions.
	ExpirySweepInterval time.Duration
	// DepthPublishInterval is how often each worker pushes its book's depth
	// snapshot to the cache.
	DepthPublishInterval time.Duration
	// DepthLevels is the number of levels per side in published snapshots.
	DepthLevels int
	// RequestBuffer is the size of each worker's request mailbox.
	RequestBuffer int
	// Clock is the time source injected into every matcher.
	Clock func() time.Time
}

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{
		ExpirySweepInterval:  time.Second,
		DepthPublishInterval: 500 * time.Millisecond,
		DepthLevels:          20,
		RequestBuffer:        1024,
		Clock:                time.Now,
	}
}

// OptionsFromConfig builds engine options from the service configuration.
func OptionsFromConfig(cfg config.EngineConfig) *Options {
	opts := DefaultEngineOptions()
	if cfg.ExpirySweepInterval > 0 {
		opts.ExpirySweepInterval = cfg.ExpirySweepInterval
	}
	if cfg.DepthPublishInterval > 0 {
		opts.DepthPublishInterval = cfg.DepthPublishInterval
	}
	if cfg.DepthLevels > 0 {
		opts.DepthLevels = cfg.DepthLevels
	}
	if cfg.RequestBuffer > 0 {
		opts.RequestBuffer = cfg.RequestBuffer
	}
	return opts
}
