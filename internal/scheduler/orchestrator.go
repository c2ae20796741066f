package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/youngbuffalo/scoreline/internal/service"
)

// Orchestrator manages the periodic aggregate refresh
type Orchestrator struct {
	stats  *service.StatsService
	config *Config
	cancel context.CancelFunc
}

// Config holds scheduler configuration
type Config struct {
	RefreshInterval time.Duration // Default: 5m
	EnableRefresh   bool          // Default: true
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() *Config {
	return &Config{
		RefreshInterval: 5 * time.Minute,
		EnableRefresh:   true,
	}
}

// NewOrchestrator creates a new scheduler orchestrator
func NewOrchestrator(stats *service.StatsService, config *Config) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}

	return &Orchestrator{
		stats:  stats,
		config: config,
	}
}

// Start begins the refresh loop
func (o *Orchestrator) Start(ctx context.Context) {
	log.Printf("Totals refresh: %v (interval: %v)", o.config.EnableRefresh, o.config.RefreshInterval)

	ctx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	if o.config.EnableRefresh {
		go o.runRefreshLoop(ctx)
	}
}

// Stop cancels all scheduled tasks
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
}

func (o *Orchestrator) runRefreshLoop(ctx context.Context) {
	ticker := time.NewTicker(o.config.RefreshInterval)
	defer ticker.Stop()

	// One refresh up front so leaderboards are warm after restart
	if err := o.stats.RefreshTotals(ctx); err != nil {
		log.Printf("initial totals refresh failed: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			log.Println("Totals refresh loop stopped")
			return
		case <-ticker.C:
			if err := o.stats.RefreshTotals(ctx); err != nil {
				log.Printf("totals refresh failed: %v", err)
			}
		}
	}
}
