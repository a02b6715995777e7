package module

import (
	"time"

	"bridgewatch/internal/platform/config"
	"bridgewatch/internal/services/bridge/domain"
)

// DefaultURL is the council page announcing Renfrew Bridge closures
const DefaultURL = "https://www.renfrewshire.gov.uk/renfrew-bridge"

// Options holds configuration settings for the bridge module
type Options struct {
	URL            string        `json:"url" validate:"required,url"`
	ContainerClass string        `json:"container_class"`
	RefreshMinutes int           `json:"refresh_minutes" validate:"min=0,max=1440"`
	RetryBackoff   time.Duration `json:"retry_backoff" validate:"min=0"`
	HTTPTimeout    time.Duration `json:"http_timeout" validate:"gt=0"`
	UserAgent      string        `json:"user_agent"`
	Timezone       string        `json:"timezone" validate:"required,timezone"`
	Rollover       bool          `json:"rollover"`
	RolloverMargin time.Duration `json:"rollover_margin" validate:"min=0"`
	MaxDuration    time.Duration `json:"max_duration" validate:"gt=0"`

	// manual refresh limiter
	RefreshPerMinute int `json:"refresh_per_minute" validate:"min=1"`
	RefreshBurst     int `json:"refresh_burst" validate:"min=1"`

	// Source replaces the HTTP fetcher, tests use it
	Source domain.PageSource `json:"-" validate:"-"`
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	bf := cfg.Prefix("CORE_BRIDGE_")
	return Options{
		URL:              bf.MayURL("URL", DefaultURL).String(),
		ContainerClass:   bf.MayString("CONTAINER_CLASS", "newsflash__padding"),
		RefreshMinutes:   bf.MayInt("REFRESH_MINUTES", 5),
		RetryBackoff:     bf.MayDuration("RETRY_BACKOFF", 30*time.Second),
		HTTPTimeout:      time.Duration(bf.MayInt("HTTP_TIMEOUT_SECONDS", 15)) * time.Second,
		UserAgent:        bf.MayString("USER_AGENT", ""),
		Timezone:         bf.MayLocation("TIMEZONE", "Europe/London").String(),
		Rollover:         bf.MayBool("ROLLOVER", true),
		RolloverMargin:   bf.MayDuration("ROLLOVER_MARGIN", 24*time.Hour),
		MaxDuration:      bf.MayDuration("MAX_DURATION", 24*time.Hour),
		RefreshPerMinute: bf.MayInt("REFRESH_PER_MINUTE", 6),
		RefreshBurst:     bf.MayInt("REFRESH_BURST", 2),
	}
}
