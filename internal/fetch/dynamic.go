package fetch

import (
	"context"
	"time"
)

// LimitSource supplies the current fetch limits. A zero or negative value
// for either limit means "keep the construction-time default".
type LimitSource interface {
	FetchLimits(ctx context.Context) (timeoutMS, maxChars int, err error)
}

// DynamicFetcher consults a LimitSource on every call, so limit changes
// made at runtime take effect without a restart. When the source is
// unavailable it falls back to the base fetcher's defaults.
type DynamicFetcher struct {
	base   *Fetcher
	limits LimitSource
}

func NewDynamicFetcher(base *Fetcher, limits LimitSource) *DynamicFetcher {
	return &DynamicFetcher{base: base, limits: limits}
}

func (d *DynamicFetcher) Fetch(ctx context.Context, url string) (string, error) {
	timeout := d.base.timeout
	maxChars := d.base.maxChars

	if tms, mc, err := d.limits.FetchLimits(ctx); err == nil {
		if tms > 0 {
			timeout = time.Duration(tms) * time.Millisecond
		}
		if mc > 0 {
			maxChars = mc
		}
	}

	return d.base.fetch(ctx, url, timeout, maxChars)
}
