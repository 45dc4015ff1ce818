package domain

import "time"

// DeferPolicy controls the auto-defer race: when enabled, a handler that has
// not returned within Timeout is acknowledged with a deferred response and
// finishes in the background.
type DeferPolicy struct {
	Enabled   bool
	Timeout   time.Duration
	Ephemeral bool
}

// DeferOverride is a per-handler override of the client-wide DeferPolicy.
// Each field is resolved independently; nil means inherit the default.
type DeferOverride struct {
	Enabled   *bool
	Timeout   *time.Duration
	Ephemeral *bool
}

// Merge resolves the effective policy for one interaction: any non-nil
// override field wins over the default.
func (p DeferPolicy) Merge(o *DeferOverride) DeferPolicy {
	if o == nil {
		return p
	}
	if o.Enabled != nil {
		p.Enabled = *o.Enabled
	}
	if o.Timeout != nil {
		p.Timeout = *o.Timeout
	}
	if o.Ephemeral != nil {
		p.Ephemeral = *o.Ephemeral
	}
	return p
}
