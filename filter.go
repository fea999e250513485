package ctxlog

import (
	"sync"
)

/*
filter.go

The context filtering engine: two independent mutable sets of context ids
(black-list, white-list) plus an active-mode flag. The filter decides, per log
call, whether a message tagged with a given context may reach filter-aware
sinks. Severity is handled elsewhere (the global threshold), the filter only
knows about context tags.

Mode semantics:
 - black-list active: pass unless the context is black-listed (opt-out,
   "log everything except the noisy subsystems"; an empty black-list blocks
   nothing, which makes it the permissive default)
 - white-list active: pass only white-listed contexts (opt-in, "log only the
   subsystem under investigation")
 - none: everything passes

Exactly one mode is active at a time to avoid ambiguous combined semantics.
Switching modes deliberately keeps the other list's contents, so a
pre-populated white-list survives a temporary switch away. The one exception
is FilterToSingleContext which always clears the white-list first (the
white-list is treated as a single-shot focus tool).

All reads and writes, Decide included, take the same mutex so a decision can
never observe a set mid-mutation.
*/

// contextSet is a set of context ids with order-irrelevant membership.
type contextSet map[LogContext]struct{}

// ContextFilter holds the mutable black-list/white-list state. The zero value
// is not usable, create instances with newContextFilter (every Facade owns
// exactly one, reachable via Filter()).
type ContextFilter struct {
	mtx       sync.Mutex
	mode      FilterMode
	blacklist contextSet
	whitelist contextSet
}

func newContextFilter() *ContextFilter {
	return &ContextFilter{
		mode:      FILTER_BLACKLIST,
		blacklist: contextSet{},
		whitelist: contextSet{},
	}
}

// Mode returns the currently active filtering mode.
func (cf *ContextFilter) Mode() FilterMode {
	cf.mtx.Lock()
	defer cf.mtx.Unlock()
	return cf.mode
}

// ActivateBlackList switches the filter to black-list mode. Idempotent: the
// white-list keeps its contents and can be returned to later.
func (cf *ContextFilter) ActivateBlackList() *ContextFilter {
	return cf.setMode(FILTER_BLACKLIST)
}

// ActivateWhiteList switches the filter to white-list mode. Idempotent: the
// black-list keeps its contents and can be returned to later.
func (cf *ContextFilter) ActivateWhiteList() *ContextFilter {
	return cf.setMode(FILTER_WHITELIST)
}

func (cf *ContextFilter) setMode(mode FilterMode) *ContextFilter {
	cf.mtx.Lock()
	defer cf.mtx.Unlock()
	cf.mode = normMode(mode)
	return cf
}

// AddToBlacklist inserts a context into the black-list. Redundant adds are
// safe no-ops.
func (cf *ContextFilter) AddToBlacklist(ctx LogContext) *ContextFilter {
	return cf.change(func() { cf.blacklist[ctx] = struct{}{} })
}

// RemoveFromBlacklist deletes a context from the black-list. Removing an
// absent context is a safe no-op.
func (cf *ContextFilter) RemoveFromBlacklist(ctx LogContext) *ContextFilter {
	return cf.change(func() { delete(cf.blacklist, ctx) })
}

// AddToWhitelist inserts a context into the white-list. Redundant adds are
// safe no-ops.
func (cf *ContextFilter) AddToWhitelist(ctx LogContext) *ContextFilter {
	return cf.change(func() { cf.whitelist[ctx] = struct{}{} })
}

// RemoveFromWhitelist deletes a context from the white-list. Removing an
// absent context is a safe no-op.
func (cf *ContextFilter) RemoveFromWhitelist(ctx LogContext) *ContextFilter {
	return cf.change(func() { delete(cf.whitelist, ctx) })
}

// IsBlacklisted reports black-list membership regardless of the active mode.
func (cf *ContextFilter) IsBlacklisted(ctx LogContext) bool {
	cf.mtx.Lock()
	defer cf.mtx.Unlock()
	_, found := cf.blacklist[ctx]
	return found
}

// IsWhitelisted reports white-list membership regardless of the active mode.
func (cf *ContextFilter) IsWhitelisted(ctx LogContext) bool {
	cf.mtx.Lock()
	defer cf.mtx.Unlock()
	_, found := cf.whitelist[ctx]
	return found
}

// BlacklistedContexts returns a snapshot of the black-list contents. The
// order is unspecified.
func (cf *ContextFilter) BlacklistedContexts() []LogContext {
	cf.mtx.Lock()
	defer cf.mtx.Unlock()
	keys := make([]LogContext, 0, len(cf.blacklist))
	for k := range cf.blacklist {
		keys = append(keys, k)
	}
	return keys
}

// WhitelistedContexts returns a snapshot of the white-list contents. The
// order is unspecified.
func (cf *ContextFilter) WhitelistedContexts() []LogContext {
	cf.mtx.Lock()
	defer cf.mtx.Unlock()
	keys := make([]LogContext, 0, len(cf.whitelist))
	for k := range cf.whitelist {
		keys = append(keys, k)
	}
	return keys
}

// FilterToSingleContext forces white-list mode, clears the entire white-list
// and inserts exactly ctx. Net effect: only messages tagged ctx pass while
// this mode holds, all other tagged messages are dropped. Unlike plain mode
// switching this always discards the previous white-list contents.
func (cf *ContextFilter) FilterToSingleContext(ctx LogContext) *ContextFilter {
	cf.mtx.Lock()
	defer cf.mtx.Unlock()
	cf.mode = FILTER_WHITELIST
	clear(cf.whitelist)
	cf.whitelist[ctx] = struct{}{}
	return cf
}

// Reset clears both sets entirely and re-activates black-list mode. Since an
// empty black-list blocks nothing this restores the permissive default: all
// tagged and untagged messages pass.
func (cf *ContextFilter) Reset() *ContextFilter {
	cf.mtx.Lock()
	defer cf.mtx.Unlock()
	clear(cf.blacklist)
	clear(cf.whitelist)
	cf.mode = FILTER_BLACKLIST
	return cf
}

// Decide returns the pass/drop verdict for a tagged message. Untagged calls
// never reach Decide: a message with no context attached always passes, there
// is no basis for excluding it.
func (cf *ContextFilter) Decide(ctx LogContext) bool {
	cf.mtx.Lock()
	defer cf.mtx.Unlock()
	switch cf.mode {
	case FILTER_BLACKLIST:
		_, found := cf.blacklist[ctx]
		return !found
	case FILTER_WHITELIST:
		_, found := cf.whitelist[ctx]
		return found
	default:
		return true
	}
}

func (cf *ContextFilter) change(op func()) *ContextFilter {
	cf.mtx.Lock()
	defer cf.mtx.Unlock()
	op()
	return cf
}
