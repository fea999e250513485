package ctxlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Filter_DefaultState(t *testing.T) {
	cf := newContextFilter()
	assert.Equal(t, FILTER_BLACKLIST, cf.Mode())
	assert.Empty(t, cf.BlacklistedContexts())
	assert.Empty(t, cf.WhitelistedContexts())
	// empty black-list blocks nothing
	for ctx := LogContext(0); ctx < 16; ctx++ {
		assert.True(t, cf.Decide(ctx))
	}
}

func Test_Filter_Blacklist(t *testing.T) {
	cf := newContextFilter()
	cf.ActivateBlackList().AddToBlacklist(5)
	t.Run("listed_dropped", func(t *testing.T) {
		assert.False(t, cf.Decide(5))
		assert.True(t, cf.IsBlacklisted(5))
	})
	t.Run("unlisted_passes", func(t *testing.T) {
		assert.True(t, cf.Decide(6))
		assert.False(t, cf.IsBlacklisted(6))
	})
	t.Run("remove_restores", func(t *testing.T) {
		cf.RemoveFromBlacklist(5)
		assert.True(t, cf.Decide(5))
	})
}

func Test_Filter_Whitelist(t *testing.T) {
	cf := newContextFilter()
	cf.ActivateWhiteList().AddToWhitelist(5)
	t.Run("listed_passes", func(t *testing.T) {
		assert.True(t, cf.Decide(5))
		assert.True(t, cf.IsWhitelisted(5))
	})
	t.Run("unlisted_dropped", func(t *testing.T) {
		assert.False(t, cf.Decide(6))
		assert.False(t, cf.IsWhitelisted(6))
	})
	t.Run("remove_excludes", func(t *testing.T) {
		cf.RemoveFromWhitelist(5)
		assert.False(t, cf.Decide(5))
	})
}

func Test_Filter_AddRemoveIdempotent(t *testing.T) {
	cf := newContextFilter()
	for i := 0; i < 5; i++ {
		cf.AddToBlacklist(7)
		cf.AddToWhitelist(8)
	}
	assert.Equal(t, []LogContext{7}, cf.BlacklistedContexts())
	assert.Equal(t, []LogContext{8}, cf.WhitelistedContexts())
	for i := 0; i < 5; i++ {
		cf.RemoveFromBlacklist(7)
		cf.RemoveFromBlacklist(200) // never added
		cf.RemoveFromWhitelist(8)
	}
	assert.Empty(t, cf.BlacklistedContexts())
	assert.Empty(t, cf.WhitelistedContexts())
}

func Test_Filter_ModeSwitchKeepsLists(t *testing.T) {
	cf := newContextFilter()
	cf.AddToWhitelist(1).AddToWhitelist(2)
	cf.AddToBlacklist(3)

	// switch away and back: both lists survive intact
	cf.ActivateWhiteList()
	cf.ActivateBlackList()
	cf.ActivateWhiteList()
	assert.ElementsMatch(t, []LogContext{1, 2}, cf.WhitelistedContexts())
	assert.ElementsMatch(t, []LogContext{3}, cf.BlacklistedContexts())
	assert.Equal(t, FILTER_WHITELIST, cf.Mode())

	// re-activating the already active mode is a no-op
	cf.ActivateWhiteList()
	assert.Equal(t, FILTER_WHITELIST, cf.Mode())
	assert.ElementsMatch(t, []LogContext{1, 2}, cf.WhitelistedContexts())
}

func Test_Filter_FilterToSingleContext(t *testing.T) {
	cf := newContextFilter()
	cf.AddToWhitelist(10).AddToWhitelist(11) // pre-populated {A, B}
	cf.ActivateBlackList()

	cf.FilterToSingleContext(42)
	assert.Equal(t, FILTER_WHITELIST, cf.Mode())
	assert.Equal(t, []LogContext{42}, cf.WhitelistedContexts(), "whitelist must be exactly {ctx}")
	assert.True(t, cf.Decide(42))
	assert.False(t, cf.Decide(10))
	assert.False(t, cf.Decide(11))
}

func Test_Filter_Reset(t *testing.T) {
	cf := newContextFilter()
	cf.AddToBlacklist(1).AddToBlacklist(2)
	cf.FilterToSingleContext(3)

	cf.Reset()
	assert.Equal(t, FILTER_BLACKLIST, cf.Mode())
	assert.Empty(t, cf.BlacklistedContexts())
	assert.Empty(t, cf.WhitelistedContexts())
	// permissive default: everything passes again
	for _, ctx := range []LogContext{1, 2, 3, 4} {
		assert.True(t, cf.Decide(ctx))
	}
}
