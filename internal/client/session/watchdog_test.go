package session

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/evmarket/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchdog_EvictsAndRedirectsOnce(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, f.m.SaveSession(ctx, f.mint(t, time.Hour, common.RoleUser), alice))

	f.m.Start(ctx)
	require.True(t, f.m.Running())
	assert.Empty(t, f.nav.Redirects(), "valid at mount")

	f.clock.Advance(2 * time.Hour)

	require.Eventually(t, func() bool { return len(f.nav.Redirects()) == 1 }, 2*time.Second, 5*time.Millisecond)

	// more ticks must not redirect again
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, []string{"/login"}, f.nav.Redirects())
	assert.Equal(t, ExpiredNotice, f.nav.notices[0])
	assert.Empty(t, f.stored(t))
}

func TestWatchdog_PublicPageEvictsWithoutRedirect(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.nav.path = "/"

	require.NoError(t, f.m.SaveSession(ctx, f.mint(t, time.Minute, common.RoleUser), alice))
	f.m.Start(ctx)
	f.clock.Advance(time.Hour)

	require.Eventually(t, func() bool {
		_, ok := f.m.Token(ctx)
		return !ok
	}, 2*time.Second, 5*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, f.nav.Redirects())
}

func TestWatchdog_MountEvictsExpiredToken(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	events, unsubscribe := f.notifier.Subscribe()
	defer unsubscribe()

	f.putRaw(t, KeyToken, []byte(f.mint(t, -time.Second, common.RoleUser)))
	f.putRaw(t, KeyUserData, []byte(`{"userID":"42"}`))

	f.m.Start(ctx)

	assert.Empty(t, f.stored(t), "evicted before Start returns")
	assert.Empty(t, f.nav.Redirects(), "mount check never redirects")
	assert.Equal(t, ReasonExpired, receive(t, events).Reason)
}

func TestWatchdog_MountSyncsCookie(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	tok := f.mint(t, time.Hour, common.RoleUser)
	f.putRaw(t, KeyToken, []byte(tok))

	f.m.Start(ctx)

	c, ok := f.cookies.Cookie(common.TokenCookieName)
	require.True(t, ok)
	assert.Equal(t, tok, c.Value)
}

func TestWatchdog_StartIsIdempotent(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.putRaw(t, KeyToken, []byte(f.mint(t, time.Hour, common.RoleUser)))

	f.m.Start(ctx)
	writes := len(f.cookies.Writes())
	f.cookies.Drop(common.TokenCookieName)

	f.m.Start(ctx)
	assert.Len(t, f.cookies.Writes(), writes, "second Start must not run the mount check again")

	f.m.Stop()
	assert.False(t, f.m.Running())
	f.m.Stop()
}

func TestWatchdog_RestartsAfterParentContextEnds(t *testing.T) {
	f := newFixture(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	f.m.Start(ctx)
	cancel()
	require.Eventually(t, func() bool { return !f.m.Running() }, time.Second, 5*time.Millisecond)

	f.m.Start(context.Background())
	assert.True(t, f.m.Running())
}

func TestCheckExpiry_NoNavigator(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.Navigator = nil })
	ctx := context.Background()

	f.putRaw(t, KeyToken, []byte(f.mint(t, -time.Second, common.RoleUser)))

	assert.True(t, f.m.CheckExpiry(ctx))
	assert.False(t, f.m.CheckExpiry(ctx), "nothing left to evict")
}

func TestCheckExpiry_CustomPublicPaths(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.PublicPaths = []string{"/dashboard"} })
	ctx := context.Background()

	f.putRaw(t, KeyToken, []byte(f.mint(t, -time.Second, common.RoleUser)))

	assert.True(t, f.m.CheckExpiry(ctx))
	assert.Empty(t, f.nav.Redirects())
}

func TestSetNavigator(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.Navigator = nil })
	nav := &fakeNavigator{path: "/profile"}
	f.m.SetNavigator(nav)

	f.putRaw(t, KeyToken, []byte(f.mint(t, -time.Second, common.RoleUser)))
	require.True(t, f.m.CheckExpiry(context.Background()))
	assert.Equal(t, []string{"/login"}, nav.Redirects())
}
