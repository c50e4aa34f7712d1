package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"pfas-demo/internal/model"
)

// fakeRedis is an in-process stand-in that records TTLs and can fail on demand.
type fakeRedis struct {
	values map[string]string
	ttls   map[string]time.Duration
	err    error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redisv9.StringCmd {
	if f.err != nil {
		return redisv9.NewStringResult("", f.err)
	}
	v, ok := f.values[key]
	if !ok {
		return redisv9.NewStringResult("", redisv9.Nil)
	}
	return redisv9.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *redisv9.StatusCmd {
	if f.err != nil {
		return redisv9.NewStatusResult("", f.err)
	}
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	}
	f.ttls[key] = expiration
	return redisv9.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redisv9.IntCmd {
	if f.err != nil {
		return redisv9.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			delete(f.values, k)
			n++
		}
	}
	return redisv9.NewIntResult(n, nil)
}

func (f *fakeRedis) Exists(_ context.Context, keys ...string) *redisv9.IntCmd {
	if f.err != nil {
		return redisv9.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			n++
		}
	}
	return redisv9.NewIntResult(n, nil)
}

func (f *fakeRedis) Ping(context.Context) *redisv9.StatusCmd {
	return redisv9.NewStatusResult("PONG", f.err)
}

func TestKeysAreNamespacedPerSession(t *testing.T) {
	if got := historyKey("abc"); got != "pfas:chat:history:abc" {
		t.Fatalf("historyKey() = %q", got)
	}
	if got := dirtyKey("abc"); got != "pfas:chat:dirty:abc" {
		t.Fatalf("dirtyKey() = %q", got)
	}
	if historyKey("a") == dirtyKey("a") {
		t.Fatal("history and dirty keys collide")
	}
}

func TestNewHistoryCacheDefaults(t *testing.T) {
	c := NewHistoryCache(nil, 0, -1)
	if c.historyTTL != 60*time.Second || c.dirtyMarkerTTL != 5*time.Second {
		t.Fatalf("ttls = %v/%v", c.historyTTL, c.dirtyMarkerTTL)
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	rdb := newFakeRedis()
	c := NewHistoryCache(rdb, time.Minute, time.Second)
	ctx := context.Background()

	if _, hit, err := c.GetHistory(ctx, "s1"); hit || err != nil {
		t.Fatalf("GetHistory(empty) = hit %v, err %v", hit, err)
	}

	msgs := []model.Message{
		{ID: 1, SessionID: "s1", UserID: 7, Role: model.RoleUser, Content: "hi"},
		{ID: 2, SessionID: "s1", UserID: 7, Role: model.RoleAssistant, Content: "hello"},
	}
	if err := c.SetHistory(ctx, "s1", msgs); err != nil {
		t.Fatalf("SetHistory() error = %v", err)
	}
	if rdb.ttls[historyKey("s1")] != time.Minute {
		t.Fatalf("history ttl = %v", rdb.ttls[historyKey("s1")])
	}

	got, hit, err := c.GetHistory(ctx, "s1")
	if err != nil || !hit || len(got) != 2 || got[1].Content != "hello" {
		t.Fatalf("GetHistory() = %+v, hit %v, err %v", got, hit, err)
	}

	if err := c.DeleteHistory(ctx, "s1"); err != nil {
		t.Fatalf("DeleteHistory() error = %v", err)
	}
	if _, hit, _ := c.GetHistory(ctx, "s1"); hit {
		t.Fatal("history still cached after delete")
	}
}

func TestDirtyMarker(t *testing.T) {
	rdb := newFakeRedis()
	c := NewHistoryCache(rdb, time.Minute, 3*time.Second)
	ctx := context.Background()

	cases := []struct {
		name      string
		mark      []string
		session   string
		wantDirty bool
	}{
		{name: "unmarked", session: "s1"},
		{name: "marked", mark: []string{"s2"}, session: "s2", wantDirty: true},
		{name: "other session marked", mark: []string{"s3"}, session: "s4"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, id := range tc.mark {
				if err := c.MarkDirty(ctx, id); err != nil {
					t.Fatalf("MarkDirty() error = %v", err)
				}
				if rdb.ttls[dirtyKey(id)] != 3*time.Second {
					t.Fatalf("dirty ttl = %v", rdb.ttls[dirtyKey(id)])
				}
			}
			dirty, err := c.IsDirty(ctx, tc.session)
			if err != nil || dirty != tc.wantDirty {
				t.Fatalf("IsDirty(%s) = %v, %v; want %v", tc.session, dirty, err, tc.wantDirty)
			}
		})
	}

	if _, hit, _ := c.GetHistory(ctx, "s2"); hit {
		t.Fatal("dirty marker must not read as cached history")
	}
}

func TestCacheErrorsAreWrapped(t *testing.T) {
	down := errors.New("connection refused")
	rdb := newFakeRedis()
	rdb.err = down
	c := NewHistoryCache(rdb, time.Minute, time.Second)
	ctx := context.Background()

	if _, hit, err := c.GetHistory(ctx, "s1"); hit || !errors.Is(err, down) {
		t.Fatalf("GetHistory() = hit %v, err %v", hit, err)
	}
	if _, err := c.IsDirty(ctx, "s1"); !errors.Is(err, down) {
		t.Fatalf("IsDirty() err = %v", err)
	}
	if err := c.MarkDirty(ctx, "s1"); !errors.Is(err, down) {
		t.Fatalf("MarkDirty() err = %v", err)
	}
	if err := c.Ping(ctx); !errors.Is(err, down) {
		t.Fatalf("Ping() err = %v", err)
	}
}

func TestCorruptHistoryIsReported(t *testing.T) {
	rdb := newFakeRedis()
	rdb.values[historyKey("s1")] = "not json"
	c := NewHistoryCache(rdb, time.Minute, time.Second)

	if _, hit, err := c.GetHistory(context.Background(), "s1"); hit || err == nil {
		t.Fatalf("GetHistory() = hit %v, err %v; want decode error", hit, err)
	}
}
