package posts

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedisServer services SET NX / INCR in memory via a client hook,
// short-circuiting before any connection is made.
type fakeRedisServer struct {
	counts  map[string]int64
	withTTL map[string]bool
}

func newFakeRedisServer() *fakeRedisServer {
	return &fakeRedisServer{
		counts:  map[string]int64{},
		withTTL: map[string]bool{},
	}
}

func (f *fakeRedisServer) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (f *fakeRedisServer) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		for _, cmd := range cmds {
			f.serve(cmd)
		}
		return nil
	}
}

func (f *fakeRedisServer) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		f.serve(cmd)
		return nil
	}
}

func (f *fakeRedisServer) serve(cmd redis.Cmder) {
	args := cmd.Args()
	switch cmd.Name() {
	case "set":
		key := args[1].(string)
		if _, exists := f.counts[key]; exists {
			// NX: key already present, no-op.
			if c, ok := cmd.(*redis.BoolCmd); ok {
				c.SetVal(false)
			}
			return
		}
		f.counts[key] = 0
		for _, a := range args {
			if s, ok := a.(string); ok && s == "ex" {
				f.withTTL[key] = true
			}
		}
		if c, ok := cmd.(*redis.BoolCmd); ok {
			c.SetVal(true)
		}
	case "incr":
		key := args[1].(string)
		f.counts[key]++
		if c, ok := cmd.(*redis.IntCmd); ok {
			c.SetVal(f.counts[key])
		}
	}
}

func newHookedLimiter(max int64) (*RedisCreateLimiter, *fakeRedisServer) {
	srv := newFakeRedisServer()
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	client.AddHook(srv)
	return NewRedisCreateLimiter(client, max, time.Minute), srv
}

func TestRedisCreateLimiter(t *testing.T) {
	t.Run("allows up to the limit, then denies", func(t *testing.T) {
		limiter, _ := newHookedLimiter(3)

		for i := 0; i < 3; i++ {
			ok, err := limiter.Allow(context.Background(), "alice")
			if err != nil {
				t.Fatalf("allow %d failed: %v", i, err)
			}
			if !ok {
				t.Fatalf("allow %d = false, want true", i)
			}
		}

		ok, err := limiter.Allow(context.Background(), "alice")
		if err != nil {
			t.Fatalf("allow over limit failed: %v", err)
		}
		if ok {
			t.Error("allow over limit = true, want false")
		}
	})

	t.Run("the counter key always carries a TTL", func(t *testing.T) {
		limiter, srv := newHookedLimiter(3)

		if _, err := limiter.Allow(context.Background(), "alice"); err != nil {
			t.Fatalf("allow failed: %v", err)
		}

		if !srv.withTTL["ratelimit:create:alice"] {
			t.Error("counter key was created without a TTL")
		}
	})

	t.Run("users are limited independently", func(t *testing.T) {
		limiter, _ := newHookedLimiter(1)

		if ok, _ := limiter.Allow(context.Background(), "alice"); !ok {
			t.Fatal("alice's first create denied")
		}
		if ok, _ := limiter.Allow(context.Background(), "alice"); ok {
			t.Error("alice's second create allowed, want denied")
		}
		if ok, _ := limiter.Allow(context.Background(), "bob"); !ok {
			t.Error("bob denied by alice's counter")
		}
	})
}
