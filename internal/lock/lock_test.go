package lock

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"
)

func TestLocal_SerialisesCriticalSection(t *testing.T) {
	l := NewLocal()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(context.Background())
			if err != nil {
				t.Errorf("Acquire: %v", err)
				return
			}
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			release()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Errorf("expected at most one holder, saw %d", maxSeen)
	}
}

func TestLocal_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewLocal().Acquire(ctx); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestRedis_AcquireRelease(t *testing.T) {
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		addr = "localhost:6379"
	}

	ctx := context.Background()
	rdb, err := Connect(ctx, addr)
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	defer rdb.Close()

	l := NewRedis(rdb, nil)
	l.key = "fleetstock:test:" + time.Now().Format("150405.000000")

	release, err := l.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	other := NewRedis(rdb, nil)
	other.key = l.key
	shortCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer cancel()
	if _, err := other.Acquire(shortCtx); err == nil {
		t.Fatal("expected second locker to be blocked while the first holds the lock")
	}

	release()

	release2, err := other.Acquire(ctx)
	if err != nil {
		t.Fatalf("expected lock after release, got %v", err)
	}
	release2()
}
