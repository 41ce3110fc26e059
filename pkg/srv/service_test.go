package srv

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeService struct {
	mu       sync.Mutex
	startErr error
	block    bool
	order    *[]string
	name     string
}

func (f *fakeService) Start(ctx context.Context) error {
	if f.block {
		<-ctx.Done()
		return nil
	}
	return f.startErr
}

func (f *fakeService) Shutdown(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	*f.order = append(*f.order, f.name)
	return nil
}

func TestServices_ForegroundExitStopsApp(t *testing.T) {
	var order []string
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	closed := false
	services := []Service{
		NewCleanup(func() error { closed = true; return nil }),
		&fakeService{name: "bot", block: true, order: &order},
		&fakeService{name: "repl", order: &order},
	}

	StartServices(ctx, stop, services)

	done := make(chan struct{})
	go func() {
		ShutdownServices(ctx, services)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("services did not shut down after foreground service returned")
	}

	if !closed {
		t.Error("cleanup was not called")
	}
	if len(order) != 2 || order[0] != "repl" || order[1] != "bot" {
		t.Errorf("expected reverse shutdown order [repl bot], got %v", order)
	}
}

func TestServices_CleanupDoesNotStopApp(t *testing.T) {
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	StartServices(ctx, stop, []Service{NewCleanup(func() error { return errors.New("unused") })})

	select {
	case <-ctx.Done():
		t.Fatal("cleanup-only service must not stop the app")
	case <-time.After(50 * time.Millisecond):
	}
}
