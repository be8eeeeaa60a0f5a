package loader

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/admindash/pkg/view"
)

func TestRegistryMemoizesByKey(t *testing.T) {
	reg := NewRegistry(WithMinDelay(0), WithLogger(quietLogger()))

	var calls atomic.Int32
	fn := func(context.Context) (view.Definition, error) {
		calls.Add(1)
		return staticView("x"), nil
	}

	var wg sync.WaitGroup
	loaders := make([]*Loader, 20)
	for i := range loaders {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l := reg.Wrap("dashboards/modern", fn)
			l.Start()
			loaders[i] = l
		}(i)
	}
	wg.Wait()

	for _, l := range loaders[1:] {
		if l != loaders[0] {
			t.Fatal("Wrap returned different loaders for the same key")
		}
	}
	waitDone(t, loaders[0])
	if got := calls.Load(); got != 1 {
		t.Errorf("LoadFunc called %d times, want 1", got)
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}
}

func TestRegistryIgnoresSecondFunc(t *testing.T) {
	reg := NewRegistry(WithMinDelay(0), WithLogger(quietLogger()))

	first := reg.Wrap("k", instantLoad(staticView("first")))
	second := reg.Wrap("k", func(context.Context) (view.Definition, error) {
		t.Error("second LoadFunc must not run")
		return nil, nil
	})
	if first != second {
		t.Fatal("Wrap replaced an existing loader")
	}
	if _, err := second.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
}

func TestFreshRegistryReloads(t *testing.T) {
	var calls atomic.Int32
	fn := func(context.Context) (view.Definition, error) {
		calls.Add(1)
		return staticView("x"), nil
	}

	for i := 0; i < 2; i++ {
		reg := NewRegistry(WithMinDelay(0), WithLogger(quietLogger()))
		if _, err := reg.Wrap("apps/chats", fn).Wait(context.Background()); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("LoadFunc called %d times across two registries, want 2", got)
	}
}

func TestRegistryStatesAndKeys(t *testing.T) {
	reg := NewRegistry(WithMinDelay(0), WithLogger(quietLogger()))
	reg.Wrap("b", instantLoad(staticView("b")))
	ready := reg.Wrap("a", instantLoad(staticView("a")))
	if _, err := ready.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"a", "b"}, reg.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	want := map[string]State{"a": Ready, "b": Idle}
	if diff := cmp.Diff(want, reg.States()); diff != "" {
		t.Errorf("States() mismatch (-want +got):\n%s", diff)
	}
	if _, ok := reg.Get("missing"); ok {
		t.Error("Get(missing) reported a loader")
	}
}
