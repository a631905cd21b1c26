package health

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// TestCheckStatusReportsRegisteredFailures ensures CheckStatus surfaces the
// error of a registered failing check and omits passing ones.
func TestCheckStatusReportsRegisteredFailures(t *testing.T) {
	registry := NewRegistry()
	registry.Register("ok", CheckFunc(func(context.Context) error { return nil }))
	registry.Register("broken", CheckFunc(func(context.Context) error {
		return errors.New("did not succeed")
	}))

	statuses := registry.CheckStatus(context.Background())
	if _, ok := statuses["ok"]; ok {
		t.Errorf("expected no entry for a passing check")
	}
	if statuses["broken"] != "did not succeed" {
		t.Errorf("statuses[broken] = %q, want %q", statuses["broken"], "did not succeed")
	}
}

func TestRegisterPanicsOnDuplicateName(t *testing.T) {
	registry := NewRegistry()
	registry.Register("dup", CheckFunc(func(context.Context) error { return nil }))

	defer func() {
		if recover() == nil {
			t.Errorf("expected Register to panic on duplicate name")
		}
	}()
	registry.Register("dup", CheckFunc(func(context.Context) error { return nil }))
}

func TestThresholdStatusUpdater(t *testing.T) {
	u := NewThresholdStatusUpdater(3)

	assertCheckOK := func() {
		t.Helper()
		if err := u.Check(context.Background()); err != nil {
			t.Errorf("u.Check() = %v; want nil", err)
		}
	}

	assertCheckErr := func(expected string) {
		t.Helper()
		if err := u.Check(context.Background()); err == nil || err.Error() != expected {
			t.Errorf("u.Check() = %v; want %v", err, expected)
		}
	}

	// Updater should report healthy until the threshold is reached.
	for i := 1; i <= 3; i++ {
		assertCheckOK()
		u.Update(fmt.Errorf("fake error %d", i))
	}
	assertCheckErr("fake error 3")

	// The threshold should reset after one successful update.
	u.Update(nil)
	assertCheckOK()
	u.Update(errors.New("first errored update after reset"))
	assertCheckOK()
	u.Update(nil)

	// pollingTerminatedErr should bypass the threshold.
	pte := pollingTerminatedErr{Err: errors.New("womp womp")}
	u.Update(pte)
	assertCheckErr(pte.Error())
}

func TestPoll(t *testing.T) {
	type ContextKey struct{}
	for _, threshold := range []int{0, 10} {
		t.Run(fmt.Sprintf("threshold=%d", threshold), func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.WithValue(context.Background(), ContextKey{}, t.Name()))
			defer cancel()
			checkerCalled := make(chan struct{})
			checker := CheckFunc(func(ctx context.Context) error {
				if v, ok := ctx.Value(ContextKey{}).(string); !ok || v != t.Name() {
					t.Errorf("unexpected context passed into checker: got context with value %q, want %q", v, t.Name())
				}
				select {
				case <-checkerCalled:
				default:
					close(checkerCalled)
				}
				return nil
			})

			updater := NewThresholdStatusUpdater(threshold)
			pollReturned := make(chan struct{})
			go func() {
				Poll(ctx, updater, checker, 1*time.Millisecond)
				close(pollReturned)
			}()

			select {
			case <-checkerCalled:
			case <-time.After(1 * time.Second):
				t.Error("checker has not been polled")
			}

			cancel()

			select {
			case <-pollReturned:
			case <-time.After(1 * time.Second):
				t.Error("poll has not returned after context was canceled")
			}

			if err := updater.Check(context.Background()); !errors.Is(err, context.Canceled) {
				t.Errorf("updater.Check() = %v; want %v", err, context.Canceled)
			}
		})
	}
}
