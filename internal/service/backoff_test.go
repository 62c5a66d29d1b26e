package service

import (
	"math/rand"
	"testing"
	"time"

	"hinge-bot/internal/hinge"
)

func testController() *BackoffController {
	return &BackoffController{
		minWait:        time.Second,
		maxWait:        3 * time.Second,
		maxBackoff:     8 * time.Second,
		maxErrorStreak: defaultMaxErrorStreak,
		maxEmptyStreak: defaultMaxEmptyStreak,
		rng:            rand.New(rand.NewSource(1)),
	}
}

func TestBackoff_EmptyStreakExhausts(t *testing.T) {
	ctrl := testController()

	for i := 0; i < 2; i++ {
		d := ctrl.OnBatch(0)
		if d.Terminated {
			t.Fatalf("terminated early on empty batch %d", i+1)
		}
	}
	d := ctrl.OnBatch(0)
	if !d.Terminated || d.Reason != ReasonExhausted {
		t.Fatalf("expected exhausted after 3 empty batches, got %+v", d)
	}
}

func TestBackoff_NonEmptyBatchResetsBothStreaks(t *testing.T) {
	ctrl := testController()

	ctrl.OnBatch(0)
	ctrl.OnBatch(0)
	ctrl.OnError(hinge.KindTransient)
	ctrl.OnError(hinge.KindTransient)
	ctrl.OnError(hinge.KindTransient)

	d := ctrl.OnBatch(4)
	if d.Terminated {
		t.Fatalf("non-empty batch must not terminate: %+v", d)
	}
	if ctrl.ErrorStreak() != 0 || ctrl.EmptyStreak() != 0 {
		t.Fatalf("expected streaks reset, got errors=%d empties=%d", ctrl.ErrorStreak(), ctrl.EmptyStreak())
	}

	// Tras la recuperación la escalada arranca otra vez desde la base.
	d = ctrl.OnError(hinge.KindTransient)
	if d.Wait != time.Second {
		t.Fatalf("expected base wait after recovery, got %s", d.Wait)
	}
}

func TestBackoff_ErrorStreakTerminates(t *testing.T) {
	ctrl := testController()

	wantWaits := []time.Duration{
		time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second, // 8s ya es el techo configurado
	}
	for i, want := range wantWaits {
		d := ctrl.OnError(hinge.KindRateLimited)
		if d.Terminated {
			t.Fatalf("terminated early at error %d", i+1)
		}
		if d.Wait != want {
			t.Fatalf("error %d: expected wait %s, got %s", i+1, want, d.Wait)
		}
	}

	d := ctrl.OnError(hinge.KindRateLimited)
	if !d.Terminated || d.Reason != ReasonTooManyErrors {
		t.Fatalf("expected too_many_errors on 5th error, got %+v", d)
	}
}

func TestBackoff_FatalTerminatesImmediately(t *testing.T) {
	ctrl := testController()
	d := ctrl.OnError(hinge.KindFatal)
	if !d.Terminated || d.Reason != ReasonFatal {
		t.Fatalf("expected immediate fatal termination, got %+v", d)
	}
}

func TestBackoff_JitterStaysInWindow(t *testing.T) {
	ctrl := NewBackoffController()
	for i := 0; i < 200; i++ {
		d := ctrl.OnBatch(1)
		if d.Wait < defaultMinWait || d.Wait >= defaultMaxWait {
			t.Fatalf("jitter %s outside [%s,%s)", d.Wait, defaultMinWait, defaultMaxWait)
		}
	}
}

func TestBackoff_EscalationCappedByMaxBackoff(t *testing.T) {
	ctrl := testController()
	ctrl.maxErrorStreak = 20

	var last time.Duration
	for i := 0; i < 10; i++ {
		d := ctrl.OnError(hinge.KindTransient)
		if d.Terminated {
			t.Fatalf("unexpected termination at error %d", i+1)
		}
		if d.Wait > ctrl.maxBackoff {
			t.Fatalf("wait %s exceeds cap %s", d.Wait, ctrl.maxBackoff)
		}
		last = d.Wait
	}
	if last != ctrl.maxBackoff {
		t.Fatalf("expected wait pinned at cap, got %s", last)
	}
}
