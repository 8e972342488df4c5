package profiling

import (
	"strings"
	"testing"
	"time"
)

func record(name string, d time.Duration) {
	mu.Lock()
	frameTotals[name] += d
	frameCounts[name]++
	mu.Unlock()
}

func TestTrackAndReset(t *testing.T) {
	ResetFrame()
	stop := Track("world.Test")
	time.Sleep(time.Millisecond)
	stop()
	Track("world.Test")()

	if got := Snapshot()["world.Test"]; got < time.Millisecond {
		t.Errorf("tracked %v, want >= 1ms", got)
	}
	if got := Count("world.Test"); got != 2 {
		t.Errorf("Count = %d, want 2", got)
	}

	ResetFrame()
	if len(Snapshot()) != 0 || Count("world.Test") != 0 {
		t.Error("ResetFrame should clear totals and counts")
	}
}

func TestSumWithPrefix(t *testing.T) {
	ResetFrame()
	record("world.PopulateChunk", 3*time.Millisecond)
	record("world.EnsureLoadedAround", 2*time.Millisecond)
	record("meshing.Build", 5*time.Millisecond)

	if got := SumWithPrefix("world."); got != 5*time.Millisecond {
		t.Errorf("SumWithPrefix(world.) = %v, want 5ms", got)
	}
	if got := SumWithPrefix("render."); got != 0 {
		t.Errorf("SumWithPrefix(render.) = %v, want 0", got)
	}
}

func TestTopN(t *testing.T) {
	ResetFrame()
	record("a", 1500*time.Microsecond)
	record("b", 4*time.Millisecond)
	record("c", 200*time.Microsecond)

	if got, want := TopN(2), "b:4ms, a:1.5ms"; got != want {
		t.Errorf("TopN(2) = %q, want %q", got, want)
	}
	if got := TopN(10); strings.Count(got, ",") != 2 {
		t.Errorf("TopN(10) = %q, want all three entries", got)
	}
	if got := TopN(-1); got != "" {
		t.Errorf("TopN(-1) = %q, want empty", got)
	}
}
