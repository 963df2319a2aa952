package profiling

import (
	"strings"
	"testing"
	"time"
)

func TestTrackAccumulatesAndResets(t *testing.T) {
	ResetFrame()
	for i := 0; i < 3; i++ {
		stop := Track("test.Op")
		time.Sleep(time.Millisecond)
		stop()
	}
	if got := Calls("test.Op"); got != 3 {
		t.Fatalf("Calls = %d, want 3", got)
	}
	if d := Snapshot()["test.Op"]; d < 3*time.Millisecond {
		t.Fatalf("total = %v, want at least 3ms", d)
	}
	if s := TopN(1); !strings.HasPrefix(s, "test.Op:") || !strings.HasSuffix(s, "(x3)") {
		t.Fatalf("TopN = %q", s)
	}

	ResetFrame()
	if len(Snapshot()) != 0 || Calls("test.Op") != 0 {
		t.Fatalf("ResetFrame left data behind")
	}
	if TopN(5) != "" {
		t.Fatalf("TopN on empty frame = %q", TopN(5))
	}
}
