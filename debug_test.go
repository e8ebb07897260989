package scrollfx

import (
	"bytes"
	"strings"
	"testing"
)

// ---- Debug output tests ----------------------------------------------------

func TestDebugOffWritesNothing(t *testing.T) {
	page := bodyPage()
	eng, sched := newTestEngine(t, page, DefaultConfig())
	var buf bytes.Buffer
	eng.SetDebugOutput(&buf)
	settle(t, sched)
	page.ScrollTo(300)
	settle(t, sched)
	if buf.Len() != 0 {
		t.Errorf("debug off but wrote:\n%s", buf.String())
	}
}

func TestDebugLogsSkippedFrame(t *testing.T) {
	page := bodyPage()
	eng, sched := newTestEngine(t, page, DefaultConfig())
	settle(t, sched)

	var buf bytes.Buffer
	eng.SetDebugOutput(&buf)
	eng.SetDebugMode(true)
	eng.Step(sched.Now())

	out := buf.String()
	if !strings.Contains(out, "skipped: true") {
		t.Errorf("idle frame not reported as skipped:\n%s", out)
	}
	if !strings.Contains(out, "next: false") {
		t.Errorf("idle frame reported a reschedule:\n%s", out)
	}
	if strings.Contains(out, "metrics gen") {
		t.Errorf("metrics remeasured on an idle frame:\n%s", out)
	}
}

func TestDebugLogsNewGeneration(t *testing.T) {
	page := bodyPage()
	eng, sched := newTestEngine(t, page, DefaultConfig())
	settle(t, sched)

	var buf bytes.Buffer
	eng.SetDebugOutput(&buf)
	eng.SetDebugMode(true)
	eng.Invalidate()
	settle(t, sched)

	if !strings.Contains(buf.String(), "[scrollfx] metrics gen 2: viewport 1600x900 | quote 1000") {
		t.Errorf("missing generation line:\n%s", buf.String())
	}
}
