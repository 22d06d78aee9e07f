package reembed

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func lastStatusLine(out string) string {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\r")
	return lines[len(lines)-1]
}

func TestProgressTracker_ReportsAtInterval(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 40, 10)
	tracker.Start()

	tracker.Increment(4)
	assert.Empty(t, buf.String(), "below the interval nothing is written")

	tracker.Increment(6)
	assert.True(t, strings.HasPrefix(lastStatusLine(buf.String()), "Progress: 10/40 volunteers (25.0%)"))

	buf.Reset()
	tracker.Update(15)
	assert.Empty(t, buf.String(), "five more is still below the interval")

	tracker.Update(35)
	assert.Contains(t, buf.String(), "35/40 volunteers (87.5%)")
}

func TestProgressTracker_CapsAtTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 8, 1)
	tracker.Start()

	tracker.Increment(20)
	assert.Contains(t, buf.String(), "8/8 volunteers (100.0%)")

	buf.Reset()
	tracker.Update(50)
	assert.Empty(t, buf.String(), "already at total")
}

func TestProgressTracker_Finish(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 12, 100)
	tracker.Start()
	tracker.Increment(3)

	tracker.Finish()
	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Contains(t, lastStatusLine(out), "12/12 volunteers (100.0%)")
	assert.Contains(t, out, "volunteers/s")
}

func TestProgressTracker_ZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 0, 10)
	tracker.Start()
	tracker.Finish()

	assert.Contains(t, buf.String(), "0/0 volunteers (0.0%)")
}

func TestProgressTracker_IgnoresCallsBeforeStart(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10, 1)

	tracker.Increment(5)
	tracker.Update(7)
	tracker.Finish()

	assert.Empty(t, buf.String())
	assert.Zero(t, tracker.Elapsed())
}

func TestProgressTracker_Elapsed(t *testing.T) {
	tracker := NewProgressTracker(&bytes.Buffer{}, 1, 1)
	tracker.Start()
	time.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, tracker.Elapsed(), 5*time.Millisecond)
}

func TestProgressTracker_NonPositiveIntervalReportsEveryUnit(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 3, 0)

	tracker.Start()
	tracker.Increment(1)
	assert.Contains(t, buf.String(), "1/3 volunteers")
}
