package notify

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freshfruits-billing/internal/application/ports"
)

func messages(ns []ports.Notification) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.Message
	}
	return out
}

func TestFeed_DrainReturnsInOrderAndEmpties(t *testing.T) {
	f := NewFeed(5)
	f.now = func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }

	f.Notify(ports.LevelSuccess, "Apple added to invoice")
	f.Notify(ports.LevelInfo, "Product cache cleared")

	got := f.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, ports.LevelSuccess, got[0].Level)
	assert.Equal(t, []string{"Apple added to invoice", "Product cache cleared"}, messages(got))
	assert.Equal(t, 2026, got[0].At.Year())

	assert.Empty(t, f.Drain())
}

func TestFeed_OverflowDropsOldest(t *testing.T) {
	f := NewFeed(3)
	for _, m := range []string{"a", "b", "c", "d", "e"} {
		f.Notify(ports.LevelInfo, m)
	}

	assert.Equal(t, []string{"c", "d", "e"}, messages(f.Pending()))
	assert.Equal(t, []string{"c", "d", "e"}, messages(f.Drain()))

	f.Notify(ports.LevelInfo, "f")
	assert.Equal(t, []string{"f"}, messages(f.Pending()))
}

func TestNewFeed_DefaultCapacity(t *testing.T) {
	f := NewFeed(0)
	assert.Len(t, f.buf, DefaultFeedCapacity)
}

func TestLogNotifier_MapsLevels(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(zerolog.New(&buf))

	n.Notify(ports.LevelWarning, "Could not reach product feed; showing cached products")

	var ev map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &ev))
	assert.Equal(t, "warn", ev["level"])
	assert.Equal(t, ports.LevelWarning, ev["level_ui"])
}

func TestFanout(t *testing.T) {
	var got []string
	rec := ports.NotifierFunc(func(level, msg string) { got = append(got, level+":"+msg) })
	feed := NewFeed(2)

	Fanout{rec, nil, feed}.Notify(ports.LevelError, "Failed to load products")

	assert.Equal(t, []string{"error:Failed to load products"}, got)
	assert.Len(t, feed.Pending(), 1)
}
