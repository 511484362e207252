package clock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorcery-ai/concierge/tools/clock"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func Test_Clock_Format(t *testing.T) {
	fc := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	tool, err := clock.New()
	require.NoError(t, err)
	tool = tool.WithClock(fc)

	assert.Equal(t, "current_time", tool.Name())
	assert.NotEmpty(t, tool.Description())
	assert.NotNil(t, tool.Parameters())

	res, err := tool.Call(context.Background(), "{}")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01T00:00:00+00:00", res)

	// a non-UTC clock is rendered in UTC
	loc := time.FixedZone("UTC+2", 2*60*60)
	fc.now = time.Date(2024, 6, 15, 14, 30, 45, 0, loc)
	res, err = tool.Call(context.Background(), "{}")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15T12:30:45+00:00", res)
}

func Test_Clock_IgnoresPayload(t *testing.T) {
	fc := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	tool, err := clock.New()
	require.NoError(t, err)
	tool = tool.WithClock(fc)

	for _, input := range []string{"", "{}", "not json", `{"unexpected":"field"}`} {
		res, err := tool.Call(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, "2024-01-01T00:00:00+00:00", res)
	}
}

func Test_Clock_Monotonic(t *testing.T) {
	fc := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	tool, err := clock.New()
	require.NoError(t, err)
	tool = tool.WithClock(fc)

	first, err := tool.Call(context.Background(), "")
	require.NoError(t, err)

	fc.now = fc.now.Add(90 * time.Second)
	second, err := tool.Call(context.Background(), "")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Less(t, first, second)
}

func Test_SystemClock(t *testing.T) {
	before := time.Now().Add(-time.Second)
	now := clock.SystemClock().Now()
	assert.True(t, now.After(before))
}
