package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHandleVisibleRangeWithinWindow(t *testing.T) {
	s := NewState(testSchedule())
	host := newFakeHost(false)

	// 10 月的月视图通常从 9 月末渲染到 11 月初，
	// 两个方向都还在一个月的容忍带内，翻页都要禁用
	nav := s.HandleVisibleRange(
		time.Date(2025, time.September, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.November, 8, 0, 0, 0, 0, time.UTC),
		host,
	)

	assert.False(t, nav.PrevEnabled)
	assert.False(t, nav.NextEnabled)
	assert.False(t, host.nav[NavPrev])
	assert.False(t, host.nav[NavNext])
}

func TestHandleVisibleRangeFarOutside(t *testing.T) {
	s := NewState(testSchedule())

	// 离窗口超过约一个月后不再禁用
	nav := s.HandleVisibleRange(
		time.Date(2025, time.August, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC),
		nil,
	)

	assert.True(t, nav.PrevEnabled)
	assert.True(t, nav.NextEnabled)
}

func TestHandleVisibleRangeInsideSchedule(t *testing.T) {
	s := NewState(testSchedule())

	nav := s.HandleVisibleRange(octDay(5, 0, 0), octDay(20, 0, 0), nil)
	assert.True(t, nav.PrevEnabled)
	assert.True(t, nav.NextEnabled)
}

func TestHandleVisibleRangeWithoutSchedule(t *testing.T) {
	s := NewState(nil)

	nav := s.HandleVisibleRange(octDay(1, 0, 0), octDay(31, 0, 0), nil)
	assert.True(t, nav.PrevEnabled)
	assert.True(t, nav.NextEnabled)
}
