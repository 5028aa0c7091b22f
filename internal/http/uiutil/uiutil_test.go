package uiutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type echoTranslator struct{}

func (echoTranslator) T(key string, args ...any) string {
	if len(args) == 0 {
		return key
	}
	return fmt.Sprintf("%s:%v", key, args[0])
}

func TestFriendlyRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		at   time.Time
		want string
	}{
		{now.Add(time.Hour), "time.just_now"},
		{now.Add(-30 * time.Second), "time.just_now"},
		{now.Add(-5 * time.Minute), "time.minutes_ago:5"},
		{now.Add(-3 * time.Hour), "time.hours_ago:3"},
		{now.Add(-50 * time.Hour), "time.days_ago:2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FriendlyRelativeTime(echoTranslator{}, tt.at, now))
	}

	old := now.Add(-30 * 24 * time.Hour)
	assert.Equal(t, FormatFriendlyDateTime(old), FriendlyRelativeTime(echoTranslator{}, old, now))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1 KB", FormatBytes(1024))
	assert.Equal(t, "1.5 MB", FormatBytes(3*512*1024))
	assert.Equal(t, "2 GB", FormatBytes(2<<30))
}

func TestTruncateWithEllipsis(t *testing.T) {
	assert.Equal(t, "short", TruncateWithEllipsis("short", 10))
	assert.Equal(t, "abcd…", TruncateWithEllipsis("abcdefgh", 5))
	assert.Equal(t, "…", TruncateWithEllipsis("abc", 1))
}
