package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetLocation(t *testing.T) {
	tz8 := GetLocation("GMT+8")
	assert.NotNil(t, tz8)
	assert.Equal(t, "GMT+8", tz8.String())

	tz_8 := GetLocation("gmt-8")
	assert.NotNil(t, tz_8)
	assert.Equal(t, "GMT-8", tz_8.String())

	assert.Nil(t, GetLocation("Asia/Shanghai"))
}

func TestDayKey(t *testing.T) {
	ts := time.Date(2020, 2, 9, 18, 30, 0, 0, time.UTC)

	assert.Equal(t, "2020-02-10", DayKey(ts, "GMT+8"))
	assert.Equal(t, "2020-02-09", DayKey(ts, "GMT-5"))
	assert.Equal(t, "2020-02-09", DayKey(ts, "unknown"))
}
