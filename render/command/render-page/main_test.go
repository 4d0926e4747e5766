package main

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ncp-map/aggregator"
	"github.com/bitmark-inc/ncp-map/render"
	"github.com/bitmark-inc/ncp-map/schema"
	"github.com/bitmark-inc/ncp-map/store/mocks"
)

const testDay = "2020-02-10"

var testRecords = []schema.CityRecord{
	{Country: "中国", Province: "湖北", City: "武汉", TotalConfirm: 100, Longitude: 114.30, Latitude: 30.59},
	{Country: "中国", Province: "广东", City: "广州", TotalConfirm: 10, Longitude: 113.26, Latitude: 23.13},
}

func newAggregator(m *mocks.MockMongoStore) *aggregator.Aggregator {
	clock := clockwork.NewFakeClockAt(time.Date(2020, 2, 10, 4, 0, 0, 0, time.UTC))
	return aggregator.New(m, nil, clock, aggregator.Options{
		Region:   "湖北",
		Timezone: "GMT+8",
	})
}

func TestRenderPage(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	dir, err := ioutil.TempDir("", "render-page")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	m := mocks.NewMockMongoStore(ctl)
	m.EXPECT().DayStatus(gomock.Any(), testDay).Return(&schema.DayStatus{Day: testDay, Status: schema.StatusComplete}, nil).Times(1)
	m.EXPECT().CityRecords(gomock.Any(), testDay).Return(testRecords, nil).Times(1)
	m.EXPECT().DayList(gomock.Any()).Return(nil, nil).Times(1)

	renderer, err := render.New(render.Options{})
	assert.NoError(t, err)

	position := filepath.Join(dir, "position.json")
	output := filepath.Join(dir, "NCP.html")
	assert.NoError(t, renderPage(context.Background(), newAggregator(m), renderer, testDay, position, output))

	index, err := aggregator.ReadRegionIndex(position)
	assert.NoError(t, err)
	assert.Len(t, index, 2)

	info, err := os.Stat(output)
	assert.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestRenderPageDayNotCollected(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	dir, err := ioutil.TempDir("", "render-page")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	m := mocks.NewMockMongoStore(ctl)
	m.EXPECT().DayStatus(gomock.Any(), testDay).Return(nil, nil).Times(1)

	renderer, err := render.New(render.Options{})
	assert.NoError(t, err)

	output := filepath.Join(dir, "NCP.html")
	err = renderPage(context.Background(), newAggregator(m), renderer, "", "", output)
	assert.True(t, errors.Is(err, aggregator.ErrDayNotCollected))

	_, err = os.Stat(output)
	assert.True(t, os.IsNotExist(err), "no page for a failed aggregation")
}

func TestRenderPageUnwritableOutput(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockMongoStore(ctl)
	m.EXPECT().DayStatus(gomock.Any(), testDay).Return(&schema.DayStatus{Day: testDay, Status: schema.StatusComplete}, nil).Times(1)
	m.EXPECT().CityRecords(gomock.Any(), testDay).Return(testRecords, nil).Times(1)
	m.EXPECT().DayList(gomock.Any()).Return(nil, nil).Times(1)

	renderer, err := render.New(render.Options{})
	assert.NoError(t, err)

	err = renderPage(context.Background(), newAggregator(m), renderer, testDay, "", "/not/exist/NCP.html")
	assert.Error(t, err)
}
