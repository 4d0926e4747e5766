package aggregator

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
	"github.com/stretchr/testify/suite"

	"github.com/bitmark-inc/ncp-map/schema"
	"github.com/bitmark-inc/ncp-map/store/mocks"
)

const testDay = "2020-02-10"

type AggregatorTestSuite struct {
	suite.Suite
	ctrl  *gomock.Controller
	store *mocks.MockMongoStore
	clock *clockwork.FakeClock
	dir   string
}

func (s *AggregatorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockMongoStore(s.ctrl)
	// 20:00 UTC is already the next day in GMT+8
	s.clock = clockwork.NewFakeClockAt(time.Date(2020, 2, 9, 20, 0, 0, 0, time.UTC))

	dir, err := ioutil.TempDir("", "aggregator")
	s.NoError(err)
	s.dir = dir
}

func (s *AggregatorTestSuite) TearDownTest() {
	s.ctrl.Finish()
	os.RemoveAll(s.dir)
}

func (s *AggregatorTestSuite) newAggregator(position string) *Aggregator {
	return New(s.store, nil, s.clock, Options{
		Region:       "湖北",
		Timezone:     "GMT+8",
		PositionFile: position,
		DedupSeries:  true,
	})
}

func (s *AggregatorTestSuite) TestRun() {
	position := filepath.Join(s.dir, "position.json")

	s.store.EXPECT().DayStatus(gomock.Any(), testDay).Return(&schema.DayStatus{Day: testDay, Status: schema.StatusComplete, Count: 4}, nil).Times(1)
	s.store.EXPECT().CityRecords(gomock.Any(), testDay).Return(testRecords, nil).Times(1)
	s.store.EXPECT().DayList(gomock.Any()).Return(testDayList, nil).Times(1)

	summary, err := s.newAggregator(position).Run(context.Background())
	s.NoError(err)
	s.Equal(testDay, summary.Day)
	s.Equal("湖北", summary.Region)
	s.Equal(2, summary.Cities())
	s.Equal(Totals{Mainland: 30, Region: 105}, summary.Partition.Totals)
	s.Equal([]NameValue{{"武汉市", 100}, {"神农架林区", 5}}, summary.RegionMap)
	s.Equal([]string{"01.20", "01.21"}, summary.Series.Dates)

	index, err := ReadRegionIndex(position)
	s.NoError(err)
	s.Equal(summary.Partition.Index, index)
}

func (s *AggregatorTestSuite) TestRunWithoutPositionFile() {
	s.store.EXPECT().DayStatus(gomock.Any(), testDay).Return(&schema.DayStatus{Day: testDay, Status: schema.StatusComplete}, nil).Times(1)
	s.store.EXPECT().CityRecords(gomock.Any(), testDay).Return(testRecords, nil).Times(1)
	s.store.EXPECT().DayList(gomock.Any()).Return(nil, nil).Times(1)

	summary, err := s.newAggregator("").Run(context.Background())
	s.NoError(err)
	s.Len(summary.Partition.Index, 4)

	files, err := ioutil.ReadDir(s.dir)
	s.NoError(err)
	s.Empty(files)
}

func (s *AggregatorTestSuite) TestSummarizeDayNeverCollected() {
	s.store.EXPECT().DayStatus(gomock.Any(), testDay).Return(nil, nil).Times(1)

	_, err := s.newAggregator("").Summarize(context.Background(), testDay)
	s.True(errors.Is(err, ErrDayNotCollected))
}

func (s *AggregatorTestSuite) TestSummarizeDayStillCollecting() {
	s.store.EXPECT().DayStatus(gomock.Any(), testDay).Return(&schema.DayStatus{Day: testDay, Status: schema.StatusCollecting}, nil).Times(1)

	_, err := s.newAggregator("").Summarize(context.Background(), testDay)
	s.True(errors.Is(err, ErrDayNotCollected))
}

func (s *AggregatorTestSuite) TestSummarizeStoreError() {
	s.store.EXPECT().DayStatus(gomock.Any(), testDay).Return(&schema.DayStatus{Day: testDay, Status: schema.StatusComplete}, nil).Times(1)
	s.store.EXPECT().CityRecords(gomock.Any(), testDay).Return(nil, errors.New("connection refused")).Times(1)

	_, err := s.newAggregator("").Summarize(context.Background(), testDay)
	s.EqualError(err, "connection refused")
}

func TestAggregatorTestSuite(t *testing.T) {
	suite.Run(t, new(AggregatorTestSuite))
}
