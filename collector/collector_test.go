package collector

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/ncp-map/aggregator"
	"github.com/bitmark-inc/ncp-map/external/geoinfo/mocks"
	"github.com/bitmark-inc/ncp-map/external/ncp"
	"github.com/bitmark-inc/ncp-map/geo"
	"github.com/bitmark-inc/ncp-map/schema"
	storeMocks "github.com/bitmark-inc/ncp-map/store/mocks"
)

const testDay = "2020-02-10"

var (
	wuhan     = schema.Coordinate{Longitude: 114.305393, Latitude: 30.593099}
	guangzhou = schema.Coordinate{Longitude: 113.264385, Latitude: 23.129112}
	hubei     = schema.Coordinate{Longitude: 114.341862, Latitude: 30.546498}
)

type staticSource struct {
	snapshot *ncp.Snapshot
	err      error
}

func (s staticSource) Fetch(context.Context) (*ncp.Snapshot, error) {
	return s.snapshot, s.err
}

func testSnapshot() *ncp.Snapshot {
	return &ncp.Snapshot{
		AreaTree: []ncp.Area{
			{
				Name: "中国",
				Children: []ncp.Area{
					{
						Name: "湖北",
						Children: []ncp.Area{
							{
								Name:  "武汉",
								Today: ncp.Today{IsUpdated: true, Confirm: 12},
								Total: ncp.Total{Confirm: 100, Heal: 3, Dead: 2},
							},
						},
					},
					{
						Name: "广东",
						Children: []ncp.Area{
							{
								Name:  "广州",
								Total: ncp.Total{Confirm: 10},
							},
						},
					},
				},
			},
		},
		ChinaDayList: []ncp.DaySummary{
			{Date: "01.20", Confirm: 291, Suspect: 54, Dead: 6, Heal: 25, DeadRate: "2.1", HealRate: "8.6"},
			{Date: "01.21", Confirm: 440, Suspect: 37, Dead: 9, Heal: 25, DeadRate: "2.0", HealRate: "5.7"},
			{Date: "01.22", Confirm: 571, Suspect: 393, Dead: 17, Heal: 25, DeadRate: "3.0", HealRate: "4.4"},
		},
	}
}

type CollectorTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	store    *storeMocks.MockMongoStore
	geocoder *mocks.MockGeocoder
	clock    *clockwork.FakeClock
	scope    tally.TestScope
}

func (s *CollectorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = storeMocks.NewMockMongoStore(s.ctrl)
	s.geocoder = mocks.NewMockGeocoder(s.ctrl)
	// 20:00 UTC is already the next day in GMT+8
	s.clock = clockwork.NewFakeClockAt(time.Date(2020, 2, 9, 20, 0, 0, 0, time.UTC))
	s.scope = tally.NewTestScope("", nil)
}

func (s *CollectorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *CollectorTestSuite) newCollector(source ncp.Source, dedup bool) *Collector {
	resolver := geo.NewGeocodingResolver(s.geocoder, time.Second)
	return New(source, resolver, s.store, s.clock, s.scope, Options{
		Timezone:     "GMT+8",
		Concurrency:  2,
		DedupDayList: dedup,
	})
}

func (s *CollectorTestSuite) counter(name string) int64 {
	var total int64
	for _, c := range s.scope.Snapshot().Counters() {
		if strings.HasSuffix(c.Name(), name) {
			total += c.Value()
		}
	}
	return total
}

func (s *CollectorTestSuite) TestDay() {
	s.Equal(testDay, s.newCollector(nil, false).Day())
}

func (s *CollectorTestSuite) TestCollectDay() {
	var inserted []schema.CityRecord

	s.store.EXPECT().DayStatus(gomock.Any(), testDay).Return(nil, nil).Times(1)
	s.store.EXPECT().BeginDay(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, status schema.DayStatus) error {
			s.Equal(testDay, status.Day)
			s.NotEmpty(status.RunID)
			s.Equal(s.clock.Now().Unix(), status.StartedAt)
			return nil
		}).Times(1)
	s.geocoder.EXPECT().Geocode(gomock.Any(), "湖北武汉").Return(wuhan, nil).Times(1)
	s.geocoder.EXPECT().Geocode(gomock.Any(), "广东广州").Return(guangzhou, nil).Times(1)
	s.store.EXPECT().InsertCityRecords(gomock.Any(), testDay, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, records []schema.CityRecord) error {
			inserted = records
			return nil
		}).Times(1)
	s.store.EXPECT().CompleteDay(gomock.Any(), testDay, int64(2), s.clock.Now().Unix()).Return(nil).Times(1)

	result, err := s.newCollector(nil, false).CollectDay(context.Background(), testSnapshot())
	s.NoError(err)
	s.False(result.Existing)
	s.Equal(int64(2), result.Count)
	s.Equal(0, result.Skipped)
	s.Equal(inserted, result.Records)

	s.Equal([]schema.CityRecord{
		{
			Country:      "中国",
			Province:     "湖北",
			City:         "武汉",
			IsUpdated:    true,
			TodayConfirm: 12,
			TotalConfirm: 100,
			TotalHeal:    3,
			TotalDead:    2,
			Longitude:    wuhan.Longitude,
			Latitude:     wuhan.Latitude,
		},
		{
			Country:      "中国",
			Province:     "广东",
			City:         "广州",
			TotalConfirm: 10,
			Longitude:    guangzhou.Longitude,
			Latitude:     guangzhou.Latitude,
		},
	}, inserted)

	s.Equal(int64(2), s.counter("records_inserted"))
	s.Equal(int64(2), s.counter("geocode"))

	p := aggregator.PartitionAndSum(inserted, "湖北")
	s.Equal([]aggregator.NameValue{{Name: "广东广州", Value: 10}}, p.MainlandConfirm)
	s.Equal([]aggregator.NameValue{{Name: "武汉", Value: 100}}, p.RegionConfirm)
	s.Equal(aggregator.Totals{Mainland: 10, Region: 100}, p.Totals)
}

func (s *CollectorTestSuite) TestCollectDayAlreadyComplete() {
	s.store.EXPECT().DayStatus(gomock.Any(), testDay).Return(&schema.DayStatus{
		Day:    testDay,
		Status: schema.StatusComplete,
		Count:  2,
	}, nil).Times(1)
	s.store.EXPECT().CountCityRecords(gomock.Any(), testDay).Return(int64(2), nil).Times(1)

	result, err := s.newCollector(nil, false).CollectDay(context.Background(), testSnapshot())
	s.NoError(err)
	s.True(result.Existing)
	s.Equal(int64(2), result.Count)
	s.Empty(result.Records)
	s.Equal(int64(0), s.counter("geocode"))
}

func (s *CollectorTestSuite) TestCollectDayResetsUnfinishedDay() {
	gomock.InOrder(
		s.store.EXPECT().DayStatus(gomock.Any(), testDay).Return(&schema.DayStatus{
			Day:    testDay,
			Status: schema.StatusCollecting,
			RunID:  "previous",
		}, nil),
		s.store.EXPECT().ResetDay(gomock.Any(), testDay).Return(nil),
		s.store.EXPECT().BeginDay(gomock.Any(), gomock.Any()).Return(nil),
		s.store.EXPECT().InsertCityRecords(gomock.Any(), testDay, gomock.Any()).Return(nil),
		s.store.EXPECT().CompleteDay(gomock.Any(), testDay, int64(2), gomock.Any()).Return(nil),
	)
	s.geocoder.EXPECT().Geocode(gomock.Any(), "湖北武汉").Return(wuhan, nil).Times(1)
	s.geocoder.EXPECT().Geocode(gomock.Any(), "广东广州").Return(guangzhou, nil).Times(1)

	result, err := s.newCollector(nil, false).CollectDay(context.Background(), testSnapshot())
	s.NoError(err)
	s.Equal(int64(2), result.Count)
}

func (s *CollectorTestSuite) TestCollectDayInsertError() {
	s.store.EXPECT().DayStatus(gomock.Any(), testDay).Return(nil, nil).Times(1)
	s.store.EXPECT().BeginDay(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	s.geocoder.EXPECT().Geocode(gomock.Any(), gomock.Any()).Return(wuhan, nil).Times(2)
	s.store.EXPECT().InsertCityRecords(gomock.Any(), testDay, gomock.Any()).Return(errors.New("duplicate key")).Times(1)
	s.store.EXPECT().CompleteDay(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := s.newCollector(nil, false).CollectDay(context.Background(), testSnapshot())
	s.Error(err)
	s.Contains(err.Error(), "duplicate key")
	s.Equal(int64(0), s.counter("records_inserted"))
}

func (s *CollectorTestSuite) TestCollectDayStatusError() {
	s.store.EXPECT().DayStatus(gomock.Any(), testDay).Return(nil, errors.New("connection refused")).Times(1)

	_, err := s.newCollector(nil, false).CollectDay(context.Background(), testSnapshot())
	s.EqualError(err, "connection refused")
}

func (s *CollectorTestSuite) TestCollectDayNoCountry() {
	s.store.EXPECT().DayStatus(gomock.Any(), testDay).Return(nil, nil).Times(1)

	_, err := s.newCollector(nil, false).CollectDay(context.Background(), &ncp.Snapshot{})
	s.True(errors.Is(err, ncp.ErrNoCountry))
}

func (s *CollectorTestSuite) TestBuildRecordsFallbackAndSkip() {
	country := ncp.Area{
		Name: "中国",
		Children: []ncp.Area{
			{
				Name: "湖北",
				Children: []ncp.Area{
					{Name: "武汉", Total: ncp.Total{Confirm: 100}},
					{Name: "待明确地区", Total: ncp.Total{Confirm: 7}},
				},
			},
			{
				Name: "西藏",
				Children: []ncp.Area{
					{Name: "外地来藏人员", Total: ncp.Total{Confirm: 1}},
				},
			},
		},
	}

	s.geocoder.EXPECT().Geocode(gomock.Any(), "湖北武汉").Return(wuhan, nil).Times(1)
	s.geocoder.EXPECT().Geocode(gomock.Any(), "湖北待明确地区").Return(schema.Coordinate{}, nil).Times(1)
	s.geocoder.EXPECT().Geocode(gomock.Any(), "湖北湖北").Return(hubei, nil).Times(1)
	s.geocoder.EXPECT().Geocode(gomock.Any(), "西藏外地来藏人员").Return(schema.Coordinate{}, errors.New("timeout")).Times(1)
	s.geocoder.EXPECT().Geocode(gomock.Any(), "西藏西藏").Return(schema.Coordinate{}, nil).Times(1)

	records, skipped := s.newCollector(nil, false).BuildRecords(context.Background(), country)
	s.Equal(1, skipped)
	s.Len(records, 2)

	s.Equal("武汉", records[0].City)
	s.Equal(wuhan.Longitude, records[0].Longitude)
	s.Equal("待明确地区", records[1].City)
	s.Equal(hubei.Longitude, records[1].Longitude)
	s.Equal(hubei.Latitude, records[1].Latitude)

	for _, r := range records {
		s.True(r.Longitude != 0 && r.Latitude != 0)
	}
	s.Equal(int64(3), s.counter("geocode"))
}

func (s *CollectorTestSuite) TestCollectDayList() {
	records := CollectDayList(testSnapshot())

	s.Len(records, 3)
	s.Equal(schema.DayListRecord{
		Confirm:  291,
		Suspect:  54,
		Dead:     6,
		Heal:     25,
		DeadRate: "2.1",
		HealRate: "8.6",
		Date:     "01.20",
	}, records[0])
	s.Equal("01.21", records[1].Date)
	s.Equal("01.22", records[2].Date)
	s.Equal(393, records[2].Suspect)
}

func (s *CollectorTestSuite) TestSaveDayListAppend() {
	records := CollectDayList(testSnapshot())
	s.store.EXPECT().AppendDayList(gomock.Any(), records).Return(nil).Times(1)
	s.store.EXPECT().UpsertDayList(gomock.Any(), gomock.Any()).Times(0)

	s.NoError(s.newCollector(nil, false).SaveDayList(context.Background(), records))
}

func (s *CollectorTestSuite) TestSaveDayListDedup() {
	records := CollectDayList(testSnapshot())
	s.store.EXPECT().UpsertDayList(gomock.Any(), records).Return(nil).Times(1)
	s.store.EXPECT().AppendDayList(gomock.Any(), gomock.Any()).Times(0)

	s.NoError(s.newCollector(nil, true).SaveDayList(context.Background(), records))
}

func (s *CollectorTestSuite) TestRun() {
	snapshot := testSnapshot()

	s.store.EXPECT().DayStatus(gomock.Any(), testDay).Return(nil, nil).Times(1)
	s.store.EXPECT().BeginDay(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	s.geocoder.EXPECT().Geocode(gomock.Any(), "湖北武汉").Return(wuhan, nil).Times(1)
	s.geocoder.EXPECT().Geocode(gomock.Any(), "广东广州").Return(guangzhou, nil).Times(1)
	s.store.EXPECT().InsertCityRecords(gomock.Any(), testDay, gomock.Any()).Return(nil).Times(1)
	s.store.EXPECT().CompleteDay(gomock.Any(), testDay, int64(2), gomock.Any()).Return(nil).Times(1)
	s.store.EXPECT().AppendDayList(gomock.Any(), CollectDayList(snapshot)).Return(nil).Times(1)

	result, err := s.newCollector(staticSource{snapshot: snapshot}, false).Run(context.Background())
	s.NoError(err)
	s.Equal(int64(2), result.Count)
}

func (s *CollectorTestSuite) TestRunFetchError() {
	source := staticSource{err: ncp.ErrSnapshotFetch}

	_, err := s.newCollector(source, false).Run(context.Background())
	s.True(errors.Is(err, ncp.ErrSnapshotFetch))
}

func TestCollectorTestSuite(t *testing.T) {
	suite.Run(t, new(CollectorTestSuite))
}
