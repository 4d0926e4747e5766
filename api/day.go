package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/ncp-map/aggregator"
	"github.com/bitmark-inc/ncp-map/utils"
)

func validDay(day string) bool {
	_, err := time.Parse(utils.DayLayout, day)
	return err == nil
}

// dayParam reads the day from the path or the query, today when absent
func (s *Server) dayParam(c *gin.Context) (string, bool) {
	day := c.Param("day")
	if day == "" {
		day = c.DefaultQuery("day", s.aggregator.Today())
	}

	if !validDay(day) {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return "", false
	}
	return day, true
}

func (s *Server) listDays(c *gin.Context) {
	days, err := s.store.CollectedDays(c)
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}

func (s *Server) dayStatus(c *gin.Context) {
	day, ok := s.dayParam(c)
	if !ok {
		return
	}

	status, err := s.store.DayStatus(c, day)
	if shouldInterupt(err, c) {
		return
	}

	if status == nil {
		abortWithEncoding(c, http.StatusNotFound, errorDayNotCollected)
		return
	}

	c.JSON(http.StatusOK, status)
}

func (s *Server) dayRecords(c *gin.Context) {
	day, ok := s.dayParam(c)
	if !ok {
		return
	}

	status, err := s.store.DayStatus(c, day)
	if shouldInterupt(err, c) {
		return
	}

	if !status.Complete() {
		abortWithEncoding(c, http.StatusNotFound, errorDayNotCollected)
		return
	}

	records, err := s.store.CityRecords(c, day)
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"day":     day,
		"records": records,
	})
}

func (s *Server) summarize(c *gin.Context) (aggregator.Summary, bool) {
	day, ok := s.dayParam(c)
	if !ok {
		return aggregator.Summary{}, false
	}

	summary, err := s.aggregator.Summarize(c, day)
	if errors.Is(err, aggregator.ErrDayNotCollected) {
		abortWithEncoding(c, http.StatusNotFound, errorDayNotCollected)
		return summary, false
	}

	if shouldInterupt(err, c) {
		return summary, false
	}
	return summary, true
}

func (s *Server) summary(c *gin.Context) {
	summary, ok := s.summarize(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (s *Server) positions(c *gin.Context) {
	summary, ok := s.summarize(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, summary.Partition.Index)
}

func (s *Server) dayList(c *gin.Context) {
	records, err := s.store.DayList(c)
	if shouldInterupt(err, c) {
		return
	}

	if c.Query("series") == "true" {
		c.JSON(http.StatusOK, aggregator.NewDaySeries(records, c.Query("dedup") == "true"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}
