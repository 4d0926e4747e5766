package api

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) page(c *gin.Context) {
	summary, ok := s.summarize(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, summary); shouldInterupt(err, c) {
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
