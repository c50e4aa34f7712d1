package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"pfas-demo/internal/query"
)

// listParams are the paging and sorting parameters shared by list endpoints.
type listParams struct {
	Text     string `form:"q"`
	Status   string `form:"status"`
	Sort     string `form:"sort"`
	Dir      string `form:"dir"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// floatParam parses an optional numeric query parameter.
func floatParam(c *gin.Context, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return &v, nil
}

func rangeParam(c *gin.Context, minName, maxName string) (query.Range, error) {
	lo, err := floatParam(c, minName)
	if err != nil {
		return query.Range{}, err
	}
	hi, err := floatParam(c, maxName)
	if err != nil {
		return query.Range{}, err
	}
	return query.Range{Min: lo, Max: hi}, nil
}
