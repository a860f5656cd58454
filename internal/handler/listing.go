package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apierr "gamerslobby/backend/internal/errors"
	"gamerslobby/backend/internal/repository"
)

// parseListOptions reads sortBy/order/firstItem/limit query parameters.
// Sort keys resolve through the per-resource allow-list to a column name;
// anything unrecognized is rejected with Unprocessable, so no client
// string ever reaches the SQL text.
func parseListOptions(c *gin.Context, sortable map[string]string) (repository.ListOptions, bool) {
	var opts repository.ListOptions

	if sortBy := c.Query("sortBy"); sortBy != "" {
		column, ok := sortable[sortBy]
		if !ok {
			apierr.Abort(c, apierr.Unprocessable(fmt.Sprintf("%q is not a sortable field", sortBy)))
			return opts, false
		}
		opts.SortColumn = column

		switch strings.ToUpper(c.DefaultQuery("order", "ASC")) {
		case "ASC":
		case "DESC":
			opts.Desc = true
		default:
			apierr.Abort(c, apierr.Unprocessable(`"order" must be ASC or DESC`))
			return opts, false
		}
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			apierr.Abort(c, apierr.Unprocessable(`"limit" must be a positive number`))
			return opts, false
		}
		opts.Limit = limit

		if raw := c.Query("firstItem"); raw != "" {
			offset, err := strconv.Atoi(raw)
			if err != nil || offset < 0 {
				apierr.Abort(c, apierr.Unprocessable(`"firstItem" must be a positive number`))
				return opts, false
			}
			opts.Offset = offset
		}
	}

	return opts, true
}

// setContentRange reports the returned window on collection responses.
func setContentRange(c *gin.Context, resource string, count int) {
	c.Header("Content-Range", fmt.Sprintf("%s : 0-%d/%d", resource, count, count+1))
}
