package harbor

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

const DefaultPageSize = 100

// GetAll henter alle sider fra et liste-endepunkt og returnerer dem i den
// rekkefølgen Harbor leverte dem. Termineringsregelen er "kort side": en side
// med færre enn pageSize elementer (også null) er den siste. Eventuelle
// X-Total-Count-headere ignoreres – de er ikke nødvendige for korrekthet.
func GetAll[T any](ctx context.Context, c *Client, path string, query url.Values, header http.Header) ([]T, error) {
	pageSize := c.pageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var all []T
	for page := 1; ; page++ {
		q := url.Values{}
		for k, vs := range query {
			q[k] = vs
		}
		q.Set("page", strconv.Itoa(page))
		q.Set("page_size", strconv.Itoa(pageSize))

		var items []T
		if err := c.GetJSON(ctx, path, q, header, &items); err != nil {
			return nil, err
		}
		all = append(all, items...)

		if len(items) < pageSize {
			return all, nil
		}
	}
}
