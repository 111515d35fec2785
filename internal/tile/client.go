package tile

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultHost = "https://mt0.google.com/vt"

// Client fetches tiles over HTTP. The body is read fully into memory; the
// client's timeout is the only cancellation mechanism above plain ctx.
type Client struct {
	host string
	hc   *http.Client
}

// NewClient returns a Client against the default tile host. A zero timeout
// leaves the stitch with no bound on a hung fetch, so one is always set.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		host: defaultHost,
		hc:   &http.Client{Timeout: timeout},
	}
}

// NewClientWithHost is used by tests to point at a local tile server.
func NewClientWithHost(host string, timeout time.Duration) *Client {
	c := NewClient(timeout)
	c.host = host
	return c
}

func (c *Client) FetchTile(ctx context.Context, x, y, zoom int, layer Layer) ([]byte, error) {
	q := url.Values{}
	q.Set("lyrs", string(layer))
	q.Set("x", strconv.Itoa(x))
	q.Set("y", strconv.Itoa(y))
	q.Set("z", strconv.Itoa(zoom))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain a little of the body for the error message
		desc, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, fmt.Errorf("status %d (%s)", resp.StatusCode, string(desc))
	}
	return io.ReadAll(resp.Body)
}
