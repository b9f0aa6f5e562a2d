package observability

import (
	"net/http"
	"time"
)

// Transport is an http.RoundTripper that reports every exchange to the
// registered [HTTPHooks].
type Transport struct {
	// Base is the underlying transport; nil means http.DefaultTransport.
	Base http.RoundTripper
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	rt := RoundTrip{Method: req.Method, Host: req.URL.Host, Path: req.URL.Path}
	start := time.Now()
	resp, err := base.RoundTrip(req)
	rt.Duration = time.Since(start)
	if err != nil {
		rt.Err = err
	} else {
		rt.Status = resp.StatusCode
	}
	HTTP().OnRoundTrip(req.Context(), rt)
	return resp, err
}

// InstrumentClient wraps the client's transport with [Transport] and
// returns the client.
func InstrumentClient(c *http.Client) *http.Client {
	if _, ok := c.Transport.(*Transport); ok {
		return c
	}
	c.Transport = &Transport{Base: c.Transport}
	return c
}
