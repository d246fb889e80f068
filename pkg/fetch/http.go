package fetch

import (
	"context"
	"fmt"
	"net/http"

	"github.com/zhengshuai-xiao/streamcount/internal"
)

// HTTPSource downloads a URL with a plain GET.
type HTTPSource struct {
	URL    string
	Client *http.Client
	Header http.Header
	// AllowAnyStatus counts the body of non-2xx responses instead of failing.
	AllowAnyStatus bool
}

func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{URL: url, Client: http.DefaultClient}
}

func (s *HTTPSource) String() string {
	return s.URL
}

func (s *HTTPSource) Open(ctx context.Context) (*Body, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request for %s: %w", internal.ErrTransport, s.URL, err)
	}
	for k, vs := range s.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", internal.ErrTransport, s.URL, err)
	}
	logger.Debugf("GET %s: %s, content-length %d", s.URL, resp.Status, resp.ContentLength)

	if !s.AllowAnyStatus && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: GET %s: unexpected status %s", internal.ErrTransport, s.URL, resp.Status)
	}
	return &Body{ReadCloser: resp.Body, Size: resp.ContentLength}, nil
}
