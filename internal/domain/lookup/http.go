package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type httpSource struct {
	baseURL string
	client  *http.Client
}

func newHTTPSource(baseURL string, client *http.Client) httpSource {
	if client == nil {
		client = http.DefaultClient
	}
	return httpSource{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// getJSON decodes the response of GET path?query into out. 404 and 400
// replies are reported as ErrCardNotFound since the card databases use them
// for empty matches.
func (s httpSource) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := s.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusBadRequest:
		return ErrCardNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: status %d", ErrUnexpectedReply, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrUnexpectedReply, err)
	}
	return nil
}
