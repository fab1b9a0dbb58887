// Package api is a minimal Spoolman client used to look up filament density.
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dstockto/partgen/models"
)

var ErrSpoolNotFound = fmt.Errorf("no spool found")

type Client struct {
	base       string // base API endpoint
	httpClient http.Client
}

type SpoolFilter func(models.Spool) bool

// NotArchived keeps spools that are still in use.
func NotArchived(s models.Spool) bool {
	return !s.Archived
}

// FindSpoolsByName lists spools whose filament name matches name. "*" lists
// every spool.
func (c Client) FindSpoolsByName(name string, filter SpoolFilter) ([]models.Spool, error) {
	u, err := url.Parse(c.base + "/api/v1/spool")
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	q := u.Query()
	q.Set("sort", "filament.name:asc,id:desc")
	q.Set("limit", "1000")
	if trimmed := strings.TrimSpace(name); trimmed != "*" && trimmed != "" {
		q.Set("filament.name", trimmed)
	}
	u.RawQuery = q.Encode()

	var out []models.Spool
	if err := c.getJSON(u, &out); err != nil {
		return nil, err
	}
	if filter != nil {
		out = filterSpools(out, filter)
	}
	return out, nil
}

func filterSpools(spools []models.Spool, filter SpoolFilter) []models.Spool {
	var filtered []models.Spool
	for _, s := range spools {
		if filter(s) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func (c Client) FindSpoolsById(id int) (*models.Spool, error) {
	u, err := url.Parse(fmt.Sprintf("%s/api/v1/spool/%d", c.base, id))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	var out models.Spool
	if err := c.getJSON(u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c Client) getJSON(u *url.URL, out any) error {
	resp, err := c.httpClient.Get(u.String())
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return ErrSpoolNotFound
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("api error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func NewClient(base string) *Client {
	return &Client{
		base:       strings.TrimRight(base, "/"),
		httpClient: http.Client{Timeout: 10 * time.Second},
	}
}
