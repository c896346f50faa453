package pdok

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"aansluitintake/internal/config"
)

var (
	nlPostcodeRe  = regexp.MustCompile(`^\d{4}[A-Z]{2}$`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	houseNumberRe = regexp.MustCompile(`\d+`)
)

// Result is a resolved street and city for a postcode + house number.
type Result struct {
	Street string `json:"street"`
	City   string `json:"city"`
}

// Client queries the PDOK Locatieserver free-search endpoint.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a Locatieserver client from PDOK config.
func NewClient(cfg *config.PDOKConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 6 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// NormalizePostcode strips whitespace and uppercases.
func NormalizePostcode(value string) string {
	return strings.ToUpper(whitespaceRe.ReplaceAllString(value, ""))
}

// IsValidNLPostcode reports whether the value has the Dutch postcode shape.
func IsValidNLPostcode(value string) bool {
	return nlPostcodeRe.MatchString(NormalizePostcode(value))
}

// ExtractHouseNumber pulls the first digit run out of a house number value,
// dropping additions like "12 A".
func ExtractHouseNumber(value string) string {
	return houseNumberRe.FindString(value)
}

type freeResponse struct {
	Response struct {
		Docs []struct {
			Straatnaam     string `json:"straatnaam"`
			Woonplaatsnaam string `json:"woonplaatsnaam"`
		} `json:"docs"`
	} `json:"response"`
}

// Lookup resolves a postcode and house number to a street and city. Returns
// nil without error when the Locatieserver has no match.
func (c *Client) Lookup(ctx context.Context, postcode, houseNumber string) (*Result, error) {
	compact := NormalizePostcode(postcode)
	number := ExtractHouseNumber(houseNumber)
	if compact == "" || number == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", fmt.Sprintf("postcode:%s AND huisnummer:%s", compact, number))
	params.Set("rows", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/free?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling PDOK Locatieserver: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("address lookup failed (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var data freeResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding PDOK response: %w", err)
	}

	if len(data.Response.Docs) == 0 {
		return nil, nil
	}
	doc := data.Response.Docs[0]
	if doc.Straatnaam == "" || doc.Woonplaatsnaam == "" {
		return nil, nil
	}
	return &Result{Street: doc.Straatnaam, City: doc.Woonplaatsnaam}, nil
}
