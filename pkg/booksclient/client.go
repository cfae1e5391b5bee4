// Package booksclient is a typed client for the public volume-search
// API the storefront browses. The vendor's records are loosely shaped;
// every nested block here is optional and callers go through the
// fallback helpers in price.go rather than reading SaleInfo directly.
package booksclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const DefaultBaseURL = "https://www.googleapis.com/books/v1/volumes"

var ErrVolumeNotFound = errors.New("volume not found")

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func New(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type Volume struct {
	ID         string      `json:"id"`
	VolumeInfo VolumeInfo  `json:"volumeInfo"`
	SaleInfo   *SaleInfo   `json:"saleInfo,omitempty"`
	AccessInfo *AccessInfo `json:"accessInfo,omitempty"`
}

type VolumeInfo struct {
	Title         string      `json:"title"`
	Authors       []string    `json:"authors,omitempty"`
	Publisher     string      `json:"publisher,omitempty"`
	PublishedDate string      `json:"publishedDate,omitempty"`
	Description   string      `json:"description,omitempty"`
	PageCount     int         `json:"pageCount,omitempty"`
	Categories    []string    `json:"categories,omitempty"`
	ImageLinks    *ImageLinks `json:"imageLinks,omitempty"`
	PreviewLink   string      `json:"previewLink,omitempty"`
	InfoLink      string      `json:"infoLink,omitempty"`
	Language      string      `json:"language,omitempty"`
}

type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail,omitempty"`
	Thumbnail      string `json:"thumbnail,omitempty"`
	Small          string `json:"small,omitempty"`
	Medium         string `json:"medium,omitempty"`
	Large          string `json:"large,omitempty"`
	ExtraLarge     string `json:"extraLarge,omitempty"`
}

type SaleInfo struct {
	ListPrice   *Price `json:"listPrice,omitempty"`
	RetailPrice *Price `json:"retailPrice,omitempty"`
	BuyLink     string `json:"buyLink,omitempty"`
	IsEbook     bool   `json:"isEbook,omitempty"`
	Saleability string `json:"saleability,omitempty"`
}

type Price struct {
	Amount       float64 `json:"amount"`
	CurrencyCode string  `json:"currencyCode"`
}

type AccessInfo struct {
	WebReaderLink string `json:"webReaderLink,omitempty"`
	PublicDomain  bool   `json:"publicDomain,omitempty"`
	Embeddable    bool   `json:"embeddable,omitempty"`
}

type SearchResult struct {
	Kind       string   `json:"kind"`
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

// Search queries the vendor index. startIndex is the zero-based offset;
// maxResults defaults to 12 when zero, matching the storefront pages.
func (c *Client) Search(ctx context.Context, query string, startIndex, maxResults int) (*SearchResult, error) {
	if query == "" {
		return nil, errors.New("booksclient: empty query")
	}
	if maxResults <= 0 {
		maxResults = 12
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("startIndex", strconv.Itoa(startIndex))
	params.Set("maxResults", strconv.Itoa(maxResults))
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	var result SearchResult
	if err := c.get(ctx, c.baseURL+"?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ByCategory browses a subject shelf.
func (c *Client) ByCategory(ctx context.Context, category string, startIndex, maxResults int) (*SearchResult, error) {
	return c.Search(ctx, "subject:"+category, startIndex, maxResults)
}

// Volume fetches a single record by its immutable vendor id.
func (c *Client) Volume(ctx context.Context, id string) (*Volume, error) {
	if id == "" {
		return nil, errors.New("booksclient: empty volume id")
	}

	u := c.baseURL + "/" + url.PathEscape(id)
	if c.apiKey != "" {
		u += "?key=" + url.QueryEscape(c.apiKey)
	}

	var vol Volume
	if err := c.get(ctx, u, &vol); err != nil {
		return nil, err
	}
	return &vol, nil
}

func (c *Client) get(ctx context.Context, u string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrVolumeNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("vendor api status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
