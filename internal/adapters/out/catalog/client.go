// Package catalog implements read-only lookups against the catalog and
// profile services, consumed during order creation and cost calculation.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// Client talks to the catalog and profile services' REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client. baseURL must not end with a slash.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type gigResponse struct {
	ID                   string `json:"id"`
	SellerID             string `json:"sellerId"`
	Title                string `json:"title"`
	Description          string `json:"description"`
	CoverImage           string `json:"coverImage"`
	UnitPrice            int64  `json:"unitPrice"`
	Currency             string `json:"currency"`
	ExpectedDeliveryDays int    `json:"expectedDeliveryDays"`
	MaxRevision          *int   `json:"maxRevision"`
	Requirements         []struct {
		Question string `json:"question"`
		Required bool   `json:"required"`
		WithFile bool   `json:"withFile"`
	} `json:"requirements"`
}

// GetGig fetches a purchasable service by id.
func (c *Client) GetGig(ctx context.Context, gigID string) (ports.Gig, error) {
	var resp gigResponse
	if err := c.get(ctx, "/v1/gigs/"+url.PathEscape(gigID), "gig", gigID, &resp); err != nil {
		return ports.Gig{}, err
	}

	gig := ports.Gig{
		ID:                   resp.ID,
		SellerID:             resp.SellerID,
		Title:                resp.Title,
		Description:          resp.Description,
		CoverImage:           resp.CoverImage,
		UnitPrice:            resp.UnitPrice,
		Currency:             resp.Currency,
		ExpectedDeliveryDays: resp.ExpectedDeliveryDays,
		MaxRevision:          resp.MaxRevision,
	}
	for _, r := range resp.Requirements {
		gig.Requirements = append(gig.Requirements, ports.GigRequirement{
			Question: r.Question,
			Required: r.Required,
			WithFile: r.WithFile,
		})
	}
	return gig, nil
}

// GetProfile fetches a marketplace account's profile by id.
func (c *Client) GetProfile(ctx context.Context, accountID string) (ports.Profile, error) {
	var resp struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Picture  string `json:"picture"`
		Country  string `json:"country"`
	}
	if err := c.get(ctx, "/v1/profiles/"+url.PathEscape(accountID), "profile", accountID, &resp); err != nil {
		return ports.Profile{}, err
	}

	return ports.Profile{
		ID:       resp.ID,
		Username: resp.Username,
		Email:    resp.Email,
		Picture:  resp.Picture,
		Country:  resp.Country,
	}, nil
}

func (c *Client) get(ctx context.Context, path, objectName, objectID string, respBody any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errs.NewObjectNotFoundError(objectName, objectID)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("catalog returned %d: %s", resp.StatusCode, body)
	}

	return json.NewDecoder(resp.Body).Decode(respBody)
}
