// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pure

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pdiddy/pure-import/pkg/types"
)

// Journal is a journal item returned by journal search.
type Journal struct {
	UUID  string                `json:"uuid"`
	Title types.FormattedString `json:"title"`
}

type externalPersonRequest struct {
	Name types.PersonName `json:"name"`
}

type contentRef struct {
	UUID string `json:"uuid"`
}

type journalSearchRequest struct {
	SearchString string `json:"searchString"`
}

type journalSearchResponse struct {
	Count int       `json:"count"`
	Items []Journal `json:"items"`
}

// CreateExternalPerson creates an external person and returns its UUID.
// Pure does not deduplicate: every call creates a new record.
func (c *Client) CreateExternalPerson(ctx context.Context, firstName, lastName string) (string, error) {
	req := externalPersonRequest{Name: types.PersonName{FirstName: firstName, LastName: lastName}}
	var created contentRef
	if err := c.do(ctx, http.MethodPut, "external-persons", req, &created, false); err != nil {
		return "", err
	}
	if created.UUID == "" {
		return "", fmt.Errorf("pure PUT external-persons: response has no uuid")
	}
	return created.UUID, nil
}

// SearchJournals returns the journals matching an ISSN (or any search string).
func (c *Client) SearchJournals(ctx context.Context, issn string) ([]Journal, error) {
	var resp journalSearchResponse
	if err := c.do(ctx, http.MethodPost, "journals/search", journalSearchRequest{SearchString: issn}, &resp, true); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// CreateResearchOutput submits an assembled payload and returns the UUID
// Pure assigned. It is never retried.
func (c *Client) CreateResearchOutput(ctx context.Context, payload *types.SubmissionPayload) (string, error) {
	var created contentRef
	if err := c.do(ctx, http.MethodPut, "research-outputs", payload, &created, false); err != nil {
		return "", err
	}
	return created.UUID, nil
}

// GetResearchOutput fetches a research output as raw JSON.
func (c *Client) GetResearchOutput(ctx context.Context, uuid string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "research-outputs/"+uuid, nil, &raw, true); err != nil {
		return nil, err
	}
	return raw, nil
}
