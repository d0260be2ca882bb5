package daily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Room describes a provider-side video room.
type Room struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Client talks to the Daily rooms REST API.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a Daily API client. baseURL is the API root
// (https://api.daily.co/v1 in production, an httptest server in tests).
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type createRoomRequest struct {
	Name       string         `json:"name"`
	Privacy    string         `json:"privacy"`
	Properties roomProperties `json:"properties"`
}

type roomProperties struct {
	MaxParticipants int   `json:"max_participants"`
	Exp             int64 `json:"exp"`
}

type apiError struct {
	Error string `json:"error"`
	Info  string `json:"info"`
}

// CreateRoom creates the named room. A room that already exists is success:
// the existing room is fetched and returned with exists=true.
func (c *Client) CreateRoom(ctx context.Context, name string) (*Room, bool, error) {
	payload := createRoomRequest{
		Name:    name,
		Privacy: "private",
		Properties: roomProperties{
			// Two-party therapy call. Rooms expire a day out so abandoned
			// ones do not pile up on the provider side.
			MaxParticipants: 2,
			Exp:             time.Now().Add(24 * time.Hour).Unix(),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal room request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rooms", bytes.NewBuffer(body))
	if err != nil {
		return nil, false, fmt.Errorf("failed to build room request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("failed to reach video provider: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode == http.StatusOK {
		var room Room
		if err := json.Unmarshal(respBody, &room); err != nil {
			return nil, false, fmt.Errorf("failed to unmarshal room: %w", err)
		}
		return &room, false, nil
	}

	if resp.StatusCode == http.StatusBadRequest {
		var apiErr apiError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && strings.Contains(apiErr.Info, "already exists") {
			room, err := c.GetRoom(ctx, name)
			if err != nil {
				return nil, false, err
			}
			return room, true, nil
		}
	}

	return nil, false, fmt.Errorf("video provider returned status %d: %s", resp.StatusCode, string(respBody))
}

// GetRoom fetches an existing room by name.
func (c *Client) GetRoom(ctx context.Context, name string) (*Room, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/rooms/"+name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build room request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach video provider: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("video provider returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var room Room
	if err := json.Unmarshal(respBody, &room); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}
	return &room, nil
}
