package calendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/hkoren/free-slots/internal/google"
)

// Client wraps the Google Calendar service for read-only busy-event
// queries.
type Client struct {
	svc     *calendar.Service
	account string
}

// Account returns the account name this client is associated with.
func (c *Client) Account() string {
	return c.account
}

// NewClientForAccount creates a Calendar client authenticated for a
// specific account from the cached OAuth token.
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	ts, err := google.GetTokenSourceForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to get Google OAuth token for account %s: %w", account, err)
	}

	client := oauth2.NewClient(ctx, ts)

	// Force HTTP/1.1 by disabling HTTP/2
	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &Client{
		svc:     svc,
		account: account,
	}, nil
}

// NewClient creates a Calendar client for the default account.
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// ListBusy fetches all events in [timeMin, timeMax) for a calendar and
// returns them as busy spans. Recurring events arrive pre-expanded
// (SingleEvents); the page-token loop flattens the paginated response
// into one list. All-day events are resolved against fallback; cancelled
// or malformed events are dropped.
func (c *Client) ListBusy(ctx context.Context, calendarID string, timeMin, timeMax time.Time, fallback *time.Location) ([]BusyEvent, error) {
	var busy []BusyEvent

	pageToken := ""
	for {
		call := c.svc.Events.List(calendarID).
			TimeMin(timeMin.Format(time.RFC3339)).
			TimeMax(timeMax.Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list events for %s: %w", calendarID, err)
		}

		for _, ev := range resp.Items {
			if b, ok := toBusyEvent(ev, fallback); ok {
				busy = append(busy, b)
			}
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return busy, nil
}
