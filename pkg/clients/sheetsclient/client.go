// Package sheetsclient publishes verified report exports to a shared Google
// spreadsheet.
package sheetsclient

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/collectionsdesk/paxcash/internal/config"
	"github.com/collectionsdesk/paxcash/pkg/core/services"
	"github.com/collectionsdesk/paxcash/pkg/utils"
)

// Client wraps the Google Sheets API client
type Client struct {
	service *sheets.Service
	token   *oauth2.Token
}

// NewClient creates a new Sheets client using OAuth credentials and performs
// the OAuth flow if needed. Tokens are persisted to disk for the given
// environment.
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, env string) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	token, err := utils.GetTokenWithFlow(ctx, oauthConfig, env)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth token: %w", err)
	}

	httpClient := oauthConfig.Client(ctx, token)
	service, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{service: service, token: token}, nil
}

// Service returns the underlying sheets service for direct API access
func (c *Client) Service() *sheets.Service {
	return c.service
}

// PublishVerified replaces the contents of the given tab with the export
// header and rows. The tab is created if it doesn't exist yet.
func (c *Client) PublishVerified(spreadsheetID, tab string, result *services.ExportResult) error {
	exists, err := c.tabExists(spreadsheetID, tab)
	if err != nil {
		return err
	}
	if !exists {
		if err := c.createTab(spreadsheetID, tab); err != nil {
			return err
		}
	}

	_, err = c.service.Spreadsheets.Values.Clear(spreadsheetID, tab, &sheets.ClearValuesRequest{}).Do()
	if err != nil {
		return fmt.Errorf("failed to clear tab %s: %w", tab, err)
	}

	values := make([][]interface{}, 0, len(result.Rows)+1)
	values = append(values, toInterfaceRow(result.Header))
	for _, row := range result.Rows {
		values = append(values, toInterfaceRow(row))
	}

	_, err = c.service.Spreadsheets.Values.Update(spreadsheetID, tab+"!A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Do()
	if err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}

	return nil
}

func (c *Client) tabExists(spreadsheetID, tab string) (bool, error) {
	spreadsheet, err := c.service.Spreadsheets.Get(spreadsheetID).Do()
	if err != nil {
		return false, fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == tab {
			return true, nil
		}
	}
	return false, nil
}

func (c *Client) createTab(spreadsheetID, tab string) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: tab},
			},
		}},
	}

	if _, err := c.service.Spreadsheets.BatchUpdate(spreadsheetID, req).Do(); err != nil {
		return fmt.Errorf("failed to create tab %s: %w", tab, err)
	}
	return nil
}

func toInterfaceRow(values []string) []interface{} {
	row := make([]interface{}, len(values))
	for i, value := range values {
		row[i] = value
	}
	return row
}
