package sheets

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Client implements Backend against the Google Sheets API.
//
// The service-account JWT config is built once at construction;
// each operation acquires a sheets service scoped to the request
// context, so there is no shared service with a hidden lifecycle and a
// cancelled request cannot poison later calls.
type Client struct {
	cfg  Config
	auth *jwt.Config
}

var _ Backend = (*Client)(nil)

// NewClient validates cfg and prepares service-account credentials.
// It does not contact the backend; use Ping for that.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	auth := &jwt.Config{
		Email:      cfg.ClientEmail,
		PrivateKey: []byte(cfg.PrivateKey),
		Scopes:     []string{sheetsapi.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	return &Client{cfg: cfg, auth: auth}, nil
}

// service builds a request-scoped sheets service.
func (c *Client) service(ctx context.Context) (*sheetsapi.Service, error) {
	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(c.auth.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return svc, nil
}

// Append appends one row after the last row of the configured sheet.
func (c *Client) Append(ctx context.Context, row []interface{}) (*AppendResult, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	vr := &sheetsapi.ValueRange{Values: [][]interface{}{row}}
	resp, err := svc.Spreadsheets.Values.
		Append(c.cfg.SpreadsheetID, c.appendRange(), vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("append row: %w", err)
	}

	result := &AppendResult{SpreadsheetID: resp.SpreadsheetId}
	if resp.Updates != nil {
		result.UpdatedRange = resp.Updates.UpdatedRange
		result.UpdatedRows = resp.Updates.UpdatedRows
		result.UpdatedCells = resp.Updates.UpdatedCells
	}
	return result, nil
}

// Read fetches the full configured range. Every read is a full-range
// scan; the backend offers no server-side pagination worth using at
// this table size.
func (c *Client) Read(ctx context.Context) ([][]interface{}, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Spreadsheets.Values.
		Get(c.cfg.SpreadsheetID, c.readRange()).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", c.readRange(), err)
	}
	if resp.Values == nil {
		return [][]interface{}{}, nil
	}
	return resp.Values, nil
}

// Ping fetches spreadsheet metadata only, verifying credentials and
// reachability without reading row data.
func (c *Client) Ping(ctx context.Context) error {
	svc, err := c.service(ctx)
	if err != nil {
		return err
	}

	_, err = svc.Spreadsheets.
		Get(c.cfg.SpreadsheetID).
		Fields("spreadsheetId").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("ping spreadsheet: %w", err)
	}
	return nil
}

func (c *Client) appendRange() string {
	return fmt.Sprintf("%s!A:N", c.cfg.SheetName)
}

func (c *Client) readRange() string {
	return fmt.Sprintf("%s!%s", c.cfg.SheetName, c.cfg.ReadRange)
}
