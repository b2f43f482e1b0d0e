// Package sheets mirrors membership applications to a Google Sheet. The
// mirror is best-effort: the spreadsheet is never authoritative storage,
// and failures are logged, not surfaced to the applicant.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const spreadsheetScope = "https://www.googleapis.com/auth/spreadsheets"

// Config identifies the target spreadsheet and the service account allowed
// to append to it. When any field is empty the mirror is disabled.
type Config struct {
	SpreadsheetID string
	ClientEmail   string
	PrivateKey    string // PEM; may contain literal \n sequences from env
}

// Enabled reports whether the mirror is configured.
func (c Config) Enabled() bool {
	return c.SpreadsheetID != "" && c.ClientEmail != "" && c.PrivateKey != ""
}

// Appender appends one flat row of scalar values to a named sheet tab.
type Appender interface {
	Append(ctx context.Context, sheetName string, values []interface{}) error
}

// Client talks to the Google Sheets API with service-account credentials.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// NewClient builds a Sheets client from service-account JWT credentials.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	conf := &jwt.Config{
		Email:      cfg.ClientEmail,
		PrivateKey: []byte(strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")),
		Scopes:     []string{spreadsheetScope},
		TokenURL:   google.JWTTokenURL,
	}

	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: cfg.SpreadsheetID}, nil
}

// Append adds one row to sheetName. The tab must already exist; rows land
// after the last non-empty row.
func (c *Client) Append(ctx context.Context, sheetName string, values []interface{}) error {
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{values}}
	_, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, sheetName+"!A1", vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", sheetName, err)
	}
	return nil
}
