// Google Sheets persistence for registrations and feedback. One tab per
// record type, append-only from the relay's point of view.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"dansebakken_backend/internals/configs"
)

// values is the slice of the Sheets API the client actually touches.
// Tests substitute a fake.
type values interface {
	Read(ctx context.Context, spreadsheetID, rng string) ([][]interface{}, error)
	Update(ctx context.Context, spreadsheetID, rng string, vals [][]interface{}) error
	Append(ctx context.Context, spreadsheetID, rng string, vals [][]interface{}) error
}

type Client struct {
	spreadsheetID string
	api           values
}

// EnsureResult reports what EnsureHeaders found and whether it rewrote row 1.
type EnsureResult struct {
	Updated  bool
	Previous []string
}

// NewClient builds a Sheets client from a service-account credential:
// either GOOGLE_CLIENT_EMAIL + GOOGLE_PRIVATE_KEY, or a JSON key file.
func NewClient(ctx context.Context, cfg configs.SheetsConfig) (*Client, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("sheets: missing spreadsheet id")
	}

	var conf *jwt.Config
	switch {
	case cfg.ClientEmail != "" && cfg.PrivateKey != "":
		conf = &jwt.Config{
			Email: cfg.ClientEmail,
			// env vars carry the key with literal \n sequences
			PrivateKey: []byte(strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")),
			Scopes:     []string{gsheets.SpreadsheetsScope},
			TokenURL:   google.JWTTokenURL,
		}
	case cfg.CredentialsFile != "":
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("sheets: read credentials file: %w", err)
		}
		conf, err = google.JWTConfigFromJSON(data, gsheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("sheets: parse credentials file: %w", err)
		}
	default:
		return nil, errors.New("sheets: no service-account credential resolvable")
	}

	svc, err := gsheets.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("sheets: build service: %w", err)
	}
	return &Client{spreadsheetID: cfg.SpreadsheetID, api: &googleValues{svc: svc}}, nil
}

// Append adds one row to the bottom of the named tab.
func (c *Client) Append(ctx context.Context, tab string, row []string) error {
	vals := make([]interface{}, len(row))
	for i, cell := range row {
		vals[i] = cell
	}
	if err := c.api.Append(ctx, c.spreadsheetID, tab+"!A1", [][]interface{}{vals}); err != nil {
		return fmt.Errorf("sheets: append to %s: %w", tab, err)
	}
	return nil
}

// EnsureHeaders reconciles row 1 of the tab with expected. The comparison is
// order-sensitive; any textual difference rewrites the whole row. Calling it
// again with the same expected headers is a no-op.
func (c *Client) EnsureHeaders(ctx context.Context, tab string, expected []string) (EnsureResult, error) {
	rows, err := c.api.Read(ctx, c.spreadsheetID, tab+"!1:1")
	if err != nil {
		return EnsureResult{}, fmt.Errorf("sheets: read headers of %s: %w", tab, err)
	}

	var current []string
	if len(rows) > 0 {
		for _, cell := range rows[0] {
			current = append(current, fmt.Sprint(cell))
		}
	}
	if strings.Join(current, "|") == strings.Join(expected, "|") {
		return EnsureResult{Updated: false, Previous: current}, nil
	}

	vals := make([]interface{}, len(expected))
	for i, h := range expected {
		vals[i] = h
	}
	if err := c.api.Update(ctx, c.spreadsheetID, tab+"!1:1", [][]interface{}{vals}); err != nil {
		return EnsureResult{}, fmt.Errorf("sheets: write headers of %s: %w", tab, err)
	}
	log.Printf("[SHEETS] rewrote headers of %s (was: %q)", tab, current)
	return EnsureResult{Updated: true, Previous: current}, nil
}

// googleValues adapts *gsheets.Service to the values interface.
type googleValues struct {
	svc *gsheets.Service
}

func (g *googleValues) Read(ctx context.Context, spreadsheetID, rng string) ([][]interface{}, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (g *googleValues) Update(ctx context.Context, spreadsheetID, rng string, vals [][]interface{}) error {
	_, err := g.svc.Spreadsheets.Values.
		Update(spreadsheetID, rng, &gsheets.ValueRange{Values: vals}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	return err
}

func (g *googleValues) Append(ctx context.Context, spreadsheetID, rng string, vals [][]interface{}) error {
	_, err := g.svc.Spreadsheets.Values.
		Append(spreadsheetID, rng, &gsheets.ValueRange{Values: vals}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	return err
}
