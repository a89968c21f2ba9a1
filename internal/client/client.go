// Package client wraps the network exchanges with the remote analysis
// service. Analyze performs exactly one multipart POST per call; there
// are no retries and no caching.
package client

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/ajaydixit/finsight/config"
	"github.com/ajaydixit/finsight/internal/schema"
)

const (
	analysisPath = "/analysis/run"
	reportPath   = "/report/generate"
	historyPath  = "/report/history"
)

// Request is one analysis submission. File must be non-empty; the
// caller guarantees a file was selected before constructing a Request.
type Request struct {
	FileName     string
	File         io.Reader
	BusinessType string
	Language     string
}

// Client talks to one analysis service. The base URL is fixed at
// construction from startup configuration.
type Client struct {
	http  *resty.Client
	debug bool
}

func New(cfg *config.Config) *Client {
	c := resty.New()
	c.SetBaseURL(cfg.APIBaseURL)
	c.SetTimeout(cfg.Timeout)

	return &Client{
		http:  c,
		debug: cfg.Debug,
	}
}

// Analyze submits the file and returns the validated result. Every
// failure resolves to an *APIError distinguishing transport, server and
// schema problems; nothing is swallowed.
func (c *Client) Analyze(ctx context.Context, req Request) (*schema.AnalysisResult, error) {
	const op = "analyze"

	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", req.FileName, req.File).
		SetFormData(map[string]string{
			"business_type": req.BusinessType,
			"language":      req.Language,
		}).
		Post(analysisPath)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, Op: op, Err: fmt.Errorf("post %s: %w", analysisPath, err)}
	}

	c.debugf("%s: %s -> HTTP %d (%d bytes)", op, analysisPath, resp.StatusCode(), len(resp.Body()))

	if !resp.IsSuccess() {
		return nil, &APIError{
			Kind:   KindServer,
			Op:     op,
			Status: resp.StatusCode(),
			Err:    fmt.Errorf("%s returned HTTP %d: %s", analysisPath, resp.StatusCode(), resp.String()),
		}
	}

	result, err := schema.Parse(resp.Body())
	if err != nil {
		return nil, &APIError{Kind: KindSchema, Op: op, Err: err}
	}
	return result, nil
}

// GenerateReport forwards a full analysis payload to the report
// endpoint and returns the investor-ready report.
func (c *Client) GenerateReport(ctx context.Context, result *schema.AnalysisResult) (*schema.InvestorReport, error) {
	const op = "generate report"

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody([]byte(result.Raw)).
		Post(reportPath)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, Op: op, Err: fmt.Errorf("post %s: %w", reportPath, err)}
	}

	c.debugf("%s: %s -> HTTP %d", op, reportPath, resp.StatusCode())

	if !resp.IsSuccess() {
		return nil, &APIError{
			Kind:   KindServer,
			Op:     op,
			Status: resp.StatusCode(),
			Err:    fmt.Errorf("%s returned HTTP %d: %s", reportPath, resp.StatusCode(), resp.String()),
		}
	}

	report, err := schema.ParseInvestorReport(resp.Body())
	if err != nil {
		return nil, &APIError{Kind: KindSchema, Op: op, Err: err}
	}
	return report, nil
}

// History fetches the latest analyses recorded server-side.
func (c *Client) History(ctx context.Context, limit int) ([]schema.HistoryEntry, error) {
	const op = "history"

	r := c.http.R().SetContext(ctx)
	if limit > 0 {
		r.SetQueryParam("limit", strconv.Itoa(limit))
	}
	resp, err := r.Get(historyPath)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, Op: op, Err: fmt.Errorf("get %s: %w", historyPath, err)}
	}

	c.debugf("%s: %s -> HTTP %d", op, historyPath, resp.StatusCode())

	if !resp.IsSuccess() {
		return nil, &APIError{
			Kind:   KindServer,
			Op:     op,
			Status: resp.StatusCode(),
			Err:    fmt.Errorf("%s returned HTTP %d: %s", historyPath, resp.StatusCode(), resp.String()),
		}
	}

	entries, err := schema.ParseHistory(resp.Body())
	if err != nil {
		return nil, &APIError{Kind: KindSchema, Op: op, Err: err}
	}
	return entries, nil
}

func (c *Client) debugf(format string, args ...any) {
	if c.debug {
		fmt.Printf("[DEBUG] "+format+"\n", args...)
	}
}
