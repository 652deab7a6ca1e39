package tickertape

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/kaptinlin/jsonrepair"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"

	"tickerscreen/pkg/scorecard"
	"tickerscreen/pkg/screener"
)

const (
	DefaultScreenerURL   = "https://api.tickertape.in/screener/query"
	DefaultScorecardURL  = "https://analyze.api.tickertape.in/stocks/scorecard"
	DefaultAcceptVersion = "8.14.0"
	DefaultTimeout       = 30 * time.Second
)

// HTTPError is a transport-or-status failure from the Tickertape API.
type HTTPError struct {
	StatusCode int
	Status     string
	Err        error
}

func NewHTTPError(statusCode int, err error) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Err:        err,
	}
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Err.Error())
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// HTTPStatusCode lets callers separate transport failures from parse
// failures without importing this package.
func (e *HTTPError) HTTPStatusCode() int {
	return e.StatusCode
}

// Config carries the endpoints and authentication context for one run.
// Cookies and the CSRF token are read-only after construction and are
// shared by every concurrent request.
type Config struct {
	ScreenerURL   string
	ScorecardURL  string
	AcceptVersion string
	CSRFToken     string
	Cookies       map[string]string
	Timeout       time.Duration
	Verbose       bool
}

// ConfigFromEnv builds a Config from TICKERTAPE_* environment variables.
// The JWT cookie and CSRF token come from the browser session; see .env.
func ConfigFromEnv() *Config {
	cookies := map[string]string{}
	if jwt := os.Getenv("TICKERTAPE_JWT"); jwt != "" {
		cookies["jwt"] = jwt
	}
	csrf := os.Getenv("TICKERTAPE_CSRF")
	if csrf != "" {
		cookies["x-csrf-token-tickertape-prod"] = csrf
	}

	return &Config{
		AcceptVersion: os.Getenv("TICKERTAPE_ACCEPT_VERSION"),
		CSRFToken:     csrf,
		Cookies:       cookies,
		Verbose:       os.Getenv("TICKERTAPE_VERBOSE") == "1",
	}
}

type Client struct {
	Config *Config
	Client *http.Client
	Logger *zap.Logger
}

func NewClient(config *Config, logger *zap.Logger) *Client {
	if config.ScreenerURL == "" {
		config.ScreenerURL = DefaultScreenerURL
	}
	if config.ScorecardURL == "" {
		config.ScorecardURL = DefaultScorecardURL
	}
	if config.AcceptVersion == "" {
		config.AcceptVersion = DefaultAcceptVersion
	}
	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		Config: config,
		Client: &http.Client{Timeout: timeout},
		Logger: logger,
	}
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("accept", "application/json, text/plain, */*")
	req.Header.Set("accept-version", c.Config.AcceptVersion)
	req.Header.Set("origin", "https://www.tickertape.in")
	req.Header.Set("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/134.0.0.0 Safari/537.36")
	if c.Config.CSRFToken != "" {
		req.Header.Set("x-csrf-token", c.Config.CSRFToken)
	}
	for name, value := range c.Config.Cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
}

func (c *Client) fetch(req *http.Request) ([]byte, error) {
	c.setHeaders(req)

	res, err := c.Client.Do(req)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, NewHTTPError(res.StatusCode, nil)
	}

	if c.Config.Verbose {
		c.Logger.Debug("api response",
			zap.String("url", req.URL.String()),
			zap.ByteString("body", pretty.Pretty(body)))
	}

	return body, nil
}

// GetScorecard fetches one stock's raw scorecard document. Bodies that
// fail strict decoding get one repair pass before being declared
// malformed; decode failures are not HTTPErrors.
func (c *Client) GetScorecard(sid string) (*scorecard.Document, error) {
	req, err := http.NewRequest(http.MethodGet, c.Config.ScorecardURL+"/"+url.PathEscape(sid), nil)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, err)
	}

	body, err := c.fetch(req)
	if err != nil {
		return nil, err
	}

	var doc scorecard.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(string(body))
		if repairErr != nil {
			return nil, fmt.Errorf("decode scorecard for %s: %w", sid, err)
		}
		if err := json.Unmarshal([]byte(repaired), &doc); err != nil {
			return nil, fmt.Errorf("decode repaired scorecard for %s: %w", sid, err)
		}
		c.Logger.Warn("scorecard body needed repair", zap.String("sid", sid))
	}

	return &doc, nil
}

// QueryScreener runs the bulk screener query. A failure here is fatal to
// the run: without the screener baseline there is nothing to build.
func (c *Client) QueryScreener(payload *ScreenerPayload) (*screener.Response, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal screener payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.Config.ScreenerURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.fetch(req)
	if err != nil {
		return nil, err
	}

	var resp screener.Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode screener response: %w", err)
	}

	c.Logger.Info("screener query complete",
		zap.Int("results", len(resp.Data.Results)))

	return &resp, nil
}
