package portal

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"osrcdl/internal/logging"
)

const (
	searchPath   = "/uploadSearch"
	modalPath    = "/downSrcMPop"
	downloadPath = "/downSrcCode"

	defaultRequestTimeout = 30 * time.Second
)

// Config describes the portal client configuration.
type Config struct {
	BaseURL        string
	UserAgent      string
	RequestTimeout time.Duration
	InsecureTLS    bool
	HTTPClient     *http.Client
	Logger         *slog.Logger
}

// Client drives the portal's search, token, and download endpoints over a
// single cookie-bearing session.
type Client struct {
	baseURL   *url.URL
	userAgent string
	timeout   time.Duration
	http      *http.Client
	logger    *slog.Logger
}

// New creates a Client from the supplied configuration.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("portal: base url is required")
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("portal: parse base url: %w", err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("portal: base url %q must be absolute", base)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	client := cfg.HTTPClient
	if client == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("portal: create cookie jar: %w", err)
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if cfg.InsecureTLS {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		}
		client = &http.Client{Jar: jar, Transport: transport}
	}

	return &Client{
		baseURL:   baseURL,
		userAgent: strings.TrimSpace(cfg.UserAgent),
		timeout:   timeout,
		http:      client,
		logger:    logging.NewComponentLogger(cfg.Logger, "portal"),
	}, nil
}

// Search queries the portal for releases matching the given device model and
// returns them in page order.
func (c *Client) Search(ctx context.Context, model string) ([]ReleaseCandidate, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, errors.New("portal: device model is required")
	}

	endpoint := c.endpoint(searchPath, url.Values{"searchValue": {model}})
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", model, err)
	}
	defer body.Close()

	candidates, err := parseSearchResults(body)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", model, err)
	}

	c.logger.Debug("search complete",
		logging.String("model", model),
		logging.Int("results", len(candidates)),
	)
	return candidates, nil
}

// Authorize fetches the download modal for the candidate and merges the
// short-lived form tokens it carries into a DownloadAuthorization.
func (c *Client) Authorize(ctx context.Context, candidate ReleaseCandidate) (DownloadAuthorization, error) {
	if strings.TrimSpace(candidate.UploadID) == "" {
		return DownloadAuthorization{}, errors.New("portal: candidate has no upload id")
	}

	endpoint := c.endpoint(modalPath, url.Values{"uploadId": {candidate.UploadID}})
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return DownloadAuthorization{}, fmt.Errorf("authorize upload %s: %w", candidate.UploadID, err)
	}
	defer body.Close()

	tokens, err := parseModalTokens(body)
	if err != nil {
		return DownloadAuthorization{}, fmt.Errorf("authorize upload %s: %w", candidate.UploadID, err)
	}

	c.logger.Debug("authorization tokens resolved",
		logging.String("upload_id", candidate.UploadID),
		logging.String("attach_ids", tokens.attachIDs),
	)
	return DownloadAuthorization{
		ReleaseCandidate: candidate,
		AttachIDs:        tokens.attachIDs,
		CSRFToken:        tokens.csrfToken,
		DownloadToken:    tokens.downloadToken,
	}, nil
}

// RequestDownload posts the authorization form and returns the streamed
// response. The caller owns the response body. No timeout is applied beyond
// the context: archives take as long as they take.
func (c *Client) RequestDownload(ctx context.Context, auth DownloadAuthorization) (*http.Response, error) {
	endpoint := c.baseURL.JoinPath(downloadPath)
	form := auth.formValues().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader(form))
	if err != nil {
		return nil, fmt.Errorf("download request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.applyHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		drainAndClose(resp.Body)
		return nil, fmt.Errorf("download request: unexpected status %s", resp.Status)
	}
	return resp, nil
}

func (c *Client) endpoint(path string, query url.Values) *url.URL {
	u := c.baseURL.JoinPath(path)
	u.RawQuery = query.Encode()
	return u
}

func (c *Client) get(ctx context.Context, endpoint *url.URL) (io.ReadCloser, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		cancel()
		return nil, err
	}
	c.applyHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		drainAndClose(resp.Body)
		cancel()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return &cancelReadCloser{ReadCloser: resp.Body, cancel: cancel}, nil
}

func (c *Client) applyHeaders(req *http.Request) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
	_ = body.Close()
}

// cancelReadCloser releases the request timeout once the body is consumed.
type cancelReadCloser struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelReadCloser) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
