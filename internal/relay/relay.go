// Package relay talks to the external Apps Script endpoint on behalf of
// everything else: the /api/proxy handlers relay its outcomes to the
// browser verbatim, and the typed sheet client consumes it in-process.
// It owns the quirks of that integration: Apps Script answers non-browser
// user agents differently, redirects to a Google login page when the
// deployment is not public, and returns HTML error pages instead of JSON.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	requestTimeout = 30 * time.Second
	excerptLimit   = 500
	maxBodyBytes   = 10 << 20

	// Apps Script serves an HTML interstitial to clients it does not
	// recognize as browsers.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// User-facing messages for each failure class. The auth-redirect one is
// deliberately specific: it is the single most common misconfiguration and
// must not read like a generic network error.
const (
	MsgNotPublic     = "Spreadsheet access is not public. Re-deploy the Apps Script web app with access set to 'Anyone'."
	MsgInvalidHTML   = "Invalid response from Spreadsheet, likely a permission or script error"
	MsgParseFailed   = "Failed to parse JSON from Spreadsheet"
	MsgFetchFailed   = "Failed to fetch data from Spreadsheet"
	MsgSubmitFailed  = "Failed to send data to Spreadsheet"
	MsgMissingTarget = "Missing target URL"
)

var errNotPublic = errors.New(MsgNotPublic)

// AppendQuery joins extra query parameters onto base. Saved endpoint URLs
// may already carry their own query string, so the separator has to be
// picked per call.
func AppendQuery(base, params string) string {
	if strings.Contains(base, "?") {
		return base + "&" + params
	}
	return base + "?" + params
}

// Outcome is one classified GET result. Status is the HTTP status the
// proxy should answer with; JSON is only set when Status is 200.
type Outcome struct {
	Status int
	JSON   []byte
	ErrMsg string
	Raw    string // bounded excerpt of a non-JSON body
}

type Client struct {
	http *http.Client
	log  *logrus.Logger
}

func New(log *logrus.Logger) *Client {
	return &Client{
		// Redirects are followed; the final URL is inspected afterwards.
		http: &http.Client{Timeout: requestTimeout},
		log:  log,
	}
}

// isAuthRedirect detects that the endpoint bounced us to a Google login or
// consent page instead of serving the script output.
func isAuthRedirect(u *url.URL) bool {
	if u == nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == "accounts.google.com" ||
		strings.HasSuffix(host, ".accounts.google.com") ||
		strings.HasPrefix(host, "accounts.")
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > excerptLimit {
		s = s[:excerptLimit]
	}
	return strings.ToValidUTF8(s, "")
}

// Get fetches target and classifies the response. Classification order:
// auth redirect, valid JSON, HTML error page, unrecognized body. Network
// failures (DNS, refused, timeout) all land in the generic fetch error.
func (c *Client) Get(ctx context.Context, target string) Outcome {
	entry := c.log.WithFields(logrus.Fields{
		"request_id": uuid.NewString()[:8],
		"target":     target,
	})

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		entry.WithError(err).Warn("relay: bad target URL")
		return Outcome{Status: 500, ErrMsg: MsgFetchFailed}
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.http.Do(req)
	if err != nil {
		entry.WithError(err).Error("relay: GET failed")
		return Outcome{Status: 500, ErrMsg: MsgFetchFailed}
	}
	defer resp.Body.Close()

	if isAuthRedirect(resp.Request.URL) {
		entry.WithField("final_url", resp.Request.URL.String()).Warn("relay: redirected to login page")
		return Outcome{Status: 400, ErrMsg: MsgNotPublic}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		entry.WithError(err).Error("relay: reading body failed")
		return Outcome{Status: 500, ErrMsg: MsgFetchFailed}
	}

	trimmed := bytes.TrimSpace(body)
	if json.Valid(trimmed) && len(trimmed) > 0 {
		return Outcome{Status: 200, JSON: trimmed}
	}

	if len(trimmed) > 0 && trimmed[0] == '<' {
		entry.WithField("raw", excerpt(body)).Error("relay: HTML instead of JSON")
		return Outcome{Status: 502, ErrMsg: MsgInvalidHTML, Raw: excerpt(body)}
	}

	entry.WithField("raw", excerpt(body)).Error("relay: unparseable body")
	return Outcome{Status: 500, ErrMsg: MsgParseFailed, Raw: excerpt(body)}
}

// PostForm forwards form urlencoded, following redirects, and fails on any
// non-2xx upstream status. The upstream body is discarded: the sheet
// script's POST responses carry nothing the dashboard uses.
func (c *Client) PostForm(ctx context.Context, target string, form url.Values) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithError(err).WithField("target", target).Error("relay: POST failed")
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint:errcheck

	if isAuthRedirect(resp.Request.URL) {
		return errNotPublic
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sheet endpoint responded with status %d", resp.StatusCode)
	}
	return nil
}
