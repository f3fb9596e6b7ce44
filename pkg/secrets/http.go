package secrets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

var _ Service = (*HTTPSecretStore)(nil)

// HTTPSecretStore talks to a remote secret service that exposes every entry
// as a resource at {BaseURL}/{namespace}/{key}. Create and modify are
// conditional PUTs, so the server decides whether an entry exists.
type HTTPSecretStore struct {
	BaseURL        string
	Username       string
	Password       string
	Client         *http.Client
	MaxElapsedTime time.Duration
}

func NewHTTPSecretStore(baseURL, username, password string) *HTTPSecretStore {
	return &HTTPSecretStore{
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
		Username: username,
		Password: password,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
		MaxElapsedTime: 30 * time.Second,
	}
}

func (h *HTTPSecretStore) entryURL(namespace, key string) string {
	return h.BaseURL + "/" + url.PathEscape(namespace) + "/" + url.PathEscape(key)
}

// executeWithRetry returns the final response and the number of attempts made.
func (h *HTTPSecretStore) executeWithRetry(ctx context.Context, method, url string, body []byte, header http.Header) (*http.Response, int, error) {
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.MaxElapsedTime = h.MaxElapsedTime

	var attempt int
	var resp *http.Response

	operation := func() error {
		attempt++
		var reqBody io.Reader
		if body != nil {
			reqBody = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
		if err != nil {
			return backoff.Permanent(err)
		}

		if h.Username != "" {
			req.SetBasicAuth(h.Username, h.Password)
		}
		for k, v := range header {
			req.Header[k] = v
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/octet-stream")
		}

		resp, err = h.Client.Do(req)
		if err != nil {
			if isRetryableError(err) {
				logger.Debugf("Retrying %s %s, attempt %d, error: %v", method, url, attempt, err)
				return err
			}
			return backoff.Permanent(err)
		}

		if isRetryableStatus(resp.StatusCode) {
			logger.Debugf("Retrying %s %s, attempt %d, status: %d", method, url, attempt, resp.StatusCode)
			resp.Body.Close()
			return fmt.Errorf("server error: %d", resp.StatusCode)
		}

		return nil
	}

	err := backoff.Retry(operation, backoff.WithContext(expBackoff, ctx))
	if err != nil {
		return nil, attempt, err
	}

	return resp, attempt, nil
}

func isRetryableError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "connection reset") ||
		strings.Contains(err.Error(), "EOF") {
		return true
	}
	return false
}

func isRetryableStatus(code int) bool {
	return code >= 500 || code == http.StatusTooManyRequests || code == http.StatusRequestTimeout
}

func (h *HTTPSecretStore) put(ctx context.Context, namespace, key string, data []byte, header http.Header) (int, int, error) {
	u := h.entryURL(namespace, key)
	resp, attempts, err := h.executeWithRetry(ctx, http.MethodPut, u, data, header)
	if err != nil {
		return 0, attempts, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, attempts, nil
}

// Add creates the entry with If-None-Match: *. When the create had to be
// retried, a rejection may come from an earlier attempt that the server
// committed before its response was lost. That case is resolved by reading
// the entry back: identical contents count as created.
func (h *HTTPSecretStore) Add(ctx context.Context, namespace, key string, data []byte) error {
	code, attempts, err := h.put(ctx, namespace, key, data, http.Header{"If-None-Match": {"*"}})
	if err != nil {
		return err
	}
	switch code {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	case http.StatusPreconditionFailed, http.StatusConflict:
		if attempts > 1 && h.holds(ctx, namespace, key, data) {
			logger.Debugf("Create of %s/%s was committed by an earlier attempt", namespace, key)
			return nil
		}
		return ErrDuplicateItem
	}
	return fmt.Errorf("failed to create %s/%s: status %d", namespace, key, code)
}

func (h *HTTPSecretStore) holds(ctx context.Context, namespace, key string, data []byte) bool {
	current, err := h.FindOne(ctx, namespace, key)
	if err != nil {
		logger.Debugf("Cannot verify %s/%s after retried create: %v", namespace, key, err)
		return false
	}
	return bytes.Equal(current, data)
}

func (h *HTTPSecretStore) Modify(ctx context.Context, namespace, key string, data []byte) error {
	code, _, err := h.put(ctx, namespace, key, data, http.Header{"If-Match": {"*"}})
	if err != nil {
		return err
	}
	switch code {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	case http.StatusPreconditionFailed, http.StatusNotFound:
		return ErrItemNotFound
	}
	return fmt.Errorf("failed to modify %s/%s: status %d", namespace, key, code)
}

func (h *HTTPSecretStore) FindOne(ctx context.Context, namespace, key string) ([]byte, error) {
	u := h.entryURL(namespace, key)
	resp, _, err := h.executeWithRetry(ctx, http.MethodGet, u, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return io.ReadAll(resp.Body)
	case http.StatusNotFound:
		return nil, ErrItemNotFound
	}
	return nil, fmt.Errorf("failed to get %s/%s: %s", namespace, key, resp.Status)
}

func (h *HTTPSecretStore) Remove(ctx context.Context, namespace, key string) error {
	u := h.entryURL(namespace, key)
	resp, _, err := h.executeWithRetry(ctx, http.MethodDelete, u, nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrItemNotFound
	}
	return fmt.Errorf("failed to delete %s/%s: %s", namespace, key, resp.Status)
}
