package upload

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/espembed/docsembed/pkg/errors"
	"github.com/espembed/docsembed/pkg/httputil"
)

// Uploader is the storage boundary: push a byte stream to a destination
// path, get a content digest acknowledgment back.
type Uploader interface {
	Upload(ctx context.Context, src io.Reader, dest string) (*Ack, error)
}

// Environment variables configuring the storage client.
const (
	EnvStorageURL       = "STORAGE_URL"
	EnvStorageToken     = "STORAGE_TOKEN"
	EnvStorageURLPrefix = "STORAGE_URL_PREFIX"
	EnvStorageDestRoot  = "STORAGE_DEST_ROOT"
	EnvStorageVerifySSL = "STORAGE_VERIFY_SSL"
)

// Config holds the storage server connection settings.
type Config struct {
	URL       string // upload endpoint accepting PUT with a ?dest= parameter
	Token     string // bearer token
	URLPrefix string // public URL prefix the uploads are served from
	DestRoot  string // destination root directory on the server
	VerifySSL bool
}

// ConfigFromEnv builds a Config from the STORAGE_* environment variables.
// STORAGE_URL and STORAGE_TOKEN are required.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		URL:       os.Getenv(EnvStorageURL),
		Token:     os.Getenv(EnvStorageToken),
		URLPrefix: strings.Trim(os.Getenv(EnvStorageURLPrefix), "/"),
		DestRoot:  strings.Trim(os.Getenv(EnvStorageDestRoot), "/"),
		VerifySSL: true,
	}
	if cfg.URL == "" || cfg.Token == "" {
		return Config{}, errors.New(errors.ErrCodeInvalidInput,
			"environment variables %s and %s must be set", EnvStorageURL, EnvStorageToken)
	}
	if cfg.DestRoot == "" {
		cfg.DestRoot = "gen"
	}
	switch strings.TrimSpace(os.Getenv(EnvStorageVerifySSL)) {
	case "0", "false", "False", "no":
		cfg.VerifySSL = false
	}
	return cfg, nil
}

// Client uploads files to the storage server over HTTP PUT, tagging each
// request with a correlation id and verifying the server-reported digest
// against the locally computed one.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a storage client.
func NewClient(cfg Config) *Client {
	transport := http.DefaultTransport
	if !cfg.VerifySSL {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Transport: transport, Timeout: 10 * time.Minute},
	}
}

// serverAck is the JSON body the storage server answers with.
type serverAck struct {
	OK     bool   `json:"ok"`
	SHA256 string `json:"sha256"`
	Bytes  int64  `json:"bytes"`
	Error  string `json:"error"`
}

// Upload implements Uploader with a single PUT. The stream is hashed while
// it is sent; a digest mismatch with the acknowledgment is an upload failure.
func (c *Client) Upload(ctx context.Context, src io.Reader, dest string) (*Ack, error) {
	hr := NewHashReader(src)

	u, err := url.Parse(c.cfg.URL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "storage URL")
	}
	q := u.Query()
	q.Set("dest", dest)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u.String(), hr)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build upload request")
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "upload %s", dest))
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode != http.StatusOK {
		err := errors.New(errors.ErrCodeUploadFailed, "upload failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
		if httputil.IsRetryableStatus(resp.StatusCode) {
			return nil, httputil.Retryable(err)
		}
		return nil, err
	}

	var ack serverAck
	if err := json.Unmarshal(body, &ack); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUploadFailed, err, "invalid response from server")
	}
	if !ack.OK {
		return nil, errors.New(errors.ErrCodeUploadFailed, "server reported error: %s", ack.Error)
	}

	local := hr.Sum()
	if ack.SHA256 != "" && ack.SHA256 != local {
		return nil, errors.New(errors.ErrCodeUploadFailed,
			"hash mismatch for %s: local=%s server=%s", dest, local, ack.SHA256)
	}
	if ack.SHA256 == "" {
		ack.SHA256 = local
	}
	if ack.Bytes == 0 {
		ack.Bytes = hr.BytesRead()
	}
	return &Ack{SHA256: ack.SHA256, Bytes: ack.Bytes}, nil
}

// UploadFile uploads a local file, retrying transient failures with backoff.
// The file is reopened for each attempt so the stream restarts from zero.
func (c *Client) UploadFile(ctx context.Context, path, dest string) (*Ack, error) {
	var ack *Ack
	err := httputil.RetryWithBackoff(ctx, func() error {
		f, err := os.Open(path)
		if err != nil {
			return errors.Wrap(errors.ErrCodeMissingArtifact, err, "open %s", path)
		}
		defer f.Close()

		ack, err = c.Upload(ctx, f, dest)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ack, nil
}

// Dest builds the destination path for a local file relative to the project
// directory: <url-prefix>/<dest-root>/<relative path>.
func (c *Client) Dest(rel string) string {
	parts := []string{}
	if c.cfg.URLPrefix != "" {
		parts = append(parts, c.cfg.URLPrefix)
	}
	parts = append(parts, c.cfg.DestRoot, filepath.ToSlash(rel))
	return strings.Join(parts, "/")
}

// String describes the client's endpoint for log output.
func (c *Client) String() string {
	return fmt.Sprintf("storage %s (dest root %s)", c.cfg.URL, c.cfg.DestRoot)
}

// Ensure Client implements Uploader.
var _ Uploader = (*Client)(nil)
