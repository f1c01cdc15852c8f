package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// ClientConfig configures the HTTP status client.
type ClientConfig struct {
	BaseURL string
	Version string // SDK version the app was built against
	Device  string // model identifier of the current device
	Timeout time.Duration
	Retries int
	Logger  zerolog.Logger
}

// Client answers the status queries against the SDK backend over HTTP.
// It does not implement Runner; recording and inference stay on device.
type Client struct {
	cfg  ClientConfig
	http *retryablehttp.Client
	log  zerolog.Logger
}

// NewClient builds a Client with retrying transport.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.Retries
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.HTTPClient.Timeout = cfg.Timeout
	rc.Logger = leveledLogger{cfg.Logger}

	return &Client{cfg: cfg, http: rc, log: cfg.Logger}
}

type devicesResponse struct {
	SupportedDevices []string `json:"supported_devices"`
}

type versionsResponse struct {
	SupportedVersions []string `json:"supported_versions"`
}

// CheckDeviceSupport fetches the supported model list and checks the current device against it.
func (c *Client) CheckDeviceSupport(ctx context.Context) (DeviceSupport, error) {
	var body devicesResponse
	if err := c.get(ctx, "/v1/devices", "", &body); err != nil {
		c.log.Warn().Err(err).Msg("device support check failed")
		return DeviceSupport{}, err
	}
	return DeviceSupport{
		IsCurrentSupported: contains(body.SupportedDevices, c.cfg.Device),
		CurrentDevice:      c.cfg.Device,
		SupportedDevices:   body.SupportedDevices,
	}, nil
}

// CheckSDKVersionSupport fetches the versions the backend accepts for apiKey.
func (c *Client) CheckSDKVersionSupport(ctx context.Context, apiKey string) (VersionSupport, error) {
	var body versionsResponse
	if err := c.get(ctx, "/v1/sdk/versions", apiKey, &body); err != nil {
		c.log.Warn().Err(err).Msg("sdk version check failed")
		return VersionSupport{}, err
	}
	ok := contains(body.SupportedVersions, c.cfg.Version)
	if !ok {
		c.log.Info().
			Str("version", c.cfg.Version).
			Strs("supported", body.SupportedVersions).
			Msg("current sdk version is not supported")
	}
	return VersionSupport{IsCurrentVersionSupported: ok, SupportedVersions: body.SupportedVersions}, nil
}

func (c *Client) get(ctx context.Context, path, apiKey string, out any) error {
	if c.cfg.BaseURL == "" {
		return errors.New("sdk: base url not configured")
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Sdk-Version", c.cfg.Version)
	if apiKey != "" {
		req.Header.Set("X-Api-Key", apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// leveledLogger routes retryablehttp logging into zerolog at debug/warn.
type leveledLogger struct {
	l zerolog.Logger
}

func (z leveledLogger) Error(msg string, kv ...interface{}) { z.l.Error().Fields(kv).Msg(msg) }
func (z leveledLogger) Info(msg string, kv ...interface{})  { z.l.Debug().Fields(kv).Msg(msg) }
func (z leveledLogger) Debug(msg string, kv ...interface{}) { z.l.Debug().Fields(kv).Msg(msg) }
func (z leveledLogger) Warn(msg string, kv ...interface{})  { z.l.Warn().Fields(kv).Msg(msg) }
