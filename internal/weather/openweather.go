package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/agalitsyn/secret"
	"github.com/go-pkgz/lgr"
)

const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

const (
	UnitsMetric   = "metric"
	UnitsImperial = "imperial"
	UnitsStandard = "standard"
)

const incompleteData = "Incomplete weather data received."

func ValidUnits(units string) bool {
	switch units {
	case UnitsMetric, UnitsImperial, UnitsStandard:
		return true
	default:
		return false
	}
}

type Config struct {
	BaseURL string
	APIKey  secret.String
	Units   string
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	log        lgr.L
}

func NewClient(cfg Config, httpClient *http.Client, log lgr.L) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Units == "" {
		cfg.Units = UnitsMetric
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		log:        log,
	}
}

type currentWeather struct {
	Weather []struct {
		Description *string `json:"description"`
	} `json:"weather"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Name *string `json:"name"`
}

// GetWeather returns a description of the current weather in city. A provider
// answer that is not a success, or that can not be decoded, is turned into a
// fallback description. Only a failure to talk to the provider at all is
// returned as an error.
func (c *Client) GetWeather(ctx context.Context, city string) (string, error) {
	u, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("could not parse weather base url: %w", err)
	}
	q := u.Query()
	q.Set("q", city)
	q.Set("appid", c.cfg.APIKey.Unmask())
	q.Set("units", c.cfg.Units)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("could not build weather request: %w", err)
	}

	c.log.Logf("[DEBUG] requesting weather for city=%q", city)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error carries the request url, api key included.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return "", fmt.Errorf("could not fetch weather for %q: %w", city, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Logf("[WARN] weather provider answered %d for city=%q", resp.StatusCode, city)
		return fmt.Sprintf("Unable to retrieve weather data for %s. Error: %s", city, reasonPhrase(resp)), nil
	}

	var data currentWeather
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		c.log.Logf("[WARN] could not decode weather response for city=%q: %v", city, err)
		return incompleteData, nil
	}
	return c.describe(data), nil
}

func (c *Client) describe(data currentWeather) string {
	if len(data.Weather) == 0 || data.Weather[0].Description == nil ||
		data.Wind == nil || data.Wind.Speed == nil || data.Name == nil {
		return incompleteData
	}

	return fmt.Sprintf("Description: %s, Wind Speed: %s %s, City: %s",
		*data.Weather[0].Description,
		strconv.FormatFloat(*data.Wind.Speed, 'f', -1, 64),
		windUnit(c.cfg.Units),
		*data.Name,
	)
}

func windUnit(units string) string {
	if units == UnitsImperial {
		return "mph"
	}
	return "m/s"
}

func reasonPhrase(resp *http.Response) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return resp.Status
}
