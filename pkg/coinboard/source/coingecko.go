package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/komsit37/coinboard/pkg/coinboard/types"
)

const (
	DefaultBaseURL = "https://api.coingecko.com/api/v3"
	// Prices are always quoted in USD, ordered by market cap.
	Currency = "usd"
	Order    = "market_cap_desc"
)

// ChangeWindows are the percentage-change windows requested from the listing.
var ChangeWindows = []string{"1h", "24h", "7d"}

// CoinGecko loads the /coins/markets listing in a single request.
type CoinGecko struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
}

func NewCoinGecko(baseURL string, timeout time.Duration) *CoinGecko {
	return &CoinGecko{BaseURL: baseURL, Timeout: timeout}
}

// URL builds the listing request URL.
func (s *CoinGecko) URL() (string, error) {
	base := s.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimSuffix(base, "/") + "/coins/markets")
	if err != nil {
		return "", fmt.Errorf("%w: base url %q: %w", ErrFetch, base, err)
	}
	q := u.Query()
	q.Set("vs_currency", Currency)
	q.Set("price_change_percentage", strings.Join(ChangeWindows, ","))
	q.Set("order", Order)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (s *CoinGecko) Load(ctx context.Context) ([]types.MarketRecord, error) {
	endpoint, err := s.URL()
	if err != nil {
		return nil, err
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: new request: %w", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrFetch, endpoint, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrFetch, err)
	}
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: GET %s: status %d: %s", ErrFetch, endpoint, res.StatusCode, apiMessage(body))
	}

	records, err := decodeListing(body)
	if err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrFetch, err)
	}
	return records, nil
}

// apiMessage pulls the error text out of a CoinGecko error body, falling back
// to the raw (trimmed) body.
func apiMessage(body []byte) string {
	var dto struct {
		Error  string `json:"error"`
		Status struct {
			ErrorMessage string `json:"error_message"`
		} `json:"status"`
	}
	if err := json.Unmarshal(body, &dto); err == nil {
		if msg := firstNonEmpty(dto.Error, dto.Status.ErrorMessage); msg != "" {
			return msg
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
