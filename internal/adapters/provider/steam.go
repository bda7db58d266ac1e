package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/selimbas/revquiz/internal/domain/review"
)

// Default Steam client configuration constants.
const (
	defaultReviewsBaseURL = "https://store.steampowered.com/appreviews"
	defaultDetailsBaseURL = "https://store.steampowered.com/api/appdetails"
	defaultLanguage       = "turkish"
	defaultReviewFilter   = "funny"
	defaultPageSize       = 100
	defaultTimeout        = 5 * time.Second

	userAgent = "revquiz/1.0"
)

// SteamClient implements Client against the Steam storefront JSON endpoints.
type SteamClient struct {
	httpClient     *http.Client
	reviewsBaseURL string
	detailsBaseURL string
	language       string
	reviewFilter   string
	pageSize       int
}

// SteamOption applies a configuration option to the SteamClient.
type SteamOption func(*SteamClient)

// WithHTTPClient sets a custom HTTP client, usually to change the timeout.
func WithHTTPClient(c *http.Client) SteamOption {
	return func(s *SteamClient) {
		if c != nil {
			s.httpClient = c
		}
	}
}

// WithReviewsBaseURL overrides the reviews endpoint, mostly for tests.
func WithReviewsBaseURL(u string) SteamOption {
	return func(s *SteamClient) {
		if u != "" {
			s.reviewsBaseURL = u
		}
	}
}

// WithDetailsBaseURL overrides the store details endpoint, mostly for tests.
func WithDetailsBaseURL(u string) SteamOption {
	return func(s *SteamClient) {
		if u != "" {
			s.detailsBaseURL = u
		}
	}
}

// WithLanguage sets the review language requested upstream.
func WithLanguage(lang string) SteamOption {
	return func(s *SteamClient) {
		if lang != "" {
			s.language = lang
		}
	}
}

// WithPageSize bounds how many raw reviews one fetch may return.
func WithPageSize(n int) SteamOption {
	return func(s *SteamClient) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) SteamOption {
	return func(s *SteamClient) {
		if d > 0 {
			s.httpClient.Timeout = d
		}
	}
}

// NewSteamClient creates a Steam storefront client with default endpoints.
func NewSteamClient(opts ...SteamOption) *SteamClient {
	s := &SteamClient{
		httpClient:     &http.Client{Timeout: defaultTimeout},
		reviewsBaseURL: defaultReviewsBaseURL,
		detailsBaseURL: defaultDetailsBaseURL,
		language:       defaultLanguage,
		reviewFilter:   defaultReviewFilter,
		pageSize:       defaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// reviewsResponse mirrors the appreviews payload. Only the fields the
// pipeline needs are decoded.
type reviewsResponse struct {
	Success int `json:"success"`
	Reviews []struct {
		Review  string `json:"review"`
		VotesUp int    `json:"votes_up"`
		Author  struct {
			PlaytimeForever int `json:"playtime_forever"`
		} `json:"author"`
	} `json:"reviews"`
}

// Reviews fetches one page of raw reviews for a title.
func (s *SteamClient) Reviews(ctx context.Context, appID int) ([]review.Raw, error) {
	endpoint := fmt.Sprintf("%s/%d?json=1&language=%s&filter=%s&num_per_page=%d",
		s.reviewsBaseURL, appID,
		url.QueryEscape(s.language), url.QueryEscape(s.reviewFilter), s.pageSize)

	var payload reviewsResponse
	if err := s.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	if payload.Success != 1 {
		return nil, fmt.Errorf("%w: appreviews success=%d", ErrUpstreamStatus, payload.Success)
	}

	raws := make([]review.Raw, 0, len(payload.Reviews))
	for _, r := range payload.Reviews {
		raws = append(raws, review.Raw{
			Text:            r.Review,
			PlaytimeMinutes: r.Author.PlaytimeForever,
			HelpfulVotes:    r.VotesUp,
		})
	}
	return raws, nil
}

// detailsResponse mirrors the appdetails payload, which is keyed by app id.
type detailsResponse map[string]struct {
	Success bool `json:"success"`
	Data    struct {
		Developers  []string `json:"developers"`
		ReleaseDate struct {
			Date string `json:"date"`
		} `json:"release_date"`
		Recommendations struct {
			Total int `json:"total"`
		} `json:"recommendations"`
	} `json:"data"`
}

// Details fetches store metadata for a title. Absent upstream fields are
// left at their zero values.
func (s *SteamClient) Details(ctx context.Context, appID int) (Details, error) {
	endpoint := fmt.Sprintf("%s?appids=%d&l=%s",
		s.detailsBaseURL, appID, url.QueryEscape(s.language))

	var payload detailsResponse
	if err := s.getJSON(ctx, endpoint, &payload); err != nil {
		return Details{}, err
	}

	entry, ok := payload[strconv.Itoa(appID)]
	if !ok || !entry.Success {
		return Details{}, fmt.Errorf("%w: appdetails has no data for %d", ErrUpstreamStatus, appID)
	}

	d := Details{
		ReleaseDate:     entry.Data.ReleaseDate.Date,
		Recommendations: entry.Data.Recommendations.Total,
	}
	if len(entry.Data.Developers) > 0 {
		d.Developer = entry.Data.Developers[0]
	}
	return d, nil
}

func (s *SteamClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d from %s", ErrUpstreamStatus, resp.StatusCode, endpoint)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrUpstreamPayload, err)
	}
	return nil
}
