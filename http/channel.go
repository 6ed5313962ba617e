package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/arenadl"
)

// DefaultBaseURL is the Are.na API root.
const DefaultBaseURL = "https://api.are.na/v2"

// DefaultAPITimeout is the default timeout for channel page requests.
const DefaultAPITimeout = 30 * time.Second

// Ensure ChannelService implements arenadl.ChannelService at compile time.
var _ arenadl.ChannelService = (*ChannelService)(nil)

// ChannelService reads channel contents from the Are.na API.
type ChannelService struct {
	client  *http.Client
	baseURL string
	token   string
	perPage int
	timeout time.Duration
}

// ChannelOption configures a ChannelService.
type ChannelOption func(*ChannelService)

// WithBaseURL overrides the API root. Used by tests.
func WithBaseURL(baseURL string) ChannelOption {
	return func(s *ChannelService) {
		s.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithToken sets the bearer token sent with every request.
// An empty token sends no Authorization header.
func WithToken(token string) ChannelOption {
	return func(s *ChannelService) {
		s.token = token
	}
}

// WithPerPage asks the API for a specific page size.
// By default the API decides (currently 50).
func WithPerPage(n int) ChannelOption {
	return func(s *ChannelService) {
		s.perPage = n
	}
}

// WithAPITimeout sets the timeout for page requests.
func WithAPITimeout(d time.Duration) ChannelOption {
	return func(s *ChannelService) {
		s.timeout = d
	}
}

// NewChannelService creates a new ChannelService.
func NewChannelService(opts ...ChannelOption) *ChannelService {
	s := &ChannelService{
		baseURL: DefaultBaseURL,
		timeout: DefaultAPITimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.client = &http.Client{
		Timeout: s.timeout,
	}

	return s
}

// contentsResponse is the wire format of GET /channels/{slug}/contents.
type contentsResponse struct {
	Contents []blockJSON `json:"contents"`
}

type blockJSON struct {
	ID    int        `json:"id"`
	Class string     `json:"class"`
	Title string     `json:"title"`
	Image *imageJSON `json:"image"`
}

type imageJSON struct {
	Original *struct {
		URL string `json:"url"`
	} `json:"original"`
}

// toBlock converts the wire format into the closed Block variant.
func (b blockJSON) toBlock() arenadl.Block {
	if b.Class == "Image" && b.Image != nil && b.Image.Original != nil && b.Image.Original.URL != "" {
		return &arenadl.ImageBlock{
			ID:        b.ID,
			Title:     b.Title,
			SourceURL: b.Image.Original.URL,
		}
	}
	return &arenadl.OtherBlock{ID: b.ID, Kind: b.Class}
}

// FetchPage retrieves one page of the channel's contents.
func (s *ChannelService) FetchPage(ctx context.Context, channel string, page int) (*arenadl.ContentPage, error) {
	if channel == "" {
		return nil, arenadl.Errorf(arenadl.EINVALID, "channel required")
	}
	if page < 1 {
		return nil, arenadl.Errorf(arenadl.EINVALID, "page must be positive, got %d", page)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.pageURL(channel, page), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, fmt.Sprintf("channel %q page %d", channel, page))
	}

	var body contentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, arenadl.Errorf(arenadl.EINTERNAL, "channel %q page %d: malformed response: %v", channel, page, err)
	}

	blocks := make([]arenadl.Block, 0, len(body.Contents))
	for _, b := range body.Contents {
		blocks = append(blocks, b.toBlock())
	}

	return &arenadl.ContentPage{Number: page, Blocks: blocks}, nil
}

func (s *ChannelService) pageURL(channel string, page int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if s.perPage > 0 {
		q.Set("per", strconv.Itoa(s.perPage))
	}
	return s.baseURL + "/channels/" + url.PathEscape(channel) + "/contents?" + q.Encode()
}
