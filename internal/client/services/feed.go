package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/dashshell/internal/common"
	"github.com/dmitrijs2005/dashshell/internal/logging"
	"github.com/dmitrijs2005/dashshell/internal/netx"
)

// Post is one item of the dashboard's recent activity list.
type Post struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}

type FeedStatus string

const (
	FeedLoading FeedStatus = "loading"
	FeedError   FeedStatus = "error"
	FeedLoaded  FeedStatus = "loaded"
)

// FeedState is what the dashboard page shows.
type FeedState struct {
	Status FeedStatus `json:"status"`
	Posts  []Post     `json:"posts,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// FeedService fetches the dashboard posts once per Refresh. Failures end in
// the error state; there is no retry.
type FeedService interface {
	Refresh(ctx context.Context) FeedState
	State() FeedState
}

type feedService struct {
	client *http.Client
	url    string
	limit  int
	logger logging.Logger

	mu    sync.RWMutex
	state FeedState
}

func NewFeedService(client *http.Client, endpoint string, limit int, logger logging.Logger) FeedService {
	if client == nil {
		client = http.DefaultClient
	}
	return &feedService{
		client: client,
		url:    endpoint,
		limit:  limit,
		logger: logger.With("component", "feed"),
		state:  FeedState{Status: FeedLoading},
	}
}

func (f *feedService) State() FeedState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state
}

func (f *feedService) Refresh(ctx context.Context) FeedState {
	f.set(FeedState{Status: FeedLoading})

	posts, err := f.fetch(ctx)
	if err != nil {
		f.logger.Warn(ctx, "posts fetch failed", "url", f.url, "error", err)
		return f.set(FeedState{Status: FeedError, Error: err.Error()})
	}
	return f.set(FeedState{Status: FeedLoaded, Posts: posts})
}

func (f *feedService) set(st FeedState) FeedState {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = st
	return st
}

func (f *feedService) fetch(ctx context.Context) ([]Post, error) {
	u, err := url.Parse(f.url)
	if err != nil {
		return nil, fmt.Errorf("posts url: %w", err)
	}
	if f.limit > 0 {
		q := u.Query()
		q.Set("_limit", strconv.Itoa(f.limit))
		u.RawQuery = q.Encode()
	}

	var posts []Post
	if err := netx.GetJSON(ctx, f.client, u.String(), &posts); err != nil {
		var se *netx.StatusError
		if errors.As(err, &se) {
			return nil, common.ErrFetchFailed
		}
		return nil, fmt.Errorf("posts: %w", err)
	}
	return posts, nil
}
