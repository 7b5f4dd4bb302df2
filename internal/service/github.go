package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"devconnector/internal/cache"
	"devconnector/internal/model"
)

const defaultGithubAPIBase = "https://api.github.com"

// GithubService proxies the GitHub repo-list lookup for a profile page.
//
// The client carries an explicit timeout so a hung GitHub call can never
// stall a request indefinitely. Responses are cached in Redis for a few
// minutes when a cache is configured; lookups work uncached otherwise.
type GithubService struct {
	httpClient   *http.Client
	apiBase      string
	clientID     string
	clientSecret string
	cache        cache.GithubCache
}

// NewGithubService creates the GitHub proxy. cache may be nil.
func NewGithubService(clientID, clientSecret string, githubCache cache.GithubCache) *GithubService {
	return &GithubService{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		apiBase:      defaultGithubAPIBase,
		clientID:     clientID,
		clientSecret: clientSecret,
		cache:        githubCache,
	}
}

// GetRepos returns the five most recent public repos for a GitHub username.
// An unknown username yields model.ErrGithubUserNotFound.
func (s *GithubService) GetRepos(ctx context.Context, username string) ([]model.GithubRepo, error) {
	if s.cache != nil {
		payload, found, err := s.cache.Get(ctx, username)
		if err != nil {
			log.Printf("[GithubService] Cache read failed for %q: %v", username, err)
		} else if found {
			var repos []model.GithubRepo
			if err := json.Unmarshal(payload, &repos); err == nil {
				return repos, nil
			}
		}
	}

	reqURL := fmt.Sprintf("%s/users/%s/repos", s.apiBase, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build github request: %w", err)
	}

	q := req.URL.Query()
	q.Set("per_page", "5")
	q.Set("sort", "created:asc")
	if s.clientID != "" && s.clientSecret != "" {
		q.Set("client_id", s.clientID)
		q.Set("client_secret", s.clientSecret)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", "devconnector")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, model.ErrGithubUserNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github responded with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read github response: %w", err)
	}

	var repos []model.GithubRepo
	if err := json.Unmarshal(body, &repos); err != nil {
		return nil, fmt.Errorf("decode github response: %w", err)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(repos); err == nil {
			if err := s.cache.Set(ctx, username, payload); err != nil {
				log.Printf("[GithubService] Cache write failed for %q: %v", username, err)
			}
		}
	}

	return repos, nil
}
