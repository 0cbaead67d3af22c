package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/wordowl-games/wordowl/internal/logging"
)

var (
	AuthErr    = fmt.Errorf("invalid or expired api key")
	RequestErr = fmt.Errorf("request failed")
)

type Config struct {
	BaseURL string
	Timeout time.Duration
	APIKey  string
}

func NewClient(config Config) *Client {
	return &Client{
		baseURL: config.BaseURL,
		apiKey:  config.APIKey,
		http:    &http.Client{Timeout: config.Timeout},
	}
}

// Client talks to the remote puzzle service. Every call is one
// request/response exchange keyed by the registered device identity.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func (c *Client) SetAPIKey(key string) {
	c.apiKey = key
}

func (c *Client) request(ctx context.Context, method, endpoint string, body interface{}, params url.Values, out interface{}) error {
	logger := logging.FromContext(ctx).Named("api.request")

	u := c.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("new request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Errorf("api request failed: %v", err)
		return fmt.Errorf("%w: %v", RequestErr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return AuthErr
	}

	if resp.StatusCode >= 400 {
		var apiErr errorResult
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Detail == "" {
			apiErr.Detail = resp.Status
		}
		return fmt.Errorf("%w: %s", RequestErr, apiErr.Detail)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %v", err)
		}
	}

	return nil
}

func (c *Client) RegisterDevice(ctx context.Context, deviceName string) (RegisterDeviceResult, error) {
	var result RegisterDeviceResult
	body := map[string]string{"device_name": deviceName}
	if err := c.request(ctx, http.MethodPost, "/auth/register-device", body, nil, &result); err != nil {
		return result, fmt.Errorf("register device: %w", err)
	}

	c.apiKey = result.APIKey
	return result, nil
}

func (c *Client) SetDisplayName(ctx context.Context, displayName string) (User, error) {
	var result User
	body := map[string]string{"display_name": displayName}
	if err := c.request(ctx, http.MethodPut, "/users/me", body, nil, &result); err != nil {
		return result, fmt.Errorf("set display name: %w", err)
	}

	return result, nil
}

func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	var result User
	if err := c.request(ctx, http.MethodGet, "/users/me", nil, nil, &result); err != nil {
		return result, fmt.Errorf("current user: %w", err)
	}

	return result, nil
}

func (c *Client) DailyPuzzle(ctx context.Context, bonus bool) (Puzzle, error) {
	var result Puzzle
	var params url.Values
	if bonus {
		params = url.Values{}
		params.Set("bonus", "true")
	}
	if err := c.request(ctx, http.MethodGet, "/puzzles/today", nil, params, &result); err != nil {
		return result, fmt.Errorf("daily puzzle: %w", err)
	}

	return result, nil
}

func (c *Client) PuzzleByID(ctx context.Context, puzzleID string) (Puzzle, error) {
	var result Puzzle
	if err := c.request(ctx, http.MethodGet, "/puzzles/"+puzzleID, nil, nil, &result); err != nil {
		return result, fmt.Errorf("puzzle by id: %w", err)
	}

	return result, nil
}

func (c *Client) StartGame(ctx context.Context, puzzleID string) (SessionStart, error) {
	var result SessionStart
	if err := c.request(ctx, http.MethodPost, "/puzzles/"+puzzleID+"/start", nil, nil, &result); err != nil {
		return result, fmt.Errorf("start game: %w", err)
	}

	return result, nil
}

func (c *Client) CheckWord(ctx context.Context, puzzleID, sessionID string, wordIndex int, answer string) (CheckWordResult, error) {
	var result CheckWordResult
	body := map[string]interface{}{
		"session_id": sessionID,
		"word_index": wordIndex,
		"answer":     answer,
	}
	if err := c.request(ctx, http.MethodPost, "/puzzles/"+puzzleID+"/check", body, nil, &result); err != nil {
		return result, fmt.Errorf("check word: %w", err)
	}

	return result, nil
}

func (c *Client) CheckTheme(ctx context.Context, puzzleID, sessionID, themeGuess string) (CheckThemeResult, error) {
	var result CheckThemeResult
	body := map[string]interface{}{
		"session_id":  sessionID,
		"theme_guess": themeGuess,
	}
	if err := c.request(ctx, http.MethodPost, "/puzzles/"+puzzleID+"/check-theme", body, nil, &result); err != nil {
		return result, fmt.Errorf("check theme: %w", err)
	}

	return result, nil
}

func (c *Client) RevealLetter(ctx context.Context, puzzleID, sessionID string, wordIndex int) (RevealResult, error) {
	var result RevealResult
	body := map[string]interface{}{
		"session_id": sessionID,
		"word_index": wordIndex,
	}
	if err := c.request(ctx, http.MethodPost, "/puzzles/"+puzzleID+"/reveal", body, nil, &result); err != nil {
		return result, fmt.Errorf("reveal letter: %w", err)
	}

	return result, nil
}

func (c *Client) SubmitScore(ctx context.Context, submission ScoreSubmission) (ScoreResult, error) {
	var result ScoreResult
	if err := c.request(ctx, http.MethodPost, "/scores/submit", submission, nil, &result); err != nil {
		return result, fmt.Errorf("submit score: %w", err)
	}

	return result, nil
}

func (c *Client) Leaderboard(ctx context.Context, period string, limit int) (Leaderboard, error) {
	var result Leaderboard
	params := url.Values{}
	params.Set("period", period)
	params.Set("limit", strconv.Itoa(limit))
	if err := c.request(ctx, http.MethodGet, "/leaderboard", nil, params, &result); err != nil {
		return result, fmt.Errorf("leaderboard: %w", err)
	}

	return result, nil
}

func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var result Stats
	if err := c.request(ctx, http.MethodGet, "/users/me/stats", nil, nil, &result); err != nil {
		return result, fmt.Errorf("stats: %w", err)
	}

	return result, nil
}

func (c *Client) Games(ctx context.Context, limit int, gameType string) (GamesPage, error) {
	var result GamesPage
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	if gameType != "" {
		params.Set("game_type", gameType)
	}
	if err := c.request(ctx, http.MethodGet, "/users/me/games", nil, params, &result); err != nil {
		return result, fmt.Errorf("games: %w", err)
	}

	return result, nil
}

func (c *Client) Healthy(ctx context.Context) bool {
	var result healthResult
	if err := c.request(ctx, http.MethodGet, "/health", nil, nil, &result); err != nil {
		return false
	}

	return result.Status == "healthy"
}
