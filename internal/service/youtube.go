package service

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// YouTubeService fetches video transcripts from YouTube's timedtext endpoint
type YouTubeService struct {
	baseURL string
	client  *http.Client
}

// NewYouTubeService creates a new YouTubeService instance
func NewYouTubeService() *YouTubeService {
	return &YouTubeService{
		baseURL: "https://video.google.com/timedtext",
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?v=([^&\s]+)`),
	regexp.MustCompile(`youtu\.be/([^?\s]+)`),
	regexp.MustCompile(`youtube\.com/embed/([^?\s]+)`),
}

// ExtractVideoID extracts a YouTube video ID from a URL, or returns the
// input unchanged if it already looks like a bare ID
func ExtractVideoID(urlOrID string) string {
	urlOrID = strings.TrimSpace(urlOrID)
	if urlOrID == "" {
		return ""
	}
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(urlOrID); m != nil {
			return m[1]
		}
	}
	return urlOrID
}

type timedText struct {
	Texts []struct {
		Value string `xml:",chardata"`
	} `xml:"text"`
}

// GetTranscript fetches the English transcript of a video
func (s *YouTubeService) GetTranscript(ctx context.Context, videoURLOrID string) (string, error) {
	videoID := ExtractVideoID(videoURLOrID)
	if videoID == "" {
		return "", fmt.Errorf("no valid video URL or ID provided")
	}

	endpoint := fmt.Sprintf("%s?lang=en&v=%s", s.baseURL, url.QueryEscape(videoID))
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch transcript for video %s: %w", videoID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read transcript response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcript request for video %s failed with status %d", videoID, resp.StatusCode)
	}

	var parsed timedText
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse transcript for video %s: %w", videoID, err)
	}
	if len(parsed.Texts) == 0 {
		return "", fmt.Errorf("no transcript available for video %s", videoID)
	}

	var parts []string
	for _, t := range parsed.Texts {
		text := strings.TrimSpace(html.UnescapeString(t.Value))
		if text != "" {
			parts = append(parts, text)
		}
	}

	return fmt.Sprintf("Transcript for video %s:\n\n%s", videoID, strings.Join(parts, " ")), nil
}
