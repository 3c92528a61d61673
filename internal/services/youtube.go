package services

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/xelyqor/xelyqor-backend/internal/platform/logger"
)

// ErrNoCaptions means the video has no usable caption track. The message is
// shown to the user as remediation.
var ErrNoCaptions = errors.New("No transcript found. Please use the 'Paste Transcript' option instead. Get a transcript from: https://tactiq.io or https://downsub.com")

// YouTubeService fetches video captions through the public timedtext API.
// Preference order: manually created English track, auto-generated English
// track, then whatever track exists.
type YouTubeService interface {
	ExtractTranscript(ctx context.Context, videoURL string) (string, error)
}

type youtubeService struct {
	log        *logger.Logger
	httpClient *http.Client
	baseURL    string
}

func NewYouTubeService(baseLog *logger.Logger) YouTubeService {
	return &youtubeService{
		log:        baseLog.With("service", "YouTubeService"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://www.youtube.com",
	}
}

var videoIDRe = regexp.MustCompile(`(?:v=|/v/|youtu\.be/|/embed/)([a-zA-Z0-9_-]{11})`)

// VideoID extracts the 11-character video id from the common URL shapes.
func VideoID(videoURL string) (string, bool) {
	m := videoIDRe.FindStringSubmatch(videoURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func (s *youtubeService) ExtractTranscript(ctx context.Context, videoURL string) (string, error) {
	videoID, ok := VideoID(videoURL)
	if !ok {
		return "", errors.New("Could not extract YouTube video ID from URL.")
	}

	tracks, err := s.listTracks(ctx, videoID)
	if err != nil {
		return "", fmt.Errorf("%w (listing caption tracks: %v)", ErrNoCaptions, err)
	}
	track := pickTrack(tracks)
	if track == nil {
		return "", ErrNoCaptions
	}

	transcript, err := s.fetchTrack(ctx, videoID, *track)
	if err != nil {
		return "", fmt.Errorf("%w (fetching captions: %v)", ErrNoCaptions, err)
	}
	if strings.TrimSpace(transcript) == "" {
		return "", ErrNoCaptions
	}
	return transcript, nil
}

type captionTrack struct {
	LangCode string `xml:"lang_code,attr"`
	Kind     string `xml:"kind,attr"`
	Name     string `xml:"name,attr"`
}

type trackList struct {
	Tracks []captionTrack `xml:"track"`
}

func (s *youtubeService) listTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	listURL := fmt.Sprintf("%s/api/timedtext?type=list&v=%s", s.baseURL, url.QueryEscape(videoID))
	body, err := s.get(ctx, listURL)
	if err != nil {
		return nil, err
	}

	var list trackList
	if err := xml.Unmarshal(body, &list); err != nil {
		return nil, err
	}
	return list.Tracks, nil
}

func pickTrack(tracks []captionTrack) *captionTrack {
	for i := range tracks {
		if tracks[i].LangCode == "en" && tracks[i].Kind == "" {
			return &tracks[i]
		}
	}
	for i := range tracks {
		if tracks[i].LangCode == "en" && tracks[i].Kind == "asr" {
			return &tracks[i]
		}
	}
	if len(tracks) > 0 {
		return &tracks[0]
	}
	return nil
}

type transcriptXML struct {
	Texts []string `xml:"text"`
}

func (s *youtubeService) fetchTrack(ctx context.Context, videoID string, track captionTrack) (string, error) {
	fetchURL := fmt.Sprintf("%s/api/timedtext?v=%s&lang=%s", s.baseURL, url.QueryEscape(videoID), url.QueryEscape(track.LangCode))
	if track.Kind != "" {
		fetchURL += "&kind=" + url.QueryEscape(track.Kind)
	}
	if track.Name != "" {
		fetchURL += "&name=" + url.QueryEscape(track.Name)
	}

	body, err := s.get(ctx, fetchURL)
	if err != nil {
		return "", err
	}

	var doc transcriptXML
	if err := xml.Unmarshal(body, &doc); err != nil {
		return "", err
	}

	parts := make([]string, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		t = strings.TrimSpace(html.UnescapeString(t))
		if t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " "), nil
}

func (s *youtubeService) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timedtext status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
