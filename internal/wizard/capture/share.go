package capture

import (
	"fmt"
	"net/url"
	"time"

	"bedrot-sim/internal/wizard/models"
	"bedrot-sim/internal/wizard/scoring"
)

// ============================================================
// Share
// ============================================================

const (
	ShareTitle    = "Bed Rot Simulator"
	tweetIntent   = "https://twitter.com/intent/tweet"
	fileExtension = ".png"
)

type Share struct {
	Title     string `json:"title"`
	Text      string `json:"text"`
	URL       string `json:"url"`
	IntentURL string `json:"intent_url"`
	FileName  string `json:"file_name"`
}

// ShareIntent собирает подпись и ссылку для публикации результата.
func ShareIntent(stats models.Stats, siteURL string, now time.Time) Share {
	text := scoring.Caption(stats)

	q := url.Values{}
	q.Set("text", text)
	if siteURL != "" {
		q.Set("url", siteURL)
	}

	return Share{
		Title:     ShareTitle,
		Text:      text,
		URL:       siteURL,
		IntentURL: tweetIntent + "?" + q.Encode(),
		FileName:  FileName(now),
	}
}

// FileName - имя файла экспорта вида bed-rot-sim-<unix-ms>.png.
func FileName(now time.Time) string {
	return fmt.Sprintf("bed-rot-sim-%d%s", now.UnixMilli(), fileExtension)
}
