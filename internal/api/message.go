package api

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/bytedance/sonic"
	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

const maxMessageLen = 200

// messageKeys are the JSON fields backends put a human-readable reason in.
var messageKeys = []string{"message", "error", "detail", "title"}

// Message returns a short human-readable reason for the failure: a message
// field of a JSON body, the title or text of an HTML error page, or plain
// text. Without a usable body it is the status text.
func (e *HTTPStatusError) Message() string {
	if msg := bodyMessage(e.Body, e.ContentType()); msg != "" {
		return msg
	}
	return http.StatusText(e.Status)
}

func bodyMessage(body []byte, contentType string) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}

	detected := mimetype.Detect(body)
	switch {
	case strings.Contains(contentType, "json") || detected.Is("application/json"):
		if msg := jsonMessage(body); msg != "" {
			return msg
		}
	case strings.Contains(contentType, "html") || detected.Is("text/html"):
		if msg := htmlMessage(body, contentType); msg != "" {
			return msg
		}
	}
	return truncate(collapse(string(body)))
}

func jsonMessage(body []byte) string {
	var fields map[string]any
	if err := sonic.ConfigStd.Unmarshal(body, &fields); err != nil {
		return ""
	}
	for _, key := range messageKeys {
		if s, ok := fields[key].(string); ok && strings.TrimSpace(s) != "" {
			return truncate(collapse(s))
		}
	}
	return ""
}

func htmlMessage(body []byte, contentType string) string {
	if !strings.Contains(contentType, "charset=") {
		contentType = "text/html; charset=" + detectCharset(body)
	}
	reader, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		reader = bytes.NewReader(body)
	}
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return ""
	}
	if title := collapse(doc.Find("title").First().Text()); title != "" {
		return truncate(title)
	}
	return truncate(collapse(doc.Find("body").Text()))
}

func detectCharset(data []byte) string {
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxMessageLen {
		return s
	}
	return string(runes[:maxMessageLen-1]) + "…"
}
