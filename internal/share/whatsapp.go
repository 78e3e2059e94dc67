// Package share builds deep links for sharing replies to external apps.
package share

import (
	"fmt"
	"net/url"
	"strings"
)

// whatsAppBase is the official click-to-chat endpoint
const whatsAppBase = "https://wa.me/"

// WhatsAppLink builds a WhatsApp deep link pre-filled with text. phone is
// optional; when given it must be digits only (country code included, no
// leading +). The link opens a new chat in WhatsApp with the text ready to
// send; nothing is tracked and no state comes back.
func WhatsAppLink(text, phone string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("share text is empty")
	}
	if phone != "" && !isDigits(phone) {
		return "", fmt.Errorf("phone must contain digits only, got %q", phone)
	}

	u, err := url.Parse(whatsAppBase + phone)
	if err != nil {
		return "", fmt.Errorf("failed to build share link: %w", err)
	}

	q := url.Values{}
	q.Set("text", text)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
