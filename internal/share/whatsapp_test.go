package share

import (
	"net/url"
	"strings"
	"testing"
)

func TestWhatsAppLink(t *testing.T) {
	link, err := WhatsAppLink("Hello world", "")
	if err != nil {
		t.Fatalf("WhatsAppLink failed: %v", err)
	}

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link is not a valid URL: %v", err)
	}
	if u.Scheme != "https" || u.Host != "wa.me" {
		t.Errorf("unexpected link base: %s", link)
	}
	if got := u.Query().Get("text"); got != "Hello world" {
		t.Errorf("text param = %q", got)
	}
}

func TestWhatsAppLink_EncodesSpecialCharacters(t *testing.T) {
	text := "50% off & more!\nSee: https://example.com?a=1"
	link, err := WhatsAppLink(text, "")
	if err != nil {
		t.Fatalf("WhatsAppLink failed: %v", err)
	}

	u, _ := url.Parse(link)
	if got := u.Query().Get("text"); got != text {
		t.Errorf("round-tripped text = %q, want %q", got, text)
	}
	if strings.Contains(link, "\n") {
		t.Error("raw newline leaked into the URL")
	}
}

func TestWhatsAppLink_WithPhone(t *testing.T) {
	link, err := WhatsAppLink("hi", "5511999998888")
	if err != nil {
		t.Fatalf("WhatsAppLink failed: %v", err)
	}
	if !strings.HasPrefix(link, "https://wa.me/5511999998888?") {
		t.Errorf("unexpected link: %s", link)
	}
}

func TestWhatsAppLink_RejectsBadPhone(t *testing.T) {
	for _, phone := range []string{"+5511999998888", "55 11 99999", "abc"} {
		if _, err := WhatsAppLink("hi", phone); err == nil {
			t.Errorf("phone %q should be rejected", phone)
		}
	}
}

func TestWhatsAppLink_RejectsEmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n"} {
		if _, err := WhatsAppLink(text, ""); err == nil {
			t.Errorf("text %q should be rejected", text)
		}
	}
}
