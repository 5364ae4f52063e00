// Package content decodes structured link payloads and builds the view
// documents for content types that render in place instead of redirecting.
package content

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"
)

// ContactCard is the decoded form of a vCard or MECARD payload. Every field
// is optional; a payload with no recognized lines decodes to the zero value.
type ContactCard struct {
	Name         string `json:"name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Organization string `json:"organization,omitempty"`
	Title        string `json:"title,omitempty"`
	URL          string `json:"url,omitempty"`
	Address      string `json:"address,omitempty"`
}

// Empty reports whether nothing was decoded.
func (c ContactCard) Empty() bool {
	return c == ContactCard{}
}

// WifiCredential is the decoded form of a WIFI: payload.
type WifiCredential struct {
	Type     string `json:"type"`
	SSID     string `json:"ssid"`
	Password string `json:"password"`
}

// SmsPayload is the decoded form of an SMS target.
type SmsPayload struct {
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message,omitempty"`
}

// Coupon is the decoded form of a coupon payload.
type Coupon struct {
	Code        string `json:"code"`
	Discount    string `json:"discount,omitempty"`
	Description string `json:"description,omitempty"`
	ValidUntil  string `json:"validUntil,omitempty"`
}

// ParseContactCard decodes vCard-style line-oriented key:value pairs.
// MECARD single-line payloads are normalized to the same line form first.
// Unrecognized lines are ignored; the function never fails.
func ParseContactCard(text string) ContactCard {
	var card ContactCard
	for _, line := range splitContactLines(text) {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		// vCard keys may carry parameters, e.g. TEL;TYPE=CELL.
		key, _, _ = strings.Cut(key, ";")
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		switch strings.ToUpper(strings.TrimSpace(key)) {
		case "FN", "N":
			if card.Name == "" {
				card.Name = strings.ReplaceAll(value, ";", " ")
				card.Name = strings.Join(strings.Fields(card.Name), " ")
			}
		case "TEL":
			if card.Phone == "" {
				card.Phone = value
			}
		case "EMAIL":
			if card.Email == "" {
				card.Email = value
			}
		case "ORG":
			card.Organization = value
		case "TITLE":
			card.Title = value
		case "URL":
			card.URL = value
		case "ADR":
			card.Address = normalizeAddress(value)
		}
	}
	return card
}

// splitContactLines turns either a multi-line vCard or a single-line
// MECARD:...;...; payload into key:value lines.
func splitContactLines(text string) []string {
	text = strings.TrimSpace(text)
	if rest, ok := cutPrefixFold(text, "MECARD:"); ok {
		return strings.Split(rest, ";")
	}
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// normalizeAddress replaces vCard field separators with ", " and collapses
// the duplicates left behind by empty segments.
func normalizeAddress(adr string) string {
	s := strings.ReplaceAll(adr, ";", ", ")
	for strings.Contains(s, ", , ") {
		s = strings.ReplaceAll(s, ", , ", ", ")
	}
	s = strings.Trim(s, ", ")
	return s
}

var wifiRe = regexp.MustCompile(`(?i)WIFI:T:([^;]*);S:([^;]*);P:([^;]*);`)

// ParseWifiCredential decodes a WIFI:T:<auth>;S:<ssid>;P:<password>; payload.
// It returns nil when the payload does not match, signaling the caller to
// show a degraded card instead of guessing.
func ParseWifiCredential(text string) *WifiCredential {
	m := wifiRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return nil
	}
	return &WifiCredential{Type: m[1], SSID: m[2], Password: m[3]}
}

// ParseSmsPayload decodes an SMS target: a bare number, an sms:/smsto: URI
// with a percent-encoded ?body= or &body= message, or the colon-delimited
// smsto:<number>:<message> form. Anything unrecognized is treated as a bare
// phone number.
func ParseSmsPayload(text string) SmsPayload {
	s := strings.TrimSpace(text)
	rest, hadScheme := cutPrefixFold(s, "smsto:")
	if !hadScheme {
		rest, hadScheme = cutPrefixFold(s, "sms:")
	}
	if !hadScheme {
		return SmsPayload{PhoneNumber: s}
	}

	if number, query, ok := cutAny(rest, "?body=", "&body="); ok {
		if decoded, err := url.QueryUnescape(query); err == nil {
			query = decoded
		}
		return SmsPayload{PhoneNumber: number, Message: query}
	}
	if number, message, ok := strings.Cut(rest, ":"); ok {
		return SmsPayload{PhoneNumber: number, Message: message}
	}
	return SmsPayload{PhoneNumber: rest}
}

// ParseCoupon decodes a JSON coupon payload. Non-JSON payloads are treated
// as a bare coupon code.
func ParseCoupon(text string) Coupon {
	var c Coupon
	if err := json.Unmarshal([]byte(text), &c); err != nil || c.Code == "" {
		return Coupon{Code: strings.TrimSpace(text)}
	}
	return c
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}

func cutAny(s string, seps ...string) (before, after string, found bool) {
	for _, sep := range seps {
		if b, a, ok := strings.Cut(s, sep); ok {
			return b, a, true
		}
	}
	return s, "", false
}
