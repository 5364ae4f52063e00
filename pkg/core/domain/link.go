package domain

import "time"

// ContentType declares how a record's target content should be interpreted.
type ContentType string

const (
	TypeURL       ContentType = "url"
	TypeText      ContentType = "text"
	TypeEmail     ContentType = "email"
	TypePhone     ContentType = "phone"
	TypeSMS       ContentType = "sms"
	TypeWifi      ContentType = "wifi"
	TypeLocation  ContentType = "location"
	TypeVCard     ContentType = "vcard"
	TypeMeCard    ContentType = "mecard"
	TypeEvent     ContentType = "event"
	TypeCoupon    ContentType = "coupon"
	TypeImage     ContentType = "image"
	TypePayPal    ContentType = "paypal"
	TypeInstagram ContentType = "instagram"
	TypeFacebook  ContentType = "facebook"
	TypeYouTube   ContentType = "youtube"
	TypeWhatsApp  ContentType = "whatsapp"
	TypeTwitter   ContentType = "twitter"
	TypeLinkedIn  ContentType = "linkedin"
	TypeSpotify   ContentType = "spotify"
	TypeTelegram  ContentType = "telegram"
	TypePDF       ContentType = "pdf"
	TypeVideo     ContentType = "video"
	TypeAudio     ContentType = "audio"
	TypeReview    ContentType = "review"
	TypeFeedback  ContentType = "feedback"
)

// LinkStatus is the owner-controlled activation state of a record.
type LinkStatus string

const (
	StatusActive   LinkStatus = "active"
	StatusInactive LinkStatus = "inactive"
)

// LinkRecord is the persisted entity behind a short identifier.
type LinkRecord struct {
	ID            string      `json:"id"`
	ContentType   ContentType `json:"content_type"`
	TargetContent string      `json:"target_content"`
	Status        LinkStatus  `json:"status"`
	ExpiresAt     *time.Time  `json:"expires_at,omitempty"`
	// Password is stored and compared as plaintext to preserve the exact-match
	// gate contract. Known weakness; see DESIGN.md.
	Password  string    `json:"password,omitempty"`
	ScanCount int64     `json:"scan_count"`
	ScanLimit int64     `json:"scan_limit"` // 0 means no quota
	Branding  *Branding `json:"branding,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Expired reports whether the record's expiration timestamp has passed.
func (l *LinkRecord) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && l.ExpiresAt.Before(now)
}

// PasswordProtected reports whether the record carries an access password.
func (l *LinkRecord) PasswordProtected() bool {
	return l.Password != ""
}

// Branding holds the owner's white-label overrides for visitor-facing surfaces.
type Branding struct {
	Enabled         bool   `json:"enabled"`
	BrandName       string `json:"brand_name,omitempty"`
	AccentColor     string `json:"accent_color,omitempty"`
	LoadingText     string `json:"loading_text,omitempty"`
	ShowAttribution bool   `json:"show_attribution"`
}

// DefaultBranding is the neutral config used when a record has none.
func DefaultBranding() Branding {
	return Branding{Enabled: false, ShowAttribution: true}
}

// EffectiveBranding resolves the branding to apply to a session's surfaces.
func (l *LinkRecord) EffectiveBranding() Branding {
	if l.Branding != nil && l.Branding.Enabled {
		return *l.Branding
	}
	return DefaultBranding()
}
