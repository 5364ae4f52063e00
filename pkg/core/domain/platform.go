package domain

// PlatformTarget is the resolved set of destinations for one external URL.
// WebURL is always present and is the universal fallback; the app URIs are
// set only for recognized services.
type PlatformTarget struct {
	NativeAppURI     string `json:"native_app_uri,omitempty"`
	AndroidIntentURI string `json:"android_intent_uri,omitempty"`
	WebURL           string `json:"web_url"`
	PlatformLabel    string `json:"platform_label"`
}

// HasNativeApp reports whether any app destination was resolved.
func (t PlatformTarget) HasNativeApp() bool {
	return t.NativeAppURI != "" || t.AndroidIntentURI != ""
}

// Capabilities describes what the visitor's device can do. It is derived
// from the request by the transport layer so the core never touches a
// user agent string directly.
type Capabilities struct {
	IsMobile          bool `json:"is_mobile"`
	IsAndroid         bool `json:"is_android"`
	CanShare          bool `json:"can_share"`
	CanWriteClipboard bool `json:"can_write_clipboard"`
}
