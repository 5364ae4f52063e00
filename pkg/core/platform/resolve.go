// Package platform maps destination URLs to platform-aware deep-link
// targets: a native app URI, an Android intent URI, and the original URL as
// the universal web fallback.
package platform

import (
	"net/url"
	"strings"

	"github.com/wadjakorntonsri/go-smartlink/pkg/core/domain"
)

// Resolve pattern-matches the URL's hostname and path against the known
// services. It never fails: malformed input and unknown hosts both resolve
// to a generic "Website" target with the original string as the web URL.
func Resolve(raw string) domain.PlatformTarget {
	target := domain.PlatformTarget{WebURL: raw, PlatformLabel: "Website"}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return target
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	path := strings.Trim(u.Path, "/")

	switch host {
	case "youtu.be":
		return youTubeTarget(raw, path)
	case "youtube.com", "m.youtube.com":
		return youTubeTarget(raw, u.Query().Get("v"))
	case "instagram.com":
		return instagramTarget(raw, u, path)
	case "twitter.com", "x.com":
		target.PlatformLabel = "X"
		target.NativeAppURI = "twitter://user?screen_name=" + firstSegment(path)
		target.AndroidIntentURI = intentURI(u, "com.twitter.android", "https")
	case "facebook.com", "fb.com", "m.facebook.com":
		target.PlatformLabel = "Facebook"
		target.NativeAppURI = "fb://facewebmodal/f?href=" + url.QueryEscape(raw)
		target.AndroidIntentURI = intentURI(u, "com.facebook.katana", "https")
	case "linkedin.com":
		target.PlatformLabel = "LinkedIn"
		target.NativeAppURI = "linkedin://" + path
		target.AndroidIntentURI = intentURI(u, "com.linkedin.android", "https")
	case "open.spotify.com", "spotify.com":
		target.PlatformLabel = "Spotify"
		if kind, id := splitTwo(path); kind != "" && id != "" {
			target.NativeAppURI = "spotify:" + kind + ":" + id
		}
		target.AndroidIntentURI = intentURI(u, "com.spotify.music", "https")
	case "wa.me", "api.whatsapp.com", "whatsapp.com":
		target.PlatformLabel = "WhatsApp"
		target.NativeAppURI = "whatsapp://send?phone=" + firstSegment(path)
		target.AndroidIntentURI = intentURI(u, "com.whatsapp", "https")
	case "t.me", "telegram.me":
		target.PlatformLabel = "Telegram"
		target.NativeAppURI = "tg://resolve?domain=" + firstSegment(path)
		target.AndroidIntentURI = intentURI(u, "org.telegram.messenger", "https")
	case "paypal.com", "paypal.me":
		target.PlatformLabel = "PayPal"
		target.NativeAppURI = "paypal://" + path
		target.AndroidIntentURI = intentURI(u, "com.paypal.android.p2pmobile", "https")
	}

	return target
}

// youTubeTarget builds the target for both hosts: the short host carries the
// video id as the whole path, the canonical host carries it in the v query
// parameter.
func youTubeTarget(raw, videoID string) domain.PlatformTarget {
	t := domain.PlatformTarget{WebURL: raw, PlatformLabel: "YouTube"}
	if videoID != "" {
		t.NativeAppURI = "vnd.youtube://" + videoID
		t.AndroidIntentURI = "intent://www.youtube.com/watch?v=" + videoID +
			"#Intent;package=com.google.android.youtube;scheme=https;end"
	}
	return t
}

// instagramTarget distinguishes a username-rooted profile path from a
// post/reel path.
func instagramTarget(raw string, u *url.URL, path string) domain.PlatformTarget {
	t := domain.PlatformTarget{WebURL: raw, PlatformLabel: "Instagram"}
	first, second := splitTwo(path)
	switch first {
	case "p", "reel", "reels", "tv":
		if second != "" {
			t.NativeAppURI = "instagram://media?id=" + second
		}
	case "":
		// Bare instagram.com; web fallback only.
	default:
		t.NativeAppURI = "instagram://user?username=" + first
	}
	t.AndroidIntentURI = intentURI(u, "com.instagram.android", "https")
	return t
}

// intentURI builds the Android intent form naming the app package and the
// scheme the OS should fall back to.
func intentURI(u *url.URL, pkg, scheme string) string {
	rest := u.Host + u.Path
	if u.RawQuery != "" {
		rest += "?" + u.RawQuery
	}
	return "intent://" + rest + "#Intent;package=" + pkg + ";scheme=" + scheme + ";end"
}

func firstSegment(path string) string {
	first, _ := splitTwo(path)
	return first
}

func splitTwo(path string) (string, string) {
	first, rest, _ := strings.Cut(path, "/")
	second, _, _ := strings.Cut(rest, "/")
	return first, second
}
