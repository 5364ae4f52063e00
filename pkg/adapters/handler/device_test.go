package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectCapabilities(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		hint      string
		isMobile  bool
		isAndroid bool
	}{
		{
			name:      "android phone",
			userAgent: "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 Mobile Safari/537.36",
			isMobile:  true,
			isAndroid: true,
		},
		{
			name:      "iphone",
			userAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Version/17.0 Mobile/15E148 Safari/604.1",
			isMobile:  true,
		},
		{
			name:      "desktop chrome",
			userAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 Chrome/120.0 Safari/537.36",
		},
		{
			name:      "client hint overrides desktop UA",
			userAgent: "Mozilla/5.0 (X11; Linux x86_64) Chrome/120.0",
			hint:      "?1",
			isMobile:  true,
		},
		{
			name:      "client hint overrides mobile UA",
			userAgent: "Mozilla/5.0 (iPhone) Mobile Safari",
			hint:      "?0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/open/x", nil)
			req.Header.Set("User-Agent", tt.userAgent)
			if tt.hint != "" {
				req.Header.Set("Sec-CH-UA-Mobile", tt.hint)
			}

			caps := DetectCapabilities(req)
			assert.Equal(t, tt.isMobile, caps.IsMobile)
			assert.Equal(t, tt.isAndroid, caps.IsAndroid)
			assert.True(t, caps.CanWriteClipboard)
			assert.Equal(t, tt.isMobile, caps.CanShare)
		})
	}
}
