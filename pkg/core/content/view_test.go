package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wadjakorntonsri/go-smartlink/pkg/core/domain"
)

func TestClassify(t *testing.T) {
	direct := []domain.ContentType{
		domain.TypeVCard, domain.TypeMeCard, domain.TypeWifi, domain.TypePhone,
		domain.TypeSMS, domain.TypeEmail, domain.TypeLocation, domain.TypeText,
		domain.TypeEvent, domain.TypeCoupon, domain.TypeImage,
	}
	for _, ct := range direct {
		assert.Equal(t, RenderDirectly, Classify(ct), "content type %s", ct)
	}

	external := []domain.ContentType{
		domain.TypeURL, domain.TypeYouTube, domain.TypeInstagram, domain.TypePDF,
		domain.TypeVideo, domain.TypeSpotify, domain.ContentType("unknown"),
	}
	for _, ct := range external {
		assert.Equal(t, RedirectExternally, Classify(ct), "content type %s", ct)
	}
}

func buildFor(ct domain.ContentType, payload string, caps domain.Capabilities) domain.View {
	record := &domain.LinkRecord{ContentType: ct, TargetContent: payload}
	return BuildView(record, caps, domain.DefaultBranding())
}

func TestBuildView_Phone(t *testing.T) {
	v := buildFor(domain.TypePhone, "+15551234567", domain.Capabilities{})
	require.NotNil(t, v.Primary)
	assert.Equal(t, "Call Now", v.Primary.Label)
	assert.Equal(t, "tel:+15551234567", v.Primary.URI)
}

func TestBuildView_SMS(t *testing.T) {
	v := buildFor(domain.TypeSMS, "sms:+15551234567?body=Hello%20there", domain.Capabilities{})
	require.NotNil(t, v.Primary)
	assert.Equal(t, "Send SMS", v.Primary.Label)
	assert.Equal(t, "sms:+15551234567?body=Hello+there", v.Primary.URI)
}

func TestBuildView_Contact(t *testing.T) {
	v := buildFor(domain.TypeVCard, "FN:Ada Lovelace\nTEL:+44555", domain.Capabilities{})
	require.NotNil(t, v.Primary)
	assert.Equal(t, "Save Contact", v.Primary.Label)
	assert.Equal(t, "Ada Lovelace", v.Title)
	assert.False(t, v.Degraded)
}

func TestBuildView_WifiDegradesOnBadPayload(t *testing.T) {
	v := buildFor(domain.TypeWifi, "not-wifi-data", domain.Capabilities{})
	assert.True(t, v.Degraded)
	assert.Equal(t, "not-wifi-data", v.Raw)
	assert.Nil(t, v.Primary)
}

func TestBuildView_WifiCopyGatedOnClipboard(t *testing.T) {
	payload := "WIFI:T:WPA;S:HomeNet;P:secret99;"

	withClipboard := buildFor(domain.TypeWifi, payload, domain.Capabilities{CanWriteClipboard: true})
	require.NotNil(t, withClipboard.Primary)
	assert.Equal(t, "copy_password", withClipboard.Primary.Kind)

	without := buildFor(domain.TypeWifi, payload, domain.Capabilities{})
	assert.Nil(t, without.Primary)
}

func TestBuildView_ImageShareGatedOnCapability(t *testing.T) {
	url := "https://cdn.example.com/pic.png"

	v := buildFor(domain.TypeImage, url, domain.Capabilities{CanShare: true})
	assert.True(t, hasAction(v, "share"))
	assert.True(t, hasAction(v, "zoom_toggle"))
	assert.True(t, hasAction(v, "open_original"))
	require.NotNil(t, v.Primary)
	assert.Equal(t, "download", v.Primary.Kind)

	noShare := buildFor(domain.TypeImage, url, domain.Capabilities{})
	assert.False(t, hasAction(noShare, "share"))
	assert.True(t, hasAction(noShare, "zoom_toggle"))
}

func TestBuildView_CouponFallsBackToBareCode(t *testing.T) {
	v := buildFor(domain.TypeCoupon, "RAWCODE", domain.Capabilities{CanWriteClipboard: true})
	assert.Equal(t, "RAWCODE", v.Title)
	require.NotNil(t, v.Primary)
	assert.Equal(t, "copy_code", v.Primary.Kind)
}

func TestBuildView_BrandingFlowsThrough(t *testing.T) {
	branding := domain.Branding{Enabled: true, BrandName: "Acme", AccentColor: "#f00"}
	record := &domain.LinkRecord{ContentType: domain.TypeText, TargetContent: "hi"}
	v := BuildView(record, domain.Capabilities{}, branding)
	assert.Equal(t, "Acme", v.Branding.BrandName)
}

func hasAction(v domain.View, kind string) bool {
	for _, a := range v.Actions {
		if a.Kind == kind {
			return true
		}
	}
	return false
}
