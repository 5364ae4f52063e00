package content

import (
	"net/url"
	"strings"

	"github.com/wadjakorntonsri/go-smartlink/pkg/core/domain"
)

// BuildView dispatches to the builder for the record's content type. The
// switch is exhaustive over the direct-render types; anything else produces
// a degraded raw card, so a misclassified record still shows something.
func BuildView(record *domain.LinkRecord, caps domain.Capabilities, branding domain.Branding) domain.View {
	var v domain.View
	switch record.ContentType {
	case domain.TypeVCard, domain.TypeMeCard:
		v = contactView(record.TargetContent)
	case domain.TypeWifi:
		v = wifiView(record.TargetContent, caps)
	case domain.TypePhone:
		v = phoneView(record.TargetContent)
	case domain.TypeSMS:
		v = smsView(record.TargetContent)
	case domain.TypeEmail:
		v = emailView(record.TargetContent)
	case domain.TypeLocation:
		v = locationView(record.TargetContent)
	case domain.TypeText:
		v = domain.View{Kind: "text", Title: "Message", Raw: record.TargetContent}
	case domain.TypeEvent:
		v = eventView(record.TargetContent)
	case domain.TypeCoupon:
		v = couponView(record.TargetContent, caps)
	case domain.TypeImage:
		v = imageView(record.TargetContent, caps)
	default:
		v = domain.View{Kind: string(record.ContentType), Title: "Content", Degraded: true, Raw: record.TargetContent}
	}
	v.Branding = branding
	return v
}

func contactView(payload string) domain.View {
	card := ParseContactCard(payload)
	if card.Empty() {
		return domain.View{Kind: "contact", Title: "Contact", Degraded: true, Raw: payload}
	}
	v := domain.View{
		Kind:    "contact",
		Title:   card.Name,
		Primary: &domain.Action{Kind: "save_contact", Label: "Save Contact"},
		Raw:     payload,
	}
	if v.Title == "" {
		v.Title = "Contact"
	}
	v.Fields = appendField(v.Fields, "Phone", card.Phone)
	v.Fields = appendField(v.Fields, "Email", card.Email)
	v.Fields = appendField(v.Fields, "Organization", card.Organization)
	v.Fields = appendField(v.Fields, "Title", card.Title)
	v.Fields = appendField(v.Fields, "Website", card.URL)
	v.Fields = appendField(v.Fields, "Address", card.Address)
	if card.Phone != "" {
		v.Actions = append(v.Actions, domain.Action{Kind: "call", Label: "Call", URI: "tel:" + card.Phone})
	}
	return v
}

func wifiView(payload string, caps domain.Capabilities) domain.View {
	cred := ParseWifiCredential(payload)
	if cred == nil {
		return domain.View{Kind: "wifi", Title: "WiFi Network", Degraded: true, Raw: payload}
	}
	v := domain.View{Kind: "wifi", Title: cred.SSID}
	v.Fields = appendField(v.Fields, "Network", cred.SSID)
	v.Fields = appendField(v.Fields, "Security", cred.Type)
	v.Fields = appendField(v.Fields, "Password", cred.Password)
	if caps.CanWriteClipboard && cred.Password != "" {
		v.Primary = &domain.Action{Kind: "copy_password", Label: "Copy Password"}
	}
	return v
}

func phoneView(payload string) domain.View {
	number := strings.TrimSpace(strings.TrimPrefix(payload, "tel:"))
	return domain.View{
		Kind:    "phone",
		Title:   number,
		Primary: &domain.Action{Kind: "call", Label: "Call Now", URI: "tel:" + number},
	}
}

func smsView(payload string) domain.View {
	sms := ParseSmsPayload(payload)
	uri := "sms:" + sms.PhoneNumber
	if sms.Message != "" {
		uri += "?body=" + url.QueryEscape(sms.Message)
	}
	v := domain.View{
		Kind:    "sms",
		Title:   sms.PhoneNumber,
		Primary: &domain.Action{Kind: "send_sms", Label: "Send SMS", URI: uri},
	}
	v.Fields = appendField(v.Fields, "Message", sms.Message)
	return v
}

func emailView(payload string) domain.View {
	uri := strings.TrimSpace(payload)
	if !strings.HasPrefix(strings.ToLower(uri), "mailto:") {
		uri = "mailto:" + uri
	}
	return domain.View{
		Kind:    "email",
		Title:   strings.TrimPrefix(uri, "mailto:"),
		Primary: &domain.Action{Kind: "send_email", Label: "Send Email", URI: uri},
	}
}

func locationView(payload string) domain.View {
	target := strings.TrimSpace(payload)
	uri := target
	lower := strings.ToLower(target)
	if !strings.HasPrefix(lower, "geo:") && !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		uri = "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(target)
	}
	return domain.View{
		Kind:    "location",
		Title:   "Location",
		Primary: &domain.Action{Kind: "open_maps", Label: "Open in Maps", URI: uri},
		Raw:     target,
	}
}

func eventView(payload string) domain.View {
	v := domain.View{Kind: "event", Title: "Event", Raw: payload}
	for _, line := range strings.Split(strings.ReplaceAll(payload, "\r\n", "\n"), "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key, _, _ = strings.Cut(key, ";")
		value = strings.TrimSpace(value)
		switch strings.ToUpper(strings.TrimSpace(key)) {
		case "SUMMARY":
			v.Title = value
		case "DTSTART":
			v.Fields = appendField(v.Fields, "Starts", value)
		case "DTEND":
			v.Fields = appendField(v.Fields, "Ends", value)
		case "LOCATION":
			v.Fields = appendField(v.Fields, "Location", value)
		case "DESCRIPTION":
			v.Fields = appendField(v.Fields, "Details", value)
		}
	}
	if len(v.Fields) == 0 && v.Title == "Event" {
		v.Degraded = true
	}
	v.Primary = &domain.Action{Kind: "add_to_calendar", Label: "Add to Calendar"}
	return v
}

func couponView(payload string, caps domain.Capabilities) domain.View {
	coupon := ParseCoupon(payload)
	v := domain.View{Kind: "coupon", Title: coupon.Code, Raw: payload}
	v.Fields = appendField(v.Fields, "Discount", coupon.Discount)
	v.Fields = appendField(v.Fields, "Details", coupon.Description)
	v.Fields = appendField(v.Fields, "Valid Until", coupon.ValidUntil)
	if caps.CanWriteClipboard {
		v.Primary = &domain.Action{Kind: "copy_code", Label: "Copy Code"}
	}
	return v
}

// imageView exposes the zoom toggle unconditionally, share only when the
// device reports share capability, and a raw-bytes download whose frontend
// contract is to open the original URL if fetching the bytes fails.
func imageView(payload string, caps domain.Capabilities) domain.View {
	imageURL := strings.TrimSpace(payload)
	v := domain.View{
		Kind:    "image",
		Title:   "Image",
		Primary: &domain.Action{Kind: "download", Label: "Download", URI: imageURL},
		Actions: []domain.Action{{Kind: "zoom_toggle", Label: "Zoom"}},
		Raw:     imageURL,
	}
	if caps.CanShare {
		v.Actions = append(v.Actions, domain.Action{Kind: "share", Label: "Share", URI: imageURL})
	}
	v.Actions = append(v.Actions, domain.Action{Kind: "open_original", Label: "Open Original", URI: imageURL})
	return v
}

func appendField(fields []domain.Field, label, value string) []domain.Field {
	if value == "" {
		return fields
	}
	return append(fields, domain.Field{Label: label, Value: value})
}
