package content

import "github.com/wadjakorntonsri/go-smartlink/pkg/core/domain"

// Behavior tells the orchestrator whether a content type renders in place
// or builds an external redirect.
type Behavior int

const (
	RenderDirectly Behavior = iota
	RedirectExternally
)

// Classify maps a content type to its delivery behavior. Unknown types fall
// through to an external redirect, which at worst sends the visitor to the
// raw target.
func Classify(ct domain.ContentType) Behavior {
	switch ct {
	case domain.TypeVCard, domain.TypeMeCard, domain.TypeWifi,
		domain.TypePhone, domain.TypeSMS, domain.TypeEmail,
		domain.TypeLocation, domain.TypeText, domain.TypeEvent,
		domain.TypeCoupon, domain.TypeImage:
		return RenderDirectly
	}
	return RedirectExternally
}
