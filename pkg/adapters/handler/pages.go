package handler

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"

	"github.com/wadjakorntonsri/go-smartlink/pkg/core/domain"
)

// Visitor-facing pages. Every surface takes the session's branding so a
// white-labeled record overrides colors, name, loading text, and the
// attribution line on all of them.

var redirectPage = template.Must(template.New("redirect").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.BrandName}}</title></head>
<body style="font-family:sans-serif;text-align:center;padding-top:4rem">
<h2 style="color:{{.AccentColor}}">{{.LoadingText}}</h2>
<progress id="p" max="100" value="0"></progress>
<p>Opening {{.PlatformLabel}}&hellip;</p>
{{if .ShowAttribution}}<p style="color:#999;font-size:.8rem">Powered by Smartlink</p>{{end}}
<script>
(function () {
  var p = document.getElementById("p"), v = 0;
  var tick = setInterval(function () {
    v += 10;
    p.value = Math.min(v, 100);
    if (v >= 100) {
      clearInterval(tick);
      setTimeout(go, {{.SettleMs}});
    }
  }, {{.StepMs}});
  function go() {
    var fallback = setTimeout(function () {
      window.location.href = {{.FallbackURL}};
    }, {{.FallbackMs}});
    window.addEventListener("pagehide", function () { clearTimeout(fallback); });
    window.location.href = {{.PrimaryURI}};
  }
})();
</script>
</body>
</html>`))

var passwordPage = template.Must(template.New("password").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.BrandName}}</title></head>
<body style="font-family:sans-serif;text-align:center;padding-top:4rem">
<h2 style="color:{{.AccentColor}}">This link is protected</h2>
{{if .Error}}<p style="color:#c00">{{.Error}}</p>{{end}}
<form method="POST" action="/open/{{.ID}}/password">
<input type="password" name="password" maxlength="128" autofocus>
<button type="submit" style="background:{{.AccentColor}};color:#fff">Unlock</button>
</form>
{{if .ShowAttribution}}<p style="color:#999;font-size:.8rem">Powered by Smartlink</p>{{end}}
</body>
</html>`))

var cardPage = template.Must(template.New("card").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.View.Title}}</title></head>
<body style="font-family:sans-serif;text-align:center;padding-top:4rem">
<h2 style="color:{{.AccentColor}}">{{.View.Title}}</h2>
{{range .View.Fields}}<p><strong>{{.Label}}:</strong> {{.Value}}</p>{{end}}
{{if .View.Degraded}}<pre style="color:#666">{{.View.Raw}}</pre>{{end}}
{{with .View.Primary}}{{if .URI}}<p><a href="{{.URI}}" style="background:{{$.AccentColor}};color:#fff;padding:.5rem 1rem;text-decoration:none">{{.Label}}</a></p>{{end}}{{end}}
{{if .ShowAttribution}}<p style="color:#999;font-size:.8rem">Powered by Smartlink</p>{{end}}
</body>
</html>`))

var unavailablePage = template.Must(template.New("unavailable").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body style="font-family:sans-serif;text-align:center;padding-top:4rem">
<h2 style="color:{{.AccentColor}}">{{.Title}}</h2>
<p>{{.Message}}</p>
{{if .ShowAttribution}}<p style="color:#999;font-size:.8rem">Powered by Smartlink</p>{{end}}
</body>
</html>`))

// reasonCopy maps each terminal reason to its own title and message. The
// remedies differ, so the reasons are never merged into one generic page.
var reasonCopy = map[domain.UnavailableReason][2]string{
	domain.ReasonNotFound:    {"Link not found", "This link does not exist or has been removed."},
	domain.ReasonExpired:     {"Link expired", "This link has passed its expiration date."},
	domain.ReasonLimit:       {"Scan limit reached", "This link has reached its maximum number of scans."},
	domain.ReasonInactive:    {"Link deactivated", "The owner has deactivated this link."},
	domain.ReasonUnavailable: {"Something went wrong", "This link could not be resolved. Please try again later."},
}

var reasonStatus = map[domain.UnavailableReason]int{
	domain.ReasonNotFound:    http.StatusNotFound,
	domain.ReasonExpired:     http.StatusGone,
	domain.ReasonLimit:       http.StatusGone,
	domain.ReasonInactive:    http.StatusGone,
	domain.ReasonUnavailable: http.StatusInternalServerError,
}

type brandingVars struct {
	BrandName       string
	AccentColor     string
	LoadingText     string
	ShowAttribution bool
}

func brandVars(b domain.Branding) brandingVars {
	v := brandingVars{
		BrandName:       "Smartlink",
		AccentColor:     "#1a73e8",
		LoadingText:     "Taking you there",
		ShowAttribution: b.ShowAttribution,
	}
	if !b.Enabled {
		return v
	}
	if b.BrandName != "" {
		v.BrandName = b.BrandName
	}
	if b.AccentColor != "" {
		v.AccentColor = b.AccentColor
	}
	if b.LoadingText != "" {
		v.LoadingText = b.LoadingText
	}
	return v
}

func (h *ResolveHandler) renderRedirect(w http.ResponseWriter, r *http.Request, res *domain.Resolution) {
	plan := res.Redirect

	// Desktop and app-less targets skip the interstitial entirely.
	if plan.Direct {
		http.Redirect(w, r, plan.FallbackURL, http.StatusFound)
		return
	}

	if !wantsHTML(r) {
		_ = json.NewEncoder(w).Encode(res)
		return
	}

	vars := struct {
		brandingVars
		PlatformLabel string
		PrimaryURI    string
		FallbackURL   string
		FallbackMs    int64
		SettleMs      int64
		StepMs        int64
	}{
		brandingVars:  brandVars(res.Branding),
		PlatformLabel: plan.Target.PlatformLabel,
		PrimaryURI:    plan.PrimaryURI,
		FallbackURL:   plan.FallbackURL,
		FallbackMs:    plan.FallbackDelay.Milliseconds(),
		SettleMs:      h.settleDelay.Milliseconds(),
		StepMs:        h.settleDelay.Milliseconds() / 10,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := redirectPage.Execute(w, vars); err != nil {
		log.Printf("redirect page render: %v", err)
	}
}

func (h *ResolveHandler) renderPasswordPrompt(w http.ResponseWriter, r *http.Request, id string, res *domain.Resolution) {
	if !wantsHTML(r) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(res)
		return
	}

	errMsg := ""
	switch res.PasswordError {
	case "invalid":
		errMsg = "Please enter a password (128 characters max)."
	case "incorrect":
		errMsg = "Incorrect password. Please try again."
	}

	vars := struct {
		brandingVars
		ID    string
		Error string
	}{brandingVars: brandVars(res.Branding), ID: id, Error: errMsg}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	if err := passwordPage.Execute(w, vars); err != nil {
		log.Printf("password page render: %v", err)
	}
}

func (h *ResolveHandler) renderView(w http.ResponseWriter, r *http.Request, res *domain.Resolution) {
	if !wantsHTML(r) {
		_ = json.NewEncoder(w).Encode(res)
		return
	}

	vars := struct {
		brandingVars
		View *domain.View
	}{brandingVars: brandVars(res.Branding), View: res.View}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := cardPage.Execute(w, vars); err != nil {
		log.Printf("card page render: %v", err)
	}
}

func (h *ResolveHandler) renderUnavailable(w http.ResponseWriter, r *http.Request, id string, reason domain.UnavailableReason, branding domain.Branding) {
	text := reasonCopy[reason]
	status := reasonStatus[reason]
	if status == 0 {
		status = http.StatusInternalServerError
	}

	if !wantsHTML(r) {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id":      id,
			"reason":  string(reason),
			"title":   text[0],
			"message": text[1],
		})
		return
	}

	vars := struct {
		brandingVars
		Title   string
		Message string
	}{brandingVars: brandVars(branding), Title: text[0], Message: text[1]}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := unavailablePage.Execute(w, vars); err != nil {
		log.Printf("unavailable page render: %v", err)
	}
}
