package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/ManuelReschke/CowinDashboard/internal/pkg/constants"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/viewmodel"
)

const styles = `
body { margin: 0; font-family: "Roboto", sans-serif; }
.bg-color { background-color: #222234; min-height: 100vh; padding: 24px 48px; color: #ffffff; }
.logo-items { display: flex; align-items: center; }
.logo { width: 40px; height: 40px; }
.logo-name { color: #2cc6c6; font-size: 22px; font-weight: 600; margin-left: 8px; }
.heading { font-size: 28px; }
.sub-heading { font-size: 20px; }
.chart-card { background-color: #ffffff; border-radius: 8px; padding: 16px; margin-bottom: 24px; color: #222234; overflow-x: auto; }
.legend { display: flex; gap: 24px; justify-content: center; list-style: none; padding: 0; }
.legend-dot { display: inline-block; width: 12px; height: 12px; border-radius: 50%; margin-right: 6px; }
.loader-container { display: flex; justify-content: center; padding-top: 120px; }
.three-dots span { display: inline-block; width: 16px; height: 16px; margin: 0 6px; border-radius: 50%; background-color: #ffffff; animation: blink 1.4s infinite both; }
.three-dots span:nth-child(2) { animation-delay: 0.2s; }
.three-dots span:nth-child(3) { animation-delay: 0.4s; }
@keyframes blink { 0%, 80%, 100% { opacity: 0.2; } 40% { opacity: 1; } }
.failure-view { display: flex; flex-direction: column; align-items: center; padding-top: 64px; }
.failure-view img { width: 50%; max-width: 480px; }
.no-data { text-align: center; color: #64748b; }
`

// teardownScript tells the server the page is gone so the pending fetch is cancelled.
const teardownScript = `
window.addEventListener("pagehide", function () {
  var root = document.getElementById("dashboard-root");
  if (root && root.dataset.teardownUrl && navigator.sendBeacon) {
    navigator.sendBeacon(root.dataset.teardownUrl);
  }
});
`

// Page is the full HTML document around body.
func Page(layout viewmodel.Layout, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>`+templ.EscapeString(layout.Page)+`</title>`+
			`<style>`+styles+`</style>`+
			`<script src="`+constants.HtmxScriptURL+`"></script>`); err != nil {
			return err
		}
		if layout.IsDev {
			if _, err := io.WriteString(w, `<script>htmx.logAll();</script>`); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</head><body><div class="bg-color" id="dashboard-root" data-teardown-url="`+templ.EscapeString(layout.TeardownURL)+`">`); err != nil {
			return err
		}
		if err := Header().Render(ctx, w); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div><script>`+teardownScript+`</script></body></html>`)
		return err
	})
}

// Header shows the logo and the site name.
func Header() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div class="logo-items">`+
			`<img src="`+constants.LogoURL+`" alt="website logo" class="logo">`+
			`<p class="logo-name">co-WIN</p></div>`)
		return err
	})
}
