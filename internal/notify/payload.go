package notify

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/antonbelau/folio/internal/entities"
)

// Payload carries the channel-specific renderings of one event. Email gets
// both HTML and plaintext; the chat channels get plaintext only. JSON is the
// opaque snapshot stored with every log row.
type Payload struct {
	Event   string
	Subject string
	Text    string
	HTML    string
	JSON    string
}

// BuildContactPayload renders a new contact-form submission.
func BuildContactPayload(req *entities.ContactRequest) Payload {
	var text strings.Builder
	fmt.Fprintf(&text, "New contact request from %s <%s>\n", req.Name, req.Email)
	if req.Company != "" {
		fmt.Fprintf(&text, "Company: %s\n", req.Company)
	}
	fmt.Fprintf(&text, "\n%s\n", req.Message)

	var htmlBody strings.Builder
	htmlBody.WriteString("<h2>New contact request</h2>")
	fmt.Fprintf(&htmlBody, "<p><strong>%s</strong> &lt;%s&gt;</p>", html.EscapeString(req.Name), html.EscapeString(req.Email))
	if req.Company != "" {
		fmt.Fprintf(&htmlBody, "<p>Company: %s</p>", html.EscapeString(req.Company))
	}
	fmt.Fprintf(&htmlBody, "<blockquote>%s</blockquote>", html.EscapeString(req.Message))

	return Payload{
		Event:   "contact_request",
		Subject: fmt.Sprintf("New contact request from %s", req.Name),
		Text:    text.String(),
		HTML:    htmlBody.String(),
		JSON:    payloadJSON(map[string]any{
			"public_id": req.PublicID,
			"name":      req.Name,
			"email":     req.Email,
			"company":   req.Company,
		}),
	}
}

// BuildTestPayload renders the admin "send test notification" event.
func BuildTestPayload(now time.Time) Payload {
	stamp := now.UTC().Format(time.RFC3339)
	text := "Test notification sent at " + stamp
	return Payload{
		Event:   "test",
		Subject: "Test notification",
		Text:    text,
		HTML:    "<p>" + text + "</p>",
		JSON:    payloadJSON(map[string]any{"sent_at": stamp}),
	}
}

func payloadJSON(fields map[string]any) string {
	data, err := json.Marshal(fields)
	if err != nil {
		return ""
	}
	return string(data)
}
