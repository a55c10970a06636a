package leads

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/wolfman30/review-rocket-leads/internal/notify"
)

// RenderOptions selects the owner notification style.
type RenderOptions struct {
	IncludeHTML    bool // add an HTML alternative part
	IncludeRawDump bool // append the posted payload as indented JSON
}

// FollowUpKind names the visitor follow-up chosen for a lead.
type FollowUpKind string

const (
	FollowUpNone     FollowUpKind = ""
	FollowUpFeedback FollowUpKind = "feedback"
	FollowUpSetup    FollowUpKind = "setup"
)

const ownerBanner = "=== NEW REVIEW ROCKET DEMO LEAD ==="

var ownerHTMLTemplate = template.Must(template.New("owner").Option("missingkey=error").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px;">
  <h2 style="color:#0ea5e9;">New Review Rocket Demo Lead</h2>

  <div style="background:#f8f9fa;padding:20px;border-radius:8px;margin:20px 0;">
    <h3>Contact Information</h3>
    <p><strong>Name:</strong> {{or .Name "—"}}</p>
    <p><strong>Email:</strong> {{or .Email "—"}}</p>
  </div>

  <div style="background:#f8f9fa;padding:20px;border-radius:8px;margin:20px 0;">
    <h3>Demo Activity</h3>
    <p><strong>Rating:</strong> {{if .Rating}}{{.Rating}} stars{{else}}Not provided{{end}}</p>
    <p><strong>Source:</strong> {{.Source}}</p>
    <p><strong>Submitted:</strong> {{.Timestamp}}</p>
  </div>
{{if .Feedback}}
  <div style="background:#f8f9fa;padding:20px;border-radius:8px;margin:20px 0;">
    <h3>Feedback</h3>
    <p style="white-space:pre-line;">{{.Feedback}}</p>
  </div>
{{end}}
  <p style="color:#666;font-size:12px;">
    This lead was captured from the Review Rocket demo at {{.Origin}}.
  </p>
</div>
`))

// OwnerSubject is the subject line of the owner notification.
func OwnerSubject(lead Lead) string {
	return "New Review Rocket Demo Lead: " + orDefault(lead.Name, "No name")
}

// RenderOwnerNotification builds the internal notification addressed to to.
func RenderOwnerNotification(lead Lead, to string, opts RenderOptions) (notify.EmailMessage, error) {
	msg := notify.EmailMessage{
		To:      to,
		Subject: OwnerSubject(lead),
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n\n", ownerBanner)
	fmt.Fprintf(&b, "Name:   %s\n", orDefault(lead.Name, "(not provided)"))
	fmt.Fprintf(&b, "Email:  %s\n\n", orDefault(lead.Email, "(not provided)"))
	fmt.Fprintf(&b, "Source:  %s\n", lead.Source)
	fmt.Fprintf(&b, "Rating:  %s\n", orDefault(lead.Rating, "Not provided"))
	fmt.Fprintf(&b, "When:    %s\n\n", lead.Timestamp)
	if lead.Feedback != "" {
		fmt.Fprintf(&b, "Feedback:\n%s\n", lead.Feedback)
	}
	if opts.IncludeRawDump {
		dump, err := json.MarshalIndent(lead.Raw, "", "  ")
		if err != nil {
			return notify.EmailMessage{}, fmt.Errorf("leads: raw dump: %w", err)
		}
		fmt.Fprintf(&b, "Raw submission:\n%s\n", dump)
	}
	b.WriteString("\n")
	b.WriteString("=========================================\n")
	msg.Body = b.String()

	if opts.IncludeHTML {
		var buf bytes.Buffer
		if err := ownerHTMLTemplate.Execute(&buf, lead); err != nil {
			return notify.EmailMessage{}, fmt.Errorf("leads: render owner html: %w", err)
		}
		msg.HTML = buf.String()
	}
	return msg, nil
}

// ChooseFollowUp picks the visitor follow-up for a lead. Feedback wins over
// setup; leads without a usable address get none.
func ChooseFollowUp(lead Lead) FollowUpKind {
	if !lead.HasEmail() {
		return FollowUpNone
	}
	switch {
	case lead.IsFeedback():
		return FollowUpFeedback
	case lead.IsSetup():
		return FollowUpSetup
	default:
		return FollowUpNone
	}
}

// RenderFollowUp builds the visitor email for kind. ok is false for FollowUpNone.
func RenderFollowUp(lead Lead, kind FollowUpKind) (msg notify.EmailMessage, ok bool) {
	greeting := fmt.Sprintf("Hi %s,\n\n", orDefault(lead.Name, "there"))
	msg = notify.EmailMessage{To: lead.Email, ToName: lead.Name}

	switch kind {
	case FollowUpFeedback:
		msg.Subject = "3 Stars or Lower Sent to You"
		msg.Body = greeting +
			"In the event your customer gives you less than 4 stars, you will get an email with their feedback so you can contact them directly.\n\n" +
			"Just hit reply if you are interested in seeing how this could work in your business.\n\n" +
			"Best,\nReview Rocket AI"
	case FollowUpSetup:
		msg.Subject = "Thanks for Your Interest in Review Rocket!"
		msg.Body = greeting +
			"Thanks for trying our Review Rocket demo! We'll be in touch soon with setup instructions and pricing details.\n\n" +
			"Best regards,\nThe Review Rocket Team"
	default:
		return notify.EmailMessage{}, false
	}
	return msg, true
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
