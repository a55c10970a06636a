package leads

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Recognized submission sources.
const (
	SourceFeedback = "feedback" // low-score review page
	SourceSetup    = "setup"    // get-started / pricing form
	SourceUnknown  = "unknown"
)

// FormValue is a loosely typed form field. Web forms post strings, numbers,
// booleans or nothing at all for the same field, so the value keeps both its
// rendered text and whether it counts as filled in.
type FormValue struct {
	Text   string
	truthy bool
}

// TextValue returns a FormValue for s; it is filled in unless s is empty.
func TextValue(s string) FormValue {
	return FormValue{Text: s, truthy: s != ""}
}

// ValueOf converts a decoded JSON value. null, false, 0 and "" are empty;
// objects and arrays are always filled in.
func ValueOf(raw any) FormValue {
	switch x := raw.(type) {
	case nil:
		return FormValue{}
	case string:
		return TextValue(x)
	case bool:
		return FormValue{Text: strconv.FormatBool(x), truthy: x}
	case float64:
		return FormValue{Text: strconv.FormatFloat(x, 'f', -1, 64), truthy: x != 0}
	default:
		b, _ := json.Marshal(x)
		return FormValue{Text: string(b), truthy: true}
	}
}

// Truthy reports whether the field was filled in.
func (v FormValue) Truthy() bool {
	return v.truthy
}

// Or returns the field text, or fallback when the field is empty.
func (v FormValue) Or(fallback string) string {
	if v.truthy {
		return v.Text
	}
	return fallback
}

// Submission is the typed lead form payload.
type Submission struct {
	Name      FormValue
	FirstName FormValue
	LastName  FormValue
	Email     FormValue
	Rating    FormValue
	Feedback  FormValue
	Source    FormValue
	Honeypot  FormValue

	// Raw is the decoded payload as posted, kept for the raw dump.
	Raw map[string]any
}

// NewSubmission maps a decoded JSON object onto the known form fields.
// Keys match exactly; unknown keys only survive in Raw.
func NewSubmission(raw map[string]any) *Submission {
	return &Submission{
		Name:      ValueOf(raw["name"]),
		FirstName: ValueOf(raw["firstName"]),
		LastName:  ValueOf(raw["lastName"]),
		Email:     ValueOf(raw["email"]),
		Rating:    ValueOf(raw["rating"]),
		Feedback:  ValueOf(raw["feedback"]),
		Source:    ValueOf(raw["source"]),
		Honeypot:  ValueOf(raw["_hp"]),
		Raw:       raw,
	}
}

// HasName reports whether any of the name fields is filled in.
func (s *Submission) HasName() bool {
	return s.Name.Truthy() || s.FirstName.Truthy() || s.LastName.Truthy()
}

// IsAnonymousFeedback is true for feedback posted without a name.
func (s *Submission) IsAnonymousFeedback() bool {
	return s.Source.Text == SourceFeedback
}

// IsBot reports whether the honeypot field was filled in.
func (s *Submission) IsBot() bool {
	return s.Honeypot.Truthy()
}

// Validate enforces the only client-attributable rule: a name is required
// unless the submission is anonymous feedback.
func (s *Submission) Validate() error {
	if !s.HasName() && !s.IsAnonymousFeedback() {
		return ErrNameRequired
	}
	return nil
}

// Lead is the normalized view of a submission used for rendering.
type Lead struct {
	Name        string
	Email       string
	Rating      string
	Feedback    string
	Source      string
	SubmittedAt time.Time
	Timestamp   string
	Origin      string
	Raw         map[string]any
}

// timestampLayout mirrors a browser's en-US locale date-time string.
const timestampLayout = "1/2/2006, 3:04:05 PM"

// NewLead derives a Lead from the submission.
func NewLead(s *Submission, now time.Time, origin string) Lead {
	name := s.Name.Or("")
	if name == "" {
		name = strings.TrimSpace(s.FirstName.Or("") + " " + s.LastName.Or(""))
	}
	if origin == "" {
		origin = "unknown origin"
	}
	return Lead{
		Name:        name,
		Email:       s.Email.Or(""),
		Rating:      s.Rating.Or(""),
		Feedback:    s.Feedback.Or(""),
		Source:      s.Source.Or(SourceUnknown),
		SubmittedAt: now,
		Timestamp:   now.Format(timestampLayout),
		Origin:      origin,
		Raw:         s.Raw,
	}
}

// HasEmail reports whether the lead left a usable reply address.
func (l Lead) HasEmail() bool {
	return strings.Contains(l.Email, "@")
}

func (l Lead) IsFeedback() bool { return l.Source == SourceFeedback }

func (l Lead) IsSetup() bool { return l.Source == SourceSetup }

// Response is the JSON body of every non-405 answer.
type Response struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
