package leads

import "errors"

var (
	// ErrNameRequired is returned when no name field is filled in
	ErrNameRequired = errors.New("leads: name is required")

	// ErrInvalidBody is returned when the request body is not a JSON object
	ErrInvalidBody = errors.New("leads: invalid request body")
)

// Client-facing error messages. Server-side failures all collapse into
// MailFailureCode so callers cannot tell a bad payload from a relay outage.
const (
	NameRequiredMessage = "Name is required"
	MailFailureCode     = "MAIL_FAIL"
)
