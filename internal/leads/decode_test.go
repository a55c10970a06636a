package leads

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSubmission_Object(t *testing.T) {
	sub, err := DecodeSubmission([]byte(`{"name":"Jane","email":"jane@example.com","source":"setup","extra":{"plan":"pro"}}`))
	require.NoError(t, err)
	assert.Equal(t, "Jane", sub.Name.Text)
	assert.Equal(t, "jane@example.com", sub.Email.Text)
	assert.Equal(t, "setup", sub.Source.Text)
	assert.Equal(t, map[string]any{"plan": "pro"}, sub.Raw["extra"])
}

func TestDecodeSubmission_EncodedString(t *testing.T) {
	sub, err := DecodeSubmission([]byte(`"{\"firstName\":\"Jane\",\"lastName\":\"Doe\"}"`))
	require.NoError(t, err)
	assert.Equal(t, "Jane", sub.FirstName.Text)
	assert.Equal(t, "Doe", sub.LastName.Text)
}

// Only objects are accepted; arrays and scalars, bare or string-wrapped,
// are unparseable and answered with MAIL_FAIL rather than a name error.
func TestDecodeSubmission_Invalid(t *testing.T) {
	bodies := map[string]string{
		"empty":               "",
		"whitespace":          "   ",
		"malformed":           `{"name":`,
		"malformed in string": `"{\"name\":"`,
		"null":                "null",
		"array":               `[1,2]`,
		"number":              "42",
		"string of string":    `"\"hello\""`,
		"array in string":     `"[{\"name\":\"Jane\"}]"`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeSubmission([]byte(body))
			assert.ErrorIs(t, err, ErrInvalidBody)
		})
	}
}
