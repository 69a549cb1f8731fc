package model

// Password is one generated password as shown to the user.
// Records are replaced wholesale on every fetch and never mutated in place.
type Password struct {
	Generated string `json:"generated"`
	Original  string `json:"original"`
}

// Settings holds the requested password length bounds.
// A zero value for either bound means "let the backend decide".
type Settings struct {
	MinLength int `json:"minPasswordLength,omitempty"`
	MaxLength int `json:"maxPasswordLength,omitempty"`
}

// Limits are the server-side floor and ceiling for password lengths.
type Limits struct {
	Min int `json:"MIN_PASSWORD_LENGTH"`
	Max int `json:"MAX_PASSWORD_LENGTH"`
}

// GenerateRequest is the logical request sent to the backend regardless of transport.
type GenerateRequest struct {
	Count    int
	Settings Settings
}

const (
	// MinCount and MaxCount bound the number of passwords per request.
	MinCount = 1
	MaxCount = 1000

	DefaultCount = 1
)

// FallbackLimits are used when the backend config endpoint cannot be reached.
var FallbackLimits = Limits{Min: 15, Max: 1000}
