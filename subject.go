package manfetch

import "strings"

// Subject is the product a manual is being searched for.
type Subject struct {
	Make  string `json:"make"`
	Model string `json:"model"`
}

// Validate returns an error if the subject is missing its make or model.
func (s Subject) Validate() error {
	if strings.TrimSpace(s.Make) == "" {
		return Errorf(EINVALID, "make required")
	}
	if strings.TrimSpace(s.Model) == "" {
		return Errorf(EINVALID, "model required")
	}
	return nil
}

// String returns "make model".
func (s Subject) String() string {
	return strings.TrimSpace(s.Make + " " + s.Model)
}
