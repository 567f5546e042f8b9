package manfetch

import "context"

// MaxReportedErrors caps the attempt errors kept on an Acquisition.
const MaxReportedErrors = 10

// AttemptError is one failed attempt during acquisition.
type AttemptError struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// String returns "url: description".
func (e AttemptError) String() string {
	return e.URL + ": " + e.Description
}

// Acquisition is the result of searching for and downloading a manual.
type Acquisition struct {
	Subject Subject

	// Download is nil when no manual was found.
	Download *Download

	// Candidates is the number of ranked candidates considered.
	Candidates int

	// Attempts is the number of download attempts made.
	Attempts int

	// Errors holds the first MaxReportedErrors attempt failures.
	Errors []AttemptError
}

// Found reports whether a manual was downloaded.
func (a *Acquisition) Found() bool {
	return a != nil && a.Download != nil
}

// Acquirer finds and downloads the manual for a subject.
type Acquirer interface {
	// Acquire returns an Acquisition whether or not a manual was found.
	// An error is returned only for invalid input or cancellation.
	Acquire(ctx context.Context, subject Subject) (*Acquisition, error)
}
