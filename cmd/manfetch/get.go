package main

import (
	"fmt"

	"github.com/fwojciec/manfetch"
)

// Run executes the get command.
func (c *GetCmd) Run(deps *Dependencies) error {
	subject := manfetch.Subject{Make: c.Make, Model: c.Model}

	acq, err := deps.Acquirer.Acquire(deps.Ctx, subject)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", manfetch.ErrorMessage(err))
		return err
	}

	var content []byte
	if acq.Found() {
		content = acq.Download.Content
	}
	if deps.Journal != nil {
		if err := deps.Journal.RecordEntry(deps.Ctx, manfetch.NewEntry(acq), content); err != nil {
			deps.Logger.Warn("journal record failed", "err", err)
		}
	}

	if !acq.Found() {
		fmt.Fprintf(deps.Stderr, "No manual found for %s (%d candidates, %d attempts)\n",
			subject, acq.Candidates, acq.Attempts)
		for i, e := range acq.Errors {
			if i == manfetch.MaxReportedErrors {
				break
			}
			fmt.Fprintf(deps.Stderr, "  %s\n", e)
		}
		return manfetch.Errorf(manfetch.ENOTFOUND, "no manual found for %s", subject)
	}

	path, err := deps.Writer.WriteManual(deps.Ctx, acq.Download)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", manfetch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %s (%d bytes)\n", path, acq.Download.Size)
	fmt.Fprintf(deps.Stdout, "Source: %s\n", acq.Download.SourceURL)
	return nil
}
