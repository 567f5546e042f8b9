package main

import (
	"fmt"

	"github.com/fwojciec/manfetch"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := manfetch.EntryFilter{Limit: c.Limit}
	if c.Make != "" {
		filter.Make = &c.Make
	}
	switch {
	case c.Found:
		found := true
		filter.Found = &found
	case c.Missing:
		found := false
		filter.Found = &found
	}

	entries, err := deps.Journal.FindEntries(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", manfetch.ErrorMessage(err))
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, "No acquisitions recorded. Use 'manfetch get' to fetch a manual.")
		return nil
	}

	for _, e := range entries {
		created := e.CreatedAt.Local().Format("2006-01-02 15:04")
		if e.Found {
			fmt.Fprintf(deps.Stdout, "%s  %s %s  found  %s (%d bytes)\n", created, e.Make, e.Model, e.SourceURL, e.Size)
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s  %s %s  missing  %d candidates, %d attempts\n", created, e.Make, e.Model, e.Candidates, e.Attempts)
	}
	return nil
}
