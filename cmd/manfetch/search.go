package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/manfetch"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	subject := manfetch.Subject{Make: c.Make, Model: c.Model}

	result, err := deps.Generator.Generate(deps.Ctx, subject)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", manfetch.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if len(result.Candidates) == 0 {
		fmt.Fprintf(deps.Stdout, "No candidates for %s.\n", subject)
	}
	for _, cand := range result.Candidates {
		fmt.Fprintf(deps.Stdout, "%3d  %-13s  %s\n", cand.Score, cand.Strategy, cand.URL)
	}

	if len(result.SearchLinks) > 0 {
		fmt.Fprintln(deps.Stdout, "Search manually:")
		for _, l := range result.SearchLinks {
			fmt.Fprintf(deps.Stdout, "  %s: %s\n", l.Label, l.URL)
		}
	}
	return nil
}
