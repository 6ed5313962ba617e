package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/arenadl"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := arenadl.RunFilter{Limit: c.Limit}
	if c.Channel != "" {
		filter.Channel = &c.Channel
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", arenadl.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'arenadl fetch' to download a channel.")
		return nil
	}

	for _, r := range runs {
		res := r.Result()
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  found %d, downloaded %d (skipped %d), failed %d\n",
			r.StartedAt.Local().Format(time.DateTime), r.ID, r.Channel,
			r.Discovered, res.Downloaded(), res.Skipped, res.Failed)
		if r.Error != "" {
			fmt.Fprintf(deps.Stdout, "  error: %s\n", r.Error)
		}

		if !c.Failures || r.Failed == 0 {
			continue
		}
		failed := arenadl.OutcomeFailed
		assets, err := deps.Assets.FindAssets(deps.Ctx, arenadl.AssetFilter{RunID: &r.ID, Outcome: &failed})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", arenadl.ErrorMessage(err))
			return err
		}
		for _, a := range assets {
			fmt.Fprintf(deps.Stdout, "  fail %s: %s\n", a.SourceURL, a.Error)
		}
	}

	return nil
}
