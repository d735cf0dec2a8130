package cli

import (
	"context"

	"github.com/robfig/cron/v3"

	"autoshorts/internal/status"
)

var cronOptions = []string{
	"Once a day",
	"Twice a day",
	"Thrice a day",
	"Back",
}

// cronSpecs maps the menu choices to cron schedules.
var cronSpecs = [][]string{
	{"0 10 * * *"},
	{"0 10 * * *", "0 16 * * *"},
	{"0 9 * * *", "0 14 * * *", "0 19 * * *"},
}

// scheduleCron registers upload jobs for one account and blocks running them.
// Each tick performs a full headless generate-and-upload cycle; per-run
// failures are reported and the schedule keeps going.
func (a *App) scheduleCron(ctx context.Context, accountID string) error {
	status.Info("How often do you want to upload?")
	choice := selectOption("SCHEDULE OPTIONS", cronOptions)
	if choice == len(cronOptions) {
		return nil
	}

	c := cron.New()
	for _, spec := range cronSpecs[choice-1] {
		if _, err := c.AddFunc(spec, func() {
			if err := a.RunHeadless(ctx, "youtube", accountID); err != nil {
				status.Error("Scheduled run failed: %v", err)
			}
		}); err != nil {
			return err
		}
	}

	status.Success("Set up upload CRON job (%s). Press Ctrl+C to stop.", cronOptions[choice-1])
	c.Start()
	<-ctx.Done()
	c.Stop()
	return nil
}
