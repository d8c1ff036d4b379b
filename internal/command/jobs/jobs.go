// Package jobs reports the command executor's running jobs.
package jobs

import (
	"github.com/keshon/agorabot/internal/command"
	"github.com/keshon/agorabot/internal/config"
	"github.com/keshon/agorabot/pkg/args"
)

// StatusReporter describes running work. *jobmgr.Manager implements it.
type StatusReporter interface {
	Status() string
}

// New returns the jobs command.
func New(s command.Strategy, status StatusReporter) *command.Base {
	return command.New("jobs", "Shows running command jobs", s,
		func(b *args.Block[*command.Receiver]) {
			args.NoArgs(b, func(r *command.Receiver) error {
				return r.Respond(status.Status())
			})
		},
		command.WithCategory(config.CategoryMaintenance))
}
