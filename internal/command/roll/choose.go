package roll

import (
	"math/rand/v2"

	"github.com/keshon/agorabot/internal/command"
	"github.com/keshon/agorabot/internal/config"
	"github.com/keshon/agorabot/pkg/args"
)

// NewChoose returns the choose command. pick returns an index in [0, n); nil
// means math/rand.
func NewChoose(s command.Strategy, pick func(n int) int) *command.Base {
	if pick == nil {
		pick = rand.IntN
	}
	return command.New("choose", "Picks one of the given options", s,
		func(b *args.Block[*command.Receiver]) {
			args.Args1(b, args.RemainingStringArgs("options"), func(r *command.Receiver, options []string) error {
				if len(options) == 0 {
					return r.Respond("Give me something to choose from.")
				}
				return r.Respond("I choose: " + options[pick(len(options))])
			})
		},
		command.WithCategory(config.CategoryGameplay))
}
