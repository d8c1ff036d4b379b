// Package crystalball judges statements.
package crystalball

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/keshon/agorabot/internal/command"
	"github.com/keshon/agorabot/internal/config"
	"github.com/keshon/agorabot/pkg/args"
)

var likely = []string{
	"TRUE",
	"FALSE",
	"DISMISS",
	"IRRELEVANT",
}

var unlikely = []string{
	"SHENANIGANS",
	"I GUESS",
	"PROBABLY",
	"WHO KNOWS",
	"OH GOD, DEFINITELY NOT",
	"DON'T ASK ME",
	"THE ONLY REAL ARGUMENT IN FAVOR OF THIS IS WISHFUL THINKING",
	`A TYPICAL EXAMPLE OF "I SAY I DO, THEREFORE I DO" WHICH HAS PLAGUED AGORA FOR A LONG TIME`,
	"IF YOU SAY SO",
	"UNFORTUNATELY",
	"IT'S IN THE BEST INTEREST OF THE GAME FOR THIS TO BE TRUE",
}

// Responses holds every judgement; likely ones appear ten times each.
var Responses = append(slices.Repeat(likely, 10), unlikely...)

// New returns the crystalball command. pick returns an index in [0, n); nil
// means math/rand.
func New(s command.Strategy, pick func(n int) int) *command.Base {
	if pick == nil {
		pick = rand.IntN
	}
	judge := func() string { return Responses[pick(len(Responses))] }

	return command.New("crystalball", "Judges a statement, or nothing in particular", s,
		func(b *args.Block[*command.Receiver]) {
			b.MatchFirst(func(c *args.Choices[*command.Receiver]) {
				args.NoArgs(c, func(r *command.Receiver) error {
					return r.Respond(fmt.Sprintf("Judged %s.", judge()))
				})
				args.Args1(c, args.StringArg("statement"), func(r *command.Receiver, statement string) error {
					return r.Respond(fmt.Sprintf("\"%s\" judged %s.", statement, judge()))
				})
			})
		},
		command.WithCategory(config.CategoryGameplay))
}
