// Package roll rolls dice and picks among options.
package roll

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"

	"github.com/keshon/agorabot/internal/command"
	"github.com/keshon/agorabot/internal/config"
	"github.com/keshon/agorabot/pkg/args"
)

const (
	maxDice  = 100
	maxSides = 1000
)

var (
	tokenRegex = regexp.MustCompile(`(?i)(\d*d\d+|\d+|[+\-*/])`)
	diceRegex  = regexp.MustCompile(`(?i)^(\d*)d(\d+)$`)
	validOps   = map[string]bool{"+": true, "-": true, "*": true, "/": true}
)

// Roller returns a value in [1, sides].
type Roller func(sides int) int

func defaultRoller(sides int) int { return rand.IntN(sides) + 1 }

// New returns the roll command. A nil roller uses math/rand.
func New(s command.Strategy, roll Roller) *command.Base {
	if roll == nil {
		roll = defaultRoller
	}
	return command.New("roll", "Rolls dice: `roll 2 20` or `roll 2d20+1d6-2`", s,
		func(b *args.Block[*command.Receiver]) {
			b.MatchFirst(func(c *args.Choices[*command.Receiver]) {
				args.Args2(c, args.Optional(args.IntArg("count"), 1), args.Optional(args.IntArg("sides"), 6),
					func(r *command.Receiver, count, sides int) error {
						if err := checkDice(count, sides); err != nil {
							return r.Respond(err.Error())
						}
						total, rolls := rollDice(roll, count, sides)
						return r.Respond(fmt.Sprintf("🎲 %dd%d: [%s] = **%d**", count, sides, strings.Join(rolls, ", "), total))
					})
				args.Args1(c, args.StringArg("formula"), func(r *command.Receiver, formula string) error {
					total, pretty, err := Evaluate(formula, roll)
					if err != nil {
						return r.Respond(err.Error())
					}
					return r.Respond(fmt.Sprintf("🎲 `%s`: %s = **%d**", formula, pretty, total))
				})
			})
		},
		command.WithCategory(config.CategoryGameplay))
}

func checkDice(count, sides int) error {
	if count < 1 || sides < 2 {
		return errors.New("Need at least one die with two sides.")
	}
	if count > maxDice || sides > maxSides {
		return fmt.Errorf("Too big. Max %d dice, %d sides.", maxDice, maxSides)
	}
	return nil
}

func rollDice(roll Roller, count, sides int) (int, []string) {
	total := 0
	rolls := make([]string, count)
	for i := range count {
		v := roll(sides)
		total += v
		rolls[i] = strconv.Itoa(v)
	}
	return total, rolls
}

type term struct {
	value int
	desc  string
	op    string
}

// Evaluate computes a dice formula such as "2d6+1d4*2-3". Multiplication and
// division bind tighter than addition and subtraction.
func Evaluate(formula string, roll Roller) (int, string, error) {
	formula = strings.ReplaceAll(formula, " ", "")
	tokens := tokenRegex.FindAllString(formula, -1)
	if len(tokens) == 0 || strings.Join(tokens, "") != formula {
		return 0, "", errors.New("Can't parse your formula. Try something like `2d6+1d4*2-3`")
	}

	var terms []term
	op := "+"
	for _, token := range tokens {
		if validOps[token] {
			op = token
			continue
		}
		v, desc, err := evaluateToken(token, roll)
		if err != nil {
			return 0, "", fmt.Errorf("Failed to evaluate `%s`: %w", token, err)
		}
		terms = append(terms, term{value: v, desc: desc, op: op})
		op = "+"
	}

	var merged []term
	for _, t := range terms {
		if t.op != "*" && t.op != "/" {
			merged = append(merged, t)
			continue
		}
		if len(merged) == 0 {
			return 0, "", errors.New("Can't multiply or divide by nothing.")
		}
		prev := &merged[len(merged)-1]
		if t.op == "/" {
			if t.value == 0 {
				return 0, "", errors.New("Can't divide by zero.")
			}
			prev.value /= t.value
		} else {
			prev.value *= t.value
		}
		prev.desc = fmt.Sprintf("%s %s %s", prev.desc, t.op, t.desc)
	}

	total := 0
	var details strings.Builder
	for i, t := range merged {
		if i > 0 {
			fmt.Fprintf(&details, " %s ", t.op)
		} else if t.op == "-" {
			details.WriteString("-")
		}
		details.WriteString(t.desc)
		if t.op == "-" {
			total -= t.value
		} else {
			total += t.value
		}
	}
	return total, details.String(), nil
}

func evaluateToken(token string, roll Roller) (int, string, error) {
	m := diceRegex.FindStringSubmatch(token)
	if m == nil {
		n, err := strconv.Atoi(token)
		if err != nil {
			return 0, "", errors.New("not a number or dice")
		}
		return n, strconv.Itoa(n), nil
	}

	count := 1
	if m[1] != "" {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, "", errors.New("invalid dice count")
		}
		count = n
	}
	sides, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, "", errors.New("invalid dice sides")
	}
	if err := checkDice(count, sides); err != nil {
		return 0, "", err
	}

	sum, rolls := rollDice(roll, count, sides)
	return sum, fmt.Sprintf("%s [%s]", token, strings.Join(rolls, ", ")), nil
}
