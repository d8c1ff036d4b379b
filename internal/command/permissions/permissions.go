// Package permissions manages bot-scope permission grants.
package permissions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/keshon/agorabot/internal/command"
	"github.com/keshon/agorabot/internal/config"
	"github.com/keshon/agorabot/internal/permission"
	"github.com/keshon/agorabot/pkg/args"
)

// New returns the permissions command. Only bot admins may use it.
func New(s command.Strategy, checker *permission.Checker) *command.Base {
	p := &permissionsCommand{checker: checker}
	return command.New("permissions", "Grants and revokes bot permissions", s,
		func(b *args.Block[*command.Receiver]) {
			b.Subcommands(func(s *args.SubcommandSet[*command.Receiver]) {
				s.Subcommand("grant", func(b *args.Block[*command.Receiver]) {
					args.Args2(b, args.StringArg("user_id"), args.StringArg("path"), p.grant)
				})
				s.Subcommand("revoke", func(b *args.Block[*command.Receiver]) {
					args.Args2(b, args.StringArg("user_id"), args.StringArg("path"), p.revoke)
				})
				s.Subcommand("list", func(b *args.Block[*command.Receiver]) {
					args.Args1(b, args.StringArg("user_id"), p.list)
				})
			})
		},
		command.WithCategory(config.CategorySettings),
		command.WithPermission("permissions"))
}

type permissionsCommand struct {
	checker *permission.Checker
}

func (p *permissionsCommand) admin(r *command.Receiver) bool {
	if p.checker.IsAdmin(r.Source().AuthorID) {
		return true
	}
	_ = r.Respond("You must be a bot admin to use this command.")
	return false
}

// userID accepts a raw ID or a <@mention>.
func userID(s string) string {
	s = strings.TrimPrefix(s, "<@")
	s = strings.TrimPrefix(s, "!")
	return strings.TrimSuffix(s, ">")
}

func (p *permissionsCommand) grant(r *command.Receiver, user, path string) error {
	if !p.admin(r) {
		return nil
	}
	if err := p.checker.Grant(userID(user), path); err != nil {
		return p.failure(r, err)
	}
	return r.Respond(fmt.Sprintf("Granted %s to %s.", strings.ToLower(path), userID(user)))
}

func (p *permissionsCommand) revoke(r *command.Receiver, user, path string) error {
	if !p.admin(r) {
		return nil
	}
	if err := p.checker.Revoke(userID(user), path); err != nil {
		return p.failure(r, err)
	}
	return r.Respond(fmt.Sprintf("Revoked %s from %s.", strings.ToLower(path), userID(user)))
}

func (p *permissionsCommand) list(r *command.Receiver, user string) error {
	if !p.admin(r) {
		return nil
	}
	grants, err := p.checker.Grants(userID(user))
	if err != nil {
		return fmt.Errorf("list grants: %w", err)
	}
	if len(grants) == 0 {
		return r.Respond(fmt.Sprintf("%s has no permissions.", userID(user)))
	}
	return r.Respond(fmt.Sprintf("%s has: %s", userID(user), strings.Join(grants, ", ")))
}

func (p *permissionsCommand) failure(r *command.Receiver, err error) error {
	if errors.Is(err, permission.ErrInvalidPath) {
		return r.Respond("Invalid permission path. Use names like `digest` or `digest.add`.")
	}
	return err
}
