// Package permission implements bot-scope permissions: dotted paths such as
// "digest" or "digest.add" granted to users, with bot admins allowed
// everything.
package permission

import (
	"errors"
	"regexp"
	"slices"
	"strings"
)

// ErrInvalidPath is returned for malformed permission paths.
var ErrInvalidPath = errors.New("invalid permission path")

var pathRegex = regexp.MustCompile(`^[a-z0-9_-]+(\.[a-z0-9_-]+)*$`)

// Normalize lowercases path and validates it.
func Normalize(path string) (string, error) {
	path = strings.ToLower(strings.TrimSpace(path))
	if !pathRegex.MatchString(path) {
		return "", ErrInvalidPath
	}
	return path, nil
}

// Store persists the grants of each user.
type Store interface {
	Grants(userID string) ([]string, error)
	Grant(userID, path string) error
	Revoke(userID, path string) error
}

// Checker answers permission questions.
type Checker struct {
	store   Store
	isAdmin func(userID string) bool
}

// NewChecker returns a Checker backed by store. isAdmin may be nil.
func NewChecker(store Store, isAdmin func(userID string) bool) *Checker {
	if isAdmin == nil {
		isAdmin = func(string) bool { return false }
	}
	return &Checker{store: store, isAdmin: isAdmin}
}

// IsAdmin reports whether userID is a bot admin.
func (c *Checker) IsAdmin(userID string) bool {
	return userID != "" && c.isAdmin(userID)
}

// Allowed reports whether userID holds path or one of its parents. A grant
// of "digest" satisfies "digest.add"; the reverse does not hold.
func (c *Checker) Allowed(userID, path string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	if c.IsAdmin(userID) {
		return true, nil
	}
	path, err := Normalize(path)
	if err != nil {
		return false, err
	}
	grants, err := c.store.Grants(userID)
	if err != nil {
		return false, err
	}

	parts := strings.Split(path, ".")
	for i := range parts {
		if slices.Contains(grants, strings.Join(parts[:i+1], ".")) {
			return true, nil
		}
	}
	return false, nil
}

// Grants lists the paths granted to userID.
func (c *Checker) Grants(userID string) ([]string, error) {
	return c.store.Grants(userID)
}

// Grant gives path to userID.
func (c *Checker) Grant(userID, path string) error {
	path, err := Normalize(path)
	if err != nil {
		return err
	}
	return c.store.Grant(userID, path)
}

// Revoke removes path from userID. Parent and child grants are untouched.
func (c *Checker) Revoke(userID, path string) error {
	path, err := Normalize(path)
	if err != nil {
		return err
	}
	return c.store.Revoke(userID, path)
}
