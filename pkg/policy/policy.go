package policy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/acl/pkg/acl"
)

// Rule is a single (action, resource) grant.
type Rule struct {
	Action   string `yaml:"action"`
	Resource string `yaml:"resource"`
}

// RoleSpec declares a role and its direct grants.
type RoleSpec struct {
	Name     string `yaml:"name"`
	Inherits string `yaml:"inherits,omitempty"`
	Allow    []Rule `yaml:"allow,omitempty"`
}

// Grant gives one rule to several roles at once.
type Grant struct {
	Roles    []string `yaml:"roles"`
	Action   string   `yaml:"action"`
	Resource string   `yaml:"resource"`
}

// Policy is a decoded policy document.
type Policy struct {
	Roles  []RoleSpec `yaml:"roles"`
	Grants []Grant    `yaml:"grants,omitempty"`
}

// Parse decodes and validates a policy document. Unknown fields are rejected.
func Parse(r io.Reader) (*Policy, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Policy
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrInvalidPolicy, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadFile parses the policy document at path.
func LoadFile(path string) (*Policy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// Validate checks that role names are present and unique and that every
// grant names a declared role. Parents are not checked because they may be
// registered on the ACL outside the document. A parent that is never
// registered makes permission checks on its children panic.
func (p *Policy) Validate() error {
	declared := make(map[string]struct{}, len(p.Roles))
	for i, r := range p.Roles {
		if r.Name == "" {
			return errors.Join(ErrInvalidPolicy, fmt.Errorf("roles[%d]: %w", i, acl.ErrEmptyName))
		}
		if _, dup := declared[r.Name]; dup {
			return errors.Join(ErrInvalidPolicy, fmt.Errorf("roles[%d]: %w: %q", i, ErrDuplicateRole, r.Name))
		}
		declared[r.Name] = struct{}{}
	}

	for i, g := range p.Grants {
		for _, name := range g.Roles {
			if _, ok := declared[name]; !ok {
				return errors.Join(ErrInvalidPolicy, fmt.Errorf("grants[%d]: %w: %q", i, ErrUnknownRole, name))
			}
		}
	}
	return nil
}

// Apply registers the roles and grants with a. Roles that already exist keep
// their original parent, as with acl.ACL.AddRole; grants are appended.
func (p *Policy) Apply(ctx context.Context, a *acl.ACL) error {
	if err := p.Validate(); err != nil {
		return err
	}

	for _, r := range p.Roles {
		if err := a.AddRole(ctx, r.Name, r.Inherits); err != nil {
			return fmt.Errorf("policy: role %q: %w", r.Name, err)
		}
	}

	for _, r := range p.Roles {
		for _, rule := range r.Allow {
			if err := a.Allow(ctx, []string{r.Name}, rule.Action, rule.Resource); err != nil {
				return fmt.Errorf("policy: role %q: %w", r.Name, err)
			}
		}
	}

	for i, g := range p.Grants {
		if err := a.Allow(ctx, g.Roles, g.Action, g.Resource); err != nil {
			return fmt.Errorf("policy: grants[%d]: %w", i, err)
		}
	}
	return nil
}
