package auth

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Permissions maps a role to the permissions it grants, e.g.
// RECEPTIONIST -> [patient:view patient:create].
type Permissions map[string][]string

type permissionsFile struct {
	Roles map[string][]string `yaml:"roles"`
}

// LoadPermissions reads a role file. Role names are upper-cased so they
// compare equal to the realm roles in tokens, and every permission must be
// written resource:action.
func LoadPermissions(path string) (Permissions, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read permissions %s: %w", path, err)
	}
	var pf permissionsFile
	if err := yaml.Unmarshal(b, &pf); err != nil {
		return nil, fmt.Errorf("parse permissions %s: %w", path, err)
	}
	if len(pf.Roles) == 0 {
		return nil, fmt.Errorf("permissions %s: no roles defined", path)
	}

	perms := make(Permissions, len(pf.Roles))
	for role, granted := range pf.Roles {
		role = strings.ToUpper(strings.TrimSpace(role))
		seen := map[string]bool{}
		for _, p := range granted {
			resource, action, ok := strings.Cut(p, ":")
			if !ok || resource == "" || action == "" {
				return nil, fmt.Errorf("permissions %s: role %s: %q is not resource:action", path, role, p)
			}
			if !seen[p] {
				seen[p] = true
				perms[role] = append(perms[role], p)
			}
		}
	}
	return perms, nil
}
