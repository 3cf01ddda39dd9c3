package authorize

import (
	"context"
	"errors"
	"fmt"

	casbin "github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

var (
	ErrForbidden   = errors.New("forbidden")
	ErrInvalidArgs = errors.New("invalid authorization arguments")
)

// casbinModel is the RBAC model. Everything lives in process memory; there is
// no adapter because policies are seeded from the fixture roster at startup.
const casbinModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

// IAuthorization is the only thing services/middleware should depend on.
type IAuthorization interface {
	// Enforce answers: "May subject perform action under this permission tag?"
	Enforce(ctx context.Context, userID string, perm Permission, action Action) (bool, error)

	// MustEnforce is convenience for middleware: returns ErrForbidden if not allowed.
	MustEnforce(ctx context.Context, userID string, perm Permission, action Action) error

	// Role management (grouping policies): g, user_id, role
	AssignRole(ctx context.Context, userID string, role Role) (bool, error)
	RolesForUser(ctx context.Context, userID string) ([]Role, error)

	// PermissionsForUser lists the permission tags the user's roles reach.
	// A wildcard grant collapses to ["all"], mirroring the roster's tag.
	PermissionsForUser(ctx context.Context, userID string) ([]string, error)

	// Permission management: p, role, permission, action
	AddPermission(ctx context.Context, role Role, perm Permission, action Action) (bool, error)

	Raw() *casbin.SyncedEnforcer
}

// Authorization is a thin typed wrapper around a synced casbin enforcer.
type Authorization struct {
	enforcer  *casbin.SyncedEnforcer
	adminRole Role
}

// NewEnforcer builds an in-memory synced enforcer from the embedded model.
func NewEnforcer() (*casbin.SyncedEnforcer, error) {
	m, err := model.NewModelFromString(casbinModel)
	if err != nil {
		return nil, fmt.Errorf("parse casbin model: %w", err)
	}
	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}
	return e, nil
}

// NewAuthorization wraps an already-configured enforcer.
func NewAuthorization(e *casbin.SyncedEnforcer) (IAuthorization, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: enforcer is nil", ErrInvalidArgs)
	}
	return &Authorization{enforcer: e, adminRole: RoleAdmin}, nil
}

func (a *Authorization) Raw() *casbin.SyncedEnforcer { return a.enforcer }

func (a *Authorization) Enforce(ctx context.Context, userID string, perm Permission, action Action) (bool, error) {
	_ = ctx // reserved for tracing/audit later

	if userID == "" {
		return false, fmt.Errorf("%w: user id is empty", ErrInvalidArgs)
	}
	if perm == "" {
		return false, fmt.Errorf("%w: permission is empty", ErrInvalidArgs)
	}
	if action == "" {
		return false, fmt.Errorf("%w: action is empty", ErrInvalidArgs)
	}

	// Guardrails: only known constants reach the enforcer
	if _, ok := KnownPermissions[perm]; !ok && perm != WildcardPermission {
		return false, fmt.Errorf("%w: unknown permission: %q", ErrInvalidArgs, perm)
	}
	if _, ok := KnownActions[action]; !ok && action != WildcardAction {
		return false, fmt.Errorf("%w: unknown action: %q", ErrInvalidArgs, action)
	}

	return a.enforcer.Enforce(userID, string(perm), string(action))
}

func (a *Authorization) MustEnforce(ctx context.Context, userID string, perm Permission, action Action) error {
	ok, err := a.Enforce(ctx, userID, perm, action)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

// ---- Grouping (roles) ----

func (a *Authorization) AssignRole(ctx context.Context, userID string, role Role) (bool, error) {
	_ = ctx
	if userID == "" || role == "" {
		return false, fmt.Errorf("%w: empty user/role", ErrInvalidArgs)
	}
	if _, ok := KnownRoles[role]; !ok {
		return false, fmt.Errorf("%w: unknown role: %q", ErrInvalidArgs, role)
	}
	return a.enforcer.AddGroupingPolicy(userID, string(role))
}

func (a *Authorization) RolesForUser(ctx context.Context, userID string) ([]Role, error) {
	_ = ctx
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is empty", ErrInvalidArgs)
	}
	roles, err := a.enforcer.GetRolesForUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]Role, 0, len(roles))
	for _, r := range roles {
		out = append(out, Role(r))
	}
	return out, nil
}

func (a *Authorization) PermissionsForUser(ctx context.Context, userID string) ([]string, error) {
	roles, err := a.RolesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	var out []string
	for _, role := range roles {
		policies, err := a.enforcer.GetFilteredPolicy(0, string(role))
		if err != nil {
			return nil, err
		}
		for _, p := range policies {
			if len(p) < 2 {
				continue
			}
			if p[1] == string(WildcardPermission) {
				return []string{"all"}, nil
			}
			if _, dup := seen[p[1]]; !dup {
				seen[p[1]] = struct{}{}
				out = append(out, p[1])
			}
		}
	}
	return out, nil
}

// ---- Permissions (p rules) ----

func (a *Authorization) AddPermission(ctx context.Context, role Role, perm Permission, action Action) (bool, error) {
	_ = ctx
	if role == "" || perm == "" || action == "" {
		return false, fmt.Errorf("%w: empty permission fields", ErrInvalidArgs)
	}
	if _, ok := KnownRoles[role]; !ok && role != WildcardRole {
		return false, fmt.Errorf("%w: unknown role: %q", ErrInvalidArgs, role)
	}
	if _, ok := KnownPermissions[perm]; !ok && perm != WildcardPermission {
		return false, fmt.Errorf("%w: unknown permission: %q", ErrInvalidArgs, perm)
	}
	if _, ok := KnownActions[action]; !ok && action != WildcardAction {
		return false, fmt.Errorf("%w: unknown action: %q", ErrInvalidArgs, action)
	}

	return a.enforcer.AddPolicy(string(role), string(perm), string(action))
}
