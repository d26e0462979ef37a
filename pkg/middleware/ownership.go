package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/taskvault/taskvault/pkg/auth"
	"github.com/taskvault/taskvault/pkg/contextkeys"
	"github.com/taskvault/taskvault/pkg/errkind"
	"github.com/taskvault/taskvault/pkg/httputil"
	"github.com/taskvault/taskvault/pkg/store"
)

// OwnershipRule decides whether a principal may access a specific resource
// instance. instanceID is 0 when the route carries no id (creation and
// list routes).
type OwnershipRule interface {
	Allow(ctx context.Context, principal auth.Principal, instanceID int64) (bool, error)
}

// TaskOwnershipRule allows access iff the task exists, is owned by the
// principal, and its id equals the requested id. The lookup is filtered by
// owner at the store, so a task owned by someone else is indistinguishable
// from a missing one; the rule never fetches by id alone and compares the
// owner afterwards.
type TaskOwnershipRule struct {
	tasks store.TaskStore
}

// NewTaskOwnershipRule creates the task ownership rule.
func NewTaskOwnershipRule(tasks store.TaskStore) *TaskOwnershipRule {
	return &TaskOwnershipRule{tasks: tasks}
}

// Allow implements OwnershipRule.
func (rule *TaskOwnershipRule) Allow(ctx context.Context, principal auth.Principal, instanceID int64) (bool, error) {
	task, err := rule.tasks.GetTaskOwnedBy(ctx, instanceID, principal.SubjectID)
	if errkind.Is(err, errkind.NotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return task.ID == instanceID, nil
}

// SelfRule allows access iff the requested instance id equals the
// principal's own subject id. It backs routes where a user manages its own
// profile and needs no store lookup.
type SelfRule struct{}

// Allow implements OwnershipRule.
func (SelfRule) Allow(_ context.Context, principal auth.Principal, instanceID int64) (bool, error) {
	return instanceID == principal.SubjectID, nil
}

// OwnershipGuard intercepts every protected request and decides allow/deny
// for the resource instance the route targets. Rules are registered per
// resource kind at startup; a request whose kind has no registered rule is
// denied outright, so forgetting to register a new kind fails closed
// instead of silently degrading to a wrong default.
type OwnershipGuard struct {
	rules map[string]OwnershipRule
	log   *logrus.Logger
}

// NewOwnershipGuard creates an empty guard. A nil logger falls back to the
// logrus default.
func NewOwnershipGuard(log *logrus.Logger) *OwnershipGuard {
	if log == nil {
		log = logrus.New()
	}
	return &OwnershipGuard{rules: make(map[string]OwnershipRule), log: log}
}

// Register binds a resource kind to its ownership rule. Fails on empty
// kinds and duplicate registrations so wiring mistakes surface at startup.
func (g *OwnershipGuard) Register(kind string, rule OwnershipRule) error {
	if kind == "" {
		return fmt.Errorf("resource kind must not be empty")
	}
	if rule == nil {
		return fmt.Errorf("ownership rule for %q must not be nil", kind)
	}
	if _, exists := g.rules[kind]; exists {
		return fmt.Errorf("ownership rule for %q already registered", kind)
	}
	g.rules[kind] = rule
	return nil
}

// MustRegister is Register that panics on wiring errors. Guard assembly
// happens once at startup, before the server accepts traffic.
func (g *OwnershipGuard) MustRegister(kind string, rule OwnershipRule) {
	if err := g.Register(kind, rule); err != nil {
		panic(err)
	}
}

// Handler wraps an HTTP handler with the ownership check. It requires the
// authentication middleware to have run first.
func (g *OwnershipGuard) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := contextkeys.PrincipalFrom(r.Context())
		if !ok {
			httputil.WriteUnauthorized(w, "missing authorization header")
			return
		}

		kind := resourceKind(r.URL.Path)
		instanceID := instanceID(r)

		rule, ok := g.rules[kind]
		if !ok {
			g.log.WithFields(logrus.Fields{
				"operation":     "guard",
				"resource_kind": kind,
			}).Warn("no ownership rule registered for resource kind, denying")
			httputil.WriteForbidden(w)
			return
		}

		allowed, err := rule.Allow(r.Context(), principal, instanceID)
		if err != nil {
			g.log.WithError(err).WithFields(logrus.Fields{
				"operation":     "guard",
				"resource_kind": kind,
				"instance_id":   instanceID,
			}).Error("ownership check failed")
			httputil.WriteInternalError(w)
			return
		}
		if !allowed {
			httputil.WriteForbidden(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// resourceKind extracts the resource kind from the route path: the first
// segment after the leading slash, e.g. "task" for /task/update/7.
func resourceKind(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) > 1 {
		return parts[1]
	}
	return ""
}

// instanceID parses the numeric id route parameter. Absent or non-numeric
// ids collapse to the 0 sentinel, meaning "no specific instance".
func instanceID(r *http.Request) int64 {
	raw, ok := mux.Vars(r)["id"]
	if !ok {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return id
}
