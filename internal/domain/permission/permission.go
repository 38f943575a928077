// Package permission names the protected resources and actions of the ledger API.
package permission

type Resource string

const (
	ResourceAll          Resource = "*"
	ResourceProject      Resource = "project"
	ResourceHousehold    Resource = "household"
	ResourceAssistance   Resource = "assistance"
	ResourceEntitlement  Resource = "entitlement"
	ResourceDistribution Resource = "distribution"
	ResourceRecord       Resource = "record"
	ResourceSummary      Resource = "summary"
	ResourceAudit        Resource = "audit"
)

type Action string

const (
	ActionAll     Action = "*"
	ActionRead    Action = "read"
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionConfirm Action = "confirm"
)

// Policy grants a role one action on one resource.
type Policy struct {
	Role     string
	Resource Resource
	Action   Action
}

// Enforcer decides whether a role may perform an action on a resource.
type Enforcer interface {
	Enforce(role string, resource Resource, action Action) (bool, error)
}

// readableResources are visible to every role. Audit logs are not among them.
var readableResources = []Resource{
	ResourceProject,
	ResourceHousehold,
	ResourceAssistance,
	ResourceEntitlement,
	ResourceDistribution,
	ResourceRecord,
	ResourceSummary,
}

// DefaultPolicies returns the built-in grants. Each role also inherits the
// grants of the role listed for it in DefaultInheritance.
func DefaultPolicies() []Policy {
	policies := make([]Policy, 0, len(readableResources)+8)
	for _, r := range readableResources {
		policies = append(policies, Policy{Role: "viewer", Resource: r, Action: ActionRead})
	}
	policies = append(policies,
		Policy{Role: "field_staff", Resource: ResourceRecord, Action: ActionConfirm},
		Policy{Role: "field_staff", Resource: ResourceHousehold, Action: ActionCreate},
		Policy{Role: "field_staff", Resource: ResourceHousehold, Action: ActionUpdate},
		Policy{Role: "programme_manager", Resource: ResourceProject, Action: ActionCreate},
		Policy{Role: "programme_manager", Resource: ResourceProject, Action: ActionUpdate},
		Policy{Role: "programme_manager", Resource: ResourceDistribution, Action: ActionAll},
		Policy{Role: "programme_manager", Resource: ResourceEntitlement, Action: ActionAll},
		Policy{Role: "programme_manager", Resource: ResourceAssistance, Action: ActionCreate},
		Policy{Role: "admin", Resource: ResourceAll, Action: ActionAll},
	)
	return policies
}

// DefaultInheritance maps a role to the role whose grants it includes.
func DefaultInheritance() map[string]string {
	return map[string]string{
		"field_staff":       "viewer",
		"programme_manager": "field_staff",
		"admin":             "programme_manager",
	}
}
