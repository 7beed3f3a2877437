package facade

import "fmt"

// Operation names as exposed on every transport.
const (
	OpGetTasks      = "get_tasks"
	OpGetCategories = "get_categories"
	OpCreateNote    = "create_note"
	OpHealthCheck   = "health_check"
)

// OperationSpec describes one exposed operation.
type OperationSpec struct {
	Name         string
	Description  string
	RequiresAuth bool
}

// Operations returns the catalog of exposed operations. Every transport
// registers exactly this set, so both surfaces stay in lockstep.
func Operations() []OperationSpec {
	return []OperationSpec{
		{
			Name:         OpGetTasks,
			Description:  "Retrieve the authenticated user's tasks, formatted for mobile display",
			RequiresAuth: true,
		},
		{
			Name:         OpGetCategories,
			Description:  "Retrieve the authenticated user's task categories",
			RequiresAuth: true,
		},
		{
			Name:         OpCreateNote,
			Description:  "Create a sticky note on the authenticated user's board",
			RequiresAuth: true,
		},
		{
			Name:         OpHealthCheck,
			Description:  "Report the health of this server and of the backend",
			RequiresAuth: false,
		},
	}
}

// ValidateRegistration checks that a transport registered exactly the
// cataloged operations. Called once at startup.
func ValidateRegistration(registered []string) error {
	want := Operations()
	seen := make(map[string]bool, len(registered))
	for _, name := range registered {
		seen[name] = true
	}
	for _, op := range want {
		if !seen[op.Name] {
			return fmt.Errorf("operation %q is cataloged but not registered", op.Name)
		}
	}
	if len(registered) != len(want) {
		for _, name := range registered {
			found := false
			for _, op := range want {
				if op.Name == name {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("operation %q is registered but not cataloged", name)
			}
		}
	}
	return nil
}
