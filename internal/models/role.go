package models

import "strings"

// RoutingRole identifies the staff position responsible for an inquiry nature.
type RoutingRole string

const (
	RoleHeadOfOffice          RoutingRole = "HeadOfOffice"
	RoleDeputy                RoutingRole = "Deputy"
	RoleAdministrativeOfficer RoutingRole = "AdministrativeOfficer"
	RoleExaminer              RoutingRole = "Examiner"
)

// RoutingRoles lists every canonical routing role.
var RoutingRoles = []RoutingRole{
	RoleHeadOfOffice,
	RoleDeputy,
	RoleAdministrativeOfficer,
	RoleExaminer,
}

// legacyRoleNames maps the spellings used by older data exports onto the
// canonical identifiers. The legacy system stored "Head of Office" on natures
// but "HeadOfOffice" on personnel; both normalise to the same role here.
var legacyRoleNames = map[string]RoutingRole{
	"head of office":         RoleHeadOfOffice,
	"headofoffice":           RoleHeadOfOffice,
	"deputy":                 RoleDeputy,
	"administrative officer": RoleAdministrativeOfficer,
	"administrativeofficer":  RoleAdministrativeOfficer,
	"examiner":               RoleExaminer,
}

// NormalizeRole resolves a raw role literal (canonical or legacy spelling)
// into its canonical RoutingRole. The second return is false for unknown
// literals.
func NormalizeRole(raw string) (RoutingRole, bool) {
	role, ok := legacyRoleNames[strings.ToLower(strings.TrimSpace(raw))]
	return role, ok
}

// Valid reports whether the role is one of the canonical values.
func (r RoutingRole) Valid() bool {
	switch r {
	case RoleHeadOfOffice, RoleDeputy, RoleAdministrativeOfficer, RoleExaminer:
		return true
	}
	return false
}

// DisplayName returns the human-readable form of the role.
func (r RoutingRole) DisplayName() string {
	switch r {
	case RoleHeadOfOffice:
		return "Head of Office"
	case RoleAdministrativeOfficer:
		return "Administrative Officer"
	default:
		return string(r)
	}
}
