// Package permissions holds the authorization rules for the dashboard.
//
// Every function here is a pure predicate over an already-resolved
// Identity (and, where relevant, a Ticket). They never touch storage and
// never fail: an empty or malformed identity simply answers false to
// every elevated check. The same predicates gate writes at the HTTP
// boundary and filter reads before they reach non-admin callers.
package permissions

import "github.com/tickdesk/tickdesk/internal/models"

// IsAdmin reports whether the identity carries the admin role.
func IsAdmin(id models.Identity) bool {
	return id.Role == models.RoleAdmin
}

// CanCreateTicket reports whether the identity may open new tickets.
// Ticket creation is an admin operation; the rule is enforced here and
// nowhere else, so relaxing it later is a one-line change.
func CanCreateTicket(id models.Identity) bool {
	return IsAdmin(id)
}

// CanDeleteTicket reports whether the identity may delete tickets.
func CanDeleteTicket(id models.Identity) bool {
	return IsAdmin(id)
}

// CanMarkDone reports whether the identity may change the ticket's
// status. Admins always can; otherwise only the assignee.
func CanMarkDone(id models.Identity, t *models.Ticket) bool {
	if IsAdmin(id) {
		return true
	}
	return t != nil && id.Username != "" && id.Username == t.AssignedTo
}

// CanViewTicket reports whether the ticket may be shown to the
// identity. Admins see everything; everyone else sees only tickets they
// created or are assigned to.
func CanViewTicket(id models.Identity, t *models.Ticket) bool {
	if IsAdmin(id) {
		return true
	}
	if t == nil || id.Username == "" {
		return false
	}
	return id.Username == t.CreatedBy || id.Username == t.AssignedTo
}

// CanEditTicket reports whether the identity may modify ticket fields
// beyond the status toggle.
func CanEditTicket(id models.Identity, t *models.Ticket) bool {
	if IsAdmin(id) {
		return true
	}
	return t != nil && id.Username != "" && id.Username == t.AssignedTo
}

// CanCreateUser reports whether the identity may create accounts.
func CanCreateUser(id models.Identity) bool {
	return IsAdmin(id)
}

// CanDeleteUser reports whether the identity may delete accounts.
func CanDeleteUser(id models.Identity) bool {
	return IsAdmin(id)
}

// CanUpdateUser reports whether the identity may change accounts.
func CanUpdateUser(id models.Identity) bool {
	return IsAdmin(id)
}

// CanManageCompanies reports whether the identity may create, update or
// delete companies. The company list itself is readable by anyone who
// is logged in.
func CanManageCompanies(id models.Identity) bool {
	return IsAdmin(id)
}

// CanViewReports reports whether the identity may open the aggregate
// report views and exports.
func CanViewReports(id models.Identity) bool {
	return IsAdmin(id)
}

// FilterViewable returns the subset of tickets the identity may see,
// preserving order. Admins get the input back untouched.
func FilterViewable(id models.Identity, tickets []models.Ticket) []models.Ticket {
	if IsAdmin(id) {
		return tickets
	}
	visible := make([]models.Ticket, 0, len(tickets))
	for i := range tickets {
		if CanViewTicket(id, &tickets[i]) {
			visible = append(visible, tickets[i])
		}
	}
	return visible
}
