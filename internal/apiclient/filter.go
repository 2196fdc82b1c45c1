package apiclient

import (
	"strings"

	"acservice/internal/model"
)

// FilterAll disables a status or priority filter
const FilterAll = "all"

// FlowForRole picks the post-login flow: admins get the admin flow, everyone else the user flow
func FlowForRole(role model.Role) model.Flow { return role.Flow() }

// AssignableUsers drops admins, who cannot be assigned complaints
func AssignableUsers(users []User) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		if u.Role != model.RoleAdmin {
			out = append(out, u)
		}
	}
	return out
}

// SearchUsers matches q case-insensitively against the name, or as a substring of the phone
func SearchUsers(users []User, q string) []User {
	if q == "" {
		return users
	}
	lq := strings.ToLower(q)
	out := make([]User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), lq) || strings.Contains(u.Phone, q) {
			out = append(out, u)
		}
	}
	return out
}

// ComplaintFilter narrows a complaint list. Empty or "all" status and
// priority match everything; Query matches title or assignee name.
type ComplaintFilter struct {
	Query    string
	Status   string
	Priority string
}

func FilterComplaints(list []Complaint, f ComplaintFilter) []Complaint {
	q := strings.ToLower(f.Query)
	status := normalizeEnum(f.Status, model.ParseComplaintStatus)
	priority := normalizeEnum(f.Priority, model.ParsePriority)
	out := make([]Complaint, 0, len(list))
	for _, c := range list {
		if q != "" &&
			!strings.Contains(strings.ToLower(c.Title), q) &&
			!strings.Contains(strings.ToLower(c.AssigneeName()), q) {
			continue
		}
		if !matchesEnum(status, string(c.Status)) || !matchesEnum(priority, string(c.Priority)) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// normalizeEnum maps filter text such as "pending" or "In Progress" to the
// canonical value. Unknown text is kept so it matches nothing.
func normalizeEnum[T ~string](v string, parse func(string) (T, error)) string {
	if v == "" || strings.EqualFold(v, FilterAll) {
		return ""
	}
	parsed, err := parse(v)
	if err != nil {
		return v
	}
	return string(parsed)
}

func matchesEnum(want, got string) bool {
	return want == "" || want == got
}
