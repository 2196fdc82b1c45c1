package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"acservice/internal/apiclient"
	"acservice/internal/model"
)

func (a *app) login(ctx context.Context, args []string) error {
	fs := newFlags("login")
	phone := fs.String("phone", "", "registered phone number")
	password := fs.String("password", "", "account password")
	if err := parse(fs, args); err != nil {
		return err
	}

	res, err := a.client.Login(ctx, apiclient.LoginForm{Phone: *phone, Password: *password})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s (%s), %s view\n", res.User.Name, res.User.Role, res.Flow)
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *app) me(ctx context.Context) error {
	u, err := a.client.Me(ctx)
	if err != nil {
		return err
	}
	return a.printUsers([]apiclient.User{*u})
}

// --- users ---

func (a *app) users(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "list":
		fs := newFlags("users list")
		search := fs.String("search", "", "match name or phone")
		assignable := fs.Bool("assignable", false, "only accounts that can take complaints")
		if err := parse(fs, args); err != nil {
			return err
		}
		users, err := a.client.ListUsers(ctx)
		if err != nil {
			return err
		}
		if *assignable {
			users = apiclient.AssignableUsers(users)
		}
		return a.printUsers(apiclient.SearchUsers(users, *search))

	case "create", "update":
		fs := newFlags("users " + sub)
		var form apiclient.UserForm
		id := fs.String("id", "", "account to update")
		fs.StringVar(&form.Name, "name", "", "full name")
		fs.StringVar(&form.Phone, "phone", "", "phone number")
		fs.StringVar(&form.Password, "password", "", "new password")
		fs.StringVar(&form.ConfirmPassword, "confirm", "", "repeat the password")
		role := fs.String("role", "", "admin, user or client")
		if err := parse(fs, args); err != nil {
			return err
		}
		if *role != "" {
			r, err := model.ParseRole(*role)
			if err != nil {
				return err
			}
			form.Role = r
		}

		var (
			u   *apiclient.User
			err error
		)
		if sub == "create" {
			u, err = a.client.CreateUser(ctx, form)
		} else {
			if *id == "" {
				return errUsage
			}
			u, err = a.updateUser(ctx, *id, form)
		}
		if err != nil {
			return err
		}
		return a.printUsers([]apiclient.User{*u})

	case "delete":
		if len(args) != 1 {
			return errUsage
		}
		if err := a.client.DeleteUser(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "User deleted successfully")
		return nil
	}
	return errUsage
}

// updateUser fills unset form fields from the stored account so an edit
// only changes what was given on the command line
func (a *app) updateUser(ctx context.Context, id string, form apiclient.UserForm) (*apiclient.User, error) {
	users, err := a.client.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, cur := range users {
		if cur.ID != id {
			continue
		}
		if form.Name == "" {
			form.Name = cur.Name
		}
		if form.Phone == "" {
			form.Phone = cur.Phone
		}
		if form.Role == "" {
			form.Role = cur.Role
		}
		return a.client.UpdateUser(ctx, id, form)
	}
	return nil, errors.New("user not found")
}

func (a *app) printUsers(users []apiclient.User) error {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPHONE\tROLE")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Phone, u.Role)
	}
	return w.Flush()
}

// --- complaints ---

func (a *app) complaints(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "list", "my":
		fs := newFlags("complaints " + sub)
		var f apiclient.ComplaintFilter
		fs.StringVar(&f.Query, "search", "", "match title or technician")
		fs.StringVar(&f.Status, "status", apiclient.FilterAll, "open, in_progress, done, closed or all")
		fs.StringVar(&f.Priority, "priority", apiclient.FilterAll, "low, medium, high or all")
		if err := parse(fs, args); err != nil {
			return err
		}
		var (
			list []apiclient.Complaint
			err  error
		)
		if sub == "my" {
			list, err = a.client.MyComplaints(ctx)
		} else {
			list, err = a.client.ListComplaints(ctx, apiclient.ComplaintQuery{})
		}
		if err != nil {
			return err
		}
		return a.printComplaints(apiclient.FilterComplaints(list, f))

	case "get":
		if len(args) != 1 {
			return errUsage
		}
		c, err := a.client.GetComplaint(ctx, args[0])
		if err != nil {
			return err
		}
		return a.printJSON(c)

	case "create", "update":
		return a.editComplaint(ctx, sub, args)
	}
	return errUsage
}

// complaintText binds a string flag to one ComplaintForm field
var complaintText = []struct {
	name, usage string
	field       func(*apiclient.ComplaintForm) *string
}{
	{"title", "short summary", func(f *apiclient.ComplaintForm) *string { return &f.Title }},
	{"description", "problem reported", func(f *apiclient.ComplaintForm) *string { return &f.Description }},
	{"customer", "customer name", func(f *apiclient.ComplaintForm) *string { return &f.CustomerName }},
	{"customer-phone", "customer phone", func(f *apiclient.ComplaintForm) *string { return &f.CustomerPhone }},
	{"address", "visit address", func(f *apiclient.ComplaintForm) *string { return &f.CustomerAddress }},
	{"ac-type", "unit type such as split or window", func(f *apiclient.ComplaintForm) *string { return &f.ACType }},
	{"brand", "AC brand", func(f *apiclient.ComplaintForm) *string { return &f.ACBrand }},
	{"model", "AC model", func(f *apiclient.ComplaintForm) *string { return &f.ACModel }},
	{"serial", "AC serial number", func(f *apiclient.ComplaintForm) *string { return &f.ACSerialNumber }},
	{"notes", "technician notes", func(f *apiclient.ComplaintForm) *string { return &f.TechnicianNotes }},
}

// editComplaint creates a complaint or updates one. An update starts from
// the stored complaint, so only the flags given change it.
func (a *app) editComplaint(ctx context.Context, sub string, args []string) error {
	fs := newFlags("complaints " + sub)
	id := fs.String("id", "", "complaint to update")
	file := fs.String("f", "", "JSON file with the complaint fields")
	text := make(map[string]*string, len(complaintText))
	for _, t := range complaintText {
		text[t.name] = fs.String(t.name, "", t.usage)
	}
	status := fs.String("status", "", "open, in_progress, done or closed")
	priority := fs.String("priority", "", "low, medium or high")
	serviceType := fs.String("service", "", "repair, maintenance or installation")
	if err := parse(fs, args); err != nil {
		return err
	}
	if sub == "update" && *id == "" {
		return errUsage
	}

	var form apiclient.ComplaintForm
	if sub == "update" {
		cur, err := a.client.GetComplaint(ctx, *id)
		if err != nil {
			return err
		}
		form = formFromComplaint(cur)
	}
	if *file != "" {
		if err := readJSONFile(*file, &form); err != nil {
			return err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		for _, t := range complaintText {
			if t.name == f.Name {
				*t.field(&form) = *text[t.name]
			}
		}
	})
	if err := applyEnums(&form, *status, *priority, *serviceType); err != nil {
		return err
	}

	var (
		c   *apiclient.Complaint
		err error
	)
	if sub == "create" {
		c, err = a.client.CreateComplaint(ctx, form)
	} else {
		c, err = a.client.UpdateComplaint(ctx, *id, form)
	}
	if err != nil {
		return err
	}
	return a.printComplaints([]apiclient.Complaint{*c})
}

// formFromComplaint copies the editable fields. Amount stays unset so the
// payment record is left alone.
func formFromComplaint(c *apiclient.Complaint) apiclient.ComplaintForm {
	warranty := c.WarrantyInfo
	return apiclient.ComplaintForm{
		Title:           c.Title,
		Description:     c.Description,
		Status:          c.Status,
		Priority:        c.Priority,
		ServiceType:     c.ServiceType,
		CustomerName:    c.CustomerName,
		CustomerPhone:   c.CustomerPhone,
		CustomerAddress: c.CustomerAddress,
		ACType:          c.ACType,
		ACBrand:         c.ACBrand,
		ACModel:         c.ACModel,
		ACSerialNumber:  c.ACSerialNumber,
		TechnicianNotes: c.TechnicianNotes,
		PartsReplaced:   c.PartsReplaced,
		WarrantyInfo:    &warranty,
	}
}

func applyEnums(form *apiclient.ComplaintForm, status, priority, serviceType string) error {
	if status != "" {
		s, err := model.ParseComplaintStatus(status)
		if err != nil {
			return err
		}
		form.Status = s
	}
	if priority != "" {
		p, err := model.ParsePriority(priority)
		if err != nil {
			return err
		}
		form.Priority = p
	}
	if serviceType != "" {
		st, err := model.ParseServiceType(serviceType)
		if err != nil {
			return err
		}
		form.ServiceType = st
	}
	return nil
}

func (a *app) assign(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	c, err := a.client.AssignComplaint(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Assigned %q to %s\n", c.Title, c.AssigneeName())
	return nil
}

func (a *app) payment(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errUsage
	}
	id, args := args[0], args[1:]

	fs := newFlags("payment")
	amount := fs.String("amount", "", "total billed")
	advance := fs.String("advance", "", "amount collected so far")
	method := fs.String("method", "", "cash, upi, bank_transfer, card or online")
	notes := fs.String("notes", "", "payment notes")
	if err := parse(fs, args); err != nil {
		return err
	}

	var m model.PaymentMethod
	if *method != "" {
		parsed, err := model.ParsePaymentMethod(*method)
		if err != nil {
			return err
		}
		m = parsed
	}
	form, err := apiclient.ParsePaymentForm(*amount, *advance, m, *notes)
	if err != nil {
		return err
	}
	c, err := a.client.UpdatePayment(ctx, id, form)
	if err != nil {
		return err
	}
	p := c.Payment
	fmt.Fprintf(a.out, "Payment %s: amount %s, advance %s, balance %s\n",
		p.Status, p.Amount.StringFixed(2), p.AdvanceAmount.StringFixed(2), p.BalanceAmount.StringFixed(2))
	return nil
}

func (a *app) printComplaints(list []apiclient.Complaint) error {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY\tTECHNICIAN\tBALANCE")
	for _, c := range list {
		tech := c.AssigneeName()
		if tech == "" {
			tech = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Title, c.Status, c.Priority, tech, c.Payment.BalanceAmount.StringFixed(2))
	}
	return w.Flush()
}

// --- admin ---

func (a *app) dashboard(ctx context.Context) error {
	s, err := a.client.Dashboard(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Users\t%d\n", s.TotalUsers)
	fmt.Fprintf(w, "Complaints\t%d\n", s.TotalComplaints)
	fmt.Fprintf(w, "Open\t%d\n", s.OpenComplaints)
	fmt.Fprintf(w, "Revenue\t%s\n", s.TotalRevenue.StringFixed(2))
	fmt.Fprintf(w, "Pending\t%s\n", s.PendingPayments.StringFixed(2))
	return w.Flush()
}

func (a *app) audit(ctx context.Context, args []string) error {
	fs := newFlags("audit")
	entity := fs.String("entity", "", "only entries for this user or complaint")
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 20, "entries per page")
	if err := parse(fs, args); err != nil {
		return err
	}

	p, err := a.client.AuditLogs(ctx, *entity, *page, *limit)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tWHO\tACTION\tENTITY")
	for _, l := range p.Logs {
		who := l.UserName
		if who == "" {
			who = "system"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.CreatedAt, who, l.Action, l.EntityName)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "page %d, %d of %d entries\n", p.Page, len(p.Logs), p.Total)
	return nil
}

func (a *app) watch(ctx context.Context) error {
	fmt.Fprintln(a.out, "Watching complaint events, Ctrl-C to stop")
	return a.client.Watch(ctx, func(e apiclient.Event) {
		if e.Complaint == nil {
			fmt.Fprintln(a.out, e.Type)
			return
		}
		fmt.Fprintf(a.out, "%s\t%s\t%s\t%s\n", e.Type, e.Complaint.ID, e.Complaint.Title, e.Complaint.Status)
	})
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func readJSONFile(path string, dst any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
