package main

import (
	"bufio"
	"cmp"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/simp-lee/svcadmin/internal/client"
	"github.com/simp-lee/svcadmin/internal/console"
	"github.com/simp-lee/svcadmin/internal/domain"
	"github.com/simp-lee/svcadmin/internal/listview"
)

const usage = `usage: console [-config path] [-yes] <resource> <command> [flags] [args]

  bookings  list [-search s] [-status s] [-sort date-desc|date-asc|amount-desc|amount-asc] [-page n] [-size n]
            complete <id> | cancel <id>
  providers list [-search s] [-status active|pending] [-category s] [-sort name-asc|rating-desc|newest] [-page n] [-size n]
            approve <id> | reject <id> | unverify <id>
  services  list [-search s] [-status Active|Inactive] [-category s] [-featured true|false] [-sort name-asc|price-asc|price-desc] [-page n] [-size n]
            toggle-featured <id> | toggle-status <id> | delete <id>
  reviews   list [-search s] [-rating n] [-sort date-desc|date-asc|rating-desc|rating-asc] [-page n] [-size n]
            delete <id>
  settings  show [-tab general|booking|payments|notifications]
            set <tab.field=value>...
  report`

var errUsage = errors.New(usage)

// environment carries what every command needs.
type environment struct {
	api     *client.Client
	opts    console.Options
	out     io.Writer
	in      io.Reader
	confirm bool
}

func (e *environment) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	resource, rest := args[0], args[1:]

	switch resource {
	case "bookings":
		return e.bookings(ctx, rest)
	case "providers":
		return e.providers(ctx, rest)
	case "services":
		return e.services(ctx, rest)
	case "reviews":
		return e.reviews(ctx, rest)
	case "settings":
		return e.settings(ctx, rest)
	case "report":
		return e.report(ctx)
	default:
		return fmt.Errorf("unknown resource %q\n%w", resource, errUsage)
	}
}

// listFlags are the flags shared by every list command.
type listFlags struct {
	fs      *flag.FlagSet
	search  string
	sort    string
	page    int
	size    int
	filters map[string]*string
}

func newListFlags(name string, out io.Writer, filters ...string) *listFlags {
	lf := &listFlags{fs: flag.NewFlagSet(name, flag.ContinueOnError), filters: map[string]*string{}}
	lf.fs.SetOutput(out)
	lf.fs.StringVar(&lf.search, "search", "", "search text")
	lf.fs.StringVar(&lf.sort, "sort", "", "sort key")
	lf.fs.IntVar(&lf.page, "page", 1, "page number")
	lf.fs.IntVar(&lf.size, "size", 0, "page size")
	for _, name := range filters {
		lf.filters[name] = lf.fs.String(name, "", name+" filter")
	}
	return lf
}

// apply pushes the flags into c in one fetch and loads the requested page.
func apply[T any, K cmp.Ordered](ctx context.Context, c *listview.Controller[T, K], lf *listFlags) error {
	err := c.Apply(ctx, func(q *listview.Query) {
		if lf.size > 0 {
			q.PageSize = lf.size
		}
		if lf.sort != "" {
			q.Sort = lf.sort
		}
		for name, value := range lf.filters {
			if *value != "" {
				q.Filters[name] = *value
			}
		}
		q.Search = lf.search
	})
	if err != nil {
		return err
	}
	if lf.page > 1 {
		return c.SetPage(ctx, lf.page)
	}
	return nil
}

// locate walks the list until id is loaded into c.
func locate[T any, K cmp.Ordered](ctx context.Context, c *listview.Controller[T, K], id K) error {
	if err := c.SetPageSize(ctx, listview.MaxPageSize); err != nil {
		return err
	}
	if err := c.Refresh(ctx); err != nil {
		return err
	}
	for {
		if _, ok := c.Get(id); ok {
			return nil
		}
		v := c.Snapshot()
		if v.Query.Page >= v.TotalPages {
			return domain.NewAppError(domain.CodeNotFound, fmt.Sprintf("%v not found", id), nil)
		}
		if err := c.SetPage(ctx, v.Query.Page+1); err != nil {
			return err
		}
	}
}

// ask shows the confirmation copy for op and reports whether the operator agreed.
func (e *environment) ask(op console.Operation) (bool, error) {
	if !e.confirm {
		return true, nil
	}
	fmt.Fprintf(e.out, "%s [y/N]: ", console.ConfirmationCopy(op))
	line, err := bufio.NewReader(e.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func parseID(args []string) (uint, error) {
	if len(args) != 1 {
		return 0, errors.New("expected exactly one id")
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return uint(id), nil
}

func (e *environment) bookings(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	c, err := console.NewBookings(e.api, e.opts)
	if err != nil {
		return err
	}
	defer c.Close()

	switch cmd := args[0]; cmd {
	case "list":
		lf := newListFlags("bookings list", e.out, "status")
		if err := lf.fs.Parse(args[1:]); err != nil {
			return err
		}
		if err := apply(ctx, c.Controller, lf); err != nil {
			return err
		}
		printBookings(e.out, c.Snapshot())
		return nil
	case "complete", "cancel":
		if len(args) != 2 {
			return errors.New("expected exactly one booking id")
		}
		id := args[1]
		c.SetSearchText(id)
		if err := locate(ctx, c.Controller, id); err != nil {
			return err
		}
		op, action := console.OpComplete, c.Complete
		if cmd == "cancel" {
			op, action = console.OpCancel, c.Cancel
		}
		return e.mutate(ctx, op, func(ctx context.Context) error { return action(ctx, id) }, func() {
			b, _ := c.Get(id)
			fmt.Fprintf(e.out, "booking %s is now %s\n", b.ID, b.Status)
		})
	default:
		return fmt.Errorf("unknown bookings command %q", cmd)
	}
}

func (e *environment) providers(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	c, err := console.NewProviders(e.api, e.opts)
	if err != nil {
		return err
	}
	defer c.Close()

	switch cmd := args[0]; cmd {
	case "list":
		lf := newListFlags("providers list", e.out, "status", "category")
		if err := lf.fs.Parse(args[1:]); err != nil {
			return err
		}
		if err := apply(ctx, c.Controller, lf); err != nil {
			return err
		}
		printProviders(e.out, c.Snapshot())
		return nil
	case "approve", "reject", "unverify":
		id, err := parseID(args[1:])
		if err != nil {
			return err
		}
		if err := locate(ctx, c.Controller, id); err != nil {
			return err
		}
		op, action := console.OpApprove, c.Approve
		switch cmd {
		case "reject":
			op, action = console.OpReject, c.Reject
		case "unverify":
			op, action = console.OpUnverify, c.Unverify
		}
		return e.mutate(ctx, op, func(ctx context.Context) error { return action(ctx, id) }, func() {
			p, _ := c.Get(id)
			fmt.Fprintf(e.out, "provider %d (%s) is now %s\n", p.ID, p.Name, console.ProviderStatus(p))
		})
	default:
		return fmt.Errorf("unknown providers command %q", cmd)
	}
}

func (e *environment) services(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	c, err := console.NewServices(e.api, e.opts)
	if err != nil {
		return err
	}
	defer c.Close()

	switch cmd := args[0]; cmd {
	case "list":
		lf := newListFlags("services list", e.out, "status", "category", "featured")
		if err := lf.fs.Parse(args[1:]); err != nil {
			return err
		}
		if err := apply(ctx, c.Controller, lf); err != nil {
			return err
		}
		printServices(e.out, c.Snapshot())
		return nil
	case "toggle-featured", "toggle-status", "delete":
		id, err := parseID(args[1:])
		if err != nil {
			return err
		}
		if err := locate(ctx, c.Controller, id); err != nil {
			return err
		}
		switch cmd {
		case "toggle-featured":
			return e.mutate(ctx, console.OpToggleFeatured, func(ctx context.Context) error { return c.ToggleFeatured(ctx, id) }, func() {
				s, _ := c.Get(id)
				fmt.Fprintf(e.out, "service %d (%s) featured=%t\n", s.ID, s.Name, s.Featured)
			})
		case "toggle-status":
			return e.mutate(ctx, console.OpToggleStatus, func(ctx context.Context) error { return c.ToggleStatus(ctx, id) }, func() {
				s, _ := c.Get(id)
				fmt.Fprintf(e.out, "service %d (%s) is now %s\n", s.ID, s.Name, console.ServiceStatus(s))
			})
		default:
			return e.mutate(ctx, console.OpDeleteService, func(ctx context.Context) error { return c.Delete(ctx, id) }, func() {
				fmt.Fprintf(e.out, "service %d deleted\n", id)
			})
		}
	default:
		return fmt.Errorf("unknown services command %q", cmd)
	}
}

func (e *environment) reviews(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	c, err := console.NewReviews(e.api, e.opts)
	if err != nil {
		return err
	}
	defer c.Close()

	switch cmd := args[0]; cmd {
	case "list":
		lf := newListFlags("reviews list", e.out, "rating")
		if err := lf.fs.Parse(args[1:]); err != nil {
			return err
		}
		if err := apply(ctx, c.Controller, lf); err != nil {
			return err
		}
		printReviews(e.out, c.Snapshot())
		return nil
	case "delete":
		id, err := parseID(args[1:])
		if err != nil {
			return err
		}
		if err := locate(ctx, c.Controller, id); err != nil {
			return err
		}
		return e.mutate(ctx, console.OpDeleteReview, func(ctx context.Context) error { return c.Delete(ctx, id) }, func() {
			fmt.Fprintf(e.out, "review %d deleted\n", id)
		})
	default:
		return fmt.Errorf("unknown reviews command %q", cmd)
	}
}

// mutate confirms op, runs it and reports the settled record.
func (e *environment) mutate(ctx context.Context, op console.Operation, run func(context.Context) error, done func()) error {
	ok, err := e.ask(op)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(e.out, "aborted")
		return nil
	}
	if err := run(ctx); err != nil {
		return err
	}
	done()
	return nil
}

func (e *environment) settings(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	form := console.NewSettingsForm(e.api, e.opts.Logger)
	if err := form.Load(ctx); err != nil {
		return err
	}

	switch cmd := args[0]; cmd {
	case "show":
		fs := flag.NewFlagSet("settings show", flag.ContinueOnError)
		fs.SetOutput(e.out)
		tab := fs.String("tab", "", "only show this tab")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		tabs := console.Tabs
		if *tab != "" {
			if err := form.SetTab(console.Tab(*tab)); err != nil {
				return err
			}
			tabs = []console.Tab{form.Tab()}
		}
		printSettings(e.out, form.Saved(), tabs)
		return nil
	case "set":
		if len(args) < 2 {
			return errors.New("expected at least one tab.field=value")
		}
		for _, assignment := range args[1:] {
			key, value, ok := strings.Cut(assignment, "=")
			if !ok {
				return fmt.Errorf("invalid assignment %q: want tab.field=value", assignment)
			}
			set, known := settingSetters[key]
			if !known {
				return fmt.Errorf("unknown setting %q", key)
			}
			var setErr error
			form.Edit(func(s *domain.Settings) { setErr = set(s, value) })
			if setErr != nil {
				return fmt.Errorf("%s: %w", key, setErr)
			}
		}
		if !form.Dirty() {
			fmt.Fprintln(e.out, "no changes")
			return nil
		}
		if err := form.Save(ctx); err != nil {
			printFieldErrors(e.out, form.FieldErrors())
			return err
		}
		fmt.Fprintln(e.out, "settings saved")
		return nil
	default:
		return fmt.Errorf("unknown settings command %q", cmd)
	}
}

// settingSetters assigns one settings field from its text form, keyed like
// the form's field errors.
var settingSetters = map[string]func(s *domain.Settings, v string) error{
	"general.platform_name": func(s *domain.Settings, v string) error { s.General.PlatformName = v; return nil },
	"general.support_email": func(s *domain.Settings, v string) error { s.General.SupportEmail = v; return nil },
	"general.currency":      func(s *domain.Settings, v string) error { s.General.Currency = v; return nil },
	"booking.auto_confirm":  func(s *domain.Settings, v string) error { return parseBool(v, &s.Booking.AutoConfirm) },
	"booking.cancellation_hours": func(s *domain.Settings, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		s.Booking.CancellationHours = n
		return nil
	},
	"payments.commission_rate": func(s *domain.Settings, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		s.Payments.CommissionRate = f
		return nil
	},
	"payments.payout_day":         func(s *domain.Settings, v string) error { s.Payments.PayoutDay = v; return nil },
	"notifications.email_enabled": func(s *domain.Settings, v string) error { return parseBool(v, &s.Notifications.EmailEnabled) },
	"notifications.sms_enabled":   func(s *domain.Settings, v string) error { return parseBool(v, &s.Notifications.SMSEnabled) },
}

func parseBool(v string, dst *bool) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}

func (e *environment) report(ctx context.Context) error {
	r, err := e.api.ReportSummary(ctx)
	if err != nil {
		return err
	}
	printReport(e.out, r)
	return nil
}
