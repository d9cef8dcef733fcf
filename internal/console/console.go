// Package console wires list-view controllers to the admin API, one adapter
// per entity, and holds the settings form.
package console

import (
	"cmp"
	"log/slog"
	"time"

	"github.com/simp-lee/svcadmin/internal/listview"
)

// Operation names a user-facing mutation.
type Operation string

const (
	OpComplete       Operation = "complete"
	OpCancel         Operation = "cancel"
	OpApprove        Operation = "approve"
	OpReject         Operation = "reject"
	OpUnverify       Operation = "unverify"
	OpToggleFeatured Operation = "toggle-featured"
	OpToggleStatus   Operation = "toggle-status"
	OpDeleteService  Operation = "delete-service"
	OpDeleteReview   Operation = "delete-review"
)

var confirmationCopy = map[Operation]string{
	OpComplete:       "Mark this booking as completed?",
	OpCancel:         "Cancel this booking? The customer will be notified.",
	OpApprove:        "Approve this provider? Their profile will be shown as verified.",
	OpReject:         "Reject this provider's application? They will stay unverified.",
	OpUnverify:       "Remove this provider's verification? Their badge will be hidden until approved again.",
	OpToggleFeatured: "Change whether this service is featured on the home page?",
	OpToggleStatus:   "Change whether this service is active?",
	OpDeleteService:  "Delete this service? This cannot be undone.",
	OpDeleteReview:   "Delete this review? This cannot be undone.",
}

// ConfirmationCopy returns the prompt shown before op runs. Reject and
// unverify write the same change but ask different questions.
func ConfirmationCopy(op Operation) string {
	if s, ok := confirmationCopy[op]; ok {
		return s
	}
	return "Are you sure?"
}

// Options tunes the controllers built by the adapters.
type Options struct {
	PageSize  int
	Debounce  time.Duration
	Logger    *slog.Logger
	AfterFunc func(d time.Duration, f func()) listview.Timer
}

func newController[T any, K cmp.Ordered](opts Options, rules listview.Rules[T, K], src listview.DataSource[T], defaultSort string) (*listview.Controller[T, K], error) {
	return listview.New(listview.Config[T, K]{
		Rules:       rules,
		Source:      src,
		DefaultSort: defaultSort,
		PageSize:    opts.PageSize,
		Debounce:    opts.Debounce,
		Logger:      opts.Logger,
		AfterFunc:   opts.AfterFunc,
	})
}

// translateSort maps a view sort key to the API's field:dir form.
func translateSort(p listview.ListParams, sorts map[string]string) listview.ListParams {
	p.Sort = sorts[p.Sort]
	return p
}
