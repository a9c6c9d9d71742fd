// Package form holds the presentation state of the recipe form: the raw field
// values, the loading flag, the error banner text and the current result list.
//
// A Form moves through four observable states driven by a statekit machine:
//
//	idle ──submit──▶ submitting ──resolve──▶ success
//	                     │                      │
//	                     └──reject──▶ failed    │
//	success/failed ──submit──▶ submitting ◀─────┘
//
// While a form is submitting a second submission is refused with
// ErrSubmitInProgress; nothing cancels the call that is already running. The
// derived health-condition text is computed from the checkbox selection and
// the free-text field only when a submission starts.
//
// Registry keeps one Form per browser session in memory.
package form
