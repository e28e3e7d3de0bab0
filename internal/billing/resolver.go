package billing

import (
	"context"
	"strings"

	"github.com/pahanaedu/pos-platform/internal/models"
)

// CustomerLookup fetches a customer by telephone. A nil customer with a nil
// error is the "not found" outcome, distinct from a transport failure.
type CustomerLookup interface {
	CustomerByTelephone(ctx context.Context, telephone string) (*models.Customer, error)
}

type ResolverState int

const (
	// StateEmpty: no phone entered yet.
	StateEmpty ResolverState = iota
	// StateTyping: phone below the lookup threshold, fields hold only the
	// partial number.
	StateTyping
	// StateResolvedExisting: lookup matched a persisted customer; non-phone
	// fields are locked.
	StateResolvedExisting
	// StateResolvedNew: lookup ran and found nothing (or failed); fields are
	// editable and submission will create the customer.
	StateResolvedNew
)

type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeInfo
	NoticeError
)

// Notice is a non-blocking message for the cashier. NoticeError marks a
// transport failure whose result must not be trusted as "found".
type Notice struct {
	Kind    NoticeKind
	Message string
}

const defaultPhoneLookupMinLength = 9

// Resolver drives the candidate customer of one sale. Every phone edit bumps
// a generation token; a lookup response carrying a stale token is discarded,
// so a slow early lookup can never overwrite the result of a later one.
type Resolver struct {
	lookup    CustomerLookup
	minLength int

	gen        uint64
	state      ResolverState
	locked     bool
	existingID int64
	input      models.CustomerInput
}

// NewResolver builds a resolver over the given lookup collaborator.
// minLength <= 0 falls back to the 9-digit default.
func NewResolver(lookup CustomerLookup, minLength int) *Resolver {

	if minLength <= 0 {
		minLength = defaultPhoneLookupMinLength
	}

	return &Resolver{lookup: lookup, minLength: minLength, state: StateEmpty}
}

func (r *Resolver) State() ResolverState { return r.state }
func (r *Resolver) Locked() bool         { return r.locked }

// ExistingID is the persisted identifier once an existing customer is
// resolved, zero otherwise.
func (r *Resolver) ExistingID() int64 { return r.existingID }

// Customer is the current candidate as entered/resolved so far.
func (r *Resolver) Customer() models.CustomerInput { return r.input }

// SetName edits the candidate's name. Ignored while an existing customer is
// locked in.
func (r *Resolver) SetName(name string) {
	if r.locked {
		return
	}
	r.input.Name = name
}

// SetAddress edits the candidate's address. Ignored while locked.
func (r *Resolver) SetAddress(address string) {
	if r.locked {
		return
	}
	r.input.Address = address
}

// PhoneChanged re-evaluates the phone input. It unlocks the candidate,
// invalidates any in-flight lookup, and reports whether a new lookup should
// be issued along with the generation token its response must carry.
func (r *Resolver) PhoneChanged(phone string) (lookupNeeded bool, gen uint64) {

	r.gen++
	r.locked = false
	r.existingID = 0

	if phone == "" {
		r.state = StateEmpty
		r.input = models.CustomerInput{}
		return false, r.gen
	}

	r.input = models.CustomerInput{Telephone: phone}

	if len(strings.TrimSpace(phone)) < r.minLength {
		r.state = StateTyping
		return false, r.gen
	}

	r.state = StateTyping
	return true, r.gen
}

// ApplyLookup feeds a lookup response back into the resolver. Responses with
// a stale generation are dropped without touching state.
func (r *Resolver) ApplyLookup(gen uint64, customer *models.Customer, err error) Notice {

	if gen != r.gen {
		return Notice{}
	}

	switch {
	case err != nil:
		// Transport/server failure: workflow continues unlocked, but the
		// record is not trusted as found.
		r.state = StateResolvedNew
		r.locked = false
		return Notice{Kind: NoticeError, Message: "Failed to fetch customer details"}

	case customer != nil:
		r.state = StateResolvedExisting
		r.locked = true
		r.existingID = customer.ID
		r.input = models.CustomerInput{
			Name:      customer.Name,
			Telephone: customer.Telephone,
			Address:   customer.Address,
		}
		return Notice{}

	default:
		r.state = StateResolvedNew
		r.locked = false
		return Notice{Kind: NoticeInfo, Message: "Customer not found. This will create a new customer"}
	}
}

// Resolve runs one full phone-change round trip through the lookup
// collaborator.
func (r *Resolver) Resolve(ctx context.Context, phone string) Notice {

	needed, gen := r.PhoneChanged(phone)
	if !needed {
		return Notice{}
	}

	customer, err := r.lookup.CustomerByTelephone(ctx, phone)

	return r.ApplyLookup(gen, customer, err)
}

// Reset returns the resolver to the empty state for the next sale.
func (r *Resolver) Reset() {
	r.gen++
	r.state = StateEmpty
	r.locked = false
	r.existingID = 0
	r.input = models.CustomerInput{}
}
