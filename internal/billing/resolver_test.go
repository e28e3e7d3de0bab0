package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pahanaedu/pos-platform/internal/billing"
	"github.com/pahanaedu/pos-platform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLookup struct {
	customers map[string]models.Customer
	err       error
	calls     int
}

func (s *stubLookup) CustomerByTelephone(_ context.Context, phone string) (*models.Customer, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	c, ok := s.customers[phone]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func existingCustomer() models.Customer {
	return models.Customer{
		ID:        42,
		Name:      "Nimal Perera",
		Telephone: "0771234567",
		Address:   "12 Temple Road, Kandy",
	}
}

func TestResolverPhoneChanged(t *testing.T) {

	t.Run("Empty Input Returns To Empty State", func(t *testing.T) {
		r := billing.NewResolver(&stubLookup{}, 9)

		needed, _ := r.PhoneChanged("")

		assert.False(t, needed)
		assert.Equal(t, billing.StateEmpty, r.State())
		assert.Equal(t, models.CustomerInput{}, r.Customer())
	})

	t.Run("Short Input Stays Typing Without Lookup", func(t *testing.T) {
		r := billing.NewResolver(&stubLookup{}, 9)

		needed, _ := r.PhoneChanged("07712")

		assert.False(t, needed)
		assert.Equal(t, billing.StateTyping, r.State())
		assert.Equal(t, "07712", r.Customer().Telephone)
		assert.False(t, r.Locked())
	})

	t.Run("Threshold Length Requests A Lookup", func(t *testing.T) {
		r := billing.NewResolver(&stubLookup{}, 9)

		needed, gen := r.PhoneChanged("077123456")

		assert.True(t, needed)
		assert.NotZero(t, gen)
	})

	t.Run("Each Edit Bumps The Generation", func(t *testing.T) {
		r := billing.NewResolver(&stubLookup{}, 9)

		_, gen1 := r.PhoneChanged("077123456")
		_, gen2 := r.PhoneChanged("0771234567")

		assert.Greater(t, gen2, gen1)
	})
}

func TestResolverResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("Existing Customer Locks Fields", func(t *testing.T) {
		// Arrange
		lookup := &stubLookup{customers: map[string]models.Customer{"0771234567": existingCustomer()}}
		r := billing.NewResolver(lookup, 9)

		// Act
		notice := r.Resolve(ctx, "0771234567")

		// Assert
		assert.Equal(t, billing.NoticeNone, notice.Kind)
		assert.Equal(t, billing.StateResolvedExisting, r.State())
		assert.True(t, r.Locked())
		assert.Equal(t, int64(42), r.ExistingID())
		assert.Equal(t, "Nimal Perera", r.Customer().Name)
		assert.Equal(t, "12 Temple Road, Kandy", r.Customer().Address)
	})

	t.Run("Locked Fields Ignore Edits", func(t *testing.T) {
		lookup := &stubLookup{customers: map[string]models.Customer{"0771234567": existingCustomer()}}
		r := billing.NewResolver(lookup, 9)
		r.Resolve(ctx, "0771234567")

		r.SetName("Someone Else")
		r.SetAddress("Nowhere")

		assert.Equal(t, "Nimal Perera", r.Customer().Name)
		assert.Equal(t, "12 Temple Road, Kandy", r.Customer().Address)
	})

	t.Run("Phone Edit Unlocks And Re-Enters Typing", func(t *testing.T) {
		lookup := &stubLookup{customers: map[string]models.Customer{"0771234567": existingCustomer()}}
		r := billing.NewResolver(lookup, 9)
		r.Resolve(ctx, "0771234567")
		require.True(t, r.Locked())

		needed, _ := r.PhoneChanged("07712")

		assert.False(t, needed)
		assert.False(t, r.Locked())
		assert.Equal(t, billing.StateTyping, r.State())
		assert.Zero(t, r.ExistingID())
	})

	t.Run("Not Found Resolves New With Info Notice", func(t *testing.T) {
		r := billing.NewResolver(&stubLookup{}, 9)

		notice := r.Resolve(ctx, "0719999999")

		assert.Equal(t, billing.NoticeInfo, notice.Kind)
		assert.Equal(t, billing.StateResolvedNew, r.State())
		assert.False(t, r.Locked())
		assert.Equal(t, "0719999999", r.Customer().Telephone)
	})

	t.Run("New Customer Fields Stay Editable", func(t *testing.T) {
		r := billing.NewResolver(&stubLookup{}, 9)
		r.Resolve(ctx, "0719999999")

		r.SetName("Kamala Silva")
		r.SetAddress("8 Lake View, Galle")

		assert.Equal(t, "Kamala Silva", r.Customer().Name)
		assert.Equal(t, "8 Lake View, Galle", r.Customer().Address)
	})

	t.Run("Lookup Failure Reports Error But Does Not Block", func(t *testing.T) {
		r := billing.NewResolver(&stubLookup{err: errors.New("connection refused")}, 9)

		notice := r.Resolve(ctx, "0771234567")

		assert.Equal(t, billing.NoticeError, notice.Kind)
		assert.Equal(t, billing.StateResolvedNew, r.State())
		assert.False(t, r.Locked())
	})
}

func TestResolverStaleResponses(t *testing.T) {

	t.Run("Stale Response Is Discarded", func(t *testing.T) {
		// A slow lookup for the first number must not overwrite the state of
		// a later edit.
		r := billing.NewResolver(&stubLookup{}, 9)

		_, slowGen := r.PhoneChanged("0771234567")
		_, freshGen := r.PhoneChanged("0719999999")

		fresh := r.ApplyLookup(freshGen, nil, nil)
		assert.Equal(t, billing.NoticeInfo, fresh.Kind)
		assert.Equal(t, billing.StateResolvedNew, r.State())

		old := existingCustomer()
		stale := r.ApplyLookup(slowGen, &old, nil)

		assert.Equal(t, billing.NoticeNone, stale.Kind)
		assert.Equal(t, billing.StateResolvedNew, r.State(), "stale existing-customer response must not lock the form")
		assert.False(t, r.Locked())
		assert.Equal(t, "0719999999", r.Customer().Telephone)
	})

	t.Run("Reset Invalidates In-Flight Lookups", func(t *testing.T) {
		r := billing.NewResolver(&stubLookup{}, 9)
		_, gen := r.PhoneChanged("0771234567")

		r.Reset()
		old := existingCustomer()
		notice := r.ApplyLookup(gen, &old, nil)

		assert.Equal(t, billing.NoticeNone, notice.Kind)
		assert.Equal(t, billing.StateEmpty, r.State())
	})
}
