package subdomain

import (
	"database/sql"
	"errors"

	"github.com/gastrohub-dev/gastrohub/backend/internal/domain"
)

// ErrSubdomainTaken is returned by ClaimRepository.ReserveSubdomain when a
// concurrent claim won the unique constraint on the subdomain column. The
// allocator folds it into the regular "taken" outcome.
var ErrSubdomainTaken = errors.New("subdomain already taken")

// ClaimRepository is the allocator's data-access port. Lookups return
// sql.ErrNoRows when no claim exists.
type ClaimRepository interface {
	// GetCommittedClaim looks up a published app holding the subdomain.
	GetCommittedClaim(subdomain string) (*domain.WebApp, error)
	// GetPendingClaim looks up an unarchived draft configuration that has
	// the subdomain selected.
	GetPendingClaim(subdomain string) (*domain.AppConfiguration, error)
	// ReserveSubdomain writes the pending claim onto the configuration,
	// re-checking committed claims inside one transaction.
	ReserveSubdomain(configID int64, ownerID int64, subdomain string) error
}

type AvailabilityResult struct {
	Available   bool     `json:"available"`
	Reason      string   `json:"reason,omitempty"`
	Detail      string   `json:"detail,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Subdomain   string   `json:"subdomain,omitempty"`
}

type ReserveResult struct {
	OK        bool   `json:"ok"`
	Subdomain string `json:"subdomain,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

type Allocator struct {
	claims ClaimRepository
}

func NewAllocator(claims ClaimRepository) *Allocator {
	return &Allocator{claims: claims}
}

// CheckAvailability runs the full availability decision for a candidate:
// syntax, reserved list, committed claim, pending claim. Domain outcomes
// are always values; only data-store failures come back as errors.
func (a *Allocator) CheckAvailability(candidate string, requestingOwnerID *int64) (AvailabilityResult, error) {
	normalized, vErr := Validate(candidate)
	if vErr != nil {
		return AvailabilityResult{
			Reason: "invalid",
			Detail: vErr.Message,
		}, nil
	}

	if IsReserved(normalized) {
		return AvailabilityResult{
			Reason:      "reserved",
			Suggestions: Suggestions(normalized),
		}, nil
	}

	committed, err := a.claims.GetCommittedClaim(normalized)
	switch {
	case err == nil:
		if requestingOwnerID != nil && committed.OwnerID == *requestingOwnerID {
			// an owner may always re-select their own subdomain
			return AvailabilityResult{
				Available: true,
				Reason:    "owned",
				Subdomain: normalized,
			}, nil
		}
		return AvailabilityResult{
			Reason:      "taken",
			Suggestions: Suggestions(normalized),
		}, nil
	case errors.Is(err, sql.ErrNoRows):
		// not committed, fall through to the pending check
	default:
		return AvailabilityResult{}, err
	}

	pending, err := a.claims.GetPendingClaim(normalized)
	switch {
	case err == nil:
		if requestingOwnerID == nil || pending.OwnerID != *requestingOwnerID {
			return AvailabilityResult{
				Reason:      "pending",
				Suggestions: Suggestions(normalized),
			}, nil
		}
		// the owner's own pending claim never blocks them
	case errors.Is(err, sql.ErrNoRows):
	default:
		return AvailabilityResult{}, err
	}

	return AvailabilityResult{
		Available: true,
		Subdomain: normalized,
	}, nil
}

// Reserve claims the subdomain for the given configuration. The candidate
// is always re-validated here; a client-side "already validated" flag is
// never trusted. The write itself runs in a repository transaction guarded
// by the unique index, so a concurrent winner surfaces as the "taken"
// outcome instead of a silent last-write-wins.
func (a *Allocator) Reserve(candidate string, ownerID int64, configID int64) (ReserveResult, error) {
	normalized, vErr := Validate(candidate)
	if vErr != nil {
		return ReserveResult{
			Reason: "invalid",
			Detail: vErr.Message,
		}, nil
	}

	if IsReserved(normalized) {
		return ReserveResult{
			Reason: "reserved",
			Detail: "This subdomain is reserved by the platform",
		}, nil
	}

	committed, err := a.claims.GetCommittedClaim(normalized)
	switch {
	case err == nil:
		if committed.OwnerID != ownerID {
			return ReserveResult{
				Reason: "taken",
				Detail: "This subdomain is already in use",
			}, nil
		}
	case errors.Is(err, sql.ErrNoRows):
	default:
		return ReserveResult{}, err
	}

	if err := a.claims.ReserveSubdomain(configID, ownerID, normalized); err != nil {
		if errors.Is(err, ErrSubdomainTaken) {
			return ReserveResult{
				Reason: "taken",
				Detail: "This subdomain is already in use",
			}, nil
		}
		return ReserveResult{}, err
	}

	return ReserveResult{
		OK:        true,
		Subdomain: normalized,
	}, nil
}
