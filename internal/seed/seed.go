package seed

import (
	"errors"
	"log/slog"
	"math/rand"

	"github.com/gastrohub-dev/gastrohub/backend/internal/domain"
	"github.com/gastrohub-dev/gastrohub/backend/internal/repository"
	"github.com/gastrohub-dev/gastrohub/backend/internal/scheduling"
	"github.com/gastrohub-dev/gastrohub/backend/internal/subdomain"
	"github.com/gastrohub-dev/gastrohub/backend/internal/utils"
)

// SeedDemoTenant builds one complete demo tenant: an owner with a business,
// staff, a conflict-free schedule, some absences and a draft configuration
// with its subdomain already reserved.
func SeedDemoTenant(repo *repository.Repository, ownerPassword string) error {
	owner, err := utils.GenerateRandomOwner(ownerPassword)
	if err != nil {
		return err
	}
	if err := repo.CreateOwner(owner); err != nil {
		return err
	}

	business := utils.GenerateRandomBusiness(owner.ID)
	if err := repo.CreateBusiness(business); err != nil {
		return err
	}

	staffCount := rand.Intn(4) + 3
	staff := make([]*domain.StaffMember, 0, staffCount)
	for i := 0; i < staffCount; i++ {
		member := utils.GenerateRandomStaffMember(business.ID)
		if err := repo.CreateStaffMember(member); err != nil {
			return err
		}
		staff = append(staff, member)
	}

	if err := SeedShifts(repo, business.ID, staff, staffCount*3); err != nil {
		return err
	}

	for _, member := range staff {
		if rand.Intn(2) == 0 {
			continue
		}
		absence := utils.GenerateRandomAbsence(business.ID, member.ID)
		if err := repo.CreateAbsence(absence); err != nil {
			return err
		}
	}

	cfg := utils.GenerateRandomConfiguration(business.ID, owner.ID, business.Name)
	if err := repo.CreateAppConfiguration(cfg); err != nil {
		return err
	}

	// reserve a subdomain derived from the restaurant name, appending a
	// suggestion if the plain slug is taken by an earlier demo run
	allocator := subdomain.NewAllocator(repo)
	candidates := append([]string{subdomain.SlugFromName(business.Name)}, subdomain.Suggestions(subdomain.SlugFromName(business.Name))...)
	for _, candidate := range candidates {
		result, err := allocator.Reserve(candidate, owner.ID, cfg.ID)
		if err != nil {
			return err
		}
		if result.OK {
			cfg.Subdomain = &result.Subdomain
			break
		}
	}

	slog.Info("demo tenant created",
		"owner", owner.Email,
		"business", business.Name,
		"staff", staffCount,
		"subdomain", cfg.Subdomain,
	)

	return nil
}

// SeedShifts inserts n random shifts, skipping any window the conflict
// checker rejects so the demo schedule is always consistent.
func SeedShifts(repo *repository.Repository, businessID int64, staff []*domain.StaffMember, n int) error {
	if len(staff) == 0 {
		return errors.New("no staff to schedule")
	}

	checker := scheduling.NewChecker(repo, repo)

	created := 0
	for attempts := 0; created < n && attempts < n*10; attempts++ {
		member := staff[rand.Intn(len(staff))]
		shift := utils.GenerateRandomShift(businessID, member.ID)

		report, err := checker.CheckConflicts(businessID, member.ID, shift.StartTime, shift.EndTime, nil)
		if err != nil {
			return err
		}
		if report.HasConflicts() {
			continue
		}

		if err := repo.CreateShift(shift); err != nil {
			return err
		}
		created++
	}

	slog.Info("shifts created", "count", created, "requested", n)

	return nil
}
