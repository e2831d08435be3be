package utils

import (
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/gastrohub-dev/gastrohub/backend/internal/domain"
)

var restaurantPrefixes = []string{
	"Gasthaus", "Trattoria", "Osteria", "Bistro", "Brasserie",
	"Cafe", "Pizzeria", "Taverne", "Wirtshaus", "Restaurant",
}
var restaurantNames = []string{
	"Adler", "Krone", "Sonne", "Linde", "Roma",
	"Milano", "Athen", "Akropolis", "Bergblick", "Seeterrasse",
	"Altstadt", "Marktplatz", "Goldener Hirsch", "Zur Post", "Lindenhof",
}

func GenerateRandomRestaurantName() string {
	return restaurantPrefixes[rand.Intn(len(restaurantPrefixes))] + " " + restaurantNames[rand.Intn(len(restaurantNames))]
}

var firstNames = []string{
	"Lena", "Jonas", "Mia", "Finn", "Emma",
	"Paul", "Sofia", "Luca", "Marie", "Elias",
	"Anna", "Noah", "Clara", "Felix", "Laura",
}
var lastNames = []string{
	"Müller", "Schmidt", "Schneider", "Fischer", "Weber",
	"Meyer", "Wagner", "Becker", "Hoffmann", "Schulz",
}

func GenerateRandomPersonName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

var staffRoles = []domain.StaffRole{
	domain.StaffRoleService,
	domain.StaffRoleKitchen,
	domain.StaffRoleManager,
}

func GenerateRandomStaffRole() domain.StaffRole {
	return staffRoles[rand.Intn(len(staffRoles))]
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

func GenerateRandomOwner(password string) (*domain.Owner, error) {
	fullName := GenerateRandomPersonName()
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	owner := &domain.Owner{
		Email:        fmt.Sprintf("owner%04d@example.com", rand.Intn(10000)),
		PasswordHash: string(passwordHash),
		FullName:     fullName,
	}

	return owner, nil
}

func GenerateRandomBusiness(ownerID int64) *domain.Business {
	return &domain.Business{
		OwnerID: ownerID,
		Name:    GenerateRandomRestaurantName(),
		Address: fmt.Sprintf("Hauptstraße %d, Berlin", rand.Intn(200)+1),
		Phone:   fmt.Sprintf("+49 30 %07d", rand.Intn(10000000)),
	}
}

func GenerateRandomStaffMember(businessID int64) *domain.StaffMember {
	name := GenerateRandomPersonName()
	return &domain.StaffMember{
		BusinessID: businessID,
		FullName:   name,
		Email:      fmt.Sprintf("staff%04d@example.com", rand.Intn(10000)),
		Role:       GenerateRandomStaffRole(),
	}
}

// GenerateRandomShift places a 4-8 hour shift on a day within the next two
// weeks. Windows start between 08:00 and 15:00 so even the long ones stay
// inside one calendar date.
func GenerateRandomShift(businessID int64, staffID int64) *domain.Shift {
	day := time.Now().AddDate(0, 0, rand.Intn(14)+1)
	startHour := rand.Intn(8) + 8
	start := time.Date(day.Year(), day.Month(), day.Day(), startHour, 0, 0, 0, time.Local)
	end := start.Add(time.Duration(rand.Intn(5)+4) * time.Hour)

	return &domain.Shift{
		BusinessID: businessID,
		StaffID:    staffID,
		StartTime:  start,
		EndTime:    end,
	}
}

var absenceReasons = []string{"Urlaub", "Krankheit", "Fortbildung", "Familientermin"}

func GenerateRandomAbsence(businessID int64, staffID int64) *domain.Absence {
	start := time.Now().AddDate(0, 0, rand.Intn(30)+1)
	startDate := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

	statuses := []domain.AbsenceStatus{
		domain.AbsenceStatusPending,
		domain.AbsenceStatusApproved,
		domain.AbsenceStatusRejected,
	}

	return &domain.Absence{
		BusinessID: businessID,
		StaffID:    staffID,
		StartDate:  startDate,
		EndDate:    startDate.AddDate(0, 0, rand.Intn(5)),
		Status:     statuses[rand.Intn(len(statuses))],
		Reason:     absenceReasons[rand.Intn(len(absenceReasons))],
	}
}

var appTemplates = []string{"classic", "modern", "bistro"}

func GenerateRandomConfiguration(businessID int64, ownerID int64, businessName string) *domain.AppConfiguration {
	return &domain.AppConfiguration{
		BusinessID: businessID,
		OwnerID:    ownerID,
		Name:       businessName,
		Template:   appTemplates[rand.Intn(len(appTemplates))],
	}
}
