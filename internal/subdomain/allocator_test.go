package subdomain_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/gastrohub-dev/gastrohub/backend/internal/domain"
	"github.com/gastrohub-dev/gastrohub/backend/internal/subdomain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockClaimRepository struct {
	mock.Mock
}

func (m *MockClaimRepository) GetCommittedClaim(sub string) (*domain.WebApp, error) {
	args := m.Called(sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WebApp), args.Error(1)
}

func (m *MockClaimRepository) GetPendingClaim(sub string) (*domain.AppConfiguration, error) {
	args := m.Called(sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppConfiguration), args.Error(1)
}

func (m *MockClaimRepository) ReserveSubdomain(configID int64, ownerID int64, sub string) error {
	args := m.Called(configID, ownerID, sub)
	return args.Error(0)
}

func ownerID(id int64) *int64 {
	return &id
}

func TestCheckAvailability_InvalidCandidate(t *testing.T) {
	allocator := subdomain.NewAllocator(new(MockClaimRepository))

	result, err := allocator.CheckAvailability("a--b", nil)
	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, "invalid", result.Reason)
	assert.NotEmpty(t, result.Detail)
}

func TestCheckAvailability_ReservedRegardlessOfDatabase(t *testing.T) {
	// the repository must not even be consulted for reserved names
	repo := new(MockClaimRepository)
	allocator := subdomain.NewAllocator(repo)

	for _, name := range []string{"admin", "api", "www"} {
		result, err := allocator.CheckAvailability(name, ownerID(1))
		require.NoError(t, err)
		assert.False(t, result.Available)
		assert.Equal(t, "reserved", result.Reason, name)
		assert.NotEmpty(t, result.Suggestions)
	}

	repo.AssertNotCalled(t, "GetCommittedClaim", mock.Anything)
}

func TestCheckAvailability_OwnerReclaim(t *testing.T) {
	repo := new(MockClaimRepository)
	repo.On("GetCommittedClaim", "cafe-berlin").
		Return(&domain.WebApp{Subdomain: "cafe-berlin", OwnerID: 1}, nil)

	allocator := subdomain.NewAllocator(repo)

	result, err := allocator.CheckAvailability("cafe-berlin", ownerID(1))
	require.NoError(t, err)
	assert.True(t, result.Available)
	assert.Equal(t, "owned", result.Reason)
	assert.Equal(t, "cafe-berlin", result.Subdomain)

	result, err = allocator.CheckAvailability("cafe-berlin", ownerID(2))
	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, "taken", result.Reason)
	assert.NotEmpty(t, result.Suggestions)
}

func TestCheckAvailability_ForeignPendingClaimBlocks(t *testing.T) {
	repo := new(MockClaimRepository)
	repo.On("GetCommittedClaim", "trattoria-roma").Return(nil, sql.ErrNoRows)
	repo.On("GetPendingClaim", "trattoria-roma").
		Return(&domain.AppConfiguration{OwnerID: 5}, nil)

	allocator := subdomain.NewAllocator(repo)

	result, err := allocator.CheckAvailability("trattoria-roma", ownerID(1))
	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, "pending", result.Reason)
}

func TestCheckAvailability_OwnPendingClaimDoesNotBlock(t *testing.T) {
	repo := new(MockClaimRepository)
	repo.On("GetCommittedClaim", "trattoria-roma").Return(nil, sql.ErrNoRows)
	repo.On("GetPendingClaim", "trattoria-roma").
		Return(&domain.AppConfiguration{OwnerID: 1}, nil)

	allocator := subdomain.NewAllocator(repo)

	result, err := allocator.CheckAvailability("trattoria-roma", ownerID(1))
	require.NoError(t, err)
	assert.True(t, result.Available)
	assert.Empty(t, result.Reason)
	assert.Equal(t, "trattoria-roma", result.Subdomain)
}

func TestCheckAvailability_Free(t *testing.T) {
	repo := new(MockClaimRepository)
	repo.On("GetCommittedClaim", "cafe-berlin").Return(nil, sql.ErrNoRows)
	repo.On("GetPendingClaim", "cafe-berlin").Return(nil, sql.ErrNoRows)

	allocator := subdomain.NewAllocator(repo)

	result, err := allocator.CheckAvailability("  Cafe-Berlin ", ownerID(1))
	require.NoError(t, err)
	assert.True(t, result.Available)
	assert.Empty(t, result.Reason)
	assert.Equal(t, "cafe-berlin", result.Subdomain)
}

func TestCheckAvailability_InfrastructureErrorPropagates(t *testing.T) {
	dbErr := errors.New("connection refused")
	repo := new(MockClaimRepository)
	repo.On("GetCommittedClaim", "cafe-berlin").Return(nil, dbErr)

	allocator := subdomain.NewAllocator(repo)

	_, err := allocator.CheckAvailability("cafe-berlin", nil)
	require.ErrorIs(t, err, dbErr)
}

func TestReserve_RevalidatesCandidate(t *testing.T) {
	repo := new(MockClaimRepository)
	allocator := subdomain.NewAllocator(repo)

	result, err := allocator.Reserve("-bad-", 1, 10)
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, "invalid", result.Reason)
	repo.AssertNotCalled(t, "ReserveSubdomain", mock.Anything, mock.Anything, mock.Anything)
}

func TestReserve_RejectsReservedName(t *testing.T) {
	allocator := subdomain.NewAllocator(new(MockClaimRepository))

	result, err := allocator.Reserve("admin", 1, 10)
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, "reserved", result.Reason)
}

func TestReserve_RejectsForeignCommittedClaim(t *testing.T) {
	repo := new(MockClaimRepository)
	repo.On("GetCommittedClaim", "cafe-berlin").
		Return(&domain.WebApp{Subdomain: "cafe-berlin", OwnerID: 2}, nil)

	allocator := subdomain.NewAllocator(repo)

	result, err := allocator.Reserve("cafe-berlin", 1, 10)
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, "taken", result.Reason)
	repo.AssertNotCalled(t, "ReserveSubdomain", mock.Anything, mock.Anything, mock.Anything)
}

func TestReserve_Success(t *testing.T) {
	repo := new(MockClaimRepository)
	repo.On("GetCommittedClaim", "cafe-berlin").Return(nil, sql.ErrNoRows)
	repo.On("ReserveSubdomain", int64(10), int64(1), "cafe-berlin").Return(nil)

	allocator := subdomain.NewAllocator(repo)

	result, err := allocator.Reserve(" Cafe-Berlin ", 1, 10)
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, "cafe-berlin", result.Subdomain)
	repo.AssertExpectations(t)
}

func TestReserve_ConcurrentWinnerSurfacesAsTaken(t *testing.T) {
	// the unique index fires inside the repository transaction and comes
	// back as ErrSubdomainTaken, a domain outcome rather than a 5xx
	repo := new(MockClaimRepository)
	repo.On("GetCommittedClaim", "cafe-berlin").Return(nil, sql.ErrNoRows)
	repo.On("ReserveSubdomain", int64(10), int64(1), "cafe-berlin").
		Return(subdomain.ErrSubdomainTaken)

	allocator := subdomain.NewAllocator(repo)

	result, err := allocator.Reserve("cafe-berlin", 1, 10)
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, "taken", result.Reason)
}

func TestReserve_InfrastructureErrorPropagates(t *testing.T) {
	dbErr := errors.New("write failed")
	repo := new(MockClaimRepository)
	repo.On("GetCommittedClaim", "cafe-berlin").Return(nil, sql.ErrNoRows)
	repo.On("ReserveSubdomain", int64(10), int64(1), "cafe-berlin").Return(dbErr)

	allocator := subdomain.NewAllocator(repo)

	_, err := allocator.Reserve("cafe-berlin", 1, 10)
	require.ErrorIs(t, err, dbErr)
}
