package store

import (
	"math"
	"testing"

	"github.com/StaffDesk-io/staffdesk/internal/config"
	"github.com/StaffDesk-io/staffdesk/internal/database"
	"github.com/StaffDesk-io/staffdesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.Type = "sqlite"
	cfg.Database.Path = ":memory:"

	db, dbType, err := database.Open(cfg)
	require.NoError(t, err, "test database should initialize")
	t.Cleanup(func() { db.Close() })

	return New(db, dbType)
}

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)

	user, err := s.CreateUser("John", "john@x.com", "hashed-password")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "john@x.com", user.Email)

	retrieved, err := s.GetUserByEmail("john@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)
	assert.Equal(t, "John", retrieved.Name)

	byID, err := s.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUserByEmail("missing@x.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetUserByID(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDuplicateEmailRejected(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateUser("John", "john@x.com", "hash")
	require.NoError(t, err)

	_, err = s.CreateUser("Other John", "john@x.com", "hash")
	assert.Error(t, err, "unique constraint should reject the duplicate email")
}

func TestTokenLifecycle(t *testing.T) {
	s := newTestStore(t)

	user, err := s.CreateUser("John", "john@x.com", "hash")
	require.NoError(t, err)

	token, err := s.CreateToken(user.ID, "john@x.comauth_token", "secret-value")
	require.NoError(t, err)
	assert.NotEmpty(t, token.ID)
	assert.False(t, token.Revoked)

	resolved, err := s.GetTokenByValue("secret-value")
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.UserID)
	assert.Equal(t, "john@x.comauth_token", resolved.Name)

	require.NoError(t, s.RevokeToken(token.ID))

	_, err = s.GetTokenByValue("secret-value")
	assert.ErrorIs(t, err, ErrNotFound, "revoked token should no longer resolve")
}

func TestRevokeUnknownToken(t *testing.T) {
	s := newTestStore(t)

	err := s.RevokeToken("no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func sampleEmployee() *models.Employee {
	return &models.Employee{
		FirstName:  "John",
		LastName:   "Doe",
		Email:      "john.doe@example.com",
		Department: "Marketing",
		Salary:     50000.00,
	}
}

func TestCreateAndGetEmployee(t *testing.T) {
	s := newTestStore(t)

	e := sampleEmployee()
	require.NoError(t, s.CreateEmployee(e))
	assert.NotZero(t, e.ID)

	retrieved, err := s.GetEmployeeByID(e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.FirstName, retrieved.FirstName)
	assert.Equal(t, e.LastName, retrieved.LastName)
	assert.Equal(t, e.Email, retrieved.Email)
	assert.Equal(t, e.Department, retrieved.Department)
	assert.Equal(t, e.Salary, retrieved.Salary)
}

func TestUpdateEmployeeReplacesAllFields(t *testing.T) {
	s := newTestStore(t)

	e := sampleEmployee()
	require.NoError(t, s.CreateEmployee(e))

	e.FirstName = "Jane"
	e.LastName = "Smith"
	e.Email = "jane.smith@example.com"
	e.Department = "HR"
	e.Salary = 60000.00
	require.NoError(t, s.UpdateEmployee(e))

	retrieved, err := s.GetEmployeeByID(e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", retrieved.FirstName)
	assert.Equal(t, "Smith", retrieved.LastName)
	assert.Equal(t, "jane.smith@example.com", retrieved.Email)
	assert.Equal(t, "HR", retrieved.Department)
	assert.Equal(t, 60000.00, retrieved.Salary)
}

func TestUpdateMissingEmployee(t *testing.T) {
	s := newTestStore(t)

	e := sampleEmployee()
	e.ID = 99
	assert.ErrorIs(t, s.UpdateEmployee(e), ErrNotFound)
}

func TestDeleteEmployee(t *testing.T) {
	s := newTestStore(t)

	e := sampleEmployee()
	require.NoError(t, s.CreateEmployee(e))
	require.NoError(t, s.DeleteEmployee(e.ID))

	_, err := s.GetEmployeeByID(e.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.DeleteEmployee(e.ID), ErrNotFound)
}

func TestListEmployeesPagination(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 15; i++ {
		require.NoError(t, s.CreateEmployee(sampleEmployee()))
	}

	page1, total, err := s.ListEmployees(1, 10)
	require.NoError(t, err)
	assert.Equal(t, 15, total)
	assert.Len(t, page1, 10)

	page2, total, err := s.ListEmployees(2, 10)
	require.NoError(t, err)
	assert.Equal(t, 15, total)
	assert.Len(t, page2, 5)

	// Stable ordering by ID ascending
	assert.Less(t, page1[0].ID, page1[9].ID)
	assert.Less(t, page1[9].ID, page2[0].ID)

	// Pages beyond the last are empty, not an error
	page3, _, err := s.ListEmployees(3, 10)
	require.NoError(t, err)
	assert.Empty(t, page3)

	// Even page numbers large enough to overflow the offset arithmetic
	// must come back as an empty page, never page 1's rows or an error.
	overflow, total, err := s.ListEmployees(math.MaxInt, 10)
	require.NoError(t, err)
	assert.Equal(t, 15, total)
	assert.Empty(t, overflow)
}
