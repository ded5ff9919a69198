package store

import (
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/StaffDesk-io/staffdesk/internal/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// Store handles all database operations
type Store struct {
	db     *sql.DB
	dbType string
}

// New creates a new store instance
func New(db *sql.DB, dbType string) *Store {
	return &Store{db: db, dbType: dbType}
}

// CreateUser creates a new user with an already-hashed password
func (s *Store) CreateUser(name, email, password string) (*models.User, error) {
	now := time.Now()
	user := &models.User{
		Name:      name,
		Email:     email,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if s.dbType == "postgres" {
		err := s.db.QueryRow(
			"INSERT INTO users (name, email, password, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING id",
			user.Name, user.Email, user.Password, user.CreatedAt, user.UpdatedAt,
		).Scan(&user.ID)
		if err != nil {
			return nil, err
		}
	} else {
		result, err := s.db.Exec(
			"INSERT INTO users (name, email, password, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			user.Name, user.Email, user.Password, user.CreatedAt, user.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, err
		}
		user.ID = id
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email
func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	query := "SELECT id, name, email, password, created_at, updated_at FROM users WHERE email = ?"
	if s.dbType == "postgres" {
		query = "SELECT id, name, email, password, created_at, updated_at FROM users WHERE email = $1"
	}

	user := &models.User{}
	err := s.db.QueryRow(query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user by ID
func (s *Store) GetUserByID(id int64) (*models.User, error) {
	query := "SELECT id, name, email, password, created_at, updated_at FROM users WHERE id = ?"
	if s.dbType == "postgres" {
		query = "SELECT id, name, email, password, created_at, updated_at FROM users WHERE id = $1"
	}

	user := &models.User{}
	err := s.db.QueryRow(query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateToken stores a new API token
func (s *Store) CreateToken(userID int64, name, token string) (*models.Token, error) {
	t := &models.Token{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		Name:      name,
		CreatedAt: time.Now(),
	}

	query := "INSERT INTO tokens (id, user_id, token, name, revoked, created_at) VALUES (?, ?, ?, ?, ?, ?)"
	if s.dbType == "postgres" {
		query = "INSERT INTO tokens (id, user_id, token, name, revoked, created_at) VALUES ($1, $2, $3, $4, $5, $6)"
	}

	_, err := s.db.Exec(query, t.ID, t.UserID, t.Token, t.Name, t.Revoked, t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetTokenByValue retrieves an active (non-revoked) token by its value
func (s *Store) GetTokenByValue(token string) (*models.Token, error) {
	query := "SELECT id, user_id, token, name, revoked, created_at, expires_at FROM tokens WHERE token = ? AND revoked = ?"
	if s.dbType == "postgres" {
		query = "SELECT id, user_id, token, name, revoked, created_at, expires_at FROM tokens WHERE token = $1 AND revoked = $2"
	}

	t := &models.Token{}
	err := s.db.QueryRow(query, token, false).Scan(
		&t.ID, &t.UserID, &t.Token, &t.Name, &t.Revoked, &t.CreatedAt, &t.ExpiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// RevokeToken marks a token as revoked so it no longer authenticates
func (s *Store) RevokeToken(id string) error {
	query := "UPDATE tokens SET revoked = ? WHERE id = ?"
	if s.dbType == "postgres" {
		query = "UPDATE tokens SET revoked = $1 WHERE id = $2"
	}

	result, err := s.db.Exec(query, true, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateEmployee persists a new employee and assigns its ID
func (s *Store) CreateEmployee(e *models.Employee) error {
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	if s.dbType == "postgres" {
		return s.db.QueryRow(
			"INSERT INTO employees (first_name, last_name, email, department, salary, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id",
			e.FirstName, e.LastName, e.Email, e.Department, e.Salary, e.CreatedAt, e.UpdatedAt,
		).Scan(&e.ID)
	}

	result, err := s.db.Exec(
		"INSERT INTO employees (first_name, last_name, email, department, salary, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		e.FirstName, e.LastName, e.Email, e.Department, e.Salary, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

// GetEmployeeByID retrieves an employee by ID
func (s *Store) GetEmployeeByID(id int64) (*models.Employee, error) {
	query := "SELECT id, first_name, last_name, email, department, salary, created_at, updated_at FROM employees WHERE id = ?"
	if s.dbType == "postgres" {
		query = "SELECT id, first_name, last_name, email, department, salary, created_at, updated_at FROM employees WHERE id = $1"
	}

	e := &models.Employee{}
	err := s.db.QueryRow(query, id).Scan(
		&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Department, &e.Salary, &e.CreatedAt, &e.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ListEmployees returns one page of employees ordered by ID, plus the total count
func (s *Store) ListEmployees(page, perPage int) ([]*models.Employee, int, error) {
	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM employees").Scan(&total); err != nil {
		return nil, 0, err
	}

	// Any page past the end is an empty page, never an error. Absurd page
	// numbers would overflow the offset multiplication into a negative
	// OFFSET, so answer them without touching the database.
	if page-1 > math.MaxInt/perPage {
		return []*models.Employee{}, total, nil
	}

	query := "SELECT id, first_name, last_name, email, department, salary, created_at, updated_at FROM employees ORDER BY id LIMIT ? OFFSET ?"
	if s.dbType == "postgres" {
		query = "SELECT id, first_name, last_name, email, department, salary, created_at, updated_at FROM employees ORDER BY id LIMIT $1 OFFSET $2"
	}

	offset := (page - 1) * perPage
	rows, err := s.db.Query(query, perPage, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	employees := []*models.Employee{}
	for rows.Next() {
		e := &models.Employee{}
		err := rows.Scan(
			&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Department, &e.Salary, &e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, e)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// UpdateEmployee applies the full field set to an existing employee
func (s *Store) UpdateEmployee(e *models.Employee) error {
	e.UpdatedAt = time.Now()

	query := "UPDATE employees SET first_name = ?, last_name = ?, email = ?, department = ?, salary = ?, updated_at = ? WHERE id = ?"
	if s.dbType == "postgres" {
		query = "UPDATE employees SET first_name = $1, last_name = $2, email = $3, department = $4, salary = $5, updated_at = $6 WHERE id = $7"
	}

	result, err := s.db.Exec(query, e.FirstName, e.LastName, e.Email, e.Department, e.Salary, e.UpdatedAt, e.ID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEmployee removes an employee by ID
func (s *Store) DeleteEmployee(id int64) error {
	query := "DELETE FROM employees WHERE id = ?"
	if s.dbType == "postgres" {
		query = "DELETE FROM employees WHERE id = $1"
	}

	result, err := s.db.Exec(query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
