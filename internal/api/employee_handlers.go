package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/StaffDesk-io/staffdesk/internal/auth"
	"github.com/StaffDesk-io/staffdesk/internal/models"
	"github.com/StaffDesk-io/staffdesk/internal/store"
	"github.com/go-chi/chi/v5"
)

// employeesPerPage is the fixed page size for employee listings.
const employeesPerPage = 10

type employeeResource struct {
	ID         int64   `json:"id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Email      string  `json:"email"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary"`
}

type employeeItemResponse struct {
	Data employeeResource `json:"data"`
}

type paginationMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

type paginationLinks struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

type employeeCollectionResponse struct {
	Data  []employeeResource `json:"data"`
	Meta  paginationMeta     `json:"meta"`
	Links paginationLinks    `json:"links"`
}

func newEmployeeResource(e *models.Employee) employeeResource {
	return employeeResource{
		ID:         e.ID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Department: e.Department,
		Salary:     e.Salary,
	}
}

// ListEmployeesHandler returns one fixed-size page of employees with
// pagination metadata and navigation links
func (api *Api) ListEmployeesHandler(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}

	employees, total, err := api.Store.ListEmployees(page, employeesPerPage)
	if err != nil {
		log.Printf("Error listing employees: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	lastPage := (total + employeesPerPage - 1) / employeesPerPage
	if lastPage < 1 {
		lastPage = 1
	}

	data := make([]employeeResource, 0, len(employees))
	for _, e := range employees {
		data = append(data, newEmployeeResource(e))
	}

	pageURL := func(n int) string {
		return fmt.Sprintf("%s?page=%d", r.URL.Path, n)
	}

	links := paginationLinks{
		First: pageURL(1),
		Last:  pageURL(lastPage),
	}
	if page > 1 {
		prev := pageURL(page - 1)
		links.Prev = &prev
	}
	if page < lastPage {
		next := pageURL(page + 1)
		links.Next = &next
	}

	respondJSON(w, http.StatusOK, employeeCollectionResponse{
		Data: data,
		Meta: paginationMeta{
			CurrentPage: page,
			LastPage:    lastPage,
			PerPage:     employeesPerPage,
			Total:       total,
		},
		Links: links,
	})
}

// CreateEmployeeHandler persists a new employee from a validated payload
func (api *Api) CreateEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	payload, errs, err := decodeEmployeePayload(r)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	employee := payload.toEmployee()
	if err := api.Store.CreateEmployee(employee); err != nil {
		log.Printf("Error creating employee: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, employeeItemResponse{Data: newEmployeeResource(employee)})
}

// ShowEmployeeHandler returns a single employee by ID
func (api *Api) ShowEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	employee, ok := api.resolveEmployee(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, employeeItemResponse{Data: newEmployeeResource(employee)})
}

// UpdateEmployeeHandler applies a validated full field set to an existing employee
func (api *Api) UpdateEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	employee, ok := api.resolveEmployee(w, r)
	if !ok {
		return
	}

	payload, errs, err := decodeEmployeePayload(r)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	payload.apply(employee)
	if err := api.Store.UpdateEmployee(employee); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondNotFound(w)
			return
		}
		log.Printf("Error updating employee %d: %v", employee.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, employeeItemResponse{Data: newEmployeeResource(employee)})
}

// DestroyEmployeeHandler deletes an employee by ID
func (api *Api) DestroyEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	employee, ok := api.resolveEmployee(w, r)
	if !ok {
		return
	}

	if err := api.Store.DeleteEmployee(employee.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondNotFound(w)
			return
		}
		log.Printf("Error deleting employee %d: %v", employee.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// resolveEmployee looks up the employee bound to the {employeeID} route
// parameter, writing the uniform not-found response when it does not resolve.
func (api *Api) resolveEmployee(w http.ResponseWriter, r *http.Request) (*models.Employee, bool) {
	raw := chi.URLParam(r, "employeeID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		respondNotFound(w)
		return nil, false
	}

	employee, err := api.Store.GetEmployeeByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondNotFound(w)
			return nil, false
		}
		log.Printf("Error fetching employee %d: %v", id, err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return nil, false
	}
	return employee, true
}

type employeePayload struct {
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Email      string   `json:"email"`
	Department string   `json:"department"`
	Salary     *float64 `json:"salary"`
}

func decodeEmployeePayload(r *http.Request) (*employeePayload, map[string][]string, error) {
	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, nil, err
	}
	if errs := payload.validate(); errs != nil {
		return nil, errs, nil
	}
	return &payload, nil, nil
}

func (p *employeePayload) validate() map[string][]string {
	errs := map[string][]string{}

	requireString(errs, "first_name", p.FirstName)
	requireString(errs, "last_name", p.LastName)
	requireString(errs, "department", p.Department)

	if p.Email == "" {
		errs["email"] = append(errs["email"], "The email field is required.")
	} else if !auth.ValidateEmail(p.Email) {
		errs["email"] = append(errs["email"], "The email must be a valid email address.")
	}

	if p.Salary == nil {
		errs["salary"] = append(errs["salary"], "The salary field is required.")
	} else if *p.Salary < 0 {
		errs["salary"] = append(errs["salary"], "The salary must be at least 0.")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func requireString(errs map[string][]string, field, value string) {
	if value == "" {
		errs[field] = append(errs[field], fmt.Sprintf("The %s field is required.", field))
	} else if len(value) > 255 {
		errs[field] = append(errs[field], fmt.Sprintf("The %s may not be greater than 255 characters.", field))
	}
}

func (p *employeePayload) toEmployee() *models.Employee {
	return &models.Employee{
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Email:      p.Email,
		Department: p.Department,
		Salary:     *p.Salary,
	}
}

func (p *employeePayload) apply(e *models.Employee) {
	e.FirstName = p.FirstName
	e.LastName = p.LastName
	e.Email = p.Email
	e.Department = p.Department
	e.Salary = *p.Salary
}
