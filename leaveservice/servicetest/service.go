/*
Package servicetest provides an in-memory fake of the remote leave
service for client and integration tests.

PURPOSE:
  The real service owns employees, requests, and allotments behind an
  HTTP API. Tests need that behavior without a network dependency, so
  this fake keeps everything in maps and mounts the same routes on a
  chi router. Start it with httptest.NewServer(fake.Router()).

FIDELITY:
  - Same JSON envelope: {"success": bool, "error": string, ...}
  - Same validation: the fake runs the real leave.Validator and
    leave.Reconciler, so client tests exercise genuine policy behavior
  - Same middleware posture: the production service answers browser
    dashboards cross-origin, so the fake mounts the same CORS handler
  - Approval state machine: a request leaves pending exactly once;
    deciding a decided request is a conflict

SEE ALSO:
  - leaveservice/client.go: The client under test
  - leave/: The engine the fake runs behind its routes
*/
package servicetest

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/leave"
)

// Clock supplies the fake's "today" for past-date validation.
type Clock interface {
	Today() calendar.Date
}

// FixedClock is a Clock pinned to one day.
type FixedClock struct {
	Day calendar.Date
}

func (c FixedClock) Today() calendar.Date { return c.Day }

// =============================================================================
// SERVICE - In-memory leave service
// =============================================================================

// Service is the fake remote leave service. Safe for concurrent use.
type Service struct {
	mu sync.Mutex

	clock      Clock
	validator  *leave.Validator
	reconciler *leave.Reconciler

	defaultAllotment leave.Allotment
	allotments       map[int]leave.Allotment
	employees        map[int]leave.Employee
	requests         map[int]leave.Request
	idempotency      map[string]int // Idempotency-Key -> request id

	nextEmployeeID int
	nextRequestID  int
}

// New creates a fake service with a 20/10 annual/sick default allotment
// and stock validation limits.
func New(clock Clock) *Service {
	return &Service{
		clock:            clock,
		validator:        &leave.Validator{},
		reconciler:       &leave.Reconciler{},
		defaultAllotment: leave.Allotment{Annual: 20, Sick: 10},
		allotments:       make(map[int]leave.Allotment),
		employees:        make(map[int]leave.Employee),
		requests:         make(map[int]leave.Request),
		idempotency:      make(map[string]int),
		nextEmployeeID:   1,
		nextRequestID:    1,
	}
}

// SetAllotment overrides one employee's yearly allotment.
func (s *Service) SetAllotment(employeeID int, a leave.Allotment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allotments[employeeID] = a
}

// SetLimits overrides the validator's duration limits.
func (s *Service) SetLimits(limits leave.Limits) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.validator = &leave.Validator{Limits: limits, Holidays: s.validator.Holidays}
}

// SetHolidays installs a holiday calendar for both validation and
// balance reconciliation.
func (s *Service) SetHolidays(holidays calendar.HolidayCalendar) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.validator = &leave.Validator{Limits: s.validator.Limits, Holidays: holidays}
	s.reconciler = &leave.Reconciler{Holidays: holidays}
}

// SeedEmployee inserts an employee directly, bypassing form validation.
// Returns the assigned id.
func (s *Service) SeedEmployee(emp leave.Employee) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	emp.ID = s.nextEmployeeID
	s.nextEmployeeID++
	s.employees[emp.ID] = emp
	return emp.ID
}

// SeedRequest inserts a request directly, bypassing policy validation.
// Returns the assigned id.
func (s *Service) SeedRequest(req leave.Request) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	req.ID = s.nextRequestID
	s.nextRequestID++
	s.requests[req.ID] = req
	return req.ID
}

// =============================================================================
// ROUTER
// =============================================================================

// Router mounts the service's routes.
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Idempotency-Key"},
	}))

	r.Route("/employees", func(r chi.Router) {
		r.Get("/", s.listEmployees)
		r.Post("/", s.addEmployee)
		r.Get("/{id}", s.getEmployee)
		r.Get("/{id}/allotment", s.getAllotment)
		r.Get("/{id}/balance", s.getBalance)
		r.Get("/{id}/leave-history", s.getHistory)
	})

	r.Route("/leave-requests", func(r chi.Router) {
		r.Get("/", s.listRequests)
		r.Post("/", s.applyLeave)
		r.Put("/{id}/approve", s.approve)
		r.Put("/{id}/reject", s.reject)
	})

	r.Get("/dashboard/stats", s.dashboardStats)
	return r
}

// =============================================================================
// WIRE TYPES
// =============================================================================

type employeeJSON struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Department  string        `json:"department"`
	JoiningDate calendar.Date `json:"joining_date"`
}

func toEmployeeJSON(e leave.Employee) employeeJSON {
	return employeeJSON{
		ID: e.ID, Name: e.Name, Email: e.Email,
		Department: e.Department, JoiningDate: e.JoiningDate,
	}
}

type requestJSON struct {
	ID         int           `json:"id"`
	EmployeeID int           `json:"employee_id"`
	LeaveType  string        `json:"leave_type"`
	StartDate  calendar.Date `json:"start_date"`
	EndDate    calendar.Date `json:"end_date"`
	Status     string        `json:"status"`
	Reason     string        `json:"reason,omitempty"`
}

func toRequestJSON(r leave.Request) requestJSON {
	return requestJSON{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		LeaveType:  string(r.Type),
		StartDate:  r.Range.Start,
		EndDate:    r.Range.End,
		Status:     string(r.Status),
		Reason:     r.Reason,
	}
}

func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "error": message})
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

func (s *Service) addEmployee(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string        `json:"name"`
		Email       string        `json:"email"`
		Department  string        `json:"department"`
		JoiningDate calendar.Date `json:"joining_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result := leave.ValidateEmployee(body.Name, body.Email, body.Department,
		body.JoiningDate, s.clock.Today())
	if !result.Valid {
		writeError(w, http.StatusBadRequest, strings.Join(result.Errors, "; "))
		return
	}

	s.mu.Lock()
	emp := leave.Employee{
		ID:          s.nextEmployeeID,
		Name:        strings.TrimSpace(body.Name),
		Email:       strings.ToLower(strings.TrimSpace(body.Email)),
		Department:  strings.TrimSpace(body.Department),
		JoiningDate: body.JoiningDate,
	}
	s.nextEmployeeID++
	s.employees[emp.ID] = emp
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true, "employee": toEmployeeJSON(emp),
	})
}

func (s *Service) listEmployees(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	employees := make([]employeeJSON, 0, len(s.employees))
	for _, emp := range s.employees {
		employees = append(employees, toEmployeeJSON(emp))
	}
	s.mu.Unlock()
	sort.Slice(employees, func(i, j int) bool { return employees[i].ID < employees[j].ID })

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "employees": employees})
}

func (s *Service) getEmployee(w http.ResponseWriter, r *http.Request) {
	emp, ok := s.lookupEmployee(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "employee": toEmployeeJSON(emp)})
}

func (s *Service) lookupEmployee(w http.ResponseWriter, r *http.Request) (leave.Employee, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid employee id")
		return leave.Employee{}, false
	}
	s.mu.Lock()
	emp, ok := s.employees[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "employee not found")
		return leave.Employee{}, false
	}
	return emp, true
}

// =============================================================================
// LEAVE REQUEST HANDLERS
// =============================================================================

func (s *Service) applyLeave(w http.ResponseWriter, r *http.Request) {
	var body struct {
		EmployeeID int           `json:"employee_id"`
		LeaveType  string        `json:"leave_type"`
		StartDate  calendar.Date `json:"start_date"`
		EndDate    calendar.Date `json:"end_date"`
		Reason     string        `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[body.EmployeeID]; !ok {
		writeError(w, http.StatusNotFound, "employee not found")
		return
	}

	// Retried submissions with the same idempotency key return the
	// original request instead of double-booking.
	key := r.Header.Get("Idempotency-Key")
	if key != "" {
		if existingID, seen := s.idempotency[key]; seen {
			writeJSON(w, http.StatusOK, map[string]any{
				"success": true, "request": toRequestJSON(s.requests[existingID]),
			})
			return
		}
	}

	rng := calendar.Range{Start: body.StartDate, End: body.EndDate}
	result := s.validator.Validate(body.EmployeeID, body.LeaveType, rng, s.clock.Today())
	if !result.Valid {
		writeError(w, http.StatusBadRequest, strings.Join(result.Errors, "; "))
		return
	}

	leaveType, _ := leave.ParseType(body.LeaveType) // validated above
	req := leave.Request{
		ID:         s.nextRequestID,
		EmployeeID: body.EmployeeID,
		Type:       leaveType,
		Range:      rng,
		Status:     leave.StatusPending,
		Reason:     body.Reason,
	}
	s.nextRequestID++
	s.requests[req.ID] = req
	if key != "" {
		s.idempotency[key] = req.ID
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true, "request": toRequestJSON(req),
	})
}

func (s *Service) listRequests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	employeeID, _ := strconv.Atoi(q.Get("employee_id"))
	year, _ := strconv.Atoi(q.Get("year"))
	status := q.Get("status")

	s.mu.Lock()
	var matched []requestJSON
	for _, req := range s.sortedRequests() {
		if employeeID != 0 && req.EmployeeID != employeeID {
			continue
		}
		if status != "" && string(req.Status) != status {
			continue
		}
		if year != 0 {
			if _, overlaps := req.Range.ClampToYear(year); !overlaps {
				continue
			}
		}
		matched = append(matched, toRequestJSON(req))
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "requests": matched})
}

func (s *Service) approve(w http.ResponseWriter, r *http.Request) {
	s.decide(w, r, leave.StatusApproved)
}

func (s *Service) reject(w http.ResponseWriter, r *http.Request) {
	s.decide(w, r, leave.StatusRejected)
}

// decide moves a pending request to its final status. A request leaves
// pending at most once; the second decision is a conflict.
func (s *Service) decide(w http.ResponseWriter, r *http.Request, to leave.Status) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request id")
		return
	}
	var body struct {
		ApprovedBy int `json:"approved_by"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[id]
	if !ok {
		writeError(w, http.StatusNotFound, "leave request not found")
		return
	}
	if req.Status != leave.StatusPending {
		writeError(w, http.StatusConflict, "leave request already decided")
		return
	}

	req.Status = to
	s.requests[id] = req
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "request": toRequestJSON(req)})
}

// =============================================================================
// BALANCE, HISTORY, DASHBOARD
// =============================================================================

func (s *Service) getAllotment(w http.ResponseWriter, r *http.Request) {
	emp, ok := s.lookupEmployee(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	allotment := s.allotmentFor(emp.ID)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"allotment": map[string]int{"annual": allotment.Annual, "sick": allotment.Sick},
	})
}

func (s *Service) getBalance(w http.ResponseWriter, r *http.Request) {
	emp, ok := s.lookupEmployee(w, r)
	if !ok {
		return
	}
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	if year == 0 {
		year = s.clock.Today().Year()
	}

	s.mu.Lock()
	var requests []leave.Request
	for _, req := range s.requests {
		if req.EmployeeID == emp.ID {
			requests = append(requests, req)
		}
	}
	balances := s.reconciler.Reconcile(s.allotmentFor(emp.ID), requests, year)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "balance": balances})
}

func (s *Service) getHistory(w http.ResponseWriter, r *http.Request) {
	emp, ok := s.lookupEmployee(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	s.mu.Lock()
	var all []leave.Request
	for _, req := range s.sortedRequests() {
		if req.EmployeeID == emp.ID {
			all = append(all, req)
		}
	}
	s.mu.Unlock()

	start := (page - 1) * limit
	end := start + limit
	if start > len(all) {
		start = len(all)
	}
	if end > len(all) {
		end = len(all)
	}
	pageItems := make([]requestJSON, 0, end-start)
	for _, req := range all[start:end] {
		pageItems = append(pageItems, toRequestJSON(req))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"history": pageItems,
		"pagination": map[string]int{
			"page": page, "limit": limit, "total": len(all),
		},
	})
}

func (s *Service) dashboardStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	employees := make([]leave.Employee, 0, len(s.employees))
	for _, emp := range s.employees {
		employees = append(employees, emp)
	}
	requests := s.sortedRequests()
	s.mu.Unlock()

	summary := leave.Summarize(requests)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats": map[string]any{
			"department_analytics": leave.DepartmentAnalytics(employees, requests, s.clock.Today()),
			"total_employees":      len(employees),
			"pending_requests":     summary.ByStatus.Pending,
		},
	})
}

// sortedRequests returns all requests ordered by id. Callers must hold mu.
func (s *Service) sortedRequests() []leave.Request {
	requests := make([]leave.Request, 0, len(s.requests))
	for _, req := range s.requests {
		requests = append(requests, req)
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].ID < requests[j].ID })
	return requests
}

func (s *Service) allotmentFor(employeeID int) leave.Allotment {
	if a, ok := s.allotments[employeeID]; ok {
		return a
	}
	return s.defaultAllotment
}
