/*
Package leaveservice is the HTTP client for the remote leave service that
owns all business data: employees, leave requests, and allotments.

PURPOSE:
  The leave engine itself is pure; everything stateful lives behind this
  boundary. The client covers the full API surface: employee registration
  and lookup, leave application and approval, balances, paged history,
  and dashboard statistics.

ERROR HANDLING:
  Connection failures wrap ErrUnavailable; service-reported failures
  ({"success": false, ...} or a bare non-2xx status) become *APIError,
  with 404s matching ErrNotFound through errors.Is.

IDEMPOTENCY:
  Every mutating call sends a fresh Idempotency-Key header so the service
  can de-duplicate retries.

CLOCK:
  Today() comes from an injectable Clock so validation against "today"
  stays deterministic in tests.

SEE ALSO:
  - dto.go: Wire types and domain conversion
  - servicetest/: In-memory fake of the remote service for tests
*/
package leaveservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/leave"
)

// =============================================================================
// CLOCK - Injected "today"
// =============================================================================

// Clock supplies the current calendar day.
type Clock interface {
	Today() calendar.Date
}

type systemClock struct{}

func (systemClock) Today() calendar.Date { return calendar.Today() }

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the remote leave service. Safe for concurrent use.
type Client struct {
	baseURL string
	httpc   *http.Client
	clock   Clock
}

// New creates a client with the system clock.
func New(cfg Config) *Client {
	return NewWithClock(cfg, systemClock{})
}

// NewWithClock creates a client with an injected clock, for deterministic
// past-date validation in tests.
func NewWithClock(cfg Config, clock Clock) *Client {
	base := cfg.BaseURL
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	return &Client{
		baseURL: base,
		httpc:   &http.Client{Timeout: cfg.Timeout},
		clock:   clock,
	}
}

// Today returns the current calendar day from the injected clock.
func (c *Client) Today() calendar.Date { return c.clock.Today() }

// =============================================================================
// EMPLOYEES
// =============================================================================

// AddEmployee registers a new employee.
func (c *Client) AddEmployee(ctx context.Context, emp NewEmployee) (leave.Employee, error) {
	var resp struct {
		envelope
		Employee employeeDTO `json:"employee"`
	}
	err := c.do(ctx, http.MethodPost, "/employees", "/employees", emp, &resp)
	if err != nil {
		return leave.Employee{}, err
	}
	return resp.Employee.toDomain(), nil
}

// Employees lists all employees.
func (c *Client) Employees(ctx context.Context) ([]leave.Employee, error) {
	var resp struct {
		envelope
		Employees []employeeDTO `json:"employees"`
	}
	if err := c.do(ctx, http.MethodGet, "/employees", "/employees", nil, &resp); err != nil {
		return nil, err
	}
	employees := make([]leave.Employee, len(resp.Employees))
	for i, d := range resp.Employees {
		employees[i] = d.toDomain()
	}
	return employees, nil
}

// Employee fetches one employee by id.
func (c *Client) Employee(ctx context.Context, id int) (leave.Employee, error) {
	var resp struct {
		envelope
		Employee employeeDTO `json:"employee"`
	}
	path := fmt.Sprintf("/employees/%d", id)
	if err := c.do(ctx, http.MethodGet, "/employees/{id}", path, nil, &resp); err != nil {
		return leave.Employee{}, err
	}
	return resp.Employee.toDomain(), nil
}

// =============================================================================
// LEAVE REQUESTS
// =============================================================================

// ApplyLeave submits a leave application. The service runs the same
// policy validation this repo's leave package implements; a rejection
// comes back as an *APIError carrying the collected findings.
func (c *Client) ApplyLeave(ctx context.Context, app Application) (leave.Request, error) {
	var resp struct {
		envelope
		Request requestDTO `json:"request"`
	}
	err := c.do(ctx, http.MethodPost, "/leave-requests", "/leave-requests", app, &resp)
	if err != nil {
		return leave.Request{}, err
	}
	return resp.Request.toDomain(), nil
}

// RequestFilter narrows a request listing. Zero values mean "no filter".
type RequestFilter struct {
	EmployeeID int
	Status     leave.Status
	Year       int
}

// Requests lists leave requests matching the filter.
func (c *Client) Requests(ctx context.Context, filter RequestFilter) ([]leave.Request, error) {
	q := url.Values{}
	if filter.EmployeeID != 0 {
		q.Set("employee_id", strconv.Itoa(filter.EmployeeID))
	}
	if filter.Status != "" {
		q.Set("status", string(filter.Status))
	}
	if filter.Year != 0 {
		q.Set("year", strconv.Itoa(filter.Year))
	}
	path := "/leave-requests"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp struct {
		envelope
		Requests []requestDTO `json:"requests"`
	}
	if err := c.do(ctx, http.MethodGet, "/leave-requests", path, nil, &resp); err != nil {
		return nil, err
	}
	return requestsToDomain(resp.Requests), nil
}

// ListRequests returns an employee's requests touching the given year.
// This is the reconciler's input feed.
func (c *Client) ListRequests(ctx context.Context, employeeID, year int) ([]leave.Request, error) {
	return c.Requests(ctx, RequestFilter{EmployeeID: employeeID, Year: year})
}

// ApproveLeave approves a pending request on behalf of an approver.
func (c *Client) ApproveLeave(ctx context.Context, requestID, approverID int) (leave.Request, error) {
	return c.decide(ctx, requestID, approverID, "approve")
}

// RejectLeave rejects a pending request on behalf of an approver.
func (c *Client) RejectLeave(ctx context.Context, requestID, approverID int) (leave.Request, error) {
	return c.decide(ctx, requestID, approverID, "reject")
}

func (c *Client) decide(ctx context.Context, requestID, approverID int, action string) (leave.Request, error) {
	var resp struct {
		envelope
		Request requestDTO `json:"request"`
	}
	path := fmt.Sprintf("/leave-requests/%d/%s", requestID, action)
	endpoint := "/leave-requests/{id}/" + action
	err := c.do(ctx, http.MethodPut, endpoint, path, decisionBody{ApprovedBy: approverID}, &resp)
	if err != nil {
		return leave.Request{}, err
	}
	return resp.Request.toDomain(), nil
}

// =============================================================================
// BALANCES AND ALLOTMENTS
// =============================================================================

// Allotment returns the employee's yearly entitlement per tracked type.
func (c *Client) Allotment(ctx context.Context, employeeID, year int) (leave.Allotment, error) {
	var resp struct {
		envelope
		Allotment allotmentDTO `json:"allotment"`
	}
	path := fmt.Sprintf("/employees/%d/allotment?year=%d", employeeID, year)
	if err := c.do(ctx, http.MethodGet, "/employees/{id}/allotment", path, nil, &resp); err != nil {
		return leave.Allotment{}, err
	}
	return leave.Allotment{Annual: resp.Allotment.Annual, Sick: resp.Allotment.Sick}, nil
}

// Balance returns the employee's reconciled balance snapshots for a year.
func (c *Client) Balance(ctx context.Context, employeeID, year int) (leave.Balances, error) {
	var resp struct {
		envelope
		Balance leave.Balances `json:"balance"`
	}
	path := fmt.Sprintf("/employees/%d/balance?year=%d", employeeID, year)
	if err := c.do(ctx, http.MethodGet, "/employees/{id}/balance", path, nil, &resp); err != nil {
		return leave.Balances{}, err
	}
	return resp.Balance, nil
}

// History returns one page of an employee's leave history.
func (c *Client) History(ctx context.Context, employeeID, page, limit int) (History, error) {
	var resp struct {
		envelope
		History    []requestDTO `json:"history"`
		Pagination Pagination   `json:"pagination"`
	}
	path := fmt.Sprintf("/employees/%d/leave-history?page=%d&limit=%d", employeeID, page, limit)
	if err := c.do(ctx, http.MethodGet, "/employees/{id}/leave-history", path, nil, &resp); err != nil {
		return History{}, err
	}
	return History{Requests: requestsToDomain(resp.History), Pagination: resp.Pagination}, nil
}

// =============================================================================
// DASHBOARD
// =============================================================================

// Stats returns the dashboard rollup.
func (c *Client) Stats(ctx context.Context) (DashboardStats, error) {
	var resp struct {
		envelope
		Stats DashboardStats `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", "/dashboard/stats", nil, &resp); err != nil {
		return DashboardStats{}, err
	}
	return resp.Stats, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

type enveloped interface {
	ok() bool
	errMessage() string
}

func (e envelope) ok() bool           { return e.Success }
func (e envelope) errMessage() string { return e.Error }

// do performs one request. endpoint is the route pattern used as the
// metric label; path is the concrete URL path with query string.
func (c *Client) do(ctx context.Context, method, endpoint, path string, body, out any) error {
	timer := prometheus.NewTimer(apiLatency.WithLabelValues(method, endpoint))
	defer timer.ObserveDuration()

	var payload *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewBuffer(raw)
	} else {
		payload = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost || method == http.MethodPut {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		apiRequestsTotal.WithLabelValues(method, endpoint, "unreachable").Inc()
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	apiRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	decodeErr := json.NewDecoder(resp.Body).Decode(out)

	env, isEnveloped := out.(enveloped)
	if resp.StatusCode >= 400 || (decodeErr == nil && isEnveloped && !env.ok()) {
		message := ""
		if decodeErr == nil && isEnveloped {
			message = env.errMessage()
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	return nil
}
