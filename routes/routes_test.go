package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/employee-directory/apperrors"
	"github.com/employee-directory/repositories/repotest"
	"github.com/employee-directory/services"
	"github.com/employee-directory/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeDB struct {
	err error
}

func (f *fakeDB) Handle(ctx context.Context) (*gorm.DB, error) {
	if f.err != nil {
		return nil, apperrors.Wrap(f.err, apperrors.CodeUnavailable, "Database Connection Error")
	}
	return nil, nil
}

func (f *fakeDB) Ping(ctx context.Context) error { return f.err }

type testServer struct {
	router    *gin.Engine
	db        *fakeDB
	users     *repotest.UserStore
	employees *repotest.EmployeeStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		db:        &fakeDB{},
		users:     repotest.NewUserStore(),
		employees: repotest.NewEmployeeStore(),
	}
	log := zap.NewNop()
	ts.router = NewRouter(Dependencies{
		Logger:    log,
		DB:        ts.db,
		Users:     services.NewUserService(ts.users, utils.SHA256Hasher{}, log),
		Employees: services.NewEmployeeService(ts.employees, log),
	})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	assert.Equal(t, status, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, false, body["status"])
	assert.Equal(t, message, body["message"])
}

const employeeJSON = `{"first_name":"A","last_name":"B","email":"a@b.com","position":"Eng","salary":50000,"date_of_joining":"2024-01-01","department":"R&D"}`

func (ts *testServer) createEmployee(t *testing.T, body string) string {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/v1/emp/employees", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id, _ := decode(t, rec)["employee_id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestRootBanner(t *testing.T) {
	ts := newTestServer(t)
	ts.db.err = errors.New("no database")

	rec := ts.do(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Employee Management API","status":true}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])

	ts.db.err = errors.New("no database")
	rec = ts.do(t, http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "down", decode(t, rec)["database"])
}

func TestDatabaseUnavailable(t *testing.T) {
	ts := newTestServer(t)
	ts.db.err = errors.New("dial tcp: connection refused")

	rec := ts.do(t, http.MethodGet, "/api/v1/emp/employees", "")
	assertError(t, rec, http.StatusInternalServerError, "Database Connection Error")

	rec = ts.do(t, http.MethodPost, "/api/v1/user/login", `{"username":"alice","password":"secret12"}`)
	assertError(t, rec, http.StatusInternalServerError, "Database Connection Error")
	assert.Zero(t, ts.employees.Calls)
}

func TestSignupAndLogin(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/user/signup", `{"username":"alice","email":"alice@x.com","password":"secret12"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "User created successfully.", body["message"])
	assert.True(t, utils.IsValidID(body["user_id"].(string)))

	rec = ts.do(t, http.MethodPost, "/api/v1/user/signup", `{"username":"alice","email":"other@x.com","password":"secret12"}`)
	assertError(t, rec, http.StatusBadRequest, "Username or email already exists")
	assert.Equal(t, 1, ts.users.Len())

	rec = ts.do(t, http.MethodPost, "/api/v1/user/login", `{"username":"alice","password":"secret12"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Login successful."}`, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/api/v1/user/login", `{"email":"alice@x.com","password":"secret12"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/user/login", `{"username":"alice","password":"wrong"}`)
	assertError(t, rec, http.StatusBadRequest, "Invalid Username and password")

	rec = ts.do(t, http.MethodPost, "/api/v1/user/login", `{"username":"alice"}`)
	assertError(t, rec, http.StatusBadRequest, "Please enter your password")
}

func TestSignupValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"empty body", "", "Please enter a username"},
		{"all missing", `{}`, "Please enter a username"},
		{"bad email", `{"username":"alice","email":"nope","password":"secret12"}`, "Please enter a valid email"},
		{"short password", `{"username":"alice","email":"alice@x.com","password":"short"}`, "Please enter a password with at least 7 characters"},
		{"malformed json", `{"username":`, "Invalid request body"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)
			rec := ts.do(t, http.MethodPost, "/api/v1/user/signup", tc.body)
			assertError(t, rec, http.StatusBadRequest, tc.want)
			assert.Zero(t, ts.users.Len())
		})
	}
}

func TestEmployeeLifecycle(t *testing.T) {
	ts := newTestServer(t)

	id := ts.createEmployee(t, employeeJSON)

	rec := ts.do(t, http.MethodGet, "/api/v1/emp/employees/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"employee_id":"`+id+`",
		"first_name":"A","last_name":"B","email":"a@b.com","position":"Eng",
		"salary":50000,"date_of_joining":"2024-01-01T00:00:00Z","department":"R&D"
	}`, rec.Body.String())

	rec = ts.do(t, http.MethodPut, "/api/v1/emp/employees/"+id, `{"position":"Senior Eng","salary":"65000"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Employee details updated successfully."}`, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/api/v1/emp/employees/"+id, "")
	body := decode(t, rec)
	assert.Equal(t, "Senior Eng", body["position"])
	assert.Equal(t, 65000.0, body["salary"])
	assert.Equal(t, "A", body["first_name"])

	rec = ts.do(t, http.MethodDelete, "/api/v1/emp/employees?eid="+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = ts.do(t, http.MethodDelete, "/api/v1/emp/employees?eid="+id, "")
	assertError(t, rec, http.StatusNotFound, "Employee not found")

	rec = ts.do(t, http.MethodGet, "/api/v1/emp/employees/"+id, "")
	assertError(t, rec, http.StatusNotFound, "Employee not found")
}

func TestListEmployees(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/emp/employees", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	ts.createEmployee(t, employeeJSON)
	ts.createEmployee(t, `{"first_name":"C","last_name":"D","email":"c@d.com","position":"Sales","salary":"1","date_of_joining":"2024-05-01","department":"Sales"}`)

	rec = ts.do(t, http.MethodGet, "/api/v1/emp/employees", "")
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0]["first_name"])
	assert.Equal(t, "C", list[1]["first_name"])
}

func TestSearchEmployees(t *testing.T) {
	ts := newTestServer(t)
	ts.createEmployee(t, employeeJSON)
	ts.createEmployee(t, `{"first_name":"C","last_name":"D","email":"c@d.com","position":"Sales Rep","salary":"1","date_of_joining":"2024-05-01","department":"Sales"}`)

	rec := ts.do(t, http.MethodGet, "/api/v1/emp/employees?department=&position=", "")
	assertError(t, rec, http.StatusBadRequest, "Please provide a department or position to search by")

	rec = ts.do(t, http.MethodGet, "/api/v1/emp/employees?department=r%26d", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "A", list[0]["first_name"])

	rec = ts.do(t, http.MethodGet, "/api/v1/emp/employees?department=sales&position=eng", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateEmployeeValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"empty object", `{}`, "Please enter a first name"},
		{"missing last name", `{"first_name":"A"}`, "Please enter a last name"},
		{"bad email", `{"first_name":"A","last_name":"B","email":"x"}`, "Please enter a valid email"},
		{"bad salary", `{"first_name":"A","last_name":"B","email":"a@b.com","position":"Eng","salary":"lots","date_of_joining":"2024-01-01","department":"R&D"}`, "Please enter a valid salary (numeric)"},
		{"missing department", `{"first_name":"A","last_name":"B","email":"a@b.com","position":"Eng","salary":1,"date_of_joining":"2024-01-01"}`, "Please enter a department"},
		{"unparseable date", `{"first_name":"A","last_name":"B","email":"a@b.com","position":"Eng","salary":1,"date_of_joining":"soon","department":"R&D"}`, "Please enter a valid date of joining"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)
			rec := ts.do(t, http.MethodPost, "/api/v1/emp/employees", tc.body)
			assertError(t, rec, http.StatusBadRequest, tc.want)
			assert.Zero(t, ts.employees.Len())
		})
	}
}

func TestCreateEmployee_ExponentSalary(t *testing.T) {
	ts := newTestServer(t)
	id := ts.createEmployee(t, `{"first_name":"A","last_name":"B","email":"a@b.com","position":"Eng","salary":5e4,"date_of_joining":"2024-01-01","department":"R&D"}`)

	rec := ts.do(t, http.MethodGet, "/api/v1/emp/employees/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 50000.0, decode(t, rec)["salary"])
}

func TestUpdateEmployee_UnknownFieldsOnly(t *testing.T) {
	ts := newTestServer(t)
	id := ts.createEmployee(t, employeeJSON)

	rec := ts.do(t, http.MethodPut, "/api/v1/emp/employees/"+id, `{"nickname":"x"}`)
	assertError(t, rec, http.StatusBadRequest, "No update data provided")
}

func TestCreateEmployee_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.createEmployee(t, employeeJSON)

	rec := ts.do(t, http.MethodPost, "/api/v1/emp/employees", employeeJSON)
	assertError(t, rec, http.StatusBadRequest, "Employee with this email already exists")
	assert.Equal(t, 1, ts.employees.Len())
}

func TestEmployeeIDErrors(t *testing.T) {
	ts := newTestServer(t)
	const unknown = "6f1d2c3e-6a1b-4c2d-9e8f-0a1b2c3d4e5f"

	rec := ts.do(t, http.MethodGet, "/api/v1/emp/employees/123", "")
	assertError(t, rec, http.StatusBadRequest, "Invalid employee ID")

	rec = ts.do(t, http.MethodGet, "/api/v1/emp/employees/"+unknown, "")
	assertError(t, rec, http.StatusNotFound, "Employee not found")

	rec = ts.do(t, http.MethodPut, "/api/v1/emp/employees/"+unknown, "")
	assertError(t, rec, http.StatusBadRequest, "No update data provided")

	rec = ts.do(t, http.MethodPut, "/api/v1/emp/employees/"+unknown, `{}`)
	assertError(t, rec, http.StatusBadRequest, "No update data provided")

	rec = ts.do(t, http.MethodPut, "/api/v1/emp/employees/123", `{"position":"Eng"}`)
	assertError(t, rec, http.StatusBadRequest, "Invalid employee ID")

	rec = ts.do(t, http.MethodPut, "/api/v1/emp/employees/"+unknown, `{"position":"Eng"}`)
	assertError(t, rec, http.StatusNotFound, "Employee not found")

	rec = ts.do(t, http.MethodDelete, "/api/v1/emp/employees", "")
	assertError(t, rec, http.StatusBadRequest, "Employee ID is required")

	rec = ts.do(t, http.MethodDelete, "/api/v1/emp/employees?eid=123", "")
	assertError(t, rec, http.StatusBadRequest, "Invalid employee ID")
}

func TestStoreFailureIsGeneric(t *testing.T) {
	ts := newTestServer(t)
	ts.employees.Err = errors.New("pq: relation does not exist")

	rec := ts.do(t, http.MethodGet, "/api/v1/emp/employees", "")
	assertError(t, rec, http.StatusInternalServerError, "Server error")
	assert.NotContains(t, rec.Body.String(), "relation")
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/nope", "")
	assertError(t, rec, http.StatusNotFound, "Route not found")
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/emp/employees", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
