package gateway

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/config"
	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/models"
	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/utils"
)

const testSecret = "test-secret"

// stubService fakes one downstream RPC surface: canned replies per command,
// with the last payload per command recorded for assertions.
type stubService struct {
	mu       sync.Mutex
	replies  map[string]string
	payloads map[string][]byte
	server   *httptest.Server
}

func newStubService(t *testing.T, replies map[string]string) *stubService {
	t.Helper()

	stub := &stubService{
		replies:  replies,
		payloads: map[string][]byte{},
	}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cmd := strings.TrimPrefix(r.URL.Path, "/rpc/")
		body, _ := io.ReadAll(r.Body)

		stub.mu.Lock()
		stub.payloads[cmd] = body
		reply, ok := stub.replies[cmd]
		stub.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if !ok {
			_, _ = w.Write([]byte(`{"error":{"statusCode":404,"message":"unknown command: ` + cmd + `"}}`))
			return
		}
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

func (s *stubService) payload(cmd string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payloads[cmd]
}

type testEnv struct {
	router     *gin.Engine
	auth       *stubService
	employee   *stubService
	attendance *stubService
	upload     *stubService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		auth:       newStubService(t, map[string]string{}),
		employee:   newStubService(t, map[string]string{}),
		attendance: newStubService(t, map[string]string{}),
		upload:     newStubService(t, map[string]string{}),
	}

	cfg := config.Config{
		JwtSecret:     testSecret,
		AuthURL:       env.auth.server.URL,
		EmployeeURL:   env.employee.server.URL,
		AttendanceURL: env.attendance.server.URL,
		UploadURL:     env.upload.server.URL,
	}

	env.router = gin.New()
	Register(env.router, NewClients(cfg), cfg)
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	e.router.ServeHTTP(recorder, req)
	return recorder
}

func employeeToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateAccessToken("user-1", "employee@company.com", models.RoleEmployee, "emp-1", testSecret, 15)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func hrToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateAccessToken("user-2", "hr@company.com", models.RoleHRAdmin, "", testSecret, 15)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

// multipartWriter writes a single-file multipart body into buf and returns
// the Content-Type header value to send with it.
func multipartWriter(t *testing.T, buf *bytes.Buffer, field, filename string, content []byte) string {
	t.Helper()

	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return writer.FormDataContentType()
}

func TestLoginForwardsToAuthService(t *testing.T) {
	env := newTestEnv(t)
	env.auth.replies["login"] = `{"access_token":"tok","user":{"id":"u1","email":"employee@company.com","role":"EMPLOYEE"}}`

	recorder := env.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"employee@company.com","password":"hunter22"}`)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body)
	}

	var reply map[string]any
	if err := json.Unmarshal(recorder.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if reply["access_token"] != "tok" {
		t.Errorf("reply not forwarded verbatim: %v", reply)
	}

	var forwarded map[string]string
	if err := json.Unmarshal(env.auth.payload("login"), &forwarded); err != nil {
		t.Fatalf("decode forwarded payload: %v", err)
	}
	if forwarded["email"] != "employee@company.com" || forwarded["password"] != "hunter22" {
		t.Errorf("unexpected forwarded payload %v", forwarded)
	}
}

func TestLoginErrorTranslation(t *testing.T) {
	env := newTestEnv(t)
	env.auth.replies["login"] = `{"error":{"statusCode":401,"message":"Invalid credentials"}}`

	recorder := env.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"x","password":"y"}`)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Invalid credentials") {
		t.Errorf("business message lost: %s", recorder.Body)
	}
}

func TestBareErrorShapeTranslation(t *testing.T) {
	env := newTestEnv(t)
	env.employee.replies["get_employee"] = `{"statusCode":404,"message":"Employee not found"}`

	recorder := env.do(t, http.MethodGet, "/api/employees/abc", hrToken(t), "")

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Employee not found") {
		t.Errorf("business message lost: %s", recorder.Body)
	}
}

func TestUnknownDownstreamStatusBecomesInternal(t *testing.T) {
	env := newTestEnv(t)
	env.employee.replies["get_all_employees"] = `{"error":{"statusCode":418,"message":"weird"}}`

	recorder := env.do(t, http.MethodGet, "/api/employees", hrToken(t), "")

	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", recorder.Code)
	}
}

func TestMissingTokenRejected(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, http.MethodGet, "/api/employees", "", "")
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
}

func TestRoleGating(t *testing.T) {
	env := newTestEnv(t)
	env.employee.replies["get_all_employees"] = `[]`
	env.attendance.replies["get_all_attendance"] = `[]`
	env.attendance.replies["get_employee_attendance"] = `[]`

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"employee denied on employee list", http.MethodGet, "/api/employees", employeeToken(t), http.StatusForbidden},
		{"hr allowed on employee list", http.MethodGet, "/api/employees", hrToken(t), http.StatusOK},
		{"hr denied on my attendance", http.MethodGet, "/api/attendance/my", hrToken(t), http.StatusForbidden},
		{"employee allowed on my attendance", http.MethodGet, "/api/attendance/my", employeeToken(t), http.StatusOK},
		{"hr allowed on all attendance", http.MethodGet, "/api/attendance", hrToken(t), http.StatusOK},
		{"hr denied on attendance submit", http.MethodPost, "/api/attendance", hrToken(t), http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := env.do(t, tc.method, tc.path, tc.token, "")
			if recorder.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, recorder.Code, recorder.Body)
			}
		})
	}
}

func TestCreateAttendanceUsesTokenEmployeeID(t *testing.T) {
	env := newTestEnv(t)
	env.attendance.replies["create_attendance"] = `{"id":"att-1","employeeId":"emp-1","notes":"WFH"}`

	recorder := env.do(t, http.MethodPost, "/api/attendance", employeeToken(t), `{"photoUrl":"https://cdn/p.jpg","notes":"WFH"}`)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body)
	}

	var forwarded struct {
		EmployeeID string          `json:"employeeId"`
		Data       json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(env.attendance.payload("create_attendance"), &forwarded); err != nil {
		t.Fatalf("decode forwarded payload: %v", err)
	}
	if forwarded.EmployeeID != "emp-1" {
		t.Errorf("employee id not derived from token: %q", forwarded.EmployeeID)
	}
	if !strings.Contains(string(forwarded.Data), "WFH") {
		t.Errorf("request body not forwarded: %s", forwarded.Data)
	}
}

func TestGetMyAttendanceForwardsTokenEmployeeID(t *testing.T) {
	env := newTestEnv(t)
	env.attendance.replies["get_employee_attendance"] = `[{"id":"att-1","notes":"WFH"}]`

	recorder := env.do(t, http.MethodGet, "/api/attendance/my", employeeToken(t), "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	if !strings.Contains(string(env.attendance.payload("get_employee_attendance")), "emp-1") {
		t.Errorf("employee id not forwarded: %s", env.attendance.payload("get_employee_attendance"))
	}
}

func TestGetAttendanceByIDAnyAuthenticatedRole(t *testing.T) {
	env := newTestEnv(t)
	env.attendance.replies["get_attendance"] = `{"id":"att-1"}`

	for _, token := range []string{employeeToken(t), hrToken(t)} {
		recorder := env.do(t, http.MethodGet, "/api/attendance/att-1", token, "")
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}
	}
}

func TestMeUnknownUserIsUnauthenticated(t *testing.T) {
	env := newTestEnv(t)
	env.auth.replies["validate_user"] = `null`

	recorder := env.do(t, http.MethodGet, "/api/me", employeeToken(t), "")
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
}

func TestMeReturnsProjection(t *testing.T) {
	env := newTestEnv(t)
	env.auth.replies["validate_user"] = `{"id":"user-1","email":"employee@company.com","role":"EMPLOYEE","employeeId":"emp-1"}`

	recorder := env.do(t, http.MethodGet, "/api/me", employeeToken(t), "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "employee@company.com") {
		t.Errorf("projection not forwarded: %s", recorder.Body)
	}
}

func TestUploadForwardsMultipartFile(t *testing.T) {
	env := newTestEnv(t)
	env.upload.replies["upload_file"] = `{"url":"https://res.cloudinary.com/demo/p.jpg","public_id":"attendance_photos/p"}`

	var body bytes.Buffer
	writer := multipartWriter(t, &body, "file", "photo.jpg", []byte("jpeg-bytes"))

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", writer)
	req.Header.Set("Authorization", "Bearer "+employeeToken(t))

	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body)
	}

	var forwarded struct {
		Buffer       []byte `json:"buffer"`
		OriginalName string `json:"originalname"`
	}
	if err := json.Unmarshal(env.upload.payload("upload_file"), &forwarded); err != nil {
		t.Fatalf("decode forwarded payload: %v", err)
	}
	if string(forwarded.Buffer) != "jpeg-bytes" || forwarded.OriginalName != "photo.jpg" {
		t.Errorf("file not forwarded: %+v", forwarded)
	}
}

func TestUploadWithoutFileTranslatesDownstreamValidation(t *testing.T) {
	env := newTestEnv(t)
	env.upload.replies["upload_file"] = `{"error":{"statusCode":400,"message":"No file provided"}}`

	recorder := env.do(t, http.MethodPost, "/api/upload", employeeToken(t), "")
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "No file provided") {
		t.Errorf("message lost: %s", recorder.Body)
	}
}
