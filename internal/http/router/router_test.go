package router

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
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/agency-site/internal/apiclient"
	"github.com/ignatzorin/agency-site/internal/catalog"
	"github.com/ignatzorin/agency-site/internal/config"
	"github.com/ignatzorin/agency-site/internal/http/handlers"
	"github.com/ignatzorin/agency-site/internal/service"
	"github.com/ignatzorin/agency-site/internal/storage"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

// fakeAPI: внешний API агентства в памяти.
type fakeAPI struct {
	mu           sync.Mutex
	statusReply  string
	listCalls    int
	lastForm     map[string]string
	lastFileName string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/applications/stats":
		_, _ = io.WriteString(w, `{"success":true,"data":{"total":{"all":1,"job":1,"spontaneous":0},"jobApplicationsByStatus":[{"_id":"pending","count":1}],"spontaneousApplicationsByStatus":[]}}`)
	case r.Method == http.MethodGet && r.URL.Path == "/api/applications/job":
		f.listCalls++
		_, _ = io.WriteString(w, `{"success":true,"data":[{"_id":"65f1c2a9e4b0a1b2c3d4e5f6","jobId":1,"jobTitle":"Senior Frontend Developer","applicantName":"Jane Doe","applicantEmail":"jane@example.com","status":"pending","appliedAt":"`+time.Now().UTC().Format(time.RFC3339)+`"}]}`)
	case r.Method == http.MethodGet && r.URL.Path == "/api/applications/spontaneous":
		f.listCalls++
		_, _ = io.WriteString(w, `{"success":true,"data":[]}`)
	case r.Method == http.MethodPatch && strings.HasSuffix(r.URL.Path, "/status"):
		_, _ = io.WriteString(w, f.statusReply)
	case r.Method == http.MethodPost && r.URL.Path == "/api/applications/job":
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.lastForm = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			f.lastForm[k] = v[0]
		}
		if files := r.MultipartForm.File["resume"]; len(files) > 0 {
			f.lastFileName = files[0].Filename
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"success":true,"message":"Application submitted"}`)
	case r.Method == http.MethodPost && r.URL.Path == "/api/contacts":
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"success":false,"errors":[{"msg":"Name is too short."},{"msg":"Subject is required."}]}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"success":false,"message":"Not found"}`)
	}
}

func newTestRouter(t *testing.T, upstream *fakeAPI) *gin.Engine {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		Env:             "test",
		AllowedOrigins:  []string{"http://localhost:5173"},
		RateLimitLimit:  100,
		RateLimitPeriod: time.Minute,
	}

	cat, err := catalog.Load()
	require.NoError(t, err)
	resumes, err := storage.NewResumeStorage(t.TempDir(), 5)
	require.NoError(t, err)

	api := apiclient.New(srv.URL+"/api", 5*time.Second)
	audit := service.NewAuditService(nil)
	sessions := service.NewSessionStore(service.SessionStoreConfig{TTL: time.Hour, PageSize: 10, ToastTTL: time.Minute})
	auth := service.NewAuthService(service.Credentials{Username: "admin", PasswordHash: string(hash)}, sessions, service.NewTokenManager("router-test-secret-with-enough-length"), audit)
	dashboard := service.NewDashboardService(api, audit)
	contacts := service.NewContactAdminService(api, audit)

	return SetupRouter(cfg, Handlers{
		Health:    handlers.NewHealthHandler(nil, api),
		Catalog:   handlers.NewCatalogHandler(cat),
		Careers:   handlers.NewCareersHandler(service.NewCareersService(api, cat, resumes), resumes.MaxBytes()),
		Contact:   handlers.NewContactHandler(service.NewContactFormService(api)),
		Auth:      handlers.NewAuthHandler(auth),
		WS:        handlers.NewWSHandler(nil, cfg.AllowedOrigins),
		Toasts:    handlers.NewToastHandler(),
		Dashboard: handlers.NewDashboardHandler(dashboard, service.NewExportService(dashboard, audit)),
		Contacts:  handlers.NewContactsAdminHandler(contacts),
		Dialogs:   handlers.NewDialogHandler(service.NewDialogService(dashboard, contacts)),
		Audit:     handlers.NewAuditHandler(audit),
	}, auth)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func do(t *testing.T, r http.Handler, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func login(t *testing.T, r http.Handler) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"username":"admin","password":"admin123"}`))
	req.Header.Set("Content-Type", "application/json")
	w, env := do(t, r, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res service.LoginResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	return res.Token
}

func authed(method, path, token string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter(t, &fakeAPI{})

	w, _ := do(t, r, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"disabled"`)
}

func TestRouter_JobsCatalog(t *testing.T) {
	r := newTestRouter(t, &fakeAPI{})

	w, env := do(t, r, httptest.NewRequest(http.MethodGet, "/api/jobs?department=Engineering", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Equal(t, 2, body.Total)

	w, _ = do(t, r, httptest.NewRequest(http.MethodGet, "/api/jobs/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, httptest.NewRequest(http.MethodGet, "/api/jobs/99", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_ProjectsCatalog(t *testing.T) {
	r := newTestRouter(t, &fakeAPI{})

	w, _ := do(t, r, httptest.NewRequest(http.MethodGet, "/api/projects?tab=featured", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, httptest.NewRequest(http.MethodGet, "/api/projects?tab=bogus", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := do(t, r, httptest.NewRequest(http.MethodGet, "/api/projects/1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "fullDescriptionHtml")
}

func TestRouter_ContactFormJoinsFieldErrors(t *testing.T) {
	r := newTestRouter(t, &fakeAPI{})

	body := `{"name":"Jo","email":"jo@example.com","subject":"Hi","message":"Tell me more about your services."}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w, env := do(t, r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Name is too short. Subject is required.", env.Error.Message)
}

func TestRouter_JobApplicationForwardsCatalogFields(t *testing.T) {
	upstream := &fakeAPI{}
	r := newTestRouter(t, upstream)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("jobId", "1"))
	require.NoError(t, mw.WriteField("jobTitle", "Forged Title"))
	require.NoError(t, mw.WriteField("applicantName", "Jane Doe"))
	require.NoError(t, mw.WriteField("applicantEmail", "jane@example.com"))
	part, err := mw.CreateFormFile("resume", "cv.pdf")
	require.NoError(t, err)
	_, _ = part.Write([]byte("%PDF-1.4\n%test resume\n"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/applications/job", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w, _ := do(t, r, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	upstream.mu.Lock()
	defer upstream.mu.Unlock()
	assert.Equal(t, "Senior Frontend Developer", upstream.lastForm["jobTitle"])
	assert.Equal(t, "Engineering", upstream.lastForm["department"])
	assert.Equal(t, "cv.pdf", upstream.lastFileName)
}

func TestRouter_JobApplicationWithoutResume(t *testing.T) {
	r := newTestRouter(t, &fakeAPI{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("jobId", "1"))
	require.NoError(t, mw.WriteField("applicantName", "Jane Doe"))
	require.NoError(t, mw.WriteField("applicantEmail", "jane@example.com"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/applications/job", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w, env := do(t, r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please upload your resume", env.Error.Message)
}

func TestRouter_AdminRequiresToken(t *testing.T) {
	r := newTestRouter(t, &fakeAPI{})

	w, _ := do(t, r, httptest.NewRequest(http.MethodGet, "/api/admin/applications", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"username":"admin","password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	w, env := do(t, r, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid username or password", env.Error.Message)
}

func TestRouter_ConsoleStatusRefusal(t *testing.T) {
	upstream := &fakeAPI{statusReply: `{"success":false,"message":"X"}`}
	r := newTestRouter(t, upstream)
	token := login(t, r)

	w, env := do(t, r, authed(http.MethodGet, "/api/admin/applications?tab=job", token, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, string(env.Data), "Jane Doe")

	w, env = do(t, r, authed(http.MethodPatch, "/api/admin/applications/job/65f1c2a9e4b0a1b2c3d4e5f6/status", token, strings.NewReader(`{"status":"reviewed"}`)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res struct {
		Applied bool `json:"applied"`
		Toast   struct {
			Description string `json:"description"`
		} `json:"toast"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.False(t, res.Applied)
	assert.Equal(t, "X", res.Toast.Description)

	upstream.mu.Lock()
	assert.Equal(t, 2, upstream.listCalls)
	upstream.mu.Unlock()
}

func TestRouter_ConsoleStatusValidation(t *testing.T) {
	r := newTestRouter(t, &fakeAPI{})
	token := login(t, r)

	w, env := do(t, r, authed(http.MethodPatch, "/api/admin/applications/spontaneous/abc/status", token, strings.NewReader(`{"status":"shortlisted"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestRouter_DeleteDialogFlow(t *testing.T) {
	r := newTestRouter(t, &fakeAPI{})
	token := login(t, r)

	w, _ := do(t, r, authed(http.MethodPost, "/api/admin/applications/job/65f1c2a9e4b0a1b2c3d4e5f6/delete", token, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = do(t, r, authed(http.MethodDelete, "/api/admin/delete", token, nil))
	require.Equal(t, http.StatusOK, w.Code)

	w, env := do(t, r, authed(http.MethodPost, "/api/admin/delete/confirm", token, nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "no dialog is open", env.Error.Message)
}

func TestRouter_AuditWithoutDatabase(t *testing.T) {
	r := newTestRouter(t, &fakeAPI{})
	token := login(t, r)

	w, env := do(t, r, authed(http.MethodGet, "/api/admin/audit", token, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"enabled":false`)

	w, _ = do(t, r, authed(http.MethodGet, "/api/admin/audit/not-a-uuid", token, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, authed(http.MethodGet, "/api/admin/audit/5b6f1f0e-8c1d-4d4e-9a77-0a5f6b2c3d4e", token, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
