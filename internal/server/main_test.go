package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"documo/internal/config"
	"documo/internal/database"
	"documo/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		JWTSecret:            "test-secret-test-secret-test-secret",
		Port:                 "0",
		Env:                  "test",
		AppBaseURL:           "http://localhost:5173",
		UploadDir:            t.TempDir(),
		DocumentTypeCacheTTL: time.Minute,
	}
}

// newTestApp builds a full Fiber app on a private in-memory database.
func newTestApp(t *testing.T) (*fiber.App, *Server, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	srv, err := NewServerWithDeps(testConfig(t), db, nil)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)
	return app, srv, db
}

// signupUser registers an organization and returns the access token.
func signupUser(t *testing.T, app *fiber.App, email, org string) string {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", map[string]any{
		"email":             email,
		"password":          "s3cretpass",
		"organization_name": org,
	}, "")
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// seedTypes inserts a passport and payslip type directly.
func seedTypes(t *testing.T, db *gorm.DB) (passport, payslip models.DocumentType) {
	t.Helper()
	passport = models.DocumentType{Name: "passport", Label: "Passport"}
	payslip = models.DocumentType{Name: "payslip", Label: "Payslip"}
	require.NoError(t, db.Create(&passport).Error)
	require.NoError(t, db.Create(&payslip).Error)
	return passport, payslip
}

// createFolderAndRequest drives the staff API to a request with a live
// share link, returning the folder ID, request ID and share token.
func createFolderAndRequest(t *testing.T, app *fiber.App, token string, typeIDs []uint) (uint, uint, string) {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/folders", map[string]any{
		"name":              "Tenant screening",
		"required_type_ids": typeIDs,
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var folder struct {
		ID uint `json:"id"`
	}
	decodeBody(t, resp, &folder)

	resp = doJSON(t, app, http.MethodPost, "/api/requests", map[string]any{
		"folder_id":       folder.ID,
		"recipient_email": "tenant@example.test",
		"type_ids":        typeIDs,
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Request struct {
			ID uint `json:"id"`
		} `json:"request"`
		ShareToken string `json:"share_token"`
	}
	decodeBody(t, resp, &created)
	require.NotEmpty(t, created.ShareToken)

	return folder.ID, created.Request.ID, created.ShareToken
}

// uploadViaShareLink posts a multipart document through the share endpoint.
func uploadViaShareLink(t *testing.T, app *fiber.App, shareToken string, typeID uint, fileName string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 test content"))
	require.NoError(t, err)
	require.NoError(t, w.WriteField("type_id", strconv.FormatUint(uint64(typeID), 10)))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/share/"+shareToken+"/documents", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func jsonID(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

// expireSession flips a session token's expiry into the past.
func expireSession(t *testing.T, db *gorm.DB, token string) {
	t.Helper()
	require.NoError(t, db.Model(&models.AuthToken{}).
		Where("token = ?", token).
		Update("expires_at", time.Now().UTC().Add(-time.Minute)).Error)
}
