package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"studyshare/backend/api/route"
	"studyshare/backend/common"
	"studyshare/backend/model"
	"studyshare/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var userSeq atomic.Int64

// setupTestServer wires the real API router against a fresh in-memory
// database and a temp upload directory.
func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Resource{}, &model.Review{}, &model.Bookmark{}))

	oldDB := model.DB
	oldUpload := common.UploadPath
	oldRedis := common.RedisEnabled
	model.DB = db
	common.UploadPath = t.TempDir()
	common.RedisEnabled = false
	common.JWTSecret = "handler-test-jwt-secret"
	common.SessionSecret = "handler-test-session-secret"
	t.Cleanup(func() {
		model.DB = oldDB
		common.UploadPath = oldUpload
		common.RedisEnabled = oldRedis
		_ = sqlDB.Close()
	})

	router := gin.New()
	router.Use(sessions.Sessions("session", cookie.NewStore([]byte(common.SessionSecret))))
	route.SetApiRouter(router)
	return router
}

// createUserWithToken seeds a user directly and issues a Bearer token, so
// tests that are not about the login flow skip the credential endpoints.
func createUserWithToken(t *testing.T, name, college string) (*model.User, string) {
	t.Helper()
	n := userSeq.Add(1)
	user := &model.User{
		Name:     name,
		Email:    fmt.Sprintf("%s%d@example.edu", name, n),
		Password: "password123",
		College:  college,
		Branch:   "CSE",
		Semester: "5",
	}
	require.NoError(t, user.Insert())
	token, err := service.GenerateToken(user)
	require.NoError(t, err)
	return user, token
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

// envelope mirrors common.APIResponse with raw data for per-test decoding.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// uploadFile posts a multipart resource upload and returns the recorder.
func uploadFile(t *testing.T, router *gin.Engine, token, title, privacy, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	fields := map[string]string{
		"title":         title,
		"subject":       "Data Structures",
		"semester":      "5",
		"resource_type": "notes",
		"year_batch":    "2024",
		"privacy":       privacy,
	}
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/resources", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// mustUpload uploads and returns the created resource.
func mustUpload(t *testing.T, router *gin.Engine, token, title, privacy string) *model.Resource {
	t.Helper()
	w := uploadFile(t, router, token, title, privacy, title+".pdf", []byte("%PDF-1.4 test content"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decodeEnvelope(t, w)
	require.True(t, env.Success)
	var resource model.Resource
	require.NoError(t, json.Unmarshal(env.Data, &resource))
	// Filename is not serialized; load the row for tests that need it.
	stored, err := model.GetResourceByID(resource.ID)
	require.NoError(t, err)
	return stored
}
