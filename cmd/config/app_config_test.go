package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	migration "Go-Recipe-Hub/cmd/database/migrate"
	"Go-Recipe-Hub/entities"
	"Go-Recipe-Hub/internal/testutil"
	"Go-Recipe-Hub/internal/utils/storage"
	"Go-Recipe-Hub/pkg/jwt"

	sqlite "github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memoryStore struct {
	seq int
}

func (m *memoryStore) UploadFile(_ context.Context, file *multipart.FileHeader, isVideo bool, folder string) (string, error) {
	mtype, err := storage.DetectMediaType(file)
	if err != nil {
		return "", err
	}
	if err := storage.CheckAllowed(mtype, isVideo); err != nil {
		return "", err
	}
	m.seq++
	return m.GetPublicLinkKey(fmt.Sprintf("%s/%d%s", folder, m.seq, mtype.Extension())), nil
}

func (m *memoryStore) IsVideoFile(file *multipart.FileHeader) (bool, error) {
	return storage.IsVideoContent(file)
}

func (m *memoryStore) DeleteFile(context.Context, string) error { return nil }

func (m *memoryStore) GetObjectKeyFromLink(link string) string {
	return strings.TrimPrefix(link, "https://cdn.test/")
}

func (m *memoryStore) GetPublicLinkKey(objectKey string) string {
	return "https://cdn.test/" + objectKey
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Errors  []string        `json:"errors"`
}

type apiFixture struct {
	app    *fiber.App
	owner  string
	other  string
	byMail string
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "api.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migration.Migrate(db, nil))

	owner := entities.User{Email: "owner@example.com", FullName: "Chủ"}
	other := entities.User{Email: "other@example.com", FullName: "Khách"}
	require.NoError(t, db.Create(&owner).Error)
	require.NoError(t, db.Create(&other).Error)

	jwtService := jwt.NewJWTService("test-secret")
	app := fiber.New()
	Register(app, Dependencies{DB: db, Storage: &memoryStore{}, JWT: jwtService})

	token := func(id uint, email string) string {
		tok, err := jwtService.GenerateTokenUser(id, email)
		require.NoError(t, err)
		return tok
	}
	return &apiFixture{
		app:    app,
		owner:  token(owner.ID, owner.Email),
		other:  token(other.ID, other.Email),
		byMail: token(0, other.Email),
	}
}

func (f *apiFixture) do(t *testing.T, req *http.Request, token string) (int, envelope) {
	t.Helper()
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	res, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	var body envelope
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	}
	return res.StatusCode, body
}

func recipeForm(t *testing.T, method, target string, fields map[string][]string, files map[string][]byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, values := range fields {
		for _, v := range values {
			require.NoError(t, writer.WriteField(key, v))
		}
	}
	for name, content := range files {
		field, filename, _ := strings.Cut(name, "=")
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, target, body)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	return req
}

func validFields() map[string][]string {
	return map[string][]string{
		"name":        {"Canh chua cá lóc"},
		"description": {"Món canh miền Tây"},
		"cook_time":   {"45"},
		"level":       {"trung bình"},
		"ingredients": {"Cá lóc", "Me", "Cà chua"},
		"types":       {"Món canh"},
		"steps":       {"Sơ chế cá", "Nấu nước me", "Cho cá vào nồi"},
	}
}

func TestRecipeAPI(t *testing.T) {
	f := newAPIFixture(t)

	status, _ := f.do(t, httptest.NewRequest(http.MethodGet, "/api/ping", nil), "")
	require.Equal(t, http.StatusOK, status)

	status, _ = f.do(t, recipeForm(t, http.MethodPost, "/api/v1/recipes", validFields(), nil), "")
	require.Equal(t, http.StatusUnauthorized, status)

	invalid := validFields()
	invalid["name"] = []string{" "}
	invalid["cook_time"] = []string{"abc"}
	status, body := f.do(t, recipeForm(t, http.MethodPost, "/api/v1/recipes", invalid, nil), f.owner)
	require.Equal(t, http.StatusUnprocessableEntity, status)
	require.Contains(t, body.Errors, "Tên món ăn không được để trống")
	require.Contains(t, body.Errors, "Thời gian nấu phải từ 1–1440 phút")

	status, body = f.do(t, recipeForm(t, http.MethodPost, "/api/v1/recipes", validFields(), map[string][]byte{
		"main_media=cover.png":   testutil.PNGBytes,
		"step_media_1=cut.png":   testutil.PNGBytes,
		"step_image_2=boil.jpg":  testutil.JPEGBytes,
		"step_media_3=final.mp4": testutil.MP4Bytes,
	}), f.owner)
	require.Equal(t, http.StatusCreated, status, body.Error)

	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &created))
	require.NotZero(t, created.ID)
	recipePath := fmt.Sprintf("/api/v1/recipes/%d", created.ID)

	status, body = f.do(t, httptest.NewRequest(http.MethodGet, recipePath, nil), "")
	require.Equal(t, http.StatusOK, status)
	var detail struct {
		Recipe struct {
			Level      string  `json:"level"`
			StepNumber int     `json:"step_number"`
			Thumbnail  *string `json:"thumbnail"`
		} `json:"recipe"`
		Ingredients []string `json:"ingredients"`
		Steps       []struct {
			Media []struct {
				IsVideo bool `json:"is_video"`
			} `json:"media"`
		} `json:"steps"`
		Viewer struct {
			IsOwner bool `json:"is_owner"`
		} `json:"viewer"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &detail))
	require.Equal(t, "Trung bình", detail.Recipe.Level)
	require.Equal(t, 3, detail.Recipe.StepNumber)
	require.NotNil(t, detail.Recipe.Thumbnail)
	require.Equal(t, []string{"Cá lóc", "Me", "Cà chua"}, detail.Ingredients)
	require.Len(t, detail.Steps, 3)
	require.Len(t, detail.Steps[1].Media, 1)
	require.True(t, detail.Steps[2].Media[0].IsVideo)
	require.False(t, detail.Viewer.IsOwner)

	status, _ = f.do(t, recipeForm(t, http.MethodPut, recipePath, validFields(), nil), f.other)
	require.Equal(t, http.StatusForbidden, status)

	edit := validFields()
	edit["name"] = []string{"Canh chua cá lóc miền Tây"}
	status, body = f.do(t, recipeForm(t, http.MethodPut, recipePath, edit, map[string][]byte{
		"thumbnail=cover.bmp": testutil.PNGBytes,
	}), f.owner)
	require.Equal(t, http.StatusUnprocessableEntity, status)
	require.Len(t, body.Errors, 1)

	status, _ = f.do(t, recipeForm(t, http.MethodPut, recipePath, edit, nil), f.owner)
	require.Equal(t, http.StatusOK, status)

	status, _ = f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/recipes/abc", nil), "")
	require.Equal(t, http.StatusBadRequest, status)
	status, _ = f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/recipes/999", nil), "")
	require.Equal(t, http.StatusNotFound, status)

	status, body = f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/recipes?page=1&limit=5", nil), "")
	require.Equal(t, http.StatusOK, status)
	var feed struct {
		Recipes []struct {
			Name string `json:"name"`
		} `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &feed))
	require.Len(t, feed.Recipes, 1)
	require.Equal(t, "Canh chua cá lóc miền Tây", feed.Recipes[0].Name)

	status, _ = f.do(t, httptest.NewRequest(http.MethodDelete, recipePath, nil), f.other)
	require.Equal(t, http.StatusForbidden, status)
	status, _ = f.do(t, httptest.NewRequest(http.MethodDelete, recipePath, nil), f.owner)
	require.Equal(t, http.StatusOK, status)
	status, _ = f.do(t, httptest.NewRequest(http.MethodGet, recipePath, nil), "")
	require.Equal(t, http.StatusNotFound, status)
}

func TestSocialAPI(t *testing.T) {
	f := newAPIFixture(t)

	status, body := f.do(t, recipeForm(t, http.MethodPost, "/api/v1/recipes", validFields(), nil), f.owner)
	require.Equal(t, http.StatusCreated, status, body.Error)
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &created))
	base := fmt.Sprintf("/api/v1/recipes/%d", created.ID)

	status, _ = f.do(t, httptest.NewRequest(http.MethodPost, base+"/like", nil), "")
	require.Equal(t, http.StatusUnauthorized, status)
	status, _ = f.do(t, httptest.NewRequest(http.MethodPost, base+"/like", nil), "not-a-token")
	require.Equal(t, http.StatusUnauthorized, status)

	// The email-only token resolves to the same user as the full one.
	status, body = f.do(t, httptest.NewRequest(http.MethodPost, base+"/like", nil), f.byMail)
	require.Equal(t, http.StatusOK, status, body.Error)
	require.JSONEq(t, `{"liked":true,"like_count":1}`, string(body.Data))
	status, body = f.do(t, httptest.NewRequest(http.MethodPost, base+"/like", nil), f.other)
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"liked":false,"like_count":0}`, string(body.Data))

	status, _ = f.do(t, httptest.NewRequest(http.MethodPost, base+"/save", nil), f.other)
	require.Equal(t, http.StatusOK, status)
	status, body = f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/notebook", nil), f.other)
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, string(body.Data), `"total":1`)

	comment := httptest.NewRequest(http.MethodPost, base+"/comments", strings.NewReader(`{"content":"Ngon"}`))
	comment.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	status, body = f.do(t, comment, f.other)
	require.Equal(t, http.StatusCreated, status, body.Error)
	var added struct {
		Comment struct {
			ID uint `json:"id"`
		} `json:"comment"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &added))

	commentPath := fmt.Sprintf("/api/v1/comments/%d", added.Comment.ID)
	status, _ = f.do(t, httptest.NewRequest(http.MethodDelete, commentPath, nil), f.owner)
	require.Equal(t, http.StatusForbidden, status)
	status, _ = f.do(t, httptest.NewRequest(http.MethodDelete, commentPath, nil), f.other)
	require.Equal(t, http.StatusOK, status)

	report := httptest.NewRequest(http.MethodPost, base+"/report", strings.NewReader(`{"reason":""}`))
	report.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	status, _ = f.do(t, report, f.other)
	require.Equal(t, http.StatusUnprocessableEntity, status)

	status, body = f.do(t, httptest.NewRequest(http.MethodPost, base+"/share", nil), f.other)
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"share_count":1}`, string(body.Data))

	status, _ = f.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/users/1/follow", nil), f.owner)
	require.Equal(t, http.StatusBadRequest, status)
	status, body = f.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/users/1/follow", nil), f.other)
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"following":true,"follower_count":1}`, string(body.Data))
}
