package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/mratin/sparkfeed/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.KarmaTransaction{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, Password: "irrelevant"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func claimsFor(user models.User) *models.JwtCustomClaims {
	return &models.JwtCustomClaims{UserID: user.ID, Username: user.Username}
}

// multipartBody builds a multipart form with optional text fields and one
// optional file part.
func multipartBody(t *testing.T, fields map[string]string, fileField, fileName string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileField != "" {
		fw, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = fw.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

// fakeObjectStore records calls instead of talking to a bucket.
type fakeObjectStore struct {
	stored  [][]byte
	deleted []string
	url     string
	err     error
}

func (f *fakeObjectStore) Store(_ context.Context, r io.Reader, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.stored = append(f.stored, data)
	return f.url, nil
}

func (f *fakeObjectStore) Delete(_ context.Context, url string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, url)
	return nil
}

func httpErrorCode(t *testing.T, err error) int {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %v", err)
	return httpErr.Code
}
