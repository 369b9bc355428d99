package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mratin/sparkfeed/backend/internal/models"
	"github.com/mratin/sparkfeed/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostRequiresContentOrImage(t *testing.T) {
	db := newTestDB(t)
	h := NewPostHandler(repositories.NewPostgresPostRepository(db), nil)
	user := createTestUser(t, db, "poster")

	body, contentType := multipartBody(t, nil, "", "", nil)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", claimsFor(user))

	err := h.CreatePost(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErrorCode(t, err))
}

func TestCreatePostContentOnly(t *testing.T) {
	db := newTestDB(t)
	h := NewPostHandler(repositories.NewPostgresPostRepository(db), nil)
	user := createTestUser(t, db, "poster")

	body, contentType := multipartBody(t, map[string]string{"content": "first post"}, "", "", nil)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", claimsFor(user))

	require.NoError(t, h.CreatePost(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var post models.AnnotatedPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))
	assert.Equal(t, "first post", post.Content)
	assert.Equal(t, "poster", post.User)
	assert.Nil(t, post.Image)
	assert.EqualValues(t, 0, post.LikeCount)
	assert.EqualValues(t, 0, post.CommentCount)
}

func TestCreatePostWithImage(t *testing.T) {
	db := newTestDB(t)
	store := &fakeObjectStore{url: "https://cdn.example.com/posts/abc"}
	h := NewPostHandler(repositories.NewPostgresPostRepository(db), store)
	user := createTestUser(t, db, "poster")

	body, contentType := multipartBody(t, nil, "image", "pic.png", []byte("pngbytes"))
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", claimsFor(user))

	require.NoError(t, h.CreatePost(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var post models.AnnotatedPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))
	require.NotNil(t, post.Image)
	assert.Equal(t, store.url, *post.Image)
	require.Len(t, store.stored, 1)
	assert.Equal(t, []byte("pngbytes"), store.stored[0])
}

func TestListPostsNewestFirstWithLimit(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewPostgresPostRepository(db)
	h := NewPostHandler(repo, nil)
	user := createTestUser(t, db, "poster")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, content := range []string{"oldest", "middle", "newest"} {
		post := models.Post{UserID: user.ID, Content: content, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, db.Create(&post).Error)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts?limit=2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListPosts(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var posts []models.AnnotatedPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	require.Len(t, posts, 2)
	assert.Equal(t, "newest", posts[0].Content)
	assert.Equal(t, "middle", posts[1].Content)
}

func TestListPostsCountsRootCommentsOnly(t *testing.T) {
	db := newTestDB(t)
	h := NewPostHandler(repositories.NewPostgresPostRepository(db), nil)
	user := createTestUser(t, db, "poster")

	post := models.Post{UserID: user.ID, Content: "hello"}
	require.NoError(t, db.Create(&post).Error)

	root := models.Comment{PostID: post.ID, AuthorID: user.ID, Content: "root"}
	require.NoError(t, db.Create(&root).Error)
	reply := models.Comment{PostID: post.ID, AuthorID: user.ID, ParentID: &root.ID, Content: "reply"}
	require.NoError(t, db.Create(&reply).Error)
	require.NoError(t, db.Create(&models.Like{UserID: user.ID, PostID: &post.ID}).Error)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListPosts(c))

	var posts []models.AnnotatedPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	require.Len(t, posts, 1)
	assert.EqualValues(t, 1, posts[0].CommentCount)
	assert.EqualValues(t, 1, posts[0].LikeCount)
}

func TestDeletePostImageOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	store := &fakeObjectStore{}
	h := NewPostHandler(repositories.NewPostgresPostRepository(db), store)
	owner := createTestUser(t, db, "owner")
	other := createTestUser(t, db, "other")

	imageURL := "https://cdn.example.com/posts/abc"
	post := models.Post{UserID: owner.ID, Content: "hello", ImageURL: &imageURL}
	require.NoError(t, db.Create(&post).Error)

	e := echo.New()
	newCtx := func(user models.User) echo.Context {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/posts/1/image", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("post_id")
		c.SetParamValues("1")
		c.Set("user", claimsFor(user))
		return c
	}

	err := h.DeletePostImage(newCtx(other))
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, httpErrorCode(t, err))
	assert.Empty(t, store.deleted)

	c := newCtx(owner)
	require.NoError(t, h.DeletePostImage(c))
	assert.Equal(t, http.StatusNoContent, c.Response().Status)
	assert.Equal(t, []string{imageURL}, store.deleted)

	var reloaded models.Post
	require.NoError(t, db.First(&reloaded, post.ID).Error)
	assert.Nil(t, reloaded.ImageURL)
}

func TestDeletePostImageNotFound(t *testing.T) {
	db := newTestDB(t)
	h := NewPostHandler(repositories.NewPostgresPostRepository(db), nil)
	user := createTestUser(t, db, "owner")

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/posts/42/image", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("post_id")
	c.SetParamValues("42")
	c.Set("user", claimsFor(user))

	err := h.DeletePostImage(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpErrorCode(t, err))
}
