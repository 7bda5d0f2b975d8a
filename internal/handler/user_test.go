package handler

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/blogapi/blogapi/internal/handler/dto"
	"github.com/blogapi/blogapi/internal/metrics"
	"github.com/blogapi/blogapi/internal/model"
	"github.com/blogapi/blogapi/internal/testutil"
)

var errStoreDown = errors.New("connection refused")

func newUserHandler(store *testutil.MockStore) (*UserHandler, *metrics.InMemoryRecorder) {
	recorder := metrics.NewInMemory()
	return NewUserHandler(store, recorder, discardLogger()), recorder
}

func TestUserHandler_List(t *testing.T) {
	t.Run("returns all users", func(t *testing.T) {
		store := new(testutil.MockStore)
		h, _ := newUserHandler(store)
		users := []model.User{{ID: 1, Name: "ANN"}, {ID: 2, Name: "BOB"}}
		store.On("Users", mock.Anything).Return(users, nil)

		rec := serve(http.MethodGet, "/api/users", "/api/users", "", h.List)

		require.Equal(t, http.StatusOK, rec.Code)
		var got []model.User
		decodeBody(t, rec, &got)
		assert.Equal(t, users, got)
	})

	t.Run("empty store returns empty array", func(t *testing.T) {
		store := new(testutil.MockStore)
		h, _ := newUserHandler(store)
		store.On("Users", mock.Anything).Return(nil, nil)

		rec := serve(http.MethodGet, "/api/users", "/api/users", "", h.List)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		store := new(testutil.MockStore)
		h, recorder := newUserHandler(store)
		store.On("Users", mock.Anything).Return(nil, errStoreDown)

		rec := serve(http.MethodGet, "/api/users", "/api/users", "", h.List)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		var got dto.ErrorResponse
		decodeBody(t, rec, &got)
		assert.Equal(t, "The users information could not be retrieved.", got.Error)
		assert.Equal(t, uint64(1), recorder.Snapshot().StoreFailures["list_users"])
	})
}

func TestUserHandler_Posts(t *testing.T) {
	const pattern = "/api/users/{id}/posts"

	t.Run("returns posts of user", func(t *testing.T) {
		store := new(testutil.MockStore)
		h, _ := newUserHandler(store)
		posts := []model.UserPost{{ID: 3, Text: "hi", UserID: 7, PostedBy: "ANN"}}
		store.On("UserPosts", mock.Anything, int64(7)).Return(posts, nil)

		rec := serve(http.MethodGet, pattern, "/api/users/7/posts", "", h.Posts)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"id":3,"text":"hi","userId":7,"postedBy":"ANN"}]`, rec.Body.String())
	})

	t.Run("no posts is not found", func(t *testing.T) {
		store := new(testutil.MockStore)
		h, _ := newUserHandler(store)
		store.On("UserPosts", mock.Anything, int64(999)).Return([]model.UserPost{}, nil)

		rec := serve(http.MethodGet, pattern, "/api/users/999/posts", "", h.Posts)

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"message":"The user with the specified ID does not exist."}`, rec.Body.String())
	})

	t.Run("invalid id is not found without store call", func(t *testing.T) {
		store := new(testutil.MockStore)
		h, _ := newUserHandler(store)

		rec := serve(http.MethodGet, pattern, "/api/users/abc/posts", "", h.Posts)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		store.AssertNotCalled(t, "UserPosts", mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		store := new(testutil.MockStore)
		h, _ := newUserHandler(store)
		store.On("UserPosts", mock.Anything, int64(7)).Return(nil, errStoreDown)

		rec := serve(http.MethodGet, pattern, "/api/users/7/posts", "", h.Posts)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"The user information could not be retrieved."}`, rec.Body.String())
	})
}

func TestUserHandler_Create(t *testing.T) {
	const pattern = "/api/users"

	t.Run("stores upper-cased name", func(t *testing.T) {
		store := new(testutil.MockStore)
		h, recorder := newUserHandler(store)
		store.On("InsertUser", mock.Anything, model.User{Name: "ANN"}).
			Return(&model.User{ID: 1, Name: "ANN"}, nil)

		rec := serve(http.MethodPost, pattern, pattern, `{"name":"ann"}`, h.Create)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"user":{"id":1,"name":"ANN"},"message":"User was added successfully!"}`, rec.Body.String())
		store.AssertExpectations(t)
		assert.Equal(t, uint64(1), recorder.Snapshot().UsersCreated)
	})

	t.Run("name of exactly 128 characters is accepted", func(t *testing.T) {
		store := new(testutil.MockStore)
		h, _ := newUserHandler(store)
		name := strings.Repeat("a", dto.MaxNameLength)
		store.On("InsertUser", mock.Anything, model.User{Name: strings.ToUpper(name)}).
			Return(&model.User{ID: 2, Name: strings.ToUpper(name)}, nil)

		rec := serve(http.MethodPost, pattern, pattern, `{"name":"`+name+`"}`, h.Create)

		assert.Equal(t, http.StatusCreated, rec.Code)
		store.AssertExpectations(t)
	})

	t.Run("name over 128 characters is rejected without insert", func(t *testing.T) {
		store := new(testutil.MockStore)
		h, _ := newUserHandler(store)
		name := strings.Repeat("a", dto.MaxNameLength+1)

		rec := serve(http.MethodPost, pattern, pattern, `{"name":"`+name+`"}`, h.Create)

		require.Equal(t, http.StatusLengthRequired, rec.Code)
		assert.JSONEq(t, `{"message":"The username must be under 129 characters."}`, rec.Body.String())
		store.AssertNotCalled(t, "InsertUser", mock.Anything, mock.Anything)
	})

	t.Run("name is upper-cased with full case mapping", func(t *testing.T) {
		store := new(testutil.MockStore)
		h, _ := newUserHandler(store)
		store.On("InsertUser", mock.Anything, model.User{Name: "STRASSE"}).
			Return(&model.User{ID: 3, Name: "STRASSE"}, nil)

		rec := serve(http.MethodPost, pattern, pattern, `{"name":"straße"}`, h.Create)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"user":{"id":3,"name":"STRASSE"},"message":"User was added successfully!"}`, rec.Body.String())
		store.AssertExpectations(t)
	})

	for _, tc := range []struct {
		name  string
		input string
	}{
		{"sharp s expanding past the limit", strings.Repeat("ß", 100)},
		{"astral runes past the limit", strings.Repeat("😀", 100)},
	} {
		t.Run(tc.name+" is rejected without insert", func(t *testing.T) {
			store := new(testutil.MockStore)
			h, _ := newUserHandler(store)

			rec := serve(http.MethodPost, pattern, pattern, `{"name":"`+tc.input+`"}`, h.Create)

			require.Equal(t, http.StatusLengthRequired, rec.Code)
			assert.JSONEq(t, `{"message":"The username must be under 129 characters."}`, rec.Body.String())
			store.AssertNotCalled(t, "InsertUser", mock.Anything, mock.Anything)
		})
	}

	t.Run("missing name is a server error without insert", func(t *testing.T) {
		store := new(testutil.MockStore)
		h, _ := newUserHandler(store)

		rec := serve(http.MethodPost, pattern, pattern, `{}`, h.Create)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"There was an error while saving the user to the database."}`, rec.Body.String())
		store.AssertNotCalled(t, "InsertUser", mock.Anything, mock.Anything)
	})

	t.Run("trailing data is a bad request without insert", func(t *testing.T) {
		store := new(testutil.MockStore)
		h, _ := newUserHandler(store)

		rec := serve(http.MethodPost, pattern, pattern, `{"name":"ann"} not json`, h.Create)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid request body"}`, rec.Body.String())
		store.AssertNotCalled(t, "InsertUser", mock.Anything, mock.Anything)
	})

	t.Run("non-JSON content type is treated as a missing name", func(t *testing.T) {
		store := new(testutil.MockStore)
		h, _ := newUserHandler(store)

		rec := serveAs("text/plain", http.MethodPost, pattern, pattern, `{"name":"ann"}`, h.Create)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"There was an error while saving the user to the database."}`, rec.Body.String())
		store.AssertNotCalled(t, "InsertUser", mock.Anything, mock.Anything)
	})

	t.Run("non-string name is a bad request", func(t *testing.T) {
		store := new(testutil.MockStore)
		h, _ := newUserHandler(store)

		rec := serve(http.MethodPost, pattern, pattern, `{"name":42}`, h.Create)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid request body"}`, rec.Body.String())
		store.AssertNotCalled(t, "InsertUser", mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		store := new(testutil.MockStore)
		h, recorder := newUserHandler(store)
		store.On("InsertUser", mock.Anything, mock.Anything).Return(nil, errStoreDown)

		rec := serve(http.MethodPost, pattern, pattern, `{"name":"ann"}`, h.Create)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"There was an error while saving the user to the database."}`, rec.Body.String())
		assert.Zero(t, recorder.Snapshot().UsersCreated)
	})
}

func TestUserHandler_Update(t *testing.T) {
	const pattern = "/api/users/{id}"

	t.Run("updates with upper-cased name", func(t *testing.T) {
		store := new(testutil.MockStore)
		h, _ := newUserHandler(store)
		store.On("UpdateUser", mock.Anything, int64(4), model.User{Name: "BOB"}).
			Return([]model.User{{ID: 4, Name: "BOB"}}, nil)

		rec := serve(http.MethodPut, pattern, "/api/users/4", `{"name":"bob"}`, h.Update)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"user":[{"id":4,"name":"BOB"}],"message":"The user was successfully updated!"}`, rec.Body.String())
		store.AssertExpectations(t)
	})

	t.Run("long name is not length checked", func(t *testing.T) {
		store := new(testutil.MockStore)
		h, _ := newUserHandler(store)
		name := strings.Repeat("B", dto.MaxNameLength+10)
		store.On("UpdateUser", mock.Anything, int64(4), model.User{Name: name}).
			Return(nil, errStoreDown)

		rec := serve(http.MethodPut, pattern, "/api/users/4", `{"name":"`+name+`"}`, h.Update)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		store.AssertExpectations(t)
	})

	t.Run("nonexistent id", func(t *testing.T) {
		store := new(testutil.MockStore)
		h, _ := newUserHandler(store)
		store.On("UpdateUser", mock.Anything, int64(404), mock.Anything).Return([]model.User{}, nil)

		rec := serve(http.MethodPut, pattern, "/api/users/404", `{"name":"bob"}`, h.Update)

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"message":"The user with the specified ID does not exist."}`, rec.Body.String())
	})

	t.Run("missing name", func(t *testing.T) {
		store := new(testutil.MockStore)
		h, _ := newUserHandler(store)

		rec := serve(http.MethodPut, pattern, "/api/users/4", `{"nickname":"bob"}`, h.Update)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"The user information could not be modified."}`, rec.Body.String())
		store.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		store := new(testutil.MockStore)
		h, _ := newUserHandler(store)
		store.On("UpdateUser", mock.Anything, int64(4), mock.Anything).Return(nil, errStoreDown)

		rec := serve(http.MethodPut, pattern, "/api/users/4", `{"name":"bob"}`, h.Update)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"The user information could not be modified."}`, rec.Body.String())
	})
}

func TestUserHandler_Delete(t *testing.T) {
	const pattern = "/api/users/{id}"

	t.Run("deletes user", func(t *testing.T) {
		store := new(testutil.MockStore)
		h, recorder := newUserHandler(store)
		store.On("RemoveUser", mock.Anything, int64(5)).Return([]model.User{{ID: 5, Name: "ANN"}}, nil)

		rec := serve(http.MethodDelete, pattern, "/api/users/5", "", h.Delete)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"user":[{"id":5,"name":"ANN"}],"message":"The user was deleted successfully!"}`, rec.Body.String())
		assert.Equal(t, uint64(1), recorder.Snapshot().UsersDeleted)
	})

	t.Run("repeated delete is not found both times", func(t *testing.T) {
		store := new(testutil.MockStore)
		h, _ := newUserHandler(store)
		store.On("RemoveUser", mock.Anything, int64(5)).Return([]model.User{}, nil).Twice()

		for i := 0; i < 2; i++ {
			rec := serve(http.MethodDelete, pattern, "/api/users/5", "", h.Delete)
			assert.Equal(t, http.StatusNotFound, rec.Code)
		}
		store.AssertNumberOfCalls(t, "RemoveUser", 2)
	})

	t.Run("store failure", func(t *testing.T) {
		store := new(testutil.MockStore)
		h, _ := newUserHandler(store)
		store.On("RemoveUser", mock.Anything, int64(5)).Return(nil, errStoreDown)

		rec := serve(http.MethodDelete, pattern, "/api/users/5", "", h.Delete)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"The user could not be removed."}`, rec.Body.String())
	})
}
