// controller/member_controller_test.go
package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sprintdeck/api/authz"
	"github.com/sprintdeck/api/controller"
	sd_errors "github.com/sprintdeck/api/errors"
	logger "github.com/sprintdeck/api/logging"
	"github.com/sprintdeck/api/model"
	sd_mock "github.com/sprintdeck/api/test/mock"
)

func TestMemberController(t *testing.T) {
	logger.InitLogger()
	defer logger.Sync()

	mockService := new(sd_mock.MockMemberService)
	memberController := controller.NewMemberController(mockService)
	router := setupRouter()
	api := router.Group("/")
	memberController.RegisterRoutes(api)

	t.Run("GetMember_Success", func(t *testing.T) {
		mockService.On("GetMemberProfile", mock.Anything, "actor-1", "member-2").
			Return(map[string]any{"id": "member-2", "name": "Carl"}, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/members/member-2", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var profile map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
		assert.Equal(t, "Carl", profile["name"])
		assert.NotContains(t, profile, "phone")
		mockService.AssertExpectations(t)
	})

	t.Run("GetMember_Forbidden", func(t *testing.T) {
		mockService.On("GetMemberProfile", mock.Anything, "actor-1", "member-2").
			Return(nil, sd_errors.ErrForbidden).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/members/member-2", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("SearchMembers_Success", func(t *testing.T) {
		mockService.On("SearchMemberProfiles", mock.Anything, "actor-1", mock.Anything).
			Return([]map[string]any{{"id": "member-2", "name": "Carl"}}, nil).Once()

		body := strings.NewReader(`{"role":"member"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/members/search", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var profiles []map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &profiles))
		assert.Len(t, profiles, 1)
		mockService.AssertExpectations(t)
	})

	t.Run("SearchMembers_Forbidden", func(t *testing.T) {
		mockService.On("SearchMemberProfiles", mock.Anything, "actor-1", mock.Anything).
			Return(nil, sd_errors.ErrForbidden).Once()

		body := strings.NewReader(`{}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/members/search", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("ChangeRole_Success", func(t *testing.T) {
		mockService.On("ChangeRole", mock.Anything, "actor-1", "member-2", authz.RoleAdmin).
			Return(&model.OrganizationMember{ID: "member-2", Role: authz.RoleAdmin}, nil).Once()

		body := strings.NewReader(`{"role":"admin"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/members/member-2/role", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("ChangeRole_InvalidRole", func(t *testing.T) {
		body := strings.NewReader(`{"role":"superuser"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/members/member-2/role", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("RemoveMember_NotFound", func(t *testing.T) {
		mockService.On("RemoveMember", mock.Anything, "actor-1", "ghost").
			Return(sd_errors.ErrMemberNotFound).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/members/ghost", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockService.AssertExpectations(t)
	})
}
