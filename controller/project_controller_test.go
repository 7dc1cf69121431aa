// controller/project_controller_test.go
package controller_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sprintdeck/api/controller"
	sd_errors "github.com/sprintdeck/api/errors"
	logger "github.com/sprintdeck/api/logging"
	"github.com/sprintdeck/api/model"
	sd_mock "github.com/sprintdeck/api/test/mock"
)

func TestProjectController(t *testing.T) {
	logger.InitLogger()
	defer logger.Sync()

	mockService := new(sd_mock.MockProjectService)
	projectController := controller.NewProjectController(mockService)
	router := setupRouter()
	api := router.Group("/")
	projectController.RegisterRoutes(api)

	t.Run("GetProject_Success", func(t *testing.T) {
		mockService.On("GetProject", mock.Anything, "actor-1", "proj-1").
			Return(&model.Project{ID: "proj-1", Name: "Apollo"}, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/projects/proj-1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("DeleteProject_Forbidden", func(t *testing.T) {
		mockService.On("DeleteProject", mock.Anything, "actor-1", "proj-1").
			Return(sd_errors.ErrForbidden).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/projects/proj-1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("CreateTask_Success", func(t *testing.T) {
		mockService.On("CreateTask", mock.Anything, "actor-1", mock.Anything).
			Return("task-1", nil).Once()

		body := strings.NewReader(`{"title":"Wire login"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/projects/proj-1/tasks", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("ListTasks_Success", func(t *testing.T) {
		mockService.On("ListTasks", mock.Anything, "actor-1", "proj-1").
			Return([]*model.Task{{ID: "task-1", ProjectID: "proj-1", Title: "Wire login"}}, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/projects/proj-1/tasks", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("LogWork_UnknownTask", func(t *testing.T) {
		mockService.On("LogWork", mock.Anything, "actor-1", mock.Anything).
			Return("", sd_errors.ErrTaskNotFound).Once()

		body := strings.NewReader(`{"minutes":30}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/tasks/task-missing/worklogs", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("LogWork_Success", func(t *testing.T) {
		mockService.On("LogWork", mock.Anything, "actor-1", mock.Anything).
			Return("worklog-1", nil).Once()

		body := strings.NewReader(`{"minutes":90,"note":"review"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/tasks/task-1/worklogs", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("ListWorklogs_Success", func(t *testing.T) {
		mockService.On("ListWorklogs", mock.Anything, "actor-1", "task-1").
			Return([]*model.Worklog{{ID: "worklog-1", TaskID: "task-1", MemberID: "actor-1", Minutes: 90}}, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/tasks/task-1/worklogs", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("AssignMember_MissingMemberID", func(t *testing.T) {
		body := strings.NewReader(`{}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/projects/proj-1/assignees", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
