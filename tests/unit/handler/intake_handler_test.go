package handler_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"aansluitintake/internal/domain"
	"aansluitintake/internal/handler"
	"aansluitintake/internal/middleware"
	"aansluitintake/internal/service"
	"aansluitintake/mocks"
)

func multipartRequest(t *testing.T, target, fileName string, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req, _ := http.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestIntakeHandler_UploadFile_Success(t *testing.T) {
	mockIntake := new(mocks.MockIntakeService)
	h := handler.NewIntakeHandler(mockIntake)

	userID := uuid.New()
	job := &domain.IntakeJob{
		ID:       uuid.New(),
		FileName: "factuur.pdf",
		FileType: domain.FileTypePDF,
		Status:   domain.JobStatusQueued,
	}
	mockIntake.On("UploadFile", mock.Anything, mock.AnythingOfType("service.FileIntakeInput")).
		Return(job, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/api/v1/intake/files", "factuur.pdf", []byte("%PDF-1.4 inhoud"), map[string]string{
		"allow_multiple": "true",
		"provider":       "openai",
	})
	c.Set(middleware.ContextKeyUserID, userID)

	h.UploadFile(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "factuur.pdf", data["file_name"])

	for _, call := range mockIntake.Calls {
		if call.Method == "UploadFile" {
			input := call.Arguments.Get(1).(service.FileIntakeInput)
			assert.True(t, input.AllowMultiple)
			assert.Equal(t, "openai", input.Provider)
			assert.Equal(t, userID, input.CreatedBy)
		}
	}
}

func TestIntakeHandler_UploadFile_MissingUserContext(t *testing.T) {
	mockIntake := new(mocks.MockIntakeService)
	h := handler.NewIntakeHandler(mockIntake)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/api/v1/intake/files", "factuur.pdf", []byte("%PDF"), nil)

	h.UploadFile(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockIntake.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything)
}

func TestIntakeHandler_UploadFile_MissingFile(t *testing.T) {
	mockIntake := new(mocks.MockIntakeService)
	h := handler.NewIntakeHandler(mockIntake)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/intake/files", gin.H{})
	c.Set(middleware.ContextKeyUserID, uuid.New())

	h.UploadFile(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "MISSING_FILE", resp.Error.Code)
}

func TestIntakeHandler_UploadFile_UnsupportedType(t *testing.T) {
	mockIntake := new(mocks.MockIntakeService)
	h := handler.NewIntakeHandler(mockIntake)

	mockIntake.On("UploadFile", mock.Anything, mock.AnythingOfType("service.FileIntakeInput")).
		Return(nil, domain.ErrUnsupportedFileType)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/api/v1/intake/files", "notities.txt", []byte("tekst"), nil)
	c.Set(middleware.ContextKeyUserID, uuid.New())

	h.UploadFile(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", resp.Error.Code)
}

func TestIntakeHandler_UploadFile_TooLarge(t *testing.T) {
	mockIntake := new(mocks.MockIntakeService)
	h := handler.NewIntakeHandler(mockIntake)

	mockIntake.On("UploadFile", mock.Anything, mock.AnythingOfType("service.FileIntakeInput")).
		Return(nil, domain.ErrFileTooLarge)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/api/v1/intake/files", "groot.pdf", []byte("%PDF"), nil)
	c.Set(middleware.ContextKeyUserID, uuid.New())

	h.UploadFile(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestIntakeHandler_Text_Success(t *testing.T) {
	mockIntake := new(mocks.MockIntakeService)
	h := handler.NewIntakeHandler(mockIntake)

	conns := []domain.Connection{
		{ID: uuid.New(), EANCode: "871685900012345678", Source: domain.SourceManual},
	}
	mockIntake.On("IntakeText", mock.Anything, mock.AnythingOfType("service.TextIntakeInput")).
		Return(conns, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/intake/text", gin.H{
		"text":           "EAN: 871685900012345678",
		"allow_multiple": false,
	})

	h.Text(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(1), data["count"])
	mockIntake.AssertExpectations(t)
}

func TestIntakeHandler_Text_EmptyBody(t *testing.T) {
	mockIntake := new(mocks.MockIntakeService)
	h := handler.NewIntakeHandler(mockIntake)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/intake/text", gin.H{})

	h.Text(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockIntake.AssertNotCalled(t, "IntakeText", mock.Anything, mock.Anything)
}

func TestIntakeHandler_GetJob_Success(t *testing.T) {
	mockIntake := new(mocks.MockIntakeService)
	h := handler.NewIntakeHandler(mockIntake)

	jobID := uuid.New()
	confidence := 91.5
	mockIntake.On("GetJob", mock.Anything, jobID).Return(&domain.IntakeJob{
		ID:            jobID,
		Status:        domain.JobStatusCompleted,
		OCRConfidence: &confidence,
		RecordCount:   3,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/intake/jobs/"+jobID.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: jobID.String()}}

	h.GetJob(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "completed", data["status"])
	assert.Equal(t, 91.5, data["ocr_confidence"])
}

func TestIntakeHandler_GetJob_InvalidID(t *testing.T) {
	mockIntake := new(mocks.MockIntakeService)
	h := handler.NewIntakeHandler(mockIntake)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/intake/jobs/abc", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.GetJob(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockIntake.AssertNotCalled(t, "GetJob", mock.Anything, mock.Anything)
}

func TestIntakeHandler_ListJobs_Success(t *testing.T) {
	mockIntake := new(mocks.MockIntakeService)
	h := handler.NewIntakeHandler(mockIntake)

	jobs := []domain.IntakeJob{
		{ID: uuid.New(), Status: domain.JobStatusQueued},
		{ID: uuid.New(), Status: domain.JobStatusProcessing},
	}
	mockIntake.On("ListJobs", mock.Anything, 0, 20).Return(jobs, 2, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/intake/jobs", http.NoBody)

	h.ListJobs(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Total)
}

func TestIntakeHandler_Stop_Success(t *testing.T) {
	mockIntake := new(mocks.MockIntakeService)
	h := handler.NewIntakeHandler(mockIntake)

	mockIntake.On("StopQueued", mock.Anything).Return(int64(4), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/intake/stop", http.NoBody)

	h.Stop(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(4), data["skipped"])
	mockIntake.AssertExpectations(t)
}
