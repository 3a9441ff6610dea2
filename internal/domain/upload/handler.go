package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"tigermarine/internal/domain/media"
	"tigermarine/internal/pkg/response"
)

// Handler exposes the media upload, listing and deletion endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type deleteRequest struct {
	FilePath string `json:"filePath"`
}

// UploadSingle godoc
// @Summary Upload one media file
// @Description Stores the file under the folder resolved from folder/modelName/partName/categoryName/subfolder.
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image or video"
// @Param folder formData string false "customizer | categories | images"
// @Success 200 {object} map[string]interface{}
// @Failure 400,500 {object} map[string]interface{}
// @Router /api/upload/single [post]
func (h *Handler) UploadSingle(c *gin.Context) {
	folder, raw, ok := bindContext(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "No file uploaded")
		return
	}

	stored, err := h.service.UploadSingle(c.Request.Context(), folder, raw, fileInput(fh))
	if err != nil {
		writeError(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusOK, "File uploaded successfully", stored)
}

// UploadMultiple godoc
// @Summary Upload several media files into one folder
// @Description All-or-nothing: if any file is rejected none are stored.
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Images or videos (max 20)"
// @Success 200 {object} map[string]interface{}
// @Failure 400,500 {object} map[string]interface{}
// @Router /api/upload/multiple [post]
func (h *Handler) UploadMultiple(c *gin.Context) {
	folder, raw, ok := bindContext(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "No files uploaded")
		return
	}

	headers := form.File["files"]
	inputs := make([]FileInput, 0, len(headers))
	for _, fh := range headers {
		inputs = append(inputs, fileInput(fh))
	}

	stored, err := h.service.Upload(c.Request.Context(), folder, raw, inputs)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("%d files uploaded successfully", len(stored)),
		"data":    stored,
	})
}

// List godoc
// @Summary List media files in a folder
// @Tags Upload
// @Produce json
// @Param folder query string false "customizer | categories | images"
// @Param modelName query string false "Model folder"
// @Param partName query string false "Customizer part"
// @Success 200 {object} map[string]interface{}
// @Router /api/upload/list [get]
func (h *Handler) List(c *gin.Context) {
	var raw media.RawContext
	if err := c.ShouldBindQuery(&raw); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	files, err := h.service.List(c.Request.Context(), c.Query("folder"), raw)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "files": files})
}

// Delete godoc
// @Summary Delete a media file
// @Tags Upload
// @Accept json
// @Produce json
// @Param body body deleteRequest true "Path relative to the media root"
// @Success 200 {object} map[string]interface{}
// @Failure 400,403,404,500 {object} map[string]interface{}
// @Router /api/upload/delete [delete]
func (h *Handler) Delete(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FilePath == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "File path is required")
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.FilePath); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "File deleted successfully"})
}

func bindContext(c *gin.Context) (string, media.RawContext, bool) {
	var raw media.RawContext
	if err := c.ShouldBind(&raw); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return "", raw, false
	}
	return c.PostForm("folder"), raw, true
}

func fileInput(fh *multipart.FileHeader) FileInput {
	return FileInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, media.ErrMissingContextField):
		return http.StatusBadRequest, "MISSING_CONTEXT_FIELD"
	case errors.Is(err, media.ErrUnknownFolderKind):
		return http.StatusBadRequest, "UNKNOWN_FOLDER_KIND"
	case errors.Is(err, ErrUnsupportedMediaType):
		return http.StatusBadRequest, "UNSUPPORTED_MEDIA_TYPE"
	case errors.Is(err, ErrPayloadTooLarge):
		return http.StatusBadRequest, "PAYLOAD_TOO_LARGE"
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, ErrPathTraversal):
		return http.StatusForbidden, "PATH_TRAVERSAL"
	default:
		return http.StatusInternalServerError, "UPLOAD_FAILED"
	}
}

func writeError(c *gin.Context, err error) {
	status, code := errorStatus(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		response.Error(c, status, code, "Upload failed")
		return
	}

	var batch *BatchError
	if errors.As(err, &batch) {
		details := make([]gin.H, 0, len(batch.Results))
		for _, r := range batch.Results {
			item := gin.H{"filename": r.Filename, "ok": r.Err == nil}
			if r.Err != nil {
				item["error"] = r.Err.Error()
			}
			details = append(details, item)
		}
		response.ErrorWithDetails(c, status, code, err.Error(), details)
		return
	}

	response.Error(c, status, code, err.Error())
}
