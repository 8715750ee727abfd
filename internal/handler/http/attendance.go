package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-sync/internal/handler/http/response"
)

type AttendanceHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Replace(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	collectionService attendance.CollectionService
}

func NewAttendanceHandler(collectionService attendance.CollectionService) AttendanceHandler {
	return &attendanceHandlerImpl{
		collectionService: collectionService,
	}
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFrom(w, r)
	if !ok {
		return
	}

	coll, err := h.collectionService.Get(r.Context(), companyID)
	if err != nil {
		slog.Error("Get attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, coll)
}

// Replace implements AttendanceHandler.
func (h *attendanceHandlerImpl) Replace(w http.ResponseWriter, r *http.Request) {
	var req attendance.ReplaceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Replace attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	companyID, ok := companyIDFrom(w, r)
	if !ok {
		return
	}

	coll, err := h.collectionService.Replace(r.Context(), companyID, req)
	if err != nil {
		slog.Warn("Replace attendance service error", "error", err, "revision", req.Revision)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance saved successfully", coll)
}
