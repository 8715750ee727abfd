package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-sync/internal/handler/http/response"
)

type ReferenceHandler interface {
	Roster(w http.ResponseWriter, r *http.Request)
	Employees(w http.ResponseWriter, r *http.Request)
}

type referenceHandlerImpl struct {
	rosterService   schedule.RosterService
	employeeService employee.EmployeeService
}

func NewReferenceHandler(rosterService schedule.RosterService, employeeService employee.EmployeeService) ReferenceHandler {
	return &referenceHandlerImpl{
		rosterService:   rosterService,
		employeeService: employeeService,
	}
}

// Roster implements ReferenceHandler.
func (h *referenceHandlerImpl) Roster(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFrom(w, r)
	if !ok {
		return
	}

	roster, err := h.rosterService.Get(r.Context(), companyID)
	if err != nil {
		slog.Error("Get roster service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, roster)
}

// Employees implements ReferenceHandler.
func (h *referenceHandlerImpl) Employees(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFrom(w, r)
	if !ok {
		return
	}

	employees, err := h.employeeService.List(r.Context(), companyID)
	if err != nil {
		slog.Error("List employees service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}
