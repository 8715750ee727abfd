package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/company"
	"github.com/cmlabs-hris/attendance-sync/internal/handler/http/response"
)

type ConfigHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type ConfigHandlerImpl struct {
	configService company.ConfigService
}

func NewConfigHandler(configService company.ConfigService) ConfigHandler {
	return &ConfigHandlerImpl{
		configService: configService,
	}
}

// Get implements ConfigHandler.
func (c *ConfigHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFrom(w, r)
	if !ok {
		return
	}

	cfg, err := c.configService.Get(r.Context(), companyID)
	if err != nil {
		slog.Error("Get config service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, cfg)
}

// Update implements ConfigHandler.
func (c *ConfigHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq company.UpdateSystemConfigRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update config decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate DTO
	if err := updateReq.Validate(); err != nil {
		slog.Error("Update config validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	companyID, ok := companyIDFrom(w, r)
	if !ok {
		return
	}

	// Call service
	cfg, err := c.configService.Update(r.Context(), companyID, updateReq)
	if err != nil {
		slog.Error("Config update service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Update config successfully", "company_id", companyID)
	response.SuccessWithMessage(w, "Config updated successfully", cfg)
}
