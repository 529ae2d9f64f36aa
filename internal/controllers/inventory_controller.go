package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v4"

	"github.com/boxyard/inventory-service/internal/dtos"
	"github.com/boxyard/inventory-service/internal/services"
	"github.com/boxyard/inventory-service/internal/utils"
)

type InventoryController struct {
	inventoryService *services.InventoryService
}

func NewInventoryController(is *services.InventoryService) *InventoryController {
	return &InventoryController{inventoryService: is}
}

var inventoryValidate = validator.New()

// ----------------------------------------------------------------
// POST /api/v1/depots
// ----------------------------------------------------------------
func (c *InventoryController) CreateDepotHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dtos.CreateDepotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := inventoryValidate.StructCtx(ctx, req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", validationErrors.Error(), nil)
		} else {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request data", nil, err)
		}
		return
	}

	depotID, err := c.inventoryService.CreateDepot(ctx, req)
	if err != nil {
		if errors.Is(err, utils.ErrDuplicateDepotName) {
			utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeDuplicateDepotName, "A depot with this name already exists", nil, err)
			return
		}
		utils.Logger.WithError(err).Error("CreateDepot error")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Could not create depot", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.CreateDepotResponse{DepotID: depotID})
}

// ----------------------------------------------------------------
// GET /api/v1/depots
// ----------------------------------------------------------------
func (c *InventoryController) ListDepotsHandler(w http.ResponseWriter, r *http.Request) {
	depots, err := c.inventoryService.ListDepots(r.Context())
	if err != nil {
		utils.Logger.WithError(err).Error("ListDepots error")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Could not list depots", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, depots)
}

// ----------------------------------------------------------------
// GET /api/v1/depots/{id}
// ----------------------------------------------------------------
func (c *InventoryController) GetDepotHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid depot id", nil, err)
		return
	}
	depot, err := c.inventoryService.GetDepot(r.Context(), id)
	if err != nil {
		utils.Logger.WithError(err).Error("GetDepot error")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Could not fetch depot", nil, err)
		return
	}
	if depot == nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Depot not found", nil, nil)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, depot)
}

// ----------------------------------------------------------------
// POST /api/v1/units
// ----------------------------------------------------------------
func (c *InventoryController) CreateUnitHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dtos.CreateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := inventoryValidate.StructCtx(ctx, req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", validationErrors.Error(), nil)
		} else {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request data", nil, err)
		}
		return
	}

	unitID, err := c.inventoryService.CreateUnit(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrDuplicateSKU):
			utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeDuplicateSKU, "A unit with this SKU already exists", nil, err)
		case errors.Is(err, utils.ErrUnknownDepot):
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeUnknownDepot, "depot_id does not refer to an existing depot", nil, err)
		default:
			utils.Logger.WithError(err).Error("CreateUnit error")
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Could not create unit", nil, err)
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.CreateUnitResponse{UnitID: unitID})
}

// ----------------------------------------------------------------
// GET /api/v1/units/{id}
// ----------------------------------------------------------------
func (c *InventoryController) GetUnitHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid unit id", nil, err)
		return
	}
	unit, err := c.inventoryService.GetUnit(r.Context(), id)
	if err != nil {
		utils.Logger.WithError(err).Error("GetUnit error")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Could not fetch unit", nil, err)
		return
	}
	if unit == nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Unit not found", nil, nil)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, unit)
}

// ----------------------------------------------------------------
// PUT /api/v1/units
// ----------------------------------------------------------------
func (c *InventoryController) UpdateUnitHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dtos.UpdateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := inventoryValidate.StructCtx(ctx, req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", validationErrors.Error(), nil)
		} else {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request data", nil, err)
		}
		return
	}

	updated, err := c.inventoryService.UpdateUnit(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrUnknownDepot):
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeUnknownDepot, "depot_id does not refer to an existing depot", nil, err)
		case errors.Is(err, utils.ErrNoRowsUpdated):
			utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeRowVersionConflict, "No rows updated, please refresh", nil, err)
		default:
			utils.Logger.WithError(err).Error("UpdateUnit error")
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Could not update unit", nil, err)
		}
		return
	}
	if updated == nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Unit not found", nil, nil)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// ----------------------------------------------------------------
// DELETE /api/v1/units/{id}
// ----------------------------------------------------------------
func (c *InventoryController) DeleteUnitHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid unit id", nil, err)
		return
	}
	if err := c.inventoryService.DeleteUnit(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Unit not found", nil, nil)
			return
		}
		utils.Logger.WithError(err).Error("DeleteUnit error")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Could not delete unit", nil, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
