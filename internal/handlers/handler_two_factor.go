package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/spendwise_client/internal/core/ports/services"
	"github.com/SscSPs/spendwise_client/internal/dto"
	"github.com/SscSPs/spendwise_client/internal/utils/mapping"
	"github.com/gin-gonic/gin"
)

type twoFactorHandler struct {
	twoFactor portssvc.TwoFactorSvcFacade
}

func registerTwoFactorRoutes(rg *gin.RouterGroup, twoFactor portssvc.TwoFactorSvcFacade) {
	h := &twoFactorHandler{twoFactor: twoFactor}

	group := rg.Group("/two-factor")
	{
		group.GET("", h.status)
		group.POST("/setup-code", h.requestSetupCode)
		group.POST("/enable", h.enable)
		group.POST("/disable", h.disable)
		group.POST("/backup-codes", h.regenerateBackupCodes)
	}
}

// status godoc
// @Summary Two-factor enrollment state
// @Tags two-factor
// @Produce json
// @Success 200 {object} dto.TwoFactorStatusResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /two-factor [get]
func (h *twoFactorHandler) status(c *gin.Context) {
	status, stale, ok := readResult(c, h.twoFactor.Status(c.Request.Context()), "Failed to load two-factor status")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, mapping.ToTwoFactorStatusResponse(status, stale))
}

// requestSetupCode godoc
// @Summary Send an enrollment code
// @Description Dispatches a code to the email address, or to phoneNumber for SMS.
// @Tags two-factor
// @Accept json
// @Param request body dto.SetupCodeRequest true "Factor to enroll"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /two-factor/setup-code [post]
func (h *twoFactorHandler) requestSetupCode(c *gin.Context) {
	var req dto.SetupCodeRequest
	if !bindJSON(c, &req, "SetupCode") {
		return
	}
	if err := h.twoFactor.RequestSetupCode(c.Request.Context(), req.Factor, req.PhoneNumber); err != nil && !committed(c, err) {
		respondError(c, err, "Failed to send setup code")
		return
	}
	c.Status(http.StatusNoContent)
}

// enable godoc
// @Summary Enable a factor
// @Tags two-factor
// @Accept json
// @Param request body dto.FactorCodeRequest true "Factor and setup code"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse "Wrong or reused code"
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /two-factor/enable [post]
func (h *twoFactorHandler) enable(c *gin.Context) {
	var req dto.FactorCodeRequest
	if !bindJSON(c, &req, "EnableFactor") {
		return
	}
	if err := h.twoFactor.EnableFactor(c.Request.Context(), req.Factor, req.Code); err != nil && !committed(c, err) {
		respondError(c, err, "Failed to enable factor")
		return
	}
	c.Status(http.StatusNoContent)
}

// disable godoc
// @Summary Disable a factor
// @Tags two-factor
// @Accept json
// @Param request body dto.FactorCodeRequest true "Factor and a current or backup code"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /two-factor/disable [post]
func (h *twoFactorHandler) disable(c *gin.Context) {
	var req dto.FactorCodeRequest
	if !bindJSON(c, &req, "DisableFactor") {
		return
	}
	if err := h.twoFactor.DisableFactor(c.Request.Context(), req.Factor, req.Code); err != nil && !committed(c, err) {
		respondError(c, err, "Failed to disable factor")
		return
	}
	c.Status(http.StatusNoContent)
}

// regenerateBackupCodes godoc
// @Summary Regenerate backup codes
// @Description Replaces the backup-code pool. The codes are shown once.
// @Tags two-factor
// @Accept json
// @Produce json
// @Param request body dto.RegenerateBackupCodesRequest true "Password confirmation"
// @Success 200 {object} dto.BackupCodesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /two-factor/backup-codes [post]
func (h *twoFactorHandler) regenerateBackupCodes(c *gin.Context) {
	var req dto.RegenerateBackupCodesRequest
	if !bindJSON(c, &req, "RegenerateBackupCodes") {
		return
	}
	codes, err := h.twoFactor.RegenerateBackupCodes(c.Request.Context(), req.Password)
	if err != nil && !committed(c, err) {
		respondError(c, err, "Failed to regenerate backup codes")
		return
	}
	c.JSON(http.StatusOK, dto.BackupCodesResponse{Codes: codes})
}
