package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/spendwise_client/internal/core/ports/services"
	"github.com/SscSPs/spendwise_client/internal/dto"
	"github.com/SscSPs/spendwise_client/internal/middleware"
	"github.com/SscSPs/spendwise_client/internal/utils"
	"github.com/SscSPs/spendwise_client/internal/utils/mapping"
	"github.com/gin-gonic/gin"
)

// authHandler drives the step-up login.
type authHandler struct {
	auth    portssvc.StepUpAuthSvcFacade
	posthog *utils.PosthogClientWrapper
}

func newAuthHandler(auth portssvc.StepUpAuthSvcFacade, posthog *utils.PosthogClientWrapper) *authHandler {
	return &authHandler{auth: auth, posthog: posthog}
}

// registerAuthRoutes sets up the routes for authentication. The two login steps share limit.
func registerAuthRoutes(rg *gin.RouterGroup, auth portssvc.StepUpAuthSvcFacade, limit gin.HandlerFunc, posthog *utils.PosthogClientWrapper) {
	h := newAuthHandler(auth, posthog)

	group := rg.Group("/auth")
	{
		group.POST("/login", limit, h.login)
		group.POST("/verify", limit, h.verify)
		group.POST("/abandon", h.abandon)
		group.POST("/logout", h.logout)
		group.GET("/state", h.state)
	}
}

// login godoc
// @Summary Submit credentials
// @Description Starts a login. Answers with a session, or with the factors of the second step.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid email or password"
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req, "Login") {
		return
	}

	res, err := h.auth.SubmitCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}
	if res.Session != nil {
		h.completed(c, res.Session.UserID, "password")
	}
	c.JSON(http.StatusOK, mapping.ToLoginResponse(res))
}

// verify godoc
// @Summary Verify the second factor
// @Description Completes a pending login with a code of one of the offered factors.
// @Tags auth
// @Accept json
// @Produce json
// @Param verify body dto.VerifyRequest true "Second factor"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Superseded by a newer login"
// @Failure 410 {object} dto.ErrorResponse "Pending login expired, start again"
// @Failure 422 {object} dto.ErrorResponse "Wrong code or factor not offered"
// @Failure 502 {object} dto.ErrorResponse
// @Router /auth/verify [post]
func (h *authHandler) verify(c *gin.Context) {
	var req dto.VerifyRequest
	if !bindJSON(c, &req, "Verify") {
		return
	}

	session, err := h.auth.VerifySecondFactor(c.Request.Context(), req.PendingToken, req.Code, req.Factor)
	if err != nil {
		respondError(c, err, "Failed to verify code")
		return
	}
	h.completed(c, session.UserID, string(req.Factor))
	c.JSON(http.StatusOK, mapping.ToSessionResponse(session))
}

func (h *authHandler) completed(c *gin.Context, userID, method string) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Login completed", slog.String("user_id", userID), slog.String("method", method))
	middleware.SetUserID(c, userID)
	middleware.PosthogEvent(c, h.posthog, "login_completed", map[string]any{"method": method})
}

// abandon godoc
// @Summary Abandon the pending login
// @Tags auth
// @Success 204
// @Router /auth/abandon [post]
func (h *authHandler) abandon(c *gin.Context) {
	h.auth.Abandon(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// logout godoc
// @Summary Log out
// @Description Ends the session and forgets every cached query.
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	h.auth.Logout(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// state godoc
// @Summary Login state
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AuthStateResponse
// @Router /auth/state [get]
func (h *authHandler) state(c *gin.Context) {
	session, _ := h.auth.CurrentSession()
	c.JSON(http.StatusOK, mapping.ToAuthStateResponse(h.auth.State(), h.auth.Pending(), session))
}
