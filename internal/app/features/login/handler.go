// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/supporthub/internal/app/store/sessions"
	"github.com/dalemusser/supporthub/internal/app/system/apiclient"
	"github.com/dalemusser/supporthub/internal/app/system/auth"
	"github.com/dalemusser/supporthub/internal/app/system/limits"
	"github.com/dalemusser/supporthub/internal/app/system/navigation"
	"github.com/dalemusser/supporthub/internal/app/system/ratelimit"
	"github.com/dalemusser/supporthub/internal/app/system/timeouts"
	"github.com/dalemusser/supporthub/internal/app/system/viewdata"
	"github.com/dalemusser/supporthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Authenticator verifies credentials against the remote API.
type Authenticator interface {
	Login(ctx context.Context, loginID, password string) (models.User, string, error)
}

type Handler struct {
	API        Authenticator
	SessionMgr *auth.SessionManager
	Sessions   *sessions.Store    // activity tracking; nil when Mongo is not configured
	Limiter    *ratelimit.Limiter // per client IP; nil disables limiting
	Log        *zap.Logger

	render func(w http.ResponseWriter, r *http.Request, name string, data any)
}

func NewHandler(api Authenticator, sessionMgr *auth.SessionManager, sessStore *sessions.Store, limiter *ratelimit.Limiter, logger *zap.Logger) *Handler {
	return &Handler{
		API:        api,
		SessionMgr: sessionMgr,
		Sessions:   sessStore,
		Limiter:    limiter,
		Log:        logger,
		render:     templates.Render,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	LoginID   string // what the user typed, echoed back on error
	ReturnURL string
}

const (
	msgMissing     = "Please enter your login ID and password."
	msgInvalid     = "Invalid login ID or password."
	msgTooMany     = "Too many sign-in attempts. Please wait a minute and try again."
	msgUnavailable = "Sign-in is unavailable right now. Please try again later."
	msgSession     = "Unable to create session. Please try again."
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, navigation.SafeBackURL(r, navigation.LoginBackURL), http.StatusSeeOther)
		return
	}
	h.render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
		ReturnURL: query.Get(r, "return"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxLoginFormSize)
	if err := r.ParseForm(); err != nil {
		h.renderFormWithError(w, r, http.StatusBadRequest, "Invalid form data.", "")
		return
	}

	loginID := strings.TrimSpace(r.FormValue("login_id"))
	password := r.FormValue("password")
	if loginID == "" || password == "" {
		h.renderFormWithError(w, r, http.StatusOK, msgMissing, loginID)
		return
	}

	ip := ratelimit.ClientIP(r)
	if h.Limiter != nil && !h.Limiter.Allow(ip) {
		h.Log.Warn("login rate limited", zap.String("ip", ip), zap.String("login_id", loginID))
		h.renderFormWithError(w, r, http.StatusTooManyRequests, msgTooMany, loginID)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "login")
	defer cancel()

	u, token, err := h.API.Login(ctx, loginID, password)
	switch {
	case errors.Is(err, apiclient.ErrInvalidCredentials):
		h.Log.Info("login rejected", zap.String("login_id", loginID), zap.String("ip", ip))
		h.renderFormWithError(w, r, http.StatusOK, msgInvalid, loginID)
		return
	case err != nil:
		h.Log.Error("login request failed", zap.String("login_id", loginID), zap.Error(err))
		h.renderFormWithError(w, r, http.StatusOK, msgUnavailable, loginID)
		return
	}

	if h.Limiter != nil {
		h.Limiter.Reset(ip)
	}
	h.createSessionAndRedirect(w, r, u, token)
}

// createSessionAndRedirect records the activity session (when tracking is
// on), writes the auth cookie and sends the user to their return URL.
func (h *Handler) createSessionAndRedirect(w http.ResponseWriter, r *http.Request, u models.User, token string) {
	activityID := ""
	if h.Sessions != nil {
		ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create activity session")
		defer cancel()

		sess, err := h.Sessions.Create(ctx, u.ID, u.Username, u.Role, ratelimit.ClientIP(r), r.UserAgent())
		if err != nil {
			h.Log.Warn("failed to create activity session", zap.Error(err), zap.String("user_id", u.ID))
		} else {
			activityID = sess.ID.Hex()
		}
	}

	if err := h.SessionMgr.SignIn(w, r, u, token, activityID); err != nil {
		h.Log.Error("save session failed", zap.Error(err), zap.String("user_id", u.ID))
		h.renderFormWithError(w, r, http.StatusOK, msgSession, u.Username)
		return
	}

	h.Log.Info("user signed in", zap.String("user_id", u.ID), zap.String("role", u.Role))
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.LoginBackURL), http.StatusSeeOther)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, status int, msg, loginID string) {
	if status != http.StatusOK {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
	}
	h.render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
		Error:     msg,
		LoginID:   loginID,
		ReturnURL: strings.TrimSpace(r.FormValue("return")),
	})
}
