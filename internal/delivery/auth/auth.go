package auth

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	userDomain "goban/internal/domain/user"
	errs "goban/internal/errors"
	"goban/internal/httpresponse"
	authUC "goban/internal/usecase/auth"
	"goban/internal/utils"
)

const sessionCookieName = "sessionID"

type AuthHandler struct {
	usecaseHandler *authUC.AuthUsecaseHandler
	log            *zap.SugaredLogger
	sessionTTL     time.Duration
}

func NewAuthHandler(log *zap.SugaredLogger, usecaseHandler *authUC.AuthUsecaseHandler, sessionTTLHours int) *AuthHandler {
	ttl := time.Duration(sessionTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthHandler{
		usecaseHandler: usecaseHandler,
		log:            log,
		sessionTTL:     ttl,
	}
}

// Register godoc
// @Summary Регистрация нового пользователя
// @Description Создаёт нового пользователя и устанавливает cookie sessionID
// @Tags auth
// @Accept json
// @Produce json
// @Param register body user.RegisterRequest true "Данные пользователя для регистрации"
// @Success 200 {object} user.ProfileResponse
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 500 {object} httpresponse.ErrorResponse
// @Router /auth/register [post]
func (a *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.log.Error("Register: only POST method is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var registerData userDomain.RegisterRequest
	if err := utils.DecodeJSONRequest(r, &registerData); err != nil {
		a.log.Error("Register: malformed JSON: ", err)
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, httpresponse.MalformedJSONErrorDesc)
		return
	}
	if registerData.Username == "" || registerData.Password == "" {
		a.log.Error("Register: empty username or password")
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "имя пользователя и пароль обязательны")
		return
	}

	ctx := r.Context()

	newUser, err := a.usecaseHandler.RegisterUser(ctx, registerData)
	if err != nil {
		if errors.Is(err, errs.ErrUserExists) {
			a.log.Errorf("Register: user already exists: %s", registerData.Username)
			httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "Пользователь с таким именем уже существует")
			return
		}
		a.log.Error("Register: internal error: ", err)
		httpresponse.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	sessionID, err := a.usecaseHandler.LoginUser(ctx, registerData.Username, registerData.Password)
	if err != nil {
		a.log.Error("Register: login after register failed: ", err)
		httpresponse.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.setSessionCookie(w, sessionID)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, profileOf(newUser))
}

// Login godoc
// @Summary Вход пользователя
// @Description Авторизует пользователя по логину и паролю, устанавливает cookie sessionID
// @Tags auth
// @Accept json
// @Produce json
// @Param login body user.LoginRequest true "Данные пользователя для входа"
// @Success 200 {string} string "OK"
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 500 {object} httpresponse.ErrorResponse
// @Router /auth/login [post]
func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.log.Error("Login: only POST method is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var loginData userDomain.LoginRequest
	if err := utils.DecodeJSONRequest(r, &loginData); err != nil {
		a.log.Error("Login: malformed JSON: ", err)
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, httpresponse.MalformedJSONErrorDesc)
		return
	}

	sessionID, err := a.usecaseHandler.LoginUser(r.Context(), loginData.Username, loginData.Password)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUserNotFound):
			a.log.Errorf("Login: user not found: %s", loginData.Username)
			httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "Пользователь не найден")
			return
		case errors.Is(err, errs.ErrWrongPassword):
			a.log.Errorf("Login: wrong password for user: %s", loginData.Username)
			httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "Неверный пароль")
			return
		default:
			a.log.Error("Login: internal error: ", err)
			httpresponse.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	a.setSessionCookie(w, sessionID)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, nil)
}

// Logout godoc
// @Summary Выход пользователя
// @Description Удаляет сессию пользователя по cookie sessionID
// @Tags auth
// @Produce json
// @Success 200 {string} string "OK"
// @Failure 400 {object} httpresponse.ErrorResponse
// @Router /auth/logout [post]
func (a *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.log.Error("Logout: only POST method is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	sessionCookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			a.log.Warn("Logout: no cookie provided")
			httpresponse.WriteErrorResponse(w, http.StatusBadRequest, http.ErrNoCookie.Error())
			return
		}
		a.log.Error("Logout: error retrieving cookie: ", err)
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.usecaseHandler.LogoutUser(r.Context(), sessionCookie.Value); err != nil {
		a.log.Errorf("Logout: failed to logout sessionID=%s: %v", sessionCookie.Value, err)
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
	})

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, nil)
}

// Me godoc
// @Summary Профиль текущего пользователя
// @Description Возвращает профиль пользователя по cookie sessionID
// @Tags auth
// @Produce json
// @Success 200 {object} user.ProfileResponse
// @Failure 401 {object} httpresponse.ErrorResponse
// @Router /auth/me [get]
func (a *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.log.Error("Me: only GET method is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	sessionCookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		a.log.Warn("Me: no sessionID cookie")
		httpresponse.WriteErrorResponse(w, http.StatusUnauthorized, "Не найдена cookie sessionID")
		return
	}

	ok, currentUser := a.usecaseHandler.CheckAuthorized(r.Context(), sessionCookie.Value)
	if !ok {
		a.log.Warn("Me: session not found or expired")
		httpresponse.WriteErrorResponse(w, http.StatusUnauthorized, "Сессия не найдена или истекла")
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, profileOf(currentUser))
}

// GetUserID возвращает из сессии идентификатор пользователя.
// Если сессия просрочена или не найдена, пишет ошибку в http-ответ и возвращает "".
func (a *AuthHandler) GetUserID(w http.ResponseWriter, r *http.Request) string {
	sessionCookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			a.log.Warn("GetUserID: no sessionID cookie")
			httpresponse.WriteErrorResponse(w, http.StatusUnauthorized, "Не найдена cookie sessionID")
			return ""
		}
		a.log.Error("GetUserID: error retrieving cookie: ", err)
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return ""
	}

	ok, currentUser := a.usecaseHandler.CheckAuthorized(r.Context(), sessionCookie.Value)
	if !ok {
		a.log.Warn("GetUserID: session not found or expired")
		httpresponse.WriteErrorResponse(w, http.StatusUnauthorized, "Сессия не найдена или истекла")
		return ""
	}

	return currentUser.ID
}

func (a *AuthHandler) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Expires:  time.Now().Add(a.sessionTTL),
		Secure:   true,
		HttpOnly: true,
	})
}

func profileOf(u userDomain.User) userDomain.ProfileResponse {
	return userDomain.ProfileResponse{
		ID:        u.ID,
		Username:  u.Username,
		Rating:    u.Rating,
		Statistic: u.Statistic,
	}
}
