package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/movieplatform/movie-api/internal/api/metrics"
	"github.com/movieplatform/movie-api/internal/core/domain"
	"github.com/movieplatform/movie-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup registers a new account.
//
// @Summary      Register a new account
// @Tags         user
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body      signupRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /user/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Email:              req.Email,
		Password:           req.Password,
		ConfirmPassword:    req.ConfirmPassword,
		UserType:           req.UserType,
		Name:               req.Name,
		Phone:              req.Phone,
		RegistrationNumber: req.RegistrationNumber,
		ContactPerson:      req.ContactPerson,
	})
	if err != nil {
		return err
	}

	metrics.SignupsTotal.WithLabelValues(string(res.Account.UserType)).Inc()
	return c.JSON(http.StatusCreated, authResponse{
		Message: "User created successfully",
		Token:   res.Token,
		User:    res.Account,
	})
}

// Login authenticates an account and returns a bearer token.
//
// @Summary      Login
// @Tags         user
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /user/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   res.Token,
		User:    res.Account,
	})
}

// ForgotPassword mails a one-time reset code.
//
// @Summary      Request a password reset code
// @Tags         user
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /user/forgotPassword [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrTooManyRequests) {
			metrics.PasswordResetsTotal.WithLabelValues("throttled").Inc()
		}
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("requested").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "OTP sent to your email"})
}

// ResetPassword sets a new password using a mailed code.
//
// @Summary      Reset password with a one-time code
// @Tags         user
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Email, code and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /user/resetPassword [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		if errors.Is(err, domain.ErrInvalidOTP) {
			metrics.PasswordResetsTotal.WithLabelValues("rejected").Inc()
		}
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("completed").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Password reset successfully"})
}

// ChangePassword replaces the caller's password.
//
// @Summary      Change password
// @Tags         user
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /user/changePassword [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	accountID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.authService.ChangePassword(c.Request().Context(), accountID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Password changed successfully"})
}

// VerifyProfile completes the caller's profile. Accepts an optional "photo"
// or "documents" file; the photo wins when both are sent.
//
// @Summary      Verify and complete the caller's profile
// @Tags         user
// @Accept       mpfd,json
// @Produce      json
// @Security     BearerAuth
// @Param        body       body      verifyProfileRequest  false  "Profile fields"
// @Param        photo      formData  file                  false  "Profile photo"
// @Param        documents  formData  file                  false  "Supporting document"
// @Success      200        {object}  accountResponse
// @Failure      401        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Failure      500        {object}  errorResponse
// @Router       /user/verifyProfile [post]
func (h *AuthHandler) VerifyProfile(c echo.Context) error {
	accountID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req verifyProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	in := ports.VerifyProfileInput{AccountID: accountID, Fields: req.toFields()}

	photo, closePhoto, err := formUpload(c, "photo")
	if err != nil {
		return err
	}
	defer closePhoto()
	in.Photo = photo

	if photo == nil {
		doc, closeDoc, err := formUpload(c, "documents")
		if err != nil {
			return err
		}
		defer closeDoc()
		in.Document = doc
	}

	account, err := h.authService.VerifyProfile(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accountResponse{Message: "Profile verified", User: account})
}

// formUpload opens the named multipart file. It returns a nil upload when
// the request carries no such file.
func formUpload(c echo.Context, field string) (*ports.Upload, func(), error) {
	noop := func() {}

	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid %s upload", field))
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, fmt.Errorf("open %s upload: %w", field, err)
	}
	return &ports.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, closer(f), nil
}

func closer(f multipart.File) func() {
	return func() { _ = f.Close() }
}
