package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/movieplatform/movie-api/internal/core/domain"
	"github.com/movieplatform/movie-api/internal/core/ports"
)

// AccountHandler serves account reads and administration.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// List handles GET /user/all.
//
// @Summary      List accounts
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  accountsResponse
// @Failure      401  {object}  errorResponse
// @Router       /user/all [get]
func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accountsResponse{Message: "Users fetched successfully", Users: accounts})
}

// Me handles GET /user/me.
//
// @Summary      Current account
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  accountResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /user/me [get]
func (h *AccountHandler) Me(c echo.Context) error {
	accountID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	account, err := h.service.Get(c.Request().Context(), accountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accountResponse{Message: "User fetched successfully", User: account})
}

// Get handles GET /user/:id.
//
// @Summary      Get an account by id
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  accountResponse
// @Failure      404  {object}  errorResponse
// @Router       /user/{id} [get]
func (h *AccountHandler) Get(c echo.Context) error {
	account, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accountResponse{Message: "User fetched successfully", User: account})
}

// Edit handles PUT /user/edit/:id. Only the owner or an admin may edit.
// Omitted fields keep their stored value.
//
// @Summary      Edit an account
// @Tags         user
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Account id"
// @Param        body  body      updateAccountRequest  true  "Fields to change"
// @Success      200   {object}  accountResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /user/edit/{id} [put]
func (h *AccountHandler) Edit(c echo.Context) error {
	accountID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if id != accountID && role != domain.RoleAdmin {
		return fmt.Errorf("%w: cannot edit another account", domain.ErrForbidden)
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	account, err := h.service.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accountResponse{Message: "User updated successfully", User: account})
}

// Delete handles DELETE /user/delete/:id.
//
// @Summary      Delete an account
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  accountResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /user/delete/{id} [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	account, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accountResponse{Message: "User deleted successfully", User: account})
}

// SetAuthorApproval handles PUT /user/author/:id/approval.
//
// @Summary      Approve or reject an author
// @Tags         user
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Account id"
// @Param        body  body      authorApprovalRequest  true  "Decision (yes or no)"
// @Success      200   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /user/author/{id}/approval [put]
func (h *AccountHandler) SetAuthorApproval(c echo.Context) error {
	var req authorApprovalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	account, err := h.service.SetAuthorApproval(c.Request().Context(), c.Param("id"), domain.AuthorStatus(req.IsAuthor))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accountResponse{Message: "Author status updated", User: account})
}

// AuthorStatus handles GET /user/author/status for the calling author.
//
// @Summary      Author approval status of the caller
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  authorStatusResponse
// @Failure      403  {object}  errorResponse
// @Router       /user/author/status [get]
func (h *AccountHandler) AuthorStatus(c echo.Context) error {
	accountID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	account, err := h.service.Get(c.Request().Context(), accountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authorStatusResponse{Message: "Author status fetched", IsAuthor: account.IsAuthor})
}
