package httpapi

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"userResourceService/internal/cache"
	"userResourceService/internal/failure"
	"userResourceService/internal/service"
	"userResourceService/models"
)

type userHandlers struct {
	svc *service.UserService
}

// listUsers handles GET /user/all.
func (h *userHandlers) listUsers(c echo.Context) error {
	users, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// listUsersV2 handles GET /v2/user/all.
func (h *userHandlers) listUsersV2(c echo.Context) error {
	users, err := h.svc.ListSorted(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// getUser handles GET /user/:id and its /org alias.
func (h *userHandlers) getUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	u, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// getUserLinks handles GET /v2/user/:id.
func (h *userHandlers) getUserLinks(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	env, err := h.svc.GetWithLinks(c.Request().Context(), id, baseURL(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, env)
}

// updateUser handles PUT /v2/user/.
func (h *userHandlers) updateUser(c echo.Context) error {
	u, err := bindUser(c)
	if err != nil {
		return err
	}
	_, d, err := h.svc.Update(c.Request().Context(), u)
	if err != nil {
		return err
	}
	return noContent(c, d)
}

// createUser handles POST /v2/user/.
func (h *userHandlers) createUser(c echo.Context) error {
	u, err := bindUser(c)
	if err != nil {
		return err
	}
	if err := h.svc.Create(c.Request().Context(), u); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// deleteUser handles DELETE /v2/user/:id.
func (h *userHandlers) deleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	d, err := h.svc.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return noContent(c, d)
}

// getCachedUser handles GET /user/firstUser.
func (h *userHandlers) getCachedUser(c echo.Context) error {
	u, d, err := h.svc.GetCachedFirst(c.Request().Context())
	if err != nil {
		return err
	}
	d.Apply(c.Response().Header())
	return c.JSON(http.StatusOK, u)
}

// clearCache handles PUT /user/firstUser.
func (h *userHandlers) clearCache(c echo.Context) error {
	u, err := bindUser(c)
	if err != nil {
		return err
	}
	d, err := h.svc.ClearCache(c.Request().Context(), u)
	if err != nil {
		return err
	}
	return noContent(c, d)
}

func noContent(c echo.Context, d cache.Directive) error {
	d.Apply(c.Response().Header())
	return c.NoContent(http.StatusNoContent)
}

func pathID(c echo.Context) (uint64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, failure.NewBadInput(fmt.Sprintf("Failed to convert value '%s' to a user id", raw))
	}
	return id, nil
}

// bindUser decodes a JSON user body. Non-JSON content types are rejected with
// 415, an empty or malformed body with 400. Field values are taken as sent.
func bindUser(c echo.Context) (models.User, error) {
	var u models.User
	req := c.Request()
	ctype := req.Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ctype, echo.MIMEApplicationJSON) {
		return u, echo.NewHTTPError(http.StatusUnsupportedMediaType,
			fmt.Sprintf("Content type '%s' not supported", ctype))
	}
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return u, failure.NewBadInput("Failed to read request body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return u, failure.NewBadInput("Required request body is missing")
	}
	req.Body = io.NopCloser(bytes.NewReader(body))
	if err := c.Echo().JSONSerializer.Deserialize(c, &u); err != nil {
		return u, err
	}
	return u, nil
}

func baseURL(c echo.Context) string {
	return c.Scheme() + "://" + c.Request().Host
}
