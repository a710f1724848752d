package httpapi

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/labstack/echo/v4"
)

// Greeting is the body of GET /greeting.
type Greeting struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}

type greetingHandler struct {
	counter atomic.Int64
}

func (h *greetingHandler) greet(c echo.Context) error {
	name := c.QueryParam("name")
	if name == "" {
		name = "World"
	}
	return c.JSON(http.StatusOK, Greeting{
		ID:      h.counter.Add(1),
		Content: fmt.Sprintf("Hello %s", name),
	})
}
