package bus

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HandlerApi exposes a handler's counters over HTTP for monitoring a long
// sniffing session.
type HandlerApi struct {
	Api     *echo.Echo
	Handler *Handler
	listen  string
}

func (hapi *HandlerApi) GetStats(c echo.Context) error {
	return c.JSON(http.StatusOK, hapi.Handler.Stats())
}

func NewHandlerApi(h *Handler, listen string) *HandlerApi {
	api := echo.New()
	api.HideBanner = true
	hapi := &HandlerApi{
		Api:     api,
		Handler: h,
		listen:  listen,
	}
	hapi.Api.GET("/stats", hapi.GetStats)
	return hapi
}

func (hapi *HandlerApi) Run() {
	hapi.Api.Logger.Fatal(hapi.Api.Start(hapi.listen))
}
