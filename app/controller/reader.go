package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-reader/app/factory"
	"github.com/vibast-solutions/ms-go-reader/app/service"
	"github.com/vibast-solutions/ms-go-reader/app/types"
	"github.com/vibast-solutions/ms-go-reader/app/view"
	"github.com/vibast-solutions/ms-go-reader/config"
)

type ReaderController struct {
	entitlement *service.EntitlementService
	access      *service.AccessService
	renderer    *view.Renderer
	sessionCfg  config.SessionConfig
	logger      logrus.FieldLogger
}

func NewReaderController(
	entitlement *service.EntitlementService,
	access *service.AccessService,
	renderer *view.Renderer,
	sessionCfg config.SessionConfig,
) *ReaderController {
	return &ReaderController{
		entitlement: entitlement,
		access:      access,
		renderer:    renderer,
		sessionCfg:  sessionCfg,
		logger:      factory.NewModuleLogger("reader-controller"),
	}
}

// RegisterRoutes is the complete route table of the service.
func RegisterRoutes(e *echo.Echo, c *ReaderController) {
	e.GET("/health", c.Health)
	e.GET("/", c.Home)
	e.GET("/buy", c.Buy)
	e.GET("/claim", c.Claim)
	e.GET("/page/:number", c.Page)
	e.GET("/cover.png", c.Cover)
}

func (c *ReaderController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &types.HealthResponse{Status: "ok"})
}

// Home renders the shell. The unlock check is advisory here: a store
// failure degrades to the locked variant rather than an error page.
func (c *ReaderController) Home(ctx echo.Context) error {
	unlocked, err := c.access.Authorize(ctx.Request().Context(), c.sessionToken(ctx))
	if err != nil {
		c.logger.WithError(err).Warn("Unlock check failed, rendering locked shell")
		unlocked = false
	}

	ctx.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	ctx.Response().WriteHeader(http.StatusOK)
	return c.renderer.RenderShell(ctx.Response(), c.access.Book(), unlocked)
}

func (c *ReaderController) Buy(ctx echo.Context) error {
	checkoutURL, err := c.entitlement.InitiateCheckout(ctx.Request().Context(), requestOrigin(ctx))
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Initiate checkout failed")
		return c.writeError(ctx, http.StatusInternalServerError, err.Error())
	}
	return ctx.Redirect(http.StatusFound, checkoutURL)
}

func (c *ReaderController) Claim(ctx echo.Context) error {
	checkoutSessionID := ctx.QueryParam("cs")
	if checkoutSessionID == "" {
		// Covers the cancel URL and direct navigation; not an error.
		return ctx.Redirect(http.StatusFound, "/")
	}

	token, err := c.entitlement.RedeemCheckout(ctx.Request().Context(), checkoutSessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentUnverified):
			return c.writeError(ctx, http.StatusPaymentRequired, "payment not verified")
		case errors.Is(err, service.ErrProviderUnavailable):
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Checkout session fetch failed")
			return c.writeError(ctx, http.StatusBadGateway, err.Error())
		default:
			c.logger.WithError(err).Error("Redeem checkout failed")
			return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	ctx.SetCookie(&http.Cookie{
		Name:     c.sessionCfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.entitlement.SessionTTL().Seconds()),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return ctx.Redirect(http.StatusFound, "/")
}

func (c *ReaderController) Page(ctx echo.Context) error {
	body, err := c.access.FetchPage(ctx.Request().Context(), c.sessionToken(ctx), ctx.Param("number"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthorized):
			return c.writeError(ctx, http.StatusUnauthorized, "unauthorized")
		case errors.Is(err, service.ErrNoSuchPage):
			return c.writeError(ctx, http.StatusNotFound, "no such page")
		case errors.Is(err, service.ErrContentMissing):
			return c.writeError(ctx, http.StatusNotFound, "page image missing")
		default:
			c.logger.WithError(err).Error("Fetch page failed")
			return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}
	defer body.Close()

	ctx.Response().Header().Set("Cache-Control", "private, max-age=3600")
	return ctx.Stream(http.StatusOK, "image/png", body)
}

func (c *ReaderController) Cover(ctx echo.Context) error {
	body, err := c.access.FetchCover(ctx.Request().Context())
	if err != nil {
		if errors.Is(err, service.ErrContentMissing) {
			return c.writeError(ctx, http.StatusNotFound, "cover image missing")
		}
		c.logger.WithError(err).Error("Fetch cover failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}
	defer body.Close()

	return ctx.Stream(http.StatusOK, "image/png", body)
}

// sessionToken extracts the credential claim from the session cookie.
// A cookie value outside the token charset reads as no cookie at all.
func (c *ReaderController) sessionToken(ctx echo.Context) string {
	cookie, err := ctx.Cookie(c.sessionCfg.CookieName)
	if err != nil || cookie == nil {
		return ""
	}
	for _, r := range cookie.Value {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return ""
		}
	}
	return cookie.Value
}

func requestOrigin(ctx echo.Context) string {
	return ctx.Scheme() + "://" + ctx.Request().Host
}

func (c *ReaderController) writeError(ctx echo.Context, statusCode int, message string) error {
	return ctx.JSON(statusCode, &types.ErrorResponse{Error: message})
}
