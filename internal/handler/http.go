package handler

import (
	"lingo/internal/domain"
	"lingo/internal/view"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// Widget is the presenter state the HTTP surface reads from
type Widget interface {
	View() view.Model
	Config() domain.DisplayConfig
	RequestNextWord()
}

// HTTPHandler serves the widget over HTTP
type HTTPHandler struct {
	widget    Widget
	staticDir string
	logger    *zap.Logger
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(widget Widget, staticDir string, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{
		widget:    widget,
		staticDir: staticDir,
		logger:    logger,
	}
}

// NewApp creates the fiber app with the shared middleware
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	return app
}

// RegisterRoutes registers all widget routes
func (h *HTTPHandler) RegisterRoutes(app *fiber.App) {
	if h.staticDir != "" {
		app.Static("/static", h.staticDir)
	}

	app.Get("/", h.Page)
	app.Get("/widget", h.Fragment)

	api := app.Group("/api/v1")
	api.Get("/widget", h.GetWidget)
	api.Get("/config", h.GetConfig)
	api.Post("/next", h.NextWord)
}

// Page renders the standalone widget page
func (h *HTTPHandler) Page(c *fiber.Ctx) error {
	page, err := view.Page(h.widget.View(), h.widget.Config().UpdateInterval)
	if err != nil {
		h.logger.Error("Failed to render page", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
	}

	c.Type("html", "utf-8")
	return c.SendString(page)
}

// Fragment renders only the widget markup
func (h *HTTPHandler) Fragment(c *fiber.Ctx) error {
	html, err := view.HTML(h.widget.View())
	if err != nil {
		h.logger.Error("Failed to render widget", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render widget")
	}

	c.Type("html", "utf-8")
	return c.SendString(html)
}

// GetWidget returns the current widget model
func (h *HTTPHandler) GetWidget(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"data": h.widget.View(),
	})
}

// GetConfig returns the display config
func (h *HTTPHandler) GetConfig(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"data": h.widget.Config(),
	})
}

// NextWord asks for the next word set
func (h *HTTPHandler) NextWord(c *fiber.Ctx) error {
	h.widget.RequestNextWord()
	h.logger.Info("Next word requested over HTTP")

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status": "requested",
	})
}
