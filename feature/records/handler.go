package records

import (
	"errors"

	"kb-admin/core/logger"
	"kb-admin/core/query"
	"kb-admin/core/schema"
	"kb-admin/core/upload"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the managed tables.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the table routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/tables")
	group.Get("/", h.HandleListTables)
	group.Get("/:table/schema", h.HandleGetSchema)
	group.Get("/:table/records", h.HandleGetRecords)
	group.Get("/:table/choices", h.HandleGetChoices)
	group.Post("/:table/reconcile", h.HandleReconcile)
	group.Post("/:table/records/:id/upload", h.HandleUpload)
}

// HandleListTables lists the managed tables.
// @Summary List Tables
// @Description List the knowledge-base tables the console manages.
// @Tags tables
// @Produce json
// @Success 200 {array} records.TableInfo
// @Router /tables [get]
func (h *Handler) HandleListTables(c *fiber.Ctx) error {
	return c.JSON(h.service.Tables())
}

// HandleGetSchema returns the typed schema of a table.
// @Summary Get Table Schema
// @Tags tables
// @Produce json
// @Param table path string true "Table name (reports, standards, esg_meta)"
// @Success 200 {object} schema.Schema
// @Failure 404 {object} map[string]string "Unknown table"
// @Router /tables/{table}/schema [get]
func (h *Handler) HandleGetSchema(c *fiber.Ctx) error {
	s, err := h.service.Schema(c.Params("table"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(s)
}

// HandleGetRecords returns one page of a table.
// @Summary Get Records
// @Description Fetch one page of a table. Read failures return an empty page with an error message.
// @Tags tables
// @Produce json
// @Param table path string true "Table name"
// @Param page query int false "Page number, from 1"
// @Param size query int false "Page size (25, 50, 100)"
// @Param sort query string false "Sort field"
// @Param dir query string false "Sort direction (asc, desc)"
// @Success 200 {object} query.Page
// @Failure 400 {object} map[string]string "Invalid cursor"
// @Failure 404 {object} map[string]string "Unknown table"
// @Router /tables/{table}/records [get]
func (h *Handler) HandleGetRecords(c *fiber.Ctx) error {
	cur, err := parseCursor(c)
	if err != nil {
		return h.fail(c, err)
	}
	page, err := h.service.Page(c.Context(), c.Params("table"), cur)
	if page != nil {
		if err != nil {
			logger.WithRayID(h.service.logger, c).Warn("Serving empty page", zap.Error(err))
		}
		return c.JSON(page)
	}
	return h.fail(c, err)
}

// HandleGetChoices returns the record picker entries of one page.
// @Summary Get Record Choices
// @Tags tables
// @Produce json
// @Param table path string true "Table name"
// @Param page query int false "Page number, from 1"
// @Param size query int false "Page size (25, 50, 100)"
// @Success 200 {array} records.Choice
// @Failure 502 {object} map[string]string "Backend read failed"
// @Router /tables/{table}/choices [get]
func (h *Handler) HandleGetChoices(c *fiber.Ctx) error {
	cur, err := parseCursor(c)
	if err != nil {
		return h.fail(c, err)
	}
	choices, err := h.service.Choices(c.Context(), c.Params("table"), cur)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(choices)
}

// HandleReconcile applies an edited page.
// @Summary Reconcile Page
// @Description Diff an edited page against its snapshot, apply deletions, creations and updates, and return the refreshed page.
// @Tags tables
// @Accept json
// @Produce json
// @Param table path string true "Table name"
// @Param request body records.ReconcileRequest true "Snapshot and edited rows"
// @Success 200 {object} reconcile.ReconcileResult
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Unknown table"
// @Router /tables/{table}/reconcile [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	var req ReconcileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body: " + err.Error()})
	}

	result, err := h.service.Reconcile(c.Context(), c.Params("table"), req)
	if result != nil {
		if err != nil {
			logger.WithRayID(h.service.logger, c).Warn("Reconcile applied but refresh failed", zap.Error(err))
		}
		return c.JSON(result)
	}
	return h.fail(c, err)
}

// HandleUpload stores a document for a record.
// @Summary Upload Document
// @Description Upload a pdf, docx or txt file for a record and stamp its uploaded_time.
// @Tags tables
// @Accept multipart/form-data
// @Produce json
// @Param table path string true "Table name"
// @Param id path string true "Record id"
// @Param file formData file true "Document"
// @Success 200 {object} upload.Result
// @Failure 400 {object} map[string]string "Invalid file or record"
// @Failure 502 {object} map[string]string "Upload target failed"
// @Router /tables/{table}/records/{id}/upload [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing file"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	defer f.Close()

	result, err := h.service.Upload(c.Context(), c.Params("table"), c.Params("id"), fh.Filename, f)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(result)
}

func parseCursor(c *fiber.Ctx) (query.Cursor, error) {
	var cur query.Cursor
	if err := c.QueryParser(&cur); err != nil {
		return cur, &schema.ValidationError{Field: "cursor", Reason: err.Error(), Err: err}
	}
	return cur, nil
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		logger.WithRayID(h.service.logger, c).Error("Request failed",
			zap.String("table", c.Params("table")),
			zap.Error(err),
		)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func statusFor(err error) int {
	var verr *schema.ValidationError
	var uerr *upload.UploadError
	var ferr *query.FetchError
	switch {
	case errors.Is(err, ErrUnknownTable):
		return fiber.StatusNotFound
	case errors.Is(err, ErrUploadDisabled):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, upload.ErrTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, upload.ErrExtension), errors.As(err, &verr):
		return fiber.StatusBadRequest
	case errors.As(err, &uerr), errors.As(err, &ferr):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
