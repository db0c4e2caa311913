package catalog

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"catalog-manager/core/logger"
	"catalog-manager/feature/catalog/feed"
	"catalog-manager/feature/catalog/withdraw"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/journals", h.HandleListJournals)
	group.Get("/publishers", h.HandleListPublishers)
	group.Get("/pool", h.HandlePoolStats)
	group.Get("/reconcile/preview", h.HandleReconcilePreview)
	group.Get("/withdrawals/preview", h.HandleWithdrawalPreview)
}

// HandleListJournals returns the journals matching the query parameters.
func (h *Handler) HandleListJournals(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	query := JournalQuery{
		Keyword:    c.Query("keyword"),
		OnlyActive: c.QueryBool("active"),
		Limit:      c.QueryInt("limit"),
	}

	journals, err := h.service.ListJournals(c.Context(), query)
	if err != nil {
		l.Error("Journal listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(journals)
}

// HandleListPublishers returns all publishers with their links.
func (h *Handler) HandleListPublishers(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	publishers, err := h.service.ListPublishers(c.Context())
	if err != nil {
		l.Error("Publisher listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(publishers)
}

// HandlePoolStats reports connection pool usage.
func (h *Handler) HandlePoolStats(c *fiber.Ctx) error {
	inUse, idle := h.service.PoolStats()
	return c.JSON(fiber.Map{
		"in_use": inUse,
		"idle":   idle,
	})
}

// HandleReconcilePreview computes a reconciliation plan without writing
// anything. The dump location can be overridden with the url parameter.
func (h *Handler) HandleReconcilePreview(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	plan, err := h.service.PlanReconciliation(c.Context(), c.Query("url"), c.Query("publisher"))
	if err != nil {
		var formatErr *feed.FormatError
		if errors.As(err, &formatErr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":   "feed format not recognized",
				"reasons": formatErr.Reasons,
			})
		}
		l.Error("Reconciliation preview failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(plan)
}

// HandleWithdrawalPreview matches the withdrawal notices against the local
// catalog under the requested policy, without deleting anything.
func (h *Handler) HandleWithdrawalPreview(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	policy := withdraw.Policy(c.Query("policy", string(withdraw.PolicyRespectLinking)))
	if _, err := withdraw.ParsePolicy(string(policy)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	report, err := h.service.PlanWithdrawal(c.Context(), c.Query("url"), policy)
	if err != nil {
		var formatErr *feed.FormatError
		if errors.As(err, &formatErr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":   "changes workbook format not recognized",
				"reasons": formatErr.Reasons,
			})
		}
		l.Error("Withdrawal preview failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}
