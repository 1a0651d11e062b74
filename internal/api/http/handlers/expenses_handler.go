package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/expense-service/internal/api/dto"
	"github.com/spec-kit/expense-service/internal/auth"
	"github.com/spec-kit/expense-service/internal/repository"
	"github.com/spec-kit/expense-service/internal/service"
	apperrors "github.com/spec-kit/expense-service/pkg/util"
)

// ExpensesHandler manages owner-scoped expense endpoints.
type ExpensesHandler struct {
	service *service.ExpenseService
}

// NewExpensesHandler constructs the handler.
func NewExpensesHandler(expenseService *service.ExpenseService) *ExpensesHandler {
	return &ExpensesHandler{service: expenseService}
}

// Create POST /expenses.
func (h *ExpensesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	input, err := parseExpenseBody(c)
	if err != nil {
		return err
	}

	expense, err := h.service.Create(c.Context(), principal.UserID, *input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewExpenseResponse(expense)})
}

// List GET /expenses.
func (h *ExpensesHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	filter := parseExpenseQuery(c)

	expenses, err := h.service.List(c.Context(), principal.UserID, filter)
	if err != nil {
		return err
	}
	items := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		items = append(items, dto.NewExpenseResponse(&expenses[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /expenses/:id.
func (h *ExpensesHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	expense, err := h.service.Get(c.Context(), principal.UserID, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewExpenseResponse(expense)})
}

// Update PUT /expenses/:id.
func (h *ExpensesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	input, err := parseExpenseBody(c)
	if err != nil {
		return err
	}

	expense, err := h.service.Update(c.Context(), principal.UserID, id, *input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewExpenseResponse(expense)})
}

// Delete DELETE /expenses/:id.
func (h *ExpensesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Context(), principal.UserID, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Summary GET /expenses/summary.
func (h *ExpensesHandler) Summary(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	summary, err := h.service.Summary(c.Context(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}

func parseExpenseBody(c *fiber.Ctx) (*service.ExpenseInput, error) {
	var req dto.ExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CategoryID <= 0 {
		return nil, apperrors.NewValidationError("category_id required", nil)
	}

	input := &service.ExpenseInput{
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Amount:      req.Amount,
	}
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid date", nil)
		}
		input.Date = &date
	}
	return input, nil
}

func parseExpenseQuery(c *fiber.Ctx) repository.ExpenseFilter {
	filter := repository.ExpenseFilter{}
	if raw := c.Query("category_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			filter.CategoryID = &id
		}
	}
	if from, err := parseDate(c.Query("date_from")); err == nil {
		filter.DateFrom = &from
	}
	if to, err := parseDate(c.Query("date_to")); err == nil {
		filter.DateTo = &to
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil && offset > 0 {
		filter.Offset = offset
	}
	return filter
}

func parseDate(raw string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", raw)
}
