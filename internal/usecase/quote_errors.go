package usecase

import (
	"fmt"
	"net/http"
	"strings"

	"oficina_quotes/pkg"
)

const (
	CodeServiceOrderNotFound        = "SERVICE_ORDER_NOT_FOUND"
	CodeQuoteNotFound               = "QUOTE_NOT_FOUND"
	CodeQuoteAlreadyExists          = "QUOTE_ALREADY_EXISTS"
	CodeQuoteInvalidStateTransition = "QUOTE_INVALID_STATE_TRANSITION"
	CodeQuoteItemsRequired          = "QUOTE_ITEMS_REQUIRED"
	CodeInsufficientStock           = "INSUFFICIENT_STOCK"
	CodeServiceOrderInvalidState    = "SERVICE_ORDER_INVALID_STATE"
	CodeInternal                    = "INTERNAL_ERROR"
)

var (
	ErrServiceOrderNotFound     = pkg.NewDomainErrorSimple(CodeServiceOrderNotFound, "Service order not found", http.StatusNotFound)
	ErrQuoteNotFound            = pkg.NewDomainErrorSimple(CodeQuoteNotFound, "Quote not found", http.StatusNotFound)
	ErrQuoteAlreadyExists       = pkg.NewDomainErrorSimple(CodeQuoteAlreadyExists, "A pending quote already exists for this service order", http.StatusConflict)
	ErrQuoteAlreadyApproved     = pkg.NewDomainErrorSimple(CodeQuoteAlreadyExists, "This service order already has an approved quote", http.StatusConflict)
	ErrQuoteInvalidTransition   = pkg.NewDomainErrorSimple(CodeQuoteInvalidStateTransition, "Only pending quotes can be approved or rejected", http.StatusConflict)
	ErrQuoteItemsRequired       = pkg.NewDomainErrorSimple(CodeQuoteItemsRequired, "Service order has no items to quote", http.StatusBadRequest)
	ErrRejectReasonRequired     = pkg.NewDomainErrorSimple(CodeQuoteItemsRequired, "A rejection reason is required", http.StatusBadRequest)
	ErrInsufficientStock        = pkg.NewDomainErrorSimple(CodeInsufficientStock, "Insufficient stock", http.StatusConflict)
	ErrServiceOrderInvalidState = pkg.NewDomainErrorSimple(CodeServiceOrderInvalidState, "Service order is not ready for a quote", http.StatusConflict)
)

// StockShortfall describes one part that cannot be satisfied.
type StockShortfall struct {
	PartID           string
	PartName         string
	Available        int
	Required         int
	ReservedByOrders []string
}

func (s StockShortfall) String() string {
	msg := fmt.Sprintf("%s: available %d, required %d", s.PartName, s.Available, s.Required)
	if len(s.ReservedByOrders) > 0 {
		msg += " (reserved by orders " + strings.Join(s.ReservedByOrders, ", ") + ")"
	}
	return msg
}

// InsufficientStockError carries the complete shortfall report. It matches
// ErrInsufficientStock with errors.Is.
type InsufficientStockError struct {
	Shortfalls []StockShortfall
}

func newInsufficientStockError(shortfalls []StockShortfall) *InsufficientStockError {
	return &InsufficientStockError{Shortfalls: shortfalls}
}

func (e *InsufficientStockError) Error() string {
	return e.AppError().Error()
}

func (e *InsufficientStockError) Unwrap() error {
	return e.AppError()
}

// AppError renders the shortfall list into the catalogue error.
func (e *InsufficientStockError) AppError() *pkg.AppError {
	lines := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		lines = append(lines, s.String())
	}
	return ErrInsufficientStock.WithMessage("Insufficient stock: " + strings.Join(lines, "; "))
}

func wrapInternal(message string, err error) *pkg.AppError {
	return pkg.NewDomainError(CodeInternal, message, err, http.StatusInternalServerError)
}
