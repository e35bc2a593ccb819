package handlers

import (
	"net/http"
	"strings"
	"time"

	request "brcargo_cotacoes/internal/adapter/http/dto/request"
	response "brcargo_cotacoes/internal/adapter/http/dto/response"
	"brcargo_cotacoes/internal/adapter/http/middleware"
	"brcargo_cotacoes/internal/usecase"
	"brcargo_cotacoes/pkg"

	"github.com/gin-gonic/gin"
)

var errActOnBehalf = pkg.NewDomainErrorSimple("FORBIDDEN", "Only managers may accept on behalf of another operator", http.StatusForbidden)

// QuoteHandler exposes the quote workflow. The caller is resolved by the
// identity middleware before any handler runs.
type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
	loc     *time.Location
}

func NewQuoteHandler(uc usecase.IQuoteUseCase, loc *time.Location) *QuoteHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &QuoteHandler{usecase: uc, loc: loc}
}

// CreateQuote godoc
// @Summary  Open a freight quote
// @Tags     quotes
// @Accept   json
// @Produce  json
// @Param    X-User-ID header string true "Caller id"
// @Param    payload body request.CreateQuoteRequest true "Shipment data"
// @Success  201 {object} response.QuoteResponse
// @Failure  400 {object} pkg.HTTPError
// @Failure  403 {object} pkg.HTTPError
// @Router   /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var payload request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}

	q, err := h.usecase.Create(c.Request.Context(), middleware.Caller(c), payload.ToDraft())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromQuote(q))
}

// ListQuotes godoc
// @Summary  List quotes visible to the caller
// @Tags     quotes
// @Produce  json
// @Param    X-User-ID header string true "Caller id"
// @Param    status query string false "Status"
// @Param    mode query string false "Transport mode"
// @Param    requested_from query string false "First day (YYYY-MM-DD)"
// @Param    requested_to query string false "Last day (YYYY-MM-DD)"
// @Param    page query int false "Page"
// @Param    page_size query int false "Page size"
// @Success  200 {object} response.QuotePageResponse
// @Router   /quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	var query request.ListQuotesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeAppError(c, errInvalidQuery)
		return
	}
	filter, page, err := query.ToFilter(h.loc)
	if err != nil {
		writeAppError(c, pkg.NewDomainError("INVALID_REQUEST", err.Error(), err, http.StatusBadRequest))
		return
	}

	result, err := h.usecase.List(c.Request.Context(), middleware.Caller(c), filter, page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuotePage(result))
}

// GetQuote godoc
// @Summary  Get one quote
// @Tags     quotes
// @Produce  json
// @Param    X-User-ID header string true "Caller id"
// @Param    id path string true "Quote id"
// @Success  200 {object} response.QuoteResponse
// @Failure  404 {object} pkg.HTTPError
// @Router   /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	q, err := h.usecase.Get(c.Request.Context(), middleware.Caller(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// GetHistory godoc
// @Summary  Audit trail of a quote, oldest first
// @Tags     quotes
// @Produce  json
// @Param    X-User-ID header string true "Caller id"
// @Param    id path string true "Quote id"
// @Success  200 {array} response.HistoryEntryResponse
// @Router   /quotes/{id}/history [get]
func (h *QuoteHandler) GetHistory(c *gin.Context) {
	entries, err := h.usecase.History(c.Request.Context(), middleware.Caller(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromHistory(entries))
}

// GetStatistics godoc
// @Summary  Quote counts by status, mode and operator
// @Tags     quotes
// @Produce  json
// @Param    X-User-ID header string true "Caller id"
// @Success  200 {object} response.StatisticsResponse
// @Router   /quotes/statistics [get]
func (h *QuoteHandler) GetStatistics(c *gin.Context) {
	stats, err := h.usecase.Statistics(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromStatistics(stats))
}

// AcceptQuote godoc
// @Summary  Operator takes a requested quote
// @Tags     quotes
// @Accept   json
// @Produce  json
// @Param    X-User-ID header string true "Caller id"
// @Param    id path string true "Quote id"
// @Param    payload body request.AcceptQuoteRequest false "Optional note"
// @Success  200 {object} response.QuoteResponse
// @Failure  409 {object} pkg.HTTPError
// @Router   /quotes/{id}/accept [post]
func (h *QuoteHandler) AcceptQuote(c *gin.Context) {
	var payload request.AcceptQuoteRequest
	if !bindOptionalJSON(c, &payload) {
		return
	}

	caller := middleware.Caller(c)
	operatorID := strings.TrimSpace(payload.OperatorID)
	if operatorID != "" && operatorID != caller.ID {
		if !caller.Active || !caller.Role.IsSupervisor() {
			writeAppError(c, errActOnBehalf)
			return
		}
		q, err := h.usecase.AcceptByOperatorID(c.Request.Context(), c.Param("id"), operatorID, payload.Note)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.FromQuote(q))
		return
	}

	q, err := h.usecase.AcceptByOperator(c.Request.Context(), caller, c.Param("id"), payload.Note)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// SendQuote godoc
// @Summary  Operator sends the priced quote
// @Tags     quotes
// @Accept   json
// @Produce  json
// @Param    X-User-ID header string true "Caller id"
// @Param    id path string true "Quote id"
// @Param    payload body request.SendQuoteRequest true "Freight value and lead time"
// @Success  200 {object} response.QuoteResponse
// @Router   /quotes/{id}/send [post]
func (h *QuoteHandler) SendQuote(c *gin.Context) {
	var payload request.SendQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}

	q, err := h.usecase.SendQuote(c.Request.Context(), middleware.Caller(c), c.Param("id"), payload.ToResponse(), strings.TrimSpace(payload.ProviderCompanyID))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// ApproveQuote godoc
// @Summary  Consultant approves the sent quote
// @Tags     quotes
// @Param    X-User-ID header string true "Caller id"
// @Param    id path string true "Quote id"
// @Param    payload body request.NoteRequest false "Optional note"
// @Success  200 {object} response.QuoteResponse
// @Router   /quotes/{id}/approve [post]
func (h *QuoteHandler) ApproveQuote(c *gin.Context) {
	var payload request.NoteRequest
	if !bindOptionalJSON(c, &payload) {
		return
	}
	q, err := h.usecase.CustomerAccept(c.Request.Context(), middleware.Caller(c), c.Param("id"), payload.Note)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// DeclineQuote godoc
// @Summary  Consultant declines the sent quote
// @Tags     quotes
// @Param    X-User-ID header string true "Caller id"
// @Param    id path string true "Quote id"
// @Param    payload body request.NoteRequest false "Optional note"
// @Success  200 {object} response.QuoteResponse
// @Router   /quotes/{id}/decline [post]
func (h *QuoteHandler) DeclineQuote(c *gin.Context) {
	var payload request.NoteRequest
	if !bindOptionalJSON(c, &payload) {
		return
	}
	q, err := h.usecase.CustomerDecline(c.Request.Context(), middleware.Caller(c), c.Param("id"), payload.Note)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// RecordDecision godoc
// @Summary  Consultant records the customer's answer
// @Tags     quotes
// @Param    X-User-ID header string true "Caller id"
// @Param    id path string true "Quote id"
// @Param    payload body request.DecisionRequest true "Decision"
// @Success  200 {object} response.QuoteResponse
// @Router   /quotes/{id}/decision [post]
func (h *QuoteHandler) RecordDecision(c *gin.Context) {
	var payload request.DecisionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}
	q, err := h.usecase.RecordCustomerDecision(c.Request.Context(), middleware.Caller(c), c.Param("id"), *payload.Approved, payload.Note)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// FinalizeQuote godoc
// @Summary  Close an answered quote
// @Tags     quotes
// @Param    X-User-ID header string true "Caller id"
// @Param    id path string true "Quote id"
// @Param    payload body request.NoteRequest false "Optional note"
// @Success  200 {object} response.QuoteResponse
// @Router   /quotes/{id}/finalize [post]
func (h *QuoteHandler) FinalizeQuote(c *gin.Context) {
	var payload request.NoteRequest
	if !bindOptionalJSON(c, &payload) {
		return
	}
	q, err := h.usecase.Finalize(c.Request.Context(), middleware.Caller(c), c.Param("id"), payload.Note)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// ReassignQuote godoc
// @Summary  Manager moves a quote to another operator
// @Tags     quotes
// @Param    X-User-ID header string true "Caller id"
// @Param    id path string true "Quote id"
// @Param    payload body request.ReassignRequest true "Target operator"
// @Success  200 {object} response.QuoteResponse
// @Router   /quotes/{id}/reassign [post]
func (h *QuoteHandler) ReassignQuote(c *gin.Context) {
	var payload request.ReassignRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}
	q, err := h.usecase.Reassign(c.Request.Context(), middleware.Caller(c), c.Param("id"), strings.TrimSpace(payload.OperatorID))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// ListOperators godoc
// @Summary  Users a quote can be reassigned to
// @Tags     operators
// @Param    X-User-ID header string true "Caller id"
// @Success  200 {array} response.OperatorResponse
// @Router   /operators [get]
func (h *QuoteHandler) ListOperators(c *gin.Context) {
	users, err := h.usecase.ListOperators(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromOperators(users))
}

// bindOptionalJSON accepts an empty body for commands whose payload only
// carries an optional note.
func bindOptionalJSON(c *gin.Context, dst interface{}) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		writeAppError(c, errInvalidPayload)
		return false
	}
	return true
}
