package handler

import (
	"github.com/clubfinanzas/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// MemberHandler handles /miembros
type MemberHandler struct {
	BaseHandler
	service *finance.MemberService
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(service *finance.MemberService) *MemberHandler {
	return &MemberHandler{service: service}
}

func (h *MemberHandler) List(c *gin.Context) {
	listInClub(&h.BaseHandler, c, h.service.List)
}

func (h *MemberHandler) Get(c *gin.Context) {
	getInClub(&h.BaseHandler, c, h.service.Get)
}

func (h *MemberHandler) Create(c *gin.Context) {
	createInClub(&h.BaseHandler, c, h.service.Create)
}

func (h *MemberHandler) Update(c *gin.Context) {
	updateInClub(&h.BaseHandler, c, h.service.Update)
}

// Delete removes a member; their ledger rows keep the name snapshot
func (h *MemberHandler) Delete(c *gin.Context) {
	deleteInClub(&h.BaseHandler, c, h.service.Delete)
}

// CampaignHandler handles /colectas
type CampaignHandler struct {
	BaseHandler
	service *finance.CampaignService
}

// NewCampaignHandler creates a new CampaignHandler
func NewCampaignHandler(service *finance.CampaignService) *CampaignHandler {
	return &CampaignHandler{service: service}
}

// List returns campaigns with their statistics
func (h *CampaignHandler) List(c *gin.Context) {
	listInClub(&h.BaseHandler, c, h.service.List)
}

func (h *CampaignHandler) Get(c *gin.Context) {
	getInClub(&h.BaseHandler, c, h.service.Get)
}

func (h *CampaignHandler) Create(c *gin.Context) {
	createInClub(&h.BaseHandler, c, h.service.Create)
}

func (h *CampaignHandler) Update(c *gin.Context) {
	updateInClub(&h.BaseHandler, c, h.service.Update)
}

func (h *CampaignHandler) Delete(c *gin.Context) {
	deleteInClub(&h.BaseHandler, c, h.service.Delete)
}

// ContributionHandler handles /colectas/aportes
type ContributionHandler struct {
	BaseHandler
	service *finance.ContributionService
}

// NewContributionHandler creates a new ContributionHandler
func NewContributionHandler(service *finance.ContributionService) *ContributionHandler {
	return &ContributionHandler{service: service}
}

func (h *ContributionHandler) List(c *gin.Context) {
	listInClub(&h.BaseHandler, c, h.service.List)
}

func (h *ContributionHandler) Get(c *gin.Context) {
	getInClub(&h.BaseHandler, c, h.service.Get)
}

func (h *ContributionHandler) Create(c *gin.Context) {
	createInClub(&h.BaseHandler, c, h.service.Create)
}

func (h *ContributionHandler) Update(c *gin.Context) {
	updateInClub(&h.BaseHandler, c, h.service.Update)
}

func (h *ContributionHandler) Delete(c *gin.Context) {
	deleteInClub(&h.BaseHandler, c, h.service.Delete)
}

// ExpenseHandler handles /gastos
type ExpenseHandler struct {
	BaseHandler
	service *finance.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(service *finance.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

func (h *ExpenseHandler) List(c *gin.Context) {
	listInClub(&h.BaseHandler, c, h.service.List)
}

func (h *ExpenseHandler) Get(c *gin.Context) {
	getInClub(&h.BaseHandler, c, h.service.Get)
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	createInClub(&h.BaseHandler, c, h.service.Create)
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	updateInClub(&h.BaseHandler, c, h.service.Update)
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	deleteInClub(&h.BaseHandler, c, h.service.Delete)
}

// IncomeHandler handles /ingresos
type IncomeHandler struct {
	BaseHandler
	service *finance.IncomeService
}

// NewIncomeHandler creates a new IncomeHandler
func NewIncomeHandler(service *finance.IncomeService) *IncomeHandler {
	return &IncomeHandler{service: service}
}

func (h *IncomeHandler) List(c *gin.Context) {
	listInClub(&h.BaseHandler, c, h.service.List)
}

func (h *IncomeHandler) Get(c *gin.Context) {
	getInClub(&h.BaseHandler, c, h.service.Get)
}

func (h *IncomeHandler) Create(c *gin.Context) {
	createInClub(&h.BaseHandler, c, h.service.Create)
}

func (h *IncomeHandler) Update(c *gin.Context) {
	updateInClub(&h.BaseHandler, c, h.service.Update)
}

func (h *IncomeHandler) Delete(c *gin.Context) {
	deleteInClub(&h.BaseHandler, c, h.service.Delete)
}

// DebtHandler handles /deudas and their payments
type DebtHandler struct {
	BaseHandler
	service *finance.DebtService
}

// NewDebtHandler creates a new DebtHandler
func NewDebtHandler(service *finance.DebtService) *DebtHandler {
	return &DebtHandler{service: service}
}

func (h *DebtHandler) List(c *gin.Context) {
	listInClub(&h.BaseHandler, c, h.service.List)
}

func (h *DebtHandler) Get(c *gin.Context) {
	getInClub(&h.BaseHandler, c, h.service.Get)
}

func (h *DebtHandler) Create(c *gin.Context) {
	createInClub(&h.BaseHandler, c, h.service.Create)
}

// Update changes concept, notes or the original amount of a debt
func (h *DebtHandler) Update(c *gin.Context) {
	updateInClub(&h.BaseHandler, c, h.service.Update)
}

func (h *DebtHandler) Delete(c *gin.Context) {
	deleteInClub(&h.BaseHandler, c, h.service.Delete)
}

// RegisterPayment applies a partial payment. Amounts above what is still
// owed are rejected with 400.
func (h *DebtHandler) RegisterPayment(c *gin.Context) {
	clubID, ok := h.club(c)
	if !ok {
		return
	}
	debtID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req finance.RegisterPaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.service.RegisterPayment(c.Request.Context(), clubID, debtID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListPayments returns the payment history of a debt
func (h *DebtHandler) ListPayments(c *gin.Context) {
	getInClub(&h.BaseHandler, c, h.service.ListPayments)
}

// SummaryHandler handles /finanzas/resumen
type SummaryHandler struct {
	BaseHandler
	service *finance.SummaryService
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(service *finance.SummaryService) *SummaryHandler {
	return &SummaryHandler{service: service}
}

// Get returns the club's finance totals
func (h *SummaryHandler) Get(c *gin.Context) {
	clubID, ok := h.club(c)
	if !ok {
		return
	}
	summary, err := h.service.Summary(c.Request.Context(), clubID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
