package webshell

import (
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/labmall/storefront/internal/client"
	"github.com/labmall/storefront/internal/domain"
	"github.com/labmall/storefront/internal/logging"
	"github.com/labmall/storefront/internal/shell"
	"github.com/labmall/storefront/internal/views"
)

type Handler struct {
	shell *shell.Shell
	notes *shell.Notifications
}

func NewHandler(sh *shell.Shell, notes *shell.Notifications) *Handler {
	return &Handler{shell: sh, notes: notes}
}

// Register attaches shell routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/state", h.state)
	rg.GET("/notifications", h.notifications)
	rg.POST("/sms", h.sendSMS)
	rg.POST("/login", h.login)
	rg.POST("/logout", h.logout)
	rg.POST("/navigate", h.navigate)
	rg.POST("/modal/:name/close", h.closeModal)

	rg.POST("/booking/submit", h.submitBooking)
	rg.POST("/booking/quote", h.quote)
	rg.POST("/booking/:project_id", h.openBooking)
	rg.POST("/payment/submit", h.submitPayment)
	rg.POST("/payment/:order_id", h.openPayment)
	rg.POST("/review/submit", h.submitReview)
	rg.POST("/review/:order_id", h.openReview)
	rg.POST("/invoice/submit", h.submitInvoice)
	rg.POST("/invoice/:order_id", h.openInvoice)
	rg.POST("/profile", h.openProfile)
	rg.POST("/profile/submit", h.submitProfile)
}

// RegisterViews attaches read-only view routes.
func (h *Handler) RegisterViews(rg *gin.RouterGroup) {
	rg.GET("", h.listViews)
	rg.GET("/:name", h.view)
}

func (h *Handler) state(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "state": h.shell.State()})
}

func (h *Handler) notifications(c *gin.Context) {
	items := []client.Notification{}
	if h.notes != nil {
		items = h.notes.Drain()
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "notifications": items})
}

type smsReq struct {
	Phone string `json:"phone"`
}

func (h *Handler) sendSMS(c *gin.Context) {
	var req smsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	devCode, err := h.shell.SendSMS(c.Request.Context(), req.Phone)
	if err != nil {
		h.fail(c, "send_sms", err)
		return
	}

	resp := gin.H{"ok": true}
	if devCode != "" {
		resp["dev_code"] = devCode
	}
	c.JSON(http.StatusOK, resp)
}

type loginReq struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	user, err := h.shell.Login(c.Request.Context(), req.Phone, req.Code)
	if err != nil {
		h.fail(c, "login", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": user})
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.shell.Logout(c.Request.Context()); err != nil {
		h.fail(c, "logout", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type navigateReq struct {
	View       string `json:"view"`
	ID         int64  `json:"id,omitempty"`
	Page       int    `json:"page,omitempty"`
	Status     string `json:"status,omitempty"`
	CategoryID int64  `json:"category_id,omitempty"`
	Keyword    string `json:"keyword,omitempty"`
}

func (h *Handler) navigate(c *gin.Context) {
	var req navigateReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.View) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	h.render(c, strings.TrimSpace(req.View), views.Params{
		ID:         req.ID,
		Page:       req.Page,
		Status:     req.Status,
		CategoryID: req.CategoryID,
		Keyword:    req.Keyword,
	})
}

func (h *Handler) closeModal(c *gin.Context) {
	h.shell.CloseModal(c.Param("name"))
	c.JSON(http.StatusOK, gin.H{"ok": true, "state": h.shell.State()})
}

func (h *Handler) openBooking(c *gin.Context) {
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	form, err := h.shell.OpenBooking(c.Request.Context(), projectID)
	if err != nil {
		h.fail(c, "open_booking", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "booking": form})
}

func (h *Handler) submitBooking(c *gin.Context) {
	var req shell.BookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	order, err := h.shell.SubmitBooking(c.Request.Context(), req)
	if err != nil {
		if order != nil && !client.IsUnauthorized(err) {
			// The order exists; only opening the payment dialog failed.
			c.JSON(http.StatusCreated, gin.H{"ok": true, "order": order, "payment_error": err.Error()})
			return
		}
		h.fail(c, "submit_booking", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "order": order, "state": h.shell.State()})
}

func (h *Handler) quote(c *gin.Context) {
	var req shell.BookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	q, err := h.shell.Quote(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "quote", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "quote": q})
}

func (h *Handler) openPayment(c *gin.Context) {
	orderID, ok := pathID(c, "order_id")
	if !ok {
		return
	}

	if err := h.shell.OpenPaymentFor(c.Request.Context(), orderID); err != nil {
		h.fail(c, "open_payment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "payment": h.shell.State().Payment})
}

type paymentReq struct {
	Method string `json:"method"`
}

func (h *Handler) submitPayment(c *gin.Context) {
	var req paymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	out, err := h.shell.SubmitPayment(c.Request.Context(), req.Method)
	if err != nil {
		h.fail(c, "submit_payment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "payment": out})
}

func (h *Handler) openReview(c *gin.Context) {
	orderID, ok := pathID(c, "order_id")
	if !ok {
		return
	}

	if err := h.shell.OpenReviewFor(c.Request.Context(), orderID); err != nil {
		h.fail(c, "open_review", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "review": h.shell.State().Review})
}

type reviewReq struct {
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}

func (h *Handler) submitReview(c *gin.Context) {
	var req reviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	if err := h.shell.SubmitReview(c.Request.Context(), req.Rating, req.Content); err != nil {
		h.fail(c, "submit_review", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) openInvoice(c *gin.Context) {
	orderID, ok := pathID(c, "order_id")
	if !ok {
		return
	}

	if err := h.shell.OpenInvoiceFor(c.Request.Context(), orderID); err != nil {
		h.fail(c, "open_invoice", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "invoice": h.shell.State().Invoice})
}

func (h *Handler) submitInvoice(c *gin.Context) {
	var req shell.InvoiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	if err := h.shell.SubmitInvoice(c.Request.Context(), req); err != nil {
		h.fail(c, "submit_invoice", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) openProfile(c *gin.Context) {
	if err := h.shell.OpenProfile(); err != nil {
		h.fail(c, "open_profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "profile": h.shell.State().Profile})
}

func (h *Handler) submitProfile(c *gin.Context) {
	var req domain.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	user, err := h.shell.SubmitProfile(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "submit_profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": user})
}

func (h *Handler) listViews(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "views": views.Names()})
}

func (h *Handler) view(c *gin.Context) {
	var p views.Params
	var err error
	if p.ID, err = queryInt64(c, "id"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid id"})
		return
	}
	if p.CategoryID, err = queryInt64(c, "category_id"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid category_id"})
		return
	}
	page, err := queryInt64(c, "page")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid page"})
		return
	}
	p.Page = int(page)
	p.Status = c.Query("status")
	p.Keyword = c.Query("keyword")

	h.render(c, c.Param("name"), p)
}

// render navigates to a view and returns whatever it holds afterwards. A
// failed load still returns the view's previous contents.
func (h *Handler) render(c *gin.Context, name string, p views.Params) {
	if name != views.NameLogin && !slices.Contains(views.Names(), name) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "unknown view"})
		return
	}

	data, err := h.shell.Navigate(c.Request.Context(), name, p)
	if err != nil {
		h.fail(c, "view_"+name, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "view": name, "data": data, "state": h.shell.State()})
}

// fail maps shell and pipeline errors onto HTTP responses. The pipeline has
// already queued a user-facing notification for most of them.
func (h *Handler) fail(c *gin.Context, op string, err error) {
	var ve *shell.ValidationError
	var se *client.StatusError
	var te *client.TransportError

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": ve.Message, "field": ve.Field})
	case errors.Is(err, shell.ErrLoginRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "login required"})
	case client.IsUnauthorized(err):
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "session expired"})
	case errors.Is(err, shell.ErrDialogClosed):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, views.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	default:
		if be, ok := client.AsBusiness(err); ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": be.Message, "code": be.Code})
			return
		}
		if errors.As(err, &se) || errors.As(err, &te) || errors.Is(err, client.ErrMalformedEnvelope) {
			c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
			return
		}
		logging.NewLogger(c.Request.Context()).LogError(op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func queryInt64(c *gin.Context, key string) (int64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}
