package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"itemshare/internal/domain"
	"itemshare/internal/service"
)

const userKey = "itemshare.user"

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	items     service.ItemService
	transfers service.TransferService
	logger    logrus.FieldLogger
}

func NewHandler(users service.UserService, items service.ItemService, transfers service.TransferService, logger logrus.FieldLogger) *Handler {
	return &Handler{
		users:     users,
		items:     items,
		transfers: transfers,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	router.POST("/registration", h.register)
	router.POST("/login", h.login)
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	authed := router.Group("/", h.requireAuth())
	{
		authed.GET("/items", h.listItems)
		authed.POST("/items/new", h.createItem)
		authed.GET("/items/:id", h.getItem)
		authed.DELETE("/items/:id", h.deleteItem)
		authed.POST("/items/:id/send", h.sendItem)
		authed.POST("/items/:id/receive", h.receiveItem)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requireAuth is the single authorization gate. It accepts the token as an
// Authorization bearer header or as a ?token= parameter for query-style
// clients.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		user, err := h.users.ResolveToken(c.Request.Context(), token)
		if err != nil {
			h.writeError(c, err)
			c.Abort()
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return c.Query("token")
}

func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}

// writeError maps every failure kind to a transport status exactly once.
// Anything outside the taxonomy is an internal fault: logged in full, but
// surfaced without detail.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	default:
		h.logger.WithError(err).Errorf("%s %s failed", c.Request.Method, c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}

type credentialsRequest struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, domain.ErrInvalidInput)
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.User, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"id": user.ID})
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, domain.ErrInvalidInput)
		return
	}

	token, err := h.users.Login(c.Request.Context(), req.User, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

type createItemRequest struct {
	Data string `json:"data"`
}

func (h *Handler) createItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, domain.ErrInvalidInput)
		return
	}

	item, err := h.items.CreateItem(c.Request.Context(), currentUser(c).ID, req.Data)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, itemToResponse(*item))
}

func (h *Handler) listItems(c *gin.Context) {
	offset, err := intQuery(c, "offset", 0)
	if err != nil {
		h.writeError(c, err)
		return
	}
	limit, err := intQuery(c, "limit", service.DefaultListLimit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	items, err := h.items.ListItems(c.Request.Context(), currentUser(c).ID, offset, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]ItemResponse, len(items))
	for i := range items {
		resp[i] = itemToResponse(items[i])
	}
	c.JSON(http.StatusOK, gin.H{"items": resp})
}

func (h *Handler) getItem(c *gin.Context) {
	id, err := itemID(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	item, err := h.items.GetItem(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, itemToResponse(*item))
}

func (h *Handler) deleteItem(c *gin.Context) {
	id, err := itemID(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if err := h.items.DeleteItem(c.Request.Context(), currentUser(c).ID, id); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"deleted": id})
}

type sendItemRequest struct {
	User string `json:"user"`
}

func (h *Handler) sendItem(c *gin.Context) {
	id, err := itemID(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	var req sendItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, domain.ErrInvalidInput)
		return
	}

	offer, err := h.transfers.Offer(c.Request.Context(), currentUser(c).ID, id, req.User)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": offer.ItemID, "link": offer.Link})
}

type receiveItemRequest struct {
	Link string `json:"link"`
}

func (h *Handler) receiveItem(c *gin.Context) {
	id, err := itemID(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	var req receiveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, domain.ErrInvalidInput)
		return
	}

	if err := h.transfers.Complete(c.Request.Context(), currentUser(c).ID, id, req.Link); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "item successfully received"})
}

type ItemResponse struct {
	ID   int64  `json:"id"`
	Data string `json:"data"`
}

func itemToResponse(item domain.Item) ItemResponse {
	return ItemResponse{
		ID:   item.ID,
		Data: item.Payload,
	}
}

func itemID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return id, nil
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, domain.ErrInvalidInput
	}
	return v, nil
}
