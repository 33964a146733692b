package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/backend"
)

// AccountHandler fronts the register page: id availability check and
// account creation. Both paths are public.
type AccountHandler struct {
	be *backend.Client
}

func NewAccountHandler(be *backend.Client) *AccountHandler {
	return &AccountHandler{be: be}
}

// Check asks the backend whether a login id is still available.
func (h *AccountHandler) Check(c *gin.Context) {
	var req struct {
		ID string `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	available, err := h.be.CheckAccountID(c.Request.Context(), req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, gin.H{"available": available})
}

// Register creates a new account.
func (h *AccountHandler) Register(c *gin.Context) {
	var req backend.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.ID == "" || req.Password == "" || req.Name == "" {
		BadRequest(c, "id, password and name are required")
		return
	}
	if err := h.be.RegisterAccount(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}
	Created(c, nil)
}
