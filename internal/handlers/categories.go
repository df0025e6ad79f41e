package handlers

import (
	"net/http"

	"portfolio_api/internal/service"

	"github.com/gin-gonic/gin"
)

type categoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Color       string  `json:"color" binding:"required"`
	Description *string `json:"description"`
}

func (r categoryRequest) input() service.CategoryInput {
	return service.CategoryInput{Name: r.Name, Color: r.Color, Description: r.Description}
}

// @Summary List categories with project counts
// @Tags categories
// @Produce json
// @Success 200 {array} models.CategoryWithCount
// @Router /api/categories [get]
func (h *Handler) listCategories(c *gin.Context) {
	out, err := h.services.Categories.List(c.Request.Context())
	if err != nil {
		h.writeError(c, "category_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path int true "category id"
// @Success 200 {object} models.Category
// @Failure 404 {object} map[string]string
// @Router /api/categories/{id} [get]
func (h *Handler) getCategory(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.writeError(c, "category_get_bad_id", err)
		return
	}
	cat, err := h.services.Categories.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "category_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body categoryRequest true "category"
// @Success 201 {object} models.Category
// @Failure 409 {object} map[string]string
// @Router /api/categories [post]
func (h *Handler) createCategory(c *gin.Context) {
	var req categoryRequest
	if ok := h.bindJSON(c, &req); !ok {
		return
	}
	cat, err := h.services.Categories.Create(c.Request.Context(), req.input())
	if err != nil {
		h.writeError(c, "category_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "category id"
// @Param body body categoryRequest true "category"
// @Success 200 {object} models.Category
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/categories/{id} [put]
func (h *Handler) updateCategory(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.writeError(c, "category_update_bad_id", err)
		return
	}
	var req categoryRequest
	if ok := h.bindJSON(c, &req); !ok {
		return
	}
	cat, err := h.services.Categories.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.writeError(c, "category_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// @Summary Delete an unused category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "category id"
// @Success 200 {object} map[string]any
// @Failure 409 {object} map[string]string
// @Router /api/categories/{id} [delete]
func (h *Handler) deleteCategory(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.writeError(c, "category_delete_bad_id", err)
		return
	}
	cat, err := h.services.Categories.Delete(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "category_delete_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted", "deleted": cat})
}
