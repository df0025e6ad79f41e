package handlers

import (
	"net/http"

	"portfolio_api/internal/models"
	"portfolio_api/internal/service"

	"github.com/gin-gonic/gin"
)

// commentRequest has no approved field: submissions always start pending.
type commentRequest struct {
	ProjectID   int64  `json:"project_id" binding:"required,gt=0"`
	AuthorName  string `json:"author_name" binding:"required"`
	AuthorEmail string `json:"author_email" binding:"required,email"`
	Content     string `json:"content" binding:"required"`
	Rating      *int   `json:"rating" binding:"omitempty,min=1,max=5"`
}

type approvalRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

// @Summary List approved comments of a project
// @Tags comments
// @Produce json
// @Param projectId path int true "project id"
// @Success 200 {array} models.Comment
// @Router /api/comments/project/{projectId} [get]
func (h *Handler) listProjectComments(c *gin.Context) {
	projectID, err := pathID(c, "projectId")
	if err != nil {
		h.writeError(c, "comment_list_bad_id", err)
		return
	}
	out, err := h.services.Comments.ListApproved(c.Request.Context(), projectID)
	if err != nil {
		h.writeError(c, "comment_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary List all comments for moderation
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param approved query bool false "filter by approval state"
// @Success 200 {array} models.CommentWithProject
// @Router /api/comments/admin [get]
func (h *Handler) listAllComments(c *gin.Context) {
	approved, err := queryBool(c, "approved")
	if err != nil {
		h.writeError(c, "comment_admin_list_bad_query", err)
		return
	}
	out, err := h.services.Comments.ListAll(c.Request.Context(), models.CommentFilter{Approved: approved})
	if err != nil {
		h.writeError(c, "comment_admin_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Submit a comment for review
// @Tags comments
// @Accept json
// @Produce json
// @Param body body commentRequest true "comment"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/comments [post]
func (h *Handler) createComment(c *gin.Context) {
	var req commentRequest
	if ok := h.bindJSON(c, &req); !ok {
		return
	}
	cm, err := h.services.Comments.Create(c.Request.Context(), service.CommentInput{
		ProjectID:   req.ProjectID,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		Content:     req.Content,
		Rating:      req.Rating,
	})
	if err != nil {
		h.writeError(c, "comment_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "comment submitted; it will be published after review",
		"comment": cm,
	})
}

// @Summary Approve or reject a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "comment id"
// @Param body body approvalRequest true "approval"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/comments/{id}/approve [patch]
func (h *Handler) approveComment(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.writeError(c, "comment_approve_bad_id", err)
		return
	}
	var req approvalRequest
	if ok := h.bindJSON(c, &req); !ok {
		return
	}
	cm, err := h.services.Comments.SetApproval(c.Request.Context(), id, *req.Approved)
	if err != nil {
		h.writeError(c, "comment_approve_failed", err)
		return
	}
	msg := "comment rejected"
	if cm.Approved {
		msg = "comment approved"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "comment": cm})
}

// @Summary Delete a comment
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "comment id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/comments/{id} [delete]
func (h *Handler) deleteComment(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.writeError(c, "comment_delete_bad_id", err)
		return
	}
	cm, err := h.services.Comments.Delete(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "comment_delete_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted", "deleted": cm})
}
