package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"portfolio_api/internal/errs"
	"portfolio_api/internal/models"
	"portfolio_api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// technologyList accepts either a JSON array of strings or a single
// comma-separated string.
type technologyList []string

func (t *technologyList) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*t = list
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = []string{s}
		return nil
	}
	return &fieldError{field: "technologies", reason: "expected a string or a list of strings"}
}

type projectRequest struct {
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Technologies technologyList `json:"technologies"`
	GithubURL    *string        `json:"github_url"`
	DemoURL      *string        `json:"demo_url"`
	Category     string         `json:"category"`
	Featured     bool           `json:"featured"`
}

func (r projectRequest) input() service.ProjectInput {
	return service.ProjectInput{
		Title:        r.Title,
		Description:  r.Description,
		Technologies: r.Technologies,
		GithubURL:    r.GithubURL,
		DemoURL:      r.DemoURL,
		Category:     r.Category,
		Featured:     r.Featured,
	}
}

// @Summary List projects
// @Tags projects
// @Produce json
// @Param category query string false "category name"
// @Param featured query bool false "featured flag"
// @Success 200 {array} models.Project
// @Failure 400 {object} map[string]string
// @Router /api/projects [get]
func (h *Handler) listProjects(c *gin.Context) {
	featured, err := queryBool(c, "featured")
	if err != nil {
		h.writeError(c, "project_list_bad_query", err)
		return
	}
	filter := models.ProjectFilter{Category: queryString(c, "category"), Featured: featured}

	out, err := h.services.Projects.List(c.Request.Context(), filter)
	if err != nil {
		h.writeError(c, "project_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path int true "project id"
// @Success 200 {object} models.Project
// @Failure 404 {object} map[string]string
// @Router /api/projects/{id} [get]
func (h *Handler) getProject(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.writeError(c, "project_get_bad_id", err)
		return
	}
	p, err := h.services.Projects.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "project_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Create a project
// @Description Accepts multipart/form-data (with optional "image") or JSON.
// @Tags projects
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Project
// @Failure 400 {object} map[string]string
// @Router /api/projects [post]
func (h *Handler) createProject(c *gin.Context) {
	in, img, ok := h.readProject(c)
	if !ok {
		return
	}

	p, err := h.services.Projects.Create(c.Request.Context(), in)
	if err != nil {
		h.discard(img)
		h.writeError(c, "project_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary Replace a project
// @Description The stored image is kept when no new image is uploaded.
// @Tags projects
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "project id"
// @Success 200 {object} models.Project
// @Failure 404 {object} map[string]string
// @Router /api/projects/{id} [put]
func (h *Handler) updateProject(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.writeError(c, "project_update_bad_id", err)
		return
	}
	in, img, ok := h.readProject(c)
	if !ok {
		return
	}

	p, err := h.services.Projects.Update(c.Request.Context(), id, in)
	if err != nil {
		h.discard(img)
		h.writeError(c, "project_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Delete a project and its comments
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "project id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/projects/{id} [delete]
func (h *Handler) deleteProject(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.writeError(c, "project_delete_bad_id", err)
		return
	}
	p, err := h.services.Projects.Delete(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "project_delete_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "project deleted", "deleted": p})
}

// readProject decodes a project payload from JSON or multipart form data and
// stores the uploaded image, if any. It writes the error response itself.
func (h *Handler) readProject(c *gin.Context) (service.ProjectInput, *storedImage, bool) {
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		var req projectRequest
		if ok := h.bindJSON(c, &req); !ok {
			return service.ProjectInput{}, nil, false
		}
		return req.input(), nil, true
	}

	h.limitBody(c)
	if err := c.Request.ParseMultipartForm(h.maxUploadBytes); err != nil {
		h.writeError(c, "project_bad_form", uploadError(err))
		return service.ProjectInput{}, nil, false
	}

	featured := false
	if raw := strings.TrimSpace(c.PostForm("featured")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			h.writeError(c, "project_bad_form", errs.InvalidField("featured", "must be true or false"))
			return service.ProjectInput{}, nil, false
		}
		featured = v
	}

	in := service.ProjectInput{
		Title:        c.PostForm("title"),
		Description:  c.PostForm("description"),
		Technologies: c.PostFormArray("technologies"),
		GithubURL:    formValue(c, "github_url"),
		DemoURL:      formValue(c, "demo_url"),
		Category:     c.PostForm("category"),
		Featured:     featured,
	}

	img, err := h.saveImage(c)
	if err != nil {
		h.writeError(c, "project_image_rejected", err)
		return service.ProjectInput{}, nil, false
	}
	if img != nil {
		in.ImageURL = &img.URL
	}
	return in, img, true
}

func formValue(c *gin.Context, key string) *string {
	v, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	return &v
}
