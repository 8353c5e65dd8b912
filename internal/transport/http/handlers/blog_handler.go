package handlers

import (
	"net/http"

	"github.com/unais-08/blogs-fullstack/internal/service"
	"github.com/unais-08/blogs-fullstack/internal/transport/http/response"
	"github.com/unais-08/blogs-fullstack/pkg/validator"
)

type BlogHandler struct {
	blogService *service.BlogService
	errs        *response.Writer
}

func NewBlogHandler(blogService *service.BlogService, errs *response.Writer) *BlogHandler {
	return &BlogHandler{blogService: blogService, errs: errs}
}

func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}

	var input service.CreateBlogInput
	if err := decodeJSON(r, &input); err != nil {
		h.errs.Error(w, r, err)
		return
	}

	if err := validator.ValidateCreateBlog(input.Title, input.Content).Err(); err != nil {
		h.errs.Error(w, r, err)
		return
	}

	blog, err := h.blogService.Create(r.Context(), p.UserID, input)
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}

	response.Success(w, http.StatusCreated, blog)
}

func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, errs := validator.ValidateBlogID(r.PathValue("id"))
	if err := errs.Err(); err != nil {
		h.errs.Error(w, r, err)
		return
	}

	blog, err := h.blogService.Get(r.Context(), id)
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, blog)
}

func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogService.List(r.Context())
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, blogs)
}

func (h *BlogHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}

	blogs, err := h.blogService.ListByAuthor(r.Context(), p.UserID)
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, blogs)
}
