package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sustainaByte/orghub/internal/models"
	"github.com/sustainaByte/orghub/internal/services/auth"
	"github.com/sustainaByte/orghub/internal/services/posts"
)

type PostsHandler struct {
	posts *posts.Service
}

func NewPostsHandler(postService *posts.Service) *PostsHandler {
	return &PostsHandler{posts: postService}
}

func (h *PostsHandler) Create(c *fiber.Ctx) error {
	var req models.CreatePostRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	post, err := h.posts.Create(c.Context(), auth.GetPrincipal(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostsHandler) List(c *fiber.Ctx) error {
	list, err := h.posts.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

func (h *PostsHandler) Get(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	post, err := h.posts.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

func (h *PostsHandler) ToggleKudos(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	post, err := h.posts.ToggleKudos(c.Context(), auth.GetPrincipal(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

func (h *PostsHandler) AddComment(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.AddCommentRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	post, err := h.posts.AddComment(c.Context(), auth.GetPrincipal(c), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// AttachPhoto stores the raw request body as the post's photo.
func (h *PostsHandler) AttachPhoto(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	contentType := c.Get(fiber.HeaderContentType)
	if err := h.posts.AttachPhoto(c.Context(), auth.GetPrincipal(c), id, c.Body(), contentType); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Photo serves the stored photo bytes with their original content type.
func (h *PostsHandler) Photo(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	data, contentType, err := h.posts.Photo(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if contentType != "" {
		c.Set(fiber.HeaderContentType, contentType)
	}
	return c.Send(data)
}
