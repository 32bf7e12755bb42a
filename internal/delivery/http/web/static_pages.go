package web

import (
	"go-jobboard-web/internal/domain"
	"go-jobboard-web/pkg/apperror"
	"net/http"

	"github.com/gin-gonic/gin"
)

// MsgContactSent confirms a contact form submission.
const MsgContactSent = "Thank you for your message! We'll get back to you soon."

func (h *Handler) About(c *gin.Context) {
	h.render(c, http.StatusOK, "about.html", gin.H{"Title": "About us"})
}

func (h *Handler) ContactForm(c *gin.Context) {
	h.render(c, http.StatusOK, "contact.html", gin.H{
		"Title": "Contact us",
		"Form":  &domain.ContactRequest{},
	})
}

func (h *Handler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	_ = c.ShouldBind(&req)

	if err := h.contactUC.SendContactMessage(c.Request.Context(), &req); err != nil {
		h.render(c, errorCode(err), "contact.html", gin.H{
			"Title": "Contact us",
			"Form":  &req,
			"Error": apperror.Message(err, "Failed to send message. Please try again later."),
		})
		return
	}
	h.render(c, http.StatusOK, "contact.html", gin.H{
		"Title":   "Contact us",
		"Form":    &domain.ContactRequest{},
		"Success": MsgContactSent,
	})
}
