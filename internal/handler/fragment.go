package handler

import (
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

// Acknowledgment texts shown by the contact form.
const (
	MsgSubmitted       = "Thank you for your message! We have received it successfully."
	MsgValidationError = "Validation error: "
	MsgServerError     = "Server error: Please try again later."
)

const fragmentName = "fragment"

// Alert and Redirect are emitted as JS string literals.
var fragmentTemplate = template.Must(template.New(fragmentName).Parse(
	`<script>alert({{.Alert}}); window.location.href = {{.Redirect}};</script>`,
))

type fragmentData struct {
	Alert    string
	Redirect string
}

// renderFragment writes the alert-and-redirect script used by the legacy
// contact form.
func renderFragment(c *gin.Context, status int, alert, redirect string) {
	c.Render(status, render.HTML{
		Template: fragmentTemplate,
		Name:     fragmentName,
		Data:     fragmentData{Alert: alert, Redirect: redirect},
	})
}
