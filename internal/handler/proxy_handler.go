package handler

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"baketrack-backend/internal/relay"
)

// ProxyHandler is the same-origin relay the browser uses to reach the
// spreadsheet endpoint. It exists to work around CORS and to translate the
// Apps Script failure modes into stable JSON error shapes.
type ProxyHandler struct {
	relay *relay.Client
}

func NewProxyHandler(relayClient *relay.Client) *ProxyHandler {
	return &ProxyHandler{relay: relayClient}
}

// Get relays GET /api/proxy?url=<target>. The target must be the fully
// qualified external URL, query string included.
func (h *ProxyHandler) Get(c *fiber.Ctx) error {
	target := c.Query("url")
	if target == "" {
		return c.Status(400).JSON(fiber.Map{"error": relay.MsgMissingTarget})
	}

	out := h.relay.Get(c.Context(), target)
	if out.Status == 200 {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(200).Send(out.JSON)
	}

	body := fiber.Map{"error": out.ErrMsg}
	if out.Raw != "" {
		body["raw"] = out.Raw
	}
	return c.Status(out.Status).JSON(body)
}

// Post relays a form write. The browser sends multipart form data; the
// Apps Script only accepts application/x-www-form-urlencoded, so the body
// is re-encoded here. The upstream body is never relayed back, only a
// success envelope.
func (h *ProxyHandler) Post(c *fiber.Ctx) error {
	target := c.Query("url")
	if target == "" {
		return c.Status(400).JSON(fiber.Map{"error": relay.MsgMissingTarget})
	}

	form := url.Values{}
	if mf, err := c.MultipartForm(); err == nil {
		for key, values := range mf.Value {
			for _, v := range values {
				form.Add(key, v)
			}
		}
	} else {
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			form.Add(string(key), string(value))
		})
	}

	if err := h.relay.PostForm(c.Context(), target, form); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": relay.MsgSubmitFailed})
	}
	return c.JSON(fiber.Map{"success": true})
}
