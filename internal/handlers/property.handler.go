package handlers

import (
	"io"
	"strings"

	"cleanhub/internal/app"
	propertyController "cleanhub/internal/controllers/property"
	"cleanhub/internal/handlers/middleware"
	. "cleanhub/internal/models"
	"cleanhub/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const IMAGES_FIELD = "images"

type PropertyHandler struct {
	Handler
	propertyController propertyController.PropertyControllerInterface
}

func NewPropertyHandler(app app.App, router fiber.Router) *PropertyHandler {
	return &PropertyHandler{
		propertyController: app.Controllers.Property,
		Handler:            newHandler(app, router, "property_handler"),
	}
}

func (h *PropertyHandler) Register() {
	property := h.router.Group("/property",
		h.middleware.RequireAuth(),
		h.middleware.RequireRole(RoleHomeOwner, RolePropertyManager),
	)

	property.Get("", h.list)
	property.Post("/:id/images", h.uploadImages)
}

func (h *PropertyHandler) list(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return unauthorized(c)
	}

	properties, err := h.propertyController.List(c.UserContext(), user)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"properties": properties,
	})
}

// uploadImages takes multipart "images" files or {"images": [dataURL, ...]}.
func (h *PropertyHandler) uploadImages(c *fiber.Ctx) error {
	log := h.log.Function("uploadImages").TraceFromContext(c.UserContext())

	user, ok := middleware.GetUser(c)
	if !ok {
		return unauthorized(c)
	}

	propertyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid property id.")
	}

	var images [][]byte
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		images, err = readMultipartImages(c)
	} else {
		images, err = readEncodedImages(c)
	}
	if err != nil {
		log.Info("unreadable image payload", "error", err, "propertyID", propertyID)
		return badRequest(c, "Invalid image data.")
	}

	property, err := h.propertyController.UploadImages(c.UserContext(), user, propertyID, images)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"property": property,
	})
}

func readMultipartImages(c *fiber.Ctx) ([][]byte, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	files := form.File[IMAGES_FIELD]
	images := make([][]byte, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			return nil, err
		}

		data, err := io.ReadAll(file)
		_ = file.Close()
		if err != nil {
			return nil, err
		}

		images = append(images, data)
	}

	return images, nil
}

func readEncodedImages(c *fiber.Ctx) ([][]byte, error) {
	var body struct {
		Images []string `json:"images"`
	}
	if err := c.BodyParser(&body); err != nil {
		return nil, err
	}

	images := make([][]byte, 0, len(body.Images))
	for _, encoded := range body.Images {
		data, err := services.DecodeDataURL(encoded)
		if err != nil {
			return nil, err
		}
		images = append(images, data)
	}

	return images, nil
}
