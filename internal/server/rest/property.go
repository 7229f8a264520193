package rest

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/dmarchuk/estatedesk/internal/common"
	"github.com/dmarchuk/estatedesk/internal/logging"
	"github.com/dmarchuk/estatedesk/internal/server/blob"
	"github.com/dmarchuk/estatedesk/internal/server/models"
	"github.com/dmarchuk/estatedesk/internal/server/services"
)

// PropertyHandler serves the catalog. Create and update take multipart
// forms so a listing image can ride along; the image is optional and an
// unusable upload is skipped rather than rejected.
type PropertyHandler struct {
	properties *services.PropertyService
	images     *blob.ImageStore
	logger     logging.Logger
}

func NewPropertyHandler(properties *services.PropertyService, images *blob.ImageStore, logger logging.Logger) *PropertyHandler {
	return &PropertyHandler{properties: properties, images: images, logger: logger}
}

func propertyJSON(p *models.Property) gin.H {
	return gin.H{
		"id":          p.ID,
		"name":        p.Name,
		"location":    p.Location,
		"price":       p.Price.String(),
		"rooms":       p.Rooms,
		"type":        p.Type,
		"description": p.Description,
		"image_key":   p.ImageKey,
	}
}

// propertyFromForm parses the multipart fields into a Property. Malformed
// numbers come back as ErrValidation, never a panic.
func propertyFromForm(c *gin.Context) (*models.Property, error) {
	price, err := decimal.NewFromString(c.PostForm("price"))
	if err != nil {
		return nil, fmt.Errorf("%w: price must be a number", common.ErrValidation)
	}

	rooms := 0
	if v := c.PostForm("rooms"); v != "" {
		rooms, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: rooms must be an integer", common.ErrValidation)
		}
	}

	return &models.Property{
		Name:        c.PostForm("name"),
		Location:    c.PostForm("location"),
		Price:       price,
		Rooms:       rooms,
		Type:        c.PostForm("type"),
		Description: c.PostForm("description"),
	}, nil
}

// storeImage uploads the form image when one was attached and returns its
// key. No file, or a file the store refuses, yields an empty key.
func (h *PropertyHandler) storeImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}

	return h.images.Store(c.Request.Context(), data, file.Filename)
}

func (h *PropertyHandler) Create(c *gin.Context) {
	p, err := propertyFromForm(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	key, err := h.storeImage(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	p.ImageKey = key

	id, err := h.properties.Create(c.Request.Context(), p)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	p.ID = id

	c.JSON(http.StatusCreated, propertyJSON(p))
}

func (h *PropertyHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, h.logger, fmt.Errorf("%w: invalid property id", common.ErrValidation))
		return
	}

	p, err := propertyFromForm(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	p.ID = id

	existing, err := h.properties.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	key, err := h.storeImage(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if key == "" {
		key = existing.ImageKey
	}
	p.ImageKey = key

	if err := h.properties.Update(c.Request.Context(), p); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, propertyJSON(p))
}

func (h *PropertyHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, h.logger, fmt.Errorf("%w: invalid property id", common.ErrValidation))
		return
	}

	if err := h.properties.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *PropertyHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, h.logger, fmt.Errorf("%w: invalid property id", common.ErrValidation))
		return
	}

	p, err := h.properties.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, propertyJSON(p))
}

func (h *PropertyHandler) List(c *gin.Context) {
	list, err := h.properties.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	out := make([]gin.H, 0, len(list))
	for _, p := range list {
		out = append(out, propertyJSON(p))
	}
	c.JSON(http.StatusOK, gin.H{"properties": out})
}
