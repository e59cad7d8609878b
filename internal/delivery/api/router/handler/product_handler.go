package handler

import (
	"math"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"inventory/internal/delivery/api/response"
	"inventory/internal/domain/entity"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/errors"
	"inventory/internal/infra/metrics"
	"inventory/internal/usecase"

	"github.com/labstack/echo/v4"
)

const imageFormField = "image"

// ProductHandler holds dependencies for product handlers.
type ProductHandler struct {
	uc      usecase.ProductUsecase
	metrics *metrics.Metrics
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.ProductUsecase, metrics *metrics.Metrics) *ProductHandler {
	return &ProductHandler{uc: uc, metrics: metrics}
}

// Create handles a multipart product creation with an optional image.
func (h *ProductHandler) Create(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product form")
	}

	input := usecase.CreateProductInput{}
	if input.Name, err = requiredField(form, "name"); err != nil {
		return err
	}
	if input.Description, err = requiredField(form, "description"); err != nil {
		return err
	}

	price, err := requiredField(form, "price")
	if err != nil {
		return err
	}
	if input.Price, err = parsePrice(price); err != nil {
		return err
	}

	quantity, err := requiredField(form, "quantity")
	if err != nil {
		return err
	}
	if input.Quantity, err = parseQuantity(quantity); err != nil {
		return err
	}

	image, closeImage, err := imageUpload(c)
	if err != nil {
		return err
	}
	defer closeImage()
	input.Image = image

	product, err := h.uc.Create(c.Request().Context(), input)
	h.metrics.ObserveProduct("create", err)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newProductView(product))
}

// List returns every product ordered by ID.
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newProductViews(products))
}

// Get returns a single product.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	product, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newProductView(product))
}

// Update applies the form fields that are present in the request. Absent fields keep
// their stored values; a present field is applied even when it is the zero value.
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	form, err := c.FormParams()
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product form")
	}

	var patch entity.ProductPatch
	if v, ok := optionalField(form, "name"); ok {
		patch.Name = entity.Some(v)
	}
	if v, ok := optionalField(form, "description"); ok {
		patch.Description = entity.Some(v)
	}
	if v, ok := optionalField(form, "price"); ok {
		price, err := parsePrice(v)
		if err != nil {
			return err
		}
		patch.Price = entity.Some(price)
	}
	if v, ok := optionalField(form, "quantity"); ok {
		quantity, err := parseQuantity(v)
		if err != nil {
			return err
		}
		patch.Quantity = entity.Some(quantity)
	}

	image, closeImage, err := imageUpload(c)
	if err != nil {
		return err
	}
	defer closeImage()

	product, err := h.uc.Update(c.Request().Context(), id, usecase.UpdateProductInput{
		Patch: patch,
		Image: image,
	})
	h.metrics.ObserveProduct("update", err)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newProductView(product))
}

// Delete removes a product.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	err = h.uc.Delete(c.Request().Context(), id)
	h.metrics.ObserveProduct("delete", err)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "Product deleted")
}

func productID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("id must be a positive integer"))
	}

	return id, nil
}

func requiredField(form url.Values, name string) (string, error) {
	v, ok := optionalField(form, name)
	if !ok {
		return "", errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(name + " is required"))
	}

	return v, nil
}

// optionalField reports a field as present whenever its key was sent, even with an empty value.
func optionalField(form url.Values, name string) (string, bool) {
	values, ok := form[name]
	if !ok || len(values) == 0 {
		return "", false
	}

	return values[0], true
}

func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("price must be a number"))
	}

	return price, nil
}

func parseQuantity(raw string) (int, error) {
	quantity, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("quantity must be an integer"))
	}

	return quantity, nil
}

// imageUpload returns the uploaded image, or nil when the request carries none.
// The returned close function is always safe to call.
func imageUpload(c echo.Context) (*usecase.ImageUpload, func(), error) {
	noop := func() {}

	fileHeader, err := c.FormFile(imageFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}

		return nil, noop, errors.WithStack(domainerrors.ErrInvalidImage.WithDetails("malformed image upload"))
	}

	// An empty file part is how browsers submit an untouched file input.
	if fileHeader.Filename == "" && fileHeader.Size == 0 {
		return nil, noop, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, noop, errors.Wrap(err, "failed to open uploaded image")
	}

	return &usecase.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: contentTypeOf(fileHeader),
		Size:        fileHeader.Size,
		Content:     file,
	}, func() { _ = file.Close() }, nil
}

func contentTypeOf(fileHeader *multipart.FileHeader) string {
	return fileHeader.Header.Get(echo.HeaderContentType)
}
