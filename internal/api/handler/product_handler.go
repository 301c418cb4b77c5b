package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/inventory-system/internal/api/metrics"
	"github.com/99minutos/inventory-system/internal/core/domain"
	"github.com/99minutos/inventory-system/internal/core/ports"
	"github.com/99minutos/inventory-system/internal/core/service"
)

type ProductHandler struct {
	products ports.ProductService
}

func NewProductHandler(products ports.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// Create adds one product, or several when the body is a JSON array.
//
// @Summary      Add products
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product, or an array of products"
// @Success      201   {object}  createdResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var raw json.RawMessage
	if err := c.Bind(&raw); err != nil {
		return domain.InvalidInput("invalid payload")
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return domain.InvalidInput("request body is required")
	}

	ctx := c.Request().Context()

	if raw[0] == '[' {
		var reqs []productRequest
		if err := json.Unmarshal(raw, &reqs); err != nil {
			return domain.InvalidInput("invalid payload")
		}
		products := make([]domain.Product, 0, len(reqs))
		for i := range reqs {
			if err := c.Validate(&reqs[i]); err != nil {
				return err
			}
			products = append(products, reqs[i].toDomain())
		}

		ids, err := h.products.CreateMany(ctx, products)
		if err != nil {
			return err
		}
		metrics.ProductWritesTotal.WithLabelValues("create").Add(float64(len(ids)))
		return c.JSON(http.StatusCreated, createdResponse{Message: "Products added", IDs: ids})
	}

	var req productRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return domain.InvalidInput("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	id, err := h.products.Create(ctx, req.toDomain())
	if err != nil {
		return err
	}
	metrics.ProductWritesTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, createdResponse{Message: "Product added", ID: id})
}

// List returns every product.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Product
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.products.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// ByCategory returns the products of one category.
//
// @Summary      Products by category
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        category  path  string  true  "Category"
// @Success      200  {array}  domain.Product
// @Router       /products/category/{category} [get]
func (h *ProductHandler) ByCategory(c echo.Context) error {
	products, err := h.products.ByCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// ByPriceRange returns products priced within [min, max].
//
// @Summary      Products by price range
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        min  query  number  false  "Lower bound (default 0)"
// @Param        max  query  number  false  "Upper bound (default 10000)"
// @Success      200  {array}   domain.Product
// @Failure      400  {object}  map[string]string
// @Router       /products/price [get]
func (h *ProductHandler) ByPriceRange(c echo.Context) error {
	lo, hi := service.DefaultMinPrice, service.DefaultMaxPrice
	err := echo.QueryParamsBinder(c).
		Float64("min", &lo).
		Float64("max", &hi).
		BindError()
	if err != nil {
		return queryError(err)
	}

	products, err := h.products.ByPriceRange(c.Request().Context(), lo, hi)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Search matches product names containing q, ignoring case.
//
// @Summary      Search products by name
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        q  query  string  true  "Keyword"
// @Success      200  {array}  domain.Product
// @Router       /products/search [get]
func (h *ProductHandler) Search(c echo.Context) error {
	products, err := h.products.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Paginated returns one page of products.
//
// @Summary      Paginated products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "Page, 1-based (default 1)"
// @Param        limit  query  int  false  "Page size, 1..100 (default 10)"
// @Success      200  {array}   domain.Product
// @Failure      400  {object}  map[string]string
// @Router       /products/paginated [get]
func (h *ProductHandler) Paginated(c echo.Context) error {
	page, limit := 1, service.DefaultPageLimit
	err := echo.QueryParamsBinder(c).
		Int("page", &page).
		Int("limit", &limit).
		BindError()
	if err != nil {
		return queryError(err)
	}

	products, err := h.products.Page(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// LowStock returns products whose stock is below threshold.
//
// @Summary      Low-stock products
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        threshold  query  int  false  "Stock threshold (default 10)"
// @Success      200  {array}   domain.Product
// @Failure      400  {object}  map[string]string
// @Router       /products/low-stock [get]
func (h *ProductHandler) LowStock(c echo.Context) error {
	threshold := service.DefaultStockThreshold
	if err := echo.QueryParamsBinder(c).Int("threshold", &threshold).BindError(); err != nil {
		return queryError(err)
	}

	products, err := h.products.LowStock(c.Request().Context(), threshold)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Update applies a partial update to one product.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Product ID"
// @Param        body  body      productPatchRequest  true  "Fields to change"
// @Success      200   {object}  updatedResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /products/{id} [patch]
func (h *ProductHandler) Update(c echo.Context) error {
	var req productPatchRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	modified, err := h.products.Update(c.Request().Context(), c.Param("id"), req.toDomain())
	if err != nil {
		return err
	}
	metrics.ProductWritesTotal.WithLabelValues("update").Add(float64(modified))
	return c.JSON(http.StatusOK, updatedResponse{Message: "Product updated", ModifiedCount: modified})
}

// Delete removes one product.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  deletedResponse
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	deleted, err := h.products.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	metrics.ProductWritesTotal.WithLabelValues("delete").Add(float64(deleted))
	return c.JSON(http.StatusOK, deletedResponse{Message: "Product deleted", DeletedCount: deleted})
}

// SetupIndexes creates the product collection indexes.
//
// @Summary      Create product indexes
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Router       /setup-indexes [get]
func (h *ProductHandler) SetupIndexes(c echo.Context) error {
	if err := h.products.SetupIndexes(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Indexes created"})
}

// queryError turns a query binding failure into an InvalidInput error naming
// the offending parameter.
func queryError(err error) error {
	var be *echo.BindingError
	if errors.As(err, &be) {
		return domain.InvalidInput("query parameter %s must be numeric", be.Field)
	}
	return domain.InvalidInput("invalid query parameters")
}
