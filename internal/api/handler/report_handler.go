package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// TotalValue reports Σ price*quantity over the inventory.
//
// @Summary      Total inventory value
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  totalValueResponse
// @Router       /products/total-value [get]
func (h *ProductHandler) TotalValue(c echo.Context) error {
	total, err := h.products.TotalValue(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, totalValueResponse{TotalInventoryValue: total})
}

// CategoryCount reports the number of products per category.
//
// @Summary      Products per category
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.CategoryCount
// @Router       /products/category-count [get]
func (h *ProductHandler) CategoryCount(c echo.Context) error {
	counts, err := h.products.CategoryCounts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, counts)
}

// AveragePrice reports the mean price per category.
//
// @Summary      Average price per category
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.CategoryAveragePrice
// @Router       /products/average-price [get]
func (h *ProductHandler) AveragePrice(c echo.Context) error {
	avgs, err := h.products.AveragePrices(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, avgs)
}

// TopSelling ranks product names by summed sales.
//
// @Summary      Top-selling products
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.ProductSales
// @Router       /products/top-selling [get]
func (h *ProductHandler) TopSelling(c echo.Context) error {
	ranking, err := h.products.TopSelling(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ranking)
}

// GroupByCategory lists every product grouped under its category.
//
// @Summary      Products grouped by category
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.CategoryGroup
// @Router       /products/group-by-category [get]
func (h *ProductHandler) GroupByCategory(c echo.Context) error {
	groups, err := h.products.GroupByCategory(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, groups)
}
