package handler

import (
	"go-pos-dashboard/internal/model"
	"go-pos-dashboard/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

func (h *CatalogHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

// SearchProducts runs a prefix search with the chosen strategy.
// GET /api/v1/products/search?key=name&q=co&strategy=binary
func (h *CatalogHandler) SearchProducts(c *fiber.Ctx) error {
	key := c.Query("key", "name")
	query := c.Query("q")
	strategy := c.Query("strategy", "linear")

	results, err := h.service.SearchProducts(key, query, strategy)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(results)
}

func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateProduct(&product, actingUsername(c)); err != nil {
		return serviceError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateProduct(productID, &product, actingUsername(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product updated", "data": updated})
}

// RestockRequest represents the restock request body
type RestockRequest struct {
	Quantity int `json:"quantity"`
}

// Restock adds stock to a product (admin only)
// POST /api/v1/products/:id/restock
func (h *CatalogHandler) Restock(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req RestockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.Restock(productID, req.Quantity, actingUsername(c)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product restocked"})
}

// CategoryRequest represents category add/rename bodies
type CategoryRequest struct {
	Name string `json:"name"`
}

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(categories)
}

func (h *CatalogHandler) AddCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	category, err := h.service.AddCategory(req.Name)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Category created", "data": category})
}

func (h *CatalogHandler) RenameCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.RenameCategory(uint(id), req.Name); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category renamed"})
}

func (h *CatalogHandler) RegisterCustomer(c *fiber.Ctx) error {
	var customer model.Customer
	if err := c.BodyParser(&customer); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.RegisterCustomer(&customer, c.Query("country", "IN")); err != nil {
		return serviceError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Customer registered", "data": customer})
}

func (h *CatalogHandler) GetCustomer(c *fiber.Ctx) error {
	customer, err := h.service.GetCustomer(c.Params("mobile"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(customer)
}

func (h *CatalogHandler) ListCustomers(c *fiber.Ctx) error {
	customers, err := h.service.ListCustomers()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(customers)
}
