package service

import (
	"testing"

	"go-pos-dashboard/internal/model"
	"go-pos-dashboard/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCatalogService(db *gorm.DB) CatalogService {
	return NewCatalogService(
		repository.NewProductRepo(db),
		repository.NewCategoryRepo(db),
		repository.NewCustomerRepo(db),
		db,
		nil,
	)
}

func TestCreateProductRequiresKnownCategory(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	err := svc.CreateProduct(&model.Product{
		Name:         "Parle G 200g",
		CategoryID:   42,
		SellingPrice: 20,
		CostPrice:    16,
		Stock:        100,
	}, "pos1")
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))

	products, err := svc.GetAllProducts()
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	db := newTestDB(t)
	cat := seedCategory(t, db, "Biscuits")
	svc := newCatalogService(db)

	err := svc.CreateProduct(&model.Product{
		Name:         "Oreo Original",
		CategoryID:   cat.ID,
		SellingPrice: -10,
		CostPrice:    5,
		Stock:        10,
	}, "pos1")
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestRestock(t *testing.T) {
	db := newTestDB(t)
	cat := seedCategory(t, db, "Beverages")
	p := seedProduct(t, db, "Coca Cola 750ml", cat.ID, 45, 32, 12)
	svc := newCatalogService(db)

	require.NoError(t, svc.Restock(p.ID, 30, "pos1"))

	var after model.Product
	require.NoError(t, db.First(&after, "id = ?", p.ID).Error)
	assert.Equal(t, 42, after.Stock)
	assert.Equal(t, "pos1", after.UpdatedBy)
}

func TestRestockRejectsNonPositiveQuantity(t *testing.T) {
	db := newTestDB(t)
	cat := seedCategory(t, db, "Beverages")
	p := seedProduct(t, db, "Sprite 750ml", cat.ID, 45, 32, 12)
	svc := newCatalogService(db)

	for _, qty := range []int{0, -5} {
		err := svc.Restock(p.ID, qty, "pos1")
		require.Error(t, err)
		assert.Equal(t, KindValidation, KindOf(err))
	}

	var after model.Product
	require.NoError(t, db.First(&after, "id = ?", p.ID).Error)
	assert.Equal(t, 12, after.Stock)
}

func TestRestockUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	err := svc.Restock(uuid.New(), 10, "pos1")
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestUpdateProductNotFound(t *testing.T) {
	db := newTestDB(t)
	cat := seedCategory(t, db, "Beverages")
	svc := newCatalogService(db)

	_, err := svc.UpdateProduct(uuid.New(), &model.Product{
		Name:         "Ghost Product",
		CategoryID:   cat.ID,
		SellingPrice: 10,
		CostPrice:    5,
	}, "pos1")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestSearchStrategyDispatch(t *testing.T) {
	db := newTestDB(t)
	cat := seedCategory(t, db, "Stationery")
	seedProduct(t, db, "Apsara Pencil", cat.ID, 5, 3, 100)
	seedProduct(t, db, "Natraj Eraser", cat.ID, 3, 2, 100)
	seedProduct(t, db, "Apsara Sharpener", cat.ID, 4, 2, 100)
	svc := newCatalogService(db)

	linear, err := svc.SearchProducts("name", "aps", StrategyLinear)
	require.NoError(t, err)
	binary, err := svc.SearchProducts("name", "aps", StrategyBinary)
	require.NoError(t, err)

	require.Len(t, linear, 2)
	assert.ElementsMatch(t, linear, binary)

	// Empty strategy falls back to linear.
	fallback, err := svc.SearchProducts("name", "aps", "")
	require.NoError(t, err)
	assert.Equal(t, linear, fallback)

	_, err = svc.SearchProducts("name", "aps", "quantum")
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestAddCategoryDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	created, err := svc.AddCategory("  Dairy  ")
	require.NoError(t, err)
	assert.Equal(t, "Dairy", created.Name)

	_, err = svc.AddCategory("Dairy")
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))

	_, err = svc.AddCategory("   ")
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestRenameCategory(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	created, err := svc.AddCategory("Grocrey")
	require.NoError(t, err)
	other, err := svc.AddCategory("Dairy")
	require.NoError(t, err)

	require.NoError(t, svc.RenameCategory(created.ID, "Grocery"))

	categories, err := svc.ListCategories()
	require.NoError(t, err)
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"Grocery", "Dairy"}, names)

	// Renaming onto another category's name conflicts.
	err = svc.RenameCategory(created.ID, other.Name)
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))

	err = svc.RenameCategory(9999, "Whatever")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestRegisterCustomer(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	err := svc.RegisterCustomer(&model.Customer{Mobile: "9812345678", Name: "Asha Rao"}, "")
	require.NoError(t, err)

	got, err := svc.GetCustomer("9812345678")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", got.Name)
	assert.Zero(t, got.TotalVisits)
}

func TestRegisterCustomerInvalidMobile(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	// Indian numbers must be ten digits starting 6-9.
	for _, mobile := range []string{"1234567890", "98123", "98123456789", "abcdefghij"} {
		err := svc.RegisterCustomer(&model.Customer{Mobile: mobile, Name: "Bad Number"}, "IN")
		require.Error(t, err, mobile)
		assert.Equal(t, KindValidation, KindOf(err), mobile)
	}

	// The same digits can be fine under another country's rule.
	err := svc.RegisterCustomer(&model.Customer{Mobile: "1234567890", Name: "US Caller"}, "US")
	require.NoError(t, err)
}

func TestRegisterCustomerDuplicate(t *testing.T) {
	db := newTestDB(t)
	seedCustomer(t, db, "9812345678", "Asha Rao")
	svc := newCatalogService(db)

	err := svc.RegisterCustomer(&model.Customer{Mobile: "9812345678", Name: "Someone Else"}, "IN")
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestGetCustomerNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	_, err := svc.GetCustomer("9000000000")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}
