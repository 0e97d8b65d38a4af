package service

import (
	"context"
	"testing"

	"github.com/AatishKamble/swapify/internal/domain"
	"github.com/AatishKamble/swapify/internal/dto"
	"github.com/AatishKamble/swapify/internal/repository"
	"github.com/AatishKamble/swapify/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ptr[T any](v T) *T {
	return &v
}

type ProductServiceTestSuite struct {
	suite.Suite
	ctx context.Context
	db  *memoryDB
	svc ProductService
}

func (s *ProductServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = newMemoryDB()
	s.svc = CreateProductService(s.db, s.db)
}

func (s *ProductServiceTestSuite) titles(page dto.ProductPageResponse) []string {
	titles := make([]string, 0, len(page.Content))
	for _, product := range page.Content {
		titles = append(titles, product.Title)
	}

	return titles
}

func (s *ProductServiceTestSuite) Test_GetAllProducts_DefaultListing() {
	states := []domain.ProductState{domain.ProductStateUnsold, domain.ProductStateUnset, domain.ProductStateRequestApproved}
	for i := 0; i < 12; i++ {
		s.db.seedProduct("listed", float64(100+i), states[i%len(states)], primitive.NilObjectID)
	}
	s.db.seedProduct("sold", 50, domain.ProductStateSold, primitive.NilObjectID)
	s.db.seedProduct("pending", 50, domain.ProductStateRequestPending, primitive.NilObjectID)

	page, err := s.svc.GetAllProducts(s.ctx, dto.ProductFilter{})
	s.Require().NoError(err)

	s.Equal(int64(12), page.TotalItems)
	s.Equal(2, page.TotalPages)
	s.Equal(1, page.CurrentPage)
	s.Require().Len(page.Content, 10)

	for i, product := range page.Content {
		s.Equal("listed", product.Title)
		if i > 0 {
			s.True(product.CreatedAt.Before(page.Content[i-1].CreatedAt))
		}
	}
	s.Equal(111.0, page.Content[0].Price)

	page, err = s.svc.GetAllProducts(s.ctx, dto.ProductFilter{PageNumber: ptr(2)})
	s.Require().NoError(err)
	s.Equal(2, page.CurrentPage)
	s.Len(page.Content, 2)
}

func (s *ProductServiceTestSuite) Test_GetAllProducts_PriceRange() {
	s.db.seedProduct("cheap", 99, domain.ProductStateUnsold, primitive.NilObjectID)
	s.db.seedProduct("low", 100, domain.ProductStateUnsold, primitive.NilObjectID)
	s.db.seedProduct("mid", 300, domain.ProductStateUnsold, primitive.NilObjectID)
	s.db.seedProduct("high", 500, domain.ProductStateUnsold, primitive.NilObjectID)
	s.db.seedProduct("pricey", 501, domain.ProductStateUnsold, primitive.NilObjectID)

	page, err := s.svc.GetAllProducts(s.ctx, dto.ProductFilter{MinPrice: ptr(100.0), MaxPrice: ptr(500.0), Sort: "asc-price"})
	s.Require().NoError(err)

	s.Equal([]string{"low", "mid", "high"}, s.titles(page))
	s.Equal(int64(3), page.TotalItems)
}

func (s *ProductServiceTestSuite) Test_GetAllProducts_CategoryIncludesChildren() {
	electronics := s.db.seedCategory("Electronics", domain.CategoryLevelTop, primitive.NilObjectID)
	phones := s.db.seedCategory("Phones", domain.CategoryLevelSecond, electronics.ID)
	furniture := s.db.seedCategory("Furniture", domain.CategoryLevelTop, primitive.NilObjectID)

	s.db.seedProduct("radio", 100, domain.ProductStateUnsold, electronics.ID)
	s.db.seedProduct("phone", 200, domain.ProductStateUnsold, phones.ID)
	s.db.seedProduct("table", 300, domain.ProductStateUnsold, furniture.ID)

	page, err := s.svc.GetAllProducts(s.ctx, dto.ProductFilter{Category: "electronics", Sort: "asc-price"})
	s.Require().NoError(err)

	s.Equal([]string{"radio", "phone"}, s.titles(page))
	s.Require().NotNil(page.Content[1].Category)
	s.Equal("Phones", page.Content[1].Category.Name)
	s.Equal(electronics.ID.Hex(), page.Content[1].Category.ParentCategoryID)

	page, err = s.svc.GetAllProducts(s.ctx, dto.ProductFilter{Category: "garden, furniture,", Sort: "asc-price"})
	s.Require().NoError(err)
	s.Equal([]string{"table"}, s.titles(page))

	page, err = s.svc.GetAllProducts(s.ctx, dto.ProductFilter{Category: "toys"})
	s.Require().NoError(err)
	s.Equal(int64(3), page.TotalItems)
}

func (s *ProductServiceTestSuite) Test_GetAllProducts_SplitCategoryPhrase() {
	homeGarden := s.db.seedCategory("Home Garden", domain.CategoryLevelTop, primitive.NilObjectID)
	home := s.db.seedCategory("Homeware", domain.CategoryLevelTop, primitive.NilObjectID)
	s.db.seedProduct("hose", 40, domain.ProductStateUnsold, homeGarden.ID)
	s.db.seedProduct("mug", 10, domain.ProductStateUnsold, home.ID)

	page, err := s.svc.GetAllProducts(s.ctx, dto.ProductFilter{Category: "Home", ExtraTerms: []string{"Garden,"}})
	s.Require().NoError(err)

	s.Equal([]string{"hose"}, s.titles(page))
}

func (s *ProductServiceTestSuite) Test_GetAllProducts_Sort() {
	s.db.seedProduct("b", 200, domain.ProductStateUnsold, primitive.NilObjectID)
	s.db.seedProduct("a", 100, domain.ProductStateUnsold, primitive.NilObjectID)
	s.db.seedProduct("c", 300, domain.ProductStateUnsold, primitive.NilObjectID)

	testCases := []struct {
		Sort     string
		Expected []string
	}{
		{"asc-price", []string{"a", "b", "c"}},
		{"desc-price", []string{"c", "b", "a"}},
		{"Date-Created", []string{"c", "a", "b"}},
		{"", []string{"c", "a", "b"}},
	}

	for _, tc := range testCases {
		s.Run(tc.Sort, func() {
			page, err := s.svc.GetAllProducts(s.ctx, dto.ProductFilter{Sort: tc.Sort})
			s.Require().NoError(err)
			s.Equal(tc.Expected, s.titles(page))
		})
	}
}

func (s *ProductServiceTestSuite) Test_GetAllProducts_PaginationDisabled() {
	page, err := s.svc.GetAllProducts(s.ctx, dto.ProductFilter{PageSize: ptr(0)})
	s.Require().NoError(err)
	s.Empty(page.Content)
	s.Zero(page.TotalPages)

	for i := 0; i < 15; i++ {
		s.db.seedProduct("item", 10, domain.ProductStateUnsold, primitive.NilObjectID)
	}

	page, err = s.svc.GetAllProducts(s.ctx, dto.ProductFilter{PageSize: ptr(0)})
	s.Require().NoError(err)
	s.Len(page.Content, 15)
	s.Equal(1, page.TotalPages)
	s.Equal(int64(15), page.TotalItems)
}

func (s *ProductServiceTestSuite) Test_CreateProduct_UpsertsCategories() {
	first, err := s.svc.CreateProduct(s.ctx, dto.ProductRequest{Title: "Jacket", Price: 1200, TopLevelCategory: "Clothing", SecondLevelCategory: "Men"})
	s.Require().NoError(err)

	second, err := s.svc.CreateProduct(s.ctx, dto.ProductRequest{Title: "Coat", Price: 1800, TopLevelCategory: "Clothing", SecondLevelCategory: "Men"})
	s.Require().NoError(err)

	s.Len(s.db.categories, 2)
	s.Equal(first.CategoryID, second.CategoryID)
	s.Require().NotNil(first.Category)
	s.Equal("Men", first.Category.Name)
	s.Equal(domain.CategoryLevelSecond, first.Category.Level)
	s.Equal(string(domain.ProductStateUnset), first.State)

	third, err := s.svc.CreateProduct(s.ctx, dto.ProductRequest{Title: "Dress", Price: 900, TopLevelCategory: "Clothing", SecondLevelCategory: "Women"})
	s.Require().NoError(err)

	s.Len(s.db.categories, 3)
	s.NotEqual(first.CategoryID, third.CategoryID)
	s.Equal(first.Category.ParentCategoryID, third.Category.ParentCategoryID)
}

func (s *ProductServiceTestSuite) Test_CreateMultipleProducts() {
	resp, err := s.svc.CreateMultipleProducts(s.ctx, []dto.ProductRequest{
		{Title: "Mouse", Price: 500, TopLevelCategory: "Electronics", SecondLevelCategory: "Accessories"},
		{Title: "Keyboard", Price: 1500, TopLevelCategory: "Electronics", SecondLevelCategory: "Accessories"},
	})
	s.Require().NoError(err)

	s.Len(resp, 2)
	s.Len(s.db.products, 2)
	s.Len(s.db.categories, 2)
}

func (s *ProductServiceTestSuite) Test_AddApprovedProduct() {
	category := s.db.seedCategory("Books", domain.CategoryLevelSecond, primitive.NewObjectID())

	resp, err := s.svc.AddApprovedProduct(s.ctx, dto.ApprovedProductRequest{
		ProductName:        "Atlas",
		ProductDescription: "World atlas",
		ExpectedPrice:      350,
		Category:           dto.ProductReference{ID: category.ID.Hex()},
		Images:             []dto.ProductImage{{ImageURL: "https://img/1.png"}, {ImageURL: "https://img/2.png"}},
	})
	s.Require().NoError(err)

	s.Equal("Atlas", resp.Title)
	s.Equal(350.0, resp.Price)
	s.Equal("https://img/1.png", resp.ImageURL)
	s.Equal(string(domain.ProductStateUnsold), resp.State)

	_, err = s.svc.AddApprovedProduct(s.ctx, dto.ApprovedProductRequest{ProductName: "Atlas", Category: dto.ProductReference{ID: primitive.NewObjectID().Hex()}})
	s.ErrorIs(err, errs.ErrNotFound)
}

func (s *ProductServiceTestSuite) Test_FindUpdateDeleteProduct() {
	category := s.db.seedCategory("Cameras", domain.CategoryLevelSecond, primitive.NewObjectID())
	product := s.db.seedProduct("Film camera", 2500, domain.ProductStateUnsold, category.ID)

	found, err := s.svc.FindProductByID(s.ctx, product.ID.Hex())
	s.Require().NoError(err)
	s.Require().NotNil(found.Category)
	s.Equal("Cameras", found.Category.Name)

	updated, err := s.svc.UpdateProduct(s.ctx, product.ID.Hex(), dto.UpdateProductRequest{Price: ptr(2000.0), State: ptr("Request_Pending")})
	s.Require().NoError(err)
	s.Equal("Film camera", updated.Title)
	s.Equal(2000.0, updated.Price)
	s.Equal(string(domain.ProductStateRequestPending), updated.State)
	s.Equal(int64(1), s.db.products[product.ID].Version)

	s.Require().NoError(s.svc.DeleteProduct(s.ctx, product.ID.Hex()))

	_, err = s.svc.FindProductByID(s.ctx, product.ID.Hex())
	s.ErrorIs(err, errs.ErrNotFound)

	_, err = s.svc.FindProductByID(s.ctx, "12345")
	s.ErrorIs(err, errs.ErrClient)
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}

func TestCategoryPattern(t *testing.T) {
	testCases := []struct {
		Name       string
		Category   string
		ExtraTerms []string
		Expected   string
	}{
		{Name: "no category", Expected: ""},
		{Name: "single term", Category: "Electronics", Expected: "Electronics"},
		{Name: "comma separated terms", Category: "Books, Toys", Expected: "Books|Toys"},
		{Name: "trailing commas", Category: "Books,,", Expected: "Books"},
		{Name: "split phrase", Category: "Home", ExtraTerms: []string{" Garden", "Tools,"}, Expected: "Home Garden Tools"},
		{Name: "metacharacters", Category: "C++ (books)", Expected: `C\+\+ \(books\)`},
		{Name: "extra terms without category", ExtraTerms: []string{"Garden"}, Expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, categoryPattern(tc.Category, tc.ExtraTerms))
		})
	}
}

func TestProductSort(t *testing.T) {
	testCases := []struct {
		Sort          string
		ExpectedField string
		ExpectedOrder repository.SortOrder
	}{
		{"", "createdAt", repository.SortDescending},
		{"Date-Created", "createdAt", repository.SortDescending},
		{"asc-price", "price", repository.SortAscending},
		{"desc-price", "price", repository.SortDescending},
		{"anything", "price", repository.SortDescending},
	}

	for _, tc := range testCases {
		field, order := productSort(tc.Sort)
		assert.Equal(t, tc.ExpectedField, field, tc.Sort)
		assert.Equal(t, tc.ExpectedOrder, order, tc.Sort)
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, totalPages(0, 10, true))
	assert.Equal(t, 1, totalPages(10, 10, true))
	assert.Equal(t, 2, totalPages(11, 10, true))
	assert.Equal(t, 1, totalPages(25, 0, false))
	assert.Equal(t, 0, totalPages(0, 0, false))
}
