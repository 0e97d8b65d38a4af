package service

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/AatishKamble/swapify/internal/domain"
	"github.com/AatishKamble/swapify/internal/dto"
	"github.com/AatishKamble/swapify/internal/repository"
	"github.com/AatishKamble/swapify/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultPageSize   = 10
	defaultPageNumber = 1
	defaultMinPrice   = 0
	defaultMaxPrice   = 1000000

	sortAscendingPrice = "asc-price"
	sortDateCreated    = "Date-Created"
)

type ProductServiceImpl struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func CreateProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) ProductService {
	return &ProductServiceImpl{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *ProductServiceImpl) GetAllProducts(ctx context.Context, filter dto.ProductFilter) (resp dto.ProductPageResponse, err error) {
	query := repository.ProductQuery{
		MinPrice: defaultMinPrice,
		MaxPrice: defaultMaxPrice,
	}

	if filter.MinPrice != nil {
		query.MinPrice = *filter.MinPrice
	}

	if filter.MaxPrice != nil {
		query.MaxPrice = *filter.MaxPrice
	}

	query.SortField, query.SortOrder = productSort(filter.Sort)

	if pattern := categoryPattern(filter.Category, filter.ExtraTerms); pattern != "" {
		query.CategoryIDs, err = s.matchCategories(ctx, pattern)
		if err != nil {
			return
		}
	}

	pageSize := defaultPageSize
	if filter.PageSize != nil {
		pageSize = *filter.PageSize
	}

	pageNumber := defaultPageNumber
	if filter.PageNumber != nil {
		pageNumber = *filter.PageNumber
	}

	paginated := pageSize > 0 && pageNumber > 0
	if paginated {
		query.Skip = int64((pageNumber - 1) * pageSize)
		query.Limit = int64(pageSize)
	}

	total, err := s.productRepo.CountProducts(ctx, query)
	if err != nil {
		return
	}

	products, err := s.productRepo.GetProducts(ctx, query)
	if err != nil {
		return
	}

	products, err = s.populateCategories(ctx, products)
	if err != nil {
		return
	}

	resp = dto.ProductPageResponse{
		Content:     make([]dto.ProductResponse, 0, len(products)),
		CurrentPage: pageNumber,
		TotalPages:  totalPages(total, pageSize, paginated),
		TotalItems:  total,
	}

	for _, product := range products {
		resp.Content = append(resp.Content, toProductResponse(product))
	}

	return resp, nil
}

// matchCategories returns the categories whose name matches pattern together
// with their direct children. An empty result leaves the listing unfiltered.
func (s *ProductServiceImpl) matchCategories(ctx context.Context, pattern string) ([]primitive.ObjectID, error) {
	matches, err := s.categoryRepo.GetCategoriesByNamePattern(ctx, pattern)
	if err != nil {
		return nil, err
	}

	parentIDs := make([]primitive.ObjectID, 0, len(matches))
	for _, category := range matches {
		parentIDs = append(parentIDs, category.ID)
	}

	children, err := s.categoryRepo.GetChildCategories(ctx, parentIDs)
	if err != nil {
		return nil, err
	}

	seen := make(map[primitive.ObjectID]bool, len(matches)+len(children))
	var ids []primitive.ObjectID
	for _, category := range append(matches, children...) {
		if !seen[category.ID] {
			seen[category.ID] = true
			ids = append(ids, category.ID)
		}
	}

	return ids, nil
}

func (s *ProductServiceImpl) populateCategories(ctx context.Context, products []domain.Product) ([]domain.Product, error) {
	cache := map[primitive.ObjectID]*domain.Category{}

	for i := range products {
		categoryID := products[i].CategoryID
		if categoryID.IsZero() {
			continue
		}

		category, ok := cache[categoryID]
		if !ok {
			found, err := s.categoryRepo.GetCategoryByID(ctx, categoryID)
			switch {
			case err == nil:
				category = &found
			case !errors.Is(err, errs.ErrNotFound):
				return nil, err
			}
			cache[categoryID] = category
		}

		products[i].Category = category
	}

	return products, nil
}

// categoryPattern rebuilds a category phrase that the client's URL encoding
// split across several query keys, then turns its comma separated terms into
// one alternation.
func categoryPattern(category string, extraTerms []string) string {
	if category == "" {
		return ""
	}

	search := category
	for _, term := range extraTerms {
		search += " " + strings.TrimSpace(term)
	}

	search = strings.TrimRight(strings.TrimSpace(search), ",")

	var terms []string
	for _, term := range strings.Split(search, ",") {
		term = strings.TrimSpace(term)
		if term != "" {
			terms = append(terms, regexp.QuoteMeta(term))
		}
	}

	return strings.Join(terms, "|")
}

func productSort(sort string) (string, repository.SortOrder) {
	switch sort {
	case "":
		return "createdAt", repository.SortDescending
	case sortAscendingPrice:
		return "price", repository.SortAscending
	case sortDateCreated:
		return "createdAt", repository.SortDescending
	default:
		return "price", repository.SortDescending
	}
}

func totalPages(total int64, pageSize int, paginated bool) int {
	if !paginated {
		if total > 0 {
			return 1
		}
		return 0
	}

	return int(math.Ceil(float64(total) / float64(pageSize)))
}

func (s *ProductServiceImpl) CreateProduct(ctx context.Context, req dto.ProductRequest) (resp dto.ProductResponse, err error) {
	var product domain.Product

	err = s.productRepo.HandleTrx(ctx, func(ctx context.Context) error {
		category, err := s.upsertCategories(ctx, req.TopLevelCategory, req.SecondLevelCategory)
		if err != nil {
			return err
		}

		now := time.Now()
		product = domain.Product{
			Title:       req.Title,
			Description: req.Description,
			Price:       req.Price,
			CategoryID:  category.ID,
			ImageURL:    req.ImageURL,
			State:       domain.ProductStateUnset,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		product.ID, err = s.productRepo.AddProduct(ctx, product)
		if err != nil {
			return err
		}

		product.Category = &category

		return nil
	})
	if err != nil {
		return
	}

	return toProductResponse(product), nil
}

// upsertCategories finds or creates the top level category by name and then
// its child by name under that parent.
func (s *ProductServiceImpl) upsertCategories(ctx context.Context, topLevelName, secondLevelName string) (domain.Category, error) {
	topLevel, err := s.categoryRepo.GetTopLevelCategoryByName(ctx, topLevelName)
	if errors.Is(err, errs.ErrNotFound) {
		topLevel = domain.Category{Name: topLevelName, Level: domain.CategoryLevelTop}
		topLevel.ID, err = s.categoryRepo.AddCategory(ctx, topLevel)
	}
	if err != nil {
		return domain.Category{}, err
	}

	secondLevel, err := s.categoryRepo.GetChildCategoryByName(ctx, secondLevelName, topLevel.ID)
	if errors.Is(err, errs.ErrNotFound) {
		secondLevel = domain.Category{
			Name:             secondLevelName,
			Level:            domain.CategoryLevelSecond,
			ParentCategoryID: topLevel.ID,
		}
		secondLevel.ID, err = s.categoryRepo.AddCategory(ctx, secondLevel)
	}
	if err != nil {
		return domain.Category{}, err
	}

	return secondLevel, nil
}

func (s *ProductServiceImpl) CreateMultipleProducts(ctx context.Context, reqs []dto.ProductRequest) (resp []dto.ProductResponse, err error) {
	resp = make([]dto.ProductResponse, 0, len(reqs))

	for _, req := range reqs {
		product, err := s.CreateProduct(ctx, req)
		if err != nil {
			return nil, err
		}

		resp = append(resp, product)
	}

	return resp, nil
}

func (s *ProductServiceImpl) AddApprovedProduct(ctx context.Context, req dto.ApprovedProductRequest) (resp dto.ProductResponse, err error) {
	categoryID, err := parseObjectID(req.Category.ID)
	if err != nil {
		return
	}

	category, err := s.categoryRepo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return
	}

	var imageURL string
	if len(req.Images) > 0 {
		imageURL = req.Images[0].ImageURL
	}

	now := time.Now()
	product := domain.Product{
		Title:       req.ProductName,
		Description: req.ProductDescription,
		Price:       req.ExpectedPrice,
		CategoryID:  category.ID,
		ImageURL:    imageURL,
		State:       domain.ProductStateUnsold,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	product.ID, err = s.productRepo.AddProduct(ctx, product)
	if err != nil {
		return
	}

	product.Category = &category

	return toProductResponse(product), nil
}

func (s *ProductServiceImpl) FindProductByID(ctx context.Context, productID string) (resp dto.ProductResponse, err error) {
	id, err := parseObjectID(productID)
	if err != nil {
		return
	}

	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return
	}

	products, err := s.populateCategories(ctx, []domain.Product{product})
	if err != nil {
		return
	}

	return toProductResponse(products[0]), nil
}

func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest) (resp dto.ProductResponse, err error) {
	id, err := parseObjectID(productID)
	if err != nil {
		return
	}

	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return
	}

	if req.Title != nil {
		product.Title = *req.Title
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.State != nil {
		product.State = domain.ProductState(*req.State)
	}

	err = s.productRepo.UpdateProduct(ctx, product)
	if err != nil {
		return
	}

	product.Version++
	product.UpdatedAt = time.Now()

	products, err := s.populateCategories(ctx, []domain.Product{product})
	if err != nil {
		return
	}

	return toProductResponse(products[0]), nil
}

func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, productID string) (err error) {
	id, err := parseObjectID(productID)
	if err != nil {
		return
	}

	return s.productRepo.DeleteProduct(ctx, id)
}
