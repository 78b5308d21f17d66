package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CategoryService handles category management and storefront browsing
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(
	categoryRepo catalog.CategoryRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// CreateCategory creates a new category, staff only
func (s *CategoryService) CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryInfo, error) {
	category, err := catalog.NewCategory(input.Name, input.Description)
	if err != nil {
		return nil, err
	}

	if exists, err := s.categoryRepo.ExistsBySlug(ctx, category.Slug); err != nil {
		s.logger.Error("Failed to check category slug", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check category slug")
	} else if exists {
		return nil, shared.NewDomainError("SLUG_TAKEN", "A category with this name already exists")
	}

	if input.ParentID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *input.ParentID); err != nil {
			return nil, shared.NewDomainError("PARENT_NOT_FOUND", "Parent category not found")
		}
		if err := category.SetParent(input.ParentID); err != nil {
			return nil, err
		}
	}
	if input.ImageURL != "" {
		if err := category.SetImageURL(input.ImageURL); err != nil {
			return nil, err
		}
	}
	if input.SortOrder != 0 {
		category.SetSortOrder(input.SortOrder)
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		s.logger.Error("Failed to save category", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create category")
	}

	s.logger.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("slug", category.Slug))

	info := toCategoryInfo(category)
	return &info, nil
}

// UpdateCategory updates a category, staff only
func (s *CategoryService) UpdateCategory(ctx context.Context, input UpdateCategoryInput) (*CategoryInfo, error) {
	category, err := s.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
	}

	if input.Name != nil {
		if err := category.Rename(*input.Name); err != nil {
			return nil, err
		}
		if exists, err := s.categoryRepo.ExistsBySlug(ctx, category.Slug); err == nil && exists {
			// The regenerated slug may collide with another category
			existing, findErr := s.categoryRepo.FindBySlug(ctx, category.Slug)
			if findErr == nil && existing.ID != category.ID {
				return nil, shared.NewDomainError("SLUG_TAKEN", "A category with this name already exists")
			}
		}
	}
	if input.Description != nil {
		category.SetDescription(*input.Description)
	}
	if input.ClearParent {
		if err := category.SetParent(nil); err != nil {
			return nil, err
		}
	} else if input.ParentID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *input.ParentID); err != nil {
			return nil, shared.NewDomainError("PARENT_NOT_FOUND", "Parent category not found")
		}
		if err := category.SetParent(input.ParentID); err != nil {
			return nil, err
		}
	}
	if input.ImageURL != nil {
		if err := category.SetImageURL(*input.ImageURL); err != nil {
			return nil, err
		}
	}
	if input.SortOrder != nil {
		category.SetSortOrder(*input.SortOrder)
	}
	if input.IsActive != nil {
		if *input.IsActive {
			category.Activate()
		} else {
			category.Deactivate()
		}
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		s.logger.Error("Failed to update category", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update category")
	}

	s.logger.Info("Category updated", zap.String("category_id", category.ID.String()))

	info := toCategoryInfo(category)
	return &info, nil
}

// DeleteCategory soft deletes a category, staff only
// Categories with products or child categories cannot be deleted
func (s *CategoryService) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		return shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
	}

	children, err := s.categoryRepo.FindChildren(ctx, categoryID)
	if err != nil {
		s.logger.Error("Failed to check child categories", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check child categories")
	}
	if len(children) > 0 {
		return shared.NewDomainError("CATEGORY_HAS_CHILDREN", "Category has child categories and cannot be deleted")
	}

	filter := shared.DefaultFilter()
	filter.PageSize = 1
	products, err := s.productRepo.FindByCategory(ctx, categoryID, filter)
	if err != nil {
		s.logger.Error("Failed to check category products", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check category products")
	}
	if len(products) > 0 {
		return shared.NewDomainError("CATEGORY_HAS_PRODUCTS", "Category has products and cannot be deleted")
	}

	if err := s.categoryRepo.Delete(ctx, categoryID); err != nil {
		s.logger.Error("Failed to delete category", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete category")
	}

	s.logger.Info("Category deleted", zap.String("category_id", categoryID.String()))

	return nil
}

// GetCategory returns a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, categoryID uuid.UUID) (*CategoryInfo, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
	}

	info := toCategoryInfo(category)
	return &info, nil
}

// GetCategoryBySlug returns a category by its slug
func (s *CategoryService) GetCategoryBySlug(ctx context.Context, slug string) (*CategoryInfo, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
	}

	info := toCategoryInfo(category)
	return &info, nil
}

// ListCategories returns a paginated flat list of categories
func (s *CategoryService) ListCategories(ctx context.Context, page, pageSize int) (*shared.Paginated[CategoryInfo], error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	filter.OrderBy = "sort_order"
	filter.OrderDir = "asc"

	categories, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list categories")
	}

	total, err := s.categoryRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count categories", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count categories")
	}

	items := make([]CategoryInfo, 0, len(categories))
	for i := range categories {
		items = append(items, toCategoryInfo(&categories[i]))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// GetCategoryTree returns the active categories as a nested tree
func (s *CategoryService) GetCategoryTree(ctx context.Context) ([]CategoryTreeNode, error) {
	roots, err := s.categoryRepo.FindRoots(ctx)
	if err != nil {
		s.logger.Error("Failed to load root categories", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load categories")
	}

	tree := make([]CategoryTreeNode, 0, len(roots))
	for i := range roots {
		if !roots[i].IsActive {
			continue
		}
		node, err := s.buildTreeNode(ctx, &roots[i])
		if err != nil {
			return nil, err
		}
		tree = append(tree, node)
	}

	return tree, nil
}

// buildTreeNode recursively loads a category's active children
func (s *CategoryService) buildTreeNode(ctx context.Context, category *catalog.Category) (CategoryTreeNode, error) {
	node := CategoryTreeNode{CategoryInfo: toCategoryInfo(category)}

	children, err := s.categoryRepo.FindChildren(ctx, category.ID)
	if err != nil {
		return node, shared.NewDomainError("INTERNAL_ERROR", "Failed to load child categories")
	}

	for i := range children {
		if !children[i].IsActive {
			continue
		}
		child, err := s.buildTreeNode(ctx, &children[i])
		if err != nil {
			return node, err
		}
		node.Children = append(node.Children, child)
	}

	return node, nil
}

// toCategoryInfo maps a domain category to the application DTO
func toCategoryInfo(category *catalog.Category) CategoryInfo {
	return CategoryInfo{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		ImageURL:    category.ImageURL,
		IsActive:    category.IsActive,
		SortOrder:   category.SortOrder,
		ParentID:    category.ParentID,
		CreatedAt:   category.CreatedAt,
	}
}
