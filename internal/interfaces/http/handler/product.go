package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// ProductHandler handles product-related API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
	authMW         gin.HandlerFunc
	optionalAuthMW gin.HandlerFunc
}

// NewProductHandler creates a new ProductHandler. optionalAuthMW lets staff
// tokens widen the public read endpoints to unpublished products.
func NewProductHandler(productService *catalogapp.ProductService, authMW, optionalAuthMW gin.HandlerFunc) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		authMW:         authMW,
		optionalAuthMW: optionalAuthMW,
	}
}

// productListQuery holds the list/search query parameters
type productListQuery struct {
	Page       int      `form:"page"`
	PageSize   int      `form:"page_size"`
	Search     string   `form:"search"`
	CategoryID string   `form:"category_id" binding:"omitempty,uuid"`
	Status     string   `form:"status" binding:"omitempty,oneof=draft active archived"`
	MinPrice   *float64 `form:"min_price" binding:"omitempty,gte=0"`
	MaxPrice   *float64 `form:"max_price" binding:"omitempty,gte=0"`
	InStock    *bool    `form:"in_stock"`
	MinRating  int      `form:"min_rating" binding:"omitempty,min=1,max=5"`
	OrderBy    string   `form:"order_by"`
	OrderDir   string   `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (h *ProductHandler) bindListInput(c *gin.Context) (catalogapp.ListProductsInput, bool) {
	var query productListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return catalogapp.ListProductsInput{}, false
	}
	if query.Page == 0 {
		query.Page = 1
	}
	if query.PageSize == 0 {
		query.PageSize = 20
	}

	input := catalogapp.ListProductsInput{
		Page:               query.Page,
		PageSize:           query.PageSize,
		Search:             query.Search,
		InStock:            query.InStock,
		MinRating:          query.MinRating,
		OrderBy:            query.OrderBy,
		OrderDir:           query.OrderDir,
		IncludeUnpublished: isStaff(c),
	}
	if query.MinPrice != nil {
		input.MinPrice = toDecimalPtr(*query.MinPrice)
	}
	if query.MaxPrice != nil {
		input.MaxPrice = toDecimalPtr(*query.MaxPrice)
	}
	if input.IncludeUnpublished {
		input.Status = query.Status
	}
	if query.CategoryID != "" {
		categoryID, err := uuid.Parse(query.CategoryID)
		if err != nil {
			h.BadRequest(c, "Invalid category ID format")
			return catalogapp.ListProductsInput{}, false
		}
		input.CategoryID = &categoryID
	}
	return input, true
}

// List godoc
// @Summary      List products
// @Description  Retrieve a paginated list of published products. Staff see drafts and archived products too.
// @Tags         products
// @Produce      json
// @Param        search query string false "Search in name and description"
// @Param        category_id query string false "Filter by category" format(uuid)
// @Param        status query string false "Status filter, staff only" Enums(draft, active, archived)
// @Param        min_price query number false "Minimum price"
// @Param        max_price query number false "Maximum price"
// @Param        in_stock query bool false "Only products with stock (digital products always qualify)"
// @Param        min_rating query int false "Minimum average approved rating" minimum(1) maximum(5)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Param        order_by query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]ProductResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	input, ok := h.bindListInput(c)
	if !ok {
		return
	}

	result, err := h.productService.ListProducts(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	products := make([]ProductResponse, len(result.Items))
	for i := range result.Items {
		products[i] = toProductResponse(&result.Items[i])
	}

	h.SuccessWithMeta(c, products, result.Total, input.Page, input.PageSize)
}

// Search godoc
// @Summary      Search products
// @Description  Full-text search over published products
// @Tags         products
// @Produce      json
// @Param        search query string true "Search term"
// @Param        category_id query string false "Filter by category" format(uuid)
// @Param        min_price query number false "Minimum price"
// @Param        max_price query number false "Maximum price"
// @Param        in_stock query bool false "Only products with stock (digital products always qualify)"
// @Param        min_rating query int false "Minimum average approved rating" minimum(1) maximum(5)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]ProductResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products/search [get]
func (h *ProductHandler) Search(c *gin.Context) {
	if c.Query("search") == "" {
		h.BadRequest(c, "Search term is required")
		return
	}
	h.List(c)
}

// GetFeatured godoc
// @Summary      Get featured products
// @Description  Retrieve the published products marked as featured
// @Tags         products
// @Produce      json
// @Success      200 {object} dto.Response{data=[]ProductResponse}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products/featured [get]
func (h *ProductHandler) GetFeatured(c *gin.Context) {
	featured, err := h.productService.GetFeaturedProducts(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	products := make([]ProductResponse, len(featured))
	for i := range featured {
		products[i] = toProductResponse(&featured[i])
	}

	h.Success(c, products)
}

// GetByID godoc
// @Summary      Get product by ID
// @Description  Retrieve a product by its ID. Unpublished products are visible to staff only.
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), productID, isStaff(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toProductResponse(product))
}

// GetBySlug godoc
// @Summary      Get product by slug
// @Description  Retrieve a published product by its URL slug
// @Tags         products
// @Produce      json
// @Param        slug path string true "Product slug"
// @Success      200 {object} dto.Response{data=ProductResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products/slug/{slug} [get]
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	product, err := h.productService.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toProductResponse(product))
}

// GetRelated godoc
// @Summary      Get related products
// @Description  Retrieve published products from the same category
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products/{id}/related [get]
func (h *ProductHandler) GetRelated(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	related, err := h.productService.GetRelatedProducts(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	products := make([]ProductResponse, len(related))
	for i := range related {
		products[i] = toProductResponse(&related[i])
	}

	h.Success(c, products)
}

// Create godoc
// @Summary      Create a new product
// @Description  Create a new product in draft status. Staff only.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body CreateProductRequest true "Product creation request"
// @Success      201 {object} dto.Response{data=ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), catalogapp.CreateProductInput{
		Name:             req.Name,
		SKU:              req.SKU,
		CategoryID:       categoryID,
		Price:            toDecimal(req.Price),
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		StockQuantity:    req.StockQuantity,
		IsDigital:        req.IsDigital,
		Tags:             req.Tags,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toProductResponse(product))
}

// Update godoc
// @Summary      Update a product
// @Description  Update an existing product's information. Staff only.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body UpdateProductRequest true "Product update request"
// @Success      200 {object} dto.Response{data=ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := catalogapp.UpdateProductInput{
		ProductID:         productID,
		Name:              req.Name,
		ClearComparePrice: req.ClearComparePrice,
		Description:       req.Description,
		ShortDescription:  req.ShortDescription,
		StockQuantity:     req.StockQuantity,
		LowStockThreshold: req.LowStockThreshold,
		Dimensions:        req.Dimensions,
		IsFeatured:        req.IsFeatured,
		IsDigital:         req.IsDigital,
		Tags:              req.Tags,
		MetaTitle:         req.MetaTitle,
		MetaDescription:   req.MetaDescription,
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			h.BadRequest(c, "Invalid category ID format")
			return
		}
		input.CategoryID = &categoryID
	}
	if req.Price != nil {
		input.Price = toDecimalPtr(*req.Price)
	}
	if req.ComparePrice != nil {
		input.ComparePrice = toDecimalPtr(*req.ComparePrice)
	}
	if req.CostPrice != nil {
		input.CostPrice = toDecimalPtr(*req.CostPrice)
	}
	if req.Weight != nil {
		input.Weight = toDecimalPtr(*req.Weight)
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toProductResponse(product))
}

// Publish godoc
// @Summary      Publish a product
// @Description  Make a draft or archived product visible in the storefront. Staff only.
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id}/publish [post]
func (h *ProductHandler) Publish(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	product, err := h.productService.PublishProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toProductResponse(product))
}

// Archive godoc
// @Summary      Archive a product
// @Description  Remove a product from the storefront without deleting it. Staff only.
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id}/archive [post]
func (h *ProductHandler) Archive(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	product, err := h.productService.ArchiveProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toProductResponse(product))
}

// Delete godoc
// @Summary      Delete a product
// @Description  Delete a product that has never been ordered. Staff only.
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), productID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RequestImageUpload godoc
// @Summary      Request an image upload URL
// @Description  Create a pending product image and return a presigned upload URL. Staff only.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body RequestImageUploadRequest true "Image upload request"
// @Success      201 {object} dto.Response{data=RequestImageUploadResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id}/images [post]
func (h *ProductHandler) RequestImageUpload(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req RequestImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.productService.RequestImageUpload(c.Request.Context(), catalogapp.RequestImageUploadInput{
		ProductID:   productID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		AltText:     req.AltText,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, RequestImageUploadResponse{
		ImageID:    result.ImageID.String(),
		StorageKey: result.StorageKey,
		UploadURL:  result.UploadURL,
		ExpiresAt:  result.ExpiresAt,
	})
}

// ConfirmImageUpload godoc
// @Summary      Confirm an image upload
// @Description  Mark a previously requested image upload as completed. Staff only.
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        imageID path string true "Image ID" format(uuid)
// @Success      200 {object} dto.Response{data=ProductImageResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id}/images/{imageID}/confirm [post]
func (h *ProductHandler) ConfirmImageUpload(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	imageID, err := uuid.Parse(c.Param("imageID"))
	if err != nil {
		h.BadRequest(c, "Invalid image ID format")
		return
	}

	image, err := h.productService.ConfirmImageUpload(c.Request.Context(), catalogapp.ConfirmImageUploadInput{
		ProductID: productID,
		ImageID:   imageID,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toProductImageResponse(*image))
}

// SetPrimaryImage godoc
// @Summary      Set the primary product image
// @Description  Mark a confirmed image as the product's primary image. Staff only.
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        imageID path string true "Image ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id}/images/{imageID}/primary [put]
func (h *ProductHandler) SetPrimaryImage(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	imageID, err := uuid.Parse(c.Param("imageID"))
	if err != nil {
		h.BadRequest(c, "Invalid image ID format")
		return
	}

	if err := h.productService.SetPrimaryImage(c.Request.Context(), productID, imageID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// DeleteImage godoc
// @Summary      Delete a product image
// @Description  Delete a product image and its stored object. Staff only.
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        imageID path string true "Image ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id}/images/{imageID} [delete]
func (h *ProductHandler) DeleteImage(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	imageID, err := uuid.Parse(c.Param("imageID"))
	if err != nil {
		h.BadRequest(c, "Invalid image ID format")
		return
	}

	if err := h.productService.DeleteImage(c.Request.Context(), productID, imageID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// AddVariant godoc
// @Summary      Add a product variant
// @Description  Add a variant (size, color, ...) to a product. Staff only.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body AddVariantRequest true "Variant creation request"
// @Success      201 {object} dto.Response{data=ProductVariantResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id}/variants [post]
func (h *ProductHandler) AddVariant(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req AddVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := catalogapp.AddVariantInput{
		ProductID:  productID,
		Name:       req.Name,
		SKU:        req.SKU,
		Stock:      req.Stock,
		Attributes: req.Attributes,
	}
	if req.Price != nil {
		input.Price = toDecimalPtr(*req.Price)
	}

	variant, err := h.productService.AddVariant(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toProductVariantResponse(*variant))
}

// UpdateVariant godoc
// @Summary      Update a product variant
// @Description  Update a variant's price, stock or active flag. Staff only.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        variantID path string true "Variant ID" format(uuid)
// @Param        request body UpdateVariantRequest true "Variant update request"
// @Success      200 {object} dto.Response{data=ProductVariantResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id}/variants/{variantID} [put]
func (h *ProductHandler) UpdateVariant(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	variantID, err := uuid.Parse(c.Param("variantID"))
	if err != nil {
		h.BadRequest(c, "Invalid variant ID format")
		return
	}

	var req UpdateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := catalogapp.UpdateVariantInput{
		ProductID:  productID,
		VariantID:  variantID,
		ClearPrice: req.ClearPrice,
		Stock:      req.Stock,
		IsActive:   req.IsActive,
	}
	if req.Price != nil {
		input.Price = toDecimalPtr(*req.Price)
	}

	variant, err := h.productService.UpdateVariant(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toProductVariantResponse(*variant))
}

// RemoveVariant godoc
// @Summary      Remove a product variant
// @Description  Remove a variant from a product. Staff only.
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        variantID path string true "Variant ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id}/variants/{variantID} [delete]
func (h *ProductHandler) RemoveVariant(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	variantID, err := uuid.Parse(c.Param("variantID"))
	if err != nil {
		h.BadRequest(c, "Invalid variant ID format")
		return
	}

	if err := h.productService.RemoveVariant(c.Request.Context(), productID, variantID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers the product endpoints
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		public := products.Group("", h.optionalAuthMW)
		{
			public.GET("", h.List)
			public.GET("/search", h.Search)
			public.GET("/featured", h.GetFeatured)
			public.GET("/slug/:slug", h.GetBySlug)
			public.GET("/:id", h.GetByID)
			public.GET("/:id/related", h.GetRelated)
		}

		staff := products.Group("", h.authMW, middleware.RequireStaff())
		{
			staff.POST("", h.Create)
			staff.PUT("/:id", h.Update)
			staff.DELETE("/:id", h.Delete)
			staff.POST("/:id/publish", h.Publish)
			staff.POST("/:id/archive", h.Archive)
			staff.POST("/:id/images", h.RequestImageUpload)
			staff.POST("/:id/images/:imageID/confirm", h.ConfirmImageUpload)
			staff.PUT("/:id/images/:imageID/primary", h.SetPrimaryImage)
			staff.DELETE("/:id/images/:imageID", h.DeleteImage)
			staff.POST("/:id/variants", h.AddVariant)
			staff.PUT("/:id/variants/:variantID", h.UpdateVariant)
			staff.DELETE("/:id/variants/:variantID", h.RemoveVariant)
		}
	}
}
