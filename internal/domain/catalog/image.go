package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductImage represents a single image attached to a product
// Binary data lives in object storage; the entity records the storage key
type ProductImage struct {
	shared.BaseEntity
	ProductID  uuid.UUID
	StorageKey string
	ImageURL   string
	AltText    string
	IsPrimary  bool
	SortOrder  int
	Confirmed  bool
}

// NewProductImage creates an image record pending upload confirmation
func NewProductImage(productID uuid.UUID, storageKey, altText string, sortOrder int) (*ProductImage, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if strings.TrimSpace(storageKey) == "" {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}
	if len(altText) > 200 {
		return nil, shared.NewDomainError("INVALID_ALT_TEXT", "Alt text cannot exceed 200 characters")
	}

	return &ProductImage{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		StorageKey: strings.TrimSpace(storageKey),
		AltText:    strings.TrimSpace(altText),
		SortOrder:  sortOrder,
	}, nil
}

// Confirm marks the upload as completed and records the public URL
func (i *ProductImage) Confirm(imageURL string) error {
	if len(imageURL) > 500 {
		return shared.NewDomainError("INVALID_IMAGE_URL", "Image URL cannot exceed 500 characters")
	}

	i.Confirmed = true
	i.ImageURL = imageURL
	i.UpdatedAt = time.Now()

	return nil
}

// TableName returns the database table name
func (ProductImage) TableName() string {
	return "product_images"
}

// AddImage attaches an image to the product
// The first image automatically becomes primary
func (p *Product) AddImage(image *ProductImage) {
	if len(p.Images) == 0 {
		image.IsPrimary = true
	}
	p.Images = append(p.Images, *image)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetPrimaryImage marks the given image as primary and demotes the others
func (p *Product) SetPrimaryImage(imageID uuid.UUID) error {
	found := false
	for i := range p.Images {
		if p.Images[i].ID == imageID {
			p.Images[i].IsPrimary = true
			p.Images[i].UpdatedAt = time.Now()
			found = true
		} else if p.Images[i].IsPrimary {
			p.Images[i].IsPrimary = false
			p.Images[i].UpdatedAt = time.Now()
		}
	}

	if !found {
		return shared.ErrNotFound
	}

	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// RemoveImage detaches an image from the product
// When the primary image is removed the first remaining image is promoted
func (p *Product) RemoveImage(imageID uuid.UUID) (*ProductImage, error) {
	idx := -1
	for i := range p.Images {
		if p.Images[i].ID == imageID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, shared.ErrNotFound
	}

	removed := p.Images[idx]
	p.Images = append(p.Images[:idx], p.Images[idx+1:]...)

	if removed.IsPrimary && len(p.Images) > 0 {
		p.Images[0].IsPrimary = true
		p.Images[0].UpdatedAt = time.Now()
	}

	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return &removed, nil
}

// PrimaryImage returns the primary image, or nil when the product has no images
func (p *Product) PrimaryImage() *ProductImage {
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			return &p.Images[i]
		}
	}
	return nil
}
