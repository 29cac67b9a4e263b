package schema

import (
	"gorm.io/datatypes"
)

// Collection is one immutable version of a collection, keyed by (collection_id, version).
// IsLatest is stamped true on the row being written and never cleared on older rows,
// so it must not be used to find the current version.
type Collection struct {
	CollectionID string `json:"collectionId" dynamodbav:"collectionId" gorm:"column:collection_id;primaryKey;type:text" validate:"required"`
	Version      int    `json:"version" dynamodbav:"version" gorm:"column:version;primaryKey;autoIncrement:false"`
	IsLatest     bool   `json:"isLatest" dynamodbav:"isLatest" gorm:"column:is_latest;not null;default:false"`
	CreatedAt    int64  `json:"createdAt" dynamodbav:"createdAt" gorm:"column:created_at;not null;autoCreateTime:false"`
	UpdatedAt    int64  `json:"updatedAt" dynamodbav:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime:false"`

	Address        string `json:"address" dynamodbav:"address,omitempty" gorm:"column:address;type:text;index:idx_collections_address"`
	CreatorAddress string `json:"creatorAddress" dynamodbav:"creatorAddress,omitempty" gorm:"column:creator_address;type:text;index:idx_collections_creator_address"`
	Name           string `json:"name" dynamodbav:"name" gorm:"column:name;type:text"`
	Description    string `json:"description" dynamodbav:"description" gorm:"column:description;type:text"`
	Category       string `json:"category" dynamodbav:"category,omitempty" gorm:"column:category;type:text;index:idx_collections_category"`
	CoverPhoto     string `json:"coverPhoto" dynamodbav:"coverPhoto" gorm:"column:cover_photo;type:text"`
	MainPhoto      string `json:"mainPhoto" dynamodbav:"mainPhoto" gorm:"column:main_photo;type:text"`
	Chain          string `json:"chain" dynamodbav:"chain" gorm:"column:chain;type:text"`
	Standard       string `json:"standard" dynamodbav:"standard" gorm:"column:standard;type:text"`
	IsListed       bool   `json:"isListed" dynamodbav:"isListed" gorm:"column:is_listed;not null;default:false"`
	Status         string `json:"status" dynamodbav:"status" gorm:"column:status;type:text"`
	// Links holds external links (website, socials) as a JSON array
	Links datatypes.JSONSlice[string] `json:"links" dynamodbav:"links" gorm:"column:links;type:jsonb"`
	// IsCreatedByPlatform marks collections curated by the platform itself
	IsCreatedByPlatform       bool   `json:"isCreatedByPlatform" dynamodbav:"isCreatedByPlatform" gorm:"column:is_created_by_platform;not null;default:false"`
	ShippingRequired          bool   `json:"shippingRequired" dynamodbav:"shippingRequired" gorm:"column:shipping_required;not null;default:false"`
	OwnerSignatureMintAllowed bool   `json:"ownerSignatureMintAllowed" dynamodbav:"ownerSignatureMintAllowed" gorm:"column:owner_signature_mint_allowed;not null"`
	AppID                     string `json:"appId,omitempty" dynamodbav:"appId,omitempty" gorm:"column:app_id;type:text"`
}

// TableName specifies the table name for the Collection model
func (Collection) TableName() string {
	return "collections"
}

// EntityID returns the partition key
func (c Collection) EntityID() string {
	return c.CollectionID
}

// EntityVersion returns the sort key
func (c Collection) EntityVersion() int {
	return c.Version
}

// Stamp marks c as a freshly written version
func (c *Collection) Stamp(version int, at int64) {
	c.Version = version
	c.IsLatest = true
	c.UpdatedAt = at
	if c.CreatedAt == 0 {
		c.CreatedAt = at
	}
}

// IsZero reports whether c is the empty result of a lookup that found nothing
func (c Collection) IsZero() bool {
	return c.CollectionID == ""
}
