package schema

// NFT is one version of a token record, keyed by (nft_id, version)
type NFT struct {
	NFTID     string `json:"nftId" dynamodbav:"nftId" gorm:"column:nft_id;primaryKey;type:text" validate:"required"`
	Version   int    `json:"version" dynamodbav:"version" gorm:"column:version;primaryKey;autoIncrement:false"`
	IsLatest  bool   `json:"isLatest" dynamodbav:"isLatest" gorm:"column:is_latest;not null;default:false"`
	CreatedAt int64  `json:"createdAt" dynamodbav:"createdAt" gorm:"column:created_at;not null;autoCreateTime:false"`
	UpdatedAt int64  `json:"updatedAt" dynamodbav:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime:false"`

	TokenID             int64   `json:"tokenId" dynamodbav:"tokenId" gorm:"column:token_id;not null" validate:"required"`
	DotID               string  `json:"dotId" dynamodbav:"dotId,omitempty" gorm:"column:dot_id;type:text;index:idx_nfts_dot_id"`
	Name                string  `json:"name" dynamodbav:"name" gorm:"column:name;type:text"`
	Description         string  `json:"description" dynamodbav:"description" gorm:"column:description;type:text"`
	Chain               string  `json:"chain" dynamodbav:"chain" gorm:"column:chain;type:text"`
	Standard            string  `json:"standard" dynamodbav:"standard" gorm:"column:standard;type:text"`
	ScanCount           int64   `json:"scanCount" dynamodbav:"scanCount" gorm:"column:scan_count;not null;default:0"`
	ViewCount           int64   `json:"viewCount" dynamodbav:"viewCount" gorm:"column:view_count;not null;default:0"`
	Supply              int64   `json:"supply" dynamodbav:"supply" gorm:"column:supply"`
	CollectionAddress   string  `json:"collectionAddress" dynamodbav:"collectionAddress,omitempty" gorm:"column:collection_address;type:text;index:idx_nfts_collection_address"`
	CollectionID        string  `json:"collectionId" dynamodbav:"collectionId,omitempty" gorm:"column:collection_id;type:text;index:idx_nfts_collection_id"`
	MarketplaceURL      string  `json:"marketplaceURL" dynamodbav:"marketplaceURL" gorm:"column:marketplace_url;type:text"`
	MintPrice           float64 `json:"mintPrice" dynamodbav:"mintPrice" gorm:"column:mint_price"`
	CreatorSignature    string  `json:"creatorSignature" dynamodbav:"creatorSignature" gorm:"column:creator_signature;type:text"`
	Amount              int64   `json:"amount" dynamodbav:"amount" gorm:"column:amount"`
	ImageURL            string  `json:"imageURL" dynamodbav:"imageURL" gorm:"column:image_url;type:text"`
	OwnerAddress        string  `json:"ownerAddress" dynamodbav:"ownerAddress" gorm:"column:owner_address;type:text"`
	CreatorAddress      string  `json:"creatorAddress" dynamodbav:"creatorAddress" gorm:"column:creator_address;type:text"`
	IsMinted            bool    `json:"isMinted" dynamodbav:"isMinted" gorm:"column:is_minted;not null;default:false"`
	Signature           string  `json:"signature,omitempty" dynamodbav:"signature,omitempty" gorm:"column:signature;type:text"`
	MaxTokenID          *int64  `json:"maxTokenId,omitempty" dynamodbav:"maxTokenId,omitempty" gorm:"column:max_token_id"`
	IsNFTImageScannable bool    `json:"isNFTImageScannable" dynamodbav:"isNFTImageScannable" gorm:"column:is_nft_image_scannable;not null;default:false"`
	AppID               string  `json:"appId,omitempty" dynamodbav:"appId,omitempty" gorm:"column:app_id;type:text"`
}

// TableName specifies the table name for the NFT model
func (NFT) TableName() string {
	return "nfts"
}

func (n NFT) EntityID() string {
	return n.NFTID
}

func (n NFT) EntityVersion() int {
	return n.Version
}

// Stamp marks n as a freshly written version
func (n *NFT) Stamp(version int, at int64) {
	n.Version = version
	n.IsLatest = true
	n.UpdatedAt = at
	if n.CreatedAt == 0 {
		n.CreatedAt = at
	}
}

func (n NFT) IsZero() bool {
	return n.NFTID == ""
}
