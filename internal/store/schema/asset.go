package schema

// Asset wraps a piece of media attached to an NFT. It is a single record that is
// overwritten in place, not versioned.
type Asset struct {
	AssetID        string `json:"assetId" dynamodbav:"assetId" gorm:"column:asset_id;primaryKey;type:text" validate:"required"`
	NFTID          string `json:"nftId" dynamodbav:"nftId,omitempty" gorm:"column:nft_id;type:text;index:idx_assets_nft_id"`
	AssetType      string `json:"assetType" dynamodbav:"assetType" gorm:"column:asset_type;type:text"`
	AssetURL       string `json:"assetURL" dynamodbav:"assetURL" gorm:"column:asset_url;type:text"`
	CreatorAddress string `json:"creatorAddress" dynamodbav:"creatorAddress" gorm:"column:creator_address;type:text"`
	CreatorID      string `json:"creatorId" dynamodbav:"creatorId" gorm:"column:creator_id;type:text"`
	Visibility     bool   `json:"visibility" dynamodbav:"visibility" gorm:"column:visibility;not null;default:false"`
	Processed      bool   `json:"processed" dynamodbav:"processed" gorm:"column:processed;not null;default:false"`
	// IPFSHash is the content identifier returned by the pinning service
	IPFSHash string `json:"ipfsHash" dynamodbav:"ipfsHash" gorm:"column:ipfs_hash;type:text"`
	IPFSURL  string `json:"ipfsURL" dynamodbav:"ipfsURL" gorm:"column:ipfs_url;type:text"`
	AppID    string `json:"appId,omitempty" dynamodbav:"appId,omitempty" gorm:"column:app_id;type:text"`
}

// TableName specifies the table name for the Asset model
func (Asset) TableName() string {
	return "assets"
}

func (a Asset) IsZero() bool {
	return a.AssetID == ""
}
