package schema

// CollectionLike records that a user liked a collection. The row existing is the like.
type CollectionLike struct {
	CollectionID string `json:"collectionId" dynamodbav:"collectionId" gorm:"column:collection_id;primaryKey;type:text"`
	UserID       string `json:"userId" dynamodbav:"userId" gorm:"column:user_id;primaryKey;type:text;index:idx_collection_likes_user_id"`
	CreatedAt    int64  `json:"createdAt" dynamodbav:"createdAt" gorm:"column:created_at;not null;autoCreateTime:false"`
}

// TableName specifies the table name for the CollectionLike model
func (CollectionLike) TableName() string {
	return "collection_likes"
}

func (l CollectionLike) SubjectID() string {
	return l.CollectionID
}

func (l CollectionLike) LikedBy() string {
	return l.UserID
}

// NFTLike records that a user liked an NFT
type NFTLike struct {
	NFTID     string `json:"nftId" dynamodbav:"nftId" gorm:"column:nft_id;primaryKey;type:text"`
	UserID    string `json:"userId" dynamodbav:"userId" gorm:"column:user_id;primaryKey;type:text;index:idx_nft_likes_user_id"`
	CreatedAt int64  `json:"createdAt" dynamodbav:"createdAt" gorm:"column:created_at;not null;autoCreateTime:false"`
}

// TableName specifies the table name for the NFTLike model
func (NFTLike) TableName() string {
	return "nft_likes"
}

func (l NFTLike) SubjectID() string {
	return l.NFTID
}

func (l NFTLike) LikedBy() string {
	return l.UserID
}
