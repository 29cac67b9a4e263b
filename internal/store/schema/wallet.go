package schema

// Wallet links a chain address to a user. A user may connect several wallets per chain.
type Wallet struct {
	Address string `json:"address" dynamodbav:"address" gorm:"column:address;primaryKey;type:text" validate:"required"`
	Chain   string `json:"chain" dynamodbav:"chain" gorm:"column:chain;primaryKey;type:text" validate:"required"`
	UserID  string `json:"userId" dynamodbav:"userId" gorm:"column:user_id;type:text;index:idx_wallets_user_id" validate:"required"`
	// ConnectedTime is when the wallet was last connected, in ms since epoch
	ConnectedTime int64  `json:"connectedTime" dynamodbav:"connectedTime" gorm:"column:connected_time;not null"`
	AppID         string `json:"appId,omitempty" dynamodbav:"appId,omitempty" gorm:"column:app_id;type:text"`
}

// TableName specifies the table name for the Wallet model
func (Wallet) TableName() string {
	return "wallets"
}
