package schema

// User is a catalog user profile
type User struct {
	UserID          string `json:"userId" dynamodbav:"userId" gorm:"column:user_id;primaryKey;type:text" validate:"required"`
	UserTag         string `json:"userTag" dynamodbav:"userTag,omitempty" gorm:"column:user_tag;type:text;index:idx_users_user_tag" validate:"required"`
	Name            string `json:"name" dynamodbav:"name" gorm:"column:name;type:text"`
	Email           string `json:"email" dynamodbav:"email" gorm:"column:email;type:text" validate:"omitempty,email"`
	ProfileImageURL string `json:"profileImageURL" dynamodbav:"profileImageURL" gorm:"column:profile_image_url;type:text"`
	AppID           string `json:"appId,omitempty" dynamodbav:"appId,omitempty" gorm:"column:app_id;type:text"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

func (u User) IsZero() bool {
	return u.UserID == ""
}
