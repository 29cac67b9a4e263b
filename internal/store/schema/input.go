package schema

import (
	"gorm.io/datatypes"
)

// CollectionInput is the loosely-typed payload accepted when creating or
// updating a collection. Unknown JSON fields are ignored when decoding into it.
// Pointer fields distinguish "absent" from the zero value.
type CollectionInput struct {
	CollectionID              string   `json:"collectionId"`
	Address                   string   `json:"address"`
	CreatorAddress            string   `json:"creatorAddress"`
	Name                      string   `json:"name"`
	Description               string   `json:"description"`
	Category                  string   `json:"category"`
	CoverPhoto                string   `json:"coverPhoto"`
	MainPhoto                 string   `json:"mainPhoto"`
	Chain                     string   `json:"chain"`
	Standard                  string   `json:"standard"`
	IsListed                  *bool    `json:"isListed"`
	Status                    string   `json:"status"`
	Links                     []string `json:"links"`
	IsCreatedByPlatform       *bool    `json:"isCreatedByPlatform"`
	ShippingRequired          *bool    `json:"shippingRequired"`
	OwnerSignatureMintAllowed *bool    `json:"ownerSignatureMintAllowed"`
}

// NewCollection copies the known fields of in and applies defaults.
// shippingRequired defaults to false and ownerSignatureMintAllowed to true.
func NewCollection(in CollectionInput) (Collection, error) {
	c := Collection{
		CollectionID:              in.CollectionID,
		Address:                   in.Address,
		CreatorAddress:            in.CreatorAddress,
		Name:                      in.Name,
		Description:               in.Description,
		Category:                  in.Category,
		CoverPhoto:                in.CoverPhoto,
		MainPhoto:                 in.MainPhoto,
		Chain:                     in.Chain,
		Standard:                  in.Standard,
		IsListed:                  boolOr(in.IsListed, false),
		Status:                    in.Status,
		Links:                     datatypes.JSONSlice[string](in.Links),
		IsCreatedByPlatform:       boolOr(in.IsCreatedByPlatform, false),
		ShippingRequired:          boolOr(in.ShippingRequired, false),
		OwnerSignatureMintAllowed: boolOr(in.OwnerSignatureMintAllowed, true),
	}
	if err := Validate(c); err != nil {
		return Collection{}, err
	}
	return c, nil
}

// Apply overlays the fields present in in onto c. Empty strings and nil
// pointers leave the existing value untouched.
func (in CollectionInput) Apply(c *Collection) {
	setString(&c.Address, in.Address)
	setString(&c.CreatorAddress, in.CreatorAddress)
	setString(&c.Name, in.Name)
	setString(&c.Description, in.Description)
	setString(&c.Category, in.Category)
	setString(&c.CoverPhoto, in.CoverPhoto)
	setString(&c.MainPhoto, in.MainPhoto)
	setString(&c.Chain, in.Chain)
	setString(&c.Standard, in.Standard)
	setString(&c.Status, in.Status)
	if in.Links != nil {
		c.Links = datatypes.JSONSlice[string](in.Links)
	}
	setBool(&c.IsListed, in.IsListed)
	setBool(&c.IsCreatedByPlatform, in.IsCreatedByPlatform)
	setBool(&c.ShippingRequired, in.ShippingRequired)
	setBool(&c.OwnerSignatureMintAllowed, in.OwnerSignatureMintAllowed)
}

// NFTInput is the payload accepted when creating an NFT
type NFTInput struct {
	NFTID               string  `json:"nftId"`
	TokenID             int64   `json:"tokenId"`
	DotID               string  `json:"dotId"`
	Name                string  `json:"name"`
	Description         string  `json:"description"`
	Chain               string  `json:"chain"`
	Standard            string  `json:"standard"`
	Supply              int64   `json:"supply"`
	CollectionAddress   string  `json:"collectionAddress"`
	CollectionID        string  `json:"collectionId"`
	MarketplaceURL      string  `json:"marketplaceURL"`
	MintPrice           float64 `json:"mintPrice"`
	CreatorSignature    string  `json:"creatorSignature"`
	Amount              int64   `json:"amount"`
	ImageURL            string  `json:"imageURL"`
	OwnerAddress        string  `json:"ownerAddress"`
	CreatorAddress      string  `json:"creatorAddress"`
	IsMinted            *bool   `json:"isMinted"`
	Signature           string  `json:"signature"`
	MaxTokenID          *int64  `json:"maxTokenId"`
	IsNFTImageScannable *bool   `json:"isNFTImageScannable"`
}

// NewNFT copies the known fields of in. Counters always start at zero.
func NewNFT(in NFTInput) (NFT, error) {
	n := NFT{
		NFTID:               in.NFTID,
		TokenID:             in.TokenID,
		DotID:               in.DotID,
		Name:                in.Name,
		Description:         in.Description,
		Chain:               in.Chain,
		Standard:            in.Standard,
		Supply:              in.Supply,
		CollectionAddress:   in.CollectionAddress,
		CollectionID:        in.CollectionID,
		MarketplaceURL:      in.MarketplaceURL,
		MintPrice:           in.MintPrice,
		CreatorSignature:    in.CreatorSignature,
		Amount:              in.Amount,
		ImageURL:            in.ImageURL,
		OwnerAddress:        in.OwnerAddress,
		CreatorAddress:      in.CreatorAddress,
		IsMinted:            boolOr(in.IsMinted, false),
		Signature:           in.Signature,
		MaxTokenID:          in.MaxTokenID,
		IsNFTImageScannable: boolOr(in.IsNFTImageScannable, false),
	}
	if err := Validate(n); err != nil {
		return NFT{}, err
	}
	return n, nil
}

// NewWallet builds a wallet link for userID
func NewWallet(address, chain, userID string, connectedTime int64) (Wallet, error) {
	w := Wallet{
		Address:       address,
		Chain:         chain,
		UserID:        userID,
		ConnectedTime: connectedTime,
	}
	if err := Validate(w); err != nil {
		return Wallet{}, err
	}
	return w, nil
}

// UserInput is the payload accepted when saving a user profile
type UserInput struct {
	UserID          string `json:"userId"`
	UserTag         string `json:"userTag"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	ProfileImageURL string `json:"profileImageURL"`
}

func NewUser(in UserInput) (User, error) {
	u := User{
		UserID:          in.UserID,
		UserTag:         in.UserTag,
		Name:            in.Name,
		Email:           in.Email,
		ProfileImageURL: in.ProfileImageURL,
	}
	if err := Validate(u); err != nil {
		return User{}, err
	}
	return u, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
