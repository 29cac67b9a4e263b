package domain

const (
	// CATEGORY_ALL selects every collection through a full table scan
	CATEGORY_ALL = "all"

	// TEST_CATEGORY_MARKER marks categories hidden from listings unless overridden
	TEST_CATEGORY_MARKER = "test"

	// DEFAULT_IPFS_GATEWAY is used when a gateway URL is derived for a content identifier
	DEFAULT_IPFS_GATEWAY = "https://gateway.pinata.cloud"

	// DEFAULT_WALLET_DOMAIN_NAME is the EIP-712 domain name wallets sign their user id under
	DEFAULT_WALLET_DOMAIN_NAME = "Unic-Wallet"
)
