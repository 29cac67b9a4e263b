package auth

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/feral-file/ff-catalog/internal/domain"
)

// WalletProof is a typed-data signature over a user id, proving that the
// signer controls Address
type WalletProof struct {
	Address   string
	Signature string
	// ChainID is part of the signing domain when non-zero
	ChainID int64
	UserID  string
}

// WalletVerifier checks wallet ownership proofs
//
//go:generate mockgen -source=wallet.go -destination=../mocks/wallet_verifier.go -package=mocks -mock_names=WalletVerifier=MockWalletVerifier
type WalletVerifier interface {
	// Verify returns nil when the proof was signed by its address
	Verify(proof WalletProof) error
}

type eip712Verifier struct {
	domainName string
}

// NewEIP712WalletVerifier verifies proofs signed under the EIP-712 domain
// {name: domainName, version: "1", chainId}
func NewEIP712WalletVerifier(domainName string) WalletVerifier {
	if domainName == "" {
		domainName = domain.DEFAULT_WALLET_DOMAIN_NAME
	}
	return &eip712Verifier{domainName: domainName}
}

func (v *eip712Verifier) Verify(proof WalletProof) error {
	if !common.IsHexAddress(proof.Address) {
		return fmt.Errorf("%w: malformed address %q", domain.ErrInvalidSignature, proof.Address)
	}

	hash, _, err := apitypes.TypedDataAndHash(identityTypedData(v.domainName, proof.ChainID, proof.UserID))
	if err != nil {
		return fmt.Errorf("failed to hash typed data: %w", err)
	}

	sig, err := hexutil.Decode(proof.Signature)
	if err != nil || len(sig) != crypto.SignatureLength {
		return fmt.Errorf("%w: malformed signature", domain.ErrInvalidSignature)
	}
	// wallets sign with v in {27, 28}
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
	}

	recovered := crypto.PubkeyToAddress(*pub)
	if recovered != common.HexToAddress(proof.Address) {
		return fmt.Errorf("%w: signed by %s", domain.ErrInvalidSignature, recovered.Hex())
	}
	return nil
}

// identityTypedData is the document a wallet signs to link itself to userID
func identityTypedData(domainName string, chainID int64, userID string) apitypes.TypedData {
	domainTypes := []apitypes.Type{
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
	}
	typedDomain := apitypes.TypedDataDomain{
		Name:    domainName,
		Version: "1",
	}
	if chainID != 0 {
		domainTypes = append(domainTypes, apitypes.Type{Name: "chainId", Type: "uint256"})
		typedDomain.ChainId = math.NewHexOrDecimal256(chainID)
	}

	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": domainTypes,
			"identity": []apitypes.Type{
				{Name: "userId", Type: "string"},
			},
		},
		PrimaryType: "identity",
		Domain:      typedDomain,
		Message: apitypes.TypedDataMessage{
			"userId": userID,
		},
	}
}
