package pinning

import (
	"context"
	"fmt"
	"io"

	"github.com/feral-file/ff-catalog/internal/adapter"
)

type ipfsPinner struct {
	shell adapter.IPFSShell
}

// NewIPFSPinner creates a pinner that adds content to a self-hosted IPFS node.
// The node derives the CID from content alone, so name and contentType are unused.
func NewIPFSPinner(shell adapter.IPFSShell) Pinner {
	return &ipfsPinner{shell: shell}
}

func (p *ipfsPinner) Pin(ctx context.Context, name string, _ string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	cid, err := p.shell.Add(r)
	if err != nil {
		return "", fmt.Errorf("failed to add %s to ipfs: %w", name, err)
	}
	return cid, nil
}
