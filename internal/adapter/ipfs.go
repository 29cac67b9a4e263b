package adapter

import (
	"io"

	shell "github.com/ipfs/go-ipfs-api"
)

// IPFSShell defines the subset of the IPFS node HTTP API used for pinning
//
//go:generate mockgen -source=ipfs.go -destination=../mocks/ipfs.go -package=mocks -mock_names=IPFSShell=MockIPFSShell
type IPFSShell interface {
	// Add adds and pins r, returning its CID
	Add(r io.Reader) (string, error)
}

type realIPFSShell struct {
	sh *shell.Shell
}

// NewIPFSShell creates a client for the IPFS node API at url
func NewIPFSShell(url string) IPFSShell {
	return &realIPFSShell{sh: shell.NewShell(url)}
}

func (s *realIPFSShell) Add(r io.Reader) (string, error) {
	return s.sh.Add(r, shell.Pin(true))
}
