package ast

import (
	"context"

	"github.com/viant/afs"
)

// NewSourceBufferFromStorage is a thin convenience constructor for hosts
// that already resolve `.rb`/`.jsx.rb` URLs (local, in-memory, or
// cloud-backed) through afs before handing bytes to the Walker. The core
// pipeline's own entry point never touches afs directly — file I/O stays a
// caller concern; this exists only so a caller doesn't have to duplicate
// the download call afs.Service already does well.
func NewSourceBufferFromStorage(ctx context.Context, fs afs.Service, url string) (*Source, error) {
	data, err := fs.DownloadWithURL(ctx, url)
	if err != nil {
		return nil, err
	}
	return NewSource(url, data), nil
}
