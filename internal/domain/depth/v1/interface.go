package depthv1

import "context"

// Store defines the interface for publishing depth snapshots to the
// read-side cache.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=depthv1_mock
type Store interface {
	// StoreDepth writes the snapshot for its symbol.
	StoreDepth(ctx context.Context, snapshot *DepthSnapshot) error
}
