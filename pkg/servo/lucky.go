package servo

import (
	"context"
	"fmt"

	"github.com/servolink-protocol/servolink-go/pkg/discovery"
	"github.com/servolink-protocol/servolink-go/pkg/net"
)

// ConnectFunc establishes a network to a discovered drive gateway.
type ConnectFunc func(drive *discovery.Drive) (net.Network, error)

// Lucky browses for drive gateways and returns a handle to the first node
// that accepts a connection. Gateways that fail to connect and nodes that
// fail to attach are skipped. The caller owns the returned handle's network
// and must close both.
func Lucky(ctx context.Context, browser discovery.Browser, connect ConnectFunc, opts ...Option) (*Servo, error) {
	drives, err := browser.Browse(ctx)
	if err != nil {
		return nil, err
	}

	for {
		select {
		case drive, ok := <-drives:
			if !ok {
				return nil, fmt.Errorf("no reachable drive: %w", discovery.ErrNotFound)
			}

			network, err := connect(drive)
			if err != nil {
				continue
			}

			nodes := drive.Nodes
			if len(nodes) == 0 {
				nodes = []uint8{1}
			}

			for _, node := range nodes {
				s, err := New(network, node, opts...)
				if err != nil {
					continue
				}
				return s, nil
			}

			network.Close()

		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
