// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/mlp/internal/serialization"
)

// Header is the JSON header stored with a saved network.
type Header = serialization.Header

// TrainingMeta records training progress in a Header.
type TrainingMeta = serialization.TrainingMeta

// Save writes net to path in the model file format.
//
// Parameters:
//   - net: The network to save
//   - path: File path to write to
//   - metadata: Optional metadata (can be nil)
//
// Example:
//
//	err := nn.Save(net, "mnist.mlpn", map[string]string{"dataset": "mnist"})
func Save(net *Network, path string, metadata map[string]string) error {
	return serialization.SaveFile(path, net, serialization.Header{Metadata: metadata})
}

// Load reads a network saved by Save, verifying its checksum and restoring
// its activation.
//
// Example:
//
//	net, header, err := nn.Load("mnist.mlpn")
func Load(path string) (*Network, Header, error) {
	return serialization.LoadFile(path, serialization.ReaderOptions{})
}
