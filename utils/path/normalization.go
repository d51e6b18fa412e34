/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package path (utils/path) normalizes a NameTree[Path] before it reaches
// an external Namer: trimming empty path components and guarding against
// pathologically deep Alt/Union nesting, the same role
// dirpx.dev/rfx/utils/reflect.Normalize played for container unwrapping,
// adapted from reflect.Type containers to NameTree nodes.
package path

import (
	"errors"

	"dirpx.dev/wily/apis"
)

// ErrNilTree is returned when a nil NameTree is provided.
var ErrNilTree = errors.New("path: nil NameTree provided")

// ErrTooDeep indicates the tree exceeds cfg.MaxPathDepth levels of Alt/
// Union nesting, a safety guard against pathological nesting.
var ErrTooDeep = errors.New("path: NameTree nesting exceeds MaxPathDepth")

// DefaultMaxPathDepth is used when cfg.MaxPathDepth <= 0.
const DefaultMaxPathDepth = 32

// Normalize walks tree, trimming empty Path segments in every Leaf and
// erroring if Alt/Union nesting exceeds cfg.MaxPathDepth.
func Normalize(tree apis.NameTree[apis.Path], cfg apis.Config) (apis.NameTree[apis.Path], error) {
	if tree == nil {
		return nil, ErrNilTree
	}
	maxDepth := cfg.MaxPathDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxPathDepth
	}
	return normalize(tree, maxDepth, 0)
}

func normalize(tree apis.NameTree[apis.Path], maxDepth, depth int) (apis.NameTree[apis.Path], error) {
	if depth > maxDepth {
		return nil, ErrTooDeep
	}
	switch n := tree.(type) {
	case apis.Leaf[apis.Path]:
		return apis.Leaf[apis.Path]{Value: apis.NewPath(n.Value.Segments()...)}, nil
	case apis.Neg[apis.Path]:
		return n, nil
	case apis.Empty[apis.Path]:
		return n, nil
	case apis.Alt[apis.Path]:
		children := make([]apis.NameTree[apis.Path], len(n.Children))
		for i, c := range n.Children {
			nc, err := normalize(c, maxDepth, depth+1)
			if err != nil {
				return nil, err
			}
			children[i] = nc
		}
		return apis.Alt[apis.Path]{Children: children}, nil
	case apis.Union[apis.Path]:
		children := make([]apis.WeightedTree[apis.Path], len(n.Children))
		for i, c := range n.Children {
			nc, err := normalize(c.Tree, maxDepth, depth+1)
			if err != nil {
				return nil, err
			}
			children[i] = apis.WeightedTree[apis.Path]{Weight: c.Weight, Tree: nc}
		}
		return apis.Union[apis.Path]{Children: children}, nil
	default:
		return nil, errors.New("path: unknown NameTree node")
	}
}
