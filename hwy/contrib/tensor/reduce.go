// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tensor

import (
	"fmt"

	"github.com/ajroetker/hwyqat/hwy"
)

// AMinMax returns the minimum and maximum over all elements. A NaN element
// makes both results NaN.
func (t *Dense) AMinMax() (lo, hi float32, err error) {
	if len(t.data) == 0 {
		return 0, 0, ErrEmpty
	}
	lo, hi = aminmax(t.data)
	return lo, hi, nil
}

// AMinMaxAxis0 writes the minimum and maximum of every channel along axis 0
// into mins and maxs, which must hold Dim(0) values each.
func (t *Dense) AMinMaxAxis0(mins, maxs []float32) error {
	_, channels, inner, err := t.SplitAxis(0)
	if err != nil {
		return err
	}
	if len(mins) != channels || len(maxs) != channels {
		return fmt.Errorf("%w: %d channels, buffers hold %d and %d", ErrShapeMismatch, channels, len(mins), len(maxs))
	}
	if inner == 0 || channels == 0 {
		return ErrEmpty
	}
	for c := range channels {
		mins[c], maxs[c] = aminmax(t.data[c*inner : (c+1)*inner])
	}
	return nil
}

func aminmax(data []float32) (float32, float32) {
	return hwy.Reduce(data, hwy.Minimum[float32]), hwy.Reduce(data, hwy.Maximum[float32])
}
