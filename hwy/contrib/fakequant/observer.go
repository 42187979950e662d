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

package fakequant

import (
	"fmt"

	"github.com/ajroetker/hwyqat/hwy"
	"github.com/ajroetker/hwyqat/hwy/contrib/tensor"
)

// ObserveMovingAverage folds the min and max of x into runningMin and
// runningMax. Per tensor, both buffers hold one value; per channel they hold
// x.Dim(0) values and channel i is the i-th slice along axis 0.
//
// Each slot is updated as
//
//	new = IsInf(old) ? cur : old + averagingConst*(cur-old)
//
// in float32. On error no buffer is modified.
func ObserveMovingAverage(x *tensor.Dense, averagingConst float32, runningMin, runningMax []float32, perChannel bool) error {
	if x == nil {
		return ErrNilInput
	}
	if !(averagingConst > 0 && averagingConst <= 1) {
		return fmt.Errorf("%w: %v", ErrAveragingConstant, averagingConst)
	}

	channels := 1
	if perChannel {
		if x.Rank() == 0 {
			return fmt.Errorf("%w: scalar input has no channel axis", ErrUnsupportedAxis)
		}
		channels = x.Dim(0)
	}
	if len(runningMin) != channels || len(runningMax) != channels {
		return fmt.Errorf("%w: want %d slots, have min %d, max %d", ErrStateShape, channels, len(runningMin), len(runningMax))
	}

	curMin := make([]float32, channels)
	curMax := make([]float32, channels)
	if perChannel {
		if err := x.AMinMaxAxis0(curMin, curMax); err != nil {
			return err
		}
	} else {
		lo, hi, err := x.AMinMax()
		if err != nil {
			return err
		}
		curMin[0], curMax[0] = lo, hi
	}

	updateRunning(runningMin, curMin, averagingConst)
	updateRunning(runningMax, curMax, averagingConst)
	return nil
}

// updateRunning blends cur into running in place.
func updateRunning(running, cur []float32, c float32) {
	cVec := hwy.Set(c)
	hwy.Map2(running, cur, running, func(old, cur hwy.Vec[float32]) hwy.Vec[float32] {
		blended := hwy.Add(old, hwy.Mul(cVec, hwy.Sub(cur, old)))
		return hwy.IfThenElse(hwy.IsInf(old), cur, blended)
	})
}
