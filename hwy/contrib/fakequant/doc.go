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

// Package fakequant implements the fused moving-average observer and fake
// quantizer used in quantization-aware training.
//
// Each call to Operator.Run evaluates two gates in a fixed order:
//
//  1. observe: fold the min/max of the input into the running statistics
//     with an exponential moving average. Statistics holding ±Inf have never
//     been observed and are replaced by the first batch outright.
//  2. fakeQuant: derive (scale, zeroPoint) from the running statistics,
//     store them in the State, and return the fake-quantized input together
//     with its cachemask.
//
// With fakeQuant off the input is returned unchanged (as a copy) with an
// all-true mask.
//
// Statistics are either per tensor (one slot) or per channel along axis 0.
// The State is owned by the caller and mutated in place; an Operator holds no
// per-call state, but concurrent calls must not share a State.
//
// # Example Usage
//
//	op, err := fakequant.New(fakequant.DefaultOptions(), nil)
//	if err != nil {
//	    return err
//	}
//	st := fakequant.NewState(1)
//	for _, batch := range batches {
//	    out, mask, err := op.Run(batch, true, true, st)
//	    ...
//	}
package fakequant
