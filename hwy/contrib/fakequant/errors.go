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

import "errors"

var (
	// ErrUnsupportedAxis is returned when per-channel mode names an axis other than 0.
	ErrUnsupportedAxis = errors.New("fakequant: per-channel statistics support only axis 0")

	// ErrStateShape is returned when state buffers do not match the channel count.
	ErrStateShape = errors.New("fakequant: state does not match channel count")

	// ErrAveragingConstant is returned when the averaging constant is outside (0, 1].
	ErrAveragingConstant = errors.New("fakequant: averaging constant must be in (0, 1]")

	// ErrNilInput is returned when the input tensor, the state or the chooser is nil.
	ErrNilInput = errors.New("fakequant: nil input")
)
