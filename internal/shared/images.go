/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package shared

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png"
	"math"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	shrinkQuality  = 80
	shrinkAttempts = 6
	shrinkStep     = 0.7
)

// Shrink brings blob under limit bytes by downscaling and re-encoding it as
// JPEG. Blobs already within the limit, empty blobs and a limit <= 0 are
// returned unchanged. It reports false when the blob cannot be decoded or
// does not fit even after several passes.
func Shrink(blob []byte, limit int) ([]byte, bool) {
	if limit <= 0 || len(blob) <= limit {
		return blob, true
	}
	src, _, err := image.Decode(bytes.NewReader(blob))
	if err != nil {
		return nil, false
	}
	b := src.Bounds()
	f := math.Sqrt(float64(limit) / float64(len(blob)))
	for i := 0; i < shrinkAttempts; i++ {
		w := max(1, int(float64(b.Dx())*f))
		h := max(1, int(float64(b.Dy())*f))
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: shrinkQuality}); err != nil {
			return nil, false
		}
		if buf.Len() <= limit {
			return buf.Bytes(), true
		}
		f *= shrinkStep
	}
	return nil, false
}
