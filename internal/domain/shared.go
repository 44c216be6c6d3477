/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"encoding/base64"
	"time"
)

// SharedWidgetData is the flattened copy of the most recently saved widget
// that the home-screen extension reads. Field names are part of the wire format.
type SharedWidgetData struct {
	Text             string    `json:"text"`
	Color            RGBAColor `json:"color"`
	SizeRaw          string    `json:"sizeRaw"`
	TemplateRaw      string    `json:"templateRaw"`
	ImageBlobsBase64 []string  `json:"imageBlobsBase64"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Size parses SizeRaw.
func (d SharedWidgetData) Size() (WidgetSize, bool) { return ParseSize(d.SizeRaw) }

// Template parses TemplateRaw.
func (d SharedWidgetData) Template() (Template, bool) { return ParseTemplate(d.TemplateRaw) }

// Images decodes the base64 blobs. Undecodable entries become empty blobs so
// slot positions are kept.
func (d SharedWidgetData) Images() [][]byte {
	out := make([][]byte, len(d.ImageBlobsBase64))
	for i, s := range d.ImageBlobsBase64 {
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			continue
		}
		out[i] = b
	}
	return out
}

// EncodeImages base64-encodes blobs for the shared record. A nil input yields
// an empty, non-nil slice so the JSON carries [] rather than null.
func EncodeImages(images [][]byte) []string {
	out := make([]string, 0, len(images))
	for _, b := range images {
		out = append(out, base64.StdEncoding.EncodeToString(b))
	}
	return out
}
