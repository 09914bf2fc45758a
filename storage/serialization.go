// Copyright 2025 Appscout Authors
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


package storage

import (
	"github.com/appscout/appscout/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalItem serializes an Item to bytes.
func MarshalItem(item *core.Item) []byte {
	buf := make([]byte, core.ItemMUS.Size(*item))
	core.ItemMUS.Marshal(*item, buf)
	return buf
}

// UnmarshalItem deserializes an Item from bytes.
func UnmarshalItem(data []byte) (*core.Item, error) {
	item, _, err := core.ItemMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// MarshalProfile serializes a UserProfile to bytes.
func MarshalProfile(profile *core.UserProfile) []byte {
	buf := make([]byte, core.UserProfileMUS.Size(*profile))
	core.UserProfileMUS.Marshal(*profile, buf)
	return buf
}

// UnmarshalProfile deserializes a UserProfile from bytes.
func UnmarshalProfile(data []byte) (*core.UserProfile, error) {
	profile, _, err := core.UserProfileMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// MarshalArm serializes a BanditArm to bytes.
func MarshalArm(arm *core.BanditArm) []byte {
	buf := make([]byte, core.BanditArmMUS.Size(*arm))
	core.BanditArmMUS.Marshal(*arm, buf)
	return buf
}

// UnmarshalArm deserializes a BanditArm from bytes.
func UnmarshalArm(data []byte) (*core.BanditArm, error) {
	arm, _, err := core.BanditArmMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &arm, nil
}

// MarshalEvent serializes an InteractionEvent to bytes.
func MarshalEvent(event *core.InteractionEvent) []byte {
	buf := make([]byte, core.InteractionEventMUS.Size(*event))
	core.InteractionEventMUS.Marshal(*event, buf)
	return buf
}

// UnmarshalEvent deserializes an InteractionEvent from bytes.
func UnmarshalEvent(data []byte) (*core.InteractionEvent, error) {
	event, _, err := core.InteractionEventMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &event, nil
}
