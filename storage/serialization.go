// Copyright 2025 Poiesic Systems
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
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/helpmatch/core"
)

// Records are encoded as a fixed sequence of MUS strings followed by the
// record's numeric field. Field order is part of the on-disk format: append
// new fields at the end, never reorder.

func volunteerStrings(v *core.Volunteer) []*string {
	return []*string{
		&v.ID, &v.Name, &v.ContactInformation, &v.Location, &v.Skills,
		&v.LanguagesSpoken, &v.PreferredServiceAreas, &v.Status,
		&v.Transportation, &v.WillingnessToTravel,
	}
}

func requestStrings(r *core.HelpRequest) []*string {
	return []*string{
		&r.ID, &r.Category, &r.Location, &r.RequestType, &r.PriorityLevel,
		&r.LeadVolunteerNeeded, &r.ForSelfOrOthers, &r.IsCalamity, &r.Subject,
		&r.Description, &r.LanguagePreferred, &r.RequestorID, &r.Status,
		&r.AssignedVolunteer, &r.ExternalID,
	}
}

func marshalRecord(fields []*string, number float64) []byte {
	size := varint.Float64.Size(number)
	for _, f := range fields {
		size += ord.String.Size(*f)
	}
	buf := make([]byte, size)
	offset := 0
	for _, f := range fields {
		offset += ord.String.Marshal(*f, buf[offset:])
	}
	varint.Float64.Marshal(number, buf[offset:])
	return buf
}

func unmarshalRecord(data []byte, fields []*string) (float64, error) {
	offset := 0
	for _, f := range fields {
		s, n, err := ord.String.Unmarshal(data[offset:])
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
		}
		*f = s
		offset += n
	}
	number, _, err := varint.Float64.Unmarshal(data[offset:])
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return number, nil
}

// MarshalVolunteer serializes a Volunteer to bytes.
func MarshalVolunteer(v *core.Volunteer) []byte {
	return marshalRecord(volunteerStrings(v), v.Rating)
}

// UnmarshalVolunteer deserializes a Volunteer from bytes.
func UnmarshalVolunteer(data []byte) (*core.Volunteer, error) {
	v := &core.Volunteer{}
	rating, err := unmarshalRecord(data, volunteerStrings(v))
	if err != nil {
		return nil, err
	}
	v.Rating = rating
	return v, nil
}

// MarshalHelpRequest serializes a HelpRequest to bytes.
func MarshalHelpRequest(r *core.HelpRequest) []byte {
	return marshalRecord(requestStrings(r), r.Duration)
}

// UnmarshalHelpRequest deserializes a HelpRequest from bytes.
func UnmarshalHelpRequest(data []byte) (*core.HelpRequest, error) {
	r := &core.HelpRequest{}
	duration, err := unmarshalRecord(data, requestStrings(r))
	if err != nil {
		return nil, err
	}
	r.Duration = duration
	return r, nil
}

// MarshalVector serializes an embedding as a length prefix followed by its components.
func MarshalVector(vector []float32) []byte {
	size := varint.Int.Size(len(vector))
	for _, x := range vector {
		size += varint.Float32.Size(x)
	}
	buf := make([]byte, size)
	offset := varint.Int.Marshal(len(vector), buf)
	for _, x := range vector {
		offset += varint.Float32.Marshal(x, buf[offset:])
	}
	return buf
}

// UnmarshalVector deserializes an embedding written by MarshalVector.
func UnmarshalVector(data []byte) ([]float32, error) {
	length, offset, err := varint.Int.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	if length < 0 || length > len(data) {
		return nil, ErrTruncatedData
	}
	vector := make([]float32, length)
	for i := range vector {
		x, n, err := varint.Float32.Unmarshal(data[offset:])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTruncatedData, err)
		}
		vector[i] = x
		offset += n
	}
	return vector, nil
}
