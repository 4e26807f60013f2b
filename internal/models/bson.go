// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package models

import (
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// UnmarshalBSONValue decodes ObjectIds to their hex form and accepts string
// and numeric identifiers, matching UnmarshalJSON.
func (id *ID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}

	switch t {
	case bsontype.ObjectID:
		*id = ID(rv.ObjectID().Hex())
	case bsontype.String:
		*id = ID(rv.StringValue())
	case bsontype.Int32:
		*id = ID(strconv.FormatInt(int64(rv.Int32()), 10))
	case bsontype.Int64:
		*id = ID(strconv.FormatInt(rv.Int64(), 10))
	case bsontype.Double:
		*id = ID(strconv.FormatFloat(rv.Double(), 'f', -1, 64))
	case bsontype.Null, bsontype.Undefined:
		*id = ""
	default:
		return fmt.Errorf("decode id: unsupported bson type %s", t)
	}
	return nil
}
