package config

import (
	"fmt"
	"math"
	"slices"
	"time"
)

// FromAny converts plain Go data into a value tree. Maps get their keys
// sorted; every node receives origin.
func FromAny(origin *Origin, in any) (Value, error) {
	switch v := in.(type) {
	case nil:
		return NewNull(origin), nil
	case Value:
		return v, nil
	case bool:
		return NewBoolean(origin, v), nil
	case string:
		return NewString(origin, v, Quoted), nil
	case int:
		return NewInteger(origin, int64(v)), nil
	case int8:
		return NewInt(origin, int32(v)), nil
	case int16:
		return NewInt(origin, int32(v)), nil
	case int32:
		return NewInt(origin, v), nil
	case int64:
		return NewInteger(origin, v), nil
	case uint8:
		return NewInt(origin, int32(v)), nil
	case uint16:
		return NewInt(origin, int32(v)), nil
	case uint32:
		return NewInteger(origin, int64(v)), nil
	case uint:
		return fromUnsigned(origin, uint64(v)), nil
	case uint64:
		return fromUnsigned(origin, v), nil
	case float32:
		return NewDouble(origin, float64(v)), nil
	case float64:
		return NewDouble(origin, v), nil
	case time.Time:
		return NewString(origin, v.Format(time.RFC3339Nano), Quoted), nil
	case []any:
		values := make([]Value, len(v))

		for i, elem := range v {
			value, err := FromAny(origin, elem)
			if err != nil {
				return nil, err
			}

			values[i] = value
		}

		return NewList(origin, values), nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}

		slices.Sort(keys)

		fields := make([]Field, len(keys))

		for i, k := range keys {
			value, err := FromAny(origin, v[k])
			if err != nil {
				return nil, err
			}

			fields[i] = Field{Key: k, Value: value}
		}

		return NewObject(origin, fields...), nil
	case fmt.Stringer:
		return NewString(origin, v.String(), Quoted), nil
	default:
		return nil, newError(ErrWrongType, origin, "", "cannot convert %T into a config value", in)
	}
}

func fromUnsigned(origin *Origin, v uint64) Value {
	if v > math.MaxInt64 {
		return NewDouble(origin, float64(v))
	}

	return NewInteger(origin, int64(v))
}
