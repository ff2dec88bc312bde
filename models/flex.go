package models

import "encoding/json"

// OneOrMany decodes a JSON value that may be either a single object or an array
// of objects. Older records stored customInfo.system and customInfo.license as a
// bare object; newer ones store arrays. Internally everything is a slice, and
// marshalling always emits the array form.
type OneOrMany[T any] []T

func (o *OneOrMany[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = nil
		return nil
	}

	var many []T
	if err := json.Unmarshal(data, &many); err == nil {
		*o = many
		return nil
	}

	var one T
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*o = []T{one}
	return nil
}

func (o OneOrMany[T]) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]T(o))
}
