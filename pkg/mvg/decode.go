package mvg

import (
	"encoding/json"
	"errors"
)

var errNotAList = errors.New("top level JSON value is not a list")

// decodeList unmarshals a JSON body that must be a list at the top level
func decodeList[T any](body []byte) ([]T, error) {
	var list []T
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, err
	}

	// null decodes into a nil slice without error
	if list == nil {
		return nil, errNotAList
	}

	return list, nil
}
