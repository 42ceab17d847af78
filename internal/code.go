package internal

import (
	"github.com/google/orderedcode"
)

// FeaturePrefix returns the common key prefix of every tuple stored for a feature.
func FeaturePrefix(featureId string) ([]byte, error) {
	return orderedcode.Append(make([]byte, 0), featureId)
}

// TupleKey encodes the key of the n-th tuple of a feature, so that a forward
// scan over FeaturePrefix visits tuples in index order.
func TupleKey(featureId string, index uint64) ([]byte, error) {
	return orderedcode.Append(make([]byte, 0), featureId, index)
}

func ParseTupleKey(key []byte) (string, uint64, error) {
	var featureId string
	var index uint64
	_, err := orderedcode.Parse(string(key), &featureId, &index)
	return featureId, index, err
}

// ParseFeaturePrefix reports whether key is exactly a feature prefix, and
// returns the feature id if so.
func ParseFeaturePrefix(key []byte) (string, bool) {
	var featureId string
	remaining, err := orderedcode.Parse(string(key), &featureId)
	return featureId, err == nil && remaining == ""
}
