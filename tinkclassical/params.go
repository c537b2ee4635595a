package tinkclassical

import (
	"encoding/json"
	"fmt"

	"github.com/vdparikh/classical"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// MarshalParams encodes p as a deterministic protobuf Struct. Field names
// follow the json tags of classical.Params and zero values are omitted, so
// equal configurations always produce equal bytes.
func MarshalParams(p classical.Params) ([]byte, error) {
	s, err := paramsToStruct(p)
	if err != nil {
		return nil, err
	}
	b, err := proto.MarshalOptions{Deterministic: true}.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}
	return b, nil
}

// UnmarshalParams is the inverse of MarshalParams.
func UnmarshalParams(b []byte) (classical.Params, error) {
	s := &structpb.Struct{}
	if err := proto.Unmarshal(b, s); err != nil {
		return classical.Params{}, fmt.Errorf("failed to unmarshal params: %w", err)
	}
	return structToParams(s)
}

func paramsToStruct(p classical.Params) (*structpb.Struct, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode params: %w", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to encode params: %w", err)
	}
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to build params struct: %w", err)
	}
	return s, nil
}

func structToParams(s *structpb.Struct) (classical.Params, error) {
	var p classical.Params
	raw, err := json.Marshal(s.AsMap())
	if err != nil {
		return p, fmt.Errorf("failed to decode params: %w", err)
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("failed to decode params: %w", err)
	}
	if p.Cipher == "" {
		return p, fmt.Errorf("%w: key does not name a cipher", classical.ErrInvalidKey)
	}
	return p, nil
}
