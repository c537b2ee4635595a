// Package tinkclassical provides Tink integration for the classical ciphers.
// A cipher configuration is stored as a Tink key so that it can live in a
// keyset file and be loaded through a keyset.Handle like any other primitive.
package tinkclassical

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/google/tink/go/core/registry"
	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	tinkpb "github.com/google/tink/go/proto/tink_go_proto"
	"github.com/vdparikh/classical"
	"google.golang.org/protobuf/proto"
)

const (
	// TypeURL is the type URL for classical cipher keys in Tink's registry.
	TypeURL = "type.googleapis.com/classical.ClassicalCipherKey"
)

// KeyManager implements registry.KeyManager for classical cipher keys.
// The serialized key is the output of MarshalParams.
type KeyManager struct {
	typeURL string
	opts    []classical.Option
}

// NewKeyManager creates a new key manager. The options are handed to every
// cipher it builds.
func NewKeyManager(opts ...classical.Option) *KeyManager {
	return &KeyManager{
		typeURL: TypeURL,
		opts:    opts,
	}
}

// Primitive creates a classical.Cipher from the given serialized key.
func (km *KeyManager) Primitive(serializedKey []byte) (interface{}, error) {
	p, err := UnmarshalParams(serializedKey)
	if err != nil {
		return nil, err
	}
	c, err := classical.New(p, km.opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return c, nil
}

// DoesSupport returns true if this KeyManager supports the given key type URL.
func (km *KeyManager) DoesSupport(typeURL string) bool {
	return typeURL == km.typeURL
}

// TypeURL returns the type URL of the keys managed by this KeyManager.
func (km *KeyManager) TypeURL() string {
	return km.typeURL
}

// NewKey validates the Params carried by a key template and returns them as
// the key message. Classical keys hold no secret randomness, so the key is
// the template value itself.
func (km *KeyManager) NewKey(serializedKeyFormat []byte) (proto.Message, error) {
	p, err := km.validate(serializedKeyFormat)
	if err != nil {
		return nil, err
	}
	key, err := paramsToStruct(p)
	if err != nil {
		return nil, err
	}
	return key, nil
}

// NewKeyData creates a new KeyData from the given key template value.
func (km *KeyManager) NewKeyData(serializedKeyFormat []byte) (*tinkpb.KeyData, error) {
	p, err := km.validate(serializedKeyFormat)
	if err != nil {
		return nil, err
	}
	value, err := MarshalParams(p)
	if err != nil {
		return nil, err
	}
	return &tinkpb.KeyData{
		TypeUrl:         km.typeURL,
		Value:           value,
		KeyMaterialType: tinkpb.KeyData_SYMMETRIC,
	}, nil
}

func (km *KeyManager) validate(serializedKeyFormat []byte) (classical.Params, error) {
	p, err := UnmarshalParams(serializedKeyFormat)
	if err != nil {
		return p, err
	}
	if _, err := classical.New(p); err != nil {
		return p, fmt.Errorf("invalid key template: %w", err)
	}
	return p, nil
}

// Verify that KeyManager implements registry.KeyManager
var _ registry.KeyManager = (*KeyManager)(nil)

// KeyTemplate creates a key template for the cipher described by p:
//
//	handle, err := keyset.NewHandle(tinkclassical.KeyTemplate(p))
//
// The parameters are checked before the template is returned.
func KeyTemplate(p classical.Params) (*tinkpb.KeyTemplate, error) {
	if _, err := classical.New(p); err != nil {
		return nil, fmt.Errorf("invalid key template: %w", err)
	}
	value, err := MarshalParams(p)
	if err != nil {
		return nil, err
	}
	return &tinkpb.KeyTemplate{
		TypeUrl:          TypeURL,
		Value:            value,
		OutputPrefixType: tinkpb.OutputPrefixType_RAW,
	}, nil
}

// NewKeysetHandle creates a single-key keyset handle for p without going
// through the registry. The keyset is unencrypted.
func NewKeysetHandle(p classical.Params) (*keyset.Handle, error) {
	template, err := KeyTemplate(p)
	if err != nil {
		return nil, err
	}

	keyIDBytes := make([]byte, 4)
	if _, err := rand.Read(keyIDBytes); err != nil {
		return nil, fmt.Errorf("failed to generate key ID: %w", err)
	}
	keyID := binary.BigEndian.Uint32(keyIDBytes)
	if keyID == 0 {
		keyID = 1
	}

	ks := &tinkpb.Keyset{
		PrimaryKeyId: keyID,
		Key: []*tinkpb.Keyset_Key{{
			KeyData: &tinkpb.KeyData{
				TypeUrl:         TypeURL,
				Value:           template.Value,
				KeyMaterialType: tinkpb.KeyData_SYMMETRIC,
			},
			KeyId:            keyID,
			Status:           tinkpb.KeyStatusType_ENABLED,
			OutputPrefixType: tinkpb.OutputPrefixType_RAW,
		}},
	}

	buf := &keyset.MemReaderWriter{Keyset: ks}
	return insecurecleartextkeyset.Read(buf)
}
