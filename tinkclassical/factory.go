package tinkclassical

import (
	"fmt"

	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	tinkpb "github.com/google/tink/go/proto/tink_go_proto"
	"github.com/vdparikh/classical"
)

// New creates the cipher held by the primary key of handle.
//
// Example:
//
//	template, err := tinkclassical.KeyTemplate(classical.Params{Cipher: "vigenere", Key: "LEMON"})
//	if err != nil {
//	    return err
//	}
//	handle, err := keyset.NewHandle(template)
//	if err != nil {
//	    return err
//	}
//	cipher, err := tinkclassical.New(handle)
//	if err != nil {
//	    return err
//	}
//	encoded, err := cipher.Encode("ATTACK AT DAWN")
func New(handle *keyset.Handle, opts ...classical.Option) (classical.Cipher, error) {
	if handle == nil {
		return nil, fmt.Errorf("keyset handle cannot be nil")
	}

	primitives, err := handle.PrimitivesWithKeyManager(NewKeyManager(opts...))
	if err != nil {
		return nil, fmt.Errorf("failed to get primitives from handle: %w", err)
	}
	primary := primitives.Primary
	if primary == nil {
		return nil, fmt.Errorf("no primary key found in keyset")
	}

	c, ok := primary.Primitive.(classical.Cipher)
	if !ok {
		return nil, fmt.Errorf("primary key %d is not a classical cipher", primary.KeyID)
	}
	return c, nil
}

// ParamsFromHandle returns the configuration stored in the primary key of an
// unencrypted keyset.
func ParamsFromHandle(handle *keyset.Handle) (classical.Params, error) {
	if handle == nil {
		return classical.Params{}, fmt.Errorf("keyset handle cannot be nil")
	}

	ks := insecurecleartextkeyset.KeysetMaterial(handle)
	for _, key := range ks.GetKey() {
		if key.GetKeyId() != ks.GetPrimaryKeyId() {
			continue
		}
		keyData := key.GetKeyData()
		if keyData.GetTypeUrl() != TypeURL {
			return classical.Params{}, fmt.Errorf("primary key has type %q, want %q", keyData.GetTypeUrl(), TypeURL)
		}
		if keyData.GetKeyMaterialType() != tinkpb.KeyData_SYMMETRIC {
			return classical.Params{}, fmt.Errorf("unsupported key material type %v", keyData.GetKeyMaterialType())
		}
		return UnmarshalParams(keyData.GetValue())
	}
	return classical.Params{}, fmt.Errorf("primary key %d not found in keyset", ks.GetPrimaryKeyId())
}
