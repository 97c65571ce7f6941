package crypto

import (
	"github.com/iov-one/vault/codec"
)

func init() {
	codec.RegisterInterface((*isPublicKeyData)(nil))
	codec.RegisterInterface((*isPrivateKeyData)(nil))
	codec.RegisterInterface((*isSignatureData)(nil))
	codec.RegisterConcrete(&PublicKey_Ed25519{}, "vault/crypto/pubkey_ed25519")
	codec.RegisterConcrete(&PrivateKey_Ed25519{}, "vault/crypto/privkey_ed25519")
	codec.RegisterConcrete(&Signature_Ed25519{}, "vault/crypto/signature_ed25519")
}

// isPublicKeyData is implemented by every public key algorithm variant.
type isPublicKeyData interface {
	isPublicKey_Pub()
}

// PublicKey holds one public key of any supported algorithm.
type PublicKey struct {
	Pub isPublicKeyData `json:"pub,omitempty"`
}

// PublicKey_Ed25519 is an ed25519 flavoured public key.
type PublicKey_Ed25519 struct {
	Ed25519 []byte `json:"ed25519,omitempty"`
}

func (*PublicKey_Ed25519) isPublicKey_Pub() {}

func (p *PublicKey) GetPub() isPublicKeyData {
	if p == nil {
		return nil
	}
	return p.Pub
}

func (p *PublicKey) GetEd25519() []byte {
	if x, ok := p.GetPub().(*PublicKey_Ed25519); ok {
		return x.Ed25519
	}
	return nil
}

func (p *PublicKey) Marshal() ([]byte, error) {
	return codec.Marshal(p)
}

func (p *PublicKey) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, p)
}

// isPrivateKeyData is implemented by every private key algorithm variant.
type isPrivateKeyData interface {
	isPrivateKey_Priv()
}

// PrivateKey holds one private key of any supported algorithm.
type PrivateKey struct {
	Priv isPrivateKeyData `json:"priv,omitempty"`
}

// PrivateKey_Ed25519 is an ed25519 flavoured private key.
type PrivateKey_Ed25519 struct {
	Ed25519 []byte `json:"ed25519,omitempty"`
}

func (*PrivateKey_Ed25519) isPrivateKey_Priv() {}

func (p *PrivateKey) GetPriv() isPrivateKeyData {
	if p == nil {
		return nil
	}
	return p.Priv
}

func (p *PrivateKey) GetEd25519() []byte {
	if x, ok := p.GetPriv().(*PrivateKey_Ed25519); ok {
		return x.Ed25519
	}
	return nil
}

func (p *PrivateKey) Marshal() ([]byte, error) {
	return codec.Marshal(p)
}

func (p *PrivateKey) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, p)
}

// isSignatureData is implemented by every signature algorithm variant.
type isSignatureData interface {
	isSignature_Sig()
}

// Signature is a signature of any supported algorithm.
type Signature struct {
	Sig isSignatureData `json:"sig,omitempty"`
}

// Signature_Ed25519 is an ed25519 flavoured signature.
type Signature_Ed25519 struct {
	Ed25519 []byte `json:"ed25519,omitempty"`
}

func (*Signature_Ed25519) isSignature_Sig() {}

func (s *Signature) GetSig() isSignatureData {
	if s == nil {
		return nil
	}
	return s.Sig
}

func (s *Signature) GetEd25519() []byte {
	if x, ok := s.GetSig().(*Signature_Ed25519); ok {
		return x.Ed25519
	}
	return nil
}

func (s *Signature) Marshal() ([]byte, error) {
	return codec.Marshal(s)
}

func (s *Signature) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, s)
}
