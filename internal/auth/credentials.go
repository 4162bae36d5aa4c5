package auth

import "golang.org/x/crypto/bcrypt"

// CredentialVerifier checks a presented secret (staff PIN, admin password)
// against stored policy. Call sites never see the stored value, so the
// backing store can change without touching them.
type CredentialVerifier interface {
	Verify(input string) bool
}

type bcryptVerifier struct {
	hash []byte
}

// NewBcryptVerifier wraps an existing bcrypt hash.
func NewBcryptVerifier(hash string) CredentialVerifier {
	return &bcryptVerifier{hash: []byte(hash)}
}

// NewPlaintextVerifier hashes a plaintext secret from configuration at
// startup so comparisons still go through bcrypt.
func NewPlaintextVerifier(secret string, cost int) (CredentialVerifier, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return nil, err
	}
	return &bcryptVerifier{hash: hashed}, nil
}

func (v *bcryptVerifier) Verify(input string) bool {
	return bcrypt.CompareHashAndPassword(v.hash, []byte(input)) == nil
}

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
