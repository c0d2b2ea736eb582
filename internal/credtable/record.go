package credtable

import (
	"bytes"

	"github.com/dmitrijs2005/credtable/internal/common"
	"github.com/dmitrijs2005/credtable/internal/cryptox"
)

// CredentialRecord is the value held by an occupied bucket. The plaintext
// password is never stored; only the digest of salt and password is.
type CredentialRecord struct {
	Username       string
	Salt           string
	PasswordDigest []byte
}

func newRecord(username, password, salt string, d cryptox.Digester) *CredentialRecord {
	return &CredentialRecord{
		Username:       username,
		Salt:           salt,
		PasswordDigest: d.Digest(salt, password),
	}
}

// matches reports whether password is the one the digest was made from.
func (r *CredentialRecord) matches(password string, d cryptox.Digester) bool {
	candidate := d.Digest(r.Salt, password)
	defer common.WipeByteArray(candidate)
	return cryptox.Equal(candidate, r.PasswordDigest)
}

// setPassword replaces the digest, zeroing the old one. The old slice is
// never shared: readers only ever get clones.
func (r *CredentialRecord) setPassword(password string, d cryptox.Digester) {
	old := r.PasswordDigest
	r.PasswordDigest = d.Digest(r.Salt, password)
	common.WipeByteArray(old)
}

func (r *CredentialRecord) clone() CredentialRecord {
	return CredentialRecord{
		Username:       r.Username,
		Salt:           r.Salt,
		PasswordDigest: bytes.Clone(r.PasswordDigest),
	}
}

func (r CredentialRecord) String() string {
	return "CredentialRecord: " + r.Username
}
