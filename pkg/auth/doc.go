// Package auth provides the stateless credential core: bcrypt password
// hashing and a signed, time-bounded JWT token service.
//
// # Overview
//
// Tokens are compact HS256 JWTs carrying the principal's id, name, and
// email plus standard issued-at/expiry claims. Verification is pure
// computation against the configured signing secret; there is no
// server-side session store or revocation list, so token expiry is the
// only invalidation mechanism.
//
// # Key Components
//
// TokenService: issues and verifies signed claim sets
//
//	tokens := auth.NewTokenService([]byte(secret), time.Hour, "taskvault")
//	signed, err := tokens.Issue(auth.Principal{SubjectID: user.ID, Name: user.Name, Email: user.Email})
//	claims, err := tokens.Verify(signed)
//
// BcryptHasher: one-way salted password hashing with constant-time compare
//
//	hasher := auth.NewBcryptHasher(0) // 0 selects the bcrypt default cost
//	hash, err := hasher.Hash(plaintext)
//	err = hasher.Compare(hash, plaintext)
package auth
