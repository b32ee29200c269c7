package hash

// Hasher defines methods for hashing and verifying passwords.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hashed string) (bool, error)
}
