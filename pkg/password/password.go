package password

import "golang.org/x/crypto/bcrypt"

// DefaultCost is the bcrypt work factor used for stored credentials.
const DefaultCost = 10

func Hash(p string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(p), DefaultCost)
	return string(bytes), err
}

func Check(hash, pass string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pass))
	return err == nil
}
