package pkg

import "golang.org/x/crypto/bcrypt"

// CodeHashCost is lower than a password cost since codes are short lived.
const CodeHashCost = 10

func HashCode(code string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(code), CodeHashCost)
	return BytesToString(bytes), err
}

func CheckCodeHash(code, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
