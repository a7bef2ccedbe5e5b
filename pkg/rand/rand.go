package rand

import (
	"crypto/rand"

	"github.com/sirupsen/logrus"
)

const smallLetters = "0123456789abcdefghijklmnopqrstuvwxyz"

// StringWithSmall returns a random lowercase-alphanumeric string of length n.
func StringWithSmall(n int) string {
	return secureRandomString(smallLetters, n)
}

// secureRandomString returns a string of the requested length, made from the
// byte characters provided (only ASCII allowed). Uses crypto/rand. Will
// panic if len(availableCharBytes) > 256.
func secureRandomString(availableCharBytes string, length int) string {
	availableCharLength := len(availableCharBytes)
	if availableCharLength == 0 || availableCharLength > 256 {
		panic("availableCharBytes length must be greater than 0 and less than or equal to 256")
	}
	var bitLength byte
	var bitMask byte
	for bits := availableCharLength - 1; bits != 0; {
		bits = bits >> 1
		bitLength++
	}
	bitMask = 1<<bitLength - 1

	bufferSize := length + length/3

	result := make([]byte, length)
	for i, j, randomBytes := 0, 0, []byte{}; i < length; j++ {
		if j%bufferSize == 0 {
			randomBytes = secureRandomBytes(bufferSize)
		}
		if idx := int(randomBytes[j%length] & bitMask); idx < availableCharLength {
			result[i] = availableCharBytes[idx]
			i++
		}
	}

	return string(result)
}

func secureRandomBytes(length int) []byte {
	var randomBytes = make([]byte, length)
	_, err := rand.Read(randomBytes)
	if err != nil {
		logrus.Fatal("Unable to generate random bytes")
	}
	return randomBytes
}
